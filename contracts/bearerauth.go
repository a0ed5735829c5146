package contracts

import (
	"errors"

	"github.com/labstack/echo"
)

// ErrUnauthorized is returned for a missing or wrong bearer token
var ErrUnauthorized = errors.New("Unauthorized")

// BearerAuthCreds is the Authorization header of an inbound request
type BearerAuthCreds struct {
	Header string
}

// ExtractFromHTTP reads the Authorization header
func (ba *BearerAuthCreds) ExtractFromHTTP(c echo.Context) {
	ba.Header = c.Request().Header.Get(echo.HeaderAuthorization)
}

// Authenticate compares the header with "Bearer <secret>" exactly
func (ba *BearerAuthCreds) Authenticate(secret string) error {
	if secret == "" || ba.Header != "Bearer "+secret {
		return ErrUnauthorized
	}
	return nil
}

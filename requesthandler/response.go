package requesthandler

import (
	"net/http"

	"github.com/labstack/echo"
)

// Response writes response as JSON with the given status
func Response(c echo.Context, response interface{}, httpCode int) error {
	return c.JSON(httpCode, response)
}

// MethodNotAllowed answers with the 405 status text
func MethodNotAllowed(c echo.Context) error {
	return Response(c, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

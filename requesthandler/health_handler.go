package requesthandler

import (
	"net/http"
	"time"

	"bitbucket.org/yellowmessenger/elevenlabs-bridge/contracts"
	"github.com/labstack/echo"
)

// HealthHandler answers liveness probes. It needs no auth.
type HealthHandler struct{}

func (handler HealthHandler) Any(c echo.Context) error {
	switch c.Request().Method {
	case http.MethodGet, http.MethodHead:
		return handler.Get(c)
	}
	return MethodNotAllowed(c)
}

func (HealthHandler) Get(c echo.Context) error {
	return Response(c, contracts.NewHealthResponse(time.Now()), http.StatusOK)
}

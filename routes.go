package main

import (
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/requesthandler"

	"github.com/labstack/echo"
)

// AddRoutes defines the routes and the handlers
func AddRoutes(e *echo.Echo, registerCall requesthandler.RegisterCallHandler) {
	e.Any("/health", requesthandler.HealthHandler{}.Any)
	e.Any("/register-call", registerCall.Any)
	e.Any("/outbound-call", registerCall.Any)
}

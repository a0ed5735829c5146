package requesthandler

import (
	"errors"
	"net/http"

	"bitbucket.org/yellowmessenger/elevenlabs-bridge/contracts"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/core/registercall"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/elevenlabs"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/ymlogger"
	guuid "github.com/google/uuid"
	"github.com/labstack/echo"
)

// RegisterCallHandler serves POST /register-call
type RegisterCallHandler struct {
	SecretKey string
	Registrar *registercall.Registrar
}

func (handler RegisterCallHandler) Any(c echo.Context) error {
	switch c.Request().Method {
	case http.MethodPost:
		return handler.Create(c)
	}
	return MethodNotAllowed(c)
}

// Create authenticates, validates and forwards one call registration.
func (handler RegisterCallHandler) Create(c echo.Context) error {
	requestID := guuid.New().String()
	c.Response().Header().Set(echo.HeaderXRequestID, requestID)
	ctx := c.Request().Context()

	var ba contracts.BearerAuthCreds
	ba.ExtractFromHTTP(c)
	if err := ba.Authenticate(handler.SecretKey); err != nil {
		ymlogger.LogErrorf(requestID, "Rejected register-call request from [%s]. Error: [%s]", c.RealIP(), err.Error())
		ev := handler.Registrar.NewCallEvent(requestID, registercall.OutcomeUnauthorized, http.StatusUnauthorized)
		return handler.finish(c, ev, contracts.NewErrorResponse(contracts.ErrorUnauthorized), http.StatusUnauthorized)
	}

	rcReq := new(contracts.RegisterCallRequest)
	err := rcReq.ExtractFromHTTP(c)
	if err == nil {
		err = rcReq.Validate(elevenlabs.RequiredFields())
	}
	if err != nil {
		ymlogger.LogErrorf(requestID, "Invalid register-call request. Error: [%s]", err.Error())
		ev := handler.event(requestID, rcReq, registercall.OutcomeInvalid, http.StatusBadRequest)
		return handler.finish(c, ev, contracts.NewErrorResponse(err.Error()), http.StatusBadRequest)
	}

	response, err := handler.Registrar.Register(ctx, requestID, *rcReq)
	if err != nil {
		return handler.fail(c, requestID, rcReq, err)
	}
	ev := handler.event(requestID, rcReq, registercall.OutcomeSuccess, http.StatusOK)
	ev.ConversationID = response.ConversationID
	ev.CallSid = response.CallSid
	return handler.finish(c, ev, response, http.StatusOK)
}

func (handler RegisterCallHandler) fail(c echo.Context, requestID string, rcReq *contracts.RegisterCallRequest, err error) error {
	var numErr *registercall.InvalidNumberError
	if errors.As(err, &numErr) {
		ev := handler.event(requestID, rcReq, registercall.OutcomeInvalid, http.StatusBadRequest)
		return handler.finish(c, ev, contracts.NewErrorResponse(numErr.Error()), http.StatusBadRequest)
	}

	var upErr *elevenlabs.Error
	if errors.As(err, &upErr) {
		status := upErr.HTTPStatus()
		if upErr.IsUpstreamError() {
			body := contracts.NewErrorResponse(contracts.ErrorUpstream)
			if upErr.Kind == elevenlabs.Timeout {
				body.SetErrorData(upErr)
			} else {
				body.SetDetails(upErr.Details)
			}
			ev := handler.event(requestID, rcReq, registercall.OutcomeUpstreamError, status)
			return handler.finish(c, ev, body, status)
		}
		body := contracts.NewErrorResponse(contracts.ErrorRegisterFailure).SetErrorData(upErr).SetDetails(upErr.Details)
		ev := handler.event(requestID, rcReq, registercall.OutcomeInternalError, status)
		return handler.finish(c, ev, body, status)
	}

	body := contracts.NewErrorResponse(contracts.ErrorRegisterFailure).SetErrorData(err)
	ev := handler.event(requestID, rcReq, registercall.OutcomeInternalError, http.StatusInternalServerError)
	return handler.finish(c, ev, body, http.StatusInternalServerError)
}

func (handler RegisterCallHandler) event(
	requestID string,
	rcReq *contracts.RegisterCallRequest,
	outcome registercall.Outcome,
	status int,
) registercall.CallEvent {
	ev := handler.Registrar.NewCallEvent(requestID, outcome, status)
	ev.FromNumber = rcReq.From()
	ev.ToNumber = rcReq.To()
	ev.SavID = rcReq.SavID
	return ev
}

func (handler RegisterCallHandler) finish(c echo.Context, ev registercall.CallEvent, body interface{}, status int) error {
	handler.Registrar.Notify(ev)
	return Response(c, body, status)
}

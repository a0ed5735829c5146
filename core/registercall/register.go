package registercall

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/yellowmessenger/elevenlabs-bridge/contracts"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/elevenlabs"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/phonenumber"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/ymlogger"
)

// Caller sends one built call upstream
type Caller interface {
	Do(ctx context.Context, call elevenlabs.Call) (*elevenlabs.Result, error)
}

// InvalidNumberError is returned when number normalization rejects a field
type InvalidNumberError struct {
	Err error
}

func (e *InvalidNumberError) Error() string {
	return e.Err.Error()
}

func (e *InvalidNumberError) Unwrap() error {
	return e.Err
}

// Registrar turns a validated inbound request into exactly one outbound call.
type Registrar struct {
	Credentials elevenlabs.Credentials
	Caller      Caller
	// Numbers is nil when numbers are forwarded as received.
	Numbers   *phonenumber.Normalizer
	Publisher EventPublisher
}

// Register builds the payload and calls ElevenLabs once. Errors from the
// upstream call are *elevenlabs.Error; a rejected number is *InvalidNumberError.
func (r *Registrar) Register(
	ctx context.Context,
	requestID string,
	req contracts.RegisterCallRequest,
) (*contracts.RegisterCallResponse, error) {
	params, err := r.callParams(req)
	if err != nil {
		ymlogger.LogErrorf(requestID, "Rejected call numbers. Error: [%s]", err.Error())
		return nil, err
	}

	ymlogger.LogInfoWithFields(requestID,
		fmt.Sprintf("Registering call from %s to %s (SAV #%s)", req.From(), params.ToNumber, req.SavIDString()),
		map[string]interface{}{
			"timestamp":   time.Now().UTC().Format(time.RFC3339Nano),
			"from_number": req.From(),
			"to_number":   params.ToNumber,
			"sav_id":      req.SavID,
			"agent_id":    r.Credentials.AgentID,
		})

	call := elevenlabs.NewOutboundCall(r.Credentials, params)
	result, err := r.Caller.Do(ctx, call)
	if err != nil {
		fields := map[string]interface{}{
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
			"sav_id":    req.SavID,
			"error":     err.Error(),
		}
		var upErr *elevenlabs.Error
		if errors.As(err, &upErr) {
			fields["kind"] = upErr.Kind.String()
			fields["status"] = upErr.StatusCode
			fields["details"] = upErr.Details
		}
		ymlogger.LogErrorWithFields(requestID, "ElevenLabs API Error", fields)
		return nil, err
	}

	response := &contracts.RegisterCallResponse{
		Success:        true,
		ConversationID: elevenlabs.Identifier(result.Data, elevenlabs.ConversationIDKey),
		CallSid:        elevenlabs.Identifier(result.Data, elevenlabs.CallSidKey),
		Result:         result.Data,
	}
	ymlogger.LogInfoWithFields(requestID, "Call registered successfully", map[string]interface{}{
		"timestamp":       time.Now().UTC().Format(time.RFC3339Nano),
		"conversation_id": response.ConversationID,
		"call_sid":        response.CallSid,
		"result":          result.Data,
	})
	return response, nil
}

func (r *Registrar) callParams(req contracts.RegisterCallRequest) (elevenlabs.CallParams, error) {
	params := elevenlabs.CallParams{
		ToNumber:         req.To(),
		DynamicVariables: req.DynamicVariables,
	}
	if r.Numbers == nil {
		return params, nil
	}
	var err error
	if params.ToNumber, err = r.Numbers.Normalize("to_number", params.ToNumber); err != nil {
		return params, &InvalidNumberError{Err: err}
	}
	return params, nil
}

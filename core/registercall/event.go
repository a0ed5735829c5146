package registercall

import (
	"encoding/json"
	"strconv"
	"time"

	"bitbucket.org/yellowmessenger/elevenlabs-bridge/metrics"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/newrelic"
	"bitbucket.org/yellowmessenger/elevenlabs-bridge/ymlogger"
)

// Outcome is how a /register-call request ended
type Outcome string

const (
	OutcomeSuccess       Outcome = "success"
	OutcomeUnauthorized  Outcome = "unauthorized"
	OutcomeInvalid       Outcome = "invalid_request"
	OutcomeUpstreamError Outcome = "upstream_error"
	OutcomeInternalError Outcome = "internal_error"
)

// EventPublisher delivers serialized call events, e.g. to RabbitMQ
type EventPublisher interface {
	Publish(body []byte) error
}

// CallEvent describes one finished /register-call request
type CallEvent struct {
	RequestID      string      `json:"request_id"`
	SavID          interface{} `json:"sav_id,omitempty"`
	FromNumber     string      `json:"from_number,omitempty"`
	ToNumber       string      `json:"to_number,omitempty"`
	AgentID        string      `json:"agent_id"`
	Outcome        Outcome     `json:"outcome"`
	HTTPStatus     int         `json:"http_status"`
	ConversationID interface{} `json:"conversation_id,omitempty"`
	CallSid        interface{} `json:"call_sid,omitempty"`
	Timestamp      string      `json:"timestamp"`
}

// NewCallEvent stamps an event for the registrar's agent
func (r *Registrar) NewCallEvent(requestID string, outcome Outcome, httpStatus int) CallEvent {
	return CallEvent{
		RequestID:  requestID,
		AgentID:    r.Credentials.AgentID,
		Outcome:    outcome,
		HTTPStatus: httpStatus,
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
	}
}

// Notify reports the event to New Relic, the metrics collector and the
// event publisher. Failures are logged and never reach the caller.
func (r *Registrar) Notify(ev CallEvent) {
	nrEvent := map[string]interface{}{
		"agent_id":    ev.AgentID,
		"outcome":     string(ev.Outcome),
		"http_status": ev.HTTPStatus,
		"count":       1,
	}
	if err := newrelic.SendCustomEvent("call_registration", nrEvent); err != nil {
		ymlogger.LogErrorf(ev.RequestID, "Failed to send call_registration event to new relic. Error: [%#v]", err)
	}

	filters := map[string]string{
		"outcome": string(ev.Outcome),
		"status":  strconv.Itoa(ev.HTTPStatus),
	}
	metric, err := metrics.NewMetric("call.register", filters, map[string]interface{}{"count": 1})
	if err != nil {
		ymlogger.LogErrorf(ev.RequestID, "Failed to create metric. Error: [%#v]", err)
	} else if err := metrics.SendMetric(metric); err != nil {
		ymlogger.LogErrorf(ev.RequestID, "Failed to send metrics. Error: [%#v]", err)
	}

	if r.Publisher == nil {
		return
	}
	body, err := json.Marshal(ev)
	if err != nil {
		ymlogger.LogErrorf(ev.RequestID, "Failed to marshal the call event. Error: [%#v]", err)
		return
	}
	if err := r.Publisher.Publish(body); err != nil {
		ymlogger.LogErrorf(ev.RequestID, "Failed to publish the call event. Error: [%s]", err.Error())
	}
}

package elevenlabs

// OutboundCallPath places a call through the Twilio number linked to the agent
const OutboundCallPath = "/v1/convai/twilio/outbound-call"

// Response fields identifying the placed call
const (
	CallSidKey        = "call_sid"
	ConversationIDKey = "conversation_id"
)

const unknownIdentifier = "unknown"

// RequiredFields lists the inbound body fields an outbound call cannot do without
func RequiredFields() []string {
	return []string{"to_number"}
}

// Credentials are the process wide identifiers stamped on every payload.
type Credentials struct {
	AgentID       string
	PhoneNumberID string
}

// CallParams are the per request values taken from the inbound body.
type CallParams struct {
	ToNumber         string
	DynamicVariables map[string]interface{}
}

// Call is a fully built upstream request.
type Call struct {
	Path    string
	Payload interface{}
}

// ClientData is attached to outbound calls that carry dynamic variables.
type ClientData struct {
	DynamicVariables map[string]interface{} `json:"dynamic_variables"`
}

// OutboundCall is the body of an outbound-call request
type OutboundCall struct {
	AgentID            string      `json:"agent_id"`
	AgentPhoneNumberID string      `json:"agent_phone_number_id"`
	ToNumber           string      `json:"to_number"`
	ClientData         *ClientData `json:"conversation_initiation_client_data,omitempty"`
}

// NewOutboundCall builds the upstream request. The client data block is only
// present when the caller supplied dynamic variables, even an empty set.
func NewOutboundCall(creds Credentials, params CallParams) Call {
	payload := OutboundCall{
		AgentID:            creds.AgentID,
		AgentPhoneNumberID: creds.PhoneNumberID,
		ToNumber:           params.ToNumber,
	}
	if params.DynamicVariables != nil {
		payload.ClientData = &ClientData{DynamicVariables: params.DynamicVariables}
	}
	return Call{Path: OutboundCallPath, Payload: payload}
}

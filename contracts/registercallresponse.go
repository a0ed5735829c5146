package contracts

// RegisterCallResponse is the success body of POST /register-call. The
// identifiers are relayed as ElevenLabs sent them, or "unknown".
type RegisterCallResponse struct {
	Success        bool        `json:"success"`
	ConversationID interface{} `json:"conversation_id"`
	CallSid        interface{} `json:"call_sid"`
	Result         interface{} `json:"result"`
}

package types

type QueryRequest struct {
	SessionID string `json:"sessionId"`
	Text      string `json:"text"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// GoogleStatusResponse reports whether the session has a linked Google
// account and which email it resolved to.
type GoogleStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	AccountEmail  string `json:"account_email,omitempty"`
}

type TTSRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voiceId,omitempty"`
}

package identity

import "encoding/json"

// Error is a failure reported by the identity provider. Message carries
// the provider's text verbatim so screens can display it unchanged.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "identity provider request failed"
}

// parseProviderError decodes the handful of error body shapes the
// provider emits into a single Error.
func parseProviderError(status int, body []byte) *Error {
	var raw struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		Code             string `json:"error_code"`
	}
	_ = json.Unmarshal(body, &raw)

	msg := raw.ErrorDescription
	if msg == "" {
		msg = raw.Msg
	}
	if msg == "" {
		msg = raw.Message
	}
	if msg == "" {
		msg = raw.Error
	}

	return &Error{
		Status:  status,
		Code:    raw.Code,
		Message: msg,
	}
}

package notion

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the Notion API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("notion: api error: status=%d code=%s message=%s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("notion: api error: status=%d message=%s", e.Status, e.Message)
}

// apiError decodes the API's structured error body, falling back to the raw
// body when it is not the usual {code, message} JSON shape.
func apiError(status int, body []byte) *APIError {
	var wire struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wire); err == nil && (wire.Code != "" || wire.Message != "") {
		return &APIError{Status: status, Code: wire.Code, Message: wire.Message}
	}
	return &APIError{Status: status, Message: strings.TrimSpace(string(body))}
}

package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	maxErrorBody      = 64 << 10
	plainTextErrorCut = 200
)

// HTTPError is a non-2xx answer from the backend with its detail already
// rendered into one operator-readable message.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return msg
}

func (e *HTTPError) StatusCode() int {
	return e.Status
}

// TransportError wraps a request that never produced a response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) StatusCode() int {
	return http.StatusBadGateway
}

func newHTTPError(status int, contentType string, body []byte) error {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &HTTPError{
		Status:  status,
		Message: FormatErrorBody(status, contentType, body),
	}
}

type validationItem struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// FormatErrorBody renders the backend `{detail: ...}` payload:
// string detail verbatim, a validation list one "(field) - msg" per line,
// any other object as raw JSON, and non-JSON bodies as truncated text.
func FormatErrorBody(status int, contentType string, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return plainTextError(status, trimmed)
	}
	if len(envelope.Detail) == 0 || string(envelope.Detail) == "null" {
		return fmt.Sprintf("HTTP %d: %s", status, string(trimmed))
	}

	var detailText string
	if err := json.Unmarshal(envelope.Detail, &detailText); err == nil {
		return detailText
	}

	var items []validationItem
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		lines := make([]string, 0, len(items)+1)
		lines = append(lines, "ข้อมูลไม่ถูกต้อง:")
		for _, it := range items {
			lines = append(lines, fmt.Sprintf("(%s) - %s", fieldFromLoc(it.Loc), it.Msg))
		}
		return strings.Join(lines, "\n")
	}

	return string(envelope.Detail)
}

func fieldFromLoc(loc []any) string {
	switch len(loc) {
	case 0:
		return "-"
	case 1:
		return fmt.Sprint(loc[0])
	default:
		return fmt.Sprint(loc[1])
	}
}

func plainTextError(status int, body []byte) string {
	text := []rune(string(body))
	suffix := ""
	if len(text) > plainTextErrorCut {
		text = text[:plainTextErrorCut]
		suffix = "..."
	}
	return fmt.Sprintf("HTTP %d: %s%s", status, string(text), suffix)
}

package backend

import (
	"encoding/json"
	"strings"
)

const (
	// DefaultErrorMessage is shown when the backend reports a failure
	// without any usable detail.
	DefaultErrorMessage = "Something went wrong. Please try again."

	// UnreachableMessage is shown when no response came back at all.
	UnreachableMessage = "Could not reach the marketing backend. Check that it is running and try again."
)

// Error is a backend failure already reduced to the string a page should
// display. StatusCode is zero when the request never reached the backend.
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return e.Message
}

// ExtractErrorMessage normalizes an arbitrary error response body to a
// display string. Precedence: detail as a list of {msg} entries joined with
// ", ", detail as a plain string, detail as an object with a message field,
// the top-level message field, and finally DefaultErrorMessage.
func ExtractErrorMessage(body []byte) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return DefaultErrorMessage
	}

	if len(payload.Detail) > 0 {
		var items []struct {
			Msg     string `json:"msg"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(payload.Detail, &items); err == nil {
			parts := make([]string, 0, len(items))
			for _, item := range items {
				switch {
				case item.Msg != "":
					parts = append(parts, item.Msg)
				case item.Message != "":
					parts = append(parts, item.Message)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, ", ")
			}
		}

		var detailString string
		if err := json.Unmarshal(payload.Detail, &detailString); err == nil && detailString != "" {
			return detailString
		}

		var detailObject struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(payload.Detail, &detailObject); err == nil && detailObject.Message != "" {
			return detailObject.Message
		}
	}

	if payload.Message != "" {
		return payload.Message
	}
	return DefaultErrorMessage
}

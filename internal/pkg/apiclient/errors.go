package apiclient

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

// Error is a non-2xx answer from the backend.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the matching sentinel so callers can use errors.Is.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return models.ErrUnauthenticated
	case http.StatusForbidden:
		return models.ErrForbidden
	case http.StatusNotFound:
		return models.ErrNotFound
	case http.StatusConflict:
		return models.ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return models.ErrBadRequest
	}
	return nil
}

type errorBody struct {
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail"`
	Error   string          `json:"error"`
}

func newError(status int, body []byte) *Error {
	return &Error{Status: status, Message: messageOf(status, body)}
}

// messageOf picks the most useful human message out of an error body.
func messageOf(status int, body []byte) string {
	var b errorBody
	if err := json.Unmarshal(body, &b); err == nil {
		if msg := strings.TrimSpace(b.Message); msg != "" {
			return msg
		}
		if msg := detailMessage(b.Detail); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(b.Error); msg != "" {
			return msg
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Request failed"
}

// detailMessage handles both a plain string and a list of validation items.
func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// Message returns a display message for any error the client produced.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, models.ErrTransport) {
		return "Cannot reach the server. Please try again."
	}
	return err.Error()
}

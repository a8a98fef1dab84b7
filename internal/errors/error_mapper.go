package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// errorPayload is the error body shape used across the REST API.
type errorPayload struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// Detail extracts the server-provided detail/message field from an error body.
func Detail(data json.RawMessage) string {
	var payload errorPayload
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return ""
}

// FromResponse converts a non-2xx HTTP response into an AppError
// following the client error taxonomy.
func FromResponse(status int, data json.RawMessage) *AppError {
	detail := Detail(data)
	technical := fmt.Sprintf("request failed with status %d: %s", status, detail)

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return NewAppError(technical, MsgUnauthorized, ErrCodeUnauthorized, status, nil)
	case status == http.StatusNotFound:
		userMsg := MsgNotFound
		if detail != "" {
			userMsg = detail
		}
		return NewAppError(technical, userMsg, ErrCodeNotFound, status, nil)
	case status == http.StatusConflict:
		userMsg := MsgConflict
		if detail != "" {
			userMsg = detail
		}
		return NewAppError(technical, userMsg, ErrCodeConflict, status, nil)
	case status == http.StatusTooManyRequests:
		return NewAppError(technical, MsgRateLimited, ErrCodeRateLimited, status, nil)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		// Validation failures surface the server message verbatim so
		// forms can display it inline.
		userMsg := detail
		if userMsg == "" {
			userMsg = "The provided input is invalid. Please check your entries and try again."
		}
		return NewAppError(technical, userMsg, ErrCodeValidation, status, nil)
	case status >= 500:
		return NewAppError(technical, MsgServerError, ErrCodeServer, status, nil)
	default:
		return NewAppError(technical, MsgServerError, ErrCodeServer, status, nil)
	}
}

// Connection wraps a network-level failure (no HTTP response at all).
func Connection(err error) *AppError {
	return NewAppError(fmt.Sprintf("network failure: %v", err), MsgConnectionFailed, ErrCodeConnection, 0, err)
}

// BadResponse wraps a response body the client could not decode.
func BadResponse(err error) *AppError {
	return NewAppError(fmt.Sprintf("undecodable response: %v", err), MsgBadResponse, ErrCodeBadResponse, 0, err)
}

// Retryable reports whether an HTTP status is worth retrying.
// Validation and auth failures are terminal; throttling and server
// failures are transient.
func Retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

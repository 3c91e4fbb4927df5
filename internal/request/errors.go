package request

import (
	"errors"
	"fmt"
)

// Error is returned for a non-2xx response or a response envelope whose
// code is not the success code.
type Error struct {
	StatusCode int    `json:"status_code"`
	Code       int    `json:"code,omitempty"`
	Message    string `json:"message"`
	Body       string `json:"body,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

func (e *Error) Error() string {
	detail := fmt.Sprintf("status: %d", e.StatusCode)
	if e.Code != 0 {
		detail += fmt.Sprintf(", code: %d", e.Code)
	}
	if e.RequestID != "" {
		detail += ", request_id: " + e.RequestID
	}
	return fmt.Sprintf("console api: %s (%s)", e.Message, detail)
}

func (e *Error) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

func (e *Error) IsServerError() bool {
	return e.StatusCode >= 500
}

func (e *Error) IsAuthError() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

func (e *Error) IsNotFound() bool {
	return e.StatusCode == 404
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func IsAuthError(err error) bool {
	if e, ok := AsError(err); ok {
		return e.IsAuthError()
	}
	return false
}

func IsNotFound(err error) bool {
	if e, ok := AsError(err); ok {
		return e.IsNotFound()
	}
	return false
}

func IsClientError(err error) bool {
	if e, ok := AsError(err); ok {
		return e.IsClientError()
	}
	return false
}

func IsServerError(err error) bool {
	if e, ok := AsError(err); ok {
		return e.IsServerError()
	}
	return false
}

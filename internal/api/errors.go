package api

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// ErrorKind categorizes client errors.
type ErrorKind int

const (
	// KindTransport indicates the request never produced a response.
	KindTransport ErrorKind = iota
	// KindStatus indicates a non-2xx response.
	KindStatus
	// KindDecode indicates a 2xx response whose body could not be decoded.
	KindDecode
	// KindEncode indicates the request body could not be encoded.
	KindEncode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindEncode:
		return "encode"
	default:
		return "unknown"
	}
}

// Error is returned by every Client operation.
type Error struct {
	Kind       ErrorKind
	Op         string
	StatusCode int
	Body       []byte
	Cause      error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindStatus:
		return fmt.Sprintf("%s: http %d: %s", e.Op, e.StatusCode, string(e.Body))
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// MarshalJSON renders the error in the fetch-error shape shown by the error
// panel: {"status": 500, "data": ...} for HTTP failures and
// {"status": "FETCH_ERROR", "error": "..."} for everything else.
func (e *Error) MarshalJSON() ([]byte, error) {
	if e.Kind == KindStatus {
		var data any = string(e.Body)
		var decoded any
		if len(e.Body) > 0 && json.Unmarshal(e.Body, &decoded) == nil {
			data = decoded
		}
		return json.Marshal(struct {
			Status int `json:"status"`
			Data   any `json:"data"`
		}{e.StatusCode, data})
	}
	status := "FETCH_ERROR"
	if e.Kind == KindDecode {
		status = "PARSING_ERROR"
	}
	msg := e.Kind.String()
	if e.Cause != nil {
		msg = e.Cause.Error()
	}
	return json.Marshal(struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}{status, msg})
}

// IsStatus reports whether err is an HTTP status failure.
func IsStatus(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindStatus
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindTransport
}

// Describe renders any error as indented JSON for display. Errors that are
// not *Error are wrapped in the transport shape.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = &Error{Kind: KindTransport, Cause: err}
	}
	out, mErr := json.MarshalIndent(apiErr, "", "  ")
	if mErr != nil {
		return err.Error()
	}
	return string(out)
}

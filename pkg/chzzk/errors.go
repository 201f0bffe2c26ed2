package chzzk

import (
	"errors"
	"fmt"
	"net/http"
)

// Encode operations reported by EncodeError.
const (
	EncodePath  = "path"
	EncodeQuery = "query"
	EncodeBody  = "body"
)

// errMissingContent is returned when the envelope has no content document.
var errMissingContent = errors.New("response envelope has no content")

// errMissingCode is returned when the envelope has no numeric code.
var errMissingCode = errors.New("response envelope has no code")

// EncodeError reports a failure to turn a typed request into a Request.
type EncodeError struct {
	Op  string // EncodePath, EncodeQuery or EncodeBody
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode: serialize %s: %v", e.Op, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError reports a response body that could not be turned into a model.
// Field names the embedded JSON string that failed to parse; it is empty
// when the envelope or its content document was malformed.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode: %v", e.Err)
	}
	return fmt.Sprintf("decode: %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TransportError reports a failure to complete the HTTP exchange
// (connection, TLS, cancellation, or reading the body).
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UndefinedError is returned for any non-200 response. The upstream error
// vocabulary is not modeled, so the status code and raw body are kept as is.
type UndefinedError struct {
	StatusCode int
	Body       string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

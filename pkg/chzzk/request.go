package chzzk

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/go-querystring/query"
	"github.com/yosida95/uritemplate/v3"
)

// Content types used for request bodies.
const (
	ContentTypeJSON = "application/json"
)

// Request is a fully encoded API call. It is built per call by an Encoder
// and consumed by Client.Do.
type Request struct {
	BaseURL string
	Method  string
	Path    string
	Header  http.Header
	Body    *RequestBody
	Query   string
}

// RequestBody is an encoded request payload.
type RequestBody struct {
	ContentType string
	Buf         []byte
}

// LogValue renders the request for debug logs without its body.
func (r *Request) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("method", r.Method),
		slog.String("base_url", r.BaseURL),
		slog.String("path", r.Path),
	}
	if r.Query != "" {
		attrs = append(attrs, slog.String("query", r.Query))
	}
	if len(r.Header) > 0 {
		attrs = append(attrs, slog.Int("headers", len(r.Header)))
	}
	if r.Body != nil {
		attrs = append(attrs,
			slog.String("content_type", r.Body.ContentType),
			slog.Int("body_bytes", len(r.Body.Buf)),
		)
	}
	return slog.GroupValue(attrs...)
}

// Auth holds the three Naver session cookies that identify a logged-in user.
// It is passed per call and never retained by the Client.
type Auth struct {
	NIDSes string `json:"nid_ses" toml:"nid_ses"`
	NIDAut string `json:"nid_aut" toml:"nid_aut"`
	NIDJkl string `json:"nid_jkl" toml:"nid_jkl"`
}

// Cookie names sent for an authenticated call.
const (
	CookieNIDSes = "NID_SES"
	CookieNIDAut = "NID_AUT"
	CookieNIDJkl = "NID_JKL"
)

// Cookies returns the session cookies in the order they are sent.
func (a *Auth) Cookies() []*http.Cookie {
	return []*http.Cookie{
		{Name: CookieNIDSes, Value: a.NIDSes},
		{Name: CookieNIDAut, Value: a.NIDAut},
		{Name: CookieNIDJkl, Value: a.NIDJkl},
	}
}

// CookieHeader renders all three cookies as a single Cookie header value.
func (a *Auth) CookieHeader() string {
	cookies := a.Cookies()
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, "; ")
}

// LogValue keeps cookie values out of logs.
func (a *Auth) LogValue() slog.Value {
	return slog.StringValue("[redacted]")
}

// Encoder turns a typed request value into a Request.
// Implementations are pure and return *EncodeError on failure.
type Encoder interface {
	Encode() (*Request, error)
}

// Decoder turns a 200 response body into a model.
// Implementations return *DecodeError on failure.
type Decoder[T any] interface {
	Decode(body []byte) (T, error)
}

// Endpoint is a typed request that can encode itself and decode its response.
type Endpoint[T any] interface {
	Encoder
	Decoder[T]
}

// PathParams maps template variable names to their values.
type PathParams map[string]string

// ExpandPath substitutes params into an RFC 6570 path template.
// Unreserved characters are inserted verbatim; anything else is
// percent-encoded. A missing or empty value, or a value that is not valid
// UTF-8, yields an *EncodeError.
func ExpandPath(tmpl *uritemplate.Template, params PathParams) (string, error) {
	values := uritemplate.Values{}
	for _, name := range tmpl.Varnames() {
		v, ok := params[name]
		if !ok || v == "" {
			return "", &EncodeError{Op: EncodePath, Err: fmt.Errorf("missing value for %q in %s", name, tmpl.Raw())}
		}
		values.Set(name, uritemplate.String(v))
	}

	path, err := tmpl.Expand(values)
	if err != nil {
		return "", &EncodeError{Op: EncodePath, Err: err}
	}
	return path, nil
}

// EncodeQueryString serializes a struct into a query string using `url`
// struct tags. A nil value encodes to an empty string.
func EncodeQueryString(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	values, err := query.Values(v)
	if err != nil {
		return "", &EncodeError{Op: EncodeQuery, Err: err}
	}
	return values.Encode(), nil
}

// JSONBody serializes v as a JSON request body.
func JSONBody(v any) (*RequestBody, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, &EncodeError{Op: EncodeBody, Err: err}
	}
	return &RequestBody{ContentType: ContentTypeJSON, Buf: buf}, nil
}

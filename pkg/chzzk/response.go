package chzzk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/usestring/chzzk-go/internal/wireschema"
)

// Envelope is the wrapper common to every CHZZK response.
type Envelope[T any] struct {
	Code    int     `json:"code"`
	Message *string `json:"message"`
	Content T       `json:"content"`
}

// wireEnvelope is Envelope as received; Code is a pointer so a missing code
// can be told apart from zero.
type wireEnvelope struct {
	Code    *int            `json:"code"`
	Message *string         `json:"message"`
	Content json.RawMessage `json:"content"`
}

// decodeContent parses the envelope and unmarshals its content into the
// wire model W after checking it against schema.
func decodeContent[W any](body []byte, schema *wireschema.Validator) (W, error) {
	var content W

	var env wireEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return content, &DecodeError{Err: err}
	}
	if env.Code == nil {
		return content, &DecodeError{Err: errMissingCode}
	}
	if *env.Code < 0 || *env.Code > math.MaxUint16 {
		return content, &DecodeError{Err: fmt.Errorf("response envelope code %d out of range", *env.Code)}
	}
	if len(env.Content) == 0 || bytes.Equal(env.Content, []byte("null")) {
		return content, &DecodeError{Err: errMissingContent}
	}

	if err := schema.Validate(env.Content); err != nil {
		return content, &DecodeError{Err: err}
	}
	if err := json.Unmarshal(env.Content, &content); err != nil {
		return content, &DecodeError{Err: err}
	}
	return content, nil
}

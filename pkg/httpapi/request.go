package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iota-uz/sitecms/pkg/constants"
	"github.com/iota-uz/sitecms/pkg/ordering"
)

// RequestID returns the id set by the logging middleware, falling back to the
// inbound header.
func RequestID(w http.ResponseWriter, r *http.Request) string {
	if w != nil {
		if id := strings.TrimSpace(w.Header().Get("X-Request-Id")); id != "" {
			return id
		}
	}
	if r != nil {
		return strings.TrimSpace(r.Header.Get("X-Request-Id"))
	}
	return ""
}

// Fail writes err with the request id of r.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	_ = WriteServiceError(w, err, RequestID(w, r))
}

// MaxJSONBody caps JSON request bodies of the API.
const MaxJSONBody = 1 << 20

// LimitBody caps r.Body at n bytes. Reads past the cap fail with
// *http.MaxBytesError, which DecodeJSON reports as an invalid body.
func LimitBody(w http.ResponseWriter, r *http.Request, n int64) {
	r.Body = http.MaxBytesReader(w, r.Body, n)
}

// DecodeJSON decodes the body into dst and runs struct validation. Both
// failures are reported as InvalidInputError.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &ordering.InvalidInputError{Field: "body", Reason: "is required"}
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &ordering.InvalidInputError{Field: "body", Reason: fmt.Sprintf("must not exceed %d bytes", tooLarge.Limit)}
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &ordering.InvalidInputError{Field: typeErr.Field, Reason: fmt.Sprintf("must be %s", typeErr.Type)}
		}
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
			return &ordering.InvalidInputError{Field: "body", Reason: "malformed JSON"}
		}
		// Errors raised by custom UnmarshalJSON methods describe the value.
		return &ordering.InvalidInputError{Field: "body", Reason: err.Error()}
	}
	return Validate(dst)
}

// Validate runs the shared validator and reports the first failing field.
func Validate(v any) error {
	err := constants.Validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ordering.InvalidInputError{Field: "body", Reason: err.Error()}
	}
	first := verrs[0]
	reason := "failed " + first.Tag()
	if first.Param() != "" {
		reason += "=" + first.Param()
	}
	return &ordering.InvalidInputError{Field: first.Field(), Reason: reason}
}

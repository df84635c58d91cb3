package ordering

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// ReorderRequest is the wire shape of a reorder call.
type ReorderRequest struct {
	OrderedIDs []uuid.UUID `json:"orderedIds"`
}

// ParseReorderRequest decodes {"orderedIds": [...]}, rejecting anything other than
// a non-empty list of UUID strings with an InvalidInputError.
func ParseReorderRequest(r io.Reader) ([]uuid.UUID, error) {
	var body struct {
		OrderedIDs json.RawMessage `json:"orderedIds"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, invalid("body", fmt.Sprintf("must not exceed %d bytes", tooLarge.Limit))
		}
		return nil, invalid("body", "malformed JSON")
	}

	raw := bytes.TrimSpace(body.OrderedIDs)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, invalid("orderedIds", "is required")
	}
	if raw[0] != '[' {
		return nil, invalid("orderedIds", "must be a list")
	}

	var values []json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, invalid("orderedIds", "must be a list")
	}
	if len(values) == 0 {
		return nil, invalid("orderedIds", "must not be empty")
	}

	ids := make([]uuid.UUID, 0, len(values))
	for i, v := range values {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return nil, invalid(fmt.Sprintf("orderedIds[%d]", i), "must be a string")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, invalid(fmt.Sprintf("orderedIds[%d]", i), fmt.Sprintf("%q is not a valid id", s))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

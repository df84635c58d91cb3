package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/iota-uz/sitecms/pkg/ordering"
	"github.com/iota-uz/sitecms/pkg/serrors"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

var statusBySentinel = []struct {
	err    *serrors.BaseError
	status int
}{
	{ordering.ErrUnauthorized, http.StatusUnauthorized},
	{ordering.ErrInvalidInput, http.StatusBadRequest},
	{ordering.ErrNotFound, http.StatusNotFound},
	{ordering.ErrConflict, http.StatusConflict},
	{ordering.ErrStoreFailure, http.StatusInternalServerError},
}

// StatusOf maps a service error onto an HTTP status and a stable error code.
// Errors outside the taxonomy are reported as store failures.
func StatusOf(err error) (int, *serrors.BaseError) {
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			return s.status, s.err
		}
	}
	return http.StatusInternalServerError, ordering.ErrStoreFailure
}

// WriteServiceError writes err as an ErrorEnvelope. Internal details of store
// failures never reach the client; requestID, when set, is echoed in meta.
func WriteServiceError(w http.ResponseWriter, err error, requestID string) error {
	status, sentinel := StatusOf(err)
	meta := map[string]string{}
	if requestID != "" {
		meta["request_id"] = requestID
	}

	message := sentinel.Message
	var invalid *ordering.InvalidInputError
	if errors.As(err, &invalid) {
		message = invalid.Error()
		meta["field"] = invalid.Field
		if len(invalid.IDs) > 0 {
			ids := make([]string, len(invalid.IDs))
			for i, id := range invalid.IDs {
				ids[i] = id.String()
			}
			meta["ids"] = strings.Join(ids, ",")
		}
	} else if status != http.StatusInternalServerError {
		message = err.Error()
	}
	if len(meta) == 0 {
		meta = nil
	}
	return WriteError(w, status, sentinel.Code, message, meta)
}

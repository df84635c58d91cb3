package controllers

import (
	"net/http"

	"github.com/iota-uz/sitecms/pkg/httpapi"
	"github.com/iota-uz/sitecms/pkg/routing"
)

type ErrorHandlersOptions struct {
	Entrypoint    string
	AllowlistPath string
}

func classifier(opts []ErrorHandlersOptions) *routing.Classifier {
	var resolvedOpts ErrorHandlersOptions
	if len(opts) > 0 {
		resolvedOpts = opts[0]
	}
	rules, err := routing.LoadAllowlist(resolvedOpts.AllowlistPath, resolvedOpts.Entrypoint)
	if err != nil {
		rules = nil
	}
	return routing.NewClassifier(rules)
}

func NotFound(opts ...ErrorHandlersOptions) http.HandlerFunc {
	c := classifier(opts)
	return func(w http.ResponseWriter, r *http.Request) {
		if c.ClassifyPath(r.URL.Path).IsAPI() {
			meta := map[string]string{
				"path": r.URL.Path,
			}
			if requestID := httpapi.RequestID(w, r); requestID != "" {
				meta["request_id"] = requestID
			}
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "not found", meta)
			return
		}
		http.NotFound(w, r)
	}
}

func MethodNotAllowed(opts ...ErrorHandlersOptions) http.HandlerFunc {
	c := classifier(opts)
	return func(w http.ResponseWriter, r *http.Request) {
		if c.ClassifyPath(r.URL.Path).IsAPI() {
			meta := map[string]string{
				"method": r.Method,
				"path":   r.URL.Path,
			}
			if requestID := httpapi.RequestID(w, r); requestID != "" {
				meta["request_id"] = requestID
			}
			_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", meta)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

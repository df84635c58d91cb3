package controllers

import (
	"context"
	"net/http"
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/iota-uz/sitecms/pkg/composables"
	"github.com/iota-uz/sitecms/pkg/httpapi"
	"github.com/iota-uz/sitecms/pkg/middleware"
	"github.com/iota-uz/sitecms/pkg/ordering"
)

const uuidPattern = "[0-9a-fA-F-]{36}"

// Payload is a decoded admin request body for a collection record.
type Payload[T any] interface {
	Entity(existing T) (T, error)
	ExplicitOrder() *int
}

// scopeBinder is implemented by payloads whose records carry their parent.
type scopeBinder interface {
	BindScope(scope ordering.Scope)
}

// Mapper projects a record into its response body.
type Mapper[T any] func(ctx context.Context, record T) any

// ScopeResolver picks the scope a request addresses.
type ScopeResolver func(r *http.Request, public bool) (ordering.Scope, error)

type CollectionConfig[T ordering.Record[T]] struct {
	Manager *ordering.Manager[T]
	// Path below /api/public and /api/admin, e.g. "jobs".
	Path   string
	Admin  Mapper[T]
	Public Mapper[T]
	// Search returns the text ?q= is matched against. Nil disables search.
	Search func(T) string
	// Scope defaults to the collection's root scope.
	Scope ScopeResolver
}

// CollectionController serves the public projection and the admin
// operations of one ordered collection.
type CollectionController[T ordering.Record[T], P Payload[T]] struct {
	config CollectionConfig[T]
}

func NewCollectionController[T ordering.Record[T], P Payload[T]](config CollectionConfig[T]) *CollectionController[T, P] {
	if config.Scope == nil {
		root := ordering.RootScope(config.Manager.Collection())
		config.Scope = func(*http.Request, bool) (ordering.Scope, error) {
			return root, nil
		}
	}
	return &CollectionController[T, P]{config: config}
}

func (c *CollectionController[T, P]) Key() string {
	return "/api/admin/" + c.config.Path
}

func (c *CollectionController[T, P]) Register(r *mux.Router) {
	public := r.PathPrefix("/api/public/" + c.config.Path).Subrouter()
	public.HandleFunc("", c.ListPublic).Methods(http.MethodGet)
	public.HandleFunc("/{id:"+uuidPattern+"}", c.GetPublic).Methods(http.MethodGet)

	admin := r.PathPrefix("/api/admin/" + c.config.Path).Subrouter()
	admin.Use(middleware.RequireAuth())
	admin.HandleFunc("", c.List).Methods(http.MethodGet)
	admin.HandleFunc("", c.Create).Methods(http.MethodPost)
	admin.HandleFunc("/reorder", c.Reorder).Methods(http.MethodPut)
	admin.HandleFunc("/{id:"+uuidPattern+"}", c.Get).Methods(http.MethodGet)
	admin.HandleFunc("/{id:"+uuidPattern+"}", c.Update).Methods(http.MethodPut)
	admin.HandleFunc("/{id:"+uuidPattern+"}", c.Delete).Methods(http.MethodDelete)
}

func recordID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, &ordering.InvalidInputError{Field: "id", Reason: "must be a UUID"}
	}
	return id, nil
}

func project[T any](ctx context.Context, records []T, mapper Mapper[T]) []any {
	out := make([]any, len(records))
	for i, rec := range records {
		out[i] = mapper(ctx, rec)
	}
	return out
}

// filter keeps the records matching q, preserving their order.
func (c *CollectionController[T, P]) filter(records []T, q string) []T {
	q = strings.TrimSpace(q)
	if q == "" || c.config.Search == nil {
		return records
	}
	words := make([]string, len(records))
	for i, rec := range records {
		words[i] = c.config.Search(rec)
	}
	ranks := fuzzy.RankFindNormalizedFold(q, words)
	sort.Sort(ranks)
	indexes := make([]int, len(ranks))
	for i, rank := range ranks {
		indexes[i] = rank.OriginalIndex
	}
	slices.Sort(indexes)
	out := make([]T, len(indexes))
	for i, idx := range indexes {
		out[i] = records[idx]
	}
	return out
}

func (c *CollectionController[T, P]) ListPublic(w http.ResponseWriter, r *http.Request) {
	scope, err := c.config.Scope(r, true)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	records, err := c.config.Manager.ListPublic(r.Context(), scope)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, project(r.Context(), records, c.config.Public))
}

func (c *CollectionController[T, P]) GetPublic(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	scope, err := c.config.Scope(r, true)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	record, err := c.config.Manager.GetPublic(r.Context(), scope, id)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, c.config.Public(r.Context(), record))
}

func (c *CollectionController[T, P]) List(w http.ResponseWriter, r *http.Request) {
	scope, err := c.config.Scope(r, false)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	records, err := c.config.Manager.List(r.Context(), composables.UseAuth(r.Context()), scope)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	records = c.filter(records, r.URL.Query().Get("q"))
	_ = httpapi.WriteJSON(w, http.StatusOK, project(r.Context(), records, c.config.Admin))
}

func (c *CollectionController[T, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	scope, err := c.config.Scope(r, false)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	record, err := c.config.Manager.Get(r.Context(), composables.UseAuth(r.Context()), scope, id)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, c.config.Admin(r.Context(), record))
}

func (c *CollectionController[T, P]) decode(w http.ResponseWriter, r *http.Request, scope ordering.Scope) (P, error) {
	httpapi.LimitBody(w, r, httpapi.MaxJSONBody)
	var payload P
	if err := httpapi.DecodeJSON(r, &payload); err != nil {
		return payload, err
	}
	if binder, ok := any(&payload).(scopeBinder); ok {
		binder.BindScope(scope)
	}
	return payload, nil
}

func (c *CollectionController[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	scope, err := c.config.Scope(r, false)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	payload, err := c.decode(w, r, scope)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	var none T
	record, err := payload.Entity(none)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	created, err := c.config.Manager.Create(r.Context(), composables.UseAuth(r.Context()), scope, record, payload.ExplicitOrder())
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, c.config.Admin(r.Context(), created))
}

func (c *CollectionController[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	scope, err := c.config.Scope(r, false)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	payload, err := c.decode(w, r, scope)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	updated, err := c.config.Manager.Update(
		r.Context(),
		composables.UseAuth(r.Context()),
		scope,
		id,
		payload.Entity,
		payload.ExplicitOrder(),
	)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, c.config.Admin(r.Context(), updated))
}

func (c *CollectionController[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	scope, err := c.config.Scope(r, false)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	if err := c.config.Manager.Delete(r.Context(), composables.UseAuth(r.Context()), scope, id); err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *CollectionController[T, P]) Reorder(w http.ResponseWriter, r *http.Request) {
	scope, err := c.config.Scope(r, false)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	httpapi.LimitBody(w, r, httpapi.MaxJSONBody)
	ids, err := ordering.ParseReorderRequest(r.Body)
	if err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	if err := c.config.Manager.Reorder(r.Context(), composables.UseAuth(r.Context()), scope, ids); err != nil {
		httpapi.Fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

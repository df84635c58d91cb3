package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/iota-uz/sitecms/pkg/httpapi"
	"github.com/iota-uz/sitecms/pkg/ordering"
)

// Item is the subset of an admin record the client needs. Label is taken from
// the record's name or title.
type Item struct {
	ID       uuid.UUID `json:"id"`
	Order    int       `json:"order"`
	IsActive bool      `json:"isActive"`
	Label    string    `json:"-"`
}

func (i Item) RecordID() uuid.UUID { return i.ID }

func (i *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	var body struct {
		plain
		Name  string `json:"name"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	*i = Item(body.plain)
	i.Label = body.Name
	if i.Label == "" {
		i.Label = body.Title
	}
	return nil
}

// APIError is a non-2xx answer from the admin API.
type APIError struct {
	Status int
	httpapi.ErrorEnvelope
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

// RemoteCollection binds a List to one scope of the admin HTTP API.
type RemoteCollection[T Identified] struct {
	http    *http.Client
	base    *url.URL
	path    string
	session string
}

// NewRemoteCollection addresses /api/admin/{path}, e.g. "jobs" or
// "industries/<id>/solutions". session is sent as a bearer token.
func NewRemoteCollection[T Identified](httpClient *http.Client, baseURL, path, session string) (*RemoteCollection[T], error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RemoteCollection[T]{
		http:    httpClient,
		base:    base,
		path:    strings.Trim(path, "/"),
		session: session,
	}, nil
}

func (c *RemoteCollection[T]) endpoint(suffix string) string {
	return c.base.JoinPath("api", "admin", c.path, suffix).String()
}

func (c *RemoteCollection[T]) do(ctx context.Context, method, endpoint string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode body")
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != "" {
		req.Header.Set("Authorization", "Bearer "+c.session)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr.ErrorEnvelope); err != nil {
			apiErr.Code = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// Fetch is a Fetcher for the scope.
func (c *RemoteCollection[T]) Fetch(ctx context.Context) ([]T, error) {
	var items []T
	if err := c.do(ctx, http.MethodGet, c.endpoint(""), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Reorder is a Mutator for the scope.
func (c *RemoteCollection[T]) Reorder(ctx context.Context, orderedIDs []uuid.UUID) error {
	return c.do(ctx, http.MethodPut, c.endpoint("reorder"), ordering.ReorderRequest{OrderedIDs: orderedIDs}, nil)
}

// List returns a state machine wired to this scope.
func (c *RemoteCollection[T]) List(opts ...Option[T]) *List[T] {
	return NewList(c.Fetch, c.Reorder, opts...)
}

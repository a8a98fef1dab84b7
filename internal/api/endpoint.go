package api

import (
	"context"
	"encoding/json"

	"homequest-admin/internal/cache"
	apperrors "homequest-admin/internal/errors"
	"homequest-admin/internal/models"
	"homequest-admin/internal/transport"
)

// Kind distinguishes cached queries from invalidating mutations.
type Kind int

const (
	KindQuery Kind = iota
	KindMutation
)

// Op classifies a mutation for the invalidation conventions: creates
// invalidate the entity's list; updates and deletes additionally
// invalidate the touched item.
type Op int

const (
	OpNone Op = iota
	OpCreate
	OpUpdate
	OpDelete
)

// Endpoint is one row of an entity module's endpoint table: a named
// query or mutation bound to one REST call shape.
type Endpoint struct {
	Name   string
	Method string
	Path   string // printf-style template for id-addressed endpoints
	Kind   Kind
	Entity cache.Entity // "" for endpoints outside the entity cache (auth, upload)
	List   bool
	Op     Op
}

// WriteInvalidates returns the tag set a write on this endpoint must
// invalidate. Every create/update/delete includes the entity's list
// tag so mounted list views pick the change up without manual refetch.
func (ep Endpoint) WriteInvalidates(id string) []cache.Tag {
	if ep.Entity == "" {
		return nil
	}
	switch ep.Op {
	case OpCreate:
		return []cache.Tag{cache.ListTag(ep.Entity)}
	case OpUpdate, OpDelete:
		return []cache.Tag{cache.ItemTag(ep.Entity, id), cache.ListTag(ep.Entity)}
	default:
		return nil
	}
}

var registry []Endpoint

func register(ep Endpoint) Endpoint {
	registry = append(registry, ep)
	return ep
}

// Endpoints returns a copy of every registered endpoint declaration.
func Endpoints() []Endpoint {
	out := make([]Endpoint, len(registry))
	copy(out, registry)
	return out
}

// listProvides builds the tag set for a list result: the entity's list
// tag always (even for an empty page, so a later create still reaches
// the mounted empty view) plus one item tag per row.
func listProvides[T any](entity cache.Entity, page models.Page[T], id func(T) string) []cache.Tag {
	tags := make([]cache.Tag, 0, len(page.Items)+1)
	tags = append(tags, cache.ListTag(entity))
	for _, item := range page.Items {
		tags = append(tags, cache.ItemTag(entity, id(item)))
	}
	return tags
}

// resolve runs a request through the stack and normalizes the outcome:
// network failures and non-2xx statuses both come back as AppErrors.
func resolve(ctx context.Context, c *Client, req *transport.Request) (json.RawMessage, error) {
	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		return nil, apperrors.Connection(err)
	}
	if !resp.OK() {
		return nil, apperrors.FromResponse(resp.Status, resp.Data)
	}
	return resp.Data, nil
}

// subscribeQuery subscribes a typed query through the tagged cache.
// The provides callback recomputes the result's tag set from each
// successful response.
func subscribeQuery[T any](c *Client, ep Endpoint, args any, req *transport.Request, provides func(T) []cache.Tag) *QueryHandle[T] {
	fetch := func(ctx context.Context) (json.RawMessage, []cache.Tag, error) {
		data, err := resolve(ctx, c, req)
		if err != nil {
			return nil, nil, err
		}
		var v T
		if len(data) > 0 {
			if err := json.Unmarshal(data, &v); err != nil {
				return nil, nil, apperrors.BadResponse(err)
			}
		}
		return data, provides(v), nil
	}
	return &QueryHandle[T]{sub: c.cache.Subscribe(ep.Name, args, fetch)}
}

// runMutation executes a typed mutation and fires its invalidation
// wave on success.
func runMutation[T any](ctx context.Context, c *Client, req *transport.Request, invalidates []cache.Tag) (T, error) {
	var v T
	data, err := c.cache.Mutate(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return resolve(ctx, c, req)
	}, invalidates)
	if err != nil {
		return v, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &v); err != nil {
			return v, apperrors.BadResponse(err)
		}
	}
	return v, nil
}

// QueryHandle is the typed subscription a view holds while mounted.
type QueryHandle[T any] struct {
	sub *cache.Subscription
}

// Wait blocks until the query settles and decodes the result.
func (h *QueryHandle[T]) Wait(ctx context.Context) (T, error) {
	var v T
	data, err := h.sub.Wait(ctx)
	if err != nil {
		return v, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &v); err != nil {
			return v, apperrors.BadResponse(err)
		}
	}
	return v, nil
}

// Changes signals whenever the cached result changes, including
// automatic refetches triggered by invalidation.
func (h *QueryHandle[T]) Changes() <-chan struct{} {
	return h.sub.Changes()
}

// Snapshot returns the raw cache state without blocking.
func (h *QueryHandle[T]) Snapshot() cache.Snapshot {
	return h.sub.Snapshot()
}

// Refetch forces a new fetch, e.g. behind a manual retry button.
func (h *QueryHandle[T]) Refetch() {
	h.sub.Refetch()
}

// Unsubscribe releases the view's interest in the query.
func (h *QueryHandle[T]) Unsubscribe() {
	h.sub.Unsubscribe()
}

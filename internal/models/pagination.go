package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Page is the canonical paginated list shape used throughout the client.
// The backend answers with either the modern envelope
// {items,total,page,limit,total_pages,has_next,has_prev} or the legacy
// {results,count} one; a few older endpoints name the array after the
// entity (e.g. {"properties": [...], "total": 0}). UnmarshalJSON
// normalizes all of them so callers only ever see this one type.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

func (p *Page[T]) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	itemsRaw, found := fields["items"]
	if !found {
		itemsRaw, found = fields["results"]
	}
	if !found {
		// Older endpoints name the array after the entity; accept a
		// payload with exactly one array-valued field.
		for _, v := range fields {
			if isJSONArray(v) {
				if found {
					return fmt.Errorf("ambiguous list payload: multiple array fields")
				}
				itemsRaw = v
				found = true
			}
		}
	}

	items := []T{}
	if found {
		if err := json.Unmarshal(itemsRaw, &items); err != nil {
			return fmt.Errorf("failed to unmarshal list items: %v", err)
		}
	}
	if items == nil {
		items = []T{}
	}
	p.Items = items

	p.Total = intField(fields, "total")
	if _, ok := fields["total"]; !ok {
		p.Total = intField(fields, "count")
	}
	p.Page = int(intField(fields, "page"))
	p.Limit = int(intField(fields, "limit"))
	if p.Limit == 0 {
		p.Limit = int(intField(fields, "page_size"))
	}
	p.TotalPages = int(intField(fields, "total_pages"))
	p.HasNext = boolField(fields, "has_next")
	p.HasPrev = boolField(fields, "has_prev")

	// Legacy payloads omit the navigation fields; derive them.
	if _, ok := fields["total_pages"]; !ok && p.Limit > 0 {
		p.TotalPages = int((p.Total + int64(p.Limit) - 1) / int64(p.Limit))
		p.HasNext = p.Page < p.TotalPages
		p.HasPrev = p.Page > 1
	}
	return nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

func intField(fields map[string]json.RawMessage, key string) int64 {
	raw, ok := fields[key]
	if !ok {
		return 0
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	return n
}

func boolField(fields map[string]json.RawMessage, key string) bool {
	raw, ok := fields[key]
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false
	}
	return b
}

// ListParams is the shared pagination selection for plain list endpoints.
type ListParams struct {
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// Values serializes the pagination selection into query parameters.
func (p ListParams) Values() url.Values {
	q := url.Values{}
	addPagination(q, p.Page, p.Limit)
	return q
}

func addPagination(q url.Values, page, limit int) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
}

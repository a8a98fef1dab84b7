package models

import (
	"net/url"
	"strconv"
	"time"
)

type Property struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency,omitempty"`
	PropertyType string    `json:"property_type"`
	Status       string    `json:"status"`
	City         string    `json:"city"`
	Address      string    `json:"address"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Area         float64   `json:"area"`
	AgentID      string    `json:"agent_id,omitempty"`
	Images       []string  `json:"images,omitempty"`
	IsFeatured   bool      `json:"is_featured"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PropertyInput carries the writable fields for create and update calls.
type PropertyInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Price        float64  `json:"price"`
	Currency     string   `json:"currency,omitempty"`
	PropertyType string   `json:"property_type,omitempty"`
	Status       string   `json:"status,omitempty"`
	City         string   `json:"city,omitempty"`
	Address      string   `json:"address,omitempty"`
	Bedrooms     int      `json:"bedrooms,omitempty"`
	Bathrooms    int      `json:"bathrooms,omitempty"`
	Area         float64  `json:"area,omitempty"`
	AgentID      string   `json:"agent_id,omitempty"`
	Images       []string `json:"images,omitempty"`
	IsFeatured   bool     `json:"is_featured,omitempty"`
}

// PropertyFilter is the filter/sort/pagination selection for the property list.
type PropertyFilter struct {
	Search       string  `json:"search,omitempty"`
	City         string  `json:"city,omitempty"`
	Status       string  `json:"status,omitempty"`
	PropertyType string  `json:"property_type,omitempty"`
	MinPrice     float64 `json:"min_price,omitempty"`
	MaxPrice     float64 `json:"max_price,omitempty"`
	Ordering     string  `json:"ordering,omitempty"`
	Page         int     `json:"page,omitempty"`
	Limit        int     `json:"limit,omitempty"`
}

// Values serializes the filter into request query parameters.
func (f PropertyFilter) Values() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.PropertyType != "" {
		q.Set("property_type", f.PropertyType)
	}
	if f.MinPrice > 0 {
		q.Set("min_price", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		q.Set("max_price", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.Ordering != "" {
		q.Set("ordering", f.Ordering)
	}
	addPagination(q, f.Page, f.Limit)
	return q
}

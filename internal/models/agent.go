package models

import (
	"net/url"
	"time"
)

type Agent struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone"`
	Agency     string    `json:"agency,omitempty"`
	LicenseNo  string    `json:"license_no,omitempty"`
	PhotoURL   string    `json:"photo_url,omitempty"`
	Rating     float64   `json:"rating,omitempty"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// AgentInput carries the writable fields for agent create and update calls.
type AgentInput struct {
	FullName   string `json:"full_name,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Agency     string `json:"agency,omitempty"`
	LicenseNo  string `json:"license_no,omitempty"`
	PhotoURL   string `json:"photo_url,omitempty"`
	IsVerified *bool  `json:"is_verified,omitempty"`
}

// AgentFilter is the filter selection for the agent list.
type AgentFilter struct {
	Search string `json:"search,omitempty"`
	Agency string `json:"agency,omitempty"`
	Page   int    `json:"page,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

func (f AgentFilter) Values() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Agency != "" {
		q.Set("agency", f.Agency)
	}
	addPagination(q, f.Page, f.Limit)
	return q
}

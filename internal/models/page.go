package models

import "time"

// Page content is addressed by unique name rather than numeric id.
type StaticPage struct {
	UniqueName string    `json:"unique_name"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StaticPageInput carries the writable fields for static page writes.
type StaticPageInput struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

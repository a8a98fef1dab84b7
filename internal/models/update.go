package models

import "time"

type AppUpdate struct {
	ID          string    `json:"id"`
	Version     string    `json:"version"`
	Platform    string    `json:"platform"`
	Notes       string    `json:"notes,omitempty"`
	IsMandatory bool      `json:"is_mandatory"`
	ReleasedAt  time.Time `json:"released_at"`
}

// AppUpdateInput carries the writable fields for app update writes.
type AppUpdateInput struct {
	Version     string `json:"version,omitempty"`
	Platform    string `json:"platform,omitempty"`
	Notes       string `json:"notes,omitempty"`
	IsMandatory *bool  `json:"is_mandatory,omitempty"`
}

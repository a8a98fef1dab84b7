package models

import "time"

type BugReport struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    string    `json:"severity,omitempty"`
	Status      string    `json:"status"`
	ReporterID  string    `json:"reporter_id,omitempty"`
	MediaURLs   []string  `json:"media_urls,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BugReportInput carries the writable fields for bug report writes.
type BugReportInput struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Severity    string `json:"severity,omitempty"`
	Status      string `json:"status,omitempty"`
}

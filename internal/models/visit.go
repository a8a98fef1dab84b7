package models

import "time"

type Visit struct {
	ID          string    `json:"id"`
	PropertyID  string    `json:"property_id"`
	UserID      string    `json:"user_id"`
	AgentID     string    `json:"agent_id,omitempty"`
	Status      string    `json:"status"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// VisitInput schedules a new visit.
type VisitInput struct {
	PropertyID  string    `json:"property_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Note        string    `json:"note,omitempty"`
}

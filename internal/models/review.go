package models

import "time"

type Review struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id,omitempty"`
	AgentID    string    `json:"agent_id,omitempty"`
	UserID     string    `json:"user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

package models

import "time"

type Booking struct {
	ID            string    `json:"id"`
	PropertyID    string    `json:"property_id"`
	UserID        string    `json:"user_id"`
	Status        string    `json:"status"`
	Amount        float64   `json:"amount"`
	PaymentStatus string    `json:"payment_status,omitempty"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BookingActionRequest drives the booking lifecycle endpoints
// (cancel, payment, review).
type BookingActionRequest struct {
	BookingID string  `json:"booking_id"`
	Reason    string  `json:"reason,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	Rating    int     `json:"rating,omitempty"`
	Comment   string  `json:"comment,omitempty"`
}

package models

import "time"

// StatusUpdate is the message pushed to live feed subscribers (and through
// Redis Pub/Sub) whenever a complaint is created or transitioned.
type StatusUpdate struct {
	ComplaintID string    `json:"complaint_id"`
	Stage       Status    `json:"stage"`
	Officer     string    `json:"officer,omitempty"`
	Action      string    `json:"action,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

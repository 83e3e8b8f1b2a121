package model

import "time"

// LinkEvent is published to NATS when a link changes state.
type LinkEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Identifier string    `json:"identifier"`
	Timestamp  time.Time `json:"timestamp"`
}

const (
	LinkEventCreated = "created"
	LinkEventExpired = "expired"

	LinkStreamName     = "LINKS"
	LinkStreamSubjects = "links.*"
	LinkStreamMaxBytes = 1024 * 1024 * 50 // 50MB

	LinkCreatedSubject = "links.created"
	LinkExpiredSubject = "links.expired"
)

// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types published to the audit queue.
const (
	TypeUserRegistered  = "user.registered"
	TypeReviewSubmitted = "review.submitted"
)

// AuditQueueName is the durable queue the publisher and consumer share.
const AuditQueueName = "catalog.audit"

// AuditEvent is published after a state-changing operation worth an audit
// trail. It carries enough information for downstream consumers to log or
// trigger notifications without querying the primary database. Fields not
// relevant to the event type are left empty.
type AuditEvent struct {
	Type       string `json:"type"`
	OccurredAt string `json:"occurred_at"`

	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`

	ReviewID     string `json:"review_id,omitempty"`
	MovieID      string `json:"movie_id,omitempty"`
	MovieTitle   string `json:"movie_title,omitempty"`
	Rating       int    `json:"rating,omitempty"`
	Resubmission bool   `json:"resubmission,omitempty"`
}

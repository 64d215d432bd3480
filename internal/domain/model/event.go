package model

import "time"

// DecisionEvent is the record pushed onto the notification queue whenever a
// request is created or transitioned. The notifier worker hands these to the
// external presentation layer; the engine itself never blocks on delivery.
type DecisionEvent struct {
	ID          string        `json:"id"`
	RequestID   string        `json:"request_id"`
	SubmitterID string        `json:"submitter_id"`
	Status      RequestStatus `json:"status"`
	Reason      *string       `json:"reason,omitempty"`
	ActorID     string        `json:"actor_id"`
	OccurredAt  time.Time     `json:"occurred_at"`
}

package model

import "time"

type RequestStatus string

const (
	StatusSubmitted     RequestStatus = "Submitted"
	StatusTier1Approved RequestStatus = "Tier1Approved"
	StatusTier2Approved RequestStatus = "Tier2Approved"
	StatusRejected      RequestStatus = "Rejected"
)

// Valid reports whether s is one of the defined request statuses.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusTier1Approved, StatusTier2Approved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s RequestStatus) Terminal() bool {
	return s == StatusTier2Approved || s == StatusRejected
}

// VerificationRequest is a citizen's document-verification submission.
// SubmitterID, DocumentURL, Comment and CreatedAt are immutable after
// creation; only Status and RejectionReason change, and only through the
// lifecycle engine's guarded transitions.
type VerificationRequest struct {
	ID              string        `json:"id"`
	SubmitterID     string        `json:"submitter_id"`
	DocumentURL     string        `json:"document_url"`
	Comment         string        `json:"comment"`
	Status          RequestStatus `json:"status"`
	RejectionReason *string       `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

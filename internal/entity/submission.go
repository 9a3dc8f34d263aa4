package entity

import (
	"github.com/google/uuid"
)

// db model
type BidSubmission struct {
	Id               uuid.UUID `json:"id" db:"id"`
	BidInviteId      uuid.UUID `json:"bidInviteId" db:"bid_invite_id"`
	Version          int       `json:"version" db:"version"`
	Status           string    `json:"status" db:"status"`
	IsCurrent        bool      `json:"isCurrent" db:"is_current"`
	IsAwarded        bool      `json:"isAwarded" db:"is_awarded"`
	TotalCents       *int64    `json:"totalCents" db:"total_cents"`
	ValidUntil       *string   `json:"validUntil" db:"valid_until"`
	Exclusions       string    `json:"exclusions" db:"exclusions"`
	Clarifications   string    `json:"clarifications" db:"clarifications"`
	Notes            string    `json:"notes" db:"notes"`
	SubmittedAt      string    `json:"submittedAt" db:"submitted_at"`
	SubmittedByName  string    `json:"submittedByName" db:"submitted_by_name"`
	SubmittedByEmail string    `json:"submittedByEmail" db:"submitted_by_email"`
}

// service + repo input model
type SubmitBidInput struct {
	BidInviteId      string
	TotalCents       *int64
	ValidUntil       *string
	Exclusions       string
	Clarifications   string
	Notes            string
	SubmittedByName  string
	SubmittedByEmail string
	// Version computed, IsCurrent set true, Status set to "submitted"
}

// controller model
type SubmissionOutputModel struct {
	Id               string  `json:"id"`
	BidInviteId      string  `json:"bidInviteId"`
	Version          int     `json:"version"`
	Status           string  `json:"status"`
	IsCurrent        bool    `json:"isCurrent"`
	IsAwarded        bool    `json:"isAwarded"`
	TotalCents       *int64  `json:"totalCents,omitempty"`
	ValidUntil       *string `json:"validUntil,omitempty"`
	Exclusions       string  `json:"exclusions,omitempty"`
	Clarifications   string  `json:"clarifications,omitempty"`
	Notes            string  `json:"notes,omitempty"`
	SubmittedAt      string  `json:"submittedAt"`
	SubmittedByName  string  `json:"submittedByName,omitempty"`
	SubmittedByEmail string  `json:"submittedByEmail,omitempty"`
}

// Award returns the package alongside the winning submission; Warning is set on
// degraded success when the downstream commitment could not be created.
type AwardOutputModel struct {
	Package    PackageOutputModel    `json:"package"`
	Submission SubmissionOutputModel `json:"submission"`
	Warning    string                `json:"warning,omitempty"`
}

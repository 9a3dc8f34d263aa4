package entity

import (
	"github.com/google/uuid"
)

// db model; access counters are a read-time projection over access_grant rows,
// filled by the repo, never stored on the invite row itself
type BidInvite struct {
	Id           uuid.UUID  `json:"id" db:"id"`
	BidPackageId uuid.UUID  `json:"bidPackageId" db:"bid_package_id"`
	CompanyId    *uuid.UUID `json:"companyId" db:"company_id"`
	ContactId    *uuid.UUID `json:"contactId" db:"contact_id"`
	InviteEmail  *string    `json:"inviteEmail" db:"invite_email"`
	Status       string     `json:"status" db:"status"`
	SentAt       *string    `json:"sentAt" db:"sent_at"`
	LastViewedAt *string    `json:"lastViewedAt" db:"last_viewed_at"`
	DeclinedAt   *string    `json:"declinedAt" db:"declined_at"`
	SubmittedAt  *string    `json:"submittedAt" db:"submitted_at"`
	CreatedAt    string     `json:"createdAt" db:"created_at"`

	RequireAccountEnforced bool `json:"requireAccountEnforced" db:"require_account_enforced"`

	AccessCounts
}

// AccessCounts is the aggregate projection over non-revoked grants, partitioned
// by channel; AccessTotal alone counts every link grant ever issued.
type AccessCounts struct {
	ActiveAccessCount        int `json:"activeAccessCount"`
	PausedAccessCount        int `json:"pausedAccessCount"`
	AccessTotal              int `json:"accessTotal"`
	LinkedAccountCount       int `json:"linkedAccountCount"`
	LinkedActiveAccountCount int `json:"linkedActiveAccountCount"`
	LinkedPausedAccountCount int `json:"linkedPausedAccountCount"`
}

// service + repo input model; exactly one of CompanyId and Email identifies the
// invitee (ContactId may ride along with CompanyId)
type InviteItemInput struct {
	CompanyId   string
	ContactId   string
	Email       string
	DisplayName string
}

type CreateInvitesInput struct {
	BidPackageId string
	Items        []InviteItemInput
	SendEmails   bool
}

type FailedInviteItem struct {
	Item   InviteItemInput `json:"item"`
	Reason string          `json:"reason"`
}

type CreateInvitesResult struct {
	Created          []InviteOutputModel `json:"created"`
	Failed           []FailedInviteItem  `json:"failed"`
	EmailsSent       int                 `json:"emailsSent"`
	CompaniesCreated int                 `json:"companiesCreated"`
}

// controller model
type InviteOutputModel struct {
	Id           string  `json:"id"`
	BidPackageId string  `json:"bidPackageId"`
	CompanyId    *string `json:"companyId,omitempty"`
	ContactId    *string `json:"contactId,omitempty"`
	InviteEmail  *string `json:"inviteEmail,omitempty"`
	Status       string  `json:"status"`
	SentAt       *string `json:"sentAt,omitempty"`
	LastViewedAt *string `json:"lastViewedAt,omitempty"`
	DeclinedAt   *string `json:"declinedAt,omitempty"`
	SubmittedAt  *string `json:"submittedAt,omitempty"`
	CreatedAt    string  `json:"createdAt"`

	RequireAccountEnforced bool `json:"requireAccountEnforced"`

	AccessCounts
}

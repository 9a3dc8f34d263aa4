package entity

import (
	"github.com/google/uuid"
)

// db model; grants are append-only rows, state transitions never delete
type AccessGrant struct {
	Id           uuid.UUID  `json:"id" db:"id"`
	BidInviteId  uuid.UUID  `json:"bidInviteId" db:"bid_invite_id"`
	Channel      string     `json:"channel" db:"channel"`
	State        string     `json:"state" db:"state"`
	Token        *string    `json:"-" db:"token"`
	LinkedUserId *uuid.UUID `json:"linkedUserId" db:"linked_user_id"`
	CreatedAt    string     `json:"createdAt" db:"created_at"`
}

// controller model for a freshly issued link grant
type LinkGrantOutputModel struct {
	GrantId     string `json:"grantId"`
	BidInviteId string `json:"bidInviteId"`
	Token       string `json:"token"`
	Url         string `json:"url"`
}

// controller model for Verify
type VerificationOutputModel struct {
	BidInviteId  string            `json:"bidInviteId"`
	Channel      string            `json:"channel"`
	GrantState   string            `json:"grantState"`
	LinkedUserId *string           `json:"linkedUserId,omitempty"`
	Invite       InviteOutputModel `json:"invite"`
}

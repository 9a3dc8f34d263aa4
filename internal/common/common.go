package common

// Bid package lifecycle.
const (
	PackageDraft     = "draft"
	PackageSent      = "sent"
	PackageOpen      = "open"
	PackageClosed    = "closed"
	PackageAwarded   = "awarded"
	PackageCancelled = "cancelled"
)

// Invite lifecycle.
const (
	InviteDraft     = "draft"
	InviteSent      = "sent"
	InviteViewed    = "viewed"
	InviteDeclined  = "declined"
	InviteSubmitted = "submitted"
)

// Access grant channels.
const (
	ChannelLink    = "link"
	ChannelAccount = "account"
)

// Access grant states. Revoked is terminal.
const (
	GrantActive  = "active"
	GrantPaused  = "paused"
	GrantRevoked = "revoked"
)

// Submission statuses.
const (
	SubmissionSubmitted = "submitted"
	SubmissionRevised   = "revised"
)

func ValidPackageStatus(s string) bool {
	switch s {
	case PackageDraft, PackageSent, PackageOpen, PackageClosed, PackageAwarded, PackageCancelled:
		return true
	default:
		return false
	}
}

func ValidChannel(c string) bool {
	return c == ChannelLink || c == ChannelAccount
}

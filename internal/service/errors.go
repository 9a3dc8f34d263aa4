package service

import "errors"

var (
	ErrPackageNotFound    = errors.New("bid package not found")
	ErrInviteNotFound     = errors.New("bid invite not found")
	ErrSubmissionNotFound = errors.New("bid submission not found")
	ErrAddendumNotFound   = errors.New("bid addendum not found")
	ErrCompanyNotFound    = errors.New("company not found")

	ErrDuplicateVendor  = errors.New("a company with this email already exists")
	ErrAlreadyInvited   = errors.New("company is already invited to this package")
	ErrNoAccessIssued   = errors.New("invite has no access grants to enforce against")
	ErrInvalidChannel   = errors.New("unknown access channel")
	ErrInviteeAmbiguous = errors.New("invite item must reference a company or carry an email, not both")

	// verification denial reasons, each mapped to a distinct user-visible message
	ErrAccessNotFound  = errors.New("access token not found")
	ErrAccessPaused    = errors.New("access is paused")
	ErrAccessRevoked   = errors.New("access has been revoked")
	ErrAccountRequired = errors.New("a signed-in account is required for this invite")

	ErrNotCurrent             = errors.New("submission is not the current version")
	ErrMissingTotal           = errors.New("submission has no total amount")
	ErrAlreadyAwarded         = errors.New("package is already awarded")
	ErrSubmissionNotInPackage = errors.New("submission does not belong to this package")
	ErrInviteAlreadySubmitted = errors.New("invite has already submitted a bid")

	ErrConcurrencyConflict = errors.New("lost a concurrent update race")

	ErrNoNewChanges     = errors.New("no new values")
	ErrPackageNotEdited = errors.New("awarded or cancelled packages cannot be edited")
	ErrInvalidStatus    = errors.New("invalid package status")
	ErrPackageDraft     = errors.New("addenda can only be issued after invites are sent")
)

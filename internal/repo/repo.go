package repo

import (
	"context"

	"bid-management-api/internal/entity"
	"bid-management-api/internal/repo/pgdb"
	"bid-management-api/pkg/postgres"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type Company interface {
	GetCompanyById(ctx context.Context, id string) (*entity.Company, error)
	FindCompanyByEmail(ctx context.Context, email string) (*entity.Company, error)
	CreateCompany(ctx context.Context, name string, email string) (uuid.UUID, error)
	DoesCompanyExistById(ctx context.Context, id string) (bool, error)
}

type BidPackage interface {
	CreatePackage(ctx context.Context, input *entity.CreatePackageInput) (uuid.UUID, error)
	GetPackageById(ctx context.Context, id string) (*entity.BidPackage, error)
	GetPackagesByProjectId(ctx context.Context, projectId string, pg *entity.PaginationInput) ([]entity.BidPackage, error)
	UpdatePackageById(ctx context.Context, id string, input *entity.UpdatePackageInput) error
	UpdatePackageStatusById(ctx context.Context, id string, newStatus string) error

	// AwardPackage flips package status to awarded and flags the submission in
	// one transaction; returns repo_errors.ErrConflict when the package was
	// already awarded or the submission is no longer current.
	AwardPackage(ctx context.Context, packageId string, submissionId string) error

	CreateAddendum(ctx context.Context, input *entity.IssueAddendumInput) (uuid.UUID, error)
	GetAddendumById(ctx context.Context, id string) (*entity.BidAddendum, error)
	GetAddendaByPackageId(ctx context.Context, packageId string) ([]entity.BidAddendum, error)
}

type Invite interface {
	CreateInvite(ctx context.Context, packageId string, companyId, contactId, inviteEmail *string) (uuid.UUID, error)
	GetInviteById(ctx context.Context, id string) (*entity.BidInvite, error)
	GetInvitesByPackageId(ctx context.Context, packageId string, pg *entity.PaginationInput) ([]entity.BidInvite, error)
	HasInviteForCompany(ctx context.Context, packageId string, companyId string) (bool, error)
	HasInviteForEmail(ctx context.Context, packageId string, email string) (bool, error)

	MarkInviteSent(ctx context.Context, id string) error
	MarkInviteViewed(ctx context.Context, id string) error
	MarkInviteDeclined(ctx context.Context, id string) error
	SetRequireAccount(ctx context.Context, id string, enforced bool) error
}

type AccessGrant interface {
	CreateLinkGrant(ctx context.Context, inviteId string, token string) (uuid.UUID, error)
	CreateAccountGrant(ctx context.Context, inviteId string, userId string) (uuid.UUID, error)
	GetGrantByToken(ctx context.Context, token string) (*entity.AccessGrant, error)

	// TransitionChannel moves every grant of the channel in fromState to
	// toState; zero matching grants is a no-op, not an error.
	TransitionChannel(ctx context.Context, inviteId string, channel string, fromState string, toState string) error
	RevokeChannel(ctx context.Context, inviteId string, channel string) error

	GetCounts(ctx context.Context, inviteId string) (*entity.AccessCounts, error)
	CountNonRevoked(ctx context.Context, inviteId string) (int, error)
	HasActiveAccountGrant(ctx context.Context, inviteId string, userId string) (bool, error)
}

type Submission interface {
	// CreateSubmission demotes the prior current version, inserts the next
	// version and advances the invite to submitted, all in one transaction.
	CreateSubmission(ctx context.Context, input *entity.SubmitBidInput) (uuid.UUID, error)
	GetSubmissionById(ctx context.Context, id string) (*entity.BidSubmission, error)
	GetCurrentByPackageId(ctx context.Context, packageId string) ([]entity.BidSubmission, error)
	GetVersionsByInviteId(ctx context.Context, inviteId string) ([]entity.BidSubmission, error)
	GetAwardedByPackageId(ctx context.Context, packageId string) (*entity.BidSubmission, error)
}

type Repositories struct {
	Diagnostics
	Company
	BidPackage
	Invite
	AccessGrant
	Submission
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		Company:     pgdb.NewCompanyRepo(p),
		BidPackage:  pgdb.NewBidPackageRepo(p),
		Invite:      pgdb.NewInviteRepo(p),
		AccessGrant: pgdb.NewAccessGrantRepo(p),
		Submission:  pgdb.NewSubmissionRepo(p),
	}
}

package service

import (
	"context"

	"bid-management-api/internal/entity"
	"bid-management-api/internal/repo"
)

type Diagnostics interface {
	Ping() error
}

type BidPackage interface {
	CreatePackage(ctx context.Context, input *entity.CreatePackageInput) (*entity.PackageOutputModel, error)
	GetPackageById(ctx context.Context, id string) (*entity.PackageOutputModel, error)
	GetPackagesByProject(ctx context.Context, projectId string, pg *entity.PaginationInput) ([]entity.PackageOutputModel, error)
	EditPackageById(ctx context.Context, id string, input *entity.UpdatePackageInput) (*entity.PackageOutputModel, error)
	UpdatePackageStatusById(ctx context.Context, id string, newStatus string) (*entity.PackageOutputModel, error)

	Award(ctx context.Context, packageId string, submissionId string) (*entity.AwardOutputModel, error)

	IssueAddendum(ctx context.Context, input *entity.IssueAddendumInput) (*entity.AddendumOutputModel, error)
	GetAddendaByPackage(ctx context.Context, packageId string) ([]entity.AddendumOutputModel, error)
}

type Invite interface {
	CreateInvites(ctx context.Context, input *entity.CreateInvitesInput) (*entity.CreateInvitesResult, error)
	GetInviteById(ctx context.Context, id string) (*entity.InviteOutputModel, error)
	GetInvitesByPackage(ctx context.Context, packageId string, pg *entity.PaginationInput) ([]entity.InviteOutputModel, error)

	RecordView(ctx context.Context, inviteId string) (*entity.InviteOutputModel, error)
	RecordDecline(ctx context.Context, inviteId string) (*entity.InviteOutputModel, error)
	SetRequireAccount(ctx context.Context, inviteId string, enforced bool) (*entity.InviteOutputModel, error)
}

type Access interface {
	IssueLinkGrant(ctx context.Context, inviteId string) (*entity.LinkGrantOutputModel, error)
	LinkAccountGrant(ctx context.Context, inviteId string, userId string) (*entity.AccessCounts, error)

	PauseChannel(ctx context.Context, inviteId string, channel string) (*entity.AccessCounts, error)
	ResumeChannel(ctx context.Context, inviteId string, channel string) (*entity.AccessCounts, error)
	RevokeChannel(ctx context.Context, inviteId string, channel string) (*entity.AccessCounts, error)

	Counts(ctx context.Context, inviteId string) (*entity.AccessCounts, error)
	Verify(ctx context.Context, token string, userId string) (*entity.VerificationOutputModel, error)
}

type Submission interface {
	Submit(ctx context.Context, input *entity.SubmitBidInput) (*entity.SubmissionOutputModel, error)
	GetSubmissionById(ctx context.Context, id string) (*entity.SubmissionOutputModel, error)
	ListCurrentByPackage(ctx context.Context, packageId string) ([]entity.SubmissionOutputModel, error)
	ListVersions(ctx context.Context, inviteId string) ([]entity.SubmissionOutputModel, error)
}

type Services struct {
	Diagnostics Diagnostics
	BidPackage  BidPackage
	Invite      Invite
	Access      Access
	Submission  Submission
}

func NewServices(repos *repo.Repositories, gateways *Gateways, publicBaseUrl string) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		BidPackage:  NewBidPackageService(repos, gateways),
		Invite:      NewInviteService(repos, gateways, publicBaseUrl),
		Access:      NewAccessService(repos, publicBaseUrl),
		Submission:  NewSubmissionService(repos, gateways),
	}
}

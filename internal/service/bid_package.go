package service

import (
	"context"
	"errors"
	"fmt"

	"bid-management-api/internal/common"
	"bid-management-api/internal/entity"
	"bid-management-api/internal/repo"
	"bid-management-api/internal/repo/repo_errors"
)

const addendumEntityType = "bid_addendum"

type BidPackageService struct {
	packageRepo    repo.BidPackage
	inviteRepo     repo.Invite
	submissionRepo repo.Submission
	gateways       *Gateways
}

func NewBidPackageService(repos *repo.Repositories, gateways *Gateways) *BidPackageService {
	return &BidPackageService{
		packageRepo:    repos.BidPackage,
		inviteRepo:     repos.Invite,
		submissionRepo: repos.Submission,
		gateways:       gateways,
	}
}

func (s *BidPackageService) CreatePackage(ctx context.Context, input *entity.CreatePackageInput) (*entity.PackageOutputModel, error) {
	id, err := s.packageRepo.CreatePackage(ctx, input)
	if err != nil {
		return nil, err
	}

	pkg, err := s.packageRepo.GetPackageById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapPackage(pkg), nil
}

func (s *BidPackageService) GetPackageById(ctx context.Context, id string) (*entity.PackageOutputModel, error) {
	pkg, err := s.packageRepo.GetPackageById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrPackageNotFound
		}

		return nil, err
	}

	return mapPackage(pkg), nil
}

func (s *BidPackageService) GetPackagesByProject(ctx context.Context, projectId string, pg *entity.PaginationInput) ([]entity.PackageOutputModel, error) {
	packages, err := s.packageRepo.GetPackagesByProjectId(ctx, projectId, pg)
	if err != nil {
		return nil, err
	}

	return mapPackages(packages), nil
}

func (s *BidPackageService) EditPackageById(ctx context.Context, id string, input *entity.UpdatePackageInput) (*entity.PackageOutputModel, error) {
	if input.Title == "" && input.Trade == "" && input.Scope == "" &&
		input.Instructions == "" && input.DueAt == nil {
		return nil, ErrNoNewChanges
	}

	pkg, err := s.packageRepo.GetPackageById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrPackageNotFound
		}

		return nil, err
	}

	if pkg.Status == common.PackageAwarded || pkg.Status == common.PackageCancelled {
		return nil, ErrPackageNotEdited
	}

	err = s.packageRepo.UpdatePackageById(ctx, id, input)
	if err != nil {
		return nil, err
	}

	pkg, err = s.packageRepo.GetPackageById(ctx, id)
	if err != nil {
		return nil, err
	}

	return mapPackage(pkg), nil
}

// UpdatePackageStatusById handles manual lifecycle moves; awarding is never
// reachable through this path, only through Award.
func (s *BidPackageService) UpdatePackageStatusById(ctx context.Context, id string, newStatus string) (*entity.PackageOutputModel, error) {
	if !common.ValidPackageStatus(newStatus) || newStatus == common.PackageAwarded {
		return nil, ErrInvalidStatus
	}

	pkg, err := s.packageRepo.GetPackageById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrPackageNotFound
		}

		return nil, err
	}

	if pkg.Status == common.PackageAwarded {
		return nil, ErrAlreadyAwarded
	}

	err = s.packageRepo.UpdatePackageStatusById(ctx, id, newStatus)
	if err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrAlreadyAwarded
		}

		return nil, err
	}

	pkg, err = s.packageRepo.GetPackageById(ctx, id)
	if err != nil {
		return nil, err
	}

	return mapPackage(pkg), nil
}

// Award commits exactly one submission as the package winner. The repo call is
// the exclusivity point; everything before it is advisory and re-checked there.
func (s *BidPackageService) Award(ctx context.Context, packageId string, submissionId string) (*entity.AwardOutputModel, error) {
	pkg, err := s.packageRepo.GetPackageById(ctx, packageId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrPackageNotFound
		}

		return nil, err
	}

	if pkg.Status == common.PackageAwarded {
		return nil, s.alreadyAwardedError(ctx, packageId)
	}

	submission, err := s.submissionRepo.GetSubmissionById(ctx, submissionId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}

		return nil, err
	}

	invite, err := s.inviteRepo.GetInviteById(ctx, submission.BidInviteId.String())
	if err != nil {
		return nil, err
	}
	if invite.BidPackageId.String() != packageId {
		return nil, ErrSubmissionNotInPackage
	}

	if !submission.IsCurrent {
		return nil, ErrNotCurrent
	}
	if submission.TotalCents == nil {
		return nil, ErrMissingTotal
	}

	err = s.packageRepo.AwardPackage(ctx, packageId, submissionId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, s.alreadyAwardedError(ctx, packageId)
		}

		return nil, err
	}

	s.gateways.Audit.Record(ctx, "package.awarded", map[string]string{
		"packageId":    packageId,
		"submissionId": submissionId,
	})

	out := &entity.AwardOutputModel{}
	if err := s.gateways.Commitment.CreateCommitment(ctx, packageId, submissionId); err != nil {
		// the award already committed; surface the degraded side effect
		out.Warning = "award recorded, but commitment creation failed: " + err.Error()
	}

	pkg, err = s.packageRepo.GetPackageById(ctx, packageId)
	if err != nil {
		return nil, err
	}

	submission, err = s.submissionRepo.GetSubmissionById(ctx, submissionId)
	if err != nil {
		return nil, err
	}

	out.Package = *mapPackage(pkg)
	out.Submission = *mapSubmission(submission)

	return out, nil
}

// alreadyAwardedError names the winning submission so a losing caller learns
// who won, not just that it lost.
func (s *BidPackageService) alreadyAwardedError(ctx context.Context, packageId string) error {
	winner, err := s.submissionRepo.GetAwardedByPackageId(ctx, packageId)
	if err != nil {
		// awarded status without a flagged submission means we raced the
		// winning transaction; report the conflict distinctly
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrConcurrencyConflict
		}

		return err
	}

	return fmt.Errorf("%w: winning submission %s", ErrAlreadyAwarded, winner.Id)
}

func (s *BidPackageService) IssueAddendum(ctx context.Context, input *entity.IssueAddendumInput) (*entity.AddendumOutputModel, error) {
	pkg, err := s.packageRepo.GetPackageById(ctx, input.BidPackageId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrPackageNotFound
		}

		return nil, err
	}

	if pkg.Status == common.PackageDraft {
		return nil, ErrPackageDraft
	}
	if pkg.Status == common.PackageCancelled {
		return nil, ErrPackageNotEdited
	}

	id, err := s.packageRepo.CreateAddendum(ctx, input)
	if err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrConcurrencyConflict
		}

		return nil, err
	}

	for _, fileId := range input.FileIds {
		if _, err := s.gateways.Attachment.Attach(ctx, addendumEntityType, id.String(), fileId); err != nil {
			return nil, err
		}
	}

	addendum, err := s.packageRepo.GetAddendumById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapAddendum(addendum), nil
}

func (s *BidPackageService) GetAddendaByPackage(ctx context.Context, packageId string) ([]entity.AddendumOutputModel, error) {
	if _, err := s.packageRepo.GetPackageById(ctx, packageId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrPackageNotFound
		}

		return nil, err
	}

	addenda, err := s.packageRepo.GetAddendaByPackageId(ctx, packageId)
	if err != nil {
		return nil, err
	}

	return mapAddenda(addenda), nil
}

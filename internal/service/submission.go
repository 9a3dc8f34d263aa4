package service

import (
	"context"
	"errors"

	"bid-management-api/internal/common"
	"bid-management-api/internal/entity"
	"bid-management-api/internal/repo"
	"bid-management-api/internal/repo/repo_errors"
)

type SubmissionService struct {
	submissionRepo repo.Submission
	inviteRepo     repo.Invite
	gateways       *Gateways
}

func NewSubmissionService(repos *repo.Repositories, gateways *Gateways) *SubmissionService {
	return &SubmissionService{
		submissionRepo: repos.Submission,
		inviteRepo:     repos.Invite,
		gateways:       gateways,
	}
}

// Submit appends the next version for the invite. A submit after a decline is
// a legitimate change of mind; it is recorded as a distinct re-open event and
// declined_at stays in place as history.
func (s *SubmissionService) Submit(ctx context.Context, input *entity.SubmitBidInput) (*entity.SubmissionOutputModel, error) {
	invite, err := s.inviteRepo.GetInviteById(ctx, input.BidInviteId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrInviteNotFound
		}

		return nil, err
	}

	reopened := invite.Status == common.InviteDeclined

	id, err := s.submissionRepo.CreateSubmission(ctx, input)
	if err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrConcurrencyConflict
		}
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrInviteNotFound
		}

		return nil, err
	}

	event := "submission.created"
	if reopened {
		event = "submission.reopened_after_decline"
	}
	s.gateways.Audit.Record(ctx, event, map[string]string{
		"inviteId":     input.BidInviteId,
		"submissionId": id.String(),
	})

	submission, err := s.submissionRepo.GetSubmissionById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapSubmission(submission), nil
}

func (s *SubmissionService) GetSubmissionById(ctx context.Context, id string) (*entity.SubmissionOutputModel, error) {
	submission, err := s.submissionRepo.GetSubmissionById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}

		return nil, err
	}

	return mapSubmission(submission), nil
}

func (s *SubmissionService) ListCurrentByPackage(ctx context.Context, packageId string) ([]entity.SubmissionOutputModel, error) {
	submissions, err := s.submissionRepo.GetCurrentByPackageId(ctx, packageId)
	if err != nil {
		return nil, err
	}

	return mapSubmissions(submissions), nil
}

func (s *SubmissionService) ListVersions(ctx context.Context, inviteId string) ([]entity.SubmissionOutputModel, error) {
	if _, err := s.inviteRepo.GetInviteById(ctx, inviteId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrInviteNotFound
		}

		return nil, err
	}

	submissions, err := s.submissionRepo.GetVersionsByInviteId(ctx, inviteId)
	if err != nil {
		return nil, err
	}

	return mapSubmissions(submissions), nil
}

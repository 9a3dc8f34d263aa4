package service

import (
	"context"
	"errors"

	"bid-management-api/internal/common"
	"bid-management-api/internal/entity"
	"bid-management-api/internal/repo"
	"bid-management-api/internal/repo/repo_errors"
)

type AccessService struct {
	grantRepo  repo.AccessGrant
	inviteRepo repo.Invite
	baseUrl    string
}

func NewAccessService(repos *repo.Repositories, publicBaseUrl string) *AccessService {
	return &AccessService{
		grantRepo:  repos.AccessGrant,
		inviteRepo: repos.Invite,
		baseUrl:    publicBaseUrl,
	}
}

// IssueLinkGrant always mints a fresh grant; earlier links stay valid so an
// owner can hand out a second link without cutting off the first.
func (s *AccessService) IssueLinkGrant(ctx context.Context, inviteId string) (*entity.LinkGrantOutputModel, error) {
	if _, err := s.inviteRepo.GetInviteById(ctx, inviteId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrInviteNotFound
		}

		return nil, err
	}

	token, err := newLinkToken()
	if err != nil {
		return nil, err
	}

	grantId, err := s.grantRepo.CreateLinkGrant(ctx, inviteId, token)
	if err != nil {
		return nil, err
	}

	return &entity.LinkGrantOutputModel{
		GrantId:     grantId.String(),
		BidInviteId: inviteId,
		Token:       token,
		Url:         linkUrl(s.baseUrl, token),
	}, nil
}

func (s *AccessService) LinkAccountGrant(ctx context.Context, inviteId string, userId string) (*entity.AccessCounts, error) {
	if _, err := s.inviteRepo.GetInviteById(ctx, inviteId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrInviteNotFound
		}

		return nil, err
	}

	if _, err := s.grantRepo.CreateAccountGrant(ctx, inviteId, userId); err != nil {
		return nil, err
	}

	return s.grantRepo.GetCounts(ctx, inviteId)
}

func (s *AccessService) PauseChannel(ctx context.Context, inviteId string, channel string) (*entity.AccessCounts, error) {
	return s.transition(ctx, inviteId, channel, common.GrantActive, common.GrantPaused)
}

func (s *AccessService) ResumeChannel(ctx context.Context, inviteId string, channel string) (*entity.AccessCounts, error) {
	return s.transition(ctx, inviteId, channel, common.GrantPaused, common.GrantActive)
}

func (s *AccessService) transition(ctx context.Context, inviteId string, channel string, from string, to string) (*entity.AccessCounts, error) {
	if !common.ValidChannel(channel) {
		return nil, ErrInvalidChannel
	}

	if _, err := s.inviteRepo.GetInviteById(ctx, inviteId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrInviteNotFound
		}

		return nil, err
	}

	if err := s.grantRepo.TransitionChannel(ctx, inviteId, channel, from, to); err != nil {
		return nil, err
	}

	return s.grantRepo.GetCounts(ctx, inviteId)
}

func (s *AccessService) RevokeChannel(ctx context.Context, inviteId string, channel string) (*entity.AccessCounts, error) {
	if !common.ValidChannel(channel) {
		return nil, ErrInvalidChannel
	}

	if _, err := s.inviteRepo.GetInviteById(ctx, inviteId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrInviteNotFound
		}

		return nil, err
	}

	if err := s.grantRepo.RevokeChannel(ctx, inviteId, channel); err != nil {
		return nil, err
	}

	return s.grantRepo.GetCounts(ctx, inviteId)
}

func (s *AccessService) Counts(ctx context.Context, inviteId string) (*entity.AccessCounts, error) {
	if _, err := s.inviteRepo.GetInviteById(ctx, inviteId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrInviteNotFound
		}

		return nil, err
	}

	return s.grantRepo.GetCounts(ctx, inviteId)
}

// Verify checks a link token and, when the invite demands a signed-in account,
// an authenticated user id. Each denial reason is distinct so the caller can
// tell a paused link from a revoked one from a missing sign-in.
func (s *AccessService) Verify(ctx context.Context, token string, userId string) (*entity.VerificationOutputModel, error) {
	grant, err := s.grantRepo.GetGrantByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrAccessNotFound
		}

		return nil, err
	}

	switch grant.State {
	case common.GrantPaused:
		return nil, ErrAccessPaused
	case common.GrantRevoked:
		return nil, ErrAccessRevoked
	}

	invite, err := s.inviteRepo.GetInviteById(ctx, grant.BidInviteId.String())
	if err != nil {
		return nil, err
	}

	out := &entity.VerificationOutputModel{
		BidInviteId: invite.Id.String(),
		Channel:     grant.Channel,
		GrantState:  grant.State,
		Invite:      *mapInvite(invite),
	}

	if invite.RequireAccountEnforced {
		if userId == "" {
			return nil, ErrAccountRequired
		}

		linked, err := s.grantRepo.HasActiveAccountGrant(ctx, invite.Id.String(), userId)
		if err != nil {
			return nil, err
		}
		if !linked {
			return nil, ErrAccountRequired
		}

		out.LinkedUserId = &userId
	}

	return out, nil
}

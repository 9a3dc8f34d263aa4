package service

import (
	"context"
	"errors"

	"bid-management-api/internal/entity"
	"bid-management-api/internal/repo"
	"bid-management-api/internal/repo/repo_errors"
)

type InviteService struct {
	inviteRepo  repo.Invite
	packageRepo repo.BidPackage
	companyRepo repo.Company
	grantRepo   repo.AccessGrant
	gateways    *Gateways
	baseUrl     string
}

func NewInviteService(repos *repo.Repositories, gateways *Gateways, publicBaseUrl string) *InviteService {
	return &InviteService{
		inviteRepo:  repos.Invite,
		packageRepo: repos.BidPackage,
		companyRepo: repos.Company,
		grantRepo:   repos.AccessGrant,
		gateways:    gateways,
		baseUrl:     publicBaseUrl,
	}
}

// CreateInvites processes every item; per-item failures land in the Failed
// bucket and never abort the batch. An invite whose email dispatch fails is
// still created, it just stays in draft.
func (s *InviteService) CreateInvites(ctx context.Context, input *entity.CreateInvitesInput) (*entity.CreateInvitesResult, error) {
	pkg, err := s.packageRepo.GetPackageById(ctx, input.BidPackageId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrPackageNotFound
		}

		return nil, err
	}

	result := &entity.CreateInvitesResult{
		Created: make([]entity.InviteOutputModel, 0),
		Failed:  make([]entity.FailedInviteItem, 0),
	}

	for _, item := range input.Items {
		if err := s.createOneInvite(ctx, pkg, item, input.SendEmails, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (s *InviteService) createOneInvite(ctx context.Context, pkg *entity.BidPackage, item entity.InviteItemInput, sendEmail bool, result *entity.CreateInvitesResult) error {
	fail := func(reason string) {
		result.Failed = append(result.Failed, entity.FailedInviteItem{Item: item, Reason: reason})
	}

	if item.CompanyId == "" && item.Email == "" {
		fail("item must reference a company or carry an email")
		return nil
	}
	if item.CompanyId != "" && item.Email != "" {
		fail(ErrInviteeAmbiguous.Error())
		return nil
	}

	var companyId, contactId, inviteEmail *string
	var deliverTo string

	if item.CompanyId != "" {
		company, err := s.companyRepo.GetCompanyById(ctx, item.CompanyId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				fail(ErrCompanyNotFound.Error())
				return nil
			}

			return err
		}

		invited, err := s.inviteRepo.HasInviteForCompany(ctx, pkg.Id.String(), item.CompanyId)
		if err != nil {
			return err
		}
		if invited {
			fail(ErrAlreadyInvited.Error())
			return nil
		}

		companyId = &item.CompanyId
		if item.ContactId != "" {
			contactId = &item.ContactId
		}
		deliverTo = company.Email
	} else {
		_, err := s.companyRepo.FindCompanyByEmail(ctx, item.Email)
		if err == nil {
			// the caller must resolve the collision explicitly, no silent merge
			fail(ErrDuplicateVendor.Error())
			return nil
		}
		if !errors.Is(err, repo_errors.ErrNotFound) {
			return err
		}

		invited, err := s.inviteRepo.HasInviteForEmail(ctx, pkg.Id.String(), item.Email)
		if err != nil {
			return err
		}
		if invited {
			fail(ErrAlreadyInvited.Error())
			return nil
		}

		name := item.DisplayName
		if name == "" {
			name = item.Email
		}
		if _, err := s.companyRepo.CreateCompany(ctx, name, item.Email); err != nil {
			return err
		}
		result.CompaniesCreated++

		inviteEmail = &item.Email
		deliverTo = item.Email
	}

	inviteId, err := s.inviteRepo.CreateInvite(ctx, pkg.Id.String(), companyId, contactId, inviteEmail)
	if err != nil {
		return err
	}

	token, err := newLinkToken()
	if err != nil {
		return err
	}
	if _, err := s.grantRepo.CreateLinkGrant(ctx, inviteId.String(), token); err != nil {
		return err
	}

	if sendEmail && deliverTo != "" {
		subject := "Invitation to bid: " + pkg.Title
		body := "You have been invited to bid on " + pkg.Title + ".\n\n" +
			"Open your bid package: " + linkUrl(s.baseUrl, token) + "\n"

		if err := s.gateways.Notification.Send(ctx, deliverTo, subject, body); err != nil {
			// the invite stays in draft; the caller sees it in Created with
			// its status unchanged
			s.gateways.Audit.Record(ctx, "invite.email_failed", map[string]string{
				"inviteId": inviteId.String(),
				"to":       deliverTo,
			})
		} else {
			if err := s.inviteRepo.MarkInviteSent(ctx, inviteId.String()); err != nil {
				return err
			}
			result.EmailsSent++
		}
	}

	invite, err := s.inviteRepo.GetInviteById(ctx, inviteId.String())
	if err != nil {
		return err
	}
	result.Created = append(result.Created, *mapInvite(invite))

	return nil
}

func (s *InviteService) GetInviteById(ctx context.Context, id string) (*entity.InviteOutputModel, error) {
	invite, err := s.inviteRepo.GetInviteById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrInviteNotFound
		}

		return nil, err
	}

	return mapInvite(invite), nil
}

func (s *InviteService) GetInvitesByPackage(ctx context.Context, packageId string, pg *entity.PaginationInput) ([]entity.InviteOutputModel, error) {
	if _, err := s.packageRepo.GetPackageById(ctx, packageId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrPackageNotFound
		}

		return nil, err
	}

	invites, err := s.inviteRepo.GetInvitesByPackageId(ctx, packageId, pg)
	if err != nil {
		return nil, err
	}

	return mapInvites(invites), nil
}

func (s *InviteService) RecordView(ctx context.Context, inviteId string) (*entity.InviteOutputModel, error) {
	err := s.inviteRepo.MarkInviteViewed(ctx, inviteId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrInviteNotFound
		}

		return nil, err
	}

	invite, err := s.inviteRepo.GetInviteById(ctx, inviteId)
	if err != nil {
		return nil, err
	}

	return mapInvite(invite), nil
}

func (s *InviteService) RecordDecline(ctx context.Context, inviteId string) (*entity.InviteOutputModel, error) {
	if _, err := s.inviteRepo.GetInviteById(ctx, inviteId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrInviteNotFound
		}

		return nil, err
	}

	err := s.inviteRepo.MarkInviteDeclined(ctx, inviteId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrInviteAlreadySubmitted
		}

		return nil, err
	}

	s.gateways.Audit.Record(ctx, "invite.declined", map[string]string{"inviteId": inviteId})

	invite, err := s.inviteRepo.GetInviteById(ctx, inviteId)
	if err != nil {
		return nil, err
	}

	return mapInvite(invite), nil
}

// SetRequireAccount toggles the policy checked at verification time; with no
// live grants of any channel there is nothing to enforce against.
func (s *InviteService) SetRequireAccount(ctx context.Context, inviteId string, enforced bool) (*entity.InviteOutputModel, error) {
	if _, err := s.inviteRepo.GetInviteById(ctx, inviteId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrInviteNotFound
		}

		return nil, err
	}

	count, err := s.grantRepo.CountNonRevoked(ctx, inviteId)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNoAccessIssued
	}

	if err := s.inviteRepo.SetRequireAccount(ctx, inviteId, enforced); err != nil {
		return nil, err
	}

	invite, err := s.inviteRepo.GetInviteById(ctx, inviteId)
	if err != nil {
		return nil, err
	}

	return mapInvite(invite), nil
}

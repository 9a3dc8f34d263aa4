package service

import (
	"bid-management-api/internal/entity"
)

func mapPackage(p *entity.BidPackage) *entity.PackageOutputModel {
	return &entity.PackageOutputModel{
		Id:           p.Id.String(),
		ProjectId:    p.ProjectId.String(),
		Title:        p.Title,
		Trade:        p.Trade,
		Scope:        p.Scope,
		Instructions: p.Instructions,
		DueAt:        p.DueAt,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
	}
}

func mapPackages(packages []entity.BidPackage) []entity.PackageOutputModel {
	s := make([]entity.PackageOutputModel, 0)
	for _, p := range packages {
		s = append(s, *mapPackage(&p))
	}

	return s
}

func mapInvite(i *entity.BidInvite) *entity.InviteOutputModel {
	out := &entity.InviteOutputModel{
		Id:                     i.Id.String(),
		BidPackageId:           i.BidPackageId.String(),
		InviteEmail:            i.InviteEmail,
		Status:                 i.Status,
		SentAt:                 i.SentAt,
		LastViewedAt:           i.LastViewedAt,
		DeclinedAt:             i.DeclinedAt,
		SubmittedAt:            i.SubmittedAt,
		CreatedAt:              i.CreatedAt,
		RequireAccountEnforced: i.RequireAccountEnforced,
		AccessCounts:           i.AccessCounts,
	}

	if i.CompanyId != nil {
		companyId := i.CompanyId.String()
		out.CompanyId = &companyId
	}
	if i.ContactId != nil {
		contactId := i.ContactId.String()
		out.ContactId = &contactId
	}

	return out
}

func mapInvites(invites []entity.BidInvite) []entity.InviteOutputModel {
	s := make([]entity.InviteOutputModel, 0)
	for _, i := range invites {
		s = append(s, *mapInvite(&i))
	}

	return s
}

func mapSubmission(b *entity.BidSubmission) *entity.SubmissionOutputModel {
	return &entity.SubmissionOutputModel{
		Id:               b.Id.String(),
		BidInviteId:      b.BidInviteId.String(),
		Version:          b.Version,
		Status:           b.Status,
		IsCurrent:        b.IsCurrent,
		IsAwarded:        b.IsAwarded,
		TotalCents:       b.TotalCents,
		ValidUntil:       b.ValidUntil,
		Exclusions:       b.Exclusions,
		Clarifications:   b.Clarifications,
		Notes:            b.Notes,
		SubmittedAt:      b.SubmittedAt,
		SubmittedByName:  b.SubmittedByName,
		SubmittedByEmail: b.SubmittedByEmail,
	}
}

func mapSubmissions(submissions []entity.BidSubmission) []entity.SubmissionOutputModel {
	s := make([]entity.SubmissionOutputModel, 0)
	for _, b := range submissions {
		s = append(s, *mapSubmission(&b))
	}

	return s
}

func mapAddendum(a *entity.BidAddendum) *entity.AddendumOutputModel {
	return &entity.AddendumOutputModel{
		Id:           a.Id.String(),
		BidPackageId: a.BidPackageId.String(),
		Number:       a.Number,
		Title:        a.Title,
		Message:      a.Message,
		IssuedAt:     a.IssuedAt,
	}
}

func mapAddenda(addenda []entity.BidAddendum) []entity.AddendumOutputModel {
	s := make([]entity.AddendumOutputModel, 0)
	for _, a := range addenda {
		s = append(s, *mapAddendum(&a))
	}

	return s
}

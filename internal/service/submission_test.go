package service

import (
	"context"
	"sync"
	"testing"

	"bid-management-api/internal/common"
	"bid-management-api/internal/entity"
)

func TestSubmitVersionsAreMonotonic(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	pkg := env.mustCreatePackage(ctx, common.PackageDraft)
	invite := env.mustInvite(ctx, pkg.Id, "bids@acme.example")

	total := int64(100_000)
	for want := 1; want <= 3; want++ {
		submission, err := env.services.Submission.Submit(ctx, &entity.SubmitBidInput{
			BidInviteId: invite.Id,
			TotalCents:  &total,
		})
		if err != nil {
			t.Fatal(err)
		}
		if submission.Version != want {
			t.Fatalf("expected version %d, got %d", want, submission.Version)
		}
		if !submission.IsCurrent {
			t.Fatalf("expected version %d to be current on creation", want)
		}
	}

	versions, err := env.services.Submission.ListVersions(ctx, invite.Id)
	if err != nil {
		t.Fatal(err)
	}
	if len(versions) != 3 {
		t.Fatalf("expected 3 versions, got %d", len(versions))
	}

	currentSeen := 0
	for _, v := range versions {
		if v.IsCurrent {
			currentSeen++
			if v.Version != 3 {
				t.Errorf("expected version 3 to be current, got %d", v.Version)
			}
			if v.Status != common.SubmissionSubmitted {
				t.Errorf("expected current version submitted, got %q", v.Status)
			}
		} else if v.Status != common.SubmissionRevised {
			t.Errorf("expected superseded version %d marked revised, got %q", v.Version, v.Status)
		}
	}
	if currentSeen != 1 {
		t.Errorf("expected exactly one current version, got %d", currentSeen)
	}
}

func TestSubmitAdvancesInvite(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	pkg := env.mustCreatePackage(ctx, common.PackageDraft)
	invite := env.mustInvite(ctx, pkg.Id, "bids@acme.example")

	total := int64(100_000)
	if _, err := env.services.Submission.Submit(ctx, &entity.SubmitBidInput{
		BidInviteId: invite.Id,
		TotalCents:  &total,
	}); err != nil {
		t.Fatal(err)
	}

	updated, err := env.services.Invite.GetInviteById(ctx, invite.Id)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != common.InviteSubmitted {
		t.Errorf("expected invite status submitted, got %q", updated.Status)
	}
	if updated.SubmittedAt == nil {
		t.Error("expected submitted_at to be set")
	}
	if !env.audit.has("submission.created") {
		t.Error("expected submission.created audit event")
	}
}

func TestSubmitAfterDeclineReopens(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	pkg := env.mustCreatePackage(ctx, common.PackageDraft)
	invite := env.mustInvite(ctx, pkg.Id, "bids@acme.example")

	if _, err := env.services.Invite.RecordDecline(ctx, invite.Id); err != nil {
		t.Fatal(err)
	}

	total := int64(80_000)
	if _, err := env.services.Submission.Submit(ctx, &entity.SubmitBidInput{
		BidInviteId: invite.Id,
		TotalCents:  &total,
	}); err != nil {
		t.Fatal(err)
	}

	if !env.audit.has("submission.reopened_after_decline") {
		t.Error("expected the re-open to be recorded as its own event")
	}

	updated, err := env.services.Invite.GetInviteById(ctx, invite.Id)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != common.InviteSubmitted {
		t.Errorf("expected invite status submitted, got %q", updated.Status)
	}
	if updated.DeclinedAt == nil {
		t.Error("expected declined_at to stay in place as history")
	}
}

func TestConcurrentSubmitsKeepOneCurrent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	pkg := env.mustCreatePackage(ctx, common.PackageDraft)
	invite := env.mustInvite(ctx, pkg.Id, "bids@acme.example")

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			total := int64(50_000)
			_, err := env.services.Submission.Submit(ctx, &entity.SubmitBidInput{
				BidInviteId: invite.Id,
				TotalCents:  &total,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}

	versions, err := env.services.Submission.ListVersions(ctx, invite.Id)
	if err != nil {
		t.Fatal(err)
	}
	if len(versions) != workers {
		t.Fatalf("expected %d versions, got %d", workers, len(versions))
	}

	seen := make(map[int]bool)
	currentSeen := 0
	for _, v := range versions {
		if seen[v.Version] {
			t.Fatalf("version %d assigned twice", v.Version)
		}
		seen[v.Version] = true
		if v.IsCurrent {
			currentSeen++
		}
	}
	for want := 1; want <= workers; want++ {
		if !seen[want] {
			t.Errorf("version %d missing from the sequence", want)
		}
	}
	if currentSeen != 1 {
		t.Errorf("expected exactly one current version, got %d", currentSeen)
	}
}

func TestListCurrentByPackage(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	pkg := env.mustCreatePackage(ctx, common.PackageDraft)
	first := env.mustInvite(ctx, pkg.Id, "bids@acme.example")
	second := env.mustInvite(ctx, pkg.Id, "office@beta.example")

	total := int64(90_000)
	for i := 0; i < 2; i++ {
		if _, err := env.services.Submission.Submit(ctx, &entity.SubmitBidInput{
			BidInviteId: first.Id,
			TotalCents:  &total,
		}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := env.services.Submission.Submit(ctx, &entity.SubmitBidInput{
		BidInviteId: second.Id,
		TotalCents:  &total,
	}); err != nil {
		t.Fatal(err)
	}

	current, err := env.services.Submission.ListCurrentByPackage(ctx, pkg.Id)
	if err != nil {
		t.Fatal(err)
	}
	if len(current) != 2 {
		t.Fatalf("expected one current submission per invite, got %d", len(current))
	}
	for _, s := range current {
		if !s.IsCurrent {
			t.Errorf("non-current submission %s in the current listing", s.Id)
		}
	}
}

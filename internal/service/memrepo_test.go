package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"bid-management-api/internal/common"
	"bid-management-api/internal/entity"
	"bid-management-api/internal/repo"
	"bid-management-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

// memRepo backs the service tests with the same row semantics the pgdb layer
// has: conditional updates report ErrConflict, missing rows ErrNotFound, and
// access counters are computed from grant rows on every read.
type memRepo struct {
	mu          sync.Mutex
	companies   map[uuid.UUID]*entity.Company
	packages    map[uuid.UUID]*entity.BidPackage
	invites     map[uuid.UUID]*entity.BidInvite
	grants      map[uuid.UUID]*entity.AccessGrant
	submissions map[uuid.UUID]*entity.BidSubmission
	addenda     map[uuid.UUID]*entity.BidAddendum
}

func newMemRepo() *memRepo {
	return &memRepo{
		companies:   make(map[uuid.UUID]*entity.Company),
		packages:    make(map[uuid.UUID]*entity.BidPackage),
		invites:     make(map[uuid.UUID]*entity.BidInvite),
		grants:      make(map[uuid.UUID]*entity.AccessGrant),
		submissions: make(map[uuid.UUID]*entity.BidSubmission),
		addenda:     make(map[uuid.UUID]*entity.BidAddendum),
	}
}

func (m *memRepo) repositories() *repo.Repositories {
	return &repo.Repositories{
		Diagnostics: m,
		Company:     m,
		BidPackage:  m,
		Invite:      m,
		AccessGrant: m,
		Submission:  m,
	}
}

func nowStamp() string {
	return time.Now().Format(time.RFC3339)
}

func stampPtr() *string {
	s := nowStamp()
	return &s
}

func (m *memRepo) Ping() error {
	return nil
}

func (m *memRepo) GetCompanyById(ctx context.Context, id string) (*entity.Company, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	company, ok := m.companies[uuidForm]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	copied := *company

	return &copied, nil
}

func (m *memRepo) FindCompanyByEmail(ctx context.Context, email string) (*entity.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, company := range m.companies {
		if strings.EqualFold(company.Email, email) {
			copied := *company
			return &copied, nil
		}
	}

	return nil, repo_errors.ErrNotFound
}

func (m *memRepo) CreateCompany(ctx context.Context, name string, email string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	m.companies[id] = &entity.Company{
		Id:        id,
		Name:      name,
		Email:     strings.ToLower(email),
		CreatedAt: nowStamp(),
	}

	return id, nil
}

func (m *memRepo) DoesCompanyExistById(ctx context.Context, id string) (bool, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.companies[uuidForm]

	return ok, nil
}

func (m *memRepo) CreatePackage(ctx context.Context, input *entity.CreatePackageInput) (uuid.UUID, error) {
	projectUuid, err := uuid.Parse(input.ProjectId)
	if err != nil {
		return uuid.Nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	m.packages[id] = &entity.BidPackage{
		Id:           id,
		ProjectId:    projectUuid,
		Title:        input.Title,
		Trade:        input.Trade,
		Scope:        input.Scope,
		Instructions: input.Instructions,
		DueAt:        input.DueAt,
		Status:       common.PackageDraft,
		CreatedAt:    nowStamp(),
	}

	return id, nil
}

func (m *memRepo) GetPackageById(ctx context.Context, id string) (*entity.BidPackage, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	pkg, ok := m.packages[uuidForm]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	copied := *pkg

	return &copied, nil
}

func (m *memRepo) GetPackagesByProjectId(ctx context.Context, projectId string, pg *entity.PaginationInput) ([]entity.BidPackage, error) {
	projectUuid, err := uuid.Parse(projectId)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	packages := make([]entity.BidPackage, 0)
	for _, pkg := range m.packages {
		if pkg.ProjectId == projectUuid {
			packages = append(packages, *pkg)
		}
	}
	sort.Slice(packages, func(i, j int) bool { return packages[i].CreatedAt < packages[j].CreatedAt })

	return packages, nil
}

func (m *memRepo) UpdatePackageById(ctx context.Context, id string, input *entity.UpdatePackageInput) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	pkg, ok := m.packages[uuidForm]
	if !ok {
		return repo_errors.ErrNotFound
	}

	if input.Title != "" {
		pkg.Title = input.Title
	}
	if input.Trade != "" {
		pkg.Trade = input.Trade
	}
	if input.Scope != "" {
		pkg.Scope = input.Scope
	}
	if input.Instructions != "" {
		pkg.Instructions = input.Instructions
	}
	if input.DueAt != nil {
		pkg.DueAt = input.DueAt
	}

	return nil
}

func (m *memRepo) UpdatePackageStatusById(ctx context.Context, id string, newStatus string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	pkg, ok := m.packages[uuidForm]
	if !ok {
		return repo_errors.ErrNotFound
	}
	if pkg.Status == common.PackageAwarded {
		return repo_errors.ErrConflict
	}
	pkg.Status = newStatus

	return nil
}

func (m *memRepo) AwardPackage(ctx context.Context, packageId string, submissionId string) error {
	packageUuid, err := uuid.Parse(packageId)
	if err != nil {
		return err
	}
	submissionUuid, err := uuid.Parse(submissionId)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	pkg, ok := m.packages[packageUuid]
	if !ok {
		return repo_errors.ErrNotFound
	}
	if pkg.Status == common.PackageAwarded {
		return repo_errors.ErrConflict
	}

	submission, ok := m.submissions[submissionUuid]
	if !ok || !submission.IsCurrent {
		return repo_errors.ErrConflict
	}

	pkg.Status = common.PackageAwarded
	submission.IsAwarded = true

	return nil
}

func (m *memRepo) CreateAddendum(ctx context.Context, input *entity.IssueAddendumInput) (uuid.UUID, error) {
	packageUuid, err := uuid.Parse(input.BidPackageId)
	if err != nil {
		return uuid.Nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := 1
	for _, addendum := range m.addenda {
		if addendum.BidPackageId == packageUuid && addendum.Number >= next {
			next = addendum.Number + 1
		}
	}

	id := uuid.New()
	m.addenda[id] = &entity.BidAddendum{
		Id:           id,
		BidPackageId: packageUuid,
		Number:       next,
		Title:        input.Title,
		Message:      input.Message,
		IssuedAt:     nowStamp(),
	}

	return id, nil
}

func (m *memRepo) GetAddendumById(ctx context.Context, id string) (*entity.BidAddendum, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	addendum, ok := m.addenda[uuidForm]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	copied := *addendum

	return &copied, nil
}

func (m *memRepo) GetAddendaByPackageId(ctx context.Context, packageId string) ([]entity.BidAddendum, error) {
	packageUuid, err := uuid.Parse(packageId)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	addenda := make([]entity.BidAddendum, 0)
	for _, addendum := range m.addenda {
		if addendum.BidPackageId == packageUuid {
			addenda = append(addenda, *addendum)
		}
	}
	sort.Slice(addenda, func(i, j int) bool { return addenda[i].Number < addenda[j].Number })

	return addenda, nil
}

func (m *memRepo) CreateInvite(ctx context.Context, packageId string, companyId, contactId, inviteEmail *string) (uuid.UUID, error) {
	packageUuid, err := uuid.Parse(packageId)
	if err != nil {
		return uuid.Nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	invite := &entity.BidInvite{
		Id:           uuid.New(),
		BidPackageId: packageUuid,
		Status:       common.InviteDraft,
		CreatedAt:    nowStamp(),
	}
	if companyId != nil {
		parsed, err := uuid.Parse(*companyId)
		if err != nil {
			return uuid.Nil, err
		}
		invite.CompanyId = &parsed
	}
	if contactId != nil {
		parsed, err := uuid.Parse(*contactId)
		if err != nil {
			return uuid.Nil, err
		}
		invite.ContactId = &parsed
	}
	if inviteEmail != nil {
		lowered := strings.ToLower(*inviteEmail)
		invite.InviteEmail = &lowered
	}
	m.invites[invite.Id] = invite

	return invite.Id, nil
}

func (m *memRepo) countsLocked(inviteId uuid.UUID) entity.AccessCounts {
	var counts entity.AccessCounts
	for _, grant := range m.grants {
		if grant.BidInviteId != inviteId {
			continue
		}
		if grant.Channel == common.ChannelLink {
			counts.AccessTotal++
			switch grant.State {
			case common.GrantActive:
				counts.ActiveAccessCount++
			case common.GrantPaused:
				counts.PausedAccessCount++
			}
		} else {
			switch grant.State {
			case common.GrantActive:
				counts.LinkedAccountCount++
				counts.LinkedActiveAccountCount++
			case common.GrantPaused:
				counts.LinkedAccountCount++
				counts.LinkedPausedAccountCount++
			}
		}
	}

	return counts
}

func (m *memRepo) GetInviteById(ctx context.Context, id string) (*entity.BidInvite, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	invite, ok := m.invites[uuidForm]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	copied := *invite
	copied.AccessCounts = m.countsLocked(invite.Id)

	return &copied, nil
}

func (m *memRepo) GetInvitesByPackageId(ctx context.Context, packageId string, pg *entity.PaginationInput) ([]entity.BidInvite, error) {
	packageUuid, err := uuid.Parse(packageId)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	invites := make([]entity.BidInvite, 0)
	for _, invite := range m.invites {
		if invite.BidPackageId == packageUuid {
			copied := *invite
			copied.AccessCounts = m.countsLocked(invite.Id)
			invites = append(invites, copied)
		}
	}
	sort.Slice(invites, func(i, j int) bool { return invites[i].CreatedAt < invites[j].CreatedAt })

	return invites, nil
}

func (m *memRepo) HasInviteForCompany(ctx context.Context, packageId string, companyId string) (bool, error) {
	packageUuid, err := uuid.Parse(packageId)
	if err != nil {
		return false, err
	}
	companyUuid, err := uuid.Parse(companyId)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, invite := range m.invites {
		if invite.BidPackageId == packageUuid && invite.CompanyId != nil && *invite.CompanyId == companyUuid {
			return true, nil
		}
	}

	return false, nil
}

func (m *memRepo) HasInviteForEmail(ctx context.Context, packageId string, email string) (bool, error) {
	packageUuid, err := uuid.Parse(packageId)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, invite := range m.invites {
		if invite.BidPackageId == packageUuid && invite.InviteEmail != nil && strings.EqualFold(*invite.InviteEmail, email) {
			return true, nil
		}
	}

	return false, nil
}

func (m *memRepo) MarkInviteSent(ctx context.Context, id string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	invite, ok := m.invites[uuidForm]
	if !ok {
		return repo_errors.ErrNotFound
	}
	if invite.Status != common.InviteDraft {
		return repo_errors.ErrConflict
	}
	invite.Status = common.InviteSent
	invite.SentAt = stampPtr()

	return nil
}

func (m *memRepo) MarkInviteViewed(ctx context.Context, id string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	invite, ok := m.invites[uuidForm]
	if !ok {
		return repo_errors.ErrNotFound
	}
	if invite.Status == common.InviteSent {
		invite.Status = common.InviteViewed
	}
	invite.LastViewedAt = stampPtr()

	return nil
}

func (m *memRepo) MarkInviteDeclined(ctx context.Context, id string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	invite, ok := m.invites[uuidForm]
	if !ok {
		return repo_errors.ErrNotFound
	}
	if invite.Status == common.InviteSubmitted {
		return repo_errors.ErrConflict
	}
	invite.Status = common.InviteDeclined
	invite.DeclinedAt = stampPtr()

	return nil
}

func (m *memRepo) SetRequireAccount(ctx context.Context, id string, enforced bool) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	invite, ok := m.invites[uuidForm]
	if !ok {
		return repo_errors.ErrNotFound
	}
	invite.RequireAccountEnforced = enforced

	return nil
}

func (m *memRepo) CreateLinkGrant(ctx context.Context, inviteId string, token string) (uuid.UUID, error) {
	inviteUuid, err := uuid.Parse(inviteId)
	if err != nil {
		return uuid.Nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	grantToken := token
	m.grants[id] = &entity.AccessGrant{
		Id:          id,
		BidInviteId: inviteUuid,
		Channel:     common.ChannelLink,
		State:       common.GrantActive,
		Token:       &grantToken,
		CreatedAt:   nowStamp(),
	}

	return id, nil
}

func (m *memRepo) CreateAccountGrant(ctx context.Context, inviteId string, userId string) (uuid.UUID, error) {
	inviteUuid, err := uuid.Parse(inviteId)
	if err != nil {
		return uuid.Nil, err
	}
	userUuid, err := uuid.Parse(userId)
	if err != nil {
		return uuid.Nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	m.grants[id] = &entity.AccessGrant{
		Id:           id,
		BidInviteId:  inviteUuid,
		Channel:      common.ChannelAccount,
		State:        common.GrantActive,
		LinkedUserId: &userUuid,
		CreatedAt:    nowStamp(),
	}

	return id, nil
}

func (m *memRepo) GetGrantByToken(ctx context.Context, token string) (*entity.AccessGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, grant := range m.grants {
		if grant.Token != nil && *grant.Token == token {
			copied := *grant
			return &copied, nil
		}
	}

	return nil, repo_errors.ErrNotFound
}

func (m *memRepo) TransitionChannel(ctx context.Context, inviteId string, channel string, fromState string, toState string) error {
	inviteUuid, err := uuid.Parse(inviteId)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, grant := range m.grants {
		if grant.BidInviteId == inviteUuid && grant.Channel == channel && grant.State == fromState {
			grant.State = toState
		}
	}

	return nil
}

func (m *memRepo) RevokeChannel(ctx context.Context, inviteId string, channel string) error {
	inviteUuid, err := uuid.Parse(inviteId)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, grant := range m.grants {
		if grant.BidInviteId == inviteUuid && grant.Channel == channel && grant.State != common.GrantRevoked {
			grant.State = common.GrantRevoked
		}
	}

	return nil
}

func (m *memRepo) GetCounts(ctx context.Context, inviteId string) (*entity.AccessCounts, error) {
	inviteUuid, err := uuid.Parse(inviteId)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	counts := m.countsLocked(inviteUuid)

	return &counts, nil
}

func (m *memRepo) CountNonRevoked(ctx context.Context, inviteId string) (int, error) {
	inviteUuid, err := uuid.Parse(inviteId)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, grant := range m.grants {
		if grant.BidInviteId == inviteUuid && grant.State != common.GrantRevoked {
			count++
		}
	}

	return count, nil
}

func (m *memRepo) HasActiveAccountGrant(ctx context.Context, inviteId string, userId string) (bool, error) {
	inviteUuid, err := uuid.Parse(inviteId)
	if err != nil {
		return false, err
	}
	userUuid, err := uuid.Parse(userId)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, grant := range m.grants {
		if grant.BidInviteId == inviteUuid && grant.Channel == common.ChannelAccount &&
			grant.State == common.GrantActive && grant.LinkedUserId != nil && *grant.LinkedUserId == userUuid {
			return true, nil
		}
	}

	return false, nil
}

func (m *memRepo) CreateSubmission(ctx context.Context, input *entity.SubmitBidInput) (uuid.UUID, error) {
	inviteUuid, err := uuid.Parse(input.BidInviteId)
	if err != nil {
		return uuid.Nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	invite, ok := m.invites[inviteUuid]
	if !ok {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	nextVersion := 1
	for _, submission := range m.submissions {
		if submission.BidInviteId == inviteUuid {
			if submission.IsCurrent {
				submission.IsCurrent = false
				submission.Status = common.SubmissionRevised
			}
			if submission.Version >= nextVersion {
				nextVersion = submission.Version + 1
			}
		}
	}

	id := uuid.New()
	m.submissions[id] = &entity.BidSubmission{
		Id:               id,
		BidInviteId:      inviteUuid,
		Version:          nextVersion,
		Status:           common.SubmissionSubmitted,
		IsCurrent:        true,
		TotalCents:       input.TotalCents,
		ValidUntil:       input.ValidUntil,
		Exclusions:       input.Exclusions,
		Clarifications:   input.Clarifications,
		Notes:            input.Notes,
		SubmittedAt:      nowStamp(),
		SubmittedByName:  input.SubmittedByName,
		SubmittedByEmail: input.SubmittedByEmail,
	}

	invite.Status = common.InviteSubmitted
	invite.SubmittedAt = stampPtr()

	return id, nil
}

func (m *memRepo) GetSubmissionById(ctx context.Context, id string) (*entity.BidSubmission, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	submission, ok := m.submissions[uuidForm]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	copied := *submission

	return &copied, nil
}

func (m *memRepo) GetCurrentByPackageId(ctx context.Context, packageId string) ([]entity.BidSubmission, error) {
	packageUuid, err := uuid.Parse(packageId)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	submissions := make([]entity.BidSubmission, 0)
	for _, submission := range m.submissions {
		if !submission.IsCurrent {
			continue
		}
		invite, ok := m.invites[submission.BidInviteId]
		if ok && invite.BidPackageId == packageUuid {
			submissions = append(submissions, *submission)
		}
	}
	sort.Slice(submissions, func(i, j int) bool { return submissions[i].SubmittedAt < submissions[j].SubmittedAt })

	return submissions, nil
}

func (m *memRepo) GetVersionsByInviteId(ctx context.Context, inviteId string) ([]entity.BidSubmission, error) {
	inviteUuid, err := uuid.Parse(inviteId)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	submissions := make([]entity.BidSubmission, 0)
	for _, submission := range m.submissions {
		if submission.BidInviteId == inviteUuid {
			submissions = append(submissions, *submission)
		}
	}
	sort.Slice(submissions, func(i, j int) bool { return submissions[i].Version > submissions[j].Version })

	return submissions, nil
}

func (m *memRepo) GetAwardedByPackageId(ctx context.Context, packageId string) (*entity.BidSubmission, error) {
	packageUuid, err := uuid.Parse(packageId)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, submission := range m.submissions {
		if !submission.IsAwarded {
			continue
		}
		invite, ok := m.invites[submission.BidInviteId]
		if ok && invite.BidPackageId == packageUuid {
			copied := *submission
			return &copied, nil
		}
	}

	return nil, repo_errors.ErrNotFound
}

// gateway fakes

type fakeNotificationGateway struct {
	mu      sync.Mutex
	sent    []string
	sendErr error
}

func (g *fakeNotificationGateway) Send(ctx context.Context, toAddress string, subject string, body string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sendErr != nil {
		return g.sendErr
	}
	g.sent = append(g.sent, toAddress)

	return nil
}

type fakeAttachmentGateway struct {
	mu       sync.Mutex
	attached []AttachmentLink
}

func (g *fakeAttachmentGateway) Attach(ctx context.Context, entityType string, entityId string, fileId string) (*AttachmentLink, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	link := AttachmentLink{LinkId: uuid.NewString(), EntityType: entityType, EntityId: entityId, FileId: fileId}
	g.attached = append(g.attached, link)

	return &link, nil
}

func (g *fakeAttachmentGateway) Detach(ctx context.Context, linkId string) error {
	return nil
}

func (g *fakeAttachmentGateway) List(ctx context.Context, entityType string, entityId string) ([]AttachmentLink, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	links := make([]AttachmentLink, 0)
	for _, link := range g.attached {
		if link.EntityType == entityType && link.EntityId == entityId {
			links = append(links, link)
		}
	}

	return links, nil
}

type fakeCommitmentGateway struct {
	mu        sync.Mutex
	created   int
	createErr error
}

func (g *fakeCommitmentGateway) CreateCommitment(ctx context.Context, packageId string, submissionId string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.createErr != nil {
		return g.createErr
	}
	g.created++

	return nil
}

type fakeAuditGateway struct {
	mu     sync.Mutex
	events []string
}

func (g *fakeAuditGateway) Record(ctx context.Context, event string, fields map[string]string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.events = append(g.events, event)
}

func (g *fakeAuditGateway) has(event string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, e := range g.events {
		if e == event {
			return true
		}
	}

	return false
}

type testEnv struct {
	repo         *memRepo
	notification *fakeNotificationGateway
	attachment   *fakeAttachmentGateway
	commitment   *fakeCommitmentGateway
	audit        *fakeAuditGateway
	services     *Services
}

func newTestEnv() *testEnv {
	env := &testEnv{
		repo:         newMemRepo(),
		notification: &fakeNotificationGateway{},
		attachment:   &fakeAttachmentGateway{},
		commitment:   &fakeCommitmentGateway{},
		audit:        &fakeAuditGateway{},
	}
	gateways := &Gateways{
		Notification: env.notification,
		Attachment:   env.attachment,
		Commitment:   env.commitment,
		Audit:        env.audit,
	}
	env.services = NewServices(env.repo.repositories(), gateways, "https://bids.example.com")

	return env
}

func (env *testEnv) mustCreatePackage(ctx context.Context, status string) *entity.PackageOutputModel {
	pkg, err := env.services.BidPackage.CreatePackage(ctx, &entity.CreatePackageInput{
		ProjectId: uuid.NewString(),
		Title:     "Electrical rough-in",
		Trade:     "electrical",
	})
	if err != nil {
		panic(err)
	}
	if status != common.PackageDraft {
		env.repo.mu.Lock()
		env.repo.packages[uuid.MustParse(pkg.Id)].Status = status
		env.repo.mu.Unlock()
		pkg.Status = status
	}

	return pkg
}

func (env *testEnv) mustCreateCompany(ctx context.Context, name string, email string) uuid.UUID {
	id, err := env.repo.CreateCompany(ctx, name, email)
	if err != nil {
		panic(err)
	}

	return id
}

func (env *testEnv) mustInvite(ctx context.Context, packageId string, email string) *entity.InviteOutputModel {
	result, err := env.services.Invite.CreateInvites(ctx, &entity.CreateInvitesInput{
		BidPackageId: packageId,
		Items:        []entity.InviteItemInput{{Email: email, DisplayName: "Vendor"}},
		SendEmails:   true,
	})
	if err != nil {
		panic(err)
	}
	if len(result.Created) != 1 {
		panic(errors.New("expected one created invite"))
	}

	return &result.Created[0]
}

package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"bid-management-api/internal/common"
	"bid-management-api/internal/entity"
	"bid-management-api/internal/repo/repo_errors"
	"bid-management-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// inviteColumns carries the access-counter projection as scalar subqueries so
// the counters can never drift from the grant rows; access_total alone counts
// revoked link grants as well.
var inviteColumns = []string{
	"i.id", "i.bid_package_id", "i.company_id", "i.contact_id", "i.invite_email",
	"i.status", "i.sent_at", "i.last_viewed_at", "i.declined_at", "i.submitted_at",
	"i.require_account_enforced", "i.created_at",
	"(select count(*) from access_grant g where g.bid_invite_id = i.id and g.channel = 'link' and g.state = 'active') as active_access_count",
	"(select count(*) from access_grant g where g.bid_invite_id = i.id and g.channel = 'link' and g.state = 'paused') as paused_access_count",
	"(select count(*) from access_grant g where g.bid_invite_id = i.id and g.channel = 'link') as access_total",
	"(select count(*) from access_grant g where g.bid_invite_id = i.id and g.channel = 'account' and g.state <> 'revoked') as linked_account_count",
	"(select count(*) from access_grant g where g.bid_invite_id = i.id and g.channel = 'account' and g.state = 'active') as linked_active_account_count",
	"(select count(*) from access_grant g where g.bid_invite_id = i.id and g.channel = 'account' and g.state = 'paused') as linked_paused_account_count",
}

type InviteRepo struct {
	*postgres.Postgres
}

func NewInviteRepo(pgdb *postgres.Postgres) *InviteRepo {
	return &InviteRepo{pgdb}
}

func (r *InviteRepo) CreateInvite(ctx context.Context, packageId string, companyId, contactId, inviteEmail *string) (uuid.UUID, error) {
	packageUuid, err := uuid.Parse(packageId)
	if err != nil {
		return uuid.Nil, err
	}

	var email *string
	if inviteEmail != nil {
		lowered := strings.ToLower(*inviteEmail)
		email = &lowered
	}

	createSql, args, _ := r.SqlBuilder.
		Insert("bid_invite").
		Columns("bid_package_id", "company_id", "contact_id", "invite_email", "status").
		Values(packageUuid, nullString(companyId), nullString(contactId), nullString(email), common.InviteDraft).
		Suffix("RETURNING id").
		ToSql()

	var inviteId uuid.UUID
	err = r.Database.QueryRowContext(ctx, createSql, args...).Scan(&inviteId)
	if err != nil {
		return uuid.Nil, err
	}

	return inviteId, nil
}

func scanInvite(row squirrel.RowScanner) (*entity.BidInvite, error) {
	var invite entity.BidInvite
	var createdAt time.Time
	var sentAt, lastViewedAt, declinedAt, submittedAt sql.NullTime
	var companyId, contactId uuid.NullUUID
	var inviteEmail sql.NullString

	err := row.Scan(&invite.Id, &invite.BidPackageId, &companyId, &contactId, &inviteEmail,
		&invite.Status, &sentAt, &lastViewedAt, &declinedAt, &submittedAt,
		&invite.RequireAccountEnforced, &createdAt,
		&invite.ActiveAccessCount, &invite.PausedAccessCount, &invite.AccessTotal,
		&invite.LinkedAccountCount, &invite.LinkedActiveAccountCount, &invite.LinkedPausedAccountCount)
	if err != nil {
		return nil, err
	}

	if companyId.Valid {
		invite.CompanyId = &companyId.UUID
	}
	if contactId.Valid {
		invite.ContactId = &contactId.UUID
	}
	if inviteEmail.Valid {
		invite.InviteEmail = &inviteEmail.String
	}
	invite.SentAt = fmtNullTime(sentAt)
	invite.LastViewedAt = fmtNullTime(lastViewedAt)
	invite.DeclinedAt = fmtNullTime(declinedAt)
	invite.SubmittedAt = fmtNullTime(submittedAt)
	invite.CreatedAt = fmtTime(createdAt)

	return &invite, nil
}

func (r *InviteRepo) GetInviteById(ctx context.Context, id string) (*entity.BidInvite, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	getSql, args, _ := r.SqlBuilder.
		Select(inviteColumns...).
		From("bid_invite i").
		Where("i.id = ?", uuidForm).
		ToSql()

	invite, err := scanInvite(r.Database.QueryRowContext(ctx, getSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return invite, nil
}

func (r *InviteRepo) GetInvitesByPackageId(ctx context.Context, packageId string, pg *entity.PaginationInput) ([]entity.BidInvite, error) {
	packageUuid, err := uuid.Parse(packageId)
	if err != nil {
		return nil, err
	}

	listSql, args, _ := r.SqlBuilder.
		Select(inviteColumns...).
		From("bid_invite i").
		Where("i.bid_package_id = ?", packageUuid).
		OrderBy("i.created_at").
		Limit(uint64(pg.Limit)).
		Offset(uint64(pg.Offset)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, listSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invites := make([]entity.BidInvite, 0)
	for rows.Next() {
		invite, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}

		invites = append(invites, *invite)
	}

	return invites, rows.Err()
}

func (r *InviteRepo) HasInviteForCompany(ctx context.Context, packageId string, companyId string) (bool, error) {
	existsSql, args, _ := r.SqlBuilder.
		Select("1").
		From("bid_invite").
		Where("bid_package_id = ?", packageId).
		Where("company_id = ?", companyId).
		ToSql()

	var one int
	err := r.Database.QueryRowContext(ctx, existsSql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (r *InviteRepo) HasInviteForEmail(ctx context.Context, packageId string, email string) (bool, error) {
	existsSql, args, _ := r.SqlBuilder.
		Select("1").
		From("bid_invite").
		Where("bid_package_id = ?", packageId).
		Where("lower(invite_email) = ?", strings.ToLower(email)).
		ToSql()

	var one int
	err := r.Database.QueryRowContext(ctx, existsSql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (r *InviteRepo) MarkInviteSent(ctx context.Context, id string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	updateSql, args, _ := r.SqlBuilder.
		Update("bid_invite").
		Set("status", common.InviteSent).
		Set("sent_at", squirrel.Expr("now()")).
		Where("id = ?", uuidForm).
		Where("status = ?", common.InviteDraft).
		ToSql()

	res, err := r.Database.ExecContext(ctx, updateSql, args...)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrConflict
	}

	return nil
}

// MarkInviteViewed is idempotent; last_viewed_at always moves, the status only
// advances from sent and never regresses a declined or submitted invite.
func (r *InviteRepo) MarkInviteViewed(ctx context.Context, id string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	updateSql, args, _ := r.SqlBuilder.
		Update("bid_invite").
		Set("last_viewed_at", squirrel.Expr("now()")).
		Set("status", squirrel.Expr("case when status = ? then ? else status end",
			common.InviteSent, common.InviteViewed)).
		Where("id = ?", uuidForm).
		ToSql()

	res, err := r.Database.ExecContext(ctx, updateSql, args...)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}

func (r *InviteRepo) MarkInviteDeclined(ctx context.Context, id string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	updateSql, args, _ := r.SqlBuilder.
		Update("bid_invite").
		Set("status", common.InviteDeclined).
		Set("declined_at", squirrel.Expr("now()")).
		Where("id = ?", uuidForm).
		Where("status <> ?", common.InviteSubmitted).
		ToSql()

	res, err := r.Database.ExecContext(ctx, updateSql, args...)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrConflict
	}

	return nil
}

func (r *InviteRepo) SetRequireAccount(ctx context.Context, id string, enforced bool) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	updateSql, args, _ := r.SqlBuilder.
		Update("bid_invite").
		Set("require_account_enforced", enforced).
		Where("id = ?", uuidForm).
		ToSql()

	res, err := r.Database.ExecContext(ctx, updateSql, args...)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}

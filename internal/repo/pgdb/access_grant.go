package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bid-management-api/internal/common"
	"bid-management-api/internal/entity"
	"bid-management-api/internal/repo/repo_errors"
	"bid-management-api/pkg/postgres"

	"github.com/google/uuid"
)

type AccessGrantRepo struct {
	*postgres.Postgres
}

func NewAccessGrantRepo(pgdb *postgres.Postgres) *AccessGrantRepo {
	return &AccessGrantRepo{pgdb}
}

func (r *AccessGrantRepo) CreateLinkGrant(ctx context.Context, inviteId string, token string) (uuid.UUID, error) {
	inviteUuid, err := uuid.Parse(inviteId)
	if err != nil {
		return uuid.Nil, err
	}

	createSql, args, _ := r.SqlBuilder.
		Insert("access_grant").
		Columns("bid_invite_id", "channel", "state", "token").
		Values(inviteUuid, common.ChannelLink, common.GrantActive, token).
		Suffix("RETURNING id").
		ToSql()

	var grantId uuid.UUID
	err = r.Database.QueryRowContext(ctx, createSql, args...).Scan(&grantId)
	if err != nil {
		return uuid.Nil, err
	}

	return grantId, nil
}

func (r *AccessGrantRepo) CreateAccountGrant(ctx context.Context, inviteId string, userId string) (uuid.UUID, error) {
	inviteUuid, err := uuid.Parse(inviteId)
	if err != nil {
		return uuid.Nil, err
	}

	userUuid, err := uuid.Parse(userId)
	if err != nil {
		return uuid.Nil, err
	}

	createSql, args, _ := r.SqlBuilder.
		Insert("access_grant").
		Columns("bid_invite_id", "channel", "state", "linked_user_id").
		Values(inviteUuid, common.ChannelAccount, common.GrantActive, userUuid).
		Suffix("RETURNING id").
		ToSql()

	var grantId uuid.UUID
	err = r.Database.QueryRowContext(ctx, createSql, args...).Scan(&grantId)
	if err != nil {
		return uuid.Nil, err
	}

	return grantId, nil
}

func (r *AccessGrantRepo) GetGrantByToken(ctx context.Context, token string) (*entity.AccessGrant, error) {
	getSql, args, _ := r.SqlBuilder.
		Select("id", "bid_invite_id", "channel", "state", "token", "linked_user_id", "created_at").
		From("access_grant").
		Where("token = ?", token).
		ToSql()

	var grant entity.AccessGrant
	var grantToken sql.NullString
	var linkedUserId uuid.NullUUID
	var createdAt time.Time
	row := r.Database.QueryRowContext(ctx, getSql, args...)
	err := row.Scan(&grant.Id, &grant.BidInviteId, &grant.Channel, &grant.State,
		&grantToken, &linkedUserId, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	if grantToken.Valid {
		grant.Token = &grantToken.String
	}
	if linkedUserId.Valid {
		grant.LinkedUserId = &linkedUserId.UUID
	}
	grant.CreatedAt = fmtTime(createdAt)

	return &grant, nil
}

// TransitionChannel is a bulk conditional update, so a pause/resume with no
// matching grants is naturally a no-op and a repeated call is idempotent.
func (r *AccessGrantRepo) TransitionChannel(ctx context.Context, inviteId string, channel string, fromState string, toState string) error {
	inviteUuid, err := uuid.Parse(inviteId)
	if err != nil {
		return err
	}

	updateSql, args, _ := r.SqlBuilder.
		Update("access_grant").
		Set("state", toState).
		Where("bid_invite_id = ?", inviteUuid).
		Where("channel = ?", channel).
		Where("state = ?", fromState).
		ToSql()

	_, err = r.Database.ExecContext(ctx, updateSql, args...)

	return err
}

func (r *AccessGrantRepo) RevokeChannel(ctx context.Context, inviteId string, channel string) error {
	inviteUuid, err := uuid.Parse(inviteId)
	if err != nil {
		return err
	}

	updateSql, args, _ := r.SqlBuilder.
		Update("access_grant").
		Set("state", common.GrantRevoked).
		Where("bid_invite_id = ?", inviteUuid).
		Where("channel = ?", channel).
		Where("state <> ?", common.GrantRevoked).
		ToSql()

	_, err = r.Database.ExecContext(ctx, updateSql, args...)

	return err
}

func (r *AccessGrantRepo) GetCounts(ctx context.Context, inviteId string) (*entity.AccessCounts, error) {
	inviteUuid, err := uuid.Parse(inviteId)
	if err != nil {
		return nil, err
	}

	countsSql, args, _ := r.SqlBuilder.
		Select(
			"count(*) filter (where channel = 'link' and state = 'active')",
			"count(*) filter (where channel = 'link' and state = 'paused')",
			"count(*) filter (where channel = 'link')",
			"count(*) filter (where channel = 'account' and state <> 'revoked')",
			"count(*) filter (where channel = 'account' and state = 'active')",
			"count(*) filter (where channel = 'account' and state = 'paused')",
		).
		From("access_grant").
		Where("bid_invite_id = ?", inviteUuid).
		ToSql()

	var counts entity.AccessCounts
	row := r.Database.QueryRowContext(ctx, countsSql, args...)
	err = row.Scan(&counts.ActiveAccessCount, &counts.PausedAccessCount, &counts.AccessTotal,
		&counts.LinkedAccountCount, &counts.LinkedActiveAccountCount, &counts.LinkedPausedAccountCount)
	if err != nil {
		return nil, err
	}

	return &counts, nil
}

func (r *AccessGrantRepo) CountNonRevoked(ctx context.Context, inviteId string) (int, error) {
	inviteUuid, err := uuid.Parse(inviteId)
	if err != nil {
		return 0, err
	}

	countSql, args, _ := r.SqlBuilder.
		Select("count(*)").
		From("access_grant").
		Where("bid_invite_id = ?", inviteUuid).
		Where("state <> ?", common.GrantRevoked).
		ToSql()

	var count int
	err = r.Database.QueryRowContext(ctx, countSql, args...).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *AccessGrantRepo) HasActiveAccountGrant(ctx context.Context, inviteId string, userId string) (bool, error) {
	inviteUuid, err := uuid.Parse(inviteId)
	if err != nil {
		return false, err
	}

	userUuid, err := uuid.Parse(userId)
	if err != nil {
		return false, err
	}

	existsSql, args, _ := r.SqlBuilder.
		Select("1").
		From("access_grant").
		Where("bid_invite_id = ?", inviteUuid).
		Where("channel = ?", common.ChannelAccount).
		Where("linked_user_id = ?", userUuid).
		Where("state = ?", common.GrantActive).
		ToSql()

	var one int
	err = r.Database.QueryRowContext(ctx, existsSql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

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

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type SubmissionRepo struct {
	*postgres.Postgres
}

func NewSubmissionRepo(pgdb *postgres.Postgres) *SubmissionRepo {
	return &SubmissionRepo{pgdb}
}

// CreateSubmission serializes on the (bid_invite_id, version) unique
// constraint: two racing submits both read max(version), the loser hits the
// constraint on insert and the whole transaction is retried.
func (r *SubmissionRepo) CreateSubmission(ctx context.Context, input *entity.SubmitBidInput) (uuid.UUID, error) {
	inviteUuid, err := uuid.Parse(input.BidInviteId)
	if err != nil {
		return uuid.Nil, err
	}

	for attempt := 0; attempt < maxNumberingAttempts; attempt++ {
		submissionId, err := r.createSubmissionOnce(ctx, inviteUuid, input)
		if err == nil {
			return submissionId, nil
		}
		if !isUniqueViolation(err) {
			return uuid.Nil, err
		}
	}

	return uuid.Nil, repo_errors.ErrConflict
}

func (r *SubmissionRepo) createSubmissionOnce(ctx context.Context, inviteUuid uuid.UUID, input *entity.SubmitBidInput) (uuid.UUID, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}

	demoteSql, args, _ := r.SqlBuilder.
		Update("bid_submission").
		Set("is_current", false).
		Set("status", common.SubmissionRevised).
		Where("bid_invite_id = ?", inviteUuid).
		Where("is_current = ?", true).
		ToSql()

	_, err = tx.ExecContext(ctx, demoteSql, args...)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	nextVersionSql, args, _ := r.SqlBuilder.
		Select("coalesce(max(version), 0) + 1").
		From("bid_submission").
		Where("bid_invite_id = ?", inviteUuid).
		ToSql()

	var nextVersion int
	err = tx.QueryRowContext(ctx, nextVersionSql, args...).Scan(&nextVersion)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	var totalCents sql.NullInt64
	if input.TotalCents != nil {
		totalCents = sql.NullInt64{Int64: *input.TotalCents, Valid: true}
	}

	createSql, args, _ := r.SqlBuilder.
		Insert("bid_submission").
		Columns("bid_invite_id", "version", "status", "is_current", "total_cents", "valid_until",
			"exclusions", "clarifications", "notes", "submitted_by_name", "submitted_by_email").
		Values(inviteUuid, nextVersion, common.SubmissionSubmitted, true, totalCents,
			nullString(input.ValidUntil), input.Exclusions, input.Clarifications, input.Notes,
			input.SubmittedByName, input.SubmittedByEmail).
		Suffix("RETURNING id").
		ToSql()

	var submissionId uuid.UUID
	err = tx.QueryRowContext(ctx, createSql, args...).Scan(&submissionId)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	advanceInviteSql, args, _ := r.SqlBuilder.
		Update("bid_invite").
		Set("status", common.InviteSubmitted).
		Set("submitted_at", squirrel.Expr("now()")).
		Where("id = ?", inviteUuid).
		ToSql()

	res, err := tx.ExecContext(ctx, advanceInviteSql, args...)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}
	if affected == 0 {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, repo_errors.ErrNotFound
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	return submissionId, nil
}

var submissionColumns = []string{
	"s.id", "s.bid_invite_id", "s.version", "s.status", "s.is_current", "s.is_awarded",
	"s.total_cents", "s.valid_until", "s.exclusions", "s.clarifications", "s.notes",
	"s.submitted_at", "s.submitted_by_name", "s.submitted_by_email",
}

func scanSubmission(row squirrel.RowScanner) (*entity.BidSubmission, error) {
	var submission entity.BidSubmission
	var totalCents sql.NullInt64
	var validUntil sql.NullTime
	var submittedAt time.Time

	err := row.Scan(&submission.Id, &submission.BidInviteId, &submission.Version,
		&submission.Status, &submission.IsCurrent, &submission.IsAwarded,
		&totalCents, &validUntil, &submission.Exclusions, &submission.Clarifications,
		&submission.Notes, &submittedAt, &submission.SubmittedByName, &submission.SubmittedByEmail)
	if err != nil {
		return nil, err
	}

	if totalCents.Valid {
		submission.TotalCents = &totalCents.Int64
	}
	submission.ValidUntil = fmtNullTime(validUntil)
	submission.SubmittedAt = fmtTime(submittedAt)

	return &submission, nil
}

func (r *SubmissionRepo) GetSubmissionById(ctx context.Context, id string) (*entity.BidSubmission, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	getSql, args, _ := r.SqlBuilder.
		Select(submissionColumns...).
		From("bid_submission s").
		Where("s.id = ?", uuidForm).
		ToSql()

	submission, err := scanSubmission(r.Database.QueryRowContext(ctx, getSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return submission, nil
}

func (r *SubmissionRepo) GetCurrentByPackageId(ctx context.Context, packageId string) ([]entity.BidSubmission, error) {
	packageUuid, err := uuid.Parse(packageId)
	if err != nil {
		return nil, err
	}

	listSql, args, _ := r.SqlBuilder.
		Select(submissionColumns...).
		From("bid_submission s").
		InnerJoin("bid_invite i on s.bid_invite_id = i.id").
		Where("i.bid_package_id = ?", packageUuid).
		Where("s.is_current = ?", true).
		OrderBy("s.submitted_at").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, listSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := make([]entity.BidSubmission, 0)
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}

		submissions = append(submissions, *submission)
	}

	return submissions, rows.Err()
}

func (r *SubmissionRepo) GetVersionsByInviteId(ctx context.Context, inviteId string) ([]entity.BidSubmission, error) {
	inviteUuid, err := uuid.Parse(inviteId)
	if err != nil {
		return nil, err
	}

	listSql, args, _ := r.SqlBuilder.
		Select(submissionColumns...).
		From("bid_submission s").
		Where("s.bid_invite_id = ?", inviteUuid).
		OrderBy("s.version desc").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, listSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := make([]entity.BidSubmission, 0)
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}

		submissions = append(submissions, *submission)
	}

	return submissions, rows.Err()
}

func (r *SubmissionRepo) GetAwardedByPackageId(ctx context.Context, packageId string) (*entity.BidSubmission, error) {
	packageUuid, err := uuid.Parse(packageId)
	if err != nil {
		return nil, err
	}

	getSql, args, _ := r.SqlBuilder.
		Select(submissionColumns...).
		From("bid_submission s").
		InnerJoin("bid_invite i on s.bid_invite_id = i.id").
		Where("i.bid_package_id = ?", packageUuid).
		Where("s.is_awarded = ?", true).
		ToSql()

	submission, err := scanSubmission(r.Database.QueryRowContext(ctx, getSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return submission, nil
}

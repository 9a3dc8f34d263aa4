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

// addendum numbering retries on (bid_package_id, number) unique violations
const maxNumberingAttempts = 3

type BidPackageRepo struct {
	*postgres.Postgres
}

func NewBidPackageRepo(pgdb *postgres.Postgres) *BidPackageRepo {
	return &BidPackageRepo{pgdb}
}

func (r *BidPackageRepo) CreatePackage(ctx context.Context, input *entity.CreatePackageInput) (uuid.UUID, error) {
	createSql, args, _ := r.SqlBuilder.
		Insert("bid_package").
		Columns("project_id", "title", "trade", "scope", "instructions", "due_at", "status").
		Values(input.ProjectId, input.Title, input.Trade, input.Scope, input.Instructions,
			nullString(input.DueAt), common.PackageDraft).
		Suffix("RETURNING id").
		ToSql()

	var packageId uuid.UUID
	err := r.Database.QueryRowContext(ctx, createSql, args...).Scan(&packageId)
	if err != nil {
		return uuid.Nil, err
	}

	return packageId, nil
}

func (r *BidPackageRepo) GetPackageById(ctx context.Context, id string) (*entity.BidPackage, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	getSql, args, _ := r.SqlBuilder.
		Select("id", "project_id", "title", "trade", "scope", "instructions", "due_at", "status", "created_at").
		From("bid_package").
		Where("id = ?", uuidForm).
		ToSql()

	var pkg entity.BidPackage
	var dueAt sql.NullTime
	var createdAt time.Time
	row := r.Database.QueryRowContext(ctx, getSql, args...)
	err = row.Scan(&pkg.Id, &pkg.ProjectId, &pkg.Title, &pkg.Trade, &pkg.Scope,
		&pkg.Instructions, &dueAt, &pkg.Status, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	pkg.DueAt = fmtNullTime(dueAt)
	pkg.CreatedAt = fmtTime(createdAt)

	return &pkg, nil
}

func (r *BidPackageRepo) GetPackagesByProjectId(ctx context.Context, projectId string, pg *entity.PaginationInput) ([]entity.BidPackage, error) {
	listSql, args, _ := r.SqlBuilder.
		Select("id", "project_id", "title", "trade", "scope", "instructions", "due_at", "status", "created_at").
		From("bid_package").
		Where("project_id = ?", projectId).
		OrderBy("created_at").
		Limit(uint64(pg.Limit)).
		Offset(uint64(pg.Offset)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, listSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := make([]entity.BidPackage, 0)
	for rows.Next() {
		var pkg entity.BidPackage
		var dueAt sql.NullTime
		var createdAt time.Time
		if err := rows.Scan(&pkg.Id, &pkg.ProjectId, &pkg.Title, &pkg.Trade, &pkg.Scope,
			&pkg.Instructions, &dueAt, &pkg.Status, &createdAt); err != nil {
			return nil, err
		}

		pkg.DueAt = fmtNullTime(dueAt)
		pkg.CreatedAt = fmtTime(createdAt)
		packages = append(packages, pkg)
	}

	return packages, rows.Err()
}

func (r *BidPackageRepo) UpdatePackageById(ctx context.Context, id string, input *entity.UpdatePackageInput) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	builder := r.SqlBuilder.
		Update("bid_package").
		Where("id = ?", uuidForm)

	if input.Title != "" {
		builder = builder.Set("title", input.Title)
	}
	if input.Trade != "" {
		builder = builder.Set("trade", input.Trade)
	}
	if input.Scope != "" {
		builder = builder.Set("scope", input.Scope)
	}
	if input.Instructions != "" {
		builder = builder.Set("instructions", input.Instructions)
	}
	if input.DueAt != nil {
		builder = builder.Set("due_at", *input.DueAt)
	}

	updateSql, args, _ := builder.ToSql()
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

// UpdatePackageStatusById never moves a package out of awarded; the award path
// is the only writer of that status.
func (r *BidPackageRepo) UpdatePackageStatusById(ctx context.Context, id string, newStatus string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	updateSql, args, _ := r.SqlBuilder.
		Update("bid_package").
		Set("status", newStatus).
		Where("id = ?", uuidForm).
		Where("status <> ?", common.PackageAwarded).
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

// AwardPackage is the single-writer exclusivity point: the conditional update
// on package status decides the winner, the submission flag rides in the same
// transaction so no package can end up partially awarded.
func (r *BidPackageRepo) AwardPackage(ctx context.Context, packageId string, submissionId string) error {
	packageUuid, err := uuid.Parse(packageId)
	if err != nil {
		return err
	}

	submissionUuid, err := uuid.Parse(submissionId)
	if err != nil {
		return err
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	awardPackageSql, args, _ := r.SqlBuilder.
		Update("bid_package").
		Set("status", common.PackageAwarded).
		Where("id = ?", packageUuid).
		Where("status <> ?", common.PackageAwarded).
		ToSql()

	res, err := tx.ExecContext(ctx, awardPackageSql, args...)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}
	if affected == 0 {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrConflict
	}

	awardSubmissionSql, args, _ := r.SqlBuilder.
		Update("bid_submission").
		Set("is_awarded", true).
		Where("id = ?", submissionUuid).
		Where("is_current = ?", true).
		Where("is_awarded = ?", false).
		ToSql()

	res, err = tx.ExecContext(ctx, awardSubmissionSql, args...)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	affected, err = res.RowsAffected()
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}
	if affected == 0 {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrConflict
	}

	return tx.Commit()
}

func (r *BidPackageRepo) CreateAddendum(ctx context.Context, input *entity.IssueAddendumInput) (uuid.UUID, error) {
	packageUuid, err := uuid.Parse(input.BidPackageId)
	if err != nil {
		return uuid.Nil, err
	}

	for attempt := 0; attempt < maxNumberingAttempts; attempt++ {
		addendumId, err := r.createAddendumOnce(ctx, packageUuid, input)
		if err == nil {
			return addendumId, nil
		}
		if !isUniqueViolation(err) {
			return uuid.Nil, err
		}
	}

	return uuid.Nil, repo_errors.ErrConflict
}

func (r *BidPackageRepo) createAddendumOnce(ctx context.Context, packageUuid uuid.UUID, input *entity.IssueAddendumInput) (uuid.UUID, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}

	nextNumberSql, args, _ := r.SqlBuilder.
		Select("coalesce(max(number), 0) + 1").
		From("bid_addendum").
		Where("bid_package_id = ?", packageUuid).
		ToSql()

	var nextNumber int
	err = tx.QueryRowContext(ctx, nextNumberSql, args...).Scan(&nextNumber)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	createSql, args, _ := r.SqlBuilder.
		Insert("bid_addendum").
		Columns("bid_package_id", "number", "title", "message").
		Values(packageUuid, nextNumber, input.Title, input.Message).
		Suffix("RETURNING id").
		ToSql()

	var addendumId uuid.UUID
	err = tx.QueryRowContext(ctx, createSql, args...).Scan(&addendumId)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	return addendumId, nil
}

func (r *BidPackageRepo) GetAddendumById(ctx context.Context, id string) (*entity.BidAddendum, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	getSql, args, _ := r.SqlBuilder.
		Select("id", "bid_package_id", "number", "title", "message", "issued_at").
		From("bid_addendum").
		Where("id = ?", uuidForm).
		ToSql()

	var addendum entity.BidAddendum
	var issuedAt time.Time
	row := r.Database.QueryRowContext(ctx, getSql, args...)
	err = row.Scan(&addendum.Id, &addendum.BidPackageId, &addendum.Number,
		&addendum.Title, &addendum.Message, &issuedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	addendum.IssuedAt = fmtTime(issuedAt)

	return &addendum, nil
}

func (r *BidPackageRepo) GetAddendaByPackageId(ctx context.Context, packageId string) ([]entity.BidAddendum, error) {
	packageUuid, err := uuid.Parse(packageId)
	if err != nil {
		return nil, err
	}

	listSql, args, _ := r.SqlBuilder.
		Select("id", "bid_package_id", "number", "title", "message", "issued_at").
		From("bid_addendum").
		Where("bid_package_id = ?", packageUuid).
		OrderBy("number").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, listSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addenda := make([]entity.BidAddendum, 0)
	for rows.Next() {
		var addendum entity.BidAddendum
		var issuedAt time.Time
		if err := rows.Scan(&addendum.Id, &addendum.BidPackageId, &addendum.Number,
			&addendum.Title, &addendum.Message, &issuedAt); err != nil {
			return nil, err
		}

		addendum.IssuedAt = fmtTime(issuedAt)
		addenda = append(addenda, addendum)
	}

	return addenda, rows.Err()
}

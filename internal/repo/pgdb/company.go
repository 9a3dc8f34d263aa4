package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"bid-management-api/internal/entity"
	"bid-management-api/internal/repo/repo_errors"
	"bid-management-api/pkg/postgres"

	"github.com/google/uuid"
)

type CompanyRepo struct {
	*postgres.Postgres
}

func NewCompanyRepo(pgdb *postgres.Postgres) *CompanyRepo {
	return &CompanyRepo{pgdb}
}

func (r *CompanyRepo) GetCompanyById(ctx context.Context, id string) (*entity.Company, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	getSql, args, _ := r.SqlBuilder.
		Select("id", "name", "email", "created_at").
		From("company").
		Where("id = ?", uuidForm).
		ToSql()

	var company entity.Company
	var createdAt time.Time
	row := r.Database.QueryRowContext(ctx, getSql, args...)
	err = row.Scan(&company.Id, &company.Name, &company.Email, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	company.CreatedAt = fmtTime(createdAt)

	return &company, nil
}

func (r *CompanyRepo) FindCompanyByEmail(ctx context.Context, email string) (*entity.Company, error) {
	findSql, args, _ := r.SqlBuilder.
		Select("id", "name", "email", "created_at").
		From("company").
		Where("lower(email) = ?", strings.ToLower(email)).
		ToSql()

	var company entity.Company
	var createdAt time.Time
	row := r.Database.QueryRowContext(ctx, findSql, args...)
	err := row.Scan(&company.Id, &company.Name, &company.Email, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	company.CreatedAt = fmtTime(createdAt)

	return &company, nil
}

func (r *CompanyRepo) CreateCompany(ctx context.Context, name string, email string) (uuid.UUID, error) {
	createSql, args, _ := r.SqlBuilder.
		Insert("company").
		Columns("name", "email").
		Values(name, strings.ToLower(email)).
		Suffix("RETURNING id").
		ToSql()

	var companyId uuid.UUID
	err := r.Database.QueryRowContext(ctx, createSql, args...).Scan(&companyId)
	if err != nil {
		return uuid.Nil, err
	}

	return companyId, nil
}

func (r *CompanyRepo) DoesCompanyExistById(ctx context.Context, id string) (bool, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return false, err
	}

	existsSql, args, _ := r.SqlBuilder.
		Select("1").
		From("company").
		Where("id = ?", uuidForm).
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

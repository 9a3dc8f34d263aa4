package pgdb

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}

func fmtTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func fmtNullTime(t sql.NullTime) *string {
	if !t.Valid {
		return nil
	}

	s := t.Time.Format(time.RFC3339)
	return &s
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}

	return sql.NullString{String: *s, Valid: true}
}

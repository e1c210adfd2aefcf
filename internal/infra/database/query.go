package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"

	// raised when a value such as "abc" is compared to a uuid column
	invalidTextRepresentation = "22P02"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isInvalidID(err error) bool {
	return pgCode(err) == invalidTextRepresentation
}

// notFoundOr reports a missing row, or an id that can never match a row, as notFound.
func notFoundOr(err, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return notFound
	}
	return err
}

func mapWriteError(err error) error {
	switch pgCode(err) {
	case foreignKeyViolation, invalidTextRepresentation:
		return fmt.Errorf("%w: %v", entity.ErrReferenceNotFound, err)
	}
	return err
}

func mapDeleteError(err, notFound error) error {
	switch pgCode(err) {
	case foreignKeyViolation:
		return fmt.Errorf("%w: %v", entity.ErrInUse, err)
	case invalidTextRepresentation:
		return notFound
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

// filter accumulates WHERE clauses; each "?" in a clause becomes the next $n.
type filter struct {
	clauses []string
	args    []any
}

func (f *filter) add(clause string, arg any) {
	f.args = append(f.args, arg)
	f.clauses = append(f.clauses, strings.ReplaceAll(clause, "?", fmt.Sprintf("$%d", len(f.args))))
}

func (f *filter) where() string {
	if len(f.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.clauses, " AND ")
}

// paginate appends LIMIT/OFFSET placeholders and returns the full arg list.
func (f *filter) paginate(limit, offset int) (string, []any) {
	n := len(f.args)
	args := append(append([]any{}, f.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), args
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func ptrString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func ptrTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func checkAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

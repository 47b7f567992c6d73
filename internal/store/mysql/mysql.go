package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/hsm-gustavo/jobboard/internal/store"
)

const (
	errDuplicateEntry  = 1062 // ER_DUP_ENTRY
	errNoReferencedRow = 1452 // ER_NO_REFERENCED_ROW_2
)

// DBTX is the subset of database/sql used here; *sql.DB and *sql.Tx both
// satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements store.Store on MySQL. Every call runs under opTimeout.
type Store struct {
	db        DBTX
	opTimeout time.Duration
}

var _ store.Store = (*Store)(nil)

func New(db DBTX, opTimeout time.Duration) *Store {
	return &Store{db: db, opTimeout: opTimeout}
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

func isDuplicate(err error) bool {
	var myErr *gomysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == errDuplicateEntry
}

// isMissingParent reports a foreign key insert whose referenced row is gone.
func isMissingParent(err error) bool {
	var myErr *gomysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == errNoReferencedRow
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

// likePattern escapes LIKE wildcards so the search term matches literally.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(term)) + "%"
}

package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned when a write hits a unique constraint.
var ErrDuplicate = errors.New("record already exists")

// ErrReferenced is returned when a delete would orphan rows pointing at the record.
var ErrReferenced = errors.New("record is still referenced")

// IsUniqueViolation reports whether err is a Postgres unique violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// IsForeignKeyViolation reports whether err is a Postgres foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}

// translate maps driver errors onto the repository's sentinel errors.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return ErrDuplicate
	}
	if IsForeignKeyViolation(err) {
		return ErrReferenced
	}
	return err
}

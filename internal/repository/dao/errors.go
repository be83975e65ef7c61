package dao

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrVoterNotFound     = errors.New("voter not found")
	ErrVoterNIDExists    = errors.New("voter with this nid already exists")
	ErrAdminNotFound     = errors.New("admin not found")
	ErrElectionNotFound  = errors.New("election not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrVoteNotFound      = errors.New("vote not found")
	ErrVoteExists        = errors.New("vote already exists for voter and election")
)

// isUniqueViolation reports whether err is a unique constraint violation.
// When constraint is not empty and the driver exposes the constraint name,
// the name must match as well.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgerrcode.UniqueViolation {
			return false
		}

		return constraint == "" ||
			pgErr.ConstraintName == constraint ||
			strings.Contains(pgErr.Message, `"`+constraint+`"`)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// modernc sqlite without error translation
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

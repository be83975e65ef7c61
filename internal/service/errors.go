package service

import (
	"errors"

	"github.com/vietanh2810/evoting-api/internal/repository"
)

var (
	ErrVoterNotFound     = repository.ErrVoterNotFound
	ErrAdminNotFound     = repository.ErrAdminNotFound
	ErrElectionNotFound  = repository.ErrElectionNotFound
	ErrCandidateNotFound = repository.ErrCandidateNotFound
	ErrVoteNotFound      = repository.ErrVoteNotFound

	ErrAlreadyVoted  = errors.New("voter has already voted in this election")
	ErrWrongPassword = errors.New("wrong password")

	// ErrWriteFailed means the store did not apply a write as expected.
	ErrWriteFailed = errors.New("write failed")
	// ErrStorage means the store could not be read.
	ErrStorage = errors.New("storage error")
)

// ValidationError reports input rejected before the store was touched.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(err error) error {
	if err == nil {
		return nil
	}

	return &ValidationError{Err: err}
}

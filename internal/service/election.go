package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"

	"github.com/vietanh2810/evoting-api/internal/cache"
	"github.com/vietanh2810/evoting-api/internal/domain"
	"github.com/vietanh2810/evoting-api/internal/events"
	"github.com/vietanh2810/evoting-api/internal/metrics"
	"github.com/vietanh2810/evoting-api/internal/repository"
)

var errEndBeforeStart = errors.New("must not be before start_date")

type ElectionRepository interface {
	Create(ctx context.Context, election domain.Election) (domain.Election, int64, error)
	FindByID(ctx context.Context, id int64) (domain.Election, error)
	FindAll(ctx context.Context) ([]domain.Election, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ElectionStatus) (int64, error)
	DeleteCascade(ctx context.Context, id int64) (repository.CascadeResult, error)
}

type CandidateRepository interface {
	Create(ctx context.Context, candidate domain.Candidate) (domain.Candidate, int64, error)
	FindByID(ctx context.Context, id int64) (domain.Candidate, error)
	FindByElection(ctx context.Context, electionID int64) ([]domain.Candidate, error)
	FindAll(ctx context.Context) ([]domain.Candidate, error)
	FindSymbol(ctx context.Context, id int64) ([]byte, error)
	DeleteCascade(ctx context.Context, id int64) (repository.CascadeResult, error)
}

type ElectionOptions struct {
	// RefreshStatusOnRead re-derives status from the date range on reads
	// and persists it when it changed. Off, the status set at creation is
	// served as stored.
	RefreshStatusOnRead bool
}

// ElectionService manages elections and their candidates. It is the only
// service that deletes data.
type ElectionService struct {
	elections  ElectionRepository
	candidates CandidateRepository
	cache      cache.VotedCache
	publisher  events.Publisher
	metrics    *metrics.Metrics
	opts       ElectionOptions
	now        func() time.Time
}

func NewElectionService(
	elections ElectionRepository,
	candidates CandidateRepository,
	c cache.VotedCache,
	p events.Publisher,
	m *metrics.Metrics,
	opts ElectionOptions,
) *ElectionService {
	return &ElectionService{
		elections:  elections,
		candidates: candidates,
		cache:      c,
		publisher:  p,
		metrics:    m,
		opts:       opts,
		now:        time.Now,
	}
}

// CreateElection stores a new election with its status derived from today.
// Dates that do not parse are kept as given and the status falls back to
// upcoming.
func (s *ElectionService) CreateElection(ctx context.Context, title, startDate, endDate string) (domain.Election, error) {
	title = strings.TrimSpace(title)
	startDate = strings.TrimSpace(startDate)
	endDate = strings.TrimSpace(endDate)

	err := validation.Errors{
		"title":      validation.Validate(title, validation.Required, validation.RuneLength(1, 255)),
		"start_date": validation.Validate(startDate, validation.Required),
		"end_date":   validation.Validate(endDate, validation.Required),
	}.Filter()
	if err != nil {
		return domain.Election{}, newValidationError(err)
	}

	start, startErr := time.Parse(domain.DateLayout, startDate)
	end, endErr := time.Parse(domain.DateLayout, endDate)
	switch {
	case startErr == nil && endErr == nil && end.Before(start):
		return domain.Election{}, newValidationError(validation.Errors{"end_date": errEndBeforeStart})
	case startErr != nil || endErr != nil:
		zap.L().Warn("election dates do not parse, status defaults to upcoming",
			zap.String("startDate", startDate),
			zap.String("endDate", endDate),
		)
	}

	created, affected, err := s.elections.Create(ctx, domain.Election{
		Title:     title,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    domain.DeriveStatus(startDate, endDate, s.now()),
	})
	if err != nil {
		return domain.Election{}, fmt.Errorf("%w: s.elections.Create -> %w", ErrWriteFailed, err)
	}
	if affected != 1 {
		return domain.Election{}, fmt.Errorf("%w: %d rows affected", ErrWriteFailed, affected)
	}

	zap.L().Info("election created",
		zap.Int64("electionID", created.ID),
		zap.String("status", string(created.Status)),
	)

	return created, nil
}

func (s *ElectionService) GetElection(ctx context.Context, id int64) (domain.Election, error) {
	election, err := s.elections.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrElectionNotFound) {
			return domain.Election{}, ErrElectionNotFound
		}

		return domain.Election{}, fmt.Errorf("%w: s.elections.FindByID -> %w", ErrStorage, err)
	}

	return s.refreshStatus(ctx, election), nil
}

// ListElections returns every election, newest first.
func (s *ElectionService) ListElections(ctx context.Context) ([]domain.Election, error) {
	elections, err := s.elections.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: s.elections.FindAll -> %w", ErrStorage, err)
	}

	for i := range elections {
		elections[i] = s.refreshStatus(ctx, elections[i])
	}

	return elections, nil
}

func (s *ElectionService) refreshStatus(ctx context.Context, e domain.Election) domain.Election {
	if !s.opts.RefreshStatusOnRead {
		return e
	}

	current := e.CurrentStatus(s.now())
	if current == e.Status {
		return e
	}

	if _, err := s.elections.UpdateStatus(ctx, e.ID, current); err != nil {
		zap.L().Warn("failed to persist refreshed election status",
			zap.Int64("electionID", e.ID),
			zap.Error(err),
		)
	}
	e.Status = current

	return e
}

// DeleteElection removes the election with its candidates and votes as one
// unit. Either all of it is gone afterwards or none of it is.
func (s *ElectionService) DeleteElection(ctx context.Context, id int64) error {
	res, err := s.elections.DeleteCascade(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrElectionNotFound) {
			return ErrElectionNotFound
		}

		zap.L().Error("failed to delete election", zap.Int64("electionID", id), zap.Error(err))

		return fmt.Errorf("%w: s.elections.DeleteCascade -> %w", ErrStorage, err)
	}

	zap.L().Info("election deleted",
		zap.Int64("electionID", id),
		zap.Int64("votes", res.Votes),
		zap.Int64("candidates", res.Candidates),
	)
	s.metrics.ElectionDeletes.Inc()
	s.forget(ctx, id)

	e := events.New(events.TypeElectionDeleted, id)
	e.VotesPurged = res.Votes
	publish(ctx, s.publisher, s.metrics, e)

	return nil
}

func (s *ElectionService) AddCandidate(ctx context.Context, candidate domain.Candidate) (domain.Candidate, error) {
	candidate.FullName = strings.TrimSpace(candidate.FullName)
	candidate.PartyName = strings.TrimSpace(candidate.PartyName)

	err := validation.ValidateStruct(
		&candidate,
		validation.Field(&candidate.FullName, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&candidate.PartyName, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&candidate.ConstituencyID, validation.Required, validation.Min(int64(1))),
		validation.Field(&candidate.ElectionID, validation.Required, validation.Min(int64(1))),
	)
	if err != nil {
		return domain.Candidate{}, newValidationError(err)
	}

	if _, err = s.elections.FindByID(ctx, candidate.ElectionID); err != nil {
		if errors.Is(err, repository.ErrElectionNotFound) {
			return domain.Candidate{}, ErrElectionNotFound
		}

		return domain.Candidate{}, fmt.Errorf("%w: s.elections.FindByID -> %w", ErrStorage, err)
	}

	created, affected, err := s.candidates.Create(ctx, candidate)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("%w: s.candidates.Create -> %w", ErrWriteFailed, err)
	}
	if affected != 1 {
		return domain.Candidate{}, fmt.Errorf("%w: %d rows affected", ErrWriteFailed, affected)
	}

	return created, nil
}

// DeleteCandidate removes the candidate and the votes cast for it.
func (s *ElectionService) DeleteCandidate(ctx context.Context, id int64) error {
	candidate, err := s.candidates.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return ErrCandidateNotFound
		}

		return fmt.Errorf("%w: s.candidates.FindByID -> %w", ErrStorage, err)
	}

	res, err := s.candidates.DeleteCascade(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return ErrCandidateNotFound
		}

		zap.L().Error("failed to delete candidate", zap.Int64("candidateID", id), zap.Error(err))

		return fmt.Errorf("%w: s.candidates.DeleteCascade -> %w", ErrStorage, err)
	}

	zap.L().Info("candidate deleted",
		zap.Int64("candidateID", id),
		zap.Int64("electionID", candidate.ElectionID),
		zap.Int64("votes", res.Votes),
	)
	// Voters whose vote was purged may vote again in this election.
	s.forget(ctx, candidate.ElectionID)

	e := events.New(events.TypeCandidateDeleted, candidate.ElectionID)
	e.CandidateID = id
	e.VotesPurged = res.Votes
	publish(ctx, s.publisher, s.metrics, e)

	return nil
}

// ListCandidates lists one election's candidates, or every candidate when
// electionID is zero.
func (s *ElectionService) ListCandidates(ctx context.Context, electionID int64) ([]domain.Candidate, error) {
	var (
		candidates []domain.Candidate
		err        error
	)
	if electionID == 0 {
		candidates, err = s.candidates.FindAll(ctx)
	} else {
		candidates, err = s.candidates.FindByElection(ctx, electionID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: list candidates -> %w", ErrStorage, err)
	}

	return candidates, nil
}

func (s *ElectionService) GetCandidateSymbol(ctx context.Context, id int64) ([]byte, error) {
	symbol, err := s.candidates.FindSymbol(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return nil, ErrCandidateNotFound
		}

		return nil, fmt.Errorf("%w: s.candidates.FindSymbol -> %w", ErrStorage, err)
	}

	return symbol, nil
}

func (s *ElectionService) forget(ctx context.Context, electionID int64) {
	if err := s.cache.Forget(ctx, electionID); err != nil {
		zap.L().Warn("failed to clear voted cache", zap.Int64("electionID", electionID), zap.Error(err))
	}
}

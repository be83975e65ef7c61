package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"

	"github.com/vietanh2810/evoting-api/internal/cache"
	"github.com/vietanh2810/evoting-api/internal/domain"
	"github.com/vietanh2810/evoting-api/internal/events"
	"github.com/vietanh2810/evoting-api/internal/metrics"
	"github.com/vietanh2810/evoting-api/internal/repository"
)

const publishTimeout = 5 * time.Second

type VoteRepository interface {
	Create(ctx context.Context, vote domain.Vote) (domain.Vote, int64, error)
	Exists(ctx context.Context, voterID, electionID int64) (bool, error)
	FindByVoterAndElection(ctx context.Context, voterID, electionID int64) (domain.Vote, error)
	FindRecordsByElection(ctx context.Context, electionID int64) ([]domain.VoteRecord, error)
}

type VoteCandidateRepository interface {
	FindByID(ctx context.Context, id int64) (domain.Candidate, error)
}

var errCandidateNotInElection = errors.New("candidate does not stand in this election")

// VoteService records votes. The store's unique index on voter and
// election is what guarantees a single vote; the checks made here before
// inserting only save a round trip.
type VoteService struct {
	repo       VoteRepository
	candidates VoteCandidateRepository
	cache      cache.VotedCache
	publisher  events.Publisher
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewVoteService(
	repo VoteRepository,
	candidates VoteCandidateRepository,
	c cache.VotedCache,
	p events.Publisher,
	m *metrics.Metrics,
) *VoteService {
	return &VoteService{
		repo:       repo,
		candidates: candidates,
		cache:      c,
		publisher:  p,
		metrics:    m,
		now:        time.Now,
	}
}

func (s *VoteService) CastVote(ctx context.Context, electionID, voterID, candidateID int64) (domain.Vote, error) {
	err := validation.Errors{
		"election_id":  validation.Validate(electionID, validation.Required, validation.Min(int64(1))),
		"voter_id":     validation.Validate(voterID, validation.Required, validation.Min(int64(1))),
		"candidate_id": validation.Validate(candidateID, validation.Required, validation.Min(int64(1))),
	}.Filter()
	if err != nil {
		return domain.Vote{}, newValidationError(err)
	}

	voted, err := s.HasVoted(ctx, electionID, voterID)
	if err != nil {
		s.metrics.VotesRejected.WithLabelValues(metrics.ReasonStorage).Inc()
		return domain.Vote{}, err
	}
	if voted {
		s.metrics.VotesRejected.WithLabelValues(metrics.ReasonAlreadyVoted).Inc()
		return domain.Vote{}, ErrAlreadyVoted
	}

	if err = s.checkCandidate(ctx, electionID, candidateID); err != nil {
		return domain.Vote{}, err
	}

	vote, affected, err := s.repo.Create(ctx, domain.Vote{
		VoterID:     voterID,
		ElectionID:  electionID,
		CandidateID: candidateID,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrVoteExists) {
			s.metrics.VotesRejected.WithLabelValues(metrics.ReasonAlreadyVoted).Inc()
			s.markVoted(ctx, electionID, voterID)

			return domain.Vote{}, ErrAlreadyVoted
		}

		s.metrics.VotesRejected.WithLabelValues(metrics.ReasonWriteFailed).Inc()
		zap.L().Error("failed to record vote",
			zap.Int64("electionID", electionID),
			zap.Int64("voterID", voterID),
			zap.Error(err),
		)

		return domain.Vote{}, fmt.Errorf("%w: s.repo.Create -> %w", ErrWriteFailed, err)
	}
	if affected != 1 {
		s.metrics.VotesRejected.WithLabelValues(metrics.ReasonWriteFailed).Inc()
		zap.L().Error("unexpected rows affected while recording vote",
			zap.Int64("electionID", electionID),
			zap.Int64("voterID", voterID),
			zap.Int64("affected", affected),
		)

		return domain.Vote{}, fmt.Errorf("%w: %d rows affected", ErrWriteFailed, affected)
	}

	s.metrics.VotesCast.Inc()
	s.markVoted(ctx, electionID, voterID)

	e := events.New(events.TypeVoteCast, electionID)
	e.VoterID = voterID
	e.CandidateID = candidateID
	publish(ctx, s.publisher, s.metrics, e)

	return vote, nil
}

// checkCandidate rejects a candidate the tallies of electionID would never
// count, before the voter's single vote is spent on it.
func (s *VoteService) checkCandidate(ctx context.Context, electionID, candidateID int64) error {
	candidate, err := s.candidates.FindByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			s.metrics.VotesRejected.WithLabelValues(metrics.ReasonNotEligible).Inc()
			return ErrCandidateNotFound
		}

		s.metrics.VotesRejected.WithLabelValues(metrics.ReasonStorage).Inc()
		return fmt.Errorf("%w: s.candidates.FindByID -> %w", ErrStorage, err)
	}
	if candidate.ElectionID != electionID {
		s.metrics.VotesRejected.WithLabelValues(metrics.ReasonNotEligible).Inc()
		return newValidationError(validation.Errors{"candidate_id": errCandidateNotInElection})
	}

	return nil
}

// HasVoted consults the cache first and the store on a miss.
func (s *VoteService) HasVoted(ctx context.Context, electionID, voterID int64) (bool, error) {
	hit, err := s.cache.HasVoted(ctx, electionID, voterID)
	if err != nil {
		zap.L().Warn("voted cache lookup failed", zap.Int64("electionID", electionID), zap.Error(err))
	} else if hit {
		return true, nil
	}

	exists, err := s.repo.Exists(ctx, voterID, electionID)
	if err != nil {
		return false, fmt.Errorf("%w: s.repo.Exists -> %w", ErrStorage, err)
	}

	return exists, nil
}

func (s *VoteService) FindMyVote(ctx context.Context, electionID, voterID int64) (domain.Vote, error) {
	vote, err := s.repo.FindByVoterAndElection(ctx, voterID, electionID)
	if err != nil {
		if errors.Is(err, repository.ErrVoteNotFound) {
			return domain.Vote{}, ErrVoteNotFound
		}

		return domain.Vote{}, fmt.Errorf("%w: s.repo.FindByVoterAndElection -> %w", ErrStorage, err)
	}

	return vote, nil
}

func (s *VoteService) ListVotesByElection(ctx context.Context, electionID int64) ([]domain.VoteRecord, error) {
	records, err := s.repo.FindRecordsByElection(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("%w: s.repo.FindRecordsByElection -> %w", ErrStorage, err)
	}

	return records, nil
}

func (s *VoteService) markVoted(ctx context.Context, electionID, voterID int64) {
	if err := s.cache.MarkVoted(ctx, electionID, voterID); err != nil {
		zap.L().Warn("failed to mark voter in cache",
			zap.Int64("electionID", electionID),
			zap.Int64("voterID", voterID),
			zap.Error(err),
		)
	}
}

// publish sends e after the triggering write has committed. The write is
// already durable, so failures are only logged and counted.
func publish(ctx context.Context, p events.Publisher, m *metrics.Metrics, e events.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.Publish(ctx, e); err != nil {
		m.EventFailures.WithLabelValues(string(e.Type)).Inc()
		zap.L().Warn("failed to publish event",
			zap.String("type", string(e.Type)),
			zap.Int64("electionID", e.ElectionID),
			zap.Error(err),
		)
	}
}

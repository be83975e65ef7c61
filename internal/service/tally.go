package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/vietanh2810/evoting-api/internal/domain"
	"github.com/vietanh2810/evoting-api/internal/metrics"
)

type TallyRepository interface {
	ByCandidate(ctx context.Context, electionID int64) ([]domain.TallyRow, error)
	ByConstituency(ctx context.Context, electionID, constituencyID int64) ([]domain.TallyRow, error)
}

// TallyService aggregates recorded votes on every call. Results are best
// effort: a failed read is logged and returned as an empty tally.
type TallyService struct {
	repo    TallyRepository
	metrics *metrics.Metrics
}

func NewTallyService(repo TallyRepository, m *metrics.Metrics) *TallyService {
	return &TallyService{
		repo:    repo,
		metrics: m,
	}
}

// TallyByCandidate counts votes per candidate, highest first. Candidates
// without votes are included with a count of zero.
func (s *TallyService) TallyByCandidate(ctx context.Context, electionID int64) []domain.TallyRow {
	rows, err := s.repo.ByCandidate(ctx, electionID)
	if err != nil {
		zap.L().Warn("failed to tally votes by candidate",
			zap.Int64("electionID", electionID),
			zap.Error(err),
		)
		s.metrics.ReadsDegraded.WithLabelValues("tally_by_candidate").Inc()

		return []domain.TallyRow{}
	}

	return rows
}

func (s *TallyService) TallyByConstituency(ctx context.Context, electionID, constituencyID int64) []domain.TallyRow {
	rows, err := s.repo.ByConstituency(ctx, electionID, constituencyID)
	if err != nil {
		zap.L().Warn("failed to tally votes by constituency",
			zap.Int64("electionID", electionID),
			zap.Int64("constituencyID", constituencyID),
			zap.Error(err),
		)
		s.metrics.ReadsDegraded.WithLabelValues("tally_by_constituency").Inc()

		return []domain.TallyRow{}
	}

	return rows
}

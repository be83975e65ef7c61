package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/vietanh2810/evoting-api/internal/domain"
	"github.com/vietanh2810/evoting-api/internal/metrics"
	"github.com/vietanh2810/evoting-api/internal/repository"
)

type BallotCandidateRepository interface {
	FindByElection(ctx context.Context, electionID int64) ([]domain.Candidate, error)
}

type BallotVoteRepository interface {
	FindByVoterAndElection(ctx context.Context, voterID, electionID int64) (domain.Vote, error)
}

// BallotService works out which candidates a voter may choose from.
type BallotService struct {
	voters     VoterLookup
	candidates BallotCandidateRepository
	votes      BallotVoteRepository
	metrics    *metrics.Metrics
}

func NewBallotService(
	voters VoterLookup,
	candidates BallotCandidateRepository,
	votes BallotVoteRepository,
	m *metrics.Metrics,
) *BallotService {
	return &BallotService{
		voters:     voters,
		candidates: candidates,
		votes:      votes,
		metrics:    m,
	}
}

// ResolveBallot finds the voter by national id or voter id and returns the
// election's candidates standing in that voter's constituency.
func (s *BallotService) ResolveBallot(ctx context.Context, identity string, electionID int64) (domain.Ballot, error) {
	voter, err := lookupVoter(ctx, s.voters, identity)
	if err != nil {
		return domain.Ballot{}, err
	}

	return s.ballotFor(ctx, voter, electionID), nil
}

// ResolveBallotForVoter is ResolveBallot for an already authenticated voter.
func (s *BallotService) ResolveBallotForVoter(ctx context.Context, voterID, electionID int64) (domain.Ballot, error) {
	voter, err := findVoterByID(ctx, s.voters, voterID)
	if err != nil {
		return domain.Ballot{}, err
	}

	return s.ballotFor(ctx, voter, electionID), nil
}

func (s *BallotService) ballotFor(ctx context.Context, voter domain.Voter, electionID int64) domain.Ballot {
	ballot := domain.Ballot{
		Voter:      voter,
		ElectionID: electionID,
		Candidates: []domain.Candidate{},
	}

	all, err := s.candidates.FindByElection(ctx, electionID)
	if err != nil {
		zap.L().Warn("failed to load candidates, serving empty ballot",
			zap.Int64("electionID", electionID),
			zap.Int64("voterID", voter.ID),
			zap.Error(err),
		)
		s.metrics.ReadsDegraded.WithLabelValues("ballot_candidates").Inc()
	}

	for _, c := range all {
		if c.ConstituencyID == voter.ConstituencyID {
			ballot.Candidates = append(ballot.Candidates, c)
		}
	}
	ballot.NoCandidates = len(ballot.Candidates) == 0

	vote, err := s.votes.FindByVoterAndElection(ctx, voter.ID, electionID)
	switch {
	case err == nil:
		ballot.HasVoted = true
		ballot.MyVote = &vote
	case !errors.Is(err, repository.ErrVoteNotFound):
		zap.L().Warn("failed to load existing vote for ballot",
			zap.Int64("electionID", electionID),
			zap.Int64("voterID", voter.ID),
			zap.Error(err),
		)
		s.metrics.ReadsDegraded.WithLabelValues("ballot_vote").Inc()
	}

	return ballot
}

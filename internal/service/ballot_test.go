package service

import (
	"context"
	"strconv"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/evoting-api/internal/domain"
	"github.com/vietanh2810/evoting-api/internal/testutil"
)

func TestBallotService_ResolveBallot_ScopesToConstituency(t *testing.T) {
	s := newStack(t, ElectionOptions{})
	voter := seedScenario(t, s.db)

	ballot, err := s.ballots.ResolveBallot(context.Background(), "1111111111", 7)
	require.NoError(t, err)

	assert.Equal(t, voter.ID, ballot.Voter.ID)
	assert.EqualValues(t, 7, ballot.ElectionID)
	assert.Equal(t, []int64{101}, ids(ballot.Candidates))
	assert.False(t, ballot.NoCandidates)
	assert.False(t, ballot.HasVoted)
	assert.Nil(t, ballot.MyVote)
}

func TestBallotService_ResolveBallot_FallsBackToVoterID(t *testing.T) {
	s := newStack(t, ElectionOptions{})
	voter := seedScenario(t, s.db)

	ballot, err := s.ballots.ResolveBallot(context.Background(), strconv.FormatInt(voter.ID, 10), 7)
	require.NoError(t, err)
	assert.Equal(t, "1111111111", ballot.Voter.NIDNumber)
}

func TestBallotService_ResolveBallot_NIDWinsOverVoterID(t *testing.T) {
	s := newStack(t, ElectionOptions{})
	seedScenario(t, s.db)

	// A voter whose NID is the numeric id of another voter.
	other := testutil.CreateVoter(t, s.db, "1", 2, "x")

	ballot, err := s.ballots.ResolveBallot(context.Background(), "1", 7)
	require.NoError(t, err)
	assert.Equal(t, other.ID, ballot.Voter.ID)
	assert.Equal(t, []int64{102}, ids(ballot.Candidates))
}

func TestBallotService_ResolveBallot_VoterNotFound(t *testing.T) {
	s := newStack(t, ElectionOptions{})
	seedScenario(t, s.db)

	for _, identity := range []string{"", "   ", "9999999999", "not-a-number", "-1"} {
		_, err := s.ballots.ResolveBallot(context.Background(), identity, 7)
		assert.ErrorIs(t, err, ErrVoterNotFound, identity)
	}
}

func TestBallotService_ResolveBallot_NoCandidates(t *testing.T) {
	s := newStack(t, ElectionOptions{})
	seedScenario(t, s.db)
	testutil.CreateConstituency(t, s.db, 3, "East")
	testutil.CreateVoter(t, s.db, "3333333333", 3, "x")

	ballot, err := s.ballots.ResolveBallot(context.Background(), "3333333333", 7)
	require.NoError(t, err)
	assert.True(t, ballot.NoCandidates)
	assert.Empty(t, ballot.Candidates)
	assert.NotNil(t, ballot.Candidates)
}

func TestBallotService_ResolveBallot_DegradesOnCandidateReadError(t *testing.T) {
	s := newStack(t, ElectionOptions{})
	seedScenario(t, s.db)
	testutil.FailQueriesOn(t, s.db, "candidate")

	ballot, err := s.ballots.ResolveBallot(context.Background(), "1111111111", 7)
	require.NoError(t, err)
	assert.True(t, ballot.NoCandidates)
	assert.Empty(t, ballot.Candidates)
	assert.Equal(t, 1.0, promtestutil.ToFloat64(s.metrics.ReadsDegraded.WithLabelValues("ballot_candidates")))
}

func TestBallotService_ResolveBallotForVoter_ReportsExistingVote(t *testing.T) {
	s := newStack(t, ElectionOptions{})
	voter := seedScenario(t, s.db)
	testutil.CreateVote(t, s.db, 7, voter.ID, 101)

	ballot, err := s.ballots.ResolveBallotForVoter(context.Background(), voter.ID, 7)
	require.NoError(t, err)
	assert.True(t, ballot.HasVoted)
	require.NotNil(t, ballot.MyVote)
	assert.EqualValues(t, 101, ballot.MyVote.CandidateID)

	_, err = s.ballots.ResolveBallotForVoter(context.Background(), 999, 7)
	assert.ErrorIs(t, err, ErrVoterNotFound)
}

func ids(candidates []domain.Candidate) []int64 {
	out := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.ID)
	}

	return out
}

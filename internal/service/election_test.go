package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/evoting-api/internal/domain"
	"github.com/vietanh2810/evoting-api/internal/events"
	"github.com/vietanh2810/evoting-api/internal/repository/dao"
	"github.com/vietanh2810/evoting-api/internal/testutil"
)

func TestElectionService_CreateElection_Status(t *testing.T) {
	day := func(offset int) string {
		return fixedNow.AddDate(0, 0, offset).Format(domain.DateLayout)
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  domain.ElectionStatus
	}{
		{name: "running", start: day(-1), end: day(1), want: domain.ElectionActive},
		{name: "future", start: day(5), end: day(6), want: domain.ElectionUpcoming},
		{name: "past", start: day(-5), end: day(-1), want: domain.ElectionCompleted},
		{name: "unparseable", start: "tomorrow", end: "next week", want: domain.ElectionUpcoming},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStack(t, ElectionOptions{})

			e, err := s.elections.CreateElection(context.Background(), "  General  ", tt.start, tt.end)
			require.NoError(t, err)
			assert.NotZero(t, e.ID)
			assert.Equal(t, "General", e.Title)
			assert.Equal(t, tt.want, e.Status)

			stored, err := s.elections.GetElection(context.Background(), e.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored.Status)
		})
	}
}

func TestElectionService_CreateElection_Validation(t *testing.T) {
	s := newStack(t, ElectionOptions{})

	tests := []struct {
		name       string
		title      string
		start, end string
		field      string
	}{
		{name: "missing title", title: " ", start: "2026-01-01", end: "2026-01-02", field: "title"},
		{name: "missing start", title: "General", start: "", end: "2026-01-02", field: "start_date"},
		{name: "missing end", title: "General", start: "2026-01-01", end: "", field: "end_date"},
		{name: "end before start", title: "General", start: "2026-01-05", end: "2026-01-02", field: "end_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.elections.CreateElection(context.Background(), tt.title, tt.start, tt.end)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	assert.Zero(t, testutil.Count(t, s.db, &dao.Election{}, "1 = 1"))
}

func TestElectionService_StatusStaysAsStored(t *testing.T) {
	s := newStack(t, ElectionOptions{})
	e, err := s.elections.CreateElection(context.Background(), "General", "2026-03-11", "2026-03-12")
	require.NoError(t, err)
	require.Equal(t, domain.ElectionUpcoming, e.Status)

	s.elections.now = func() time.Time { return fixedNow.AddDate(0, 0, 10) }

	got, err := s.elections.GetElection(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ElectionUpcoming, got.Status)
}

func TestElectionService_RefreshStatusOnRead(t *testing.T) {
	s := newStack(t, ElectionOptions{RefreshStatusOnRead: true})
	e, err := s.elections.CreateElection(context.Background(), "General", "2026-03-11", "2026-03-12")
	require.NoError(t, err)
	require.Equal(t, domain.ElectionUpcoming, e.Status)

	s.elections.now = func() time.Time { return fixedNow.AddDate(0, 0, 1) }

	list, err := s.elections.ListElections(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.ElectionActive, list[0].Status)

	stored, err := dao.NewElectionDAO(s.db).FindByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.ElectionActive), stored.Status)
}

func TestElectionService_ListElections_NewestFirst(t *testing.T) {
	s := newStack(t, ElectionOptions{})
	first, err := s.elections.CreateElection(context.Background(), "First", "2026-01-01", "2026-01-02")
	require.NoError(t, err)
	second, err := s.elections.CreateElection(context.Background(), "Second", "2026-02-01", "2026-02-02")
	require.NoError(t, err)

	list, err := s.elections.ListElections(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	_, err = s.elections.GetElection(context.Background(), 999)
	assert.ErrorIs(t, err, ErrElectionNotFound)
}

func seedCascade(t *testing.T, s *stack) {
	t.Helper()

	testutil.CreateConstituency(t, s.db, 1, "North")
	voters := testutil.CreateVoters(t, s.db, 5, 1)
	testutil.CreateElection(t, s.db, 7, "General")
	testutil.CreateCandidate(t, s.db, 101, 7, 1, "Alice")
	testutil.CreateCandidate(t, s.db, 102, 7, 1, "Bob")
	for i, id := range voters {
		_, err := s.votes.CastVote(context.Background(), 7, id, 101+int64(i%2))
		require.NoError(t, err)
	}
}

func TestElectionService_DeleteElection(t *testing.T) {
	s := newStack(t, ElectionOptions{})
	seedCascade(t, s)

	require.NoError(t, s.elections.DeleteElection(context.Background(), 7))

	assert.Zero(t, testutil.Count(t, s.db, &dao.Vote{}, "election_id = ?", 7))
	assert.Zero(t, testutil.Count(t, s.db, &dao.Candidate{}, "election_id = ?", 7))
	assert.Zero(t, testutil.Count(t, s.db, &dao.Election{}, "election_id = ?", 7))
	assert.Equal(t, []int64{7}, s.cache.forgotten)
	assert.Contains(t, s.publisher.types(), events.TypeElectionDeleted)

	err := s.elections.DeleteElection(context.Background(), 7)
	assert.ErrorIs(t, err, ErrElectionNotFound)
}

func TestElectionService_DeleteElection_MidCascadeFailure(t *testing.T) {
	s := newStack(t, ElectionOptions{})
	seedCascade(t, s)
	testutil.FailDeletesOn(t, s.db, "election")

	err := s.elections.DeleteElection(context.Background(), 7)
	require.ErrorIs(t, err, ErrStorage)

	assert.EqualValues(t, 5, testutil.Count(t, s.db, &dao.Vote{}, "election_id = ?", 7))
	assert.EqualValues(t, 2, testutil.Count(t, s.db, &dao.Candidate{}, "election_id = ?", 7))
	assert.EqualValues(t, 1, testutil.Count(t, s.db, &dao.Election{}, "election_id = ?", 7))
	assert.Empty(t, s.cache.forgotten)
	assert.NotContains(t, s.publisher.types(), events.TypeElectionDeleted)
}

func TestElectionService_Candidates(t *testing.T) {
	s := newStack(t, ElectionOptions{})
	voter := seedScenario(t, s.db)
	ctx := context.Background()

	created, err := s.elections.AddCandidate(ctx, domain.Candidate{
		FullName:       " Carol ",
		PartyName:      "Green",
		ConstituencyID: 1,
		ElectionID:     7,
		Symbol:         []byte("png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Carol", created.FullName)

	symbol, err := s.elections.GetCandidateSymbol(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), symbol)

	list, err := s.elections.ListCandidates(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{101, created.ID, 102}, ids(list))

	all, err := s.elections.ListCandidates(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = s.elections.AddCandidate(ctx, domain.Candidate{FullName: "Dan", PartyName: "Blue", ConstituencyID: 1, ElectionID: 99})
	assert.ErrorIs(t, err, ErrElectionNotFound)

	_, err = s.elections.AddCandidate(ctx, domain.Candidate{PartyName: "Blue", ElectionID: 7})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = s.votes.CastVote(ctx, 7, voter.ID, created.ID)
	require.NoError(t, err)

	require.NoError(t, s.elections.DeleteCandidate(ctx, created.ID))
	assert.Zero(t, testutil.Count(t, s.db, &dao.Vote{}, "candidate_id = ?", created.ID))
	assert.Equal(t, []int64{7}, s.cache.forgotten)

	// The purged vote no longer blocks the voter.
	_, err = s.votes.CastVote(ctx, 7, voter.ID, 101)
	require.NoError(t, err)

	assert.ErrorIs(t, s.elections.DeleteCandidate(ctx, created.ID), ErrCandidateNotFound)
	_, err = s.elections.GetCandidateSymbol(ctx, created.ID)
	assert.ErrorIs(t, err, ErrCandidateNotFound)
}

package dao_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vietanh2810/evoting-api/internal/repository/dao"
	"github.com/vietanh2810/evoting-api/internal/testutil"
)

// seedElection creates election 7 with two candidates and five votes, plus
// an unrelated election 8 with one vote.
func seedElection(t *testing.T, gdb *gorm.DB) {
	t.Helper()

	testutil.CreateConstituency(t, gdb, 1, "North")
	voters := testutil.CreateVoters(t, gdb, 5, 1)
	testutil.CreateElection(t, gdb, 7, "General")
	testutil.CreateElection(t, gdb, 8, "Local")
	testutil.CreateCandidate(t, gdb, 101, 7, 1, "Alice")
	testutil.CreateCandidate(t, gdb, 102, 7, 1, "Bob")
	testutil.CreateCandidate(t, gdb, 201, 8, 1, "Carol")
	for i, id := range voters {
		testutil.CreateVote(t, gdb, 7, id, 101+int64(i%2))
	}
	testutil.CreateVote(t, gdb, 8, voters[0], 201)
}

type electionRows struct {
	votes, candidates, elections int64
}

func countElectionRows(t *testing.T, gdb *gorm.DB, id int64) electionRows {
	t.Helper()

	return electionRows{
		votes:      testutil.Count(t, gdb, &dao.Vote{}, "election_id = ?", id),
		candidates: testutil.Count(t, gdb, &dao.Candidate{}, "election_id = ?", id),
		elections:  testutil.Count(t, gdb, &dao.Election{}, "election_id = ?", id),
	}
}

func TestElectionDAO_DeleteCascade(t *testing.T) {
	gdb := testutil.NewDB(t)
	seedElection(t, gdb)

	res, err := dao.NewElectionDAO(gdb).DeleteCascade(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, dao.CascadeResult{Votes: 5, Candidates: 2}, res)

	assert.Equal(t, electionRows{}, countElectionRows(t, gdb, 7))
	assert.Equal(t, electionRows{votes: 1, candidates: 1, elections: 1}, countElectionRows(t, gdb, 8))
}

func TestElectionDAO_DeleteCascade_RollsBack(t *testing.T) {
	for _, table := range []string{"candidate", "election"} {
		t.Run("failure on "+table, func(t *testing.T) {
			gdb := testutil.NewDB(t)
			seedElection(t, gdb)
			before := countElectionRows(t, gdb, 7)
			testutil.FailDeletesOn(t, gdb, table)

			_, err := dao.NewElectionDAO(gdb).DeleteCascade(context.Background(), 7)
			require.ErrorIs(t, err, testutil.ErrInjected)

			assert.Equal(t, electionRows{votes: 5, candidates: 2, elections: 1}, before)
			assert.Equal(t, before, countElectionRows(t, gdb, 7))
		})
	}
}

func TestElectionDAO_DeleteCascade_NotFound(t *testing.T) {
	gdb := testutil.NewDB(t)
	seedElection(t, gdb)

	_, err := dao.NewElectionDAO(gdb).DeleteCascade(context.Background(), 99)
	assert.ErrorIs(t, err, dao.ErrElectionNotFound)
	assert.Equal(t, electionRows{votes: 5, candidates: 2, elections: 1}, countElectionRows(t, gdb, 7))
}

func TestElectionDAO_InsertFindUpdate(t *testing.T) {
	gdb := testutil.NewDB(t)
	ctx := context.Background()
	d := dao.NewElectionDAO(gdb)

	first, affected, err := d.Insert(ctx, dao.Election{Title: "First", StartDate: "2026-01-01", EndDate: "2026-01-02", Status: "completed"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
	second, _, err := d.Insert(ctx, dao.Election{Title: "Second", StartDate: "2099-01-01", EndDate: "2099-01-02", Status: "upcoming"})
	require.NoError(t, err)

	all, err := d.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	affected, err = d.UpdateStatus(ctx, second.ID, "active")
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	found, err := d.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", found.Status)

	_, err = d.FindByID(ctx, 999)
	assert.ErrorIs(t, err, dao.ErrElectionNotFound)
}

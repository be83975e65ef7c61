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

// seedTally gives A three votes, B five and C one in election 7. D has no
// votes. A and B stand in constituency 1, C and D in constituency 2.
func seedTally(t *testing.T, gdb *gorm.DB) {
	t.Helper()

	testutil.CreateConstituency(t, gdb, 1, "North")
	testutil.CreateConstituency(t, gdb, 2, "South")
	north := testutil.CreateVoters(t, gdb, 8, 1)
	south := testutil.CreateVoters(t, gdb, 1, 2)
	testutil.CreateElection(t, gdb, 7, "General")
	testutil.CreateElection(t, gdb, 8, "Local")
	testutil.CreateCandidate(t, gdb, 1, 7, 1, "A")
	testutil.CreateCandidate(t, gdb, 2, 7, 1, "B")
	testutil.CreateCandidate(t, gdb, 3, 7, 2, "C")
	testutil.CreateCandidate(t, gdb, 4, 7, 2, "D")
	testutil.CreateCandidate(t, gdb, 5, 8, 1, "E")

	for _, id := range north[:3] {
		testutil.CreateVote(t, gdb, 7, id, 1)
	}
	for _, id := range north[3:] {
		testutil.CreateVote(t, gdb, 7, id, 2)
	}
	testutil.CreateVote(t, gdb, 7, south[0], 3)
	testutil.CreateVote(t, gdb, 8, north[0], 5)
}

func TestTallyDAO_ByCandidate(t *testing.T) {
	gdb := testutil.NewDB(t)
	seedTally(t, gdb)

	rows, err := dao.NewTallyDAO(gdb).ByCandidate(context.Background(), 7)
	require.NoError(t, err)

	// Zero-vote candidates are reported with a count of zero.
	assert.Equal(t, []dao.TallyRow{
		{CandidateID: 2, CandidateName: "B", PartyName: "B Party", TotalVotes: 5},
		{CandidateID: 1, CandidateName: "A", PartyName: "A Party", TotalVotes: 3},
		{CandidateID: 3, CandidateName: "C", PartyName: "C Party", TotalVotes: 1},
		{CandidateID: 4, CandidateName: "D", PartyName: "D Party", TotalVotes: 0},
	}, rows)
}

func TestTallyDAO_ByConstituency(t *testing.T) {
	gdb := testutil.NewDB(t)
	seedTally(t, gdb)
	d := dao.NewTallyDAO(gdb)

	rows, err := d.ByConstituency(context.Background(), 7, 2)
	require.NoError(t, err)
	assert.Equal(t, []dao.TallyRow{
		{CandidateID: 3, CandidateName: "C", PartyName: "C Party", TotalVotes: 1},
		{CandidateID: 4, CandidateName: "D", PartyName: "D Party", TotalVotes: 0},
	}, rows)

	rows, err = d.ByConstituency(context.Background(), 7, 9)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTallyDAO_TieBreaksOnCandidateID(t *testing.T) {
	gdb := testutil.NewDB(t)

	testutil.CreateConstituency(t, gdb, 1, "North")
	voters := testutil.CreateVoters(t, gdb, 2, 1)
	testutil.CreateElection(t, gdb, 7, "General")
	testutil.CreateCandidate(t, gdb, 12, 7, 1, "Later")
	testutil.CreateCandidate(t, gdb, 11, 7, 1, "Earlier")
	testutil.CreateVote(t, gdb, 7, voters[0], 12)
	testutil.CreateVote(t, gdb, 7, voters[1], 11)

	rows, err := dao.NewTallyDAO(gdb).ByCandidate(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.EqualValues(t, 11, rows[0].CandidateID)
	assert.EqualValues(t, 12, rows[1].CandidateID)
}

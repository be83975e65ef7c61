package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vietanh2810/evoting-api/internal/repository/dao"
)

func CreateConstituency(t testing.TB, gdb *gorm.DB, id int64, name string) dao.Constituency {
	t.Helper()

	c := dao.Constituency{ID: id, Name: name}
	require.NoError(t, gdb.Create(&c).Error)

	return c
}

func CreateVoter(t testing.TB, gdb *gorm.DB, nid string, constituencyID int64, passwordHash string) dao.Voter {
	t.Helper()

	v := dao.Voter{
		FullName:       "Voter " + nid,
		NIDNumber:      nid,
		DateOfBirth:    "1990-01-01",
		Gender:         "female",
		ConstituencyID: constituencyID,
		Password:       passwordHash,
	}
	require.NoError(t, gdb.Create(&v).Error)

	return v
}

func CreateElection(t testing.TB, gdb *gorm.DB, id int64, title string) dao.Election {
	t.Helper()

	e := dao.Election{
		ID:        id,
		Title:     title,
		StartDate: time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
		EndDate:   time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		Status:    "active",
	}
	require.NoError(t, gdb.Create(&e).Error)

	return e
}

func CreateCandidate(t testing.TB, gdb *gorm.DB, id, electionID, constituencyID int64, name string) dao.Candidate {
	t.Helper()

	c := dao.Candidate{
		ID:             id,
		FullName:       name,
		PartyName:      name + " Party",
		ConstituencyID: constituencyID,
		ElectionID:     electionID,
		Symbol:         []byte{0x89, 'P', 'N', 'G'},
	}
	require.NoError(t, gdb.Create(&c).Error)

	return c
}

func CreateVote(t testing.TB, gdb *gorm.DB, electionID, voterID, candidateID int64) dao.Vote {
	t.Helper()

	v := dao.Vote{
		VoterID:     voterID,
		ElectionID:  electionID,
		CandidateID: candidateID,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, gdb.Create(&v).Error)

	return v
}

// CreateVoters inserts n voters in one constituency and returns their ids.
func CreateVoters(t testing.TB, gdb *gorm.DB, n int, constituencyID int64) []int64 {
	t.Helper()

	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		v := CreateVoter(t, gdb, nidFor(constituencyID, i), constituencyID, "x")
		ids = append(ids, v.ID)
	}

	return ids
}

func nidFor(constituencyID int64, i int) string {
	return fmt.Sprintf("%03d%07d", constituencyID, i)
}

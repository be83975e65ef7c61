package dao

import (
	"context"

	"gorm.io/gorm"
)

type TallyRow struct {
	CandidateID   int64
	CandidateName string
	PartyName     string
	TotalVotes    int64
}

type TallyDAO struct {
	db *gorm.DB
}

func NewTallyDAO(db *gorm.DB) *TallyDAO {
	return &TallyDAO{
		db: db,
	}
}

// tallyQuery counts votes per candidate of an election. Candidates are the
// driving table so those without votes come back with zero. Rows are
// ordered by count, highest first, then by candidate id.
func (d *TallyDAO) tallyQuery(ctx context.Context, electionID int64) *gorm.DB {
	return d.db.WithContext(ctx).
		Table("candidate AS c").
		Select(`c.candidate_id, c.full_name AS candidate_name, c.party_name,
			COALESCE(COUNT(v.vote_id), 0) AS total_votes`).
		Joins("LEFT JOIN vote AS v ON v.candidate_id = c.candidate_id AND v.election_id = c.election_id").
		Where("c.election_id = ?", electionID).
		Group("c.candidate_id, c.full_name, c.party_name").
		Order("total_votes DESC, c.candidate_id ASC")
}

func (d *TallyDAO) ByCandidate(ctx context.Context, electionID int64) ([]TallyRow, error) {
	var rows []TallyRow
	result := d.tallyQuery(ctx, electionID).Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *TallyDAO) ByConstituency(ctx context.Context, electionID, constituencyID int64) ([]TallyRow, error) {
	var rows []TallyRow
	result := d.tallyQuery(ctx, electionID).
		Where("c.constituency_id = ?", constituencyID).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

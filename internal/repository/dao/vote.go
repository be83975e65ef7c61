package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// VoteUniqueIndex is the store-level guard that allows at most one vote
// per voter and election.
const VoteUniqueIndex = "uq_vote_voter_election"

type Vote struct {
	ID          int64     `gorm:"column:vote_id;primaryKey;autoIncrement"`
	VoterID     int64     `gorm:"not null;uniqueIndex:uq_vote_voter_election,priority:1"`
	ElectionID  int64     `gorm:"not null;uniqueIndex:uq_vote_voter_election,priority:2;index:idx_vote_election"`
	CandidateID int64     `gorm:"not null;index:idx_vote_candidate"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (Vote) TableName() string {
	return "vote"
}

type VoteRecord struct {
	VoteID        int64
	ElectionID    int64
	VoterID       int64
	VoterName     string
	CandidateID   int64
	CandidateName string
	PartyName     string
}

type VoteDAO struct {
	db *gorm.DB
}

func NewVoteDAO(db *gorm.DB) *VoteDAO {
	return &VoteDAO{
		db: db,
	}
}

// Insert writes one vote and returns the affected row count. A second vote
// for the same voter and election fails with ErrVoteExists.
func (d *VoteDAO) Insert(ctx context.Context, vote Vote) (Vote, int64, error) {
	result := d.db.WithContext(ctx).Create(&vote)
	if result.Error != nil {
		if isUniqueViolation(result.Error, VoteUniqueIndex) {
			return Vote{}, 0, ErrVoteExists
		}

		return Vote{}, 0, result.Error
	}

	return vote, result.RowsAffected, nil
}

func (d *VoteDAO) CountByVoterAndElection(ctx context.Context, voterID, electionID int64) (int64, error) {
	var count int64
	result := d.db.WithContext(ctx).
		Model(&Vote{}).
		Where("voter_id = ? AND election_id = ?", voterID, electionID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *VoteDAO) FindByVoterAndElection(ctx context.Context, voterID, electionID int64) (Vote, error) {
	vote := Vote{}
	result := d.db.WithContext(ctx).
		Where("voter_id = ? AND election_id = ?", voterID, electionID).
		First(&vote)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Vote{}, ErrVoteNotFound
		}

		return Vote{}, result.Error
	}

	return vote, nil
}

func (d *VoteDAO) FindRecordsByElection(ctx context.Context, electionID int64) ([]VoteRecord, error) {
	var records []VoteRecord
	result := d.db.WithContext(ctx).
		Table("vote AS v").
		Select(`v.vote_id, v.election_id, v.voter_id, vt.full_name AS voter_name,
			v.candidate_id, c.full_name AS candidate_name, c.party_name`).
		Joins("JOIN voter AS vt ON vt.voter_id = v.voter_id").
		Joins("JOIN candidate AS c ON c.candidate_id = v.candidate_id").
		Where("v.election_id = ?", electionID).
		Order("v.vote_id ASC").
		Scan(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

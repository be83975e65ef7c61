package dao

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Candidate struct {
	ID             int64  `gorm:"column:candidate_id;primaryKey;autoIncrement"`
	FullName       string `gorm:"size:255;not null"`
	PartyName      string `gorm:"size:255;not null"`
	ConstituencyID int64  `gorm:"not null;index"`
	ElectionID     int64  `gorm:"not null;index"`
	Symbol         []byte
	VoterID        *int64
}

func (Candidate) TableName() string {
	return "candidate"
}

type CandidateDAO struct {
	db *gorm.DB
}

func NewCandidateDAO(db *gorm.DB) *CandidateDAO {
	return &CandidateDAO{
		db: db,
	}
}

func (d *CandidateDAO) Insert(ctx context.Context, candidate Candidate) (Candidate, int64, error) {
	result := d.db.WithContext(ctx).Create(&candidate)
	if result.Error != nil {
		return Candidate{}, 0, result.Error
	}

	return candidate, result.RowsAffected, nil
}

func (d *CandidateDAO) FindByID(ctx context.Context, id int64) (Candidate, error) {
	candidate := Candidate{}
	result := d.db.WithContext(ctx).Omit("symbol").Where("candidate_id = ?", id).First(&candidate)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Candidate{}, ErrCandidateNotFound
		}

		return Candidate{}, result.Error
	}

	return candidate, nil
}

// FindByElection lists an election's candidates without their symbols,
// ordered by constituency and then id.
func (d *CandidateDAO) FindByElection(ctx context.Context, electionID int64) ([]Candidate, error) {
	var candidates []Candidate
	result := d.db.WithContext(ctx).
		Omit("symbol").
		Where("election_id = ?", electionID).
		Order("constituency_id ASC, candidate_id ASC").
		Find(&candidates)
	if result.Error != nil {
		return nil, result.Error
	}

	return candidates, nil
}

func (d *CandidateDAO) FindAll(ctx context.Context) ([]Candidate, error) {
	var candidates []Candidate
	result := d.db.WithContext(ctx).
		Omit("symbol").
		Order("election_id DESC, constituency_id ASC, candidate_id ASC").
		Find(&candidates)
	if result.Error != nil {
		return nil, result.Error
	}

	return candidates, nil
}

func (d *CandidateDAO) FindSymbol(ctx context.Context, id int64) ([]byte, error) {
	candidate := Candidate{}
	result := d.db.WithContext(ctx).Select("candidate_id", "symbol").Where("candidate_id = ?", id).First(&candidate)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}

		return nil, result.Error
	}

	return candidate.Symbol, nil
}

// DeleteCascade removes the candidate's votes and then the candidate in one
// transaction.
func (d *CandidateDAO) DeleteCascade(ctx context.Context, id int64) (CascadeResult, error) {
	var res CascadeResult

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		votes := tx.Where("candidate_id = ?", id).Delete(&Vote{})
		if votes.Error != nil {
			return fmt.Errorf("delete votes -> %w", votes.Error)
		}

		candidate := tx.Where("candidate_id = ?", id).Delete(&Candidate{})
		if candidate.Error != nil {
			return fmt.Errorf("delete candidate -> %w", candidate.Error)
		}
		if candidate.RowsAffected != 1 {
			return ErrCandidateNotFound
		}

		res = CascadeResult{
			Votes:      votes.RowsAffected,
			Candidates: candidate.RowsAffected,
		}

		return nil
	})
	if err != nil {
		return CascadeResult{}, err
	}

	return res, nil
}

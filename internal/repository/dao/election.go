package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Election struct {
	ID        int64     `gorm:"column:election_id;primaryKey;autoIncrement"`
	Title     string    `gorm:"size:255;not null"`
	StartDate string    `gorm:"size:32;not null"`
	EndDate   string    `gorm:"size:32;not null"`
	Status    string    `gorm:"size:16;not null;default:upcoming"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Election) TableName() string {
	return "election"
}

// CascadeResult counts the dependent rows removed alongside a parent row.
type CascadeResult struct {
	Votes      int64
	Candidates int64
}

type ElectionDAO struct {
	db *gorm.DB
}

func NewElectionDAO(db *gorm.DB) *ElectionDAO {
	return &ElectionDAO{
		db: db,
	}
}

func (d *ElectionDAO) Insert(ctx context.Context, election Election) (Election, int64, error) {
	result := d.db.WithContext(ctx).Create(&election)
	if result.Error != nil {
		return Election{}, 0, result.Error
	}

	return election, result.RowsAffected, nil
}

func (d *ElectionDAO) FindByID(ctx context.Context, id int64) (Election, error) {
	election := Election{}
	result := d.db.WithContext(ctx).Where("election_id = ?", id).First(&election)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Election{}, ErrElectionNotFound
		}

		return Election{}, result.Error
	}

	return election, nil
}

func (d *ElectionDAO) FindAll(ctx context.Context) ([]Election, error) {
	var elections []Election
	result := d.db.WithContext(ctx).Order("election_id DESC").Find(&elections)
	if result.Error != nil {
		return nil, result.Error
	}

	return elections, nil
}

func (d *ElectionDAO) UpdateStatus(ctx context.Context, id int64, status string) (int64, error) {
	result := d.db.WithContext(ctx).
		Model(&Election{}).
		Where("election_id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// DeleteCascade removes the election's votes, then its candidates, then the
// election row, in one transaction. Any failure rolls back all three.
func (d *ElectionDAO) DeleteCascade(ctx context.Context, id int64) (CascadeResult, error) {
	var res CascadeResult

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		votes := tx.Where("election_id = ?", id).Delete(&Vote{})
		if votes.Error != nil {
			return fmt.Errorf("delete votes -> %w", votes.Error)
		}

		candidates := tx.Where("election_id = ?", id).Delete(&Candidate{})
		if candidates.Error != nil {
			return fmt.Errorf("delete candidates -> %w", candidates.Error)
		}

		election := tx.Where("election_id = ?", id).Delete(&Election{})
		if election.Error != nil {
			return fmt.Errorf("delete election -> %w", election.Error)
		}
		if election.RowsAffected != 1 {
			return ErrElectionNotFound
		}

		res = CascadeResult{
			Votes:      votes.RowsAffected,
			Candidates: candidates.RowsAffected,
		}

		return nil
	})
	if err != nil {
		return CascadeResult{}, err
	}

	return res, nil
}

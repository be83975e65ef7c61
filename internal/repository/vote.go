package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/evoting-api/internal/domain"
	"github.com/vietanh2810/evoting-api/internal/repository/dao"
)

var (
	ErrVoteExists   = dao.ErrVoteExists
	ErrVoteNotFound = dao.ErrVoteNotFound
)

type VoteDAO interface {
	Insert(ctx context.Context, vote dao.Vote) (dao.Vote, int64, error)
	CountByVoterAndElection(ctx context.Context, voterID, electionID int64) (int64, error)
	FindByVoterAndElection(ctx context.Context, voterID, electionID int64) (dao.Vote, error)
	FindRecordsByElection(ctx context.Context, electionID int64) ([]dao.VoteRecord, error)
}

type VoteRepository struct {
	dao VoteDAO
}

func NewVoteRepository(dao VoteDAO) *VoteRepository {
	return &VoteRepository{
		dao: dao,
	}
}

// Create returns the stored vote and the number of rows the insert
// affected.
func (r *VoteRepository) Create(ctx context.Context, vote domain.Vote) (domain.Vote, int64, error) {
	created, affected, err := r.dao.Insert(ctx, dao.Vote{
		VoterID:     vote.VoterID,
		ElectionID:  vote.ElectionID,
		CandidateID: vote.CandidateID,
		CreatedAt:   vote.CreatedAt,
	})
	if err != nil {
		return domain.Vote{}, 0, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), affected, nil
}

func (r *VoteRepository) Exists(ctx context.Context, voterID, electionID int64) (bool, error) {
	n, err := r.dao.CountByVoterAndElection(ctx, voterID, electionID)
	if err != nil {
		return false, fmt.Errorf("r.dao.CountByVoterAndElection -> %w", err)
	}

	return n > 0, nil
}

func (r *VoteRepository) FindByVoterAndElection(ctx context.Context, voterID, electionID int64) (domain.Vote, error) {
	found, err := r.dao.FindByVoterAndElection(ctx, voterID, electionID)
	if err != nil {
		return domain.Vote{}, fmt.Errorf("r.dao.FindByVoterAndElection -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *VoteRepository) FindRecordsByElection(ctx context.Context, electionID int64) ([]domain.VoteRecord, error) {
	found, err := r.dao.FindRecordsByElection(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRecordsByElection -> %w", err)
	}

	records := make([]domain.VoteRecord, 0, len(found))
	for _, v := range found {
		records = append(records, domain.VoteRecord{
			VoteID:        v.VoteID,
			ElectionID:    v.ElectionID,
			VoterID:       v.VoterID,
			VoterName:     v.VoterName,
			CandidateID:   v.CandidateID,
			CandidateName: v.CandidateName,
			PartyName:     v.PartyName,
		})
	}

	return records, nil
}

func (r *VoteRepository) daoToDomain(v dao.Vote) domain.Vote {
	return domain.Vote{
		ID:          v.ID,
		VoterID:     v.VoterID,
		CandidateID: v.CandidateID,
		ElectionID:  v.ElectionID,
		CreatedAt:   v.CreatedAt,
	}
}

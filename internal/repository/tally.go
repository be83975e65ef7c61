package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/evoting-api/internal/domain"
	"github.com/vietanh2810/evoting-api/internal/repository/dao"
)

type TallyDAO interface {
	ByCandidate(ctx context.Context, electionID int64) ([]dao.TallyRow, error)
	ByConstituency(ctx context.Context, electionID, constituencyID int64) ([]dao.TallyRow, error)
}

type TallyRepository struct {
	dao TallyDAO
}

func NewTallyRepository(dao TallyDAO) *TallyRepository {
	return &TallyRepository{
		dao: dao,
	}
}

func (r *TallyRepository) ByCandidate(ctx context.Context, electionID int64) ([]domain.TallyRow, error) {
	rows, err := r.dao.ByCandidate(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ByCandidate -> %w", err)
	}

	return r.daoToDomain(rows), nil
}

func (r *TallyRepository) ByConstituency(ctx context.Context, electionID, constituencyID int64) ([]domain.TallyRow, error) {
	rows, err := r.dao.ByConstituency(ctx, electionID, constituencyID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ByConstituency -> %w", err)
	}

	return r.daoToDomain(rows), nil
}

func (r *TallyRepository) daoToDomain(rows []dao.TallyRow) []domain.TallyRow {
	tally := make([]domain.TallyRow, 0, len(rows))
	for _, row := range rows {
		tally = append(tally, domain.TallyRow{
			CandidateID:   row.CandidateID,
			CandidateName: row.CandidateName,
			PartyName:     row.PartyName,
			TotalVotes:    row.TotalVotes,
		})
	}

	return tally
}

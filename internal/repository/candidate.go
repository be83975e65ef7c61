package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/evoting-api/internal/domain"
	"github.com/vietanh2810/evoting-api/internal/repository/dao"
)

var ErrCandidateNotFound = dao.ErrCandidateNotFound

type CandidateDAO interface {
	Insert(ctx context.Context, candidate dao.Candidate) (dao.Candidate, int64, error)
	FindByID(ctx context.Context, id int64) (dao.Candidate, error)
	FindByElection(ctx context.Context, electionID int64) ([]dao.Candidate, error)
	FindAll(ctx context.Context) ([]dao.Candidate, error)
	FindSymbol(ctx context.Context, id int64) ([]byte, error)
	DeleteCascade(ctx context.Context, id int64) (dao.CascadeResult, error)
}

type CandidateRepository struct {
	dao CandidateDAO
}

func NewCandidateRepository(dao CandidateDAO) *CandidateRepository {
	return &CandidateRepository{
		dao: dao,
	}
}

func (r *CandidateRepository) Create(ctx context.Context, candidate domain.Candidate) (domain.Candidate, int64, error) {
	created, affected, err := r.dao.Insert(ctx, dao.Candidate{
		FullName:       candidate.FullName,
		PartyName:      candidate.PartyName,
		ConstituencyID: candidate.ConstituencyID,
		ElectionID:     candidate.ElectionID,
		Symbol:         candidate.Symbol,
		VoterID:        candidate.VoterID,
	})
	if err != nil {
		return domain.Candidate{}, 0, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), affected, nil
}

func (r *CandidateRepository) FindByID(ctx context.Context, id int64) (domain.Candidate, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CandidateRepository) FindByElection(ctx context.Context, electionID int64) ([]domain.Candidate, error) {
	found, err := r.dao.FindByElection(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByElection -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *CandidateRepository) FindAll(ctx context.Context) ([]domain.Candidate, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *CandidateRepository) FindSymbol(ctx context.Context, id int64) ([]byte, error) {
	symbol, err := r.dao.FindSymbol(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindSymbol -> %w", err)
	}

	return symbol, nil
}

func (r *CandidateRepository) DeleteCascade(ctx context.Context, id int64) (CascadeResult, error) {
	res, err := r.dao.DeleteCascade(ctx, id)
	if err != nil {
		return CascadeResult{}, fmt.Errorf("r.dao.DeleteCascade -> %w", err)
	}

	return res, nil
}

func (r *CandidateRepository) daosToDomain(found []dao.Candidate) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, len(found))
	for _, c := range found {
		candidates = append(candidates, r.daoToDomain(c))
	}

	return candidates
}

func (r *CandidateRepository) daoToDomain(c dao.Candidate) domain.Candidate {
	return domain.Candidate{
		ID:             c.ID,
		FullName:       c.FullName,
		PartyName:      c.PartyName,
		ConstituencyID: c.ConstituencyID,
		ElectionID:     c.ElectionID,
		Symbol:         c.Symbol,
		VoterID:        c.VoterID,
	}
}

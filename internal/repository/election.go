package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/evoting-api/internal/domain"
	"github.com/vietanh2810/evoting-api/internal/repository/dao"
)

var ErrElectionNotFound = dao.ErrElectionNotFound

type CascadeResult = dao.CascadeResult

type ElectionDAO interface {
	Insert(ctx context.Context, election dao.Election) (dao.Election, int64, error)
	FindByID(ctx context.Context, id int64) (dao.Election, error)
	FindAll(ctx context.Context) ([]dao.Election, error)
	UpdateStatus(ctx context.Context, id int64, status string) (int64, error)
	DeleteCascade(ctx context.Context, id int64) (dao.CascadeResult, error)
}

type ElectionRepository struct {
	dao ElectionDAO
}

func NewElectionRepository(dao ElectionDAO) *ElectionRepository {
	return &ElectionRepository{
		dao: dao,
	}
}

func (r *ElectionRepository) Create(ctx context.Context, election domain.Election) (domain.Election, int64, error) {
	created, affected, err := r.dao.Insert(ctx, dao.Election{
		Title:     election.Title,
		StartDate: election.StartDate,
		EndDate:   election.EndDate,
		Status:    string(election.Status),
	})
	if err != nil {
		return domain.Election{}, 0, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), affected, nil
}

func (r *ElectionRepository) FindByID(ctx context.Context, id int64) (domain.Election, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Election{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ElectionRepository) FindAll(ctx context.Context) ([]domain.Election, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	elections := make([]domain.Election, 0, len(found))
	for _, e := range found {
		elections = append(elections, r.daoToDomain(e))
	}

	return elections, nil
}

func (r *ElectionRepository) UpdateStatus(ctx context.Context, id int64, status domain.ElectionStatus) (int64, error) {
	affected, err := r.dao.UpdateStatus(ctx, id, string(status))
	if err != nil {
		return 0, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return affected, nil
}

func (r *ElectionRepository) DeleteCascade(ctx context.Context, id int64) (CascadeResult, error) {
	res, err := r.dao.DeleteCascade(ctx, id)
	if err != nil {
		return CascadeResult{}, fmt.Errorf("r.dao.DeleteCascade -> %w", err)
	}

	return res, nil
}

func (r *ElectionRepository) daoToDomain(e dao.Election) domain.Election {
	return domain.Election{
		ID:        e.ID,
		Title:     e.Title,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
		Status:    domain.ElectionStatus(e.Status),
	}
}

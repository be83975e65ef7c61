package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/evoting-api/internal/domain"
	"github.com/vietanh2810/evoting-api/internal/repository/dao"
)

var (
	ErrVoterNotFound  = dao.ErrVoterNotFound
	ErrVoterNIDExists = dao.ErrVoterNIDExists
	ErrAdminNotFound  = dao.ErrAdminNotFound
)

type VoterDAO interface {
	Insert(ctx context.Context, voter dao.Voter) (dao.Voter, error)
	FindByNID(ctx context.Context, nid string) (dao.Voter, error)
	FindByID(ctx context.Context, id int64) (dao.Voter, error)
	FindAll(ctx context.Context) ([]dao.Voter, error)
}

type VoterRepository struct {
	dao VoterDAO
}

func NewVoterRepository(dao VoterDAO) *VoterRepository {
	return &VoterRepository{
		dao: dao,
	}
}

func (r *VoterRepository) Create(ctx context.Context, voter domain.Voter) (domain.Voter, error) {
	created, err := r.dao.Insert(ctx, dao.Voter{
		FullName:       voter.FullName,
		NIDNumber:      voter.NIDNumber,
		DateOfBirth:    voter.DateOfBirth,
		Gender:         voter.Gender,
		ConstituencyID: voter.ConstituencyID,
		Password:       voter.Password,
	})
	if err != nil {
		return domain.Voter{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *VoterRepository) FindByNID(ctx context.Context, nid string) (domain.Voter, error) {
	found, err := r.dao.FindByNID(ctx, nid)
	if err != nil {
		return domain.Voter{}, fmt.Errorf("r.dao.FindByNID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *VoterRepository) FindByID(ctx context.Context, id int64) (domain.Voter, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Voter{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *VoterRepository) FindAll(ctx context.Context) ([]domain.Voter, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	voters := make([]domain.Voter, 0, len(found))
	for _, v := range found {
		voters = append(voters, r.daoToDomain(v))
	}

	return voters, nil
}

func (r *VoterRepository) daoToDomain(v dao.Voter) domain.Voter {
	return domain.Voter{
		ID:             v.ID,
		FullName:       v.FullName,
		NIDNumber:      v.NIDNumber,
		DateOfBirth:    v.DateOfBirth,
		Gender:         v.Gender,
		ConstituencyID: v.ConstituencyID,
		Password:       v.Password,
	}
}

type AdminDAO interface {
	FindByUsername(ctx context.Context, username string) (dao.Admin, error)
}

type AdminRepository struct {
	dao AdminDAO
}

func NewAdminRepository(dao AdminDAO) *AdminRepository {
	return &AdminRepository{
		dao: dao,
	}
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (domain.Admin, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return domain.Admin{
		ID:       found.ID,
		Username: found.Username,
		FullName: found.FullName,
		Password: found.Password,
	}, nil
}

type ConstituencyDAO interface {
	FindAll(ctx context.Context) ([]dao.Constituency, error)
}

type ConstituencyRepository struct {
	dao ConstituencyDAO
}

func NewConstituencyRepository(dao ConstituencyDAO) *ConstituencyRepository {
	return &ConstituencyRepository{
		dao: dao,
	}
}

func (r *ConstituencyRepository) FindAll(ctx context.Context) ([]domain.Constituency, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	constituencies := make([]domain.Constituency, 0, len(found))
	for _, c := range found {
		constituencies = append(constituencies, domain.Constituency{ID: c.ID, Name: c.Name})
	}

	return constituencies, nil
}

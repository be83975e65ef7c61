package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vietanh2810/evoting-api/internal/domain"
	"github.com/vietanh2810/evoting-api/internal/repository"
)

type VoterLookup interface {
	FindByNID(ctx context.Context, nid string) (domain.Voter, error)
	FindByID(ctx context.Context, id int64) (domain.Voter, error)
}

// lookupVoter resolves identity as a national id first and, failing that,
// as a numeric voter id.
func lookupVoter(ctx context.Context, voters VoterLookup, identity string) (domain.Voter, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return domain.Voter{}, ErrVoterNotFound
	}

	voter, err := voters.FindByNID(ctx, identity)
	if err == nil {
		return voter, nil
	}
	if !errors.Is(err, repository.ErrVoterNotFound) {
		return domain.Voter{}, fmt.Errorf("%w: voters.FindByNID -> %w", ErrStorage, err)
	}

	id, convErr := strconv.ParseInt(identity, 10, 64)
	if convErr != nil || id <= 0 {
		return domain.Voter{}, ErrVoterNotFound
	}

	return findVoterByID(ctx, voters, id)
}

func findVoterByID(ctx context.Context, voters VoterLookup, id int64) (domain.Voter, error) {
	voter, err := voters.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVoterNotFound) {
			return domain.Voter{}, ErrVoterNotFound
		}

		return domain.Voter{}, fmt.Errorf("%w: voters.FindByID -> %w", ErrStorage, err)
	}

	return voter, nil
}

type VoterRepository interface {
	FindAll(ctx context.Context) ([]domain.Voter, error)
}

type ConstituencyRepository interface {
	FindAll(ctx context.Context) ([]domain.Constituency, error)
}

// VoterService serves the read-only registry views used by administrators.
type VoterService struct {
	voters         VoterRepository
	constituencies ConstituencyRepository
}

func NewVoterService(voters VoterRepository, constituencies ConstituencyRepository) *VoterService {
	return &VoterService{
		voters:         voters,
		constituencies: constituencies,
	}
}

func (s *VoterService) ListVoters(ctx context.Context) ([]domain.Voter, error) {
	voters, err := s.voters.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: s.voters.FindAll -> %w", ErrStorage, err)
	}

	return voters, nil
}

func (s *VoterService) ListConstituencies(ctx context.Context) ([]domain.Constituency, error) {
	constituencies, err := s.constituencies.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: s.constituencies.FindAll -> %w", ErrStorage, err)
	}

	return constituencies, nil
}

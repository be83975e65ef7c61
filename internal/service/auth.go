package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/evoting-api/internal/domain"
	"github.com/vietanh2810/evoting-api/internal/repository"
)

type AuthAdminRepository interface {
	FindByUsername(ctx context.Context, username string) (domain.Admin, error)
}

type AuthService struct {
	voters VoterLookup
	admins AuthAdminRepository
}

func NewAuthService(voters VoterLookup, admins AuthAdminRepository) *AuthService {
	return &AuthService{
		voters: voters,
		admins: admins,
	}
}

// LoginVoter accepts either the voter's national id or voter id as the
// identity.
func (s *AuthService) LoginVoter(ctx context.Context, identity, password string) (domain.Voter, error) {
	voter, err := lookupVoter(ctx, s.voters, identity)
	if err != nil {
		return domain.Voter{}, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(voter.Password), []byte(password)); err != nil {
		return domain.Voter{}, ErrWrongPassword
	}

	return voter, nil
}

func (s *AuthService) LoginAdmin(ctx context.Context, username, password string) (domain.Admin, error) {
	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return domain.Admin{}, ErrAdminNotFound
		}

		return domain.Admin{}, fmt.Errorf("%w: s.admins.FindByUsername -> %w", ErrStorage, err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return domain.Admin{}, ErrWrongPassword
	}

	return admin, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	return string(hash), nil
}

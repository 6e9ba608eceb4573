package usecase

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"hireflow-backend/internal/domain"
	"hireflow-backend/pkg/apperror"
	"hireflow-backend/pkg/auth"
)

const bcryptCost = 10

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenIssuer
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens *auth.TokenIssuer) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, tokens: tokens}
}

// Register creates a user with the given role and returns a session token.
func (uc *authUsecase) Register(ctx context.Context, email, password, role, fullName string, phone *string) (*domain.User, string, error) {
	if role != domain.RoleCandidate && role != domain.RoleRecruiter {
		return nil, "", apperror.BadRequest("Invalid role. Must be: candidate or recruiter")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, "", apperror.BadRequest("Full name is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		FullName:     fullName,
		Phone:        phone,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, "", apperror.BadRequest("Email already registered")
		}
		return nil, "", apperror.Internal(err)
	}

	token, err := uc.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return user, token, nil
}

func (uc *authUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Same message whether the email or the password was wrong.
		return nil, "", apperror.Unauthorized("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperror.Unauthorized("Invalid email or password")
	}

	token, err := uc.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return user, token, nil
}

func (uc *authUsecase) GetCurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

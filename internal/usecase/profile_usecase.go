package usecase

import (
	"context"
	"errors"
	"strings"

	"hireflow-backend/internal/domain"
	"hireflow-backend/pkg/apperror"
)

type profileUsecase struct {
	userRepo domain.UserRepository
	appRepo  domain.ApplicationRepository
	resumes  domain.ResumeStore
}

func NewProfileUsecase(userRepo domain.UserRepository, appRepo domain.ApplicationRepository, resumes domain.ResumeStore) domain.ProfileUsecase {
	return &profileUsecase{userRepo: userRepo, appRepo: appRepo, resumes: resumes}
}

func (uc *profileUsecase) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

func (uc *profileUsecase) UpdateProfile(ctx context.Context, userID int64, fullName, email string, phone *string) (*domain.User, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, apperror.BadRequest("Full name is required")
	}
	if strings.TrimSpace(email) == "" {
		return nil, apperror.BadRequest("Email is required")
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.NotFound("User not found")
	}

	user.FullName = fullName
	user.Email = email
	user.Phone = phone

	if err := uc.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, apperror.BadRequest("Email already registered")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// DeleteAccount removes the user. Offers and applications cascade in the
// database; the user's uploaded resumes are reclaimed afterwards so a
// failed delete never loses files.
func (uc *profileUsecase) DeleteAccount(ctx context.Context, userID int64) error {
	resumes, err := uc.appRepo.ResumesByCandidate(ctx, userID)
	if err != nil {
		return apperror.Internal(err)
	}

	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal(err)
	}

	uc.resumes.RemoveAll(resumes)
	return nil
}

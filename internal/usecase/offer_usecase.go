package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hireflow-backend/internal/domain"
	"hireflow-backend/pkg/apperror"
)

type offerUsecase struct {
	offerRepo domain.OfferRepository
	resumes   domain.ResumeStore
}

func NewOfferUsecase(offerRepo domain.OfferRepository, resumes domain.ResumeStore) domain.OfferUsecase {
	return &offerUsecase{offerRepo: offerRepo, resumes: resumes}
}

// CreateOffer persists a new offer owned by the calling recruiter.
func (uc *offerUsecase) CreateOffer(ctx context.Context, scope domain.Scope, offer *domain.Offer) error {
	if err := requireRecruiter(scope); err != nil {
		return err
	}
	if err := validateOfferFields(offer.Title, offer.Description, offer.Skills); err != nil {
		return err
	}

	// Ownership is set from the principal, never from the payload.
	offer.RecruiterID = scope.UserID

	if err := uc.offerRepo.Create(ctx, offer); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// GetOffer returns the detail view; any authenticated user may see an offer.
func (uc *offerUsecase) GetOffer(ctx context.Context, scope domain.Scope, id int64) (*domain.Offer, error) {
	offer, err := uc.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Offer not found")
	}
	return offer, nil
}

// GetOfferForEdit returns the offer for the edit form, owner only.
func (uc *offerUsecase) GetOfferForEdit(ctx context.Context, scope domain.Scope, id int64) (*domain.Offer, error) {
	offer, err := uc.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Offer not found")
	}
	if err := requireOfferOwner(scope, offer, "Access denied"); err != nil {
		return nil, err
	}
	return offer, nil
}

// UpdateOffer applies an edit. Omitted optional fields keep their values.
func (uc *offerUsecase) UpdateOffer(ctx context.Context, scope domain.Scope, id int64, update domain.OfferUpdate) (*domain.Offer, error) {
	offer, err := uc.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Offer not found")
	}
	if err := requireOfferOwner(scope, offer, "Access denied"); err != nil {
		return nil, err
	}
	if err := validateOfferFields(update.Title, update.Description, update.Skills); err != nil {
		return nil, err
	}

	offer.Title = update.Title
	offer.Description = update.Description
	offer.Skills = update.Skills
	if update.Location != nil {
		offer.Location = update.Location
	}
	if update.Salary != nil {
		offer.Salary = update.Salary
	}
	if update.ContractType != nil {
		offer.ContractType = update.ContractType
	}

	if err := uc.offerRepo.Update(ctx, offer); err != nil {
		return nil, apperror.Internal(err)
	}
	return offer, nil
}

// DeleteOffer removes an offer. With dependent applications the caller
// must ask for "with_applications" explicitly; anything else is rejected
// with the count. Returns the number of applications removed.
func (uc *offerUsecase) DeleteOffer(ctx context.Context, scope domain.Scope, id int64, deleteMode string) (int64, error) {
	offer, err := uc.offerRepo.GetByID(ctx, id)
	if err != nil {
		return 0, apperror.NotFound("Offer not found")
	}
	if err := requireOfferOwner(scope, offer, "Access denied. You can only delete your own offers."); err != nil {
		return 0, err
	}

	count := offer.ApplicationsCount
	if count == 0 {
		if err := uc.offerRepo.Delete(ctx, id); err != nil {
			return 0, apperror.Internal(err)
		}
		return 0, nil
	}

	if deleteMode != domain.DeleteModeWithApplications {
		return 0, apperror.BadRequest(
			fmt.Sprintf("Cannot delete offer because it has %d application(s).", count),
		).WithDetails(map[string]interface{}{
			"hasApplications":   true,
			"applicationsCount": count,
			"message":           `Please delete applications first or use "Delete with Applications" option.`,
		})
	}

	resumes, err := uc.offerRepo.DeleteWithApplications(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, apperror.NotFound("Offer not found")
		}
		return 0, apperror.Internal(err)
	}
	uc.resumes.RemoveAll(resumes)
	return count, nil
}

// ListOffers is the browse view: recruiters see their own offers,
// candidates see everything, newest first.
func (uc *offerUsecase) ListOffers(ctx context.Context, scope domain.Scope) ([]domain.Offer, error) {
	if scope.IsRecruiter() {
		return uc.offerRepo.ListByRecruiter(ctx, scope.UserID)
	}
	return uc.offerRepo.List(ctx)
}

func (uc *offerUsecase) SearchOffers(ctx context.Context, filter domain.OfferFilter) ([]domain.Offer, domain.Pagination, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	offers, total, err := uc.offerRepo.Search(ctx, filter)
	if err != nil {
		return nil, domain.Pagination{}, apperror.Internal(err)
	}
	return offers, domain.NewPagination(total, filter.Page, filter.Limit), nil
}

func validateOfferFields(title, description, skills string) *apperror.AppError {
	if strings.TrimSpace(title) == "" {
		return apperror.BadRequest("Title is required")
	}
	if strings.TrimSpace(description) == "" {
		return apperror.BadRequest("Description is required")
	}
	if strings.TrimSpace(skills) == "" {
		return apperror.BadRequest("Skills are required")
	}
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

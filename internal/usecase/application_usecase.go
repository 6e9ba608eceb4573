package usecase

import (
	"context"
	"errors"
	"strings"

	"hireflow-backend/internal/domain"
	"hireflow-backend/pkg/apperror"
	"hireflow-backend/pkg/logger"
	"hireflow-backend/pkg/upload"
)

const dashboardRecentLimit = 5

type applicationUsecase struct {
	appRepo   domain.ApplicationRepository
	offerRepo domain.OfferRepository
	resumes   domain.ResumeStore
}

func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	offerRepo domain.OfferRepository,
	resumes domain.ResumeStore,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		appRepo:   appRepo,
		offerRepo: offerRepo,
		resumes:   resumes,
	}
}

// Apply submits a candidate's application against an offer. Preconditions
// are checked in order, first failure wins: offer id, cover letter, resume
// file, offer existence, no duplicate. The resume is only written once the
// cheap checks pass, and is reclaimed if the insert loses a duplicate race.
func (uc *applicationUsecase) Apply(ctx context.Context, scope domain.Scope, offerID int64, coverLetter string, resume *domain.ResumeUpload) (*domain.Application, error) {
	if err := requireCandidate(scope); err != nil {
		return nil, err
	}

	if offerID <= 0 {
		return nil, apperror.BadRequest("Offer ID is required")
	}
	if strings.TrimSpace(coverLetter) == "" {
		return nil, apperror.BadRequest("Cover letter is required")
	}
	if resume == nil {
		return nil, apperror.BadRequest("Resume file is required")
	}
	if err := uc.resumes.Validate(resume.DeclaredMime, resume.DeclaredSize); err != nil {
		return nil, resumeError(err)
	}

	if _, err := uc.offerRepo.GetByID(ctx, offerID); err != nil {
		return nil, apperror.NotFound("Offer not found")
	}

	exists, err := uc.appRepo.Exists(ctx, scope.UserID, offerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.BadRequest("You have already applied to this offer")
	}

	storedName, err := uc.resumes.Save(resume.Reader, resume.DeclaredMime, resume.DeclaredSize, resume.OriginalName)
	if err != nil {
		return nil, resumeError(err)
	}

	app := &domain.Application{
		CandidateID: scope.UserID,
		OfferID:     offerID,
		Resume:      storedName,
		CoverLetter: coverLetter,
		Status:      domain.ApplicationStatusPending,
	}
	if err := uc.appRepo.Create(ctx, app); err != nil {
		// The insert failed, so the stored file would be orphaned.
		_ = uc.resumes.Remove(storedName)
		if errors.Is(err, domain.ErrDuplicate) {
			// Two submissions raced past the pre-check; the database
			// constraint is the authority.
			return nil, apperror.BadRequest("You have already applied to this offer")
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

// Get returns the detail view for the owning candidate or the target
// offer's recruiter.
func (uc *applicationUsecase) Get(ctx context.Context, scope domain.Scope, id int64) (*domain.Application, error) {
	app, err := uc.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	if err := requireApplicationViewer(scope, app); err != nil {
		return nil, err
	}
	return app, nil
}

// GetForEdit returns the application for the edit form: owning candidate
// only, and only while pending.
func (uc *applicationUsecase) GetForEdit(ctx context.Context, scope domain.Scope, id int64) (*domain.Application, error) {
	app, err := uc.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	if err := requireContentOwner(scope, app); err != nil {
		return nil, err
	}
	if err := requirePending(app, "edit"); err != nil {
		return nil, err
	}
	return app, nil
}

// UpdateContent replaces the cover letter and optionally the resume of a
// pending application. A replacement file is written before the old one
// is deleted, so a failure can never lose the previous resume.
func (uc *applicationUsecase) UpdateContent(ctx context.Context, scope domain.Scope, id int64, coverLetter string, resume *domain.ResumeUpload) (*domain.Application, error) {
	app, err := uc.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	if err := requireContentOwner(scope, app); err != nil {
		return nil, err
	}
	if err := requirePending(app, "update"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(coverLetter) == "" {
		return nil, apperror.BadRequest("Cover letter is required")
	}

	newResume := app.Resume
	if resume != nil {
		stored, err := uc.resumes.Save(resume.Reader, resume.DeclaredMime, resume.DeclaredSize, resume.OriginalName)
		if err != nil {
			return nil, resumeError(err)
		}
		newResume = stored
	}

	if err := uc.appRepo.UpdateContent(ctx, id, coverLetter, newResume); err != nil {
		if newResume != app.Resume {
			_ = uc.resumes.Remove(newResume)
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	// The new file is durable and the row points at it; the superseded
	// one can go now.
	if newResume != app.Resume {
		_ = uc.resumes.Remove(app.Resume)
	}

	app.CoverLetter = coverLetter
	app.Resume = newResume
	return app, nil
}

// Delete removes a pending application and its stored resume.
func (uc *applicationUsecase) Delete(ctx context.Context, scope domain.Scope, id int64) error {
	app, err := uc.appRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NotFound("Application not found")
	}
	if err := requireContentOwner(scope, app); err != nil {
		return err
	}
	if err := requirePending(app, "delete"); err != nil {
		return err
	}

	if err := uc.appRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}
	if err := uc.resumes.Remove(app.Resume); err != nil {
		logger.Log.Warn("Failed to remove resume file", "resume", app.Resume, "error", err)
	}
	return nil
}

// SetStatus applies a status transition. A bad status value is invalid
// input, not an authorization failure, so it is checked first. Accepted
// and rejected are not terminal; the recruiter may reset to pending.
func (uc *applicationUsecase) SetStatus(ctx context.Context, scope domain.Scope, id int64, status string) (*domain.Application, error) {
	if !domain.ValidApplicationStatus(status) {
		return nil, apperror.BadRequest("Invalid status")
	}

	app, err := uc.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	if err := requireStatusArbiter(scope, app); err != nil {
		return nil, err
	}

	if err := uc.appRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Deleted between the read and the write; don't resurrect it.
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	app.Status = status
	return app, nil
}

// SetNotes updates the recruiter notes, independent of status.
func (uc *applicationUsecase) SetNotes(ctx context.Context, scope domain.Scope, id int64, notes string) (*domain.Application, error) {
	app, err := uc.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	if err := requireStatusArbiter(scope, app); err != nil {
		return nil, err
	}

	if err := uc.appRepo.UpdateNotes(ctx, id, notes); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	app.Notes = &notes
	return app, nil
}

// List is the applications index: the scoped application set, plus the
// recruiter's offers for the filter dropdown.
func (uc *applicationUsecase) List(ctx context.Context, scope domain.Scope) ([]domain.Application, []domain.Offer, error) {
	apps, err := uc.appRepo.ListByScope(ctx, scope)
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}

	var offers []domain.Offer
	if scope.IsRecruiter() {
		offers, err = uc.offerRepo.ListByRecruiter(ctx, scope.UserID)
		if err != nil {
			return nil, nil, apperror.Internal(err)
		}
	}
	return apps, offers, nil
}

func (uc *applicationUsecase) Search(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, []domain.OfferOption, domain.Pagination, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	apps, total, err := uc.appRepo.Search(ctx, filter)
	if err != nil {
		return nil, nil, domain.Pagination{}, apperror.Internal(err)
	}

	var options []domain.OfferOption
	if filter.Scope.IsRecruiter() {
		options, err = uc.offerRepo.ListOptionsByRecruiter(ctx, filter.Scope.UserID)
		if err != nil {
			return nil, nil, domain.Pagination{}, apperror.Internal(err)
		}
	}
	return apps, options, domain.NewPagination(total, filter.Page, filter.Limit), nil
}

// Stats are the per-role dashboard counters over the same visible set as
// Search. Recruiters additionally get their offer count.
func (uc *applicationUsecase) Stats(ctx context.Context, scope domain.Scope) (*domain.ApplicationStats, error) {
	stats, err := uc.appRepo.Stats(ctx, scope)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if scope.IsRecruiter() {
		totalOffers, err := uc.offerRepo.CountByRecruiter(ctx, scope.UserID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		stats.TotalOffers = &totalOffers
	}
	return stats, nil
}

// Dashboard bundles the stats with the most recent scoped applications
// and, for recruiters, their offer list.
func (uc *applicationUsecase) Dashboard(ctx context.Context, scope domain.Scope) (*domain.Dashboard, error) {
	stats, err := uc.Stats(ctx, scope)
	if err != nil {
		return nil, err
	}

	recent, err := uc.appRepo.RecentByScope(ctx, scope, dashboardRecentLimit)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	dashboard := &domain.Dashboard{
		Stats:        *stats,
		Applications: recent,
	}
	if scope.IsRecruiter() {
		offers, err := uc.offerRepo.ListByRecruiter(ctx, scope.UserID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		dashboard.Offers = offers
	}
	return dashboard, nil
}

// resumeError maps upload rejections onto the user-facing messages.
func resumeError(err error) *apperror.AppError {
	switch {
	case errors.Is(err, upload.ErrFileType):
		return apperror.BadRequest("Invalid file type. Allowed: PDF, DOC, DOCX, TXT")
	case errors.Is(err, upload.ErrFileSize):
		return apperror.BadRequest("File size must be less than 5MB")
	default:
		return apperror.Internal(err)
	}
}

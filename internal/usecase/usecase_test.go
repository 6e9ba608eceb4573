package usecase_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"hireflow-backend/internal/domain"
	"hireflow-backend/internal/usecase"
	"hireflow-backend/pkg/auth"
	"hireflow-backend/pkg/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockOfferRepo struct {
	mock.Mock
}

func (m *MockOfferRepo) Create(ctx context.Context, offer *domain.Offer) error {
	return m.Called(ctx, offer).Error(0)
}
func (m *MockOfferRepo) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}
func (m *MockOfferRepo) Update(ctx context.Context, offer *domain.Offer) error {
	return m.Called(ctx, offer).Error(0)
}
func (m *MockOfferRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockOfferRepo) DeleteWithApplications(ctx context.Context, id int64) ([]string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockOfferRepo) Search(ctx context.Context, filter domain.OfferFilter) ([]domain.Offer, int64, error) {
	args := m.Called(ctx, filter)
	var offers []domain.Offer
	if args.Get(0) != nil {
		offers = args.Get(0).([]domain.Offer)
	}
	return offers, args.Get(1).(int64), args.Error(2)
}
func (m *MockOfferRepo) List(ctx context.Context) ([]domain.Offer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Offer), args.Error(1)
}
func (m *MockOfferRepo) ListByRecruiter(ctx context.Context, recruiterID int64) ([]domain.Offer, error) {
	args := m.Called(ctx, recruiterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Offer), args.Error(1)
}
func (m *MockOfferRepo) ListOptionsByRecruiter(ctx context.Context, recruiterID int64) ([]domain.OfferOption, error) {
	args := m.Called(ctx, recruiterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OfferOption), args.Error(1)
}
func (m *MockOfferRepo) CountByRecruiter(ctx context.Context, recruiterID int64) (int64, error) {
	args := m.Called(ctx, recruiterID)
	return args.Get(0).(int64), args.Error(1)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Exists(ctx context.Context, candidateID, offerID int64) (bool, error) {
	args := m.Called(ctx, candidateID, offerID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) UpdateContent(ctx context.Context, id int64, coverLetter, resume string) error {
	return m.Called(ctx, id, coverLetter, resume).Error(0)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockApplicationRepo) UpdateNotes(ctx context.Context, id int64, notes string) error {
	return m.Called(ctx, id, notes).Error(0)
}
func (m *MockApplicationRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockApplicationRepo) Search(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, int64, error) {
	args := m.Called(ctx, filter)
	var apps []domain.Application
	if args.Get(0) != nil {
		apps = args.Get(0).([]domain.Application)
	}
	return apps, args.Get(1).(int64), args.Error(2)
}
func (m *MockApplicationRepo) ListByScope(ctx context.Context, scope domain.Scope) ([]domain.Application, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) RecentByScope(ctx context.Context, scope domain.Scope, limit int) ([]domain.Application, error) {
	args := m.Called(ctx, scope, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Stats(ctx context.Context, scope domain.Scope) (*domain.ApplicationStats, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationStats), args.Error(1)
}
func (m *MockApplicationRepo) ResumesByCandidate(ctx context.Context, candidateID int64) ([]string, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockResumeStore struct {
	mock.Mock
}

func (m *MockResumeStore) Validate(declaredMime string, declaredSize int64) error {
	return m.Called(declaredMime, declaredSize).Error(0)
}
func (m *MockResumeStore) Save(r io.Reader, declaredMime string, declaredSize int64, originalName string) (string, error) {
	args := m.Called(r, declaredMime, declaredSize, originalName)
	return args.String(0), args.Error(1)
}
func (m *MockResumeStore) Remove(storedName string) error {
	return m.Called(storedName).Error(0)
}
func (m *MockResumeStore) RemoveAll(storedNames []string) {
	m.Called(storedNames)
}

var (
	candidateScope = domain.Scope{UserID: 1, Role: domain.RoleCandidate}
	recruiterScope = domain.Scope{UserID: 10, Role: domain.RoleRecruiter}
)

func pdfUpload() *domain.ResumeUpload {
	return &domain.ResumeUpload{
		Reader:       strings.NewReader("%PDF-1.4"),
		DeclaredMime: "application/pdf",
		DeclaredSize: 8,
		OriginalName: "cv.pdf",
	}
}

func TestApplyPreconditions(t *testing.T) {
	newUC := func() (domain.ApplicationUsecase, *MockApplicationRepo, *MockOfferRepo, *MockResumeStore) {
		appRepo := new(MockApplicationRepo)
		offerRepo := new(MockOfferRepo)
		store := new(MockResumeStore)
		return usecase.NewApplicationUsecase(appRepo, offerRepo, store), appRepo, offerRepo, store
	}
	ctx := context.Background()

	t.Run("Should reject recruiters", func(t *testing.T) {
		uc, _, _, _ := newUC()
		_, err := uc.Apply(ctx, recruiterScope, 5, "letter", pdfUpload())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Access denied")
	})

	t.Run("Should require an offer id before anything else", func(t *testing.T) {
		uc, _, _, _ := newUC()
		_, err := uc.Apply(ctx, candidateScope, 0, "", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Offer ID is required")
	})

	t.Run("Should require a cover letter before the resume", func(t *testing.T) {
		uc, _, _, _ := newUC()
		_, err := uc.Apply(ctx, candidateScope, 5, "   ", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Cover letter is required")
	})

	t.Run("Should require a resume file", func(t *testing.T) {
		uc, _, _, _ := newUC()
		_, err := uc.Apply(ctx, candidateScope, 5, "letter", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Resume file is required")
	})

	t.Run("Should surface the file type message before touching the DB", func(t *testing.T) {
		uc, appRepo, offerRepo, store := newUC()
		store.On("Validate", "text/html", int64(8)).Return(upload.ErrFileType)

		bad := pdfUpload()
		bad.DeclaredMime = "text/html"
		_, err := uc.Apply(ctx, candidateScope, 5, "letter", bad)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid file type. Allowed: PDF, DOC, DOCX, TXT")
		offerRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		appRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should surface the file size message", func(t *testing.T) {
		uc, _, _, store := newUC()
		store.On("Validate", mock.Anything, mock.Anything).Return(upload.ErrFileSize)

		_, err := uc.Apply(ctx, candidateScope, 5, "letter", pdfUpload())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "File size must be less than 5MB")
	})

	t.Run("Should 404 on a missing offer", func(t *testing.T) {
		uc, _, offerRepo, store := newUC()
		store.On("Validate", mock.Anything, mock.Anything).Return(nil)
		offerRepo.On("GetByID", ctx, int64(5)).Return(nil, domain.ErrNotFound)

		_, err := uc.Apply(ctx, candidateScope, 5, "letter", pdfUpload())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Offer not found")
	})

	t.Run("Should reject a duplicate application without saving the file", func(t *testing.T) {
		uc, appRepo, offerRepo, store := newUC()
		store.On("Validate", mock.Anything, mock.Anything).Return(nil)
		offerRepo.On("GetByID", ctx, int64(5)).Return(&domain.Offer{ID: 5}, nil)
		appRepo.On("Exists", ctx, int64(1), int64(5)).Return(true, nil)

		_, err := uc.Apply(ctx, candidateScope, 5, "letter", pdfUpload())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "You have already applied to this offer")
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reclaim the file when the insert loses a duplicate race", func(t *testing.T) {
		uc, appRepo, offerRepo, store := newUC()
		store.On("Validate", mock.Anything, mock.Anything).Return(nil)
		offerRepo.On("GetByID", ctx, int64(5)).Return(&domain.Offer{ID: 5}, nil)
		appRepo.On("Exists", ctx, int64(1), int64(5)).Return(false, nil)
		store.On("Save", mock.Anything, mock.Anything, mock.Anything, "cv.pdf").Return("cv_1_abc.pdf", nil)
		appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(domain.ErrDuplicate)
		store.On("Remove", "cv_1_abc.pdf").Return(nil)

		_, err := uc.Apply(ctx, candidateScope, 5, "letter", pdfUpload())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "You have already applied to this offer")
		store.AssertCalled(t, "Remove", "cv_1_abc.pdf")
	})

	t.Run("Should create a pending application owned by the caller", func(t *testing.T) {
		uc, appRepo, offerRepo, store := newUC()
		store.On("Validate", mock.Anything, mock.Anything).Return(nil)
		offerRepo.On("GetByID", ctx, int64(5)).Return(&domain.Offer{ID: 5}, nil)
		appRepo.On("Exists", ctx, int64(1), int64(5)).Return(false, nil)
		store.On("Save", mock.Anything, mock.Anything, mock.Anything, "cv.pdf").Return("cv_1_abc.pdf", nil)
		appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)

		app, err := uc.Apply(ctx, candidateScope, 5, "letter", pdfUpload())
		assert.NoError(t, err)
		assert.Equal(t, int64(1), app.CandidateID)
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
		assert.Equal(t, "cv_1_abc.pdf", app.Resume)
	})
}

func TestApplicationContentOwnership(t *testing.T) {
	ctx := context.Background()

	pendingApp := func() *domain.Application {
		return &domain.Application{
			ID:               7,
			CandidateID:      1,
			OfferID:          5,
			Resume:           "old.pdf",
			CoverLetter:      "old letter",
			Status:           domain.ApplicationStatusPending,
			OfferRecruiterID: 10,
		}
	}

	t.Run("Should deny a candidate who does not own the application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockOfferRepo), new(MockResumeStore))
		appRepo.On("GetByID", ctx, int64(7)).Return(pendingApp(), nil)

		other := domain.Scope{UserID: 2, Role: domain.RoleCandidate}
		_, err := uc.UpdateContent(ctx, other, 7, "new letter", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Access denied")
	})

	t.Run("Should only edit pending applications", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockOfferRepo), new(MockResumeStore))
		accepted := pendingApp()
		accepted.Status = domain.ApplicationStatusAccepted
		appRepo.On("GetByID", ctx, int64(7)).Return(accepted, nil)

		_, err := uc.UpdateContent(ctx, candidateScope, 7, "new letter", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "You can only update pending applications")
	})

	t.Run("Should only delete pending applications", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockOfferRepo), new(MockResumeStore))
		rejected := pendingApp()
		rejected.Status = domain.ApplicationStatusRejected
		appRepo.On("GetByID", ctx, int64(7)).Return(rejected, nil)

		err := uc.Delete(ctx, candidateScope, 7)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "You can only delete pending applications")
	})

	t.Run("Should keep the old resume when no file is uploaded", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		store := new(MockResumeStore)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockOfferRepo), store)
		appRepo.On("GetByID", ctx, int64(7)).Return(pendingApp(), nil)
		appRepo.On("UpdateContent", ctx, int64(7), "new letter", "old.pdf").Return(nil)

		app, err := uc.UpdateContent(ctx, candidateScope, 7, "new letter", nil)
		assert.NoError(t, err)
		assert.Equal(t, "old.pdf", app.Resume)
		store.AssertNotCalled(t, "Remove", mock.Anything)
	})

	t.Run("Should write the new resume before removing the old one", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		store := new(MockResumeStore)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockOfferRepo), store)
		appRepo.On("GetByID", ctx, int64(7)).Return(pendingApp(), nil)
		store.On("Save", mock.Anything, mock.Anything, mock.Anything, "cv.pdf").Return("new.pdf", nil)
		appRepo.On("UpdateContent", ctx, int64(7), "new letter", "new.pdf").Return(nil)
		store.On("Remove", "old.pdf").Return(nil)

		app, err := uc.UpdateContent(ctx, candidateScope, 7, "new letter", pdfUpload())
		assert.NoError(t, err)
		assert.Equal(t, "new.pdf", app.Resume)
		store.AssertCalled(t, "Remove", "old.pdf")
	})

	t.Run("Should reclaim the new file when the row update fails", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		store := new(MockResumeStore)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockOfferRepo), store)
		appRepo.On("GetByID", ctx, int64(7)).Return(pendingApp(), nil)
		store.On("Save", mock.Anything, mock.Anything, mock.Anything, "cv.pdf").Return("new.pdf", nil)
		appRepo.On("UpdateContent", ctx, int64(7), "new letter", "new.pdf").Return(domain.ErrNotFound)
		store.On("Remove", "new.pdf").Return(nil)

		_, err := uc.UpdateContent(ctx, candidateScope, 7, "new letter", pdfUpload())
		assert.Error(t, err)
		store.AssertCalled(t, "Remove", "new.pdf")
		store.AssertNotCalled(t, "Remove", "old.pdf")
	})

	t.Run("Should delete the row and its resume", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		store := new(MockResumeStore)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockOfferRepo), store)
		appRepo.On("GetByID", ctx, int64(7)).Return(pendingApp(), nil)
		appRepo.On("Delete", ctx, int64(7)).Return(nil)
		store.On("Remove", "old.pdf").Return(nil)

		err := uc.Delete(ctx, candidateScope, 7)
		assert.NoError(t, err)
		store.AssertCalled(t, "Remove", "old.pdf")
	})
}

func TestApplicationStatusTransitions(t *testing.T) {
	ctx := context.Background()

	app := func() *domain.Application {
		return &domain.Application{
			ID:               7,
			CandidateID:      1,
			OfferID:          5,
			Status:           domain.ApplicationStatusAccepted,
			OfferRecruiterID: 10,
		}
	}

	t.Run("Should reject an unknown status before any lookup", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockOfferRepo), new(MockResumeStore))

		_, err := uc.SetStatus(ctx, recruiterScope, 7, "archived")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid status")
		appRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Should deny a recruiter who does not own the target offer", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockOfferRepo), new(MockResumeStore))
		appRepo.On("GetByID", ctx, int64(7)).Return(app(), nil)

		other := domain.Scope{UserID: 11, Role: domain.RoleRecruiter}
		_, err := uc.SetStatus(ctx, other, 7, domain.ApplicationStatusRejected)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "You can only update applications for your offers")
	})

	t.Run("Should deny candidates entirely", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockOfferRepo), new(MockResumeStore))
		appRepo.On("GetByID", ctx, int64(7)).Return(app(), nil)

		_, err := uc.SetStatus(ctx, candidateScope, 7, domain.ApplicationStatusAccepted)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Access denied")
	})

	t.Run("Should allow resetting an accepted application to pending", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockOfferRepo), new(MockResumeStore))
		appRepo.On("GetByID", ctx, int64(7)).Return(app(), nil)
		appRepo.On("UpdateStatus", ctx, int64(7), domain.ApplicationStatusPending).Return(nil)

		updated, err := uc.SetStatus(ctx, recruiterScope, 7, domain.ApplicationStatusPending)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, updated.Status)
	})

	t.Run("Should 404 when the row vanished between read and write", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockOfferRepo), new(MockResumeStore))
		appRepo.On("GetByID", ctx, int64(7)).Return(app(), nil)
		appRepo.On("UpdateStatus", ctx, int64(7), domain.ApplicationStatusRejected).Return(domain.ErrNotFound)

		_, err := uc.SetStatus(ctx, recruiterScope, 7, domain.ApplicationStatusRejected)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Application not found")
	})

	t.Run("Should let the arbiter update notes regardless of status", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockOfferRepo), new(MockResumeStore))
		appRepo.On("GetByID", ctx, int64(7)).Return(app(), nil)
		appRepo.On("UpdateNotes", ctx, int64(7), "strong fit").Return(nil)

		updated, err := uc.SetNotes(ctx, recruiterScope, 7, "strong fit")
		assert.NoError(t, err)
		assert.Equal(t, "strong fit", *updated.Notes)
	})
}

func TestOfferOwnershipAndValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("Should deny offer creation to candidates", func(t *testing.T) {
		uc := usecase.NewOfferUsecase(new(MockOfferRepo), new(MockResumeStore))
		err := uc.CreateOffer(ctx, candidateScope, &domain.Offer{Title: "Dev", Description: "d", Skills: "go"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Access denied")
	})

	t.Run("Should validate required fields in order", func(t *testing.T) {
		uc := usecase.NewOfferUsecase(new(MockOfferRepo), new(MockResumeStore))

		err := uc.CreateOffer(ctx, recruiterScope, &domain.Offer{})
		assert.Contains(t, err.Error(), "Title is required")

		err = uc.CreateOffer(ctx, recruiterScope, &domain.Offer{Title: "Dev"})
		assert.Contains(t, err.Error(), "Description is required")

		err = uc.CreateOffer(ctx, recruiterScope, &domain.Offer{Title: "Dev", Description: "d"})
		assert.Contains(t, err.Error(), "Skills are required")
	})

	t.Run("Should force ownership from the caller", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		uc := usecase.NewOfferUsecase(offerRepo, new(MockResumeStore))
		offerRepo.On("Create", ctx, mock.AnythingOfType("*domain.Offer")).Return(nil).Run(func(args mock.Arguments) {
			offer := args.Get(1).(*domain.Offer)
			assert.Equal(t, int64(10), offer.RecruiterID)
		})

		offer := &domain.Offer{RecruiterID: 999, Title: "Dev", Description: "d", Skills: "go"}
		err := uc.CreateOffer(ctx, recruiterScope, offer)
		assert.NoError(t, err)
	})

	t.Run("Should deny editing another recruiter's offer", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		uc := usecase.NewOfferUsecase(offerRepo, new(MockResumeStore))
		offerRepo.On("GetByID", ctx, int64(3)).Return(&domain.Offer{ID: 3, RecruiterID: 99}, nil)

		_, err := uc.GetOfferForEdit(ctx, recruiterScope, 3)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Access denied")
	})

	t.Run("Should keep omitted optional fields on update", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		uc := usecase.NewOfferUsecase(offerRepo, new(MockResumeStore))
		paris := "Paris"
		offerRepo.On("GetByID", ctx, int64(3)).Return(&domain.Offer{ID: 3, RecruiterID: 10, Location: &paris}, nil)
		offerRepo.On("Update", ctx, mock.AnythingOfType("*domain.Offer")).Return(nil)

		updated, err := uc.UpdateOffer(ctx, recruiterScope, 3, domain.OfferUpdate{
			Title: "Dev", Description: "d", Skills: "go",
		})
		assert.NoError(t, err)
		assert.Equal(t, "Paris", *updated.Location)
	})
}

func TestOfferDeleteModes(t *testing.T) {
	ctx := context.Background()

	t.Run("Should delete an offer with no applications regardless of mode", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		uc := usecase.NewOfferUsecase(offerRepo, new(MockResumeStore))
		offerRepo.On("GetByID", ctx, int64(3)).Return(&domain.Offer{ID: 3, RecruiterID: 10}, nil)
		offerRepo.On("Delete", ctx, int64(3)).Return(nil)

		removed, err := uc.DeleteOffer(ctx, recruiterScope, 3, domain.DeleteModeOfferOnly)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), removed)
	})

	t.Run("Should refuse the default mode when applications exist", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		uc := usecase.NewOfferUsecase(offerRepo, new(MockResumeStore))
		offerRepo.On("GetByID", ctx, int64(3)).Return(&domain.Offer{ID: 3, RecruiterID: 10, ApplicationsCount: 2}, nil)

		_, err := uc.DeleteOffer(ctx, recruiterScope, 3, domain.DeleteModeOfferOnly)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot delete offer because it has 2 application(s).")
		offerRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		offerRepo.AssertNotCalled(t, "DeleteWithApplications", mock.Anything, mock.Anything)
	})

	t.Run("Should cascade and reclaim resumes when asked explicitly", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		store := new(MockResumeStore)
		uc := usecase.NewOfferUsecase(offerRepo, store)
		offerRepo.On("GetByID", ctx, int64(3)).Return(&domain.Offer{ID: 3, RecruiterID: 10, ApplicationsCount: 2}, nil)
		offerRepo.On("DeleteWithApplications", ctx, int64(3)).Return([]string{"a.pdf", "b.pdf"}, nil)
		store.On("RemoveAll", []string{"a.pdf", "b.pdf"}).Return()

		removed, err := uc.DeleteOffer(ctx, recruiterScope, 3, domain.DeleteModeWithApplications)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), removed)
		store.AssertCalled(t, "RemoveAll", []string{"a.pdf", "b.pdf"})
	})

	t.Run("Should deny deleting another recruiter's offer", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		uc := usecase.NewOfferUsecase(offerRepo, new(MockResumeStore))
		offerRepo.On("GetByID", ctx, int64(3)).Return(&domain.Offer{ID: 3, RecruiterID: 99}, nil)

		_, err := uc.DeleteOffer(ctx, recruiterScope, 3, domain.DeleteModeWithApplications)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "You can only delete your own offers")
	})
}

func TestSearchPagination(t *testing.T) {
	ctx := context.Background()

	t.Run("Should clamp page and limit before querying", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		uc := usecase.NewOfferUsecase(offerRepo, new(MockResumeStore))
		offerRepo.On("Search", ctx, mock.MatchedBy(func(f domain.OfferFilter) bool {
			return f.Page == 1 && f.Limit == 10
		})).Return([]domain.Offer{}, int64(0), nil)

		_, pagination, err := uc.SearchOffers(ctx, domain.OfferFilter{Scope: candidateScope, Page: -3, Limit: 0})
		assert.NoError(t, err)
		assert.Equal(t, 1, pagination.Page)
	})

	t.Run("Should round total pages up", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		uc := usecase.NewOfferUsecase(offerRepo, new(MockResumeStore))
		offerRepo.On("Search", ctx, mock.Anything).Return([]domain.Offer{}, int64(21), nil)

		_, pagination, err := uc.SearchOffers(ctx, domain.OfferFilter{Scope: candidateScope, Page: 1, Limit: 10})
		assert.NoError(t, err)
		assert.Equal(t, 3, pagination.TotalPages)
		assert.Equal(t, int64(21), pagination.Total)
	})

	t.Run("Should include offer options for recruiter application searches", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		offerRepo := new(MockOfferRepo)
		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, new(MockResumeStore))
		appRepo.On("Search", ctx, mock.Anything).Return([]domain.Application{}, int64(0), nil)
		offerRepo.On("ListOptionsByRecruiter", ctx, int64(10)).Return([]domain.OfferOption{{ID: 3, Title: "Dev"}}, nil)

		_, options, _, err := uc.Search(ctx, domain.ApplicationFilter{Scope: recruiterScope})
		assert.NoError(t, err)
		assert.Len(t, options, 1)
	})
}

func TestDashboardAggregation(t *testing.T) {
	ctx := context.Background()

	t.Run("Should add the offer count for recruiters", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		offerRepo := new(MockOfferRepo)
		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, new(MockResumeStore))
		appRepo.On("Stats", ctx, recruiterScope).Return(&domain.ApplicationStats{Total: 4, Pending: 2, Accepted: 1, Rejected: 1}, nil)
		offerRepo.On("CountByRecruiter", ctx, int64(10)).Return(int64(3), nil)

		stats, err := uc.Stats(ctx, recruiterScope)
		assert.NoError(t, err)
		assert.NotNil(t, stats.TotalOffers)
		assert.Equal(t, int64(3), *stats.TotalOffers)
	})

	t.Run("Should leave the offer count empty for candidates", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		offerRepo := new(MockOfferRepo)
		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, new(MockResumeStore))
		appRepo.On("Stats", ctx, candidateScope).Return(&domain.ApplicationStats{Total: 2, Pending: 2}, nil)

		stats, err := uc.Stats(ctx, candidateScope)
		assert.NoError(t, err)
		assert.Nil(t, stats.TotalOffers)
		offerRepo.AssertNotCalled(t, "CountByRecruiter", mock.Anything, mock.Anything)
	})

	t.Run("Should cap the dashboard at five recent applications", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		offerRepo := new(MockOfferRepo)
		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, new(MockResumeStore))
		appRepo.On("Stats", ctx, candidateScope).Return(&domain.ApplicationStats{}, nil)
		appRepo.On("RecentByScope", ctx, candidateScope, 5).Return([]domain.Application{}, nil)

		dashboard, err := uc.Dashboard(ctx, candidateScope)
		assert.NoError(t, err)
		assert.Empty(t, dashboard.Offers)
		appRepo.AssertCalled(t, "RecentByScope", ctx, candidateScope, 5)
	})
}

func TestAuthFlows(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)

	t.Run("Should reject unknown roles", func(t *testing.T) {
		uc := usecase.NewAuthUsecase(new(MockUserRepo), tokens)
		_, _, err := uc.Register(ctx, "a@b.c", "secret123", "admin", "A B", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid role")
	})

	t.Run("Should map a taken email onto the public message", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, tokens)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(domain.ErrEmailTaken)

		_, _, err := uc.Register(ctx, "a@b.c", "secret123", domain.RoleCandidate, "A B", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Email already registered")
	})

	t.Run("Should carry the optional phone onto the created user", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, tokens)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			user := args.Get(1).(*domain.User)
			assert.NotNil(t, user.Phone)
			assert.Equal(t, "+33612345678", *user.Phone)
		})

		phone := "+33612345678"
		user, _, err := uc.Register(ctx, "a@b.c", "secret123", domain.RoleCandidate, "A B", &phone)
		assert.NoError(t, err)
		assert.NotNil(t, user.Phone)
		assert.Equal(t, "+33612345678", *user.Phone)
	})

	t.Run("Should leave the phone empty when none is given", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, tokens)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, _, err := uc.Register(ctx, "a@b.c", "secret123", domain.RoleCandidate, "A B", nil)
		assert.NoError(t, err)
		assert.Nil(t, user.Phone)
	})

	t.Run("Should use one message for bad email and bad password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, tokens)
		hash, _ := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
		userRepo.On("GetByEmail", ctx, "missing@b.c").Return(nil, domain.ErrNotFound)
		userRepo.On("GetByEmail", ctx, "a@b.c").Return(&domain.User{ID: 1, Email: "a@b.c", PasswordHash: string(hash)}, nil)

		_, _, err := uc.Login(ctx, "missing@b.c", "whatever")
		assert.Contains(t, err.Error(), "Invalid email or password")

		_, _, err = uc.Login(ctx, "a@b.c", "wrong password")
		assert.Contains(t, err.Error(), "Invalid email or password")
	})

	t.Run("Should issue a verifiable token on login", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, tokens)
		hash, _ := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
		userRepo.On("GetByEmail", ctx, "a@b.c").Return(&domain.User{ID: 42, Email: "a@b.c", PasswordHash: string(hash)}, nil)

		user, token, err := uc.Login(ctx, "a@b.c", "correct horse")
		assert.NoError(t, err)
		assert.Equal(t, int64(42), user.ID)

		userID, err := tokens.Verify(token)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), userID)
	})
}

func TestAccountDeletion(t *testing.T) {
	ctx := context.Background()

	t.Run("Should collect resumes before the row cascade removes them", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		appRepo := new(MockApplicationRepo)
		store := new(MockResumeStore)
		uc := usecase.NewProfileUsecase(userRepo, appRepo, store)
		appRepo.On("ResumesByCandidate", ctx, int64(1)).Return([]string{"a.pdf", "b.pdf"}, nil)
		userRepo.On("Delete", ctx, int64(1)).Return(nil)
		store.On("RemoveAll", []string{"a.pdf", "b.pdf"}).Return()

		err := uc.DeleteAccount(ctx, 1)
		assert.NoError(t, err)
		store.AssertCalled(t, "RemoveAll", []string{"a.pdf", "b.pdf"})
	})

	t.Run("Should not touch files when the delete fails", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		appRepo := new(MockApplicationRepo)
		store := new(MockResumeStore)
		uc := usecase.NewProfileUsecase(userRepo, appRepo, store)
		appRepo.On("ResumesByCandidate", ctx, int64(1)).Return([]string{"a.pdf"}, nil)
		userRepo.On("Delete", ctx, int64(1)).Return(domain.ErrNotFound)

		err := uc.DeleteAccount(ctx, 1)
		assert.Error(t, err)
		store.AssertNotCalled(t, "RemoveAll", mock.Anything)
	})
}

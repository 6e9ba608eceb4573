package domain

import (
	"context"
	"io"
	"time"
)

// Application status constants. Pending is the initial state; accepted and
// rejected are not terminal, the recruiter may reset back to pending.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// ValidApplicationStatus reports whether s is one of the three statuses.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

type Application struct {
	ID          int64     `json:"id"`
	CandidateID int64     `json:"candidate_id"`
	OfferID     int64     `json:"offer_id"`
	Resume      string    `json:"resume"` // stored filename under the uploads root
	CoverLetter string    `json:"cover_letter"`
	Status      string    `json:"status"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined data for list/detail responses
	CandidateName    string  `json:"candidate_name,omitempty"`
	CandidateEmail   string  `json:"candidate_email,omitempty"`
	CandidatePhone   *string `json:"candidate_phone,omitempty"`
	OfferTitle       string  `json:"offer_title,omitempty"`
	OfferRecruiterID int64   `json:"-"` // owning recruiter of the target offer
}

// ResumeUpload is an incoming resume file as declared by the client.
type ResumeUpload struct {
	Reader       io.Reader
	DeclaredMime string
	DeclaredSize int64
	OriginalName string
}

// ResumeStore abstracts the uploads directory: validate-and-write a new
// resume, remove a superseded or orphaned one.
type ResumeStore interface {
	Validate(declaredMime string, declaredSize int64) error
	Save(r io.Reader, declaredMime string, declaredSize int64, originalName string) (string, error)
	Remove(storedName string) error
	RemoveAll(storedNames []string)
}

// ApplicationFilter is the search input for application list endpoints.
// OfferID only restricts recruiter-scoped searches.
type ApplicationFilter struct {
	Scope   Scope
	Query   string
	Status  string
	OfferID int64
	Page    int
	Limit   int
}

// ApplicationStats are the per-role dashboard counters. TotalOffers is
// only populated for recruiters.
type ApplicationStats struct {
	Total       int64  `json:"total"`
	Pending     int64  `json:"pending"`
	Accepted    int64  `json:"accepted"`
	Rejected    int64  `json:"rejected"`
	TotalOffers *int64 `json:"total_offers,omitempty"`
}

// Dashboard is the per-role landing page projection.
type Dashboard struct {
	Stats        ApplicationStats `json:"stats"`
	Applications []Application    `json:"applications"`
	Offers       []Offer          `json:"offers,omitempty"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	Exists(ctx context.Context, candidateID, offerID int64) (bool, error)
	UpdateContent(ctx context.Context, id int64, coverLetter, resume string) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	UpdateNotes(ctx context.Context, id int64, notes string) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter ApplicationFilter) ([]Application, int64, error)
	ListByScope(ctx context.Context, scope Scope) ([]Application, error)
	RecentByScope(ctx context.Context, scope Scope, limit int) ([]Application, error)
	Stats(ctx context.Context, scope Scope) (*ApplicationStats, error)
	ResumesByCandidate(ctx context.Context, candidateID int64) ([]string, error)
}

type ApplicationUsecase interface {
	// Candidate operations
	Apply(ctx context.Context, scope Scope, offerID int64, coverLetter string, resume *ResumeUpload) (*Application, error)
	GetForEdit(ctx context.Context, scope Scope, id int64) (*Application, error)
	UpdateContent(ctx context.Context, scope Scope, id int64, coverLetter string, resume *ResumeUpload) (*Application, error)
	Delete(ctx context.Context, scope Scope, id int64) error

	// Recruiter operations
	SetStatus(ctx context.Context, scope Scope, id int64, status string) (*Application, error)
	SetNotes(ctx context.Context, scope Scope, id int64, notes string) (*Application, error)

	// Shared read-only projections
	Get(ctx context.Context, scope Scope, id int64) (*Application, error)
	List(ctx context.Context, scope Scope) ([]Application, []Offer, error)
	Search(ctx context.Context, filter ApplicationFilter) ([]Application, []OfferOption, Pagination, error)
	Stats(ctx context.Context, scope Scope) (*ApplicationStats, error)
	Dashboard(ctx context.Context, scope Scope) (*Dashboard, error)
}

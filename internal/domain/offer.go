package domain

import (
	"context"
	"time"
)

// Offer delete modes. With dependent applications present, anything other
// than "with_applications" takes the safer rejection path.
const (
	DeleteModeOfferOnly        = "offer_only"
	DeleteModeWithApplications = "with_applications"
)

type Offer struct {
	ID           int64     `json:"id"`
	RecruiterID  int64     `json:"recruiter_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Skills       string    `json:"skills"` // free text, comma-separated
	Location     *string   `json:"location,omitempty"`
	Salary       *string   `json:"salary,omitempty"`
	ContractType *string   `json:"contract_type,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	// Joined data for list/detail responses
	RecruiterName     string `json:"recruiter_name,omitempty"`
	ApplicationsCount int64  `json:"applications_count"`
}

// OfferUpdate carries an offer edit. Nil optional fields are left unchanged.
type OfferUpdate struct {
	Title        string
	Description  string
	Skills       string
	Location     *string
	Salary       *string
	ContractType *string
}

// OfferFilter is the search input for offer list endpoints.
type OfferFilter struct {
	Scope  Scope
	Query  string // substring over title/description
	Skills string // comma-separated, conjunctive substring match
	Page   int
	Limit  int
}

// OfferOption is a compact offer reference used for filter dropdowns.
type OfferOption struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	ApplicationsCount int64  `json:"applicationsCount"`
}

type OfferRepository interface {
	Create(ctx context.Context, offer *Offer) error
	GetByID(ctx context.Context, id int64) (*Offer, error)
	Update(ctx context.Context, offer *Offer) error
	// Delete removes an offer with no dependent applications.
	Delete(ctx context.Context, id int64) error
	// DeleteWithApplications removes the offer and its applications in one
	// transaction and returns the stored resume names of the removed
	// applications so the caller can clean up files.
	DeleteWithApplications(ctx context.Context, id int64) ([]string, error)
	Search(ctx context.Context, filter OfferFilter) ([]Offer, int64, error)
	List(ctx context.Context) ([]Offer, error)
	ListByRecruiter(ctx context.Context, recruiterID int64) ([]Offer, error)
	ListOptionsByRecruiter(ctx context.Context, recruiterID int64) ([]OfferOption, error)
	CountByRecruiter(ctx context.Context, recruiterID int64) (int64, error)
}

type OfferUsecase interface {
	CreateOffer(ctx context.Context, scope Scope, offer *Offer) error
	GetOffer(ctx context.Context, scope Scope, id int64) (*Offer, error)
	GetOfferForEdit(ctx context.Context, scope Scope, id int64) (*Offer, error)
	UpdateOffer(ctx context.Context, scope Scope, id int64, update OfferUpdate) (*Offer, error)
	DeleteOffer(ctx context.Context, scope Scope, id int64, deleteMode string) (int64, error)
	ListOffers(ctx context.Context, scope Scope) ([]Offer, error)
	SearchOffers(ctx context.Context, filter OfferFilter) ([]Offer, Pagination, error)
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hireflow-backend/internal/domain"
)

type offerRepo struct {
	db *pgxpool.Pool
}

func NewOfferRepository(db *pgxpool.Pool) domain.OfferRepository {
	return &offerRepo{db: db}
}

func (r *offerRepo) Create(ctx context.Context, offer *domain.Offer) error {
	query := `
		INSERT INTO offers (recruiter_id, title, description, skills, location, salary, contract_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	offer.CreatedAt = time.Now()
	return r.db.QueryRow(ctx, query,
		offer.RecruiterID, offer.Title, offer.Description, offer.Skills,
		offer.Location, offer.Salary, offer.ContractType, offer.CreatedAt,
	).Scan(&offer.ID)
}

// GetByID retrieves an offer with the recruiter name and application count joined.
func (r *offerRepo) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	query := `
		SELECT
			o.id, o.recruiter_id, o.title, o.description, o.skills,
			o.location, o.salary, o.contract_type, o.created_at,
			u.full_name AS recruiter_name,
			(SELECT COUNT(*) FROM applications a WHERE a.offer_id = o.id) AS applications_count
		FROM offers o
		JOIN users u ON o.recruiter_id = u.id
		WHERE o.id = $1`

	var offer domain.Offer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&offer.ID, &offer.RecruiterID, &offer.Title, &offer.Description, &offer.Skills,
		&offer.Location, &offer.Salary, &offer.ContractType, &offer.CreatedAt,
		&offer.RecruiterName, &offer.ApplicationsCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *offerRepo) Update(ctx context.Context, offer *domain.Offer) error {
	query := `
		UPDATE offers
		SET title = $2, description = $3, skills = $4, location = $5, salary = $6, contract_type = $7
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		offer.ID, offer.Title, offer.Description, offer.Skills,
		offer.Location, offer.Salary, offer.ContractType,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *offerRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteWithApplications removes the dependent applications and the offer in
// one transaction, returning the stored resume names of the removed rows.
func (r *offerRepo) DeleteWithApplications(ctx context.Context, id int64) ([]string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `SELECT resume FROM applications WHERE offer_id = $1`, id)
	if err != nil {
		return nil, err
	}
	var resumes []string
	for rows.Next() {
		var resume string
		if err := rows.Scan(&resume); err != nil {
			rows.Close()
			return nil, err
		}
		resumes = append(resumes, resume)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM applications WHERE offer_id = $1`, id); err != nil {
		return nil, err
	}
	result, err := tx.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return resumes, nil
}

// Search builds the filtered, ordered, paginated offer view. The count is
// taken after filtering and before the page window is applied.
func (r *offerRepo) Search(ctx context.Context, filter domain.OfferFilter) ([]domain.Offer, int64, error) {
	conds := []string{"1=1"}
	args := []interface{}{}

	if filter.Scope.IsRecruiter() {
		args = append(args, filter.Scope.UserID)
		conds = append(conds, fmt.Sprintf("o.recruiter_id = $%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		conds = append(conds, fmt.Sprintf("(o.title ILIKE $%d OR o.description ILIKE $%d)", len(args), len(args)))
	}
	// Conjunctive substring match over the free-text skills field: every
	// token must appear.
	for _, skill := range skillTokens(filter.Skills) {
		args = append(args, "%"+skill+"%")
		conds = append(conds, fmt.Sprintf("o.skills ILIKE $%d", len(args)))
	}

	where := strings.Join(conds, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM offers o WHERE ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT
			o.id, o.recruiter_id, o.title, o.description, o.skills,
			o.location, o.salary, o.contract_type, o.created_at,
			u.full_name AS recruiter_name,
			(SELECT COUNT(*) FROM applications a WHERE a.offer_id = o.id) AS applications_count
		FROM offers o
		JOIN users u ON o.recruiter_id = u.id
		WHERE %s
		ORDER BY o.created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var offers []domain.Offer
	for rows.Next() {
		var offer domain.Offer
		if err := rows.Scan(
			&offer.ID, &offer.RecruiterID, &offer.Title, &offer.Description, &offer.Skills,
			&offer.Location, &offer.Salary, &offer.ContractType, &offer.CreatedAt,
			&offer.RecruiterName, &offer.ApplicationsCount,
		); err != nil {
			return nil, 0, err
		}
		offers = append(offers, offer)
	}
	return offers, total, rows.Err()
}

// List returns every offer, newest first (the candidate browse view).
func (r *offerRepo) List(ctx context.Context) ([]domain.Offer, error) {
	return r.list(ctx, "", nil)
}

func (r *offerRepo) ListByRecruiter(ctx context.Context, recruiterID int64) ([]domain.Offer, error) {
	return r.list(ctx, "WHERE o.recruiter_id = $1", []interface{}{recruiterID})
}

func (r *offerRepo) list(ctx context.Context, where string, args []interface{}) ([]domain.Offer, error) {
	query := fmt.Sprintf(`
		SELECT
			o.id, o.recruiter_id, o.title, o.description, o.skills,
			o.location, o.salary, o.contract_type, o.created_at,
			u.full_name AS recruiter_name,
			(SELECT COUNT(*) FROM applications a WHERE a.offer_id = o.id) AS applications_count
		FROM offers o
		JOIN users u ON o.recruiter_id = u.id
		%s
		ORDER BY o.created_at DESC`, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []domain.Offer
	for rows.Next() {
		var offer domain.Offer
		if err := rows.Scan(
			&offer.ID, &offer.RecruiterID, &offer.Title, &offer.Description, &offer.Skills,
			&offer.Location, &offer.Salary, &offer.ContractType, &offer.CreatedAt,
			&offer.RecruiterName, &offer.ApplicationsCount,
		); err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}
	return offers, rows.Err()
}

// ListOptionsByRecruiter returns the recruiter's offers ordered by title,
// for the search filter dropdown.
func (r *offerRepo) ListOptionsByRecruiter(ctx context.Context, recruiterID int64) ([]domain.OfferOption, error) {
	query := `
		SELECT o.id, o.title,
			(SELECT COUNT(*) FROM applications a WHERE a.offer_id = o.id) AS applications_count
		FROM offers o
		WHERE o.recruiter_id = $1
		ORDER BY o.title ASC`

	rows, err := r.db.Query(ctx, query, recruiterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []domain.OfferOption
	for rows.Next() {
		var opt domain.OfferOption
		if err := rows.Scan(&opt.ID, &opt.Title, &opt.ApplicationsCount); err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

// skillTokens splits a free-text skills filter into its trimmed,
// non-empty comma-separated tokens. Each token becomes one conjunctive
// ILIKE condition.
func skillTokens(skills string) []string {
	var tokens []string
	for _, skill := range strings.Split(skills, ",") {
		if skill = strings.TrimSpace(skill); skill != "" {
			tokens = append(tokens, skill)
		}
	}
	return tokens
}

func (r *offerRepo) CountByRecruiter(ctx context.Context, recruiterID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM offers WHERE recruiter_id = $1`, recruiterID).Scan(&total)
	return total, err
}

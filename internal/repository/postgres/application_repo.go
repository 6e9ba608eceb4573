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

const applicationColumns = `
	a.id, a.candidate_id, a.offer_id, a.resume, a.cover_letter, a.status, a.notes, a.created_at,
	u.full_name AS candidate_name,
	u.email AS candidate_email,
	u.phone AS candidate_phone,
	o.title AS offer_title,
	o.recruiter_id AS offer_recruiter_id`

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	err := row.Scan(
		&app.ID, &app.CandidateID, &app.OfferID, &app.Resume, &app.CoverLetter,
		&app.Status, &app.Notes, &app.CreatedAt,
		&app.CandidateName, &app.CandidateEmail, &app.CandidatePhone,
		&app.OfferTitle, &app.OfferRecruiterID,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Create inserts a new application. The UNIQUE (candidate_id, offer_id)
// constraint is the authority on duplicates under concurrent submission;
// a violation surfaces as domain.ErrDuplicate.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (candidate_id, offer_id, resume, cover_letter, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	app.CreatedAt = time.Now()
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}

	err := r.db.QueryRow(ctx, query,
		app.CandidateID, app.OfferID, app.Resume, app.CoverLetter,
		app.Status, app.Notes, app.CreatedAt,
	).Scan(&app.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

// GetByID retrieves an application with candidate and offer data joined.
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications a
		JOIN users u ON a.candidate_id = u.id
		JOIN offers o ON a.offer_id = o.id
		WHERE a.id = $1`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (r *applicationRepo) Exists(ctx context.Context, candidateID, offerID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE candidate_id = $1 AND offer_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, candidateID, offerID).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) UpdateContent(ctx context.Context, id int64, coverLetter, resume string) error {
	query := `UPDATE applications SET cover_letter = $2, resume = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, coverLetter, resume)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus sets the status. A zero row count means the application was
// deleted underneath us; the caller gets ErrNotFound instead of a silent
// resurrection.
func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.Exec(ctx, `UPDATE applications SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) UpdateNotes(ctx context.Context, id int64, notes string) error {
	result, err := r.db.Exec(ctx, `UPDATE applications SET notes = $2 WHERE id = $1`, id, notes)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scopeCondition restricts a query to the caller's visible set: a recruiter
// sees applications against their offers, a candidate sees their own.
func scopeCondition(scope domain.Scope, args []interface{}) (string, []interface{}) {
	args = append(args, scope.UserID)
	if scope.IsRecruiter() {
		return fmt.Sprintf("o.recruiter_id = $%d", len(args)), args
	}
	return fmt.Sprintf("a.candidate_id = $%d", len(args)), args
}

// Search builds the filtered, ordered, paginated application view. The
// query matches candidate name/email or cover letter for recruiters, and
// offer title/description or cover letter for candidates.
func (r *applicationRepo) Search(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, int64, error) {
	var conds []string
	var args []interface{}

	cond, args := scopeCondition(filter.Scope, args)
	conds = append(conds, cond)

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		n := len(args)
		if filter.Scope.IsRecruiter() {
			conds = append(conds, fmt.Sprintf("(u.full_name ILIKE $%d OR u.email ILIKE $%d OR a.cover_letter ILIKE $%d)", n, n, n))
		} else {
			conds = append(conds, fmt.Sprintf("(o.title ILIKE $%d OR o.description ILIKE $%d OR a.cover_letter ILIKE $%d)", n, n, n))
		}
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("a.status = $%d", len(args)))
	}
	if filter.OfferID > 0 && filter.Scope.IsRecruiter() {
		args = append(args, filter.OfferID)
		conds = append(conds, fmt.Sprintf("o.id = $%d", len(args)))
	}

	from := `
		FROM applications a
		JOIN users u ON a.candidate_id = u.id
		JOIN offers o ON a.offer_id = o.id
		WHERE ` + strings.Join(conds, " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`SELECT %s %s ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d`,
		applicationColumns, from, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	apps, err := collectApplications(rows)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *applicationRepo) ListByScope(ctx context.Context, scope domain.Scope) ([]domain.Application, error) {
	return r.listByScope(ctx, scope, 0)
}

func (r *applicationRepo) RecentByScope(ctx context.Context, scope domain.Scope, limit int) ([]domain.Application, error) {
	return r.listByScope(ctx, scope, limit)
}

func (r *applicationRepo) listByScope(ctx context.Context, scope domain.Scope, limit int) ([]domain.Application, error) {
	var args []interface{}
	cond, args := scopeCondition(scope, args)

	query := fmt.Sprintf(`
		SELECT %s
		FROM applications a
		JOIN users u ON a.candidate_id = u.id
		JOIN offers o ON a.offer_id = o.id
		WHERE %s
		ORDER BY a.created_at DESC`, applicationColumns, cond)
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

// Stats tallies the scoped application set by status, case-normalized.
// The visible set matches Search's scoping exactly.
func (r *applicationRepo) Stats(ctx context.Context, scope domain.Scope) (*domain.ApplicationStats, error) {
	var args []interface{}
	cond, args := scopeCondition(scope, args)

	query := fmt.Sprintf(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE lower(a.status) = 'pending') AS pending,
			COUNT(*) FILTER (WHERE lower(a.status) = 'accepted') AS accepted,
			COUNT(*) FILTER (WHERE lower(a.status) = 'rejected') AS rejected
		FROM applications a
		JOIN offers o ON a.offer_id = o.id
		WHERE %s`, cond)

	var stats domain.ApplicationStats
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&stats.Total, &stats.Pending, &stats.Accepted, &stats.Rejected,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *applicationRepo) ResumesByCandidate(ctx context.Context, candidateID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT resume FROM applications WHERE candidate_id = $1`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resumes []string
	for rows.Next() {
		var resume string
		if err := rows.Scan(&resume); err != nil {
			return nil, err
		}
		resumes = append(resumes, resume)
	}
	return resumes, rows.Err()
}

func collectApplications(rows pgx.Rows) ([]domain.Application, error) {
	var apps []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

package usecase

import (
	"hireflow-backend/internal/domain"
	"hireflow-backend/pkg/apperror"
)

// Authorization guard. Every mutating or detail-revealing operation runs
// one of these predicates before touching the store. Denials are plain
// 403s that never leak more than the id lookup already revealed.
//
// The Application checks are deliberately split in two: the candidate owns
// the row's content while it is pending, the offer's recruiter owns its
// status and notes at all times. Who owns the row and who may change which
// field are different questions.

func requireRecruiter(scope domain.Scope) *apperror.AppError {
	if !scope.IsRecruiter() {
		return apperror.Forbidden("Access denied")
	}
	return nil
}

func requireCandidate(scope domain.Scope) *apperror.AppError {
	if !scope.IsCandidate() {
		return apperror.Forbidden("Access denied")
	}
	return nil
}

// requireOfferOwner gates offer mutation: recruiter role plus ownership.
func requireOfferOwner(scope domain.Scope, offer *domain.Offer, message string) *apperror.AppError {
	if !scope.IsRecruiter() || offer.RecruiterID != scope.UserID {
		return apperror.Forbidden(message)
	}
	return nil
}

// requireContentOwner gates application content mutation and deletion:
// only the owning candidate, and only while the application is pending.
// The state check is separate so the caller can report it as a
// validation failure rather than an authorization one.
func requireContentOwner(scope domain.Scope, app *domain.Application) *apperror.AppError {
	if !scope.IsCandidate() || app.CandidateID != scope.UserID {
		return apperror.Forbidden("Access denied")
	}
	return nil
}

func requirePending(app *domain.Application, action string) *apperror.AppError {
	if app.Status != domain.ApplicationStatusPending {
		return apperror.BadRequest("You can only " + action + " pending applications")
	}
	return nil
}

// requireStatusArbiter gates status and notes changes: only the recruiter
// who owns the application's target offer.
func requireStatusArbiter(scope domain.Scope, app *domain.Application) *apperror.AppError {
	if !scope.IsRecruiter() || app.OfferRecruiterID != scope.UserID {
		return apperror.Forbidden("Access denied. You can only update applications for your offers.")
	}
	return nil
}

// requireApplicationViewer gates the detail view: the owning candidate or
// the target offer's recruiter.
func requireApplicationViewer(scope domain.Scope, app *domain.Application) *apperror.AppError {
	if scope.IsRecruiter() {
		if app.OfferRecruiterID != scope.UserID {
			return apperror.Forbidden("Access denied")
		}
		return nil
	}
	if app.CandidateID != scope.UserID {
		return apperror.Forbidden("Access denied")
	}
	return nil
}

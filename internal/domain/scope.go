package domain

// Scope is the role-derived visibility restriction applied to list,
// search and stats queries. It is computed once per request from the
// authenticated principal and threaded into the query layer, instead
// of re-branching on role at every endpoint.
type Scope struct {
	UserID int64
	Role   string
}

func (s Scope) IsRecruiter() bool {
	return s.Role == RoleRecruiter
}

func (s Scope) IsCandidate() bool {
	return s.Role == RoleCandidate
}

// Pagination describes one page of a filtered result set. Total reflects
// the count after all filters but before the page/limit window.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(total int64, page, limit int) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

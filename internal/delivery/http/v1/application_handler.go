package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hireflow-backend/internal/delivery/http/middleware"
	"hireflow-backend/internal/delivery/http/response"
	"hireflow-backend/internal/domain"
	"hireflow-backend/pkg/apperror"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := protected.Group("/applications")
	{
		applications.GET("", handler.List)
		applications.POST("/new", handler.Create)
		applications.GET("/search", handler.Search)
		applications.GET("/stats", handler.Stats)
		applications.GET("/:id/show", handler.Show)
		applications.GET("/:id/edit", handler.Edit)
		applications.PUT("/:id/update", handler.Update)
		applications.DELETE("/:id/delete", handler.Delete)
		applications.PUT("/:id/status", handler.SetStatus)
		applications.PUT("/:id/notes", handler.SetNotes)
	}
}

// List is the applications index: the caller's scoped application set
// plus, for recruiters, their offers for the filter dropdown.
func (h *ApplicationHandler) List(c *gin.Context) {
	scope := middleware.ScopeFromContext(c)

	applications, offers, err := h.applicationUC.List(c.Request.Context(), scope)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", gin.H{
		"applications": applications,
		"offers":       offers,
	})
}

// Show returns the application detail for the owning candidate or the
// target offer's recruiter.
func (h *ApplicationHandler) Show(c *gin.Context) {
	scope := middleware.ScopeFromContext(c)

	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	app, err := h.applicationUC.Get(c.Request.Context(), scope, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application retrieved", app)
}

// Create submits a new application: multipart form with offerId,
// coverLetter and a resume file.
func (h *ApplicationHandler) Create(c *gin.Context) {
	scope := middleware.ScopeFromContext(c)

	offerID, _ := strconv.ParseInt(c.PostForm("offerId"), 10, 64)
	coverLetter := c.PostForm("coverLetter")

	resume, closeResume, err := formResume(c)
	if err != nil {
		c.Error(err)
		return
	}
	defer closeResume()

	app, err := h.applicationUC.Apply(c.Request.Context(), scope, offerID, coverLetter, resume)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully!", app)
}

// Edit returns the application data for the edit form, pending only.
func (h *ApplicationHandler) Edit(c *gin.Context) {
	scope := middleware.ScopeFromContext(c)

	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	app, err := h.applicationUC.GetForEdit(c.Request.Context(), scope, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application retrieved", app)
}

// Update replaces the cover letter and optionally the resume of a
// pending application.
func (h *ApplicationHandler) Update(c *gin.Context) {
	scope := middleware.ScopeFromContext(c)

	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	coverLetter := c.PostForm("coverLetter")

	resume, closeResume, err := formResume(c)
	if err != nil {
		c.Error(err)
		return
	}
	defer closeResume()

	app, err := h.applicationUC.UpdateContent(c.Request.Context(), scope, id, coverLetter, resume)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application updated successfully!", app)
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	scope := middleware.ScopeFromContext(c)

	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.applicationUC.Delete(c.Request.Context(), scope, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application deleted successfully!", nil)
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus applies a status transition (accept/reject/reset to pending).
func (h *ApplicationHandler) SetStatus(c *gin.Context) {
	scope := middleware.ScopeFromContext(c)

	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid status"))
		return
	}

	app, err := h.applicationUC.SetStatus(c.Request.Context(), scope, id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, statusMessage(app.Status), app)
}

type SetNotesRequest struct {
	Notes string `json:"notes"`
}

// SetNotes updates the recruiter notes, independent of status.
func (h *ApplicationHandler) SetNotes(c *gin.Context) {
	scope := middleware.ScopeFromContext(c)

	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req SetNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.SetNotes(c.Request.Context(), scope, id, req.Notes)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notes updated successfully!", app)
}

// Search filters the scoped application set by free text, status and
// (recruiter only) offer.
func (h *ApplicationHandler) Search(c *gin.Context) {
	scope := middleware.ScopeFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offerID, _ := strconv.ParseInt(c.Query("offer"), 10, 64)

	applications, offers, pagination, err := h.applicationUC.Search(c.Request.Context(), domain.ApplicationFilter{
		Scope:   scope,
		Query:   c.Query("q"),
		Status:  c.Query("status"),
		OfferID: offerID,
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", gin.H{
		"applications": applications,
		"offers":       offers,
		"pagination":   pagination,
	})
}

// Stats returns the scoped dashboard counters.
func (h *ApplicationHandler) Stats(c *gin.Context) {
	scope := middleware.ScopeFromContext(c)

	stats, err := h.applicationUC.Stats(c.Request.Context(), scope)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Statistics retrieved", stats)
}

// formResume pulls the optional resume file out of the multipart form.
// It returns nil when no file was sent; MIME type and size are the
// client-declared values, validated downstream.
func formResume(c *gin.Context) (*domain.ResumeUpload, func(), error) {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, func() {}, nil
		}
		return nil, nil, apperror.BadRequest("Invalid resume upload")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}

	return &domain.ResumeUpload{
		Reader:       file,
		DeclaredMime: fileHeader.Header.Get("Content-Type"),
		DeclaredSize: fileHeader.Size,
		OriginalName: fileHeader.Filename,
	}, func() { _ = file.Close() }, nil
}

func statusMessage(status string) string {
	switch status {
	case domain.ApplicationStatusAccepted:
		return "Application accepted successfully!"
	case domain.ApplicationStatusRejected:
		return "Application rejected successfully!"
	default:
		return "Application status reset to pending."
	}
}

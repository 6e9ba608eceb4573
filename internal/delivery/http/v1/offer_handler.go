package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hireflow-backend/internal/delivery/http/middleware"
	"hireflow-backend/internal/delivery/http/response"
	"hireflow-backend/internal/domain"
	"hireflow-backend/pkg/apperror"
)

type OfferHandler struct {
	offerUC domain.OfferUsecase
}

// NewOfferHandler registers offer routes
func NewOfferHandler(protected *gin.RouterGroup, offerUC domain.OfferUsecase) {
	handler := &OfferHandler{offerUC: offerUC}

	offers := protected.Group("/offers")
	{
		offers.GET("", handler.List)
		offers.POST("/new", handler.Create)
		offers.GET("/search", handler.Search)
		offers.GET("/:id/show", handler.Show)
		offers.GET("/:id/edit", handler.Edit)
		offers.PUT("/:id/update", handler.Update)
		offers.DELETE("/:id/delete", handler.Delete)
	}
}

type CreateOfferRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	Skills       string  `json:"skills" binding:"required"`
	Location     *string `json:"location"`
	Salary       *string `json:"salary"`
	ContractType *string `json:"contractType"`
}

// UpdateOfferRequest mirrors the create payload; omitted optional fields
// keep their stored values.
type UpdateOfferRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Skills       string  `json:"skills"`
	Location     *string `json:"location"`
	Salary       *string `json:"salary"`
	ContractType *string `json:"contractType"`
}

// List returns the offers visible to the caller: recruiters their own,
// candidates everything.
func (h *OfferHandler) List(c *gin.Context) {
	scope := middleware.ScopeFromContext(c)

	offers, err := h.offerUC.ListOffers(c.Request.Context(), scope)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Offers retrieved", offers)
}

func (h *OfferHandler) Create(c *gin.Context) {
	scope := middleware.ScopeFromContext(c)

	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	offer := &domain.Offer{
		Title:        req.Title,
		Description:  req.Description,
		Skills:       req.Skills,
		Location:     req.Location,
		Salary:       req.Salary,
		ContractType: req.ContractType,
	}
	if err := h.offerUC.CreateOffer(c.Request.Context(), scope, offer); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Offer created successfully!", offer)
}

// Show returns the offer detail view, visible to any authenticated user.
func (h *OfferHandler) Show(c *gin.Context) {
	scope := middleware.ScopeFromContext(c)

	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	offer, err := h.offerUC.GetOffer(c.Request.Context(), scope, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Offer retrieved", offer)
}

// Edit returns the offer data for the edit form, owner only.
func (h *OfferHandler) Edit(c *gin.Context) {
	scope := middleware.ScopeFromContext(c)

	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	offer, err := h.offerUC.GetOfferForEdit(c.Request.Context(), scope, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Offer retrieved", offer)
}

func (h *OfferHandler) Update(c *gin.Context) {
	scope := middleware.ScopeFromContext(c)

	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	offer, err := h.offerUC.UpdateOffer(c.Request.Context(), scope, id, domain.OfferUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Skills:       req.Skills,
		Location:     req.Location,
		Salary:       req.Salary,
		ContractType: req.ContractType,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Offer updated successfully!", offer)
}

// Delete removes an offer. With dependent applications the caller must
// pass deleteMode=with_applications explicitly.
func (h *OfferHandler) Delete(c *gin.Context) {
	scope := middleware.ScopeFromContext(c)

	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	deleteMode := c.DefaultQuery("deleteMode", domain.DeleteModeOfferOnly)

	removed, err := h.offerUC.DeleteOffer(c.Request.Context(), scope, id, deleteMode)
	if err != nil {
		c.Error(err)
		return
	}

	message := "Offer deleted successfully!"
	if removed > 0 {
		message = "Offer and all related applications deleted successfully!"
	}
	response.Success(c, http.StatusOK, message, nil)
}

// Search filters offers by a query over title/description and a
// conjunctive comma-separated skills filter.
func (h *OfferHandler) Search(c *gin.Context) {
	scope := middleware.ScopeFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	offers, pagination, err := h.offerUC.SearchOffers(c.Request.Context(), domain.OfferFilter{
		Scope:  scope,
		Query:  c.Query("q"),
		Skills: c.Query("skills"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Offers retrieved", gin.H{
		"offers":     offers,
		"pagination": pagination,
	})
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.BadRequest(fmt.Sprintf("Invalid ID: %s", c.Param("id")))
	}
	return id, nil
}

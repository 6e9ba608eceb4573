package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireflow-backend/internal/delivery/http/middleware"
	"hireflow-backend/internal/delivery/http/response"
	"hireflow-backend/internal/domain"
)

type DashboardHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewDashboardHandler registers the per-role landing page route
func NewDashboardHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &DashboardHandler{applicationUC: applicationUC}
	protected.GET("/dashboard", handler.Index)
}

// Index returns the caller's counters, recent applications and, for
// recruiters, their offer list.
func (h *DashboardHandler) Index(c *gin.Context) {
	scope := middleware.ScopeFromContext(c)

	dashboard, err := h.applicationUC.Dashboard(c.Request.Context(), scope)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Dashboard retrieved", dashboard)
}

package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireflow-backend/internal/delivery/http/middleware"
	"hireflow-backend/internal/delivery/http/response"
	"hireflow-backend/internal/domain"
	"hireflow-backend/pkg/apperror"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

// NewProfileHandler registers the profile routes. The whole group runs
// behind the CSRF double-submit cookie: GET seeds the cookie, the
// destructive account delete must echo it in X-CSRF-Token.
func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	profile := protected.Group("/profile")
	profile.Use(middleware.CSRF())
	{
		profile.GET("", handler.Get)
		profile.PUT("", handler.Update)
		profile.DELETE("", handler.Delete)
	}
}

type UpdateProfileRequest struct {
	FullName string  `json:"full_name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    *string `json:"phone"`
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID := c.GetInt64(string(domain.KeyUserID))

	user, err := h.profileUC.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", user)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID := c.GetInt64(string(domain.KeyUserID))

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.profileUC.UpdateProfile(c.Request.Context(), userID, req.FullName, req.Email, req.Phone)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Your profile has been updated successfully!", user)
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	userID := c.GetInt64(string(domain.KeyUserID))

	if err := h.profileUC.DeleteAccount(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Your account has been deleted successfully. We hope to see you again!", nil)
}

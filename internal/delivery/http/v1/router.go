package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireflow-backend/config"
	"hireflow-backend/internal/delivery/http/middleware"
	"hireflow-backend/internal/delivery/http/response"
	"hireflow-backend/internal/domain"
	"hireflow-backend/pkg/auth"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	ProfileUC     domain.ProfileUsecase
	OfferUC       domain.OfferUsecase
	ApplicationUC domain.ApplicationUsecase
	Tokens        *auth.TokenIssuer
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))
	{
		NewAuthHandler(v1, protected, deps.AuthUC)
		NewProfileHandler(protected, deps.ProfileUC)
		NewOfferHandler(protected, deps.OfferUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewDashboardHandler(protected, deps.ApplicationUC)
	}

	return r
}

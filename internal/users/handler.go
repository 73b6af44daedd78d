package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahana-dev/daansetu/pkg/common"
	"github.com/sahana-dev/daansetu/pkg/middleware"
)

// Handler handles HTTP requests for accounts
type Handler struct {
	service *Service
}

// NewHandler creates a new users handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register creates a new account
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.CreatedResponse(c, resp)
}

// Login authenticates and returns a token
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.SuccessResponse(c, resp)
}

// Me returns the authenticated user's profile and ledger balances
func (h *Handler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.SuccessResponse(c, user)
}

// RegisterRoutes registers public auth routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}

// RegisterProtectedRoutes registers routes that require authentication
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.Me)
}

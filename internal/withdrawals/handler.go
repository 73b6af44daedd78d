package withdrawals

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sahana-dev/daansetu/pkg/common"
	"github.com/sahana-dev/daansetu/pkg/middleware"
	"github.com/sahana-dev/daansetu/pkg/pagination"
)

// Handler handles HTTP requests for withdrawals
type Handler struct {
	service *Service
}

// NewHandler creates a new withdrawals handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Request creates a withdrawal for the authenticated user
func (h *Handler) Request(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req RequestWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	withdrawal, err := h.service.Request(c.Request.Context(), userID, userID, req.Amount)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.CreatedResponse(c, withdrawal)
}

// List returns the authenticated user's withdrawals
func (h *Handler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	params := pagination.ParseParams(c)
	list, total, err := h.service.ListForUser(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{
		"withdrawals": list,
		"pagination":  pagination.BuildMeta(params.Limit, params.Offset, total),
	})
}

// ListPending returns the admin processing queue
func (h *Handler) ListPending(c *gin.Context) {
	params := pagination.ParseParams(c)
	list, total, err := h.service.ListPending(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{
		"withdrawals": list,
		"pagination":  pagination.BuildMeta(params.Limit, params.Offset, total),
	})
}

// Process marks a pending withdrawal processed or rejected
func (h *Handler) Process(c *gin.Context) {
	withdrawalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid withdrawal id")
		return
	}

	var req ProcessWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	withdrawal, err := h.service.Process(c.Request.Context(), withdrawalID, req.Status)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.SuccessResponse(c, withdrawal)
}

// RegisterRoutes registers withdrawal routes for authenticated users
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	wd := rg.Group("/withdrawals")
	{
		wd.POST("", h.Request)
		wd.GET("", h.List)
	}
}

// RegisterAdminRoutes registers admin-only withdrawal routes
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	wd := rg.Group("/withdrawals")
	{
		wd.GET("/pending", h.ListPending)
		wd.PUT("/:id/status", h.Process)
	}
}

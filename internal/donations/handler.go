package donations

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sahana-dev/daansetu/pkg/common"
	"github.com/sahana-dev/daansetu/pkg/middleware"
	"github.com/sahana-dev/daansetu/pkg/pagination"
)

// Handler handles HTTP requests for donations
type Handler struct {
	service *Service
}

// NewHandler creates a new donations handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create submits a new donation for the authenticated user
func (h *Handler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	switch {
	case result.Blocked:
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   "submission flagged for manual review",
			"fraud":   result.Fraud,
		})
	case result.RequiresAcknowledgement:
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"warning": "submission looks suspicious; resubmit with acknowledge_warning to proceed",
			"fraud":   result.Fraud,
		})
	default:
		common.CreatedResponse(c, result)
	}
}

// Get returns one donation
func (h *Handler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	donationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid donation id")
		return
	}

	donation, err := h.service.Get(c.Request.Context(), donationID, userID, middleware.IsAdmin(c))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.SuccessResponse(c, donation)
}

// List returns the authenticated user's donations
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
		"donations":  list,
		"pagination": pagination.BuildMeta(params.Limit, params.Offset, total),
	})
}

// ListPending returns the admin review queue
func (h *Handler) ListPending(c *gin.Context) {
	params := pagination.ParseParams(c)
	list, total, err := h.service.ListPending(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{
		"donations":  list,
		"pagination": pagination.BuildMeta(params.Limit, params.Offset, total),
	})
}

// Finalize approves or rejects a pending donation
func (h *Handler) Finalize(c *gin.Context) {
	donationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid donation id")
		return
	}

	var req FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Finalize(c.Request.Context(), donationID, req.Status)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.SuccessResponse(c, result)
}

// RegisterRoutes registers donation routes for authenticated users
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	dn := rg.Group("/donations")
	{
		dn.POST("", h.Create)
		dn.GET("", h.List)
		dn.GET("/:id", h.Get)
	}
}

// RegisterAdminRoutes registers admin-only donation routes
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	dn := rg.Group("/donations")
	{
		dn.GET("/pending", h.ListPending)
		dn.PUT("/:id/status", h.Finalize)
	}
}

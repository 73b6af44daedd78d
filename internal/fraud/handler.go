package fraud

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sahana-dev/daansetu/pkg/common"
)

// Handler exposes the fraud detector for admin review tooling
type Handler struct {
	detector *Detector
}

// NewHandler creates a new fraud handler
func NewHandler(detector *Detector) *Handler {
	return &Handler{detector: detector}
}

// PreviewRequest is the API request for a dry-run fraud evaluation
type PreviewRequest struct {
	UserID      string           `json:"user_id" binding:"required,uuid"`
	Category    string           `json:"category" binding:"required"`
	Description string           `json:"description"`
	Platform    string           `json:"platform" binding:"omitempty,platform"`
	Location    *LocationReading `json:"location"`
}

// Preview evaluates a candidate submission without recording anything.
// Used by the admin dashboard to re-run the checks against a submission.
func (h *Handler) Preview(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid user_id")
		return
	}

	platform := Platform(req.Platform)
	if platform == "" {
		platform = PlatformMobile
	}

	eval := h.detector.Evaluate(c.Request.Context(), &Candidate{
		UserID:      userID,
		Category:    req.Category,
		Description: req.Description,
		Location:    req.Location,
		Platform:    platform,
		SubmittedAt: time.Now(),
	})

	common.SuccessResponse(c, eval)
}

// RegisterRoutes registers fraud routes on an admin-scoped router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	fr := rg.Group("/fraud")
	{
		fr.POST("/preview", h.Preview)
	}
}

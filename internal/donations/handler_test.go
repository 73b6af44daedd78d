package donations

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sahana-dev/daansetu/internal/fraud"
	"github.com/sahana-dev/daansetu/pkg/middleware"
	"github.com/sahana-dev/daansetu/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.RegisterGinValidators()
}

// stubAuth injects a principal the way AuthMiddleware would after
// validating a token
func stubAuth(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, userID)
		c.Set(middleware.ContextRoleKey, role)
		c.Next()
	}
}

func setupDonationRouter(repo RepositoryInterface, detector DetectorInterface, userID uuid.UUID) *gin.Engine {
	service := NewService(repo, detector, NewCreditCalculator(nil), nil)
	handler := NewHandler(service)

	router := gin.New()
	authed := router.Group("/api/v1")
	authed.Use(stubAuth(userID, middleware.RoleDonor))
	handler.RegisterRoutes(authed)

	admin := router.Group("/api/v1/admin")
	admin.Use(stubAuth(userID, middleware.RoleAdmin))
	handler.RegisterAdminRoutes(admin)
	return router
}

func createBody() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"category":        "food",
		"title":           "Rice for the community kitchen",
		"description":     "20kg of rice and lentils for the community kitchen",
		"quantity":        "20kg",
		"proof_photo_url": "https://cdn.example.com/proof.jpg",
		"self_photo_url":  "https://cdn.example.com/self.jpg",
		"platform":        "mobile",
		"location": map[string]interface{}{
			"latitude":        19.076,
			"longitude":       72.8777,
			"accuracy_meters": 15,
		},
	})
	return body
}

func TestCreateHandlerCleanSubmissionReturns201(t *testing.T) {
	userID := uuid.New()
	repo := new(mockDonationRepository)
	detector := new(mockDetector)
	router := setupDonationRouter(repo, detector, userID)

	detector.On("Evaluate", mock.Anything, mock.Anything).Return(&fraud.Evaluation{}).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/donations", bytes.NewBuffer(createBody()))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	repo.AssertExpectations(t)
}

func TestCreateHandlerBlockedSubmissionReturns422(t *testing.T) {
	userID := uuid.New()
	repo := new(mockDonationRepository)
	detector := new(mockDetector)
	router := setupDonationRouter(repo, detector, userID)

	detector.On("Evaluate", mock.Anything, mock.Anything).Return(&fraud.Evaluation{
		IsFraudulent: true,
		RiskLevel:    fraud.RiskHigh,
		Reasons:      []string{"mocked location detected"},
	}).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/donations", bytes.NewBuffer(createBody()))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Success bool              `json:"success"`
		Fraud   *fraud.Evaluation `json:"fraud"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Fraud)
	assert.Equal(t, fraud.RiskHigh, resp.Fraud.RiskLevel)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateHandlerWarningReturnsAcknowledgementPrompt(t *testing.T) {
	userID := uuid.New()
	repo := new(mockDonationRepository)
	detector := new(mockDetector)
	router := setupDonationRouter(repo, detector, userID)

	detector.On("Evaluate", mock.Anything, mock.Anything).Return(&fraud.Evaluation{
		IsFraudulent: true,
		RiskLevel:    fraud.RiskLow,
		Reasons:      []string{"description too short"},
	}).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/donations", bytes.NewBuffer(createBody()))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Warning string `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Warning)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateHandlerRejectsMissingFields(t *testing.T) {
	userID := uuid.New()
	router := setupDonationRouter(new(mockDonationRepository), new(mockDetector), userID)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/donations", bytes.NewBufferString(`{"category":"food"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFinalizeHandlerApprovesDonation(t *testing.T) {
	adminID := uuid.New()
	repo := new(mockDonationRepository)
	router := setupDonationRouter(repo, new(mockDetector), adminID)
	donationID := uuid.New()

	donation := &Donation{ID: donationID, Status: StatusApproved, Credits: 100}
	repo.On("Approve", mock.Anything, donationID).Return(donation, nil, nil).Once()

	body, _ := json.Marshal(map[string]string{"status": "approved"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/v1/admin/donations/"+donationID.String()+"/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestFinalizeHandlerInvalidIDReturns400(t *testing.T) {
	router := setupDonationRouter(new(mockDonationRepository), new(mockDetector), uuid.New())

	body, _ := json.Marshal(map[string]string{"status": "approved"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/v1/admin/donations/not-a-uuid/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPendingHandlerReturnsQueue(t *testing.T) {
	repo := new(mockDonationRepository)
	router := setupDonationRouter(repo, new(mockDetector), uuid.New())

	queue := []*Donation{{ID: uuid.New(), Status: StatusPending}}
	repo.On("ListByStatus", mock.Anything, StatusPending, 20, 0).Return(queue, int64(1), nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/admin/donations/pending", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

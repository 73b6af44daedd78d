package fraud

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahana-dev/daansetu/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.RegisterGinValidators()
}

func setupPreviewRouter() *gin.Engine {
	detector := NewDetector(nil, nil)
	handler := NewHandler(detector)

	router := gin.New()
	admin := router.Group("/api/v1/admin")
	handler.RegisterRoutes(admin)
	return router
}

func TestPreviewReturnsEvaluation(t *testing.T) {
	router := setupPreviewRouter()

	body, _ := json.Marshal(map[string]interface{}{
		"user_id":     uuid.New().String(),
		"category":    "food",
		"description": "test donation entry",
		"platform":    "mobile",
		"location": map[string]interface{}{
			"latitude":        19.076,
			"longitude":       72.8777,
			"accuracy_meters": 15,
			"mocked":          true,
		},
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/admin/fraud/preview", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool       `json:"success"`
		Data    Evaluation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Data.IsFraudulent)
	assert.Equal(t, RiskHigh, resp.Data.RiskLevel)
	assert.Contains(t, resp.Data.Reasons, "mocked location detected")
}

func TestPreviewCleanSubmission(t *testing.T) {
	router := setupPreviewRouter()

	body, _ := json.Marshal(map[string]interface{}{
		"user_id":     uuid.New().String(),
		"category":    "food",
		"description": "20kg of rice and lentils for the community kitchen",
		"platform":    "mobile",
		"location": map[string]interface{}{
			"latitude":        19.076,
			"longitude":       72.8777,
			"accuracy_meters": 15,
		},
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/admin/fraud/preview", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data Evaluation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.IsFraudulent)
	assert.Empty(t, resp.Data.Reasons)
}

func TestPreviewRejectsMalformedBody(t *testing.T) {
	router := setupPreviewRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/admin/fraud/preview", bytes.NewBufferString(`{"category":"food"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreviewRejectsInvalidPlatform(t *testing.T) {
	router := setupPreviewRouter()

	body, _ := json.Marshal(map[string]interface{}{
		"user_id":  uuid.New().String(),
		"category": "food",
		"platform": "desktop",
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/admin/fraud/preview", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

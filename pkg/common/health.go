package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse is the payload served on the health endpoint
type HealthResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// DependencyCheck verifies a single backing service is reachable
type DependencyCheck func() error

// HealthCheck returns a liveness handler with no dependency checks
func HealthCheck(serviceName, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:  "healthy",
			Service: serviceName,
			Version: version,
		})
	}
}

// HealthCheckWithDeps returns a readiness handler that runs each named
// dependency check. Any failing check turns the whole response unhealthy
// with a 503.
func HealthCheckWithDeps(serviceName, version string, checks map[string]DependencyCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := HealthResponse{
			Status:  "healthy",
			Service: serviceName,
			Version: version,
			Checks:  make(map[string]string, len(checks)),
		}

		for name, check := range checks {
			if err := check(); err != nil {
				resp.Checks[name] = "unhealthy: " + err.Error()
				resp.Status = "unhealthy"
				continue
			}
			resp.Checks[name] = "healthy"
		}

		code := http.StatusOK
		if resp.Status != "healthy" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, resp)
	}
}

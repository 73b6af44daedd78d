package fraud

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RiskLevel classifies how suspicious a submission is
type RiskLevel string

const (
	RiskNone   RiskLevel = ""
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

var riskRank = map[RiskLevel]int{
	RiskNone:   0,
	RiskLow:    1,
	RiskMedium: 2,
	RiskHigh:   3,
}

// AtLeast reports whether the level is at or above the given level
func (r RiskLevel) AtLeast(other RiskLevel) bool {
	return riskRank[r] >= riskRank[other]
}

// Platform identifies the device class a submission came from. Browser
// geolocation is systematically less accurate than mobile GPS, so the
// accuracy ceiling differs per platform.
type Platform string

const (
	PlatformMobile Platform = "mobile"
	PlatformWeb    Platform = "web"
)

// LocationReading is a device location fix attached to a submission
type LocationReading struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AccuracyMeters float64 `json:"accuracy_meters"`
	Mocked         bool    `json:"mocked"`
}

// GeoPoint is a bare coordinate pair from a historical submission
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HistoryEntry is one prior submission in a user's rolling history
type HistoryEntry struct {
	SubmittedAt time.Time `json:"submitted_at"`
	Location    *GeoPoint `json:"location,omitempty"`
}

// Candidate holds the fields of a submission under evaluation
type Candidate struct {
	UserID      uuid.UUID
	Category    string
	Description string
	Location    *LocationReading
	Platform    Platform
	SubmittedAt time.Time
}

// Evaluation is the result of running the fraud checks. It is never an
// error: a clean submission is an evaluation with no reasons.
type Evaluation struct {
	IsFraudulent bool      `json:"is_fraudulent"`
	RiskLevel    RiskLevel `json:"risk_level"`
	Reasons      []string  `json:"reasons"`
}

// flag records a triggered rule, appending its reason and raising the
// aggregate risk to at least the rule's level. Risk never decreases.
func (e *Evaluation) flag(level RiskLevel, reason string) {
	e.IsFraudulent = true
	if riskRank[level] > riskRank[e.RiskLevel] {
		e.RiskLevel = level
	}
	e.Reasons = append(e.Reasons, reason)
}

// merge folds another evaluation into this one, preserving reason order
func (e *Evaluation) merge(other *Evaluation) {
	if other == nil {
		return
	}
	for _, reason := range other.Reasons {
		e.Reasons = append(e.Reasons, reason)
	}
	if other.IsFraudulent {
		e.IsFraudulent = true
	}
	if riskRank[other.RiskLevel] > riskRank[e.RiskLevel] {
		e.RiskLevel = other.RiskLevel
	}
}

// ParseGeoPoint parses a "lat,lng" coordinate string as stored on donation
// records. Returns nil for empty or malformed input.
func ParseGeoPoint(s string) *GeoPoint {
	parts := strings.SplitN(strings.TrimSpace(s), ",", 2)
	if len(parts) != 2 {
		return nil
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil
	}
	return &GeoPoint{Latitude: lat, Longitude: lng}
}

// FormatGeoPoint renders a coordinate pair in the "lat,lng" storage format
func FormatGeoPoint(lat, lng float64) string {
	return fmt.Sprintf("%f,%f", lat, lng)
}

package fraud

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// DefaultMobileAccuracyLimit is the accuracy ceiling in meters for mobile GPS fixes
	DefaultMobileAccuracyLimit = 1000.0
	// DefaultWebAccuracyLimit is the accuracy ceiling in meters for browser geolocation
	DefaultWebAccuracyLimit = 5000.0

	burstWindow    = 30 * time.Minute
	burstThreshold = 3
	rapidWindow    = 60 * time.Second
	rapidThreshold = 1

	repeatRadiusMeters = 100.0
	repeatThreshold    = 5

	minDescriptionLength = 10

	earthRadiusMeters = 6371000.0
)

// suspiciousKeywords is the blocklist for placeholder descriptions.
// Matching is case-insensitive substring; first match wins.
var suspiciousKeywords = []string{"fake", "test", "demo", "sample", "trial"}

// CheckLocation judges whether a location reading is usable evidence:
// present, non-zero, accurate enough for the platform and not device-mocked.
func CheckLocation(loc *LocationReading, platform Platform, mobileLimit, webLimit float64) *Evaluation {
	eval := &Evaluation{}

	if loc == nil {
		eval.flag(RiskHigh, "missing location data")
		return eval
	}

	if loc.Latitude == 0 && loc.Longitude == 0 {
		eval.flag(RiskHigh, "suspicious zero coordinates")
	}

	limit := mobileLimit
	accuracyRisk := RiskMedium
	if platform == PlatformWeb {
		limit = webLimit
		accuracyRisk = RiskLow
	}
	if loc.AccuracyMeters > limit {
		eval.flag(accuracyRisk, fmt.Sprintf("poor location accuracy: %.0fm", loc.AccuracyMeters))
	}

	if loc.Mocked {
		eval.flag(RiskHigh, "mocked location detected")
	}

	return eval
}

// CheckTiming inspects the user's recent submission timestamps for
// burst and duplicate-time abuse relative to the candidate timestamp.
func CheckTiming(submittedAt time.Time, history []HistoryEntry) *Evaluation {
	eval := &Evaluation{}

	recent := 0
	rapid := 0
	for _, entry := range history {
		gap := submittedAt.Sub(entry.SubmittedAt)
		if gap < 0 {
			gap = -gap
		}
		if gap <= burstWindow {
			recent++
		}
		if gap <= rapidWindow {
			rapid++
		}
	}

	if recent > burstThreshold {
		eval.flag(RiskMedium, "too many donations in short period")
	}
	if rapid > rapidThreshold {
		eval.flag(RiskMedium, "identical submission timing detected")
	}

	return eval
}

// CheckSpatial counts prior submissions within 100m of the candidate
// location. Entries without a location on either side are skipped.
func CheckSpatial(loc *LocationReading, history []HistoryEntry) *Evaluation {
	eval := &Evaluation{}

	if loc == nil {
		return eval
	}

	nearby := 0
	for _, entry := range history {
		if entry.Location == nil {
			continue
		}
		d := haversineMeters(loc.Latitude, loc.Longitude, entry.Location.Latitude, entry.Location.Longitude)
		if d <= repeatRadiusMeters {
			nearby++
		}
	}

	if nearby > repeatThreshold {
		eval.flag(RiskMedium, "repeated location reuse")
	}

	return eval
}

// CheckContent inspects the free-text description for placeholder
// keywords and minimum substance. The length rule is independent of the
// keyword rule and can co-trigger.
func CheckContent(description string) *Evaluation {
	eval := &Evaluation{}

	lowered := strings.ToLower(description)
	for _, keyword := range suspiciousKeywords {
		if strings.Contains(lowered, keyword) {
			eval.flag(RiskMedium, fmt.Sprintf("description contains suspicious keyword: %q", keyword))
			break
		}
	}

	if len(description) < minDescriptionLength {
		eval.flag(RiskLow, "description too short")
	}

	return eval
}

// haversineMeters computes the great-circle distance between two
// coordinates in meters.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180.0)*math.Cos(lat2*math.Pi/180.0)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

package fraud

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/sahana-dev/daansetu/pkg/config"
	"github.com/sahana-dev/daansetu/pkg/logger"
)

var fraudVerdictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "fraud_verdicts_total",
		Help: "Total fraud evaluations by resulting risk level",
	},
	[]string{"risk_level"},
)

// HistoryProvider supplies a user's recent submission history within a
// bounded recency window. Backed by the same durable store as donations so
// evaluations are consistent across restarts and instances.
type HistoryProvider interface {
	RecentDonations(ctx context.Context, userID uuid.UUID, window time.Duration) ([]HistoryEntry, error)
}

// Detector runs the fraud checks over a candidate submission and the
// owner's recent history. It holds no durable state of its own; history is
// supplied by the injected provider.
type Detector struct {
	history             HistoryProvider
	window              time.Duration
	mobileAccuracyLimit float64
	webAccuracyLimit    float64
}

// NewDetector creates a fraud detector
func NewDetector(history HistoryProvider, cfg *config.FraudConfig) *Detector {
	window := 24 * time.Hour
	mobileLimit := DefaultMobileAccuracyLimit
	webLimit := DefaultWebAccuracyLimit

	if cfg != nil {
		if cfg.HistoryWindowHours > 0 {
			window = time.Duration(cfg.HistoryWindowHours) * time.Hour
		}
		if cfg.MobileAccuracyLimit > 0 {
			mobileLimit = cfg.MobileAccuracyLimit
		}
		if cfg.WebAccuracyLimit > 0 {
			webLimit = cfg.WebAccuracyLimit
		}
	}

	return &Detector{
		history:             history,
		window:              window,
		mobileAccuracyLimit: mobileLimit,
		webAccuracyLimit:    webLimit,
	}
}

// Evaluate runs the checks in fixed order (location, timing, spatial,
// content), unions their reasons in that order and aggregates risk as the
// maximum of the triggered levels. It never fails on a fraud signal: an
// unavailable history degrades to an evaluation over the candidate alone.
func (d *Detector) Evaluate(ctx context.Context, candidate *Candidate) *Evaluation {
	var history []HistoryEntry
	if d.history != nil {
		entries, err := d.history.RecentDonations(ctx, candidate.UserID, d.window)
		if err != nil {
			// Heuristic, not ledger: fail open with an empty history
			logger.WithContext(ctx).Warn("fraud history unavailable, evaluating without it",
				zap.String("user_id", candidate.UserID.String()),
				zap.Error(err))
		} else {
			history = entries
		}
	}

	eval := &Evaluation{}
	eval.merge(CheckLocation(candidate.Location, candidate.Platform, d.mobileAccuracyLimit, d.webAccuracyLimit))
	eval.merge(CheckTiming(candidate.SubmittedAt, history))
	eval.merge(CheckSpatial(candidate.Location, history))
	eval.merge(CheckContent(candidate.Description))

	level := string(eval.RiskLevel)
	if level == "" {
		level = "none"
	}
	fraudVerdictsTotal.WithLabelValues(level).Inc()

	if eval.IsFraudulent {
		logger.WithContext(ctx).Info("submission flagged by fraud checks",
			zap.String("user_id", candidate.UserID.String()),
			zap.String("risk_level", level),
			zap.Strings("reasons", eval.Reasons))
	}

	return eval
}

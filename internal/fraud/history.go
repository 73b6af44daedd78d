package fraud

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/sahana-dev/daansetu/pkg/logger"
	redisClient "github.com/sahana-dev/daansetu/pkg/redis"
)

const (
	historyCachePrefix = "fraud:history:"
	historyCacheTTL    = 2 * time.Minute
)

// Repository reads submission history from the donations table
type Repository struct {
	db *pgxpool.Pool
}

var _ HistoryProvider = (*Repository)(nil)

// NewRepository creates a new fraud history repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// RecentDonations returns the user's submissions within the recency window,
// newest first. The free-text coordinate string on each donation is parsed
// into a point; malformed or empty locations come back nil and are skipped
// by the spatial check.
func (r *Repository) RecentDonations(ctx context.Context, userID uuid.UUID, window time.Duration) ([]HistoryEntry, error) {
	query := `
		SELECT submitted_at, location
		FROM donations
		WHERE user_id = $1
		  AND submitted_at >= $2
		ORDER BY submitted_at DESC
	`

	cutoff := time.Now().Add(-window)
	rows, err := r.db.Query(ctx, query, userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query submission history: %w", err)
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0)
	for rows.Next() {
		var submittedAt time.Time
		var location string
		if err := rows.Scan(&submittedAt, &location); err != nil {
			return nil, fmt.Errorf("failed to scan submission history: %w", err)
		}
		entries = append(entries, HistoryEntry{
			SubmittedAt: submittedAt,
			Location:    ParseGeoPoint(location),
		})
	}

	return entries, nil
}

// CachedHistory is a read-through redis cache in front of a history
// provider. Cache failures fall through to the underlying provider; the
// short TTL bounds the staleness a concurrent submission can observe.
type CachedHistory struct {
	inner HistoryProvider
	redis *redisClient.Client
}

var _ HistoryProvider = (*CachedHistory)(nil)

// NewCachedHistory wraps a history provider with a redis cache
func NewCachedHistory(inner HistoryProvider, redis *redisClient.Client) *CachedHistory {
	return &CachedHistory{inner: inner, redis: redis}
}

// RecentDonations returns cached history when fresh, otherwise loads from
// the underlying provider and caches the result.
func (c *CachedHistory) RecentDonations(ctx context.Context, userID uuid.UUID, window time.Duration) ([]HistoryEntry, error) {
	key := historyCacheKey(userID)

	if c.redis != nil {
		if data, err := c.redis.GetString(ctx, key); err == nil {
			var entries []HistoryEntry
			if err := json.Unmarshal([]byte(data), &entries); err == nil {
				return entries, nil
			}
		}
	}

	entries, err := c.inner.RecentDonations(ctx, userID, window)
	if err != nil {
		return nil, err
	}

	if c.redis != nil {
		if data, err := json.Marshal(entries); err == nil {
			if err := c.redis.SetWithExpiration(ctx, key, data, historyCacheTTL); err != nil {
				logger.WithContext(ctx).Debug("failed to cache fraud history", zap.Error(err))
			}
		}
	}

	return entries, nil
}

// Invalidate drops the cached history for a user. Called after a new
// donation is recorded so the next evaluation sees it.
func (c *CachedHistory) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Delete(ctx, historyCacheKey(userID)); err != nil {
		logger.WithContext(ctx).Debug("failed to invalidate fraud history cache",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}

func historyCacheKey(userID uuid.UUID) string {
	return historyCachePrefix + userID.String()
}

// NoopInvalidator stands in for the cache invalidator when Redis is
// not configured and history reads go straight to the database.
type NoopInvalidator struct{}

func (NoopInvalidator) Invalidate(ctx context.Context, userID uuid.UUID) {}

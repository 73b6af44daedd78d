package withdrawals

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when the referenced withdrawal does not exist
var ErrNotFound = errors.New("withdrawal not found")

// ErrAlreadyProcessed is returned when a status change targets a
// withdrawal that has already left the pending state
var ErrAlreadyProcessed = errors.New("withdrawal already processed")

// ErrInsufficientFunds is returned when the requested amount exceeds the
// user's withdrawable balance
var ErrInsufficientFunds = errors.New("insufficient withdrawable credits")

// ErrUserNotFound is returned when the requesting user does not exist
var ErrUserNotFound = errors.New("user not found")

const withdrawalColumns = `id, user_id, amount, status, requested_at, created_at, updated_at`

// pool is the subset of pgxpool.Pool the repository uses
type pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository handles withdrawal data operations
type Repository struct {
	db pool
}

// Ensure the concrete repository satisfies the service's requirements.
var _ RepositoryInterface = (*Repository)(nil)

// NewRepository creates a new withdrawals repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateWithDebit persists a pending withdrawal and debits the owner's
// withdrawable balance in one transaction. The debit is conditional on the
// balance covering the amount, so concurrent requests cannot overdraw: the
// loser of the race sees ErrInsufficientFunds and no record is written.
func (r *Repository) CreateWithDebit(ctx context.Context, withdrawal *Withdrawal) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	debitQuery := `
		UPDATE users
		SET withdrawable_credits = withdrawable_credits - $2,
		    updated_at = NOW()
		WHERE id = $1 AND withdrawable_credits >= $2
	`

	tag, err := tx.Exec(ctx, debitQuery, withdrawal.UserID, withdrawal.Amount)
	if err != nil {
		return fmt.Errorf("failed to debit withdrawable credits: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var balance int
		err := tx.QueryRow(ctx, `SELECT withdrawable_credits FROM users WHERE id = $1`, withdrawal.UserID).Scan(&balance)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to check balance: %w", err)
		}
		return ErrInsufficientFunds
	}

	insertQuery := `
		INSERT INTO withdrawals (id, user_id, amount, status, requested_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err = tx.QueryRow(ctx, insertQuery,
		withdrawal.ID, withdrawal.UserID, withdrawal.Amount, withdrawal.Status, withdrawal.RequestedAt,
	).Scan(&withdrawal.CreatedAt, &withdrawal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create withdrawal: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit withdrawal: %w", err)
	}

	return nil
}

// GetByID retrieves a withdrawal by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id = $1`

	w := &Withdrawal{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.UserID, &w.Amount, &w.Status, &w.RequestedAt, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get withdrawal: %w", err)
	}

	return w, nil
}

// UpdateStatus moves a pending withdrawal to a terminal state. The update
// is conditional on the withdrawal still being pending.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Withdrawal, error) {
	query := `
		UPDATE withdrawals
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + withdrawalColumns

	w := &Withdrawal{}
	err := r.db.QueryRow(ctx, query, id, status).Scan(
		&w.ID, &w.UserID, &w.Amount, &w.Status, &w.RequestedAt, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var current string
			err := r.db.QueryRow(ctx, `SELECT status FROM withdrawals WHERE id = $1`, id).Scan(&current)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, ErrNotFound
				}
				return nil, fmt.Errorf("failed to check withdrawal status: %w", err)
			}
			return nil, ErrAlreadyProcessed
		}
		return nil, fmt.Errorf("failed to update withdrawal: %w", err)
	}

	return w, nil
}

// ListByUser retrieves a user's withdrawals, newest first, with total count
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Withdrawal, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM withdrawals WHERE user_id = $1`
	if err := r.db.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count withdrawals: %w", err)
	}

	query := `
		SELECT ` + withdrawalColumns + `
		FROM withdrawals
		WHERE user_id = $1
		ORDER BY requested_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	defer rows.Close()

	list, err := scanWithdrawals(rows)
	if err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// ListPending retrieves pending withdrawals in request order, with total count
func (r *Repository) ListPending(ctx context.Context, limit, offset int) ([]*Withdrawal, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM withdrawals WHERE status = 'pending'`
	if err := r.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count withdrawals: %w", err)
	}

	query := `
		SELECT ` + withdrawalColumns + `
		FROM withdrawals
		WHERE status = 'pending'
		ORDER BY requested_at ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	defer rows.Close()

	list, err := scanWithdrawals(rows)
	if err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func scanWithdrawals(rows pgx.Rows) ([]*Withdrawal, error) {
	list := make([]*Withdrawal, 0)
	for rows.Next() {
		w := &Withdrawal{}
		err := rows.Scan(&w.ID, &w.UserID, &w.Amount, &w.Status, &w.RequestedAt, &w.CreatedAt, &w.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal: %w", err)
		}
		list = append(list, w)
	}
	return list, nil
}

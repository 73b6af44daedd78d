package donations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sahana-dev/daansetu/internal/users"
)

// ErrNotFound is returned when the referenced donation does not exist
var ErrNotFound = errors.New("donation not found")

// ErrAlreadyFinalized is returned when a finalize targets a donation that
// has already left the pending state
var ErrAlreadyFinalized = errors.New("donation already finalized")

const donationColumns = `id, user_id, category, title, description, quantity, receiver,
	       status, credits, submitted_at, location, proof_photo_url, self_photo_url,
	       created_at, updated_at`

// pool is the subset of pgxpool.Pool the repository uses
type pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository handles donation data operations
type Repository struct {
	db pool
}

// Ensure the concrete repository satisfies the service's requirements.
var _ RepositoryInterface = (*Repository)(nil)

// NewRepository creates a new donations repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create persists a new donation in pending state
func (r *Repository) Create(ctx context.Context, donation *Donation) error {
	query := `
		INSERT INTO donations (
			id, user_id, category, title, description, quantity, receiver,
			status, credits, submitted_at, location, proof_photo_url, self_photo_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		donation.ID, donation.UserID, donation.Category, donation.Title,
		donation.Description, donation.Quantity, donation.Receiver,
		donation.Status, donation.Credits, donation.SubmittedAt,
		donation.Location, donation.ProofPhotoURL, donation.SelfPhotoURL,
	).Scan(&donation.CreatedAt, &donation.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}

	return nil
}

// GetByID retrieves a donation by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE id = $1`

	donation := &Donation{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&donation.ID, &donation.UserID, &donation.Category, &donation.Title,
		&donation.Description, &donation.Quantity, &donation.Receiver,
		&donation.Status, &donation.Credits, &donation.SubmittedAt,
		&donation.Location, &donation.ProofPhotoURL, &donation.SelfPhotoURL,
		&donation.CreatedAt, &donation.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get donation: %w", err)
	}

	return donation, nil
}

// Approve moves a pending donation to approved and credits the owner's
// ledger in one transaction. The status flip is conditional on the donation
// still being pending, so concurrent approvals cannot double-credit: the
// loser of the race sees ErrAlreadyFinalized.
func (r *Repository) Approve(ctx context.Context, id uuid.UUID) (*Donation, *users.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	updateQuery := `
		UPDATE donations
		SET status = 'approved', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + donationColumns

	donation := &Donation{}
	err = tx.QueryRow(ctx, updateQuery, id).Scan(
		&donation.ID, &donation.UserID, &donation.Category, &donation.Title,
		&donation.Description, &donation.Quantity, &donation.Receiver,
		&donation.Status, &donation.Credits, &donation.SubmittedAt,
		&donation.Location, &donation.ProofPhotoURL, &donation.SelfPhotoURL,
		&donation.CreatedAt, &donation.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, r.finalizeFailure(ctx, tx, id)
		}
		return nil, nil, fmt.Errorf("failed to approve donation: %w", err)
	}

	ledgerQuery := `
		UPDATE users
		SET total_credits = total_credits + $2,
		    lifetime_credits = lifetime_credits + $2,
		    withdrawable_credits = withdrawable_credits + $2,
		    total_donations = total_donations + 1,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, email, phone, password_hash, role,
		          total_credits, lifetime_credits, withdrawable_credits, total_donations,
		          created_at, updated_at
	`

	user := &users.User{}
	err = tx.QueryRow(ctx, ledgerQuery, donation.UserID, donation.Credits).Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash, &user.Role,
		&user.TotalCredits, &user.LifetimeCredits, &user.WithdrawableCredits, &user.TotalDonations,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to credit user ledger: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit approval: %w", err)
	}

	return donation, user, nil
}

// Reject moves a pending donation to rejected. No ledger effect.
func (r *Repository) Reject(ctx context.Context, id uuid.UUID) (*Donation, error) {
	query := `
		UPDATE donations
		SET status = 'rejected', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + donationColumns

	donation := &Donation{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&donation.ID, &donation.UserID, &donation.Category, &donation.Title,
		&donation.Description, &donation.Quantity, &donation.Receiver,
		&donation.Status, &donation.Credits, &donation.SubmittedAt,
		&donation.Location, &donation.ProofPhotoURL, &donation.SelfPhotoURL,
		&donation.CreatedAt, &donation.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.finalizeFailure(ctx, r.db, id)
		}
		return nil, fmt.Errorf("failed to reject donation: %w", err)
	}

	return donation, nil
}

// ListByUser retrieves a user's donations, newest first, with total count
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Donation, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM donations WHERE user_id = $1`
	if err := r.db.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count donations: %w", err)
	}

	query := `
		SELECT ` + donationColumns + `
		FROM donations
		WHERE user_id = $1
		ORDER BY submitted_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list donations: %w", err)
	}
	defer rows.Close()

	list, err := scanDonations(rows)
	if err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// ListByStatus retrieves donations in a given state, oldest first so admins
// work the queue in submission order, with total count
func (r *Repository) ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Donation, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM donations WHERE status = $1`
	if err := r.db.QueryRow(ctx, countQuery, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count donations: %w", err)
	}

	query := `
		SELECT ` + donationColumns + `
		FROM donations
		WHERE status = $1
		ORDER BY submitted_at ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list donations: %w", err)
	}
	defer rows.Close()

	list, err := scanDonations(rows)
	if err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// queryRower is satisfied by both the pool and a transaction
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// finalizeFailure distinguishes a missing donation from one that has
// already left the pending state
func (r *Repository) finalizeFailure(ctx context.Context, q queryRower, id uuid.UUID) error {
	var status string
	err := q.QueryRow(ctx, `SELECT status FROM donations WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to check donation status: %w", err)
	}
	return ErrAlreadyFinalized
}

func scanDonations(rows pgx.Rows) ([]*Donation, error) {
	list := make([]*Donation, 0)
	for rows.Next() {
		donation := &Donation{}
		err := rows.Scan(
			&donation.ID, &donation.UserID, &donation.Category, &donation.Title,
			&donation.Description, &donation.Quantity, &donation.Receiver,
			&donation.Status, &donation.Credits, &donation.SubmittedAt,
			&donation.Location, &donation.ProofPhotoURL, &donation.SelfPhotoURL,
			&donation.CreatedAt, &donation.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan donation: %w", err)
		}
		list = append(list, donation)
	}
	return list, nil
}

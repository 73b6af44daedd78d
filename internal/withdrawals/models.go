package withdrawals

import (
	"time"

	"github.com/google/uuid"
)

// Status is the withdrawal state. Pending is the only initial state;
// processed and rejected are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
	StatusRejected  Status = "rejected"
)

// Withdrawal represents a cash-out request against withdrawable credits.
// The debit happens at request time, not at processing time.
type Withdrawal struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Amount      int       `json:"amount" db:"amount"`
	Status      Status    `json:"status" db:"status"`
	RequestedAt time.Time `json:"requested_at" db:"requested_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// RequestWithdrawalRequest is the API request for a cash-out
type RequestWithdrawalRequest struct {
	Amount int `json:"amount" binding:"required,gt=0"`
}

// ProcessWithdrawalRequest is the API request for the admin status change
type ProcessWithdrawalRequest struct {
	Status string `json:"status" binding:"required,withdrawal_status"`
}

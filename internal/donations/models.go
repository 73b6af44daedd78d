package donations

import (
	"time"

	"github.com/google/uuid"

	"github.com/sahana-dev/daansetu/internal/fraud"
)

// Category is the donation category, which decides the credit award
type Category string

const (
	CategoryFood    Category = "food"
	CategoryBlood   Category = "blood"
	CategoryClothes Category = "clothes"
	CategoryBooks   Category = "books"
	CategoryOther   Category = "other"
)

// Status is the donation lifecycle state. Pending is the only initial
// state; approved and rejected are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Donation represents one submitted proof-of-contribution. Credits are
// fixed at creation and never recalculated; approval moves the owner's
// ledger, not this record's credits.
type Donation struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	Category      Category  `json:"category" db:"category"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	Quantity      string    `json:"quantity" db:"quantity"`
	Receiver      *string   `json:"receiver,omitempty" db:"receiver"`
	Status        Status    `json:"status" db:"status"`
	Credits       int       `json:"credits" db:"credits"`
	SubmittedAt   time.Time `json:"submitted_at" db:"submitted_at"`
	Location      string    `json:"location" db:"location"` // "lat,lng" coordinate string
	ProofPhotoURL string    `json:"proof_photo_url" db:"proof_photo_url"`
	SelfPhotoURL  string    `json:"self_photo_url" db:"self_photo_url"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CreateDonationRequest is the API request for submitting a donation
type CreateDonationRequest struct {
	Category      string                 `json:"category" binding:"required"`
	Title         string                 `json:"title" binding:"required,max=200"`
	Description   string                 `json:"description" binding:"required"`
	Quantity      string                 `json:"quantity" binding:"required,max=100"`
	Receiver      *string                `json:"receiver,omitempty"`
	ProofPhotoURL string                 `json:"proof_photo_url" binding:"required"`
	SelfPhotoURL  string                 `json:"self_photo_url" binding:"required"`
	Platform      string                 `json:"platform" binding:"omitempty,platform"`
	Location      *fraud.LocationReading `json:"location"`

	// AcknowledgeWarning lets the submitter proceed past a low/medium
	// fraud warning. High-risk submissions cannot be acknowledged.
	AcknowledgeWarning bool `json:"acknowledge_warning"`
}

// FinalizeRequest is the API request for approving or rejecting a donation
type FinalizeRequest struct {
	Status string `json:"status" binding:"required,donation_status"`
}

// CreateResult is the outcome of a submission attempt
type CreateResult struct {
	Donation *Donation         `json:"donation,omitempty"`
	Fraud    *fraud.Evaluation `json:"fraud,omitempty"`

	// Blocked is set when the risk is high: the submission is refused and
	// nothing is recorded.
	Blocked bool `json:"blocked,omitempty"`

	// RequiresAcknowledgement is set when the risk is low or medium and the
	// submitter has not confirmed; nothing is recorded until they do.
	RequiresAcknowledgement bool `json:"requires_acknowledgement,omitempty"`
}

package donations

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sahana-dev/daansetu/internal/fraud"
	"github.com/sahana-dev/daansetu/internal/users"
	"github.com/sahana-dev/daansetu/pkg/common"
	"github.com/sahana-dev/daansetu/pkg/logger"
	"github.com/sahana-dev/daansetu/pkg/security"
)

// DetectorInterface is the fraud detector surface the service needs
type DetectorInterface interface {
	Evaluate(ctx context.Context, candidate *fraud.Candidate) *fraud.Evaluation
}

// Service owns the donation lifecycle: submission with fraud screening,
// and the pending -> approved/rejected transition with its ledger effect
type Service struct {
	repo     RepositoryInterface
	detector DetectorInterface
	credits  *CreditCalculator
	history  HistoryInvalidator
}

// NewService creates a new donations service. history may be nil when no
// cache sits in front of the fraud history.
func NewService(repo RepositoryInterface, detector DetectorInterface, credits *CreditCalculator, history HistoryInvalidator) *Service {
	return &Service{
		repo:     repo,
		detector: detector,
		credits:  credits,
		history:  history,
	}
}

// Create screens a submission and, when allowed to proceed, persists it as
// a pending donation with its credit award fixed at creation.
//
// Policy on the fraud verdict: high risk blocks the submission outright;
// low or medium risk requires the submitter to acknowledge the warning
// before anything is recorded; a clean result proceeds silently. History
// only ever gains entries for submissions that were actually recorded.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateDonationRequest) (*CreateResult, error) {
	submittedAt := time.Now()

	title := security.NormalizeWhitespace(security.SanitizeString(req.Title))
	description := security.SanitizeString(req.Description)

	platform := fraud.Platform(req.Platform)
	if platform == "" {
		platform = fraud.PlatformMobile
	}

	eval := s.detector.Evaluate(ctx, &fraud.Candidate{
		UserID:      userID,
		Category:    req.Category,
		Description: description,
		Location:    req.Location,
		Platform:    platform,
		SubmittedAt: submittedAt,
	})

	if eval.IsFraudulent {
		if eval.RiskLevel.AtLeast(fraud.RiskHigh) {
			logger.WithContext(ctx).Warn("donation submission blocked",
				zap.String("user_id", userID.String()),
				zap.Strings("reasons", eval.Reasons))
			return &CreateResult{Fraud: eval, Blocked: true}, nil
		}
		if !req.AcknowledgeWarning {
			return &CreateResult{Fraud: eval, RequiresAcknowledgement: true}, nil
		}
	}

	location := ""
	if req.Location != nil {
		location = fraud.FormatGeoPoint(req.Location.Latitude, req.Location.Longitude)
	}

	donation := &Donation{
		ID:            uuid.New(),
		UserID:        userID,
		Category:      Category(req.Category),
		Title:         title,
		Description:   description,
		Quantity:      req.Quantity,
		Receiver:      req.Receiver,
		Status:        StatusPending,
		Credits:       s.credits.CreditsFor(Category(req.Category)),
		SubmittedAt:   submittedAt,
		Location:      location,
		ProofPhotoURL: req.ProofPhotoURL,
		SelfPhotoURL:  req.SelfPhotoURL,
	}

	if err := s.repo.Create(ctx, donation); err != nil {
		return nil, common.NewInternalError("failed to create donation", err)
	}

	// The recorded donation is now part of the user's rolling history
	if s.history != nil {
		s.history.Invalidate(ctx, userID)
	}

	logger.WithContext(ctx).Info("donation created",
		zap.String("donation_id", donation.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("category", string(donation.Category)),
		zap.Int("credits", donation.Credits))

	result := &CreateResult{Donation: donation}
	if eval.IsFraudulent {
		result.Fraud = eval
	}
	return result, nil
}

// FinalizeResult is the outcome of a finalize operation. User is the
// updated ledger snapshot and is only set on approval.
type FinalizeResult struct {
	Donation *Donation   `json:"donation"`
	User     *users.User `json:"user,omitempty"`
}

// Finalize moves a pending donation to a terminal state. Approval credits
// the owner's ledger atomically with the status flip; rejection changes
// only the donation.
func (s *Service) Finalize(ctx context.Context, donationID uuid.UUID, target string) (*FinalizeResult, error) {
	switch Status(target) {
	case StatusApproved:
		donation, user, err := s.repo.Approve(ctx, donationID)
		if err != nil {
			return nil, s.mapFinalizeError(err)
		}

		logger.WithContext(ctx).Info("donation approved",
			zap.String("donation_id", donation.ID.String()),
			zap.String("user_id", donation.UserID.String()),
			zap.Int("credits", donation.Credits),
			zap.Int("total_credits", user.TotalCredits))

		return &FinalizeResult{Donation: donation, User: user}, nil

	case StatusRejected:
		donation, err := s.repo.Reject(ctx, donationID)
		if err != nil {
			return nil, s.mapFinalizeError(err)
		}

		logger.WithContext(ctx).Info("donation rejected",
			zap.String("donation_id", donation.ID.String()),
			zap.String("user_id", donation.UserID.String()))

		return &FinalizeResult{Donation: donation}, nil

	default:
		return nil, common.NewBadRequestError("status must be approved or rejected", nil)
	}
}

// Get returns a donation, enforcing that non-admin callers only see their own
func (s *Service) Get(ctx context.Context, donationID, callerID uuid.UUID, callerIsAdmin bool) (*Donation, error) {
	donation, err := s.repo.GetByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, common.NewNotFoundError("donation not found")
		}
		return nil, common.NewInternalError("failed to get donation", err)
	}

	if !callerIsAdmin && donation.UserID != callerID {
		return nil, common.NewForbiddenError("not the donation owner")
	}

	return donation, nil
}

// ListForUser returns a user's own donations
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Donation, int64, error) {
	list, total, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, common.NewInternalError("failed to list donations", err)
	}
	return list, total, nil
}

// ListPending returns the admin review queue in submission order
func (s *Service) ListPending(ctx context.Context, limit, offset int) ([]*Donation, int64, error) {
	list, total, err := s.repo.ListByStatus(ctx, StatusPending, limit, offset)
	if err != nil {
		return nil, 0, common.NewInternalError("failed to list pending donations", err)
	}
	return list, total, nil
}

func (s *Service) mapFinalizeError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return common.NewNotFoundError("donation not found")
	case errors.Is(err, ErrAlreadyFinalized):
		return common.NewConflictError("donation already finalized")
	default:
		return common.NewInternalError("failed to finalize donation", err)
	}
}

package referral

import (
	"context"
	"errors"
	"fmt"

	"promopilot/internal/observability"
	"promopilot/internal/store"

	"github.com/google/uuid"
)

// AwarderStore defines the database operations required by the Awarder
type AwarderStore interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (store.User, error)
	CreditUserBalance(ctx context.Context, userID uuid.UUID, amount float64, source string, meta store.JSONB) error
}

// Awarder pays referral commission when a referred user is charged for a
// promotion run. A user without a referrer earns nobody anything.
type Awarder struct {
	store   AwarderStore
	percent float64
	logger  *observability.Logger
}

// New creates a commission awarder. percent is the commission share of the
// charged amount, e.g. 5 for 5%.
func New(store AwarderStore, percent float64, logger *observability.Logger) *Awarder {
	return &Awarder{
		store:   store,
		percent: percent,
		logger:  logger,
	}
}

// AwardCommission credits the charged user's referrer with a share of amount.
// Failure here never fails the charge; the caller logs and moves on.
func (a *Awarder) AwardCommission(ctx context.Context, userID, runID uuid.UUID, amount float64) error {
	if a.percent <= 0 || amount <= 0 {
		return nil
	}

	user, err := a.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load charged user: %w", err)
	}
	if user.ReferrerID == nil {
		return nil
	}

	commission := amount * a.percent / 100
	meta := store.JSONB{
		"run_id":      runID.String(),
		"referred_id": userID.String(),
		"percent":     a.percent,
	}
	if err := a.store.CreditUserBalance(ctx, *user.ReferrerID, commission, store.BalanceSourceReferralCommission, meta); err != nil {
		return fmt.Errorf("failed to credit referrer: %w", err)
	}

	a.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "referrer_id", Value: user.ReferrerID.String()},
		observability.Field{Key: "commission", Value: commission}),
		"referral commission awarded")
	return nil
}

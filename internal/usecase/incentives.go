package usecase

import (
	"context"
	"log/slog"

	"github.com/campuschain/ccms/internal/domain"
)

// incentives bundles the best-effort side effects shared by every workflow.
// Failures are recorded in the returned outcome and logged, never propagated;
// a reward or reputation outage must not fail a recorded participation.
type incentives struct {
	oracle  ReputationOracle
	rewards RewardLedger
}

func (i incentives) apply(ctx context.Context, walletAddress string, delta domain.ReputationScores, reward uint64) domain.SideEffects {

	var effects domain.SideEffects

	if walletAddress == "" {
		return effects
	}

	effects.Reputation.Attempted = true
	txid, err := i.oracle.AddScore(ctx, walletAddress, delta)
	if err != nil {
		effects.Reputation.Error = err.Error()
		slog.ErrorContext(
			ctx, "Reputation update failed",
			slog.String("error", err.Error()),
			slog.String("module", "incentives"),
		)
	} else {
		effects.Reputation.OK = true
		effects.Reputation.TxnID = txid
	}

	effects.Reward.Attempted = true
	txid, err = i.rewards.SendReward(ctx, walletAddress, reward)
	if err != nil {
		effects.Reward.Error = err.Error()
		slog.ErrorContext(
			ctx, "Reward transfer failed",
			slog.String("error", err.Error()),
			slog.String("module", "incentives"),
		)
	} else {
		effects.Reward.OK = true
		effects.Reward.TxnID = txid
	}

	return effects
}

// windowError maps a closed time window to the caller-facing reason.
func windowError(state domain.WindowState, what string) error {
	switch state {
	case domain.WindowNotStarted:
		return domain.ValidationError{Reason: what + " has not started yet"}
	case domain.WindowEnded:
		return domain.ValidationError{Reason: what + " has ended"}
	}
	return nil
}

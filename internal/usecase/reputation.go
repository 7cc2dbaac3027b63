package usecase

import (
	"context"

	"github.com/campuschain/ccms/internal/domain"
)

// ReputationDashboard combines the on-chain score dimensions with the token
// balance. Both reads are live; nothing here is cached or persisted locally.
type ReputationDashboard struct {
	WalletAddress string                  `json:"walletAddress"`
	Scores        domain.ReputationScores `json:"scores"`
	TokenBalance  uint64                  `json:"tokenBalance"`
}

type ReputationUsecase struct {
	oracle  ReputationOracle
	rewards RewardLedger
}

func NewReputationUsecase(oracle ReputationOracle, rewards RewardLedger) *ReputationUsecase {
	return &ReputationUsecase{oracle: oracle, rewards: rewards}
}

func (uc *ReputationUsecase) Scores(ctx context.Context, walletAddress string) (domain.ReputationScores, error) {
	if walletAddress == "" {
		return domain.ReputationScores{}, domain.ValidationError{Reason: "wallet address is required"}
	}
	return uc.oracle.GetScores(ctx, walletAddress)
}

func (uc *ReputationUsecase) Dashboard(ctx context.Context, walletAddress string) (ReputationDashboard, error) {

	scores, err := uc.Scores(ctx, walletAddress)
	if err != nil {
		return ReputationDashboard{}, err
	}

	balance, err := uc.rewards.Balance(ctx, walletAddress)
	if err != nil {
		return ReputationDashboard{}, err
	}

	return ReputationDashboard{
		WalletAddress: walletAddress,
		Scores:        scores,
		TokenBalance:  balance,
	}, nil
}

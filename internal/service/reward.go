package service

import (
	"context"

	"github.com/pkg/errors"
)

// RewardService transfers the campus credit token from the deployer
// account. With no asset id configured every transfer is a no-op.
type RewardService struct {
	caller  LedgerCaller
	assetID uint64
}

func NewRewardService(caller LedgerCaller, assetID uint64) *RewardService {
	return &RewardService{caller: caller, assetID: assetID}
}

func (s *RewardService) Enabled() bool {
	return s.assetID != 0 && s.caller.HasSigner()
}

// SendReward transfers amount tokens to the recipient. The recipient must
// already be opted in to the asset; an un-opted-in recipient surfaces as a
// broadcast error.
func (s *RewardService) SendReward(ctx context.Context, recipient string, amount uint64) (string, error) {
	ctx, span := tracer.Start(ctx, "Reward.Service.SendReward")
	defer span.End()

	if !s.Enabled() {
		return "", nil
	}

	confirmed, err := s.caller.TransferAsset(ctx, s.assetID, recipient, amount)
	if err != nil {
		span.RecordError(err)
		return "", errors.Wrap(err, "reward transfer")
	}
	return confirmed.TxnID, nil
}

// Balance reports the recipient's holding of the campus credit token.
func (s *RewardService) Balance(ctx context.Context, address string) (uint64, error) {
	ctx, span := tracer.Start(ctx, "Reward.Service.Balance")
	defer span.End()

	if s.assetID == 0 {
		return 0, nil
	}

	balance, err := s.caller.AccountAssetBalance(ctx, address, s.assetID)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	return balance, nil
}

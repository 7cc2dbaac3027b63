package service

import (
	"context"
	"encoding/binary"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/campuschain/ccms/internal/domain"
	"github.com/campuschain/ccms/internal/infra/ledger"
)

var tracer = otel.Tracer("service")

// LedgerCaller is the slice of the ledger gateway the oracle and reward
// services consume.
type LedgerCaller interface {
	HasSigner() bool
	CallApplication(ctx context.Context, appID uint64, appArgs [][]byte, accounts []string) (domain.ConfirmedTxn, error)
	ReadApplicationState(ctx context.Context, appID uint64, account string) (*domain.AppState, error)
	TransferAsset(ctx context.Context, assetID uint64, recipient string, amount uint64) (domain.ConfirmedTxn, error)
	AccountAssetBalance(ctx context.Context, address string, assetID uint64) (uint64, error)
}

// updateScoreMethod is the fixed application-call signature the oracle
// invokes. The deployer account is the only authorized caller on-chain.
const updateScoreMethod = "update_user_score(account,uint64,uint64,uint64,uint64)uint64"

// Local-state keys written by the reputation application.
const (
	keyTotal         = "rep_score"
	keyAttendance    = "att_score"
	keyVoting        = "vot_score"
	keyFeedback      = "fdb_score"
	keyCertification = "cer_score"
)

// ReputationService is the trusted oracle for the per-user on-chain score.
// Scores are never mirrored into the relational store; every read is a live
// network round trip. With no application id configured the service is a
// no-op returning zeroes.
type ReputationService struct {
	caller LedgerCaller
	appID  uint64
}

func NewReputationService(caller LedgerCaller, appID uint64) *ReputationService {
	return &ReputationService{caller: caller, appID: appID}
}

func (s *ReputationService) Enabled() bool {
	return s.appID != 0 && s.caller.HasSigner()
}

// AddScore adds the given deltas to the user's on-chain dimensions and
// returns the transaction id.
func (s *ReputationService) AddScore(ctx context.Context, walletAddress string, delta domain.ReputationScores) (string, error) {
	ctx, span := tracer.Start(ctx, "Reputation.Service.AddScore")
	defer span.End()

	if !s.Enabled() {
		return "", nil
	}

	appArgs := [][]byte{
		ledger.MethodSelector(updateScoreMethod),
		uint64Arg(delta.Attendance),
		uint64Arg(delta.Voting),
		uint64Arg(delta.Feedback),
		uint64Arg(delta.Certification),
	}

	confirmed, err := s.caller.CallApplication(ctx, s.appID, appArgs, []string{walletAddress})
	if err != nil {
		span.RecordError(err)
		return "", errors.Wrap(err, "reputation update")
	}
	return confirmed.TxnID, nil
}

// GetScores reads the user's local state from the reputation application.
// Missing state (not opted in, lookup failure, oracle disabled) reads as
// all-zero.
func (s *ReputationService) GetScores(ctx context.Context, walletAddress string) (domain.ReputationScores, error) {
	ctx, span := tracer.Start(ctx, "Reputation.Service.GetScores")
	defer span.End()

	if s.appID == 0 {
		return domain.ReputationScores{}, nil
	}

	state, err := s.caller.ReadApplicationState(ctx, s.appID, walletAddress)
	if err != nil {
		span.RecordError(err)
		return domain.ReputationScores{}, err
	}

	return domain.ReputationScores{
		Total:         state.Uint(keyTotal),
		Attendance:    state.Uint(keyAttendance),
		Voting:        state.Uint(keyVoting),
		Feedback:      state.Uint(keyFeedback),
		Certification: state.Uint(keyCertification),
	}, nil
}

func uint64Arg(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

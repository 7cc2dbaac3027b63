package ledger

import (
	"context"
	"crypto/sha512"
	"encoding/base64"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/pkg/errors"

	"github.com/campuschain/ccms/internal/domain"
)

type pendingTxn struct {
	ConfirmedRound uint64
	PoolError      string
	ApplicationID  uint64
	AssetID        uint64
}

// confirmationNode is the slice of the node API the poll loop needs.
type confirmationNode interface {
	LastRound(ctx context.Context) (uint64, error)
	Pending(ctx context.Context, txnID string) (pendingTxn, error)
	WaitAfter(ctx context.Context, round uint64) error
}

// waitForConfirmation polls for a transaction to confirm, bounded by
// waitRounds. A pool rejection surfaces as ErrTxnInvalid; exhausting the
// round budget surfaces as ErrConfirmationTimeout. The two are distinct so
// callers can tell "rejected" from "give it more time".
func waitForConfirmation(ctx context.Context, node confirmationNode, txnID string, waitRounds uint64) (domain.ConfirmedTxn, error) {
	lastRound, err := node.LastRound(ctx)
	if err != nil {
		return domain.ConfirmedTxn{}, errors.Wrap(domain.ErrLedgerUnreachable, err.Error())
	}
	deadline := lastRound + waitRounds

	for round := lastRound; round <= deadline; round++ {
		if err := ctx.Err(); err != nil {
			return domain.ConfirmedTxn{}, err
		}

		pending, err := node.Pending(ctx, txnID)
		if err != nil {
			// transient poll failure: keep waiting, the broadcast already
			// happened and must not be repeated
			if waitErr := node.WaitAfter(ctx, round); waitErr != nil {
				return domain.ConfirmedTxn{}, errors.Wrap(domain.ErrLedgerUnreachable, waitErr.Error())
			}
			continue
		}

		if pending.PoolError != "" {
			return domain.ConfirmedTxn{}, errors.Wrap(domain.ErrTxnInvalid, pending.PoolError)
		}
		if pending.ConfirmedRound > 0 {
			return domain.ConfirmedTxn{
				TxnID:          txnID,
				ConfirmedRound: pending.ConfirmedRound,
				ApplicationID:  pending.ApplicationID,
				AssetID:        pending.AssetID,
			}, nil
		}

		if err := node.WaitAfter(ctx, round); err != nil {
			return domain.ConfirmedTxn{}, errors.Wrap(domain.ErrLedgerUnreachable, err.Error())
		}
	}

	return domain.ConfirmedTxn{}, domain.ErrConfirmationTimeout
}

// verdict classifies an indexer lookup against the expected sender.
func verdict(sender, expectedSender string, confirmedRound uint64) domain.TxnVerification {
	v := domain.TxnVerification{Sender: sender, Round: confirmedRound}
	if confirmedRound == 0 {
		v.Reason = "transaction not yet confirmed"
		return v
	}
	if expectedSender != "" && sender != expectedSender {
		v.Reason = "sender mismatch"
		return v
	}
	v.Valid = true
	return v
}

// decodeTealState converts the node's untyped key-value payload into the
// internal typed structure, once, at the gateway edge.
func decodeTealState(kvs []models.TealKeyValue) *domain.AppState {
	state := &domain.AppState{
		Uints: map[string]uint64{},
		Bytes: map[string][]byte{},
	}
	for _, kv := range kvs {
		key, err := base64.StdEncoding.DecodeString(kv.Key)
		if err != nil {
			continue
		}
		switch kv.Value.Type {
		case 1: // bytes
			value, err := base64.StdEncoding.DecodeString(kv.Value.Bytes)
			if err != nil {
				continue
			}
			state.Bytes[string(key)] = value
		case 2: // uint
			state.Uints[string(key)] = kv.Value.Uint
		}
	}
	return state
}

// MethodSelector derives the 4-byte ARC-4 selector for an ABI method
// signature.
func MethodSelector(signature string) []byte {
	sum := sha512.Sum512_256([]byte(signature))
	return sum[:4]
}

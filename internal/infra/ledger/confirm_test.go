package ledger

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"

	"github.com/campuschain/ccms/internal/domain"
)

type fakeNode struct {
	lastRound   uint64
	confirmAt   int // poll attempt on which the txn confirms (1-based, 0 = never)
	poolError   string
	polls       int
	waits       int
	pendingErrs int // number of leading poll attempts returning an error
}

func (n *fakeNode) LastRound(ctx context.Context) (uint64, error) {
	return n.lastRound, nil
}

func (n *fakeNode) Pending(ctx context.Context, txnID string) (pendingTxn, error) {
	n.polls++
	if n.polls <= n.pendingErrs {
		return pendingTxn{}, errors.New("transient poll failure")
	}
	if n.poolError != "" {
		return pendingTxn{PoolError: n.poolError}, nil
	}
	if n.confirmAt > 0 && n.polls >= n.confirmAt {
		return pendingTxn{ConfirmedRound: n.lastRound + uint64(n.polls), ApplicationID: 77}, nil
	}
	return pendingTxn{}, nil
}

func (n *fakeNode) WaitAfter(ctx context.Context, round uint64) error {
	n.waits++
	return nil
}

func TestWaitForConfirmationSucceeds(t *testing.T) {
	node := &fakeNode{lastRound: 100, confirmAt: 3}

	confirmed, err := waitForConfirmation(context.Background(), node, "TXN", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if confirmed.TxnID != "TXN" || confirmed.ConfirmedRound == 0 {
		t.Fatalf("unexpected result: %+v", confirmed)
	}
	if confirmed.ApplicationID != 77 {
		t.Fatalf("application id not propagated: %+v", confirmed)
	}
}

func TestWaitForConfirmationBounded(t *testing.T) {
	node := &fakeNode{lastRound: 100, confirmAt: 0}

	_, err := waitForConfirmation(context.Background(), node, "TXN", 5)
	if !errors.Is(err, domain.ErrConfirmationTimeout) {
		t.Fatalf("expected confirmation timeout, got %v", err)
	}
	if node.polls > 7 {
		t.Fatalf("poll loop not bounded: %d polls", node.polls)
	}
}

func TestWaitForConfirmationPoolErrorIsInvalid(t *testing.T) {
	node := &fakeNode{lastRound: 100, poolError: "transaction rejected"}

	_, err := waitForConfirmation(context.Background(), node, "TXN", 5)
	if !errors.Is(err, domain.ErrTxnInvalid) {
		t.Fatalf("expected ErrTxnInvalid, got %v", err)
	}
	if errors.Is(err, domain.ErrConfirmationTimeout) {
		t.Fatal("pool rejection must be distinct from timeout")
	}
}

func TestWaitForConfirmationToleratesTransientPollErrors(t *testing.T) {
	node := &fakeNode{lastRound: 100, confirmAt: 3, pendingErrs: 2}

	confirmed, err := waitForConfirmation(context.Background(), node, "TXN", 10)
	if err != nil {
		t.Fatalf("unexpected error after transient failures: %v", err)
	}
	if confirmed.ConfirmedRound == 0 {
		t.Fatalf("expected confirmation, got %+v", confirmed)
	}
}

func TestWaitForConfirmationRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	node := &fakeNode{lastRound: 100, confirmAt: 0}
	_, err := waitForConfirmation(ctx, node, "TXN", 5)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestVerdict(t *testing.T) {
	if v := verdict("SENDER", "SENDER", 42); !v.Valid {
		t.Fatalf("expected valid verdict, got %+v", v)
	}
	if v := verdict("SENDER", "OTHER", 42); v.Valid || v.Reason != "sender mismatch" {
		t.Fatalf("expected sender mismatch, got %+v", v)
	}
	if v := verdict("SENDER", "SENDER", 0); v.Valid || v.Reason != "transaction not yet confirmed" {
		t.Fatalf("expected unconfirmed verdict, got %+v", v)
	}
	// expectedSender omitted: only confirmation is checked
	if v := verdict("SENDER", "", 42); !v.Valid {
		t.Fatalf("expected valid verdict without sender check, got %+v", v)
	}
}

func TestDecodeTealState(t *testing.T) {
	b64 := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

	kvs := []models.TealKeyValue{
		{Key: b64("att_score"), Value: models.TealValue{Type: 2, Uint: 12}},
		{Key: b64("event_id"), Value: models.TealValue{Type: 1, Bytes: b64("EVT-1")}},
		{Key: "!!!not-base64!!!", Value: models.TealValue{Type: 2, Uint: 99}},
	}

	state := decodeTealState(kvs)
	if state.Uint("att_score") != 12 {
		t.Fatalf("uint not decoded: %+v", state)
	}
	if string(state.Bytes["event_id"]) != "EVT-1" {
		t.Fatalf("bytes not decoded: %+v", state)
	}
	if _, ok := state.Uints["!!!not-base64!!!"]; ok {
		t.Fatal("malformed key should be skipped")
	}

	// nil receiver reads as zero
	var nilState *domain.AppState
	if nilState.Uint("anything") != 0 {
		t.Fatal("nil state must read as zero")
	}
}

func TestMethodSelectorStable(t *testing.T) {
	a := MethodSelector("update_user_score(account,uint64,uint64,uint64,uint64)uint64")
	b := MethodSelector("update_user_score(account,uint64,uint64,uint64,uint64)uint64")
	if len(a) != 4 || string(a) != string(b) {
		t.Fatalf("selector not stable 4 bytes: %x vs %x", a, b)
	}
	c := MethodSelector("other()void")
	if string(a) == string(c) {
		t.Fatal("different signatures must differ")
	}
}

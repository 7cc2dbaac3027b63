package ccms

import (
	"encoding/hex"
	"testing"
)

func TestHashIdentityDeterministic(t *testing.T) {
	addr := "HZ57J3K46JIJXILONBBZOHX6BKPXEM2VVXNRFSUED6DKFD5ZD24PMJ3MVA"

	a := HashIdentity(addr, DefaultSalt)
	b := HashIdentity(addr, DefaultSalt)
	if a != b {
		t.Fatalf("same input produced different digests: %s vs %s", a, b)
	}

	if _, err := hex.DecodeString(a); err != nil || len(a) != 64 {
		t.Fatalf("digest is not 64 hex chars: %q", a)
	}
}

func TestHashIdentityDistinct(t *testing.T) {
	inputs := []string{
		"HZ57J3K46JIJXILONBBZOHX6BKPXEM2VVXNRFSUED6DKFD5ZD24PMJ3MVA",
		"HZ57J3K46JIJXILONBBZOHX6BKPXEM2VVXNRFSUED6DKFD5ZD24PMJ3MVB",
		"alice",
		"alice ",
		"",
	}
	seen := map[string]string{}
	for _, in := range inputs {
		d := HashIdentity(in, DefaultSalt)
		if prev, dup := seen[d]; dup {
			t.Fatalf("collision between %q and %q", prev, in)
		}
		seen[d] = in
	}
}

func TestHashIdentitySaltChangesDigest(t *testing.T) {
	if HashIdentity("alice", "salt-a") == HashIdentity("alice", "salt-b") {
		t.Fatal("different salts produced the same digest")
	}
}

func TestVerifyHash(t *testing.T) {
	d := HashIdentity("alice", DefaultSalt)

	if !VerifyHash("alice", d, DefaultSalt) {
		t.Fatal("expected verification to pass")
	}
	if VerifyHash("bob", d, DefaultSalt) {
		t.Fatal("expected verification to fail for a different identity")
	}
	if VerifyHash("alice", d, "other-salt") {
		t.Fatal("expected verification to fail with a different salt")
	}
}

func TestVoteCommitmentInputSensitivity(t *testing.T) {
	base := VoteCommitment("option-1", "wallet", "nonce")

	variants := []string{
		VoteCommitment("option-2", "wallet", "nonce"),
		VoteCommitment("option-1", "wallet2", "nonce"),
		VoteCommitment("option-1", "wallet", "nonce2"),
	}
	for i, v := range variants {
		if v == base {
			t.Fatalf("variant %d did not change the commitment", i)
		}
	}

	if VoteCommitment("option-1", "wallet", "nonce") != base {
		t.Fatal("commitment is not deterministic")
	}
}

func TestExplorerURLs(t *testing.T) {
	e := Explorer{Base: "https://testnet.explorer.perawallet.app"}

	if got := e.TxnURL("TXNID"); got != "https://testnet.explorer.perawallet.app/tx/TXNID" {
		t.Fatalf("unexpected txn url: %s", got)
	}
	if got := e.AssetURL(123); got != "https://testnet.explorer.perawallet.app/asset/123" {
		t.Fatalf("unexpected asset url: %s", got)
	}
	if got := e.TxnURL(""); got != "" {
		t.Fatalf("empty txn id should yield empty url, got %s", got)
	}
	if got := (Explorer{}).TxnURL("TXNID"); got != "" {
		t.Fatalf("unset base should yield empty url, got %s", got)
	}
}

package domain

// ConfirmedTxn is the typed result of broadcasting a signed transaction and
// waiting for the network to confirm it.
type ConfirmedTxn struct {
	TxnID          string
	ConfirmedRound uint64
	ApplicationID  uint64
	AssetID        uint64
}

// TxnVerification is the result of looking a transaction up by id. A missing
// or unconfirmed transaction is a negative result, not an error.
type TxnVerification struct {
	Valid  bool
	Reason string
	Sender string
	Round  uint64
}

// AppState is a decoded key-value view of on-chain application state. Uints
// and byte values are kept separate; the gateway decodes the untyped node
// payload exactly once, at the edge.
type AppState struct {
	Uints map[string]uint64
	Bytes map[string][]byte
}

func (s *AppState) Uint(key string) uint64 {
	if s == nil {
		return 0
	}
	return s.Uints[key]
}

// ReputationScores is the per-user multi-dimensional score held in ledger
// application state. Never persisted in the relational store.
type ReputationScores struct {
	Total         uint64 `json:"total"`
	Attendance    uint64 `json:"attendance"`
	Voting        uint64 `json:"voting"`
	Feedback      uint64 `json:"feedback"`
	Certification uint64 `json:"certification"`
}

// SideEffectOutcome records how one best-effort side effect went. Failures
// carry the error text for observability; they never fail the request.
type SideEffectOutcome struct {
	Attempted bool   `json:"attempted"`
	OK        bool   `json:"ok"`
	TxnID     string `json:"txnId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SideEffects is the explicit outcome of the incentive layer for a workflow
// execution, returned so callers and tests can assert on it directly.
type SideEffects struct {
	Reputation SideEffectOutcome `json:"reputation"`
	Reward     SideEffectOutcome `json:"reward"`
}

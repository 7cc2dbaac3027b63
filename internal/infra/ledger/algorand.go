package ledger

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"os"
	"path/filepath"
	"time"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/indexer"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/campuschain/ccms/internal/config"
	"github.com/campuschain/ccms/internal/domain"
)

var tracer = otel.Tracer("ledger")

const paramsCacheKey = "suggested-params"

// Gateway is the single point of contact with the Algorand network. All
// privileged writes are signed by the deployer account; reads go to the node
// or the indexer. Suggested params are the only cached read.
type Gateway struct {
	algod      *algod.Client
	indexer    *indexer.Client
	deployer   crypto.Account
	hasSigner  bool
	waitRounds uint64
	tealDir    string
	params     *gocache.Cache
}

func NewGateway(cfg config.Ledger) (*Gateway, error) {
	algodClient, err := algod.MakeClient(cfg.AlgodServer, cfg.AlgodToken)
	if err != nil {
		return nil, errors.Wrap(err, "algod client")
	}

	indexerClient, err := indexer.MakeClient(cfg.IndexerServer, cfg.IndexerToken)
	if err != nil {
		return nil, errors.Wrap(err, "indexer client")
	}

	g := &Gateway{
		algod:      algodClient,
		indexer:    indexerClient,
		waitRounds: cfg.WaitRounds,
		tealDir:    cfg.TealDir,
		params:     gocache.New(2*time.Second, time.Minute),
	}

	if cfg.DeployerMnemonic != "" {
		sk, err := mnemonic.ToPrivateKey(cfg.DeployerMnemonic)
		if err != nil {
			return nil, errors.Wrap(err, "deployer mnemonic")
		}
		account, err := crypto.AccountFromPrivateKey(sk)
		if err != nil {
			return nil, errors.Wrap(err, "deployer account")
		}
		g.deployer = account
		g.hasSigner = true
	}

	return g, nil
}

// HasSigner reports whether a deployer account is configured. Without one
// the oracle/reward writes soft-disable.
func (g *Gateway) HasSigner() bool {
	return g.hasSigner
}

func (g *Gateway) DeployerAddress() string {
	if !g.hasSigner {
		return ""
	}
	return g.deployer.Address.String()
}

// Health distinguishes "ledger unreachable" at the health-check boundary.
func (g *Gateway) Health(ctx context.Context) error {
	_, err := g.algod.Status().Do(ctx)
	if err != nil {
		return errors.Wrap(domain.ErrLedgerUnreachable, err.Error())
	}
	return nil
}

func (g *Gateway) suggestedParams(ctx context.Context) (types.SuggestedParams, error) {
	if cached, ok := g.params.Get(paramsCacheKey); ok {
		return cached.(types.SuggestedParams), nil
	}
	sp, err := g.algod.SuggestedParams().Do(ctx)
	if err != nil {
		return types.SuggestedParams{}, errors.Wrap(domain.ErrLedgerUnreachable, err.Error())
	}
	g.params.SetDefault(paramsCacheKey, sp)
	return sp, nil
}

// Submit broadcasts a pre-signed transaction and waits for confirmation.
// The broadcast happens exactly once; only the status poll retries, since
// re-broadcasting an already-submitted transaction may be rejected as a
// duplicate.
func (g *Gateway) Submit(ctx context.Context, signed []byte) (domain.ConfirmedTxn, error) {
	ctx, span := tracer.Start(ctx, "Ledger.Gateway.Submit")
	defer span.End()

	txnID, err := g.algod.SendRawTransaction(signed).Do(ctx)
	if err != nil {
		span.RecordError(err)
		return domain.ConfirmedTxn{}, errors.Wrap(err, "broadcast failed")
	}

	confirmed, err := waitForConfirmation(ctx, algodNode{g.algod}, txnID, g.waitRounds)
	if err != nil {
		span.RecordError(err)
		return domain.ConfirmedTxn{}, err
	}
	return confirmed, nil
}

// VerifyTransaction looks a transaction up by id and checks the sender.
// Lookup failures (including not-found) yield a negative result, never an
// error: public verification endpoints must not 500 on unknown ids.
func (g *Gateway) VerifyTransaction(ctx context.Context, txnID, expectedSender string) (domain.TxnVerification, error) {
	ctx, span := tracer.Start(ctx, "Ledger.Gateway.VerifyTransaction")
	defer span.End()

	resp, err := g.indexer.LookupTransaction(txnID).Do(ctx)
	if err != nil {
		span.RecordError(err)
		return domain.TxnVerification{Valid: false, Reason: "transaction not found"}, nil
	}

	return verdict(resp.Transaction.Sender, expectedSender, resp.Transaction.ConfirmedRound), nil
}

// ReadApplicationState reads global state (account == "") or per-account
// local state. Returns nil on lookup failure rather than an error; state
// reads sit on non-critical dashboard paths.
func (g *Gateway) ReadApplicationState(ctx context.Context, appID uint64, account string) (*domain.AppState, error) {
	ctx, span := tracer.Start(ctx, "Ledger.Gateway.ReadApplicationState")
	defer span.End()

	if account == "" {
		app, err := g.algod.GetApplicationByID(appID).Do(ctx)
		if err != nil {
			span.RecordError(err)
			return nil, nil
		}
		return decodeTealState(app.Params.GlobalState), nil
	}

	// A 404 here means the account never opted in.
	info, err := g.algod.AccountApplicationInformation(account, appID).Do(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, nil
	}
	return decodeTealState(info.AppLocalState.KeyValue), nil
}

// CompileProgram delegates to the node's TEAL compiler endpoint.
func (g *Gateway) CompileProgram(ctx context.Context, source []byte) ([]byte, error) {
	result, err := g.algod.TealCompile(source).Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "teal compile")
	}
	return base64.StdEncoding.DecodeString(result.Result)
}

// CallApplication submits a NoOp application call signed by the deployer.
func (g *Gateway) CallApplication(ctx context.Context, appID uint64, appArgs [][]byte, accounts []string) (domain.ConfirmedTxn, error) {
	if !g.hasSigner {
		return domain.ConfirmedTxn{}, errors.New("no deployer account configured")
	}

	sp, err := g.suggestedParams(ctx)
	if err != nil {
		return domain.ConfirmedTxn{}, err
	}

	txn, err := transaction.MakeApplicationNoOpTx(
		appID, appArgs, accounts, nil, nil,
		sp, g.deployer.Address, nil, types.Digest{}, [32]byte{}, types.Address{},
	)
	if err != nil {
		return domain.ConfirmedTxn{}, errors.Wrap(err, "build app call")
	}

	return g.signAndSubmit(ctx, txn)
}

// TransferAsset moves amount units of the given asset from the deployer to
// recipient.
func (g *Gateway) TransferAsset(ctx context.Context, assetID uint64, recipient string, amount uint64) (domain.ConfirmedTxn, error) {
	if !g.hasSigner {
		return domain.ConfirmedTxn{}, errors.New("no deployer account configured")
	}

	sp, err := g.suggestedParams(ctx)
	if err != nil {
		return domain.ConfirmedTxn{}, err
	}

	txn, err := transaction.MakeAssetTransferTxn(
		g.deployer.Address.String(), recipient, amount, nil, sp, "", assetID,
	)
	if err != nil {
		return domain.ConfirmedTxn{}, errors.Wrap(err, "build asset transfer")
	}

	return g.signAndSubmit(ctx, txn)
}

// AccountAssetBalance reads the holding of one asset for an account. A
// missing holding (not opted in) is a zero balance.
func (g *Gateway) AccountAssetBalance(ctx context.Context, address string, assetID uint64) (uint64, error) {
	info, err := g.algod.AccountInformation(address).Do(ctx)
	if err != nil {
		return 0, errors.Wrap(domain.ErrLedgerUnreachable, err.Error())
	}
	for _, holding := range info.Assets {
		if holding.AssetId == assetID {
			return holding.Amount, nil
		}
	}
	return 0, nil
}

// DeployAttendanceApp compiles the attendance TEAL programs and creates the
// application with the event window baked into its global state.
func (g *Gateway) DeployAttendanceApp(ctx context.Context, eventID string, start, end time.Time) (uint64, error) {
	ctx, span := tracer.Start(ctx, "Ledger.Gateway.DeployAttendanceApp")
	defer span.End()

	if !g.hasSigner {
		return 0, errors.New("no deployer account configured")
	}

	approval, err := g.compileFile(ctx, "attendance_approval.teal")
	if err != nil {
		return 0, err
	}
	clear, err := g.compileFile(ctx, "clear_state.teal")
	if err != nil {
		return 0, err
	}

	sp, err := g.suggestedParams(ctx)
	if err != nil {
		return 0, err
	}

	appArgs := [][]byte{
		[]byte(eventID),
		encodeUint64(uint64(start.Unix())),
		encodeUint64(uint64(end.Unix())),
	}

	txn, err := transaction.MakeApplicationCreateTx(
		false, approval, clear,
		types.StateSchema{NumUint: 4, NumByteSlice: 3},
		types.StateSchema{NumUint: 1},
		appArgs, nil, nil, nil,
		sp, g.deployer.Address, nil, types.Digest{}, [32]byte{}, types.Address{},
	)
	if err != nil {
		return 0, errors.Wrap(err, "build app create")
	}

	confirmed, err := g.signAndSubmit(ctx, txn)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	return confirmed.ApplicationID, nil
}

func (g *Gateway) signAndSubmit(ctx context.Context, txn types.Transaction) (domain.ConfirmedTxn, error) {
	_, signed, err := crypto.SignTransaction(g.deployer.PrivateKey, txn)
	if err != nil {
		return domain.ConfirmedTxn{}, errors.Wrap(err, "sign transaction")
	}
	return g.Submit(ctx, signed)
}

func (g *Gateway) compileFile(ctx context.Context, name string) ([]byte, error) {
	source, err := os.ReadFile(filepath.Join(g.tealDir, name))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	return g.CompileProgram(ctx, source)
}

func encodeUint64(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

// algodNode adapts the algod client to the confirmation poll loop.
type algodNode struct {
	client *algod.Client
}

func (n algodNode) LastRound(ctx context.Context) (uint64, error) {
	status, err := n.client.Status().Do(ctx)
	if err != nil {
		return 0, err
	}
	return status.LastRound, nil
}

func (n algodNode) Pending(ctx context.Context, txnID string) (pendingTxn, error) {
	resp, _, err := n.client.PendingTransactionInformation(txnID).Do(ctx)
	if err != nil {
		return pendingTxn{}, err
	}
	return pendingTxn{
		ConfirmedRound: resp.ConfirmedRound,
		PoolError:      resp.PoolError,
		ApplicationID:  resp.ApplicationIndex,
		AssetID:        resp.AssetIndex,
	}, nil
}

func (n algodNode) WaitAfter(ctx context.Context, round uint64) error {
	_, err := n.client.StatusAfterBlock(round).Do(ctx)
	return err
}

package ccms

import "fmt"

// Explorer builds public block-explorer URLs for responses. The base is
// network-dependent (testnet vs mainnet) and injected from config.
type Explorer struct {
	Base string
}

func (e Explorer) TxnURL(txnID string) string {
	if txnID == "" || e.Base == "" {
		return ""
	}
	return fmt.Sprintf("%s/tx/%s", e.Base, txnID)
}

func (e Explorer) AssetURL(assetID uint64) string {
	if assetID == 0 || e.Base == "" {
		return ""
	}
	return fmt.Sprintf("%s/asset/%d", e.Base, assetID)
}

func (e Explorer) ApplicationURL(appID uint64) string {
	if appID == 0 || e.Base == "" {
		return ""
	}
	return fmt.Sprintf("%s/application/%d", e.Base, appID)
}

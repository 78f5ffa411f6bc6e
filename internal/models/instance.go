package models

import "strings"

// IndexName is the closed set of index symbols an Instance can be opened on.
type IndexName string

const (
	IndexNifty      IndexName = "NIFTY"
	IndexBankNifty  IndexName = "BANKNIFTY"
	IndexFinNifty   IndexName = "FINNIFTY"
	IndexMidcpNifty IndexName = "MIDCPNIFTY"
	IndexSensex     IndexName = "SENSEX"
	IndexBankex     IndexName = "BANKEX"
)

func (n IndexName) String() string { return string(n) }

func (n IndexName) Valid() bool {
	switch n {
	case IndexNifty, IndexBankNifty, IndexFinNifty, IndexMidcpNifty, IndexSensex, IndexBankex:
		return true
	default:
		return false
	}
}

func ParseIndexName(s string) (IndexName, bool) {
	n := IndexName(strings.ToUpper(strings.TrimSpace(s)))
	if !n.Valid() {
		return "", false
	}
	return n, true
}

// Instance groups the legs opened on one index and expiry.
type Instance struct {
	ID           string        `json:"id"`
	IndexName    IndexName     `json:"indexName"`
	Expiry       string        `json:"expiry"`
	LtpRange     float64       `json:"ltpRange"`
	TradeDetails []TradeDetail `json:"tradeDetails"`
}

// TradeDetail is one leg of an Instance.
type TradeDetail struct {
	ID         string  `json:"id"`
	InstanceID string  `json:"instanceId"`
	Qty        int64   `json:"qty"`
	CurrentQty int64   `json:"currentQty"`
	EntrySide  string  `json:"entrySide"`
	EntryType  string  `json:"entryType"`
	EntryPrice float64 `json:"entryPrice"`
	MTM        float64 `json:"mtm"`
}

// CloneInstances deep-copies the slice so callers can't alias store state.
func CloneInstances(in []Instance) []Instance {
	if in == nil {
		return nil
	}
	out := make([]Instance, len(in))
	for i, inst := range in {
		out[i] = inst
		if inst.TradeDetails != nil {
			out[i].TradeDetails = make([]TradeDetail, len(inst.TradeDetails))
			copy(out[i].TradeDetails, inst.TradeDetails)
		}
	}
	return out
}

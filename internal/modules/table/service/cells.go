package service

import (
	"strconv"
	"trade_desk/internal/models"
	columns "trade_desk/internal/modules/columns/service"
)

// Placeholder is shown for any column id the table doesn't know how to fill.
const Placeholder = "-"

// Tone tells the renderer how to colour an MTM cell.
type Tone string

const (
	ToneProfit Tone = "profit"
	ToneLoss   Tone = "loss"
)

func MTMTone(d models.TradeDetail) Tone {
	if d.MTM >= 0 {
		return ToneProfit
	}
	return ToneLoss
}

// Cells turns instances, trade details and joined values into display strings.
type Cells struct {
	fmt *Formatter
}

func NewCells(f *Formatter) *Cells {
	if f == nil {
		f = defaultFormatter
	}
	return &Cells{fmt: f}
}

// ResolveCell returns the display value of an instance column.
func (c *Cells) ResolveCell(columnID string, inst models.Instance, v Values) string {
	switch columnID {
	case columns.ColIndexName:
		return inst.IndexName.String()
	case columns.ColLtpSpot:
		return c.fmt.Number(v.LtpSpot)
	case columns.ColExpiry:
		return inst.Expiry
	case columns.ColLtpRange:
		return c.fmt.Number(inst.LtpRange)
	case columns.ColLowestValue:
		return c.fmt.Number(v.LowestValue)
	default:
		return Placeholder
	}
}

// ResolveDetailCell returns the display value of a trade detail column.
func (c *Cells) ResolveDetailCell(columnID string, d models.TradeDetail) string {
	switch columnID {
	case columns.ColQty:
		return strconv.FormatInt(d.Qty, 10)
	case columns.ColCurrentQty:
		return strconv.FormatInt(d.CurrentQty, 10)
	case columns.ColEntrySide:
		return d.EntrySide
	case columns.ColEntryType:
		return d.EntryType
	case columns.ColEntryPrice:
		return c.fmt.Number(d.EntryPrice)
	case columns.ColMTM:
		return c.fmt.Currency(d.MTM)
	default:
		return Placeholder
	}
}

var defaultCells = NewCells(nil)

// ResolveCell resolves with the default (INR) formatter.
func ResolveCell(columnID string, inst models.Instance, v Values) string {
	return defaultCells.ResolveCell(columnID, inst, v)
}

package service

import "trade_desk/internal/models"

// Storage keys of the two column sets.
const (
	InstanceColumnsKey    = "instanceColumns"
	TradeDetailColumnsKey = "tradeDetailColumns"
)

// Instance column ids.
const (
	ColIndexName   = "indexName"
	ColLtpSpot     = "ltpSpot"
	ColExpiry      = "expiry"
	ColLtpRange    = "ltpRange"
	ColLowestValue = "lowestValue"
)

// Trade detail column ids.
const (
	ColQty        = "qty"
	ColCurrentQty = "currentQty"
	ColEntrySide  = "entrySide"
	ColEntryType  = "entryType"
	ColEntryPrice = "entryPrice"
	ColMTM        = "mtm"
)

func DefaultInstanceColumns() []models.ColumnDescriptor {
	return []models.ColumnDescriptor{
		{ID: ColIndexName, Label: "Index", Width: 120, Visible: true},
		{ID: ColLtpSpot, Label: "LTP Spot", Width: 100, Visible: true},
		{ID: ColExpiry, Label: "Expiry", Width: 110, Visible: true},
		{ID: ColLtpRange, Label: "LTP Range", Width: 100, Visible: true},
		{ID: ColLowestValue, Label: "Lowest Value", Width: 110, Visible: true},
	}
}

func DefaultTradeDetailColumns() []models.ColumnDescriptor {
	return []models.ColumnDescriptor{
		{ID: ColQty, Label: "Qty", Width: 70, Visible: true},
		{ID: ColCurrentQty, Label: "Current Qty", Width: 90, Visible: true},
		{ID: ColEntrySide, Label: "Side", Width: 70, Visible: true},
		{ID: ColEntryType, Label: "Type", Width: 70, Visible: true},
		{ID: ColEntryPrice, Label: "Entry Price", Width: 100, Visible: true},
		{ID: ColMTM, Label: "MTM", Width: 100, Visible: true},
	}
}

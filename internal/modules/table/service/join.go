package service

import "trade_desk/internal/models"

// indexFeedCodes maps index symbols to the numeric codes used by the index price feed.
var indexFeedCodes = map[models.IndexName]int{
	models.IndexNifty:      26000,
	models.IndexBankNifty:  26001,
	models.IndexFinNifty:   26034,
	models.IndexMidcpNifty: 26121,
	models.IndexSensex:     26065,
	models.IndexBankex:     26118,
}

// FeedCode resolves an index symbol to its feed code.
func FeedCode(name models.IndexName) (int, bool) {
	code, ok := indexFeedCodes[name]
	return code, ok
}

// Values are the live numbers joined onto one Instance.
type Values struct {
	LtpSpot     float64 `json:"ltpSpot"`
	LowestValue float64 `json:"lowestValue"`
}

// Join looks the instance up in both feed snapshots. A miss in either feed yields 0;
// feeds routinely lag the instance list. Duplicate ticks resolve to the first match.
func Join(inst models.Instance, index []models.IndexPriceTick, options []models.OptionValueRecord) Values {
	var v Values

	if code, ok := FeedCode(inst.IndexName); ok {
		for _, t := range index {
			if t.ID == code {
				v.LtpSpot = t.Price
				break
			}
		}
	}

	for _, o := range options {
		if o.ID == inst.ID {
			v.LowestValue = o.LowestCombinedPremium
			break
		}
	}

	return v
}

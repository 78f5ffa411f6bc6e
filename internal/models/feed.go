package models

// IndexPriceTick is a spot price for one index feed code.
type IndexPriceTick struct {
	ID    int     `json:"id"`
	Price float64 `json:"price"`
}

// OptionValueRecord carries the live lowest combined premium of one Instance.
type OptionValueRecord struct {
	ID                    string  `json:"id"`
	LowestCombinedPremium float64 `json:"lowestCombinedPremium"`
}

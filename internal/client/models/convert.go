package models

import "github.com/shopspring/decimal"

// Conversion is the backend answer to GET /api/convert.
type Conversion struct {
	Base            string          `json:"base"`
	Target          string          `json:"target"`
	Amount          decimal.Decimal `json:"amount"`
	ConvertedAmount decimal.Decimal `json:"converted_amount"`
	Rate            decimal.Decimal `json:"rate"`
}

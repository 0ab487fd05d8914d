package entity

import "github.com/shopspring/decimal"

func init() {
	// amounts go over the wire as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

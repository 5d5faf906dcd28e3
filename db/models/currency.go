package models

import (
	"github.com/uptrace/bun"
)

// Currency : reference data, immutable after invoice creation
type Currency struct {
	bun.BaseModel `bun:"table:currencies,alias:currency"`

	ID            int64  `json:"id" bun:",pk,autoincrement"`
	Name          string `json:"name" bun:",notnull,unique"` // ISO code, e.g. EUR
	Symbol        string `json:"symbol" bun:",notnull"`
	DecimalPlaces int32  `json:"decimal_places" bun:",notnull,default:2"`
}

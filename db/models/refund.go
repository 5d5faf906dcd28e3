package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Refund : immutable record of money returned against an invoice.
// Created only from a successful gateway response; there is no update
// or delete path.
type Refund struct {
	bun.BaseModel `bun:"table:refunds,alias:refund"`

	ID             int64           `json:"id" bun:",pk,autoincrement"`
	RefundID       string          `json:"refund_id" bun:",notnull,unique"` // processor-assigned id
	InvoiceID      int64           `json:"invoice_id" bun:",notnull"`
	Invoice        *Invoice        `json:"-" bun:"rel:belongs-to,join:invoice_id=id"`
	AmountRefunded decimal.Decimal `json:"amount_refunded" bun:"amount_refunded,type:numeric(16,2),notnull"`
	Charge         string          `json:"charge" bun:",notnull"` // processor charge that was refunded
	Created        time.Time       `json:"created" bun:",notnull"` // processor timestamp
	RefundStatus   string          `json:"refund_status" bun:",notnull"`
	Reason         string          `json:"reason,omitempty" bun:",nullzero"`
	Description    string          `json:"description,omitempty" bun:",nullzero"`
	CreatedAt      time.Time       `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}

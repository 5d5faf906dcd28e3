package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// PaymentTransaction : a payment attempt recorded against an invoice.
// The ProviderReference of the single done transaction is the processor
// charge a refund is issued against.
type PaymentTransaction struct {
	bun.BaseModel `bun:"table:payment_transactions,alias:tx"`

	ID                int64            `json:"id" bun:",pk,autoincrement"`
	InvoiceID         int64            `json:"invoice_id" bun:",notnull"`
	Invoice           *Invoice         `json:"-" bun:"rel:belongs-to,join:invoice_id=id"`
	ProviderID        int64            `json:"provider_id" bun:",notnull"`
	Provider          *PaymentProvider `json:"-" bun:"rel:belongs-to,join:provider_id=id"`
	State             string           `json:"state" bun:",notnull,default:'pending'"`
	ProviderReference string           `json:"provider_reference" bun:",nullzero"`
	Amount            decimal.Decimal  `json:"amount" bun:"amount,type:numeric(16,2),notnull"`
	CreatedAt         time.Time        `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}

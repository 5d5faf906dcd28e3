package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Invoice : customer invoice created from reservation data.
// AmountTotal is fixed at posting time; PaymentState transitions to
// stripe_refund only as a side effect of a Refund being recorded.
type Invoice struct {
	bun.BaseModel `bun:"table:invoices,alias:invoice"`

	ID                            int64           `json:"id" bun:",pk,autoincrement"`
	Type                          string          `json:"type" bun:",notnull"`
	Name                          string          `json:"name" bun:",nullzero"` // display number, assigned at posting
	State                         string          `json:"state" bun:",notnull,default:'draft'"`
	PaymentState                  string          `json:"payment_state" bun:",notnull,default:'not_paid'"`
	PartnerID                     int64           `json:"partner_id" bun:",notnull"`
	Partner                       *Partner        `json:"-" bun:"rel:belongs-to,join:partner_id=id"`
	CurrencyID                    int64           `json:"currency_id" bun:",notnull"`
	Currency                      *Currency       `json:"-" bun:"rel:belongs-to,join:currency_id=id"`
	AmountTotal                   decimal.Decimal `json:"amount_total" bun:"amount_total,type:numeric(16,2),notnull"`
	InvoiceDate                   time.Time       `json:"invoice_date" bun:",notnull"`
	ReservationDate               time.Time       `json:"reservation_date" bun:",notnull"`
	PaymentDueDateInCaseOfDefault time.Time       `json:"payment_due_date_in_case_of_default" bun:",notnull"`
	WordpressReservationID        string          `json:"wordpress_reservation_id" bun:",notnull"`
	PaymentLink                   string          `json:"payment_link,omitempty" bun:",nullzero"`
	Lines                         []*InvoiceLine  `json:"lines,omitempty" bun:"rel:has-many,join:id=invoice_id"`
	Refunds                       []*Refund       `json:"refunds,omitempty" bun:"rel:has-many,join:id=invoice_id"`
	CreatedAt                     time.Time       `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt                     bun.NullTime    `json:"updated_at"`
}

func (i *Invoice) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		i.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Invoice)(nil)

// InvoiceLine : a single billed position on an invoice
type InvoiceLine struct {
	bun.BaseModel `bun:"table:invoice_lines,alias:invoice_line"`

	ID          int64           `json:"id" bun:",pk,autoincrement"`
	InvoiceID   int64           `json:"invoice_id" bun:",notnull"`
	Invoice     *Invoice        `json:"-" bun:"rel:belongs-to,join:invoice_id=id"`
	ProductCode string          `json:"product_code" bun:",notnull"`
	Name        string          `json:"name" bun:",notnull"`
	Quantity    int64           `json:"quantity" bun:",notnull,default:1"`
	PriceUnit   decimal.Decimal `json:"price_unit" bun:"price_unit,type:numeric(16,2),notnull"`
	CreatedAt   time.Time       `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}

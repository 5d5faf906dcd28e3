// Package repository exposes one typed repository per entity, each
// limited to the operations the orchestrators actually use.
package repository

import (
	"context"

	"github.com/zonafranca/invoicehub.go/db/models"
)

// PartnerRepository resolves and creates counterparties. Lookups that
// find nothing return (nil, nil).
type PartnerRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Partner, error)
	Create(ctx context.Context, partner *models.Partner) error
}

type CurrencyRepository interface {
	GetByName(ctx context.Context, name string) (*models.Currency, error)
}

type InvoiceRepository interface {
	// Get loads an invoice with its partner, currency, lines and refunds.
	Get(ctx context.Context, id int64) (*models.Invoice, error)
	// Create persists the invoice and its lines atomically.
	Create(ctx context.Context, invoice *models.Invoice, lines []*models.InvoiceLine) error
	Update(ctx context.Context, invoice *models.Invoice) error
}

type RefundRepository interface {
	// RecordRefund inserts the refund and moves the owning invoice to
	// paymentState in a single transaction. Exactly one refund row is
	// written per successful gateway response.
	RecordRefund(ctx context.Context, refund *models.Refund, paymentState string) error
}

type ProviderRepository interface {
	GetByCode(ctx context.Context, code string) (*models.PaymentProvider, error)
	// DoneTransactions lists the successful payment transactions recorded
	// for an invoice against a provider.
	DoneTransactions(ctx context.Context, invoiceID, providerID int64) ([]*models.PaymentTransaction, error)
}

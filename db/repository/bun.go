package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"github.com/zonafranca/invoicehub.go/common"
	"github.com/zonafranca/invoicehub.go/db/models"
)

type BunPartnerRepository struct {
	DB *bun.DB
}

func (r *BunPartnerRepository) GetByEmail(ctx context.Context, email string) (*models.Partner, error) {
	var partner models.Partner
	err := r.DB.NewSelect().Model(&partner).Where("email = ?", email).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *BunPartnerRepository) Create(ctx context.Context, partner *models.Partner) error {
	_, err := r.DB.NewInsert().Model(partner).Exec(ctx)
	return err
}

type BunCurrencyRepository struct {
	DB *bun.DB
}

func (r *BunCurrencyRepository) GetByName(ctx context.Context, name string) (*models.Currency, error) {
	var currency models.Currency
	err := r.DB.NewSelect().Model(&currency).Where("name = ?", name).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &currency, nil
}

type BunInvoiceRepository struct {
	DB *bun.DB
}

func (r *BunInvoiceRepository) Get(ctx context.Context, id int64) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.DB.NewSelect().Model(&invoice).
		Relation("Partner").
		Relation("Currency").
		Relation("Lines").
		Relation("Refunds").
		Where("invoice.id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *BunInvoiceRepository) Create(ctx context.Context, invoice *models.Invoice, lines []*models.InvoiceLine) error {
	return r.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(invoice).Exec(ctx); err != nil {
			return err
		}
		for _, line := range lines {
			line.InvoiceID = invoice.ID
			if _, err := tx.NewInsert().Model(line).Exec(ctx); err != nil {
				return err
			}
		}
		invoice.Lines = lines
		return nil
	})
}

func (r *BunInvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	_, err := r.DB.NewUpdate().Model(invoice).WherePK().Exec(ctx)
	return err
}

type BunRefundRepository struct {
	DB *bun.DB
}

func (r *BunRefundRepository) RecordRefund(ctx context.Context, refund *models.Refund, paymentState string) error {
	return r.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(refund).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewUpdate().Model((*models.Invoice)(nil)).
			Set("payment_state = ?", paymentState).
			Where("id = ?", refund.InvoiceID).
			Exec(ctx)
		return err
	})
}

type BunProviderRepository struct {
	DB *bun.DB
}

func (r *BunProviderRepository) GetByCode(ctx context.Context, code string) (*models.PaymentProvider, error) {
	var provider models.PaymentProvider
	err := r.DB.NewSelect().Model(&provider).Where("code = ?", code).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

func (r *BunProviderRepository) DoneTransactions(ctx context.Context, invoiceID, providerID int64) ([]*models.PaymentTransaction, error) {
	var txs []*models.PaymentTransaction
	err := r.DB.NewSelect().Model(&txs).
		Where("invoice_id = ? AND provider_id = ? AND state = ?", invoiceID, providerID, common.TransactionStateDone).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return txs, nil
}

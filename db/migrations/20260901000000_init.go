package migrations

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/zonafranca/invoicehub.go/db/models"
)

/* This init reflects the latest model fields when run on a fresh db.
Make sure that subsequent migrations use IfNotExists/IfExists when adding
or removing columns, otherwise re-running on a fresh db will error. */
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if _, err := db.NewCreateTable().Model((*models.Partner)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Currency)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Invoice)(nil)).
			ForeignKey(`("partner_id") REFERENCES "partners" ("id")`).
			ForeignKey(`("currency_id") REFERENCES "currencies" ("id")`).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.InvoiceLine)(nil)).
			ForeignKey(`("invoice_id") REFERENCES "invoices" ("id")`).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.PaymentProvider)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.PaymentTransaction)(nil)).
			ForeignKey(`("invoice_id") REFERENCES "invoices" ("id")`).
			ForeignKey(`("provider_id") REFERENCES "payment_providers" ("id")`).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Refund)(nil)).
			ForeignKey(`("invoice_id") REFERENCES "invoices" ("id")`).
			Exec(ctx); err != nil {
			return err
		}

		return nil
	}, nil)
}

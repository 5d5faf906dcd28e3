package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zonafranca/invoicehub.go/common"
	"github.com/zonafranca/invoicehub.go/db/models"
	apperrors "github.com/zonafranca/invoicehub.go/lib/errors"
)

func reservationPayload() map[string]interface{} {
	return map[string]interface{}{
		"client_name":                         "Jane Doe",
		"client_email":                        "jane@example.com",
		"service_name":                        "Lakeside cabin",
		"service_description":                 "Two nights, lake view",
		"service_price":                       199.99,
		"reservation_date":                    "2026-09-14 16:00:00",
		"payment_due_date_in_case_of_default": "2026-09-28 00:00:00",
		"wordpress_reservation_id":            "wp-4711",
	}
}

func TestCreateInvoice(t *testing.T) {
	env := newTestEnv()

	result, err := env.svc.CreateInvoice(context.Background(), reservationPayload())
	require.NoError(t, err)

	invoice := result.Invoice
	assert.Equal(t, common.InvoiceTypeCustomer, invoice.Type)
	assert.Equal(t, common.InvoiceStatePosted, invoice.State)
	assert.Equal(t, common.PaymentStateNotPaid, invoice.PaymentState)
	assert.Equal(t, fmt.Sprintf("INV/%d/%05d", time.Now().Year(), invoice.ID), invoice.Name)
	assert.True(t, invoice.AmountTotal.Equal(decimal.RequireFromString("199.99")))
	assert.Equal(t, "wp-4711", invoice.WordpressReservationID)
	assert.Equal(t, time.Date(2026, 9, 14, 16, 0, 0, 0, time.UTC), invoice.ReservationDate)

	require.Len(t, invoice.Lines, 1)
	line := invoice.Lines[0]
	assert.Equal(t, "reservation_service", line.ProductCode)
	assert.Equal(t, "Lakeside cabin - Two nights, lake view", line.Name)
	assert.Equal(t, int64(1), line.Quantity)
	assert.True(t, line.PriceUnit.Equal(invoice.AmountTotal))

	// partner was created from the payload
	partner := env.partners.partners["jane@example.com"]
	require.NotNil(t, partner)
	assert.Equal(t, "Jane Doe", partner.Name)
	assert.Equal(t, partner.ID, invoice.PartnerID)

	assert.Contains(t, result.PaymentLink, "amount=199.99")
	assert.Contains(t, result.PaymentLink, "currency=EUR")
	assert.Equal(t, result.PaymentLink, invoice.PaymentLink)
	assert.Equal(t, 1, env.invoices.updates)
}

func TestCreateInvoiceReusesExistingPartner(t *testing.T) {
	env := newTestEnv()
	existing := &models.Partner{ID: 7, Name: "Jane Doe", Email: "jane@example.com"}
	env.partners.partners[existing.Email] = existing

	result, err := env.svc.CreateInvoice(context.Background(), reservationPayload())
	require.NoError(t, err)

	assert.Equal(t, int64(7), result.Invoice.PartnerID)
	assert.Equal(t, 0, env.partners.created)
}

func TestCreateInvoiceInvalidPayloadHasNoSideEffects(t *testing.T) {
	env := newTestEnv()
	payload := reservationPayload()
	payload["client_email"] = "not-an-email"

	_, err := env.svc.CreateInvoice(context.Background(), payload)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	assert.Empty(t, env.invoices.invoices)
	assert.Equal(t, 0, env.partners.created)
}

func TestCreateInvoiceMissingFieldNamesAllRequired(t *testing.T) {
	env := newTestEnv()
	payload := reservationPayload()
	delete(payload, "service_price")

	_, err := env.svc.CreateInvoice(context.Background(), payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service_price")
	assert.Contains(t, err.Error(), "wordpress_reservation_id")
}

func TestCreateInvoiceUnknownCurrency(t *testing.T) {
	env := newTestEnv()
	env.svc.Config.DefaultCurrency = "CHF"

	_, err := env.svc.CreateInvoice(context.Background(), reservationPayload())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Empty(t, env.invoices.invoices)
}

func TestCreateInvoiceExplicitInvoiceDate(t *testing.T) {
	env := newTestEnv()
	payload := reservationPayload()
	payload["invoice_date"] = "2026-09-01 10:30:00"

	result, err := env.svc.CreateInvoice(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC), result.Invoice.InvoiceDate)
}

func TestCreateInvoiceRoundsPrice(t *testing.T) {
	env := newTestEnv()
	payload := reservationPayload()
	payload["service_price"] = 33.333

	result, err := env.svc.CreateInvoice(context.Background(), payload)
	require.NoError(t, err)
	assert.True(t, result.Invoice.AmountTotal.Equal(decimal.RequireFromString("33.33")))
}

func TestCreateInvoicePublishesEvent(t *testing.T) {
	env := newTestEnv()
	events := make(chan models.Event, 1)
	env.svc.EventPubSub.Subscribe(common.EventInvoiceCreated, events)

	result, err := env.svc.CreateInvoice(context.Background(), reservationPayload())
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, common.EventInvoiceCreated, event.Type)
		assert.Equal(t, result.Invoice.ID, event.Invoice.ID)
		assert.Nil(t, event.Refund)
	case <-time.After(time.Second):
		t.Fatal("no invoice event published")
	}
}

func TestSequentialAccountingRefusesDoublePost(t *testing.T) {
	env := newTestEnv()

	result, err := env.svc.CreateInvoice(context.Background(), reservationPayload())
	require.NoError(t, err)

	err = env.svc.Accounting.PostInvoice(context.Background(), result.Invoice)
	require.Error(t, err)
}

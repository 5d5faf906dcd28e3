package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zonafranca/invoicehub.go/common"
	"github.com/zonafranca/invoicehub.go/db/models"
	apperrors "github.com/zonafranca/invoicehub.go/lib/errors"
	"github.com/zonafranca/invoicehub.go/lib/validation"
)

type CreateInvoiceResult struct {
	Invoice     *models.Invoice
	PaymentLink string
}

// CreateInvoice runs the whole creation flow for an inbound reservation
// payload: validate, resolve the counterparty, persist the invoice and
// its line, post it and request a payment link. A validation failure
// aborts before anything is persisted.
func (svc *InvoiceService) CreateInvoice(ctx context.Context, payload map[string]interface{}) (*CreateInvoiceResult, error) {
	if err := validation.ValidateInvoicePayload(payload); err != nil {
		return nil, err
	}

	partner, err := svc.resolvePartner(ctx, payload["client_email"].(string), payload["client_name"].(string))
	if err != nil {
		return nil, err
	}

	currency, err := svc.Currencies.GetByName(ctx, svc.Config.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	if currency == nil {
		return nil, apperrors.NotFound("currency %q is not configured", svc.Config.DefaultCurrency)
	}

	reservationDate, _ := validation.ParseTimestamp(payload["reservation_date"].(string))
	dueDate, _ := validation.ParseTimestamp(payload["payment_due_date_in_case_of_default"].(string))
	invoiceDate := time.Now()
	if raw, ok := payload["invoice_date"]; ok {
		invoiceDate, _ = validation.ParseTimestamp(raw.(string))
	}

	price := priceFromPayload(payload["service_price"])

	invoice := &models.Invoice{
		Type:                          common.InvoiceTypeCustomer,
		State:                         common.InvoiceStateDraft,
		PaymentState:                  common.PaymentStateNotPaid,
		PartnerID:                     partner.ID,
		Partner:                       partner,
		CurrencyID:                    currency.ID,
		Currency:                      currency,
		AmountTotal:                   price,
		InvoiceDate:                   invoiceDate,
		ReservationDate:               reservationDate,
		PaymentDueDateInCaseOfDefault: dueDate,
		WordpressReservationID:        payload["wordpress_reservation_id"].(string),
	}
	line := &models.InvoiceLine{
		ProductCode: svc.Config.ServiceProductCode,
		Name:        composeLineName(payload["service_name"].(string), payload["service_description"].(string)),
		Quantity:    1,
		PriceUnit:   price,
	}

	if err := svc.Invoices.Create(ctx, invoice, []*models.InvoiceLine{line}); err != nil {
		return nil, err
	}

	if err := svc.Accounting.PostInvoice(ctx, invoice); err != nil {
		return nil, err
	}

	paymentLink, err := svc.PaymentLinks.GeneratePaymentLink(ctx, invoice)
	if err != nil {
		return nil, err
	}
	invoice.PaymentLink = paymentLink

	if err := svc.Invoices.Update(ctx, invoice); err != nil {
		return nil, err
	}

	svc.Logger.Infof("Created invoice %s for %s (reservation %s)", invoice.Name, partner.Email, invoice.WordpressReservationID)
	svc.publishEvent(common.EventInvoiceCreated, invoice, nil)

	return &CreateInvoiceResult{Invoice: invoice, PaymentLink: paymentLink}, nil
}

// resolvePartner finds the counterparty by exact email match, creating
// one when none exists.
func (svc *InvoiceService) resolvePartner(ctx context.Context, email, name string) (*models.Partner, error) {
	partner, err := svc.Partners.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if partner != nil {
		return partner, nil
	}
	partner = &models.Partner{Name: name, Email: email}
	if err := svc.Partners.Create(ctx, partner); err != nil {
		return nil, err
	}
	return partner, nil
}

func composeLineName(serviceName, serviceDescription string) string {
	return fmt.Sprintf("%s - %s", serviceName, serviceDescription)
}

func priceFromPayload(value interface{}) decimal.Decimal {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v).Round(2)
	case float32:
		return decimal.NewFromFloat32(v).Round(2)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		return decimal.Zero
	}
}

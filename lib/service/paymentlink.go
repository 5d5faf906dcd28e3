package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/zonafranca/invoicehub.go/db/models"
)

// PaymentLinkProvider requests a payment link scoped to an invoice's
// total, currency and counterparty.
type PaymentLinkProvider interface {
	GeneratePaymentLink(ctx context.Context, invoice *models.Invoice) (string, error)
}

// HostedPaymentLinkProvider builds links to the hosted payment page.
type HostedPaymentLinkProvider struct {
	BaseUrl string
}

func (p *HostedPaymentLinkProvider) GeneratePaymentLink(ctx context.Context, invoice *models.Invoice) (string, error) {
	base, err := url.Parse(p.BaseUrl)
	if err != nil {
		return "", fmt.Errorf("invalid payment link base url: %w", err)
	}
	query := base.Query()
	query.Set("amount", invoice.AmountTotal.StringFixed(2))
	if invoice.Currency != nil {
		query.Set("currency", invoice.Currency.Name)
	}
	query.Set("partner_id", strconv.FormatInt(invoice.PartnerID, 10))
	query.Set("invoice_id", strconv.FormatInt(invoice.ID, 10))
	query.Set("reference", invoice.Name)
	base.RawQuery = query.Encode()
	return base.String(), nil
}

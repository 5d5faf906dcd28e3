package service

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zonafranca/invoicehub.go/common"
	"github.com/zonafranca/invoicehub.go/db/models"
	"github.com/zonafranca/invoicehub.go/lib/logging"
	"github.com/zonafranca/invoicehub.go/stripe"
)

type fakePartnerRepo struct {
	partners map[string]*models.Partner
	nextID   int64
	created  int
}

func (r *fakePartnerRepo) GetByEmail(ctx context.Context, email string) (*models.Partner, error) {
	return r.partners[email], nil
}

func (r *fakePartnerRepo) Create(ctx context.Context, partner *models.Partner) error {
	r.nextID++
	r.created++
	partner.ID = r.nextID
	r.partners[partner.Email] = partner
	return nil
}

type fakeCurrencyRepo struct {
	currencies map[string]*models.Currency
}

func (r *fakeCurrencyRepo) GetByName(ctx context.Context, name string) (*models.Currency, error) {
	return r.currencies[name], nil
}

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[int64]*models.Invoice
	nextID   int64
	updates  int
}

// Get returns a copy the way a database read would, so callers never
// observe later writes through a shared pointer.
func (r *fakeInvoiceRepo) Get(ctx context.Context, id int64) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	invoice, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	clone := *invoice
	clone.Refunds = append([]*models.Refund(nil), invoice.Refunds...)
	return &clone, nil
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, invoice *models.Invoice, lines []*models.InvoiceLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	invoice.ID = r.nextID
	for _, line := range lines {
		line.InvoiceID = invoice.ID
	}
	invoice.Lines = lines
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *fakeInvoiceRepo) Update(ctx context.Context, invoice *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	r.invoices[invoice.ID] = invoice
	return nil
}

type fakeRefundRepo struct {
	invoices *fakeInvoiceRepo
	recorded []*models.Refund
	err      error
}

func (r *fakeRefundRepo) RecordRefund(ctx context.Context, refund *models.Refund, paymentState string) error {
	if r.err != nil {
		return r.err
	}
	r.invoices.mu.Lock()
	defer r.invoices.mu.Unlock()
	refund.ID = int64(len(r.recorded) + 1)
	r.recorded = append(r.recorded, refund)
	invoice := r.invoices.invoices[refund.InvoiceID]
	invoice.Refunds = append(invoice.Refunds, refund)
	invoice.PaymentState = paymentState
	return nil
}

type fakeProviderRepo struct {
	provider *models.PaymentProvider
	txs      []*models.PaymentTransaction
}

func (r *fakeProviderRepo) GetByCode(ctx context.Context, code string) (*models.PaymentProvider, error) {
	if r.provider != nil && r.provider.Code == code {
		return r.provider, nil
	}
	return nil, nil
}

func (r *fakeProviderRepo) DoneTransactions(ctx context.Context, invoiceID, providerID int64) ([]*models.PaymentTransaction, error) {
	var done []*models.PaymentTransaction
	for _, tx := range r.txs {
		if tx.InvoiceID == invoiceID && tx.ProviderID == providerID && tx.State == common.TransactionStateDone {
			done = append(done, tx)
		}
	}
	return done, nil
}

type fakeGateway struct {
	result     *stripe.GatewayResult
	err        error
	calls      int
	lastSecret string
	lastData   stripe.RequestData
}

func (g *fakeGateway) CreateRefund(ctx context.Context, secretKey string, data stripe.RequestData) (*stripe.GatewayResult, error) {
	g.calls++
	g.lastSecret = secretKey
	g.lastData = data
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

type testEnv struct {
	svc       *InvoiceService
	partners  *fakePartnerRepo
	invoices  *fakeInvoiceRepo
	refunds   *fakeRefundRepo
	providers *fakeProviderRepo
	gateway   *fakeGateway
}

var eur = &models.Currency{ID: 1, Name: "EUR", Symbol: "€", DecimalPlaces: 2}

func newTestEnv() *testEnv {
	partners := &fakePartnerRepo{partners: map[string]*models.Partner{}}
	invoices := &fakeInvoiceRepo{invoices: map[int64]*models.Invoice{}}
	refunds := &fakeRefundRepo{invoices: invoices}
	providers := &fakeProviderRepo{}
	gateway := &fakeGateway{}

	config := &Config{
		StripeProviderCode:  "stripe",
		DefaultCurrency:     "EUR",
		ServiceProductCode:  "reservation_service",
		PaymentLinkBaseUrl:  "http://localhost:3000/payment/pay",
		InvoiceDaysToRefund: 14,
	}

	svc := &InvoiceService{
		Config:       config,
		Logger:       logging.Logger(""),
		Partners:     partners,
		Currencies:   &fakeCurrencyRepo{currencies: map[string]*models.Currency{"EUR": eur}},
		Invoices:     invoices,
		Refunds:      refunds,
		Providers:    providers,
		StripeClient: gateway,
		Accounting:   &SequentialAccountingGateway{},
		PaymentLinks: &HostedPaymentLinkProvider{BaseUrl: config.PaymentLinkBaseUrl},
		EventPubSub:  NewPubsub(),
		wizards:      make(map[string]*RefundWizard),
		invoiceLocks: make(map[int64]*sync.Mutex),
	}

	return &testEnv{
		svc:       svc,
		partners:  partners,
		invoices:  invoices,
		refunds:   refunds,
		providers: providers,
		gateway:   gateway,
	}
}

// seedPaidInvoice stores a posted, paid invoice with a done payment
// transaction and an enabled provider, ready for refunds.
func (env *testEnv) seedPaidInvoice(total string) *models.Invoice {
	partner := &models.Partner{ID: 1, Name: "Jane Doe", Email: "jane@example.com"}
	env.partners.partners[partner.Email] = partner

	invoice := &models.Invoice{
		Type:         common.InvoiceTypeCustomer,
		State:        common.InvoiceStatePosted,
		PaymentState: common.PaymentStatePaid,
		PartnerID:    partner.ID,
		Partner:      partner,
		CurrencyID:   eur.ID,
		Currency:     eur,
		AmountTotal:  decimal.RequireFromString(total),
		InvoiceDate:  time.Now(),
	}
	env.invoices.Create(context.Background(), invoice, nil)
	invoice.Name = "INV/2026/00001"

	env.providers.provider = &models.PaymentProvider{
		ID:                   1,
		Code:                 "stripe",
		Name:                 "Stripe",
		State:                common.ProviderStateEnabled,
		StripePublishableKey: "pk_test_123",
		StripeSecretKey:      "sk_test_123",
		IsPublished:          true,
	}
	env.providers.txs = []*models.PaymentTransaction{{
		ID:                1,
		InvoiceID:         invoice.ID,
		ProviderID:        1,
		State:             common.TransactionStateDone,
		ProviderReference: "ch_123",
		Amount:            invoice.AmountTotal,
	}}

	return invoice
}

func succeededResult(id, charge string) *stripe.GatewayResult {
	return &stripe.GatewayResult{
		StatusCode: 200,
		Body:       []byte(`{"id":"` + id + `","charge":"` + charge + `","status":"succeeded","created":1756710000}`),
		Refund: stripe.RefundResponse{
			ID:      id,
			Charge:  charge,
			Status:  "succeeded",
			Created: 1756710000,
		},
	}
}

package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
	"github.com/zonafranca/invoicehub.go/common"
	"github.com/zonafranca/invoicehub.go/db/models"
	"github.com/zonafranca/invoicehub.go/db/repository"
	"github.com/zonafranca/invoicehub.go/stripe"
)

type InvoiceService struct {
	Config       *Config
	DB           *bun.DB
	Logger       *lecho.Logger
	Partners     repository.PartnerRepository
	Currencies   repository.CurrencyRepository
	Invoices     repository.InvoiceRepository
	Refunds      repository.RefundRepository
	Providers    repository.ProviderRepository
	StripeClient stripe.Client
	Accounting   AccountingGateway
	PaymentLinks PaymentLinkProvider
	EventPubSub  *Pubsub

	wizardMu sync.RWMutex
	wizards  map[string]*RefundWizard

	// one submission at a time per invoice, so two concurrent refunds
	// cannot both validate against a stale refunded amount
	invoiceLockMu sync.Mutex
	invoiceLocks  map[int64]*sync.Mutex
}

func NewInvoiceService(config *Config, dbConn *bun.DB, logger *lecho.Logger) *InvoiceService {
	return &InvoiceService{
		Config:       config,
		DB:           dbConn,
		Logger:       logger,
		Partners:     &repository.BunPartnerRepository{DB: dbConn},
		Currencies:   &repository.BunCurrencyRepository{DB: dbConn},
		Invoices:     &repository.BunInvoiceRepository{DB: dbConn},
		Refunds:      &repository.BunRefundRepository{DB: dbConn},
		Providers:    &repository.BunProviderRepository{DB: dbConn},
		StripeClient: stripe.NewClient(config.StripeRefundEndpoint, time.Duration(config.GatewayTimeout)*time.Second),
		Accounting:   &SequentialAccountingGateway{},
		PaymentLinks: &HostedPaymentLinkProvider{BaseUrl: config.PaymentLinkBaseUrl},
		EventPubSub:  NewPubsub(),
		wizards:      make(map[string]*RefundWizard),
		invoiceLocks: make(map[int64]*sync.Mutex),
	}
}

func (svc *InvoiceService) lockInvoice(invoiceID int64) *sync.Mutex {
	svc.invoiceLockMu.Lock()
	defer svc.invoiceLockMu.Unlock()
	lock, ok := svc.invoiceLocks[invoiceID]
	if !ok {
		lock = &sync.Mutex{}
		svc.invoiceLocks[invoiceID] = lock
	}
	return lock
}

// SubscribeToEvents is the subscription hook handed to the rabbitmq
// publisher.
func (svc *InvoiceService) SubscribeToEvents() (invoiceEvents, refundEvents chan models.Event, err error) {
	invoiceEvents = make(chan models.Event)
	refundEvents = make(chan models.Event)
	svc.EventPubSub.Subscribe(common.EventInvoiceCreated, invoiceEvents)
	svc.EventPubSub.Subscribe(common.EventRefundSucceeded, refundEvents)
	return invoiceEvents, refundEvents, nil
}

func (svc *InvoiceService) publishEvent(eventType string, invoice *models.Invoice, refund *models.Refund) {
	svc.EventPubSub.Publish(eventType, models.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		CreatedAt: time.Now(),
		Invoice:   invoice,
		Refund:    refund,
	})
}

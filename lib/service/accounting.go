package service

import (
	"context"
	"fmt"
	"time"

	"github.com/zonafranca/invoicehub.go/common"
	"github.com/zonafranca/invoicehub.go/db/models"
)

// AccountingGateway posts an invoice to the accounting ledger. Numbering
// and ledger entries are the accounting subsystem's business; this
// service only needs the display number and the posted state back.
type AccountingGateway interface {
	PostInvoice(ctx context.Context, invoice *models.Invoice) error
}

type SequentialAccountingGateway struct{}

func (g *SequentialAccountingGateway) PostInvoice(ctx context.Context, invoice *models.Invoice) error {
	if invoice.State == common.InvoiceStatePosted {
		return fmt.Errorf("invoice %d is already posted", invoice.ID)
	}
	invoice.Name = fmt.Sprintf("INV/%d/%05d", time.Now().Year(), invoice.ID)
	invoice.State = common.InvoiceStatePosted
	return nil
}

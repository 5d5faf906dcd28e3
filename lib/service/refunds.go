package service

import (
	"context"
	"time"

	"github.com/labstack/gommon/random"
	"github.com/shopspring/decimal"
	"github.com/zonafranca/invoicehub.go/common"
	"github.com/zonafranca/invoicehub.go/db/models"
	apperrors "github.com/zonafranca/invoicehub.go/lib/errors"
	"github.com/zonafranca/invoicehub.go/lib/ledger"
	"github.com/zonafranca/invoicehub.go/stripe"
)

// RefundWizard is the per-attempt refund flow. It starts in the drafting
// state, moves to submitting on submit and ends in succeeded or
// rejected. Terminal states are final; a new attempt opens a fresh
// wizard against the then-current refund ledger.
type RefundWizard struct {
	ID          string          `json:"id"`
	InvoiceID   int64           `json:"invoice_id"`
	State       string          `json:"state"`
	Reason      string          `json:"refund_reason"`
	Description string          `json:"refund_description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DraftPatch carries the operator's changes to a drafting wizard. Nil
// fields are left untouched.
type DraftPatch struct {
	Reason      *string
	Description *string
	Amount      *decimal.Decimal
}

// OpenRefundWizard starts a drafting wizard for an invoice. The amount
// is pre-filled from the remaining refundable amount and the default
// reason.
func (svc *InvoiceService) OpenRefundWizard(ctx context.Context, invoiceID int64) (*RefundWizard, error) {
	invoice, err := svc.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	refunded := ledger.RefundedAmount(invoice.Refunds)
	remaining := ledger.RemainingRefundable(invoice.AmountTotal, refunded, len(invoice.Refunds))

	wizard := &RefundWizard{
		ID:        random.String(20, random.Alphanumeric),
		InvoiceID: invoice.ID,
		State:     common.WizardStateDrafting,
		Reason:    common.RefundReasonAbsence,
		Amount:    ledger.DefaultDraftAmount(common.RefundReasonAbsence, remaining, invoice.Currency),
		CreatedAt: time.Now(),
	}

	svc.wizardMu.Lock()
	svc.wizards[wizard.ID] = wizard
	svc.wizardMu.Unlock()

	return wizard, nil
}

func (svc *InvoiceService) GetRefundWizard(wizardID string) (*RefundWizard, error) {
	svc.wizardMu.RLock()
	defer svc.wizardMu.RUnlock()
	wizard, ok := svc.wizards[wizardID]
	if !ok {
		return nil, apperrors.NotFound("refund wizard %q not found", wizardID)
	}
	return wizard, nil
}

// UpdateRefundDraft applies operator changes to a drafting wizard. A
// reason change recomputes the default amount unless the same patch sets
// an explicit one. An invalid amount keeps the wizard drafting with its
// previous amount and surfaces the validation error.
func (svc *InvoiceService) UpdateRefundDraft(ctx context.Context, wizardID string, patch DraftPatch) (*RefundWizard, error) {
	wizard, err := svc.GetRefundWizard(wizardID)
	if err != nil {
		return nil, err
	}

	// InvoiceID is fixed at creation, safe to read before the lock
	invoice, err := svc.GetInvoice(ctx, wizard.InvoiceID)
	if err != nil {
		return nil, err
	}

	svc.wizardMu.Lock()
	defer svc.wizardMu.Unlock()

	// checked under the lock so a concurrent submit cannot slip in
	// between the check and the writes below
	if wizard.State != common.WizardStateDrafting {
		return nil, apperrors.Validation("refund wizard is %s, only drafting wizards can be changed", wizard.State)
	}

	if patch.Reason != nil {
		if _, ok := common.RefundReasonLabels[*patch.Reason]; !ok {
			return nil, apperrors.Validation("unknown refund reason %q", *patch.Reason)
		}
		wizard.Reason = *patch.Reason
		if patch.Amount == nil {
			refunded := ledger.RefundedAmount(invoice.Refunds)
			remaining := ledger.RemainingRefundable(invoice.AmountTotal, refunded, len(invoice.Refunds))
			wizard.Amount = ledger.DefaultDraftAmount(wizard.Reason, remaining, invoice.Currency)
		}
	}

	if patch.Description != nil {
		wizard.Description = *patch.Description
	}

	if patch.Amount != nil {
		if err := ledger.ValidateRefundAmount(*patch.Amount, invoice.AmountTotal, invoice.Refunds, invoice.Currency); err != nil {
			return wizard, err
		}
		wizard.Amount = *patch.Amount
	}

	return wizard, nil
}

// SubmitRefund drives a drafting wizard through submission: re-validate
// against fresh invoice state, resolve the provider, locate the charge,
// call the gateway and, only on a confirmed success, record the refund
// and flip the invoice's payment state in one transaction.
func (svc *InvoiceService) SubmitRefund(ctx context.Context, wizardID string) (*models.Refund, error) {
	wizard, err := svc.GetRefundWizard(wizardID)
	if err != nil {
		return nil, err
	}

	// the draft is snapshotted at the submitting transition so a racing
	// PATCH can neither change what is sent to the gateway nor tear a
	// decimal mid-read
	svc.wizardMu.Lock()
	if wizard.State != common.WizardStateDrafting {
		svc.wizardMu.Unlock()
		return nil, apperrors.Validation("refund wizard is %s, only drafting wizards can be submitted", wizard.State)
	}
	wizard.State = common.WizardStateSubmitting
	draft := *wizard
	svc.wizardMu.Unlock()

	lock := svc.lockInvoice(draft.InvoiceID)
	lock.Lock()
	defer lock.Unlock()

	refund, err := svc.submitRefund(ctx, &draft)

	svc.wizardMu.Lock()
	if err != nil {
		wizard.State = common.WizardStateRejected
	} else {
		wizard.State = common.WizardStateSucceeded
	}
	svc.wizardMu.Unlock()

	return refund, err
}

func (svc *InvoiceService) submitRefund(ctx context.Context, draft *RefundWizard) (*models.Refund, error) {
	invoice, err := svc.GetInvoice(ctx, draft.InvoiceID)
	if err != nil {
		return nil, err
	}

	if err := ledger.ValidateRefundAmount(draft.Amount, invoice.AmountTotal, invoice.Refunds, invoice.Currency); err != nil {
		return nil, err
	}

	provider, err := svc.resolveProvider(ctx)
	if err != nil {
		return nil, err
	}

	charge, err := svc.findCharge(ctx, invoice.ID, provider.ID)
	if err != nil {
		return nil, err
	}

	params := stripe.RefundParams{
		InvoiceID:     invoice.ID,
		InvoiceNumber: invoice.Name,
		Charge:        charge,
		Amount:        draft.Amount,
		AmountTotal:   invoice.AmountTotal,
		Reason:        draft.Reason,
		Description:   draft.Description,
	}
	if invoice.Partner != nil {
		params.PartnerID = invoice.Partner.ID
		params.PartnerName = invoice.Partner.Name
		params.PartnerEmail = invoice.Partner.Email
	}

	result, err := svc.StripeClient.CreateRefund(ctx, provider.StripeSecretKey, stripe.BuildRefundRequest(params))
	if err != nil {
		// transport failure, nothing was written locally
		return nil, apperrors.Gateway(err, "error processing the refund request: %v", err)
	}

	if result.StatusCode != 200 {
		return nil, apperrors.Gateway(nil, "error processing the refund request: %s", string(result.Body))
	}

	if result.Refund.Status != common.RefundStatusSucceeded {
		// the processor's true state is unknown here; nothing is recorded
		// and the operator has to reconcile via the processor dashboard
		svc.Logger.Errorf("Ambiguous refund outcome for invoice %d: http 200 with status %q", invoice.ID, result.Refund.Status)
		return nil, apperrors.AmbiguousOutcome("refund was not confirmed by the payment processor (status %q)", result.Refund.Status)
	}

	refund := &models.Refund{
		RefundID:       result.Refund.ID,
		InvoiceID:      invoice.ID,
		AmountRefunded: draft.Amount,
		Charge:         result.Refund.Charge,
		Created:        time.Unix(result.Refund.Created, 0),
		RefundStatus:   result.Refund.Status,
		Reason:         common.RefundReasonLabels[draft.Reason],
		Description:    draft.Description,
	}

	if err := svc.Refunds.RecordRefund(ctx, refund, common.PaymentStateStripeRefund); err != nil {
		// money moved externally but the local write failed; the refund id
		// is the idempotency key for the reconciliation job
		svc.Logger.Errorf("Refund %s succeeded at the processor but could not be recorded: %v", result.Refund.ID, err)
		return nil, err
	}

	svc.Logger.Infof("Recorded refund %s of %s for invoice %d", refund.RefundID, ledger.FormatAmount(refund.AmountRefunded, invoice.Currency), invoice.ID)
	svc.publishEvent(common.EventRefundSucceeded, invoice, refund)

	return refund, nil
}

// resolveProvider loads the configured processor and checks the
// preconditions for issuing refunds through it.
func (svc *InvoiceService) resolveProvider(ctx context.Context) (*models.PaymentProvider, error) {
	provider, err := svc.Providers.GetByCode(ctx, svc.Config.StripeProviderCode)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperrors.NotFound("payment provider %q not found", svc.Config.StripeProviderCode)
	}
	if provider.State != common.ProviderStateEnabled && provider.State != common.ProviderStateTest {
		return nil, apperrors.Validation("payment provider %q is not enabled", provider.Code)
	}
	if provider.StripePublishableKey == "" {
		return nil, apperrors.Validation("the publishable key of payment provider %q is not configured", provider.Code)
	}
	if provider.StripeSecretKey == "" {
		return nil, apperrors.Validation("the secret key of payment provider %q is not configured", provider.Code)
	}
	if !provider.IsPublished {
		return nil, apperrors.Validation("payment provider %q is not published", provider.Code)
	}
	return provider, nil
}

// findCharge returns the charge reference of the invoice's single
// successful payment transaction against the provider.
func (svc *InvoiceService) findCharge(ctx context.Context, invoiceID, providerID int64) (string, error) {
	txs, err := svc.Providers.DoneTransactions(ctx, invoiceID, providerID)
	if err != nil {
		return "", err
	}
	if len(txs) == 0 || txs[0].ProviderReference == "" {
		return "", apperrors.Validation("payment transaction charge not found")
	}
	if len(txs) > 1 {
		return "", apperrors.Validation("invoice has more than one successful payment transaction")
	}
	return txs[0].ProviderReference, nil
}

func (svc *InvoiceService) GetInvoice(ctx context.Context, invoiceID int64) (*models.Invoice, error) {
	invoice, err := svc.Invoices.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperrors.NotFound("invoice %d not found", invoiceID)
	}
	return invoice, nil
}

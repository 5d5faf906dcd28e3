package common

const (
	InvoiceTypeCustomer = "out_invoice"

	InvoiceStateDraft  = "draft"
	InvoiceStatePosted = "posted"

	PaymentStateNotPaid      = "not_paid"
	PaymentStateInPayment    = "in_payment"
	PaymentStatePaid         = "paid"
	PaymentStatePartial      = "partial"
	PaymentStateStripeRefund = "stripe_refund"

	RefundReasonAbsence    = "absence"
	RefundReasonDuplicate  = "duplicate"
	RefundReasonFraudulent = "fraudulent"
	RefundReasonRequested  = "requested_by_customer"
	RefundReasonOther      = "other"

	RefundStatusSucceeded = "succeeded"

	ProviderStateEnabled  = "enabled"
	ProviderStateTest     = "test"
	ProviderStateDisabled = "disabled"

	TransactionStateDone    = "done"
	TransactionStatePending = "pending"
	TransactionStateError   = "error"

	WizardStateDrafting   = "drafting"
	WizardStateSubmitting = "submitting"
	WizardStateSucceeded  = "succeeded"
	WizardStateRejected   = "rejected"

	EventInvoiceCreated  = "invoice.created"
	EventRefundSucceeded = "refund.succeeded"
)

// RefundReasonLabels maps the wizard reason enumeration to the human label
// stored on the refund record.
var RefundReasonLabels = map[string]string{
	RefundReasonAbsence:    "Absence",
	RefundReasonDuplicate:  "Duplicate",
	RefundReasonFraudulent: "Fraudulent",
	RefundReasonRequested:  "Requested by customer",
	RefundReasonOther:      "Other",
}

// RefundReasons is the wizard enumeration in display order.
var RefundReasons = []string{
	RefundReasonAbsence,
	RefundReasonDuplicate,
	RefundReasonFraudulent,
	RefundReasonRequested,
	RefundReasonOther,
}

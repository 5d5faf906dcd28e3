package stripe

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// RefundParams carries everything needed to shape a refund request:
// invoice identity for the metadata block, the located charge reference
// and the operator's draft values.
type RefundParams struct {
	InvoiceID     int64
	InvoiceNumber string
	PartnerID     int64
	PartnerName   string
	PartnerEmail  string
	Charge        string
	Amount        decimal.Decimal
	AmountTotal   decimal.Decimal
	Reason        string
	Description   string
}

// RequestData is the form-encoded body sent to the refund endpoint.
type RequestData struct {
	values url.Values
}

func (r RequestData) Encode() string {
	return r.values.Encode()
}

func (r RequestData) Get(key string) string {
	return r.values.Get(key)
}

func (r RequestData) Has(key string) bool {
	return r.values.Has(key)
}

// BuildRefundRequest assembles the processor request. The amount is only
// included, scaled to minor units, when it is strictly less than the
// invoice total: a full refund omits it so the processor refunds the
// whole original charge. The reason is omitted for "other".
func BuildRefundRequest(p RefundParams) RequestData {
	values := url.Values{}
	values.Set("charge", p.Charge)
	values.Set("metadata[invoice_id]", strconv.FormatInt(p.InvoiceID, 10))
	values.Set("metadata[invoice_number]", p.InvoiceNumber)
	values.Set("metadata[partner_id]", strconv.FormatInt(p.PartnerID, 10))
	values.Set("metadata[partner_name]", p.PartnerName)
	values.Set("metadata[partner_email]", p.PartnerEmail)

	if p.Reason != "" && p.Reason != "other" {
		values.Set("reason", p.Reason)
	}

	if p.Amount.LessThan(p.AmountTotal) {
		values.Set("amount", strconv.FormatInt(toMinorUnits(p.Amount), 10))
	}

	if p.Description != "" {
		values.Set("metadata[refund_description]", p.Description)
	}

	return RequestData{values: values}
}

func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// RefundResponse is the subset of the processor's refund object the
// orchestrator reads.
type RefundResponse struct {
	ID       string `json:"id"`
	Charge   string `json:"charge"`
	Status   string `json:"status"`
	Created  int64  `json:"created"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// GatewayResult carries the raw outcome of one refund call. The client
// does not interpret success or failure; that is the orchestrator's job.
type GatewayResult struct {
	StatusCode int
	Body       []byte
	Refund     RefundResponse
}

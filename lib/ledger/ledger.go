// Package ledger derives refundable-amount state from an invoice's
// refund history. All functions are pure and operate on decimals, so
// monetary comparisons are exact.
package ledger

import (
	"github.com/shopspring/decimal"
	"github.com/zonafranca/invoicehub.go/common"
	"github.com/zonafranca/invoicehub.go/db/models"
	apperrors "github.com/zonafranca/invoicehub.go/lib/errors"
)

// RefundedAmount sums amount_refunded over all refunds, zero if empty.
func RefundedAmount(refunds []*models.Refund) decimal.Decimal {
	total := decimal.Zero
	for _, refund := range refunds {
		total = total.Add(refund.AmountRefunded)
	}
	return total
}

// FullyRefunded reports whether the refunded amount covers the whole
// invoice total. A zero-total invoice is never considered fully refunded.
func FullyRefunded(amountTotal, refundedAmount decimal.Decimal) bool {
	return !amountTotal.IsZero() && refundedAmount.Equal(amountTotal)
}

// RemainingRefundable returns the portion of the total not yet covered
// by prior refunds.
func RemainingRefundable(amountTotal, refundedAmount decimal.Decimal, refundCount int) decimal.Decimal {
	if refundCount == 0 {
		return amountTotal
	}
	return amountTotal.Sub(refundedAmount)
}

// DefaultDraftAmount is the amount a fresh draft is pre-filled with. An
// absence refund defaults to half of the remaining amount, rounded to
// the invoice currency's precision; it is a UI convenience only and does
// not bound the submitted amount.
func DefaultDraftAmount(reason string, remaining decimal.Decimal, currency *models.Currency) decimal.Decimal {
	if reason == common.RefundReasonAbsence {
		return remaining.DivRound(decimal.NewFromInt(2), decimalPlaces(currency))
	}
	return remaining
}

func decimalPlaces(currency *models.Currency) int32 {
	if currency == nil {
		return 2
	}
	return currency.DecimalPlaces
}

// ValidateRefundAmount checks a draft amount against the invoice's
// current refund state before submission.
func ValidateRefundAmount(amount, amountTotal decimal.Decimal, refunds []*models.Refund, currency *models.Currency) error {
	if len(refunds) == 0 {
		if !amount.IsPositive() || amount.GreaterThan(amountTotal) {
			return apperrors.Validation("the amount to refund must be positive and cannot exceed the invoice total of %s", FormatAmount(amountTotal, currency))
		}
		return nil
	}

	refunded := RefundedAmount(refunds)
	if FullyRefunded(amountTotal, refunded) {
		return apperrors.Validation("the invoice is already fully refunded")
	}

	remaining := RemainingRefundable(amountTotal, refunded, len(refunds))
	if !amount.IsPositive() || amount.GreaterThan(remaining) {
		return apperrors.Validation("the amount to refund must be positive and cannot exceed the remaining refundable amount of %s", FormatAmount(remaining, currency))
	}
	return nil
}

// FormatAmount renders a monetary value in the invoice's currency.
func FormatAmount(amount decimal.Decimal, currency *models.Currency) string {
	if currency == nil {
		return amount.StringFixed(2)
	}
	return amount.StringFixed(decimalPlaces(currency)) + " " + currency.Name
}

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"client_name":                         "Jane Doe",
		"client_email":                        "jane@example.com",
		"service_name":                        "Conference room",
		"service_description":                 "Full day booking",
		"service_price":                       150.5,
		"reservation_date":                    "2026-09-12 10:00:00",
		"payment_due_date_in_case_of_default": "2026-09-30 00:00:00",
		"wordpress_reservation_id":            "wp-123",
	}
}

func TestValidPayloadAccepted(t *testing.T) {
	assert.NoError(t, ValidateInvoicePayload(validPayload()))
}

func TestMissingRequiredFieldRejected(t *testing.T) {
	for _, field := range []string{
		"client_name",
		"client_email",
		"service_name",
		"service_description",
		"service_price",
		"reservation_date",
		"payment_due_date_in_case_of_default",
		"wordpress_reservation_id",
	} {
		payload := validPayload()
		delete(payload, field)
		err := ValidateInvoicePayload(payload)
		assert.Error(t, err, "expected rejection when %s is missing", field)
		// the error names the missing field and the full required set
		assert.Contains(t, err.Error(), "("+field+")")
		assert.Contains(t, err.Error(), "all of these must be sent")
	}
}

func TestMultipleMissingFieldsListedSorted(t *testing.T) {
	payload := validPayload()
	delete(payload, "service_price")
	delete(payload, "client_name")

	err := ValidateInvoicePayload(payload)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "(client_name, service_price)")
}

func TestEmailValidation(t *testing.T) {
	payload := validPayload()
	payload["client_email"] = "a.b+c@sub.domain.com"
	assert.NoError(t, ValidateInvoicePayload(payload))

	payload["client_email"] = "not-an-email"
	err := ValidateInvoicePayload(payload)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "client_email")

	payload["client_email"] = ""
	assert.Error(t, ValidateInvoicePayload(payload))
}

func TestWhitespaceStringsRejected(t *testing.T) {
	payload := validPayload()
	payload["service_name"] = "   "
	err := ValidateInvoicePayload(payload)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "service_name")
}

func TestNonStringRejected(t *testing.T) {
	payload := validPayload()
	payload["client_name"] = 42
	assert.Error(t, ValidateInvoicePayload(payload))
}

func TestServicePriceMustBeNumber(t *testing.T) {
	payload := validPayload()
	payload["service_price"] = "150.5"
	err := ValidateInvoicePayload(payload)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "service_price")

	// integers are fine, no positivity check at this layer
	payload["service_price"] = -10
	assert.NoError(t, ValidateInvoicePayload(payload))
}

func TestDateFormatValidation(t *testing.T) {
	payload := validPayload()
	payload["reservation_date"] = "12/09/2026"
	err := ValidateInvoicePayload(payload)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reservation_date")

	// invoice_date is optional but validated when present
	payload = validPayload()
	payload["invoice_date"] = "2026-09-01"
	err = ValidateInvoicePayload(payload)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invoice_date")

	payload["invoice_date"] = "2026-09-01 08:30:00"
	assert.NoError(t, ValidateInvoicePayload(payload))
}

func TestValidationIsIdempotent(t *testing.T) {
	payload := validPayload()
	first := ValidateInvoicePayload(payload)
	second := ValidateInvoicePayload(payload)
	assert.Equal(t, first, second)
	assert.Equal(t, validPayload(), payload)
}

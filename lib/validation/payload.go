package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	apperrors "github.com/zonafranca/invoicehub.go/lib/errors"
)

// TimestampLayout is the only accepted format for date fields in the
// inbound creation payload.
const TimestampLayout = "2006-01-02 15:04:05"

var requiredPayloadFields = []string{
	"client_name",
	"client_email",
	"service_name",
	"service_description",
	"service_price",
	"reservation_date",
	"payment_due_date_in_case_of_default",
	"wordpress_reservation_id",
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateInvoicePayload checks the shape, types and formats of an
// inbound invoice creation payload. It is a pure predicate: no side
// effects, same result on repeated calls. Checks fail fast, except that
// a missing required key reports the full required set at once.
func ValidateInvoicePayload(payload map[string]interface{}) error {
	if missing := missingFields(payload); len(missing) > 0 {
		return apperrors.Validation("missing required fields (%s), all of these must be sent: %s",
			strings.Join(missing, ", "), strings.Join(requiredPayloadFields, ", "))
	}

	for _, field := range []string{"client_name", "client_email", "service_name", "service_description", "wordpress_reservation_id"} {
		if !isValidString(payload[field]) {
			return apperrors.Validation("the '%s' field is required and must be a non-empty string", field)
		}
	}

	if !isValidEmail(payload["client_email"]) {
		return apperrors.Validation("the 'client_email' field must be a valid email address")
	}

	if !isValidNumber(payload["service_price"]) {
		return apperrors.Validation("the 'service_price' field is required and must be a number")
	}

	for _, field := range []string{"reservation_date", "payment_due_date_in_case_of_default", "invoice_date"} {
		raw, ok := payload[field]
		if !ok {
			continue
		}
		if _, err := parseTimestampValue(raw); err != nil {
			return apperrors.Validation("the '%s' field must be a valid string in format: '%s'", field, "YYYY-MM-DD HH:MM:SS")
		}
	}

	return nil
}

// ParseTimestamp parses a payload date value against TimestampLayout.
func ParseTimestamp(value string) (time.Time, error) {
	return time.Parse(TimestampLayout, value)
}

func missingFields(payload map[string]interface{}) []string {
	var missing []string
	for _, field := range requiredPayloadFields {
		if _, ok := payload[field]; !ok {
			missing = append(missing, field)
		}
	}
	sort.Strings(missing)
	return missing
}

func isValidString(value interface{}) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func isValidEmail(value interface{}) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return emailRegex.MatchString(s)
}

// isValidNumber accepts integers and floats. JSON numbers decode as
// float64, but values coming from typed callers are accepted too.
func isValidNumber(value interface{}) bool {
	switch value.(type) {
	case float64, float32, int, int32, int64:
		return true
	default:
		return false
	}
}

func parseTimestampValue(value interface{}) (time.Time, error) {
	s, ok := value.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("not a string: %v", value)
	}
	return ParseTimestamp(s)
}

package models

import (
	"time"
)

// Event : in-process notification published when an invoice is created
// or a refund succeeds. Not persisted; consumed by the webhook poster
// and the RabbitMQ publisher. The refund's processor id doubles as the
// idempotency key for downstream reconciliation.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Invoice   *Invoice  `json:"invoice,omitempty"`
	Refund    *Refund   `json:"refund,omitempty"`
}

package models

import (
	"time"

	"github.com/uptrace/bun"
)

// PaymentProvider : processor configuration resolved before a refund is
// built. A provider is usable when it is enabled (or in test mode), has
// both keys configured and is published.
type PaymentProvider struct {
	bun.BaseModel `bun:"table:payment_providers,alias:provider"`

	ID                   int64     `json:"id" bun:",pk,autoincrement"`
	Code                 string    `json:"code" bun:",notnull,unique"`
	Name                 string    `json:"name" bun:",notnull"`
	State                string    `json:"state" bun:",notnull,default:'disabled'"`
	StripePublishableKey string    `json:"-" bun:",nullzero"`
	StripeSecretKey      string    `json:"-" bun:",nullzero"`
	IsPublished          bool      `json:"is_published" bun:",notnull,default:false"`
	CreatedAt            time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}

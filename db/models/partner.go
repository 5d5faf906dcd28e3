package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Partner : counterparty an invoice is billed to
type Partner struct {
	bun.BaseModel `bun:"table:partners,alias:partner"`

	ID        int64        `json:"id" bun:",pk,autoincrement"`
	Name      string       `json:"name" bun:",notnull"`
	Email     string       `json:"email" bun:",notnull,unique"`
	CreatedAt time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt bun.NullTime `json:"updated_at"`
}

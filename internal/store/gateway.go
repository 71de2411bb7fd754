// Package store is the data gateway to the remote relational store. It
// owns every query the application issues; all mutations are keyed by both
// record id and owning user, which makes the gateway the access-policy
// boundary for cross-user isolation.
package store

import (
	"gorm.io/gorm"

	"fintrack/internal/services"
)

// Gateway wraps authenticated access to the transactions relation, the
// identity records, and the avatar blobs.
type Gateway struct {
	db *gorm.DB
}

// New creates a Gateway over the given database handle.
func New(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

var (
	_ services.TransactionGateway = (*Gateway)(nil)
	_ services.TrendGateway       = (*Gateway)(nil)
	_ services.IdentityGateway    = (*Gateway)(nil)
	_ services.BlobGateway        = (*Gateway)(nil)
)

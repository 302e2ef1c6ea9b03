package storage

import (
	"context"

	"dealpost/internal/domain"
)

// Repository records which deals have been published.
type Repository interface {
	// SaveDeal appends a ledger entry. Entries for the same ASIN accumulate.
	SaveDeal(ctx context.Context, deal domain.Deal) error

	// GetDealsByASIN returns every entry for an ASIN, newest first.
	GetDealsByASIN(ctx context.Context, asin string) ([]domain.Deal, error)

	// ListDeals returns all entries, newest first.
	ListDeals(ctx context.Context) ([]domain.Deal, error)

	// DeleteDealsByASIN removes every entry for an ASIN and reports how many were removed.
	DeleteDealsByASIN(ctx context.Context, asin string) (int, error)

	Close() error
}

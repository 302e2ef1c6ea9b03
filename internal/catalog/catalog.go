// Package catalog looks products up by ASIN.
package catalog

import (
	"context"

	"dealpost/internal/domain"
)

// Lookup fetches a single product record.
//
// Implementations return *domain.ProductNotFoundError when the catalog has no
// such item and *domain.LookupTransportError for network, auth or protocol failures.
type Lookup interface {
	Lookup(ctx context.Context, asin string) (domain.ProductRecord, error)
}

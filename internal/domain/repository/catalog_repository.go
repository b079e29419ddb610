package repository

import (
	"context"

	"github.com/sangkips/yardops-api/internal/domain/entity"
)

// CatalogRepository serves the parts catalog the opportunity finder scores
type CatalogRepository interface {
	// All returns every catalog row in file order
	All(ctx context.Context) ([]entity.CatalogPart, error)
}

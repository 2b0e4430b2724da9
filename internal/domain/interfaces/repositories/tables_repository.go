// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/pyfinder/internal/domain/entities"
)

// TablesRepository provides the alias tables used by the triple parser
type TablesRepository interface {
	// LoadTables returns the mapping tables, starting from defaults and
	// applying any configured overrides
	LoadTables(ctx context.Context, defaults entities.MappingTables) (entities.MappingTables, error)
}

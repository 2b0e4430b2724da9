package yaml

import (
	"context"

	"github.com/ochairo/pyfinder/internal/domain/entities"
)

// TablesRepository implements repositories.TablesRepository using an
// optional YAML file
type TablesRepository struct {
	path   string
	parser *TablesParser
}

// NewTablesRepository creates a repository. An empty path yields the defaults unchanged.
func NewTablesRepository(path string) *TablesRepository {
	return &TablesRepository{path: path, parser: NewTablesParser()}
}

// LoadTables returns defaults with the file's sections applied
func (r *TablesRepository) LoadTables(_ context.Context, defaults entities.MappingTables) (entities.MappingTables, error) {
	if r.path == "" {
		return defaults, nil
	}
	return r.parser.ParseFile(r.path, defaults)
}

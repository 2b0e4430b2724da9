package services

import (
	"sort"

	"github.com/ochairo/pyfinder/internal/domain/entities"
)

// SortForRender returns a copy of downloads ordered by implementation
// family, then version descending, then triple ascending
func SortForRender(downloads []entities.Download) []entities.Download {
	out := make([]entities.Download, len(downloads))
	copy(out, downloads)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ra, rb := a.Implementation.Rank(), b.Implementation.Rank(); ra != rb {
			return ra < rb
		}
		if c := a.Version.Compare(b.Version); c != 0 {
			return c > 0
		}
		return a.Triple.Compare(b.Triple) < 0
	})

	return out
}

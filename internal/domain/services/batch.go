package services

import (
	"fmt"

	"github.com/duke-git/lancet/v2/slice"
)

// Batch splits items into consecutive batches of n. The last batch may
// be shorter.
func Batch[T any](items []T, n int) ([][]T, error) {
	if n < 1 {
		return nil, fmt.Errorf("batch size must be at least one, got %d", n)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return slice.Chunk(items, n), nil
}

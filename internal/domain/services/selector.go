package services

import (
	"errors"

	"github.com/ochairo/pyfinder/internal/domain/entities"
)

// ErrNoCandidates is returned when selecting from an empty group
var ErrNoCandidates = errors.New("no candidate downloads")

// BestDownloadSelector picks one download per group by flavor preference
type BestDownloadSelector struct {
	prefs entities.FlavorPreferences
}

// NewBestDownloadSelector creates a selector ranking with prefs. Pass the
// same list the TripleParser extracted flavors with.
func NewBestDownloadSelector(prefs entities.FlavorPreferences) *BestDownloadSelector {
	return &BestDownloadSelector{prefs: prefs}
}

// Select returns the candidate with the lowest flavor rank. Equal ranks
// resolve to the earliest candidate in input order. The input is not
// reordered.
func (s *BestDownloadSelector) Select(candidates []entities.Download) (entities.Download, error) {
	if len(candidates) == 0 {
		return entities.Download{}, ErrNoCandidates
	}

	best := 0
	bestRank := s.prefs.Rank(candidates[0].Triple.Flavor)
	for i := 1; i < len(candidates); i++ {
		if rank := s.prefs.Rank(candidates[i].Triple.Flavor); rank < bestRank {
			best, bestRank = i, rank
		}
	}

	return candidates[best], nil
}

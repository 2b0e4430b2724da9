package gateways

import (
	"context"
	"fmt"

	"github.com/ochairo/pyfinder/internal/domain/entities"
	"github.com/ochairo/pyfinder/internal/domain/interfaces"
	"github.com/ochairo/pyfinder/internal/domain/services"
)

// CPythonReleasesURL lists python-build-standalone releases
const CPythonReleasesURL = "https://api.github.com/repos/indygreg/python-build-standalone/releases"

// CPythonFinder finds python-build-standalone downloads
type CPythonFinder struct {
	collector *PaginatedCollector
	selector  *services.BestDownloadSelector
	checksums *BatchChecksumFetcher
	logger    interfaces.Logger
	endpoint  string
}

// NewCPythonFinder creates a finder. An empty endpoint uses CPythonReleasesURL.
func NewCPythonFinder(
	collector *PaginatedCollector,
	selector *services.BestDownloadSelector,
	checksums *BatchChecksumFetcher,
	logger interfaces.Logger,
	endpoint string,
) *CPythonFinder {
	if endpoint == "" {
		endpoint = CPythonReleasesURL
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &CPythonFinder{
		collector: collector,
		selector:  selector,
		checksums: checksums,
		logger:    logger,
		endpoint:  endpoint,
	}
}

// Implementation returns cpython
func (f *CPythonFinder) Implementation() entities.Implementation {
	return entities.ImplementationCPython
}

// Find collects every release page, keeps the best download per group
// and attaches checksums
func (f *CPythonFinder) Find(ctx context.Context) ([]entities.Download, error) {
	grouping, err := f.collector.Collect(ctx, f.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to collect cpython downloads: %w", err)
	}

	selected, err := grouping.SelectBest(f.selector)
	if err != nil {
		return nil, fmt.Errorf("failed to select cpython downloads: %w", err)
	}

	enriched, err := f.checksums.Enrich(ctx, selected)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cpython checksums: %w", err)
	}

	return enriched, nil
}

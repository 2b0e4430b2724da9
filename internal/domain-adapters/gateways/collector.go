package gateways

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ochairo/pyfinder/internal/domain/interfaces"
	"github.com/ochairo/pyfinder/internal/domain/interfaces/gateways"
	"github.com/ochairo/pyfinder/internal/domain/services"
)

// DefaultMaxPages is the number of release pages walked before giving up
const DefaultMaxPages = 99

// WalkReleasePages requests endpoint?page=1..maxPages and hands every
// decoded page to fn. Walking stops at the first empty page.
func WalkReleasePages(
	ctx context.Context,
	fetcher gateways.Fetcher,
	logger interfaces.Logger,
	endpoint string,
	maxPages int,
	fn func(page int, releases []gateways.GitHubRelease) error,
) error {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	for page := 1; page <= maxPages; page++ {
		url := fmt.Sprintf("%s?page=%d", endpoint, page)
		logger.Info("fetching release page", interfaces.F("page", page), interfaces.F("endpoint", endpoint))

		resp, err := fetcher.Fetch(ctx, url)
		if err != nil {
			return fmt.Errorf("failed to fetch release page %d: %w", page, err)
		}

		var releases []gateways.GitHubRelease
		if err := json.Unmarshal(resp.Body, &releases); err != nil {
			return fmt.Errorf("failed to decode release page %d: %w", page, err)
		}
		if len(releases) == 0 {
			return nil
		}

		if err := fn(page, releases); err != nil {
			return err
		}
	}

	return nil
}

// PaginatedCollector walks a paginated releases endpoint and groups every
// parsable asset by version and (architecture, platform)
type PaginatedCollector struct {
	fetcher  gateways.Fetcher
	parser   *services.FilenameParser
	logger   interfaces.Logger
	maxPages int
}

// NewPaginatedCollector creates a collector
func NewPaginatedCollector(fetcher gateways.Fetcher, parser *services.FilenameParser, logger interfaces.Logger, maxPages int) *PaginatedCollector {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &PaginatedCollector{fetcher: fetcher, parser: parser, logger: logger, maxPages: maxPages}
}

// Collect walks endpoint and returns the grouped candidates. Assets that
// fail to parse are skipped.
func (c *PaginatedCollector) Collect(ctx context.Context, endpoint string) (*services.DownloadGrouping, error) {
	grouping := services.NewDownloadGrouping()
	skipped := 0

	err := WalkReleasePages(ctx, c.fetcher, c.logger, endpoint, c.maxPages, func(page int, releases []gateways.GitHubRelease) error {
		for _, release := range releases {
			for _, asset := range release.Assets {
				download, reason := c.parser.ParseURL(asset.BrowserDownloadURL)
				if reason != "" {
					skipped++
					c.logger.Debug("skipping asset",
						interfaces.F("url", asset.BrowserDownloadURL),
						interfaces.F("reason", string(reason)))
					continue
				}
				grouping.Add(download)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("collected downloads",
		interfaces.F("candidates", grouping.Len()),
		interfaces.F("groups", grouping.GroupCount()),
		interfaces.F("skipped", skipped))

	return grouping, nil
}

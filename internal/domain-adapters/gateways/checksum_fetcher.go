package gateways

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ochairo/pyfinder/internal/domain/entities"
	"github.com/ochairo/pyfinder/internal/domain/interfaces"
	"github.com/ochairo/pyfinder/internal/domain/interfaces/gateways"
	"github.com/ochairo/pyfinder/internal/domain/services"
)

// DefaultChecksumBatchSize bounds concurrent manifest requests
const DefaultChecksumBatchSize = 20

const manifestName = "SHA256SUMS"

// BatchChecksumFetcher fills in checksums from per-release SHA256SUMS
// manifests, fetching at most batchSize manifests at a time
type BatchChecksumFetcher struct {
	fetcher   gateways.Fetcher
	logger    interfaces.Logger
	batchSize int
}

// NewBatchChecksumFetcher creates a checksum fetcher
func NewBatchChecksumFetcher(fetcher gateways.Fetcher, logger interfaces.Logger, batchSize int) *BatchChecksumFetcher {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	if batchSize <= 0 {
		batchSize = DefaultChecksumBatchSize
	}
	return &BatchChecksumFetcher{fetcher: fetcher, logger: logger, batchSize: batchSize}
}

// ManifestURL returns the SHA256SUMS URL for the release containing downloadURL
func ManifestURL(downloadURL string) string {
	return services.ReleaseDir(downloadURL) + "/" + manifestName
}

// Enrich returns copies of downloads with SHA256 set wherever a manifest
// lists the download's filename. Batches run one after another; within a
// batch every fetch runs concurrently and the first failure other than
// "not found" cancels the batch and is returned.
func (b *BatchChecksumFetcher) Enrich(ctx context.Context, downloads []entities.Download) ([]entities.Download, error) {
	var urls []string
	seen := make(map[string]bool)
	for _, d := range downloads {
		u := ManifestURL(d.URL)
		if !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}

	batches, err := services.Batch(urls, b.batchSize)
	if err != nil {
		return nil, err
	}

	manifests := make([]string, len(urls))
	offset := 0
	for _, batch := range batches {
		b.logger.Info("fetching checksums",
			interfaces.F("completed", offset),
			interfaces.F("total", len(urls)))

		g, gctx := errgroup.WithContext(ctx)
		for i, u := range batch {
			u := u
			slot := offset + i
			g.Go(func() error {
				resp, err := b.fetcher.Fetch(gctx, u)
				if gateways.IsNotFound(err) {
					b.logger.Debug("no checksum manifest", interfaces.F("url", u))
					return nil
				}
				if err != nil {
					return err
				}
				manifests[slot] = resp.Text()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("failed to fetch checksum manifests: %w", err)
		}
		offset += len(batch)
	}

	lookup := make(map[string]string)
	for _, text := range manifests {
		for filename, sum := range services.ParseSHA256Sums(text) {
			lookup[filename] = sum
		}
	}

	out := make([]entities.Download, len(downloads))
	for i, d := range downloads {
		if sum, ok := lookup[d.Filename]; ok {
			out[i] = d.WithSHA256(sum)
		} else {
			out[i] = d
		}
	}
	return out, nil
}

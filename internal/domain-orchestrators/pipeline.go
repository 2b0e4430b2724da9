// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"time"

	"github.com/ochairo/pyfinder/internal/domain/entities"
	"github.com/ochairo/pyfinder/internal/domain/interfaces"
	"github.com/ochairo/pyfinder/internal/domain/services"
)

// Finder produces the selected downloads of one implementation family
type Finder interface {
	Implementation() entities.Implementation
	Find(ctx context.Context) ([]entities.Download, error)
}

// UvFinder produces the downloads of the newest uv release
type UvFinder interface {
	Find(ctx context.Context) ([]entities.UvDownload, error)
}

// PipelineConfig holds configuration for the pipelines
type PipelineConfig struct {
	// Deadline bounds a whole run. Zero means no deadline.
	Deadline time.Duration
}

// Pipeline runs every finder in turn and merges their results into
// render order
type Pipeline struct {
	finders  []Finder
	logger   interfaces.Logger
	deadline time.Duration
}

// NewPipeline creates a pipeline over finders
func NewPipeline(finders []Finder, logger interfaces.Logger, config PipelineConfig) *Pipeline {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &Pipeline{finders: finders, logger: logger, deadline: config.Deadline}
}

// PipelineResult contains the outcome of a pipeline run
type PipelineResult struct {
	Downloads     []entities.Download
	PerFamily     map[entities.Implementation]int
	WithChecksums int
	TotalDuration time.Duration
}

// Run executes the finders. Any finder error aborts the run and no
// partial result is returned.
func (p *Pipeline) Run(ctx context.Context) (*PipelineResult, error) {
	start := time.Now()
	ctx, cancel := withDeadline(ctx, p.deadline)
	defer cancel()

	result := &PipelineResult{PerFamily: make(map[entities.Implementation]int)}
	var all []entities.Download
	for _, finder := range p.finders {
		impl := finder.Implementation()
		p.logger.Info("finding downloads", interfaces.F("implementation", string(impl)))

		downloads, err := finder.Find(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", impl, err)
		}

		result.PerFamily[impl] += len(downloads)
		all = append(all, downloads...)
		p.logger.Info("found downloads",
			interfaces.F("implementation", string(impl)),
			interfaces.F("count", len(downloads)))
	}

	for _, d := range all {
		if d.HasSHA256() {
			result.WithChecksums++
		}
	}
	result.Downloads = services.SortForRender(all)
	result.TotalDuration = time.Since(start)
	return result, nil
}

// UvPipeline runs the uv finder under the pipeline deadline
type UvPipeline struct {
	finder   UvFinder
	logger   interfaces.Logger
	deadline time.Duration
}

// NewUvPipeline creates a uv pipeline
func NewUvPipeline(finder UvFinder, logger interfaces.Logger, config PipelineConfig) *UvPipeline {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &UvPipeline{finder: finder, logger: logger, deadline: config.Deadline}
}

// Run finds the uv downloads
func (p *UvPipeline) Run(ctx context.Context) ([]entities.UvDownload, error) {
	ctx, cancel := withDeadline(ctx, p.deadline)
	defer cancel()

	p.logger.Info("finding uv downloads")
	downloads, err := p.finder.Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("uv: %w", err)
	}
	p.logger.Info("found uv downloads", interfaces.F("count", len(downloads)))
	return downloads, nil
}

func withDeadline(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

package main

import (
	"bytes"
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	adapters "github.com/ochairo/pyfinder/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/pyfinder/internal/domain-orchestrators"
	"github.com/ochairo/pyfinder/internal/domain/interfaces"
	"github.com/ochairo/pyfinder/internal/domain/services"
	"github.com/ochairo/pyfinder/internal/external-adapters/render"
)

func newPythonCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "python",
		Short: "Render the CPython and PyPy download table",
		Example: `  pyfinder python > downloads.inc
  GITHUB_TOKEN=... pyfinder python --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPython(cmd.Context())
		},
	}
}

func (a *app) runPython(ctx context.Context) error {
	renderer, err := render.NewRenderer(a.cfg.Output.Format)
	if err != nil {
		return err
	}

	fetcher, err := a.newFetcher()
	if err != nil {
		return err
	}

	tables, err := a.loadTables(ctx)
	if err != nil {
		return err
	}

	triples := services.NewTripleParser(tables)
	collector := adapters.NewPaginatedCollector(fetcher, services.NewFilenameParser(triples), a.logger, a.cfg.Finder.MaxPages)
	selector := services.NewBestDownloadSelector(tables.Flavors)
	checksums := adapters.NewBatchChecksumFetcher(fetcher, a.logger, a.cfg.Finder.ChecksumBatchSize)

	pipeline := orchestrators.NewPipeline([]orchestrators.Finder{
		adapters.NewCPythonFinder(collector, selector, checksums, a.logger, a.endpoints.cpython),
		adapters.NewPyPyFinder(fetcher, a.logger, a.endpoints.pypyVersions, a.endpoints.pypyChecksums),
	}, a.logger, orchestrators.PipelineConfig{Deadline: a.cfg.Pipeline.Deadline})

	result, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := renderer.RenderPython(&buf, result.Downloads); err != nil {
		return err
	}
	size := humanize.Bytes(uint64(buf.Len()))
	if _, err := buf.WriteTo(a.stdout); err != nil {
		return err
	}

	a.logger.Info("done",
		interfaces.F("downloads", len(result.Downloads)),
		interfaces.F("with_checksum", result.WithChecksums),
		interfaces.F("output", size),
		interfaces.F("took", result.TotalDuration.Round(time.Millisecond)))
	return nil
}

package main

import (
	"bytes"
	"context"

	"github.com/spf13/cobra"

	adapters "github.com/ochairo/pyfinder/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/pyfinder/internal/domain-orchestrators"
	"github.com/ochairo/pyfinder/internal/external-adapters/render"
)

func newUvCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "uv",
		Short:   "Render the download table of the latest uv release",
		Example: `  pyfinder uv > uv_downloads.inc`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runUv(cmd.Context())
		},
	}
}

func (a *app) runUv(ctx context.Context) error {
	renderer, err := render.NewRenderer(a.cfg.Output.Format)
	if err != nil {
		return err
	}

	fetcher, err := a.newFetcher()
	if err != nil {
		return err
	}

	finder := adapters.NewUvFinder(fetcher, a.logger, a.endpoints.uv, a.cfg.Finder.MaxPages, a.cfg.Finder.UvConcurrency)
	downloads, err := orchestrators.NewUvPipeline(finder, a.logger,
		orchestrators.PipelineConfig{Deadline: a.cfg.Pipeline.Deadline}).Run(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := renderer.RenderUv(&buf, downloads); err != nil {
		return err
	}
	_, err = buf.WriteTo(a.stdout)
	return err
}

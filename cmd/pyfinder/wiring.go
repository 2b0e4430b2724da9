package main

import (
	"context"
	"fmt"

	"github.com/ochairo/pyfinder/internal/clock"
	adapters "github.com/ochairo/pyfinder/internal/domain-adapters/gateways"
	"github.com/ochairo/pyfinder/internal/domain/entities"
	"github.com/ochairo/pyfinder/internal/domain/interfaces/gateways"
	"github.com/ochairo/pyfinder/internal/domain/interfaces/repositories"
	"github.com/ochairo/pyfinder/internal/external-adapters/yaml"
)

// newFetcher builds the authenticated rate-limited fetcher
func (a *app) newFetcher() (gateways.Fetcher, error) {
	token, err := a.cfg.ResolveToken()
	if err != nil {
		return nil, err
	}

	return adapters.NewRateLimitedFetcher(a.logger, adapters.FetcherConfig{
		Token:               token,
		APIVersion:          a.cfg.GitHub.APIVersion,
		Timeout:             a.cfg.Fetch.Timeout,
		MaxRateLimitRetries: a.cfg.Fetch.MaxRateLimitRetries,
		MaxRateLimitWait:    a.cfg.Fetch.MaxRateLimitWait,
		FallbackWait:        a.cfg.Fetch.FallbackWait,
		RequestsPerSecond:   a.cfg.Fetch.RequestsPerSecond,
		Clock:               clock.Real(),
		HTTPClient:          a.httpClient,
	}), nil
}

// loadTables returns the CPython mapping tables with any configured overrides
func (a *app) loadTables(ctx context.Context) (entities.MappingTables, error) {
	var repo repositories.TablesRepository = yaml.NewTablesRepository(a.cfg.Finder.TablesFile)
	tables, err := repo.LoadTables(ctx, entities.DefaultCPythonTables())
	if err != nil {
		return entities.MappingTables{}, fmt.Errorf("failed to load mapping tables: %w", err)
	}
	return tables, nil
}

package gateways

import (
	"context"
	"fmt"
	"regexp"

	"github.com/blang/semver"
	"golang.org/x/sync/errgroup"

	"github.com/ochairo/pyfinder/internal/domain/entities"
	"github.com/ochairo/pyfinder/internal/domain/interfaces"
	"github.com/ochairo/pyfinder/internal/domain/interfaces/gateways"
	"github.com/ochairo/pyfinder/internal/domain/services"
)

// DefaultUvConcurrency bounds concurrent .sha256 requests
const DefaultUvConcurrency = 8

// UvReleasesURL lists uv releases
const UvReleasesURL = "https://api.github.com/repos/astral-sh/uv/releases"

var uvAssetPattern = regexp.MustCompile(`uv-(?P<arch>[^\-]+)-(?P<platenv>.+)(\.tar\.gz|\.zip)$`)

var uvArchitectures = map[string]string{
	"x86_64":  entities.ArchX86_64,
	"i686":    "i686",
	"aarch64": entities.ArchAarch64,
}

var uvPlatformEnvs = map[string][2]string{
	"unknown-linux-gnu":  {entities.PlatformLinux, entities.EnvGNU},
	"unknown-linux-musl": {entities.PlatformLinux, entities.EnvMusl},
	"apple-darwin":       {entities.PlatformMacOS, ""},
	"pc-windows-msvc":    {entities.PlatformWindows, ""},
}

// ParseUvAssetTriple resolves the triple of a uv release asset URL
func ParseUvAssetTriple(url string) (entities.PlatformTriple, bool) {
	m := uvAssetPattern.FindStringSubmatch(url)
	if m == nil {
		return entities.PlatformTriple{}, false
	}

	arch, ok := uvArchitectures[m[uvAssetPattern.SubexpIndex("arch")]]
	if !ok {
		return entities.PlatformTriple{}, false
	}
	platEnv, ok := uvPlatformEnvs[m[uvAssetPattern.SubexpIndex("platenv")]]
	if !ok {
		return entities.PlatformTriple{}, false
	}

	return entities.PlatformTriple{Architecture: arch, Platform: platEnv[0], Environment: platEnv[1]}, true
}

// UvFinder finds the assets of the newest uv release
type UvFinder struct {
	fetcher     gateways.Fetcher
	logger      interfaces.Logger
	endpoint    string
	maxPages    int
	concurrency int
}

// NewUvFinder creates a finder. An empty endpoint uses UvReleasesURL.
func NewUvFinder(fetcher gateways.Fetcher, logger interfaces.Logger, endpoint string, maxPages, concurrency int) *UvFinder {
	if endpoint == "" {
		endpoint = UvReleasesURL
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	if concurrency <= 0 {
		concurrency = DefaultUvConcurrency
	}
	return &UvFinder{fetcher: fetcher, logger: logger, endpoint: endpoint, maxPages: maxPages, concurrency: concurrency}
}

// Find returns the supported assets of the release with the highest tag,
// each with the checksum from its .sha256 side file
func (f *UvFinder) Find(ctx context.Context) ([]entities.UvDownload, error) {
	var (
		latest    *gateways.GitHubRelease
		latestVer semver.Version
	)

	err := WalkReleasePages(ctx, f.fetcher, f.logger, f.endpoint, f.maxPages, func(_ int, releases []gateways.GitHubRelease) error {
		for i := range releases {
			v, err := semver.ParseTolerant(releases[i].TagName)
			if err != nil {
				f.logger.Debug("skipping uv release with unparsable tag", interfaces.F("tag", releases[i].TagName))
				continue
			}
			if latest == nil || latestVer.LT(v) {
				release := releases[i]
				latest, latestVer = &release, v
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list uv releases: %w", err)
	}
	if latest == nil {
		return nil, nil
	}

	version := entities.Version{Major: int(latestVer.Major), Minor: int(latestVer.Minor), Patch: int(latestVer.Patch)}
	f.logger.Info("latest uv release", interfaces.F("tag", latest.TagName))

	var downloads []entities.UvDownload
	for _, asset := range latest.Assets {
		triple, ok := ParseUvAssetTriple(asset.BrowserDownloadURL)
		if !ok {
			continue
		}
		downloads = append(downloads, entities.UvDownload{
			Version: version,
			Triple:  triple,
			URL:     asset.BrowserDownloadURL,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i := range downloads {
		i := i
		g.Go(func() error {
			resp, err := f.fetcher.Fetch(gctx, downloads[i].URL+".sha256")
			if err != nil {
				return fmt.Errorf("failed to fetch uv checksum: %w", err)
			}
			downloads[i].SHA256 = services.ParseDetachedChecksum(resp.Text())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return downloads, nil
}

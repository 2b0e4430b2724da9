package gateways

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/blang/semver"

	"github.com/ochairo/pyfinder/internal/domain/entities"
	"github.com/ochairo/pyfinder/internal/domain/interfaces"
	"github.com/ochairo/pyfinder/internal/domain/interfaces/gateways"
	"github.com/ochairo/pyfinder/internal/domain/services"
)

// PyPy feed locations
const (
	PyPyReleasesURL  = "https://raw.githubusercontent.com/pypy/pypy/main/pypy/tool/release/versions.json"
	PyPyChecksumsURL = "https://raw.githubusercontent.com/pypy/pypy.org/main/pages/checksums.rst"
)

var pypyMinimumVersion = semver.MustParse("3.7.0")

var pypyArchitectures = map[string]string{
	"x64":     entities.ArchX86_64,
	"i686":    entities.ArchX86,
	"aarch64": entities.ArchAarch64,
	"arm64":   entities.ArchAarch64,
}

var pypyPlatforms = map[string]string{
	"darwin": entities.PlatformMacOS,
	"win64":  entities.PlatformWindows,
	"linux":  entities.PlatformLinux,
}

type pypyRelease struct {
	PyPyVersion   string     `json:"pypy_version"`
	PythonVersion string     `json:"python_version"`
	Stable        bool       `json:"stable"`
	Files         []pypyFile `json:"files"`
}

type pypyFile struct {
	Filename    string `json:"filename"`
	Arch        string `json:"arch"`
	Platform    string `json:"platform"`
	DownloadURL string `json:"download_url"`
}

// PyPyFinder finds PyPy downloads from the pypy versions.json feed
type PyPyFinder struct {
	fetcher      gateways.Fetcher
	logger       interfaces.Logger
	releasesURL  string
	checksumsURL string
}

// NewPyPyFinder creates a finder. Empty URLs use the public feeds.
func NewPyPyFinder(fetcher gateways.Fetcher, logger interfaces.Logger, releasesURL, checksumsURL string) *PyPyFinder {
	if releasesURL == "" {
		releasesURL = PyPyReleasesURL
	}
	if checksumsURL == "" {
		checksumsURL = PyPyChecksumsURL
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &PyPyFinder{fetcher: fetcher, logger: logger, releasesURL: releasesURL, checksumsURL: checksumsURL}
}

// Implementation returns pypy
func (f *PyPyFinder) Implementation() entities.Implementation {
	return entities.ImplementationPyPy
}

// Find returns one download per (python version, architecture, platform),
// taking the first stable entry the feed lists, with checksums attached
func (f *PyPyFinder) Find(ctx context.Context) ([]entities.Download, error) {
	downloads, err := f.fetchDownloads(ctx)
	if err != nil {
		return nil, err
	}

	f.logger.Info("fetching pypy checksums", interfaces.F("url", f.checksumsURL))
	resp, err := f.fetcher.Fetch(ctx, f.checksumsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pypy checksums: %w", err)
	}
	sums := services.ParsePyPyChecksums(resp.Text())

	out := make([]entities.Download, len(downloads))
	for i, d := range downloads {
		if sum, ok := sums[d.Filename]; ok {
			d = d.WithSHA256(sum)
		}
		out[i] = d
	}
	return out, nil
}

type pypyKey struct {
	version  entities.Version
	arch     string
	platform string
}

func (f *PyPyFinder) fetchDownloads(ctx context.Context) ([]entities.Download, error) {
	f.logger.Info("fetching pypy downloads", interfaces.F("url", f.releasesURL))
	resp, err := f.fetcher.Fetch(ctx, f.releasesURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pypy versions: %w", err)
	}

	var releases []pypyRelease
	if err := json.Unmarshal(resp.Body, &releases); err != nil {
		return nil, fmt.Errorf("failed to decode pypy versions: %w", err)
	}

	seen := make(map[pypyKey]bool)
	var downloads []entities.Download
	for _, release := range releases {
		if !release.Stable {
			continue
		}
		pyVersion, err := semver.ParseTolerant(release.PythonVersion)
		if err != nil {
			f.logger.Warn("skipping pypy release with unparsable python version",
				interfaces.F("pypy_version", release.PyPyVersion),
				interfaces.F("python_version", release.PythonVersion))
			continue
		}
		if pyVersion.LT(pypyMinimumVersion) {
			continue
		}
		version := entities.Version{
			Major: int(pyVersion.Major),
			Minor: int(pyVersion.Minor),
			Patch: int(pyVersion.Patch),
		}

		for _, file := range release.Files {
			arch, okArch := pypyArchitectures[file.Arch]
			platform, okPlatform := pypyPlatforms[file.Platform]
			if !okArch || !okPlatform {
				continue
			}

			key := pypyKey{version: version, arch: arch, platform: platform}
			if seen[key] {
				continue
			}
			seen[key] = true

			env := ""
			if platform == entities.PlatformLinux {
				env = entities.EnvGNU
			}
			downloads = append(downloads, entities.Download{
				Version: version,
				Triple: entities.PlatformTriple{
					Architecture: arch,
					Platform:     platform,
					Environment:  env,
				},
				Implementation: entities.ImplementationPyPy,
				Filename:       file.Filename,
				URL:            file.DownloadURL,
			})
		}
	}

	f.logger.Info("found pypy downloads", interfaces.F("count", len(downloads)))
	return downloads, nil
}

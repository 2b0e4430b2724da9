// Package render writes download tables in the supported output formats.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ochairo/pyfinder/internal/domain/entities"
)

// Output formats
const (
	FormatRust = "rust"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted format names
var Formats = []string{FormatRust, FormatJSON, FormatYAML}

// Renderer writes an already ordered download table
type Renderer interface {
	RenderPython(w io.Writer, downloads []entities.Download) error
	RenderUv(w io.Writer, downloads []entities.UvDownload) error
}

// NewRenderer returns the renderer for format
func NewRenderer(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case FormatRust, "":
		return &RustRenderer{}, nil
	case FormatJSON:
		return &JSONRenderer{Indent: "  "}, nil
	case FormatYAML:
		return &YAMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// pythonRecord is the structured form of one Download
type pythonRecord struct {
	Implementation string `json:"implementation" yaml:"implementation"`
	Arch           string `json:"arch" yaml:"arch"`
	OS             string `json:"os" yaml:"os"`
	Major          int    `json:"major" yaml:"major"`
	Minor          int    `json:"minor" yaml:"minor"`
	Patch          int    `json:"patch" yaml:"patch"`
	URL            string `json:"url" yaml:"url"`
	SHA256         string `json:"sha256,omitempty" yaml:"sha256,omitempty"`
}

type uvRecord struct {
	Arch        string `json:"arch" yaml:"arch"`
	OS          string `json:"os" yaml:"os"`
	Environment string `json:"environment,omitempty" yaml:"environment,omitempty"`
	Major       int    `json:"major" yaml:"major"`
	Minor       int    `json:"minor" yaml:"minor"`
	Patch       int    `json:"patch" yaml:"patch"`
	URL         string `json:"url" yaml:"url"`
	SHA256      string `json:"sha256" yaml:"sha256"`
}

func pythonRecords(downloads []entities.Download) []pythonRecord {
	records := make([]pythonRecord, 0, len(downloads))
	for _, d := range downloads {
		records = append(records, pythonRecord{
			Implementation: string(d.Implementation),
			Arch:           d.Triple.Architecture,
			OS:             d.Triple.Platform,
			Major:          d.Version.Major,
			Minor:          d.Version.Minor,
			Patch:          d.Version.Patch,
			URL:            d.URL,
			SHA256:         d.SHA256,
		})
	}
	return records
}

func uvRecords(downloads []entities.UvDownload) []uvRecord {
	records := make([]uvRecord, 0, len(downloads))
	for _, d := range downloads {
		records = append(records, uvRecord{
			Arch:        d.Triple.Architecture,
			OS:          d.Triple.Platform,
			Environment: d.Triple.Environment,
			Major:       d.Version.Major,
			Minor:       d.Version.Minor,
			Patch:       d.Version.Patch,
			URL:         d.URL,
			SHA256:      d.SHA256,
		})
	}
	return records
}

package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ochairo/pyfinder/internal/domain/entities"
)

// JSONRenderer emits a JSON array
type JSONRenderer struct {
	Indent string
}

// RenderPython writes downloads as a JSON array
func (r *JSONRenderer) RenderPython(w io.Writer, downloads []entities.Download) error {
	return r.encode(w, pythonRecords(downloads))
}

// RenderUv writes uv downloads as a JSON array
func (r *JSONRenderer) RenderUv(w io.Writer, downloads []entities.UvDownload) error {
	return r.encode(w, uvRecords(downloads))
}

func (r *JSONRenderer) encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if r.Indent != "" {
		enc.SetIndent("", r.Indent)
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// YAMLRenderer emits a YAML sequence
type YAMLRenderer struct{}

// RenderPython writes downloads as a YAML sequence
func (r *YAMLRenderer) RenderPython(w io.Writer, downloads []entities.Download) error {
	return encodeYAML(w, pythonRecords(downloads))
}

// RenderUv writes uv downloads as a YAML sequence
func (r *YAMLRenderer) RenderUv(w io.Writer, downloads []entities.UvDownload) error {
	return encodeYAML(w, uvRecords(downloads))
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

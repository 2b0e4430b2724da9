// Package yaml provides YAML-based mapping table parsing and repository implementations.
package yaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ochairo/pyfinder/internal/domain/entities"
)

// yamlTables represents the raw YAML structure. A section that is
// omitted keeps its default; a section that is present replaces it.
type yamlTables struct {
	Architectures     map[string]string `yaml:"architectures"`
	Platforms         map[string]string `yaml:"platforms"`
	Environments      map[string]string `yaml:"environments"`
	SpecialTriples    map[string]string `yaml:"special_triples"`
	FlavorPreferences []string          `yaml:"flavor_preferences"`
	HiddenFlavors     []string          `yaml:"hidden_flavors"`
}

// TablesParser parses mapping table override files
type TablesParser struct{}

// NewTablesParser creates a new YAML parser
func NewTablesParser() *TablesParser {
	return &TablesParser{}
}

// ParseFile parses a YAML tables file on top of defaults
func (p *TablesParser) ParseFile(filePath string, defaults entities.MappingTables) (entities.MappingTables, error) {
	//nolint:gosec // G304: filePath comes from the user's configuration
	data, err := os.ReadFile(filePath)
	if err != nil {
		return entities.MappingTables{}, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data, defaults)
}

// Parse parses YAML bytes on top of defaults
func (p *TablesParser) Parse(data []byte, defaults entities.MappingTables) (entities.MappingTables, error) {
	var raw yamlTables
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return entities.MappingTables{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	tables := defaults
	for _, section := range []struct {
		name string
		src  map[string]string
		dst  *map[string]string
	}{
		{"architectures", raw.Architectures, &tables.Architectures},
		{"platforms", raw.Platforms, &tables.Platforms},
		{"environments", raw.Environments, &tables.Environments},
		{"special_triples", raw.SpecialTriples, &tables.SpecialTriples},
	} {
		if section.src == nil {
			continue
		}
		if err := validateMapping(section.name, section.src); err != nil {
			return entities.MappingTables{}, err
		}
		*section.dst = section.src
	}

	if raw.FlavorPreferences != nil {
		if err := validateTags("flavor_preferences", raw.FlavorPreferences); err != nil {
			return entities.MappingTables{}, err
		}
		tables.Flavors = entities.NewFlavorPreferences(raw.FlavorPreferences...)
	}
	if raw.HiddenFlavors != nil {
		if err := validateTags("hidden_flavors", raw.HiddenFlavors); err != nil {
			return entities.MappingTables{}, err
		}
		tables.HiddenFlavors = raw.HiddenFlavors
	}

	return tables, nil
}

func validateMapping(section string, m map[string]string) error {
	for k, v := range m {
		if k == "" || v == "" {
			return fmt.Errorf("%s: empty alias or value (%q: %q)", section, k, v)
		}
	}
	return nil
}

func validateTags(section string, tags []string) error {
	for i, tag := range tags {
		if tag == "" {
			return fmt.Errorf("%s: entry %d is empty", section, i)
		}
	}
	return nil
}

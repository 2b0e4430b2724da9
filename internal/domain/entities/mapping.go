package entities

// FlavorPreferences is an immutable ordered list of flavor tags, most
// preferred first. The same value drives flavor extraction and ranking.
type FlavorPreferences struct {
	tags  []string
	index map[string]int
}

// NewFlavorPreferences builds a preference list. Repeated tags keep the
// position of their first occurrence.
func NewFlavorPreferences(tags ...string) FlavorPreferences {
	p := FlavorPreferences{index: make(map[string]int, len(tags))}
	for _, tag := range tags {
		if _, seen := p.index[tag]; seen || tag == "" {
			continue
		}
		p.index[tag] = len(p.tags)
		p.tags = append(p.tags, tag)
	}
	return p
}

// Tags returns a copy of the ordered tags
func (p FlavorPreferences) Tags() []string {
	out := make([]string, len(p.tags))
	copy(out, p.tags)
	return out
}

// Len returns the number of distinct tags
func (p FlavorPreferences) Len() int {
	return len(p.tags)
}

// Rank returns the index of flavor in the list. Unknown or absent
// flavors rank one past the end.
func (p FlavorPreferences) Rank(flavor string) int {
	if idx, ok := p.index[flavor]; ok {
		return idx
	}
	return len(p.tags)
}

// MappingTables holds the alias tables used to normalise raw triples
type MappingTables struct {
	Architectures  map[string]string
	Platforms      map[string]string
	Environments   map[string]string
	SpecialTriples map[string]string
	Flavors        FlavorPreferences
	HiddenFlavors  []string
}

// DefaultCPythonTables returns the tables for python-build-standalone assets
func DefaultCPythonTables() MappingTables {
	return MappingTables{
		Architectures: map[string]string{
			"x86_64":  ArchX86_64,
			"x86":     ArchX86,
			"i686":    ArchX86,
			"aarch64": ArchAarch64,
		},
		Platforms: map[string]string{
			"darwin":  PlatformMacOS,
			"windows": PlatformWindows,
			"linux":   PlatformLinux,
		},
		// musl builds are not supported yet.
		Environments: map[string]string{
			"gnu": EnvGNU,
		},
		SpecialTriples: map[string]string{
			"macos":                    "x86_64-apple-darwin",
			"linux64":                  "x86_64-unknown-linux-gnu",
			"windows-amd64":            "x86_64-pc-windows-msvc",
			"windows-x86-shared-pgo":   "i686-pc-windows-msvc-shared-pgo",
			"windows-amd64-shared-pgo": "x86_64-pc-windows-msvc-shared-pgo",
			"windows-x86":              "i686-pc-windows-msvc",
			"linux64-musl":             "x86_64-unknown-linux-musl",
		},
		Flavors:       NewFlavorPreferences("shared-pgo", "shared-noopt", "pgo+lto", "pgo", "lto"),
		HiddenFlavors: []string{"debug", "noopt", "install_only"},
	}
}

// ExtractionOrder returns the preference tags followed by the hidden tags
func (m MappingTables) ExtractionOrder() []string {
	order := m.Flavors.Tags()
	return append(order, m.HiddenFlavors...)
}

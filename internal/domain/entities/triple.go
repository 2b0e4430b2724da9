package entities

import "strings"

// Canonical architecture, platform and environment names
const (
	ArchX86_64  = "x86_64"
	ArchX86     = "x86"
	ArchAarch64 = "aarch64"

	PlatformLinux   = "linux"
	PlatformMacOS   = "macos"
	PlatformWindows = "windows"

	EnvGNU  = "gnu"
	EnvMusl = "musl"
)

// PlatformTriple identifies a build target. Environment and Flavor are
// empty when absent.
type PlatformTriple struct {
	Architecture string
	Platform     string
	Environment  string
	Flavor       string
}

// GroupKey is the (architecture, platform) pair that selection groups on.
// Environment and flavor are deliberately not part of it.
type GroupKey struct {
	Architecture string
	Platform     string
}

// Group returns the selection group of the triple
func (t PlatformTriple) Group() GroupKey {
	return GroupKey{Architecture: t.Architecture, Platform: t.Platform}
}

// Compare orders triples by architecture, platform, environment, then flavor.
// An absent field sorts before any present one.
func (t PlatformTriple) Compare(other PlatformTriple) int {
	if c := strings.Compare(t.Architecture, other.Architecture); c != 0 {
		return c
	}
	if c := strings.Compare(t.Platform, other.Platform); c != 0 {
		return c
	}
	if c := strings.Compare(t.Environment, other.Environment); c != 0 {
		return c
	}
	return strings.Compare(t.Flavor, other.Flavor)
}

// String joins the present fields with "-"
func (t PlatformTriple) String() string {
	parts := []string{t.Architecture, t.Platform}
	if t.Environment != "" {
		parts = append(parts, t.Environment)
	}
	if t.Flavor != "" {
		parts = append(parts, t.Flavor)
	}
	return strings.Join(parts, "-")
}

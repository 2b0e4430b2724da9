// Package services implements domain business logic and use cases.
package services

import (
	"strings"

	"github.com/ochairo/pyfinder/internal/domain/entities"
)

// RejectReason explains why an asset was not accepted
type RejectReason string

// Rejection reasons. The zero value means the result is valid.
const (
	RejectMalformed           RejectReason = "malformed"
	RejectChecksumFile        RejectReason = "checksum_file"
	RejectUnknownArchitecture RejectReason = "unknown_architecture"
	RejectUnknownPlatform     RejectReason = "unknown_platform"
	RejectMissingEnvironment  RejectReason = "missing_environment"
)

// TripleResult is either a valid triple or a rejection reason
type TripleResult struct {
	Triple entities.PlatformTriple
	Reason RejectReason
}

// Valid reports whether the triple was accepted
func (r TripleResult) Valid() bool {
	return r.Reason == ""
}

func rejectTriple(reason RejectReason) TripleResult {
	return TripleResult{Reason: reason}
}

// TripleParser turns raw build triples such as
// "aarch64-unknown-linux-gnu-pgo+lto" into PlatformTriples
type TripleParser struct {
	tables          entities.MappingTables
	extractionOrder []string
}

// NewTripleParser creates a parser over the given tables
func NewTripleParser(tables entities.MappingTables) *TripleParser {
	return &TripleParser{
		tables:          tables,
		extractionOrder: tables.ExtractionOrder(),
	}
}

// Parse resolves raw into a triple.
//
// Environment, platform and architecture are matched in that order,
// each scanning the remaining pieces from the end. A match consumes the
// matched piece and everything after it.
func (p *TripleParser) Parse(raw string) TripleResult {
	if alias, ok := p.tables.SpecialTriples[raw]; ok {
		raw = alias
	}

	flavor := p.matchFlavor(raw)
	pieces := strings.Split(raw, "-")

	env, pieces := matchTail(pieces, p.tables.Environments)
	platform, pieces := matchTail(pieces, p.tables.Platforms)
	arch, _ := matchTail(pieces, p.tables.Architectures)

	switch {
	case arch == "":
		return rejectTriple(RejectUnknownArchitecture)
	case platform == "":
		return rejectTriple(RejectUnknownPlatform)
	case platform == entities.PlatformLinux && env == "":
		return rejectTriple(RejectMissingEnvironment)
	}

	return TripleResult{Triple: entities.PlatformTriple{
		Architecture: arch,
		Platform:     platform,
		Environment:  env,
		Flavor:       flavor,
	}}
}

// matchFlavor returns the first tag, in list order, that occurs anywhere in raw
func (p *TripleParser) matchFlavor(raw string) string {
	for _, flavor := range p.extractionOrder {
		if strings.Contains(raw, flavor) {
			return flavor
		}
	}
	return ""
}

func matchTail(pieces []string, mapping map[string]string) (string, []string) {
	for i := len(pieces) - 1; i >= 0; i-- {
		if value, ok := mapping[pieces[i]]; ok {
			return value, pieces[:i]
		}
	}
	return "", pieces
}

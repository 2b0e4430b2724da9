package services

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/ochairo/pyfinder/internal/domain/entities"
)

// cpythonFilenamePattern matches python-build-standalone archive names, e.g.
// cpython-3.12.1+20240107-aarch64-unknown-linux-gnu-lto-full.tar.zst
var cpythonFilenamePattern = regexp.MustCompile(
	`^cpython-(?P<ver>\d+\.\d+\.\d+?)(?:\+\d+)?-(?P<triple>.*?)(?:-[\dT]+)?\.tar\.(?:gz|zst)$`)

const checksumFileSuffix = ".sha256"

// FilenameResult carries the captured version and triple of an accepted
// filename, or the reason it was rejected
type FilenameResult struct {
	Version   string
	RawTriple string
	Reason    RejectReason
}

// Valid reports whether the filename was accepted
func (r FilenameResult) Valid() bool {
	return r.Reason == ""
}

// FilenameParser extracts versions and triples from release asset names
type FilenameParser struct {
	triples *TripleParser
}

// NewFilenameParser creates a filename parser that resolves triples with triples
func NewFilenameParser(triples *TripleParser) *FilenameParser {
	return &FilenameParser{triples: triples}
}

// Parse applies the filename grammar
func (p *FilenameParser) Parse(filename string) FilenameResult {
	if strings.HasSuffix(filename, checksumFileSuffix) {
		return FilenameResult{Reason: RejectChecksumFile}
	}

	m := cpythonFilenamePattern.FindStringSubmatch(filename)
	if m == nil {
		return FilenameResult{Reason: RejectMalformed}
	}

	return FilenameResult{
		Version:   m[cpythonFilenamePattern.SubexpIndex("ver")],
		RawTriple: m[cpythonFilenamePattern.SubexpIndex("triple")],
	}
}

// ParseURL builds a CPython Download from an asset download URL. The
// filename is the unescaped last path segment.
func (p *FilenameParser) ParseURL(rawURL string) (entities.Download, RejectReason) {
	filename := FilenameFromURL(rawURL)

	res := p.Parse(filename)
	if !res.Valid() {
		return entities.Download{}, res.Reason
	}

	version, err := entities.ParseVersion(res.Version)
	if err != nil {
		return entities.Download{}, RejectMalformed
	}

	triple := p.triples.Parse(res.RawTriple)
	if !triple.Valid() {
		return entities.Download{}, triple.Reason
	}

	return entities.Download{
		Version:        version,
		Triple:         triple.Triple,
		Implementation: entities.ImplementationCPython,
		Filename:       filename,
		URL:            rawURL,
	}, ""
}

// FilenameFromURL returns the unescaped last path segment of rawURL
func FilenameFromURL(rawURL string) string {
	last := rawURL
	if idx := strings.LastIndex(rawURL, "/"); idx >= 0 {
		last = rawURL[idx+1:]
	}
	if unescaped, err := url.PathUnescape(last); err == nil {
		return unescaped
	}
	return last
}

// ReleaseDir returns rawURL with its last path segment removed. A URL
// without any "/" is returned unchanged.
func ReleaseDir(rawURL string) string {
	if idx := strings.LastIndex(rawURL, "/"); idx >= 0 {
		return rawURL[:idx]
	}
	return rawURL
}

package services

import (
	"regexp"
	"strings"
)

// pypyChecksumPattern matches "<sha256>  pypy..." rows in the pypy.org checksum page
var pypyChecksumPattern = regexp.MustCompile(`(?m)^\s*(?P<checksum>\w{64})\s+(?P<filename>pypy.+)$`)

// ParseSHA256Sums parses a SHA256SUMS manifest into filename -> checksum.
// Each line is split at its first space; the filename is trimmed. Blank
// lines and lines without a separator are ignored.
func ParseSHA256Sums(text string) map[string]string {
	sums := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		checksum, filename, ok := strings.Cut(line, " ")
		if !ok || checksum == "" {
			continue
		}
		filename = strings.TrimSpace(filename)
		if filename == "" {
			continue
		}
		sums[filename] = checksum
	}
	return sums
}

// ParsePyPyChecksums extracts filename -> checksum rows from the pypy.org
// checksum page. Later rows overwrite earlier ones.
func ParsePyPyChecksums(text string) map[string]string {
	sums := make(map[string]string)
	ci := pypyChecksumPattern.SubexpIndex("checksum")
	fi := pypyChecksumPattern.SubexpIndex("filename")
	for _, m := range pypyChecksumPattern.FindAllStringSubmatch(text, -1) {
		sums[strings.TrimRight(m[fi], "\r")] = m[ci]
	}
	return sums
}

// ParseDetachedChecksum returns the checksum field of a "<sum> <file>"
// side file such as uv's per-asset .sha256
func ParseDetachedChecksum(text string) string {
	checksum, _, _ := strings.Cut(text, " ")
	return strings.TrimSpace(checksum)
}

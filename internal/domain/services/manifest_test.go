package services

import "testing"

func TestParseSHA256Sums(t *testing.T) {
	text := "aaaa cpython-3.12.1+20240107-x86_64-unknown-linux-gnu-lto-full.tar.zst\n" +
		"bbbb  cpython-3.12.1+20240107-aarch64-apple-darwin-pgo+lto-full.tar.zst\r\n" +
		"\n" +
		"garbage\n"

	sums := ParseSHA256Sums(text)

	if len(sums) != 2 {
		t.Fatalf("len = %d, want 2", len(sums))
	}
	if got := sums["cpython-3.12.1+20240107-x86_64-unknown-linux-gnu-lto-full.tar.zst"]; got != "aaaa" {
		t.Errorf("first checksum = %q, want aaaa", got)
	}
	if got := sums["cpython-3.12.1+20240107-aarch64-apple-darwin-pgo+lto-full.tar.zst"]; got != "bbbb" {
		t.Errorf("second checksum = %q, want bbbb", got)
	}
}

func TestParsePyPyChecksums(t *testing.T) {
	sum := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	text := "pypy3.10-v7.3.15 sha256::\n\n" +
		"    " + sum + "  pypy3.10-v7.3.15-linux64.tar.bz2\n" +
		"    deadbeef  pypy3.10-v7.3.15-short.tar.bz2\n"

	sums := ParsePyPyChecksums(text)

	if len(sums) != 1 {
		t.Fatalf("len = %d, want 1", len(sums))
	}
	if got := sums["pypy3.10-v7.3.15-linux64.tar.bz2"]; got != sum {
		t.Errorf("checksum = %q, want %q", got, sum)
	}
}

func TestParseDetachedChecksum(t *testing.T) {
	if got := ParseDetachedChecksum("abc123 *uv-x86_64-unknown-linux-gnu.tar.gz\n"); got != "abc123" {
		t.Errorf("ParseDetachedChecksum() = %q, want abc123", got)
	}
	if got := ParseDetachedChecksum("abc123\n"); got != "abc123" {
		t.Errorf("ParseDetachedChecksum() = %q, want abc123", got)
	}
}

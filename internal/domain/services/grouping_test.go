package services

import (
	"testing"

	"github.com/ochairo/pyfinder/internal/domain/entities"
)

func TestDownloadGrouping_SelectBest(t *testing.T) {
	tables := entities.DefaultCPythonTables()
	parser := NewFilenameParser(NewTripleParser(tables))
	selector := NewBestDownloadSelector(tables.Flavors)

	urls := []string{
		"https://example.com/20240107/cpython-3.12.1%2B20240107-x86_64-unknown-linux-gnu-debug-full.tar.zst",
		"https://example.com/20240107/cpython-3.12.1%2B20240107-x86_64-unknown-linux-gnu-lto-full.tar.zst",
		"https://example.com/20240107/cpython-3.12.1%2B20240107-x86_64-unknown-linux-gnu-shared-pgo-full.tar.zst",
		"https://example.com/20240107/cpython-3.12.1%2B20240107-aarch64-apple-darwin-pgo+lto-full.tar.zst",
		"https://example.com/20240107/cpython-3.11.7%2B20240107-x86_64-unknown-linux-gnu-pgo-full.tar.zst",
		"https://example.com/20240107/SHA256SUMS",
	}

	grouping := NewDownloadGrouping()
	for _, u := range urls {
		if d, reason := parser.ParseURL(u); reason == "" {
			grouping.Add(d)
		}
	}

	if grouping.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", grouping.Len())
	}
	if grouping.GroupCount() != 3 {
		t.Fatalf("GroupCount() = %d, want 3", grouping.GroupCount())
	}

	selected, err := grouping.SelectBest(selector)
	if err != nil {
		t.Fatalf("SelectBest() error = %v", err)
	}
	if len(selected) != 3 {
		t.Fatalf("selected %d downloads, want 3", len(selected))
	}

	first := selected[0]
	if first.Triple.Flavor != "shared-pgo" {
		t.Errorf("3.12.1 x86_64-linux flavor = %q, want shared-pgo", first.Triple.Flavor)
	}
	if selected[1].Triple.Platform != "macos" {
		t.Errorf("second group platform = %q, want macos", selected[1].Triple.Platform)
	}
	if selected[2].Version != (entities.Version{Major: 3, Minor: 11, Patch: 7}) {
		t.Errorf("third group version = %v, want 3.11.7", selected[2].Version)
	}
}

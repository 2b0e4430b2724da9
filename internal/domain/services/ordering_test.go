package services

import (
	"testing"

	"github.com/ochairo/pyfinder/internal/domain/entities"
)

func TestSortForRender(t *testing.T) {
	mk := func(impl entities.Implementation, minor int, arch string) entities.Download {
		return entities.Download{
			Implementation: impl,
			Version:        entities.Version{Major: 3, Minor: minor, Patch: 0},
			Triple:         entities.PlatformTriple{Architecture: arch, Platform: "linux", Environment: "gnu"},
			Filename:       string(impl) + "-" + arch,
		}
	}

	input := []entities.Download{
		mk(entities.ImplementationCPython, 9, "x86_64"),
		mk(entities.ImplementationCPython, 10, "x86_64"),
		mk(entities.ImplementationCPython, 10, "aarch64"),
		mk(entities.ImplementationPyPy, 9, "x86_64"),
	}

	got := SortForRender(input)

	want := []struct {
		impl  entities.Implementation
		minor int
		arch  string
	}{
		{entities.ImplementationPyPy, 9, "x86_64"},
		{entities.ImplementationCPython, 10, "aarch64"},
		{entities.ImplementationCPython, 10, "x86_64"},
		{entities.ImplementationCPython, 9, "x86_64"},
	}
	for i, w := range want {
		d := got[i]
		if d.Implementation != w.impl || d.Version.Minor != w.minor || d.Triple.Architecture != w.arch {
			t.Errorf("got[%d] = %s 3.%d %s, want %s 3.%d %s",
				i, d.Implementation, d.Version.Minor, d.Triple.Architecture, w.impl, w.minor, w.arch)
		}
	}

	if input[0].Version.Minor != 9 {
		t.Error("SortForRender modified its input")
	}
}

package entities

import (
	"sort"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Version
		wantErr bool
	}{
		{name: "simple", input: "3.12.1", want: Version{3, 12, 1}},
		{name: "zero patch", input: "3.10.0", want: Version{3, 10, 0}},
		{name: "two components", input: "3.12", wantErr: true},
		{name: "four components", input: "3.12.1.2", wantErr: true},
		{name: "non numeric", input: "3.12.x", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVersion(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseVersion(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersion_ComparesNumerically(t *testing.T) {
	older := Version{3, 9, 16}
	newer := Version{3, 10, 12}

	if older.Compare(newer) >= 0 {
		t.Errorf("%v should sort before %v", older, newer)
	}
	if newer.Compare(older) <= 0 {
		t.Errorf("%v should sort after %v", newer, older)
	}
	if older.Compare(older) != 0 {
		t.Errorf("Compare with itself = %d, want 0", older.Compare(older))
	}
}

func TestVersion_CompareSortsDescending(t *testing.T) {
	versions := []Version{{3, 9, 16}, {3, 12, 1}, {3, 10, 12}}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Compare(versions[j]) > 0
	})

	want := []Version{{3, 12, 1}, {3, 10, 12}, {3, 9, 16}}
	for i := range want {
		if versions[i] != want[i] {
			t.Errorf("versions[%d] = %v, want %v", i, versions[i], want[i])
		}
	}
}

func TestVersion_String(t *testing.T) {
	if got := (Version{3, 11, 7}).String(); got != "3.11.7" {
		t.Errorf("String() = %s, want 3.11.7", got)
	}
}

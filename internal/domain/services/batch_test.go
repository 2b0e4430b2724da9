package services

import (
	"strings"
	"testing"
)

func TestBatch(t *testing.T) {
	items := strings.Split("ABCDEFG", "")

	batches, err := Batch(items, 3)
	if err != nil {
		t.Fatalf("Batch() error = %v", err)
	}

	want := []string{"ABC", "DEF", "G"}
	if len(batches) != len(want) {
		t.Fatalf("got %d batches, want %d", len(batches), len(want))
	}
	for i, b := range batches {
		if got := strings.Join(b, ""); got != want[i] {
			t.Errorf("batch %d = %s, want %s", i, got, want[i])
		}
	}
}

func TestBatch_InvalidSize(t *testing.T) {
	if _, err := Batch([]int{1, 2}, 0); err == nil {
		t.Error("Batch(n=0) should fail")
	}
}

func TestBatch_Empty(t *testing.T) {
	batches, err := Batch([]int(nil), 5)
	if err != nil {
		t.Fatalf("Batch() error = %v", err)
	}
	if len(batches) != 0 {
		t.Errorf("got %d batches, want 0", len(batches))
	}
}

package store

import (
	"errors"
	"testing"

	"github.com/benchwise/sheetcalc/pkg/ref"
	"github.com/benchwise/sheetcalc/pkg/types"
)

func TestSetAndSnapshot(t *testing.T) {
	s := New()

	if err := s.Set("KITCHEN", "b1", types.NewNumber(5)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("KITCHEN", "$D$4", types.NewText("oak")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	snap := s.Snapshot("KITCHEN")
	if len(snap) != 2 {
		t.Fatalf("got %d overrides, want 2", len(snap))
	}
	// Keys normalize on the way in.
	if v, ok := snap["B1"]; !ok || !v.Equal(types.NewNumber(5)) {
		t.Errorf("B1 = %v", v)
	}
	if v, ok := snap["D4"]; !ok || !v.Equal(types.NewText("oak")) {
		t.Errorf("D4 = %v", v)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New()
	_ = s.Set("KITCHEN", "A1", types.NewNumber(1))

	snap := s.Snapshot("KITCHEN")
	_ = s.Set("KITCHEN", "A1", types.NewNumber(2))

	if !snap["A1"].Equal(types.NewNumber(1)) {
		t.Error("snapshot observed a later edit")
	}
}

func TestSheetsAreIndependent(t *testing.T) {
	s := New()
	_ = s.Set("KITCHEN", "A1", types.NewNumber(1))
	_ = s.Set("WARDROBE", "A1", types.NewNumber(2))

	if s.Len("KITCHEN") != 1 || s.Len("WARDROBE") != 1 {
		t.Fatalf("got %d/%d, want 1/1", s.Len("KITCHEN"), s.Len("WARDROBE"))
	}
	s.Clear("KITCHEN")
	if s.Len("KITCHEN") != 0 || s.Len("WARDROBE") != 1 {
		t.Error("Clear leaked across sheets")
	}
}

func TestDelete(t *testing.T) {
	s := New()
	_ = s.Set("KITCHEN", "A1", types.NewNumber(1))

	if err := s.Delete("KITCHEN", "a1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Len("KITCHEN") != 0 {
		t.Error("override not removed")
	}
	// Deleting from an unknown sheet is a no-op.
	if err := s.Delete("NOPE", "A1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMalformedReferenceRejected(t *testing.T) {
	s := New()
	err := s.Set("KITCHEN", "not a ref", types.NewNumber(1))
	var merr *ref.MalformedReferenceError
	if !errors.As(err, &merr) {
		t.Fatalf("expected MalformedReferenceError, got %v", err)
	}
}

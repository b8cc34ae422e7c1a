package warehouse

import (
	"testing"
)

func TestLineage(t *testing.T) {
	w := New(nil, nil)
	l := w.Lineage()

	if len(l.Sources) != 3 {
		t.Errorf("Expected 3 sources, got %d", len(l.Sources))
	}
	if len(l.Transformations) != 4 {
		t.Errorf("Expected 4 transformations, got %d", len(l.Transformations))
	}
	if len(l.Targets) != 3 {
		t.Errorf("Expected 3 targets, got %d", len(l.Targets))
	}

	// Steps are numbered sequentially from 1
	for i, step := range l.Transformations {
		if step.Step != i+1 {
			t.Errorf("Transformation %d has step %d, want %d", i, step.Step, i+1)
		}
		if step.Process == "" {
			t.Errorf("Transformation %d has empty process", i)
		}
	}

	for _, s := range l.Sources {
		if s.Name == "" || s.Type == "" || len(s.Tables) == 0 {
			t.Errorf("Incomplete source: %+v", s)
		}
	}
}

func TestLineageIsStable(t *testing.T) {
	w := New(nil, nil)
	a := w.Lineage()
	b := w.Lineage()

	if len(a.Sources) != len(b.Sources) ||
		len(a.Transformations) != len(b.Transformations) ||
		len(a.Targets) != len(b.Targets) {
		t.Error("Lineage changed between calls")
	}
}

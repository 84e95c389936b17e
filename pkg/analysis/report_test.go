package analysis

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
	"github.com/philipparndt/gosketch/pkg/kernel/memkernel"
)

func edge(t *testing.T, k *memkernel.Kernel, a, b geometry.Vector3) kernel.Shape {
	t.Helper()
	s, err := k.BuildEdge(a, b)
	if err != nil {
		t.Fatalf("BuildEdge failed: %v", err)
	}
	return s
}

func TestAnalyzeLines(t *testing.T) {
	k := memkernel.New()
	entries := []Entry{
		{Kind: "line", Shape: edge(t, k, geometry.NewVector3(0, 0, 0), geometry.NewVector3(30, 0, 0))},
		{Kind: "line", Shape: edge(t, k, geometry.NewVector3(30, 0, 0), geometry.NewVector3(30, 40, 0))},
		{Kind: "dimension", Label: "50.00"},
	}

	r := Analyze(k, entries)

	if r.Counts["line"] != 2 || r.Counts["dimension"] != 1 {
		t.Errorf("Analyze failed: unexpected counts %v", r.Counts)
	}
	if len(r.AllSegments) != 2 {
		t.Fatalf("Analyze failed: expected 2 segments, got %d", len(r.AllSegments))
	}
	if math.Abs(r.TotalLength-70) > 1e-9 {
		t.Errorf("Analyze failed: expected total length 70, got %v", r.TotalLength)
	}
	if r.MinSegment != 30 || r.MaxSegment != 40 {
		t.Errorf("Analyze failed: expected segments 30..40, got %v..%v", r.MinSegment, r.MaxSegment)
	}
	if !r.Dimensions.NearlyEqual(geometry.NewVector3(30, 40, 0), 1e-9) {
		t.Errorf("Analyze failed: expected size (30, 40, 0), got %v", r.Dimensions)
	}
	if len(r.Labels) != 1 || r.Labels[0] != "50.00" {
		t.Errorf("Analyze failed: expected label 50.00, got %v", r.Labels)
	}
}

func TestLongestSegments(t *testing.T) {
	k := memkernel.New()
	r := Analyze(k, []Entry{
		{Kind: "line", Shape: edge(t, k, geometry.NewVector3(0, 0, 0), geometry.NewVector3(5, 0, 0))},
		{Kind: "line", Shape: edge(t, k, geometry.NewVector3(0, 0, 0), geometry.NewVector3(0, 9, 0))},
	})

	longest := LongestSegments(r, 5)
	if len(longest) != 2 {
		t.Fatalf("LongestSegments failed: expected 2, got %d", len(longest))
	}
	if longest[0].Length != 9 || longest[0].Entry != 1 {
		t.Errorf("LongestSegments failed: expected entry 1 of length 9 first, got %+v", longest[0])
	}
}

func TestEmptyReport(t *testing.T) {
	r := Analyze(memkernel.New(), nil)
	if r.MinSegment != 0 || r.TotalLength != 0 {
		t.Errorf("Analyze failed: empty sketch should measure zero, got %+v", r)
	}

	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if strings.Contains(buf.String(), "Bounds") {
		t.Errorf("Write failed: empty sketch should have no bounds, got %q", buf.String())
	}
}

func TestWrite(t *testing.T) {
	k := memkernel.New()
	r := Analyze(k, []Entry{
		{Kind: "line", Shape: edge(t, k, geometry.NewVector3(0, 0, 0), geometry.NewVector3(10, 0, 0))},
		{Kind: "dimension", Label: "10.00"},
	})

	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"line", "size (10.000, 0.000, 0.000)", "total 10.000 units", "10.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("Write failed: expected %q in\n%s", want, out)
		}
	}
}

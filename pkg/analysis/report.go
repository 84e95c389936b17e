package analysis

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
)

// Entry is one displayed item of a sketch
type Entry struct {
	Kind  string
	Shape kernel.Shape
	Label string // Dimension text, if any
}

// SegmentInfo is one straight piece of a tessellated outline
type SegmentInfo struct {
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
	Entry  int
}

// Report summarizes a sketch
type Report struct {
	Counts      map[string]int
	BoundingBox geometry.BoundingBox
	Dimensions  geometry.Vector3
	TotalLength float64
	MinSegment  float64
	MaxSegment  float64
	Labels      []string
	AllSegments []SegmentInfo
}

// Analyze measures every entry's outline as the kernel tessellates it
func Analyze(k kernel.Kernel, entries []Entry) *Report {
	r := &Report{
		Counts:      make(map[string]int),
		BoundingBox: geometry.NewBoundingBox(),
	}

	minLength := math.MaxFloat64
	for i, e := range entries {
		r.Counts[e.Kind]++
		if e.Label != "" {
			r.Labels = append(r.Labels, e.Label)
		}
		if e.Shape == nil {
			continue
		}
		r.BoundingBox.Union(k.Bounds(e.Shape))

		for _, strip := range k.Polylines(e.Shape) {
			for j := 1; j < len(strip); j++ {
				length := strip[j-1].Distance(strip[j])
				r.AllSegments = append(r.AllSegments, SegmentInfo{
					Start:  strip[j-1],
					End:    strip[j],
					Length: length,
					Entry:  i,
				})
				r.TotalLength += length
				minLength = math.Min(minLength, length)
				r.MaxSegment = math.Max(r.MaxSegment, length)
			}
		}
	}

	if len(r.AllSegments) > 0 {
		r.MinSegment = minLength
	}
	r.Dimensions = r.BoundingBox.Size()
	return r
}

// Kinds returns the counted kinds in alphabetical order
func (r *Report) Kinds() []string {
	kinds := make([]string, 0, len(r.Counts))
	for k := range r.Counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// LongestSegments returns the n longest segments
func LongestSegments(r *Report, n int) []SegmentInfo {
	segs := make([]SegmentInfo, len(r.AllSegments))
	copy(segs, r.AllSegments)

	sort.SliceStable(segs, func(i, j int) bool {
		return segs[i].Length > segs[j].Length
	})

	return segs[:min(n, len(segs))]
}

// Write prints the report in the layout of the replay command
func (r *Report) Write(w io.Writer) error {
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	printf("Entities:\n")
	for _, k := range r.Kinds() {
		printf("  %-10s %d\n", k, r.Counts[k])
	}
	if !r.BoundingBox.IsEmpty() {
		printf("Bounds:\n")
		printf("  min  %s\n", FormatVector(r.BoundingBox.Min))
		printf("  max  %s\n", FormatVector(r.BoundingBox.Max))
		printf("  size %s\n", FormatVector(r.Dimensions))
	}
	if len(r.AllSegments) > 0 {
		printf("Outline: %d segments, total %s\n", len(r.AllSegments), FormatMeasurement(r.TotalLength, ""))
	}
	if len(r.Labels) > 0 {
		printf("Dimensions:\n")
		for _, l := range r.Labels {
			printf("  %s\n", l)
		}
	}
	return err
}

// FormatMeasurement formats a measurement with its unit
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.3f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

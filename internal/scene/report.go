package scene

import "github.com/philipparndt/gosketch/pkg/analysis"

// Report measures the displayed shapes of all entities
func (s *Scene) Report() *analysis.Report {
	entities := s.Entities()
	entries := make([]analysis.Entry, len(entities))
	for i, e := range entities {
		entries[i] = analysis.Entry{Kind: e.Kind.String(), Shape: e.Shape, Label: e.Label}
	}
	return analysis.Analyze(s.kernel, entries)
}

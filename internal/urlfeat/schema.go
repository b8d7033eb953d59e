package urlfeat

// Identifier columns present in the training artifact but never scored
var identifierColumns = map[string]struct{}{
	"URL":       {},
	"Domain":    {},
	"TLD":       {},
	"PathQuery": {},
	"label":     {},
}

// Schema is the authoritative ordered set of feature names the URL
// classifier was trained on. Identifier columns are filtered out and
// duplicate names keep their first occurrence.
type Schema struct {
	names []string
	index map[string]struct{}
}

// NewSchema builds a schema from the loaded expected-feature list
func NewSchema(expected []string) *Schema {
	s := &Schema{index: make(map[string]struct{})}
	for _, name := range expected {
		if _, drop := identifierColumns[name]; drop {
			continue
		}
		if _, seen := s.index[name]; seen {
			continue
		}
		s.names = append(s.names, name)
		s.index[name] = struct{}{}
	}
	return s
}

// Names returns the expected feature names in order
func (s *Schema) Names() []string {
	return s.names
}

// Len returns the expected feature count
func (s *Schema) Len() int {
	return len(s.names)
}

// Align reorders a produced feature vector into the schema's column order.
// It reports false when the vector does not cover the full schema; such
// vectors must be skipped from scoring, not treated as errors.
func (s *Schema) Align(v *FeatureVector) ([]float64, bool) {
	row := make([]float64, 0, len(s.names))
	for _, name := range s.names {
		value, ok := v.Get(name)
		if !ok {
			return nil, false
		}
		row = append(row, value)
	}
	return row, true
}

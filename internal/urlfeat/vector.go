package urlfeat

// FeatureVector is an ordered mapping from feature name to numeric value.
// Insertion order is preserved and duplicate names keep their first value.
type FeatureVector struct {
	names  []string
	values map[string]float64
}

// NewFeatureVector creates an empty feature vector
func NewFeatureVector() *FeatureVector {
	return &FeatureVector{values: make(map[string]float64)}
}

// Set adds a named feature. A duplicate name is ignored so the first
// occurrence wins.
func (v *FeatureVector) Set(name string, value float64) {
	if _, ok := v.values[name]; ok {
		return
	}
	v.names = append(v.names, name)
	v.values[name] = value
}

func (v *FeatureVector) setBool(name string, b bool) {
	if b {
		v.Set(name, 1)
	} else {
		v.Set(name, 0)
	}
}

// Get returns the value for a feature name
func (v *FeatureVector) Get(name string) (float64, bool) {
	value, ok := v.values[name]
	return value, ok
}

// Names returns the feature names in insertion order
func (v *FeatureVector) Names() []string {
	return v.names
}

// Len returns the number of features
func (v *FeatureVector) Len() int {
	return len(v.names)
}

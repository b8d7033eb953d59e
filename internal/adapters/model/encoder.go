package model

// UnseenClass is the sentinel encoding for values absent from the fitted
// class list
const UnseenClass = -1

// LabelEncoder reproduces a fitted label encoder: each class maps to its
// index in the ordered class list, anything else to the sentinel.
type LabelEncoder struct {
	classes map[string]int
}

// NewLabelEncoder builds an encoder from the fitted class list
func NewLabelEncoder(classes []string) *LabelEncoder {
	index := make(map[string]int, len(classes))
	for i, class := range classes {
		if _, ok := index[class]; !ok {
			index[class] = i
		}
	}
	return &LabelEncoder{classes: index}
}

// Encode returns the class index, or UnseenClass for an unknown value.
// Unseen values never fail.
func (e *LabelEncoder) Encode(value string) int {
	if i, ok := e.classes[value]; ok {
		return i
	}
	return UnseenClass
}

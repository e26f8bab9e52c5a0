package transform

import (
	"slices"
	"strings"
)

// FeatureTranslation records that a feature name in one controller profile
// corresponds to a feature name in another.
type FeatureTranslation struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FeatureMap is one transformation pattern: the feature translations
// observed together on a single device for one profile pair. Patterns are
// kept sorted by (From, To) so equal sets compare element-wise regardless of
// the order features appeared in.
type FeatureMap []FeatureTranslation

func (m FeatureMap) sort() {
	slices.SortFunc(m, func(a, b FeatureTranslation) int {
		if c := strings.Compare(a.From, b.From); c != 0 {
			return c
		}
		return strings.Compare(a.To, b.To)
	})
}

// Equal reports whether two sorted patterns hold the same translations.
func (m FeatureMap) Equal(other FeatureMap) bool {
	return slices.Equal(m, other)
}

// TranslationKey identifies an unordered controller profile pair. From
// always sorts lexicographically before To.
type TranslationKey struct {
	From string
	To   string
}

// featureMapCount is one learned pattern and the number of devices that
// exhibited it.
type featureMapCount struct {
	translations FeatureMap
	count        int
}

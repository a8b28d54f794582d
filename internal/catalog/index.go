package catalog

import (
	"sort"

	"itemgen/internal"
	"itemgen/internal/util"
)

const suggestThreshold = 0.6

type Index struct {
	IDByLabel         map[string]int
	ByNormalized      map[string][]string
	TokenToLabels     map[string]map[string]struct{}
	NormalizedByLabel map[string]string
}

type Suggestion struct {
	Label string
	ID    int
	Score float64
}

func BuildIndex(labels internal.LabelIDMap) *Index {
	idx := &Index{
		IDByLabel:         map[string]int{},
		ByNormalized:      map[string][]string{},
		TokenToLabels:     map[string]map[string]struct{}{},
		NormalizedByLabel: map[string]string{},
	}

	for label, id := range labels {
		idx.IDByLabel[label] = id
		norm := util.NormalizeLabel(label)
		idx.NormalizedByLabel[label] = norm
		if norm != "" {
			idx.ByNormalized[norm] = append(idx.ByNormalized[norm], label)
		}
		for _, token := range util.Tokenize(label) {
			if _, ok := idx.TokenToLabels[token]; !ok {
				idx.TokenToLabels[token] = map[string]struct{}{}
			}
			idx.TokenToLabels[token][label] = struct{}{}
		}
	}
	for norm := range idx.ByNormalized {
		sort.Strings(idx.ByNormalized[norm])
	}

	return idx
}

func (idx *Index) Lookup(label string) (int, bool) {
	id, ok := idx.IDByLabel[label]
	return id, ok
}

// Suggest returns the known label closest to an unresolved one. It never changes
// how the unresolved label is resolved.
func (idx *Index) Suggest(label string) (Suggestion, bool) {
	norm := util.NormalizeLabel(label)
	if norm == "" {
		return Suggestion{}, false
	}
	if exact := idx.ByNormalized[norm]; len(exact) > 0 {
		return Suggestion{Label: exact[0], ID: idx.IDByLabel[exact[0]], Score: 1}, true
	}

	candidates := map[string]struct{}{}
	for _, token := range util.Tokenize(label) {
		for l := range idx.TokenToLabels[token] {
			candidates[l] = struct{}{}
		}
	}
	if len(candidates) == 0 {
		for l := range idx.IDByLabel {
			candidates[l] = struct{}{}
		}
	}

	best := Suggestion{}
	for l := range candidates {
		score := util.DiceCoefficient(norm, idx.NormalizedByLabel[l])
		if score > best.Score || (score == best.Score && score > 0 && l < best.Label) {
			best = Suggestion{Label: l, ID: idx.IDByLabel[l], Score: score}
		}
	}
	if best.Score < suggestThreshold {
		return Suggestion{}, false
	}
	return best, true
}

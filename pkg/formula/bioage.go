package formula

// TermKind selects how a biomarker contributes to the biological age delta.
type TermKind int

const (
	// Excess adds (value − threshold) × rate when value > threshold.
	Excess TermKind = iota
	// Deficit adds (threshold − value) × rate when value < threshold.
	Deficit
	// Bonus subtracts (value − threshold) × rate when value > threshold.
	Bonus
	// Proportional adds value × rate when value > threshold.
	Proportional
)

// AgeTerm is one additive biomarker term of the biological age estimate.
type AgeTerm struct {
	Field     string
	Kind      TermKind
	Threshold float64
	Rate      float64
}

// Contribution returns the years the term adds to (positive) or subtracts
// from (negative) the chronological age. Values on the threshold contribute
// nothing.
func (t AgeTerm) Contribution(value float64) float64 {
	switch t.Kind {
	case Excess:
		if value > t.Threshold {
			return (value - t.Threshold) * t.Rate
		}
	case Deficit:
		if value < t.Threshold {
			return (t.Threshold - value) * t.Rate
		}
	case Bonus:
		if value > t.Threshold {
			return -(value - t.Threshold) * t.Rate
		}
	case Proportional:
		if value > t.Threshold {
			return value * t.Rate
		}
	}
	return 0
}

// TermContribution is the evaluated contribution of one term.
type TermContribution struct {
	Field string
	Value float64
	Delta float64
}

// BioAgeDelta evaluates every term against the named values, in term order,
// and returns the per-term contributions together with their sum. Terms whose
// field is missing from values contribute nothing.
func BioAgeDelta(terms []AgeTerm, values map[string]float64) ([]TermContribution, float64) {
	contributions := make([]TermContribution, 0, len(terms))
	var total float64
	for _, term := range terms {
		v, ok := values[term.Field]
		if !ok {
			continue
		}
		d := term.Contribution(v)
		contributions = append(contributions, TermContribution{Field: term.Field, Value: v, Delta: d})
		total += d
	}
	return contributions, total
}

// BioAgeTerms returns a copy of the default biological age terms.
func BioAgeTerms() []AgeTerm {
	out := make([]AgeTerm, len(bioAgeTerms))
	copy(out, bioAgeTerms)
	return out
}

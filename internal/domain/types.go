// Package domain contains the biomarker inputs, calculator results and the
// closed status vocabularies shared by the health score calculators.
//
// Every value in this package is a plain record: calculators build a fresh
// result per call and never mutate it afterwards.
package domain

// Gender selects the gender-specific formula branches and threshold tables.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// IsValid reports whether the gender is one the calculators can branch on.
func (g Gender) IsValid() bool {
	switch g {
	case Male, Female:
		return true
	default:
		return false
	}
}

// String returns the string representation of the gender.
func (g Gender) String() string {
	return string(g)
}

// Status is the qualitative tier attached to every scored index and factor.
// It drives result colouring in the caller (good/warning/danger/neutral).
type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
	StatusNeutral Status = "neutral"
)

// IsValid reports whether the status is one of the known tiers.
func (s Status) IsValid() bool {
	switch s {
	case StatusGood, StatusWarning, StatusDanger, StatusNeutral:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// RequiresAttention reports whether the tier should be surfaced to the user
// as something to act on.
func (s Status) RequiresAttention() bool {
	return s == StatusWarning || s == StatusDanger
}

// MetabolicStatus is the overall bucket of the metabolic health score.
type MetabolicStatus string

const (
	MetabolicOptimal MetabolicStatus = "optimal"
	MetabolicGood    MetabolicStatus = "good"
	MetabolicFair    MetabolicStatus = "fair"
	MetabolicPoor    MetabolicStatus = "poor"
)

// IsValid reports whether the metabolic status is known.
func (m MetabolicStatus) IsValid() bool {
	switch m {
	case MetabolicOptimal, MetabolicGood, MetabolicFair, MetabolicPoor:
		return true
	default:
		return false
	}
}

// String returns the string representation of the metabolic status.
func (m MetabolicStatus) String() string {
	return string(m)
}

// DisplayStatus maps the metabolic bucket onto the common status tier.
func (m MetabolicStatus) DisplayStatus() Status {
	switch m {
	case MetabolicOptimal, MetabolicGood:
		return StatusGood
	case MetabolicFair:
		return StatusWarning
	case MetabolicPoor:
		return StatusDanger
	default:
		return StatusNeutral
	}
}

// Impact describes the direction a biomarker pushes biological age.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// IsValid reports whether the impact is known.
func (i Impact) IsValid() bool {
	switch i {
	case ImpactPositive, ImpactNegative, ImpactNeutral:
		return true
	default:
		return false
	}
}

// String returns the string representation of the impact.
func (i Impact) String() string {
	return string(i)
}

// RiskImpact is the weight of a single cardiovascular risk factor.
type RiskImpact string

const (
	RiskHigh   RiskImpact = "high"
	RiskMedium RiskImpact = "medium"
	RiskLow    RiskImpact = "low"
	RiskNone   RiskImpact = "none"
)

// IsValid reports whether the risk impact is known.
func (r RiskImpact) IsValid() bool {
	switch r {
	case RiskHigh, RiskMedium, RiskLow, RiskNone:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk impact.
func (r RiskImpact) String() string {
	return string(r)
}

// VisceralFatRisk is the waist-circumference based visceral fat tier.
type VisceralFatRisk string

const (
	VisceralLow      VisceralFatRisk = "low"
	VisceralModerate VisceralFatRisk = "moderate"
	VisceralHigh     VisceralFatRisk = "high"
)

// IsValid reports whether the visceral fat tier is known.
func (v VisceralFatRisk) IsValid() bool {
	switch v {
	case VisceralLow, VisceralModerate, VisceralHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the visceral fat tier.
func (v VisceralFatRisk) String() string {
	return string(v)
}

// DisplayStatus maps the visceral fat tier onto the common status tier.
func (v VisceralFatRisk) DisplayStatus() Status {
	switch v {
	case VisceralLow:
		return StatusGood
	case VisceralModerate:
		return StatusWarning
	case VisceralHigh:
		return StatusDanger
	default:
		return StatusNeutral
	}
}

// BodyFatMethod selects how the body composition calculator obtains the body
// fat percentage.
type BodyFatMethod string

const (
	BodyFatEstimate BodyFatMethod = "estimate"
	BodyFatMeasured BodyFatMethod = "measured"
)

// IsValid reports whether the method is known. The empty method means
// estimate.
func (m BodyFatMethod) IsValid() bool {
	switch m {
	case "", BodyFatEstimate, BodyFatMeasured:
		return true
	default:
		return false
	}
}

// CalculatorKind names one of the four calculators.
type CalculatorKind string

const (
	KindBioAge          CalculatorKind = "bio-age"
	KindCardiovascular  CalculatorKind = "cardiovascular-risk"
	KindMetabolic       CalculatorKind = "metabolic-health"
	KindBodyComposition CalculatorKind = "body-composition"
)

// AllCalculatorKinds lists the calculators in their canonical order.
func AllCalculatorKinds() []CalculatorKind {
	return []CalculatorKind{KindBioAge, KindCardiovascular, KindMetabolic, KindBodyComposition}
}

// IsValid reports whether the kind names a known calculator.
func (k CalculatorKind) IsValid() bool {
	switch k {
	case KindBioAge, KindCardiovascular, KindMetabolic, KindBodyComposition:
		return true
	default:
		return false
	}
}

// String returns the string representation of the calculator kind.
func (k CalculatorKind) String() string {
	return string(k)
}

// ParseCalculatorKind accepts the canonical kind names plus the short aliases
// used on the command line.
func ParseCalculatorKind(s string) (CalculatorKind, error) {
	switch s {
	case "bio-age", "bioage", "biological-age":
		return KindBioAge, nil
	case "cardiovascular-risk", "cardio", "cardiovascular":
		return KindCardiovascular, nil
	case "metabolic-health", "metabolic":
		return KindMetabolic, nil
	case "body-composition", "body-comp", "bodycomp":
		return KindBodyComposition, nil
	default:
		return "", ErrUnknownCalculator
	}
}

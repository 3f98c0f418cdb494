package domain

import "math"

// RangeStatus places a value relative to the normal band of a biomarker.
type RangeStatus string

const (
	RangeLow    RangeStatus = "low"
	RangeNormal RangeStatus = "normal"
	RangeHigh   RangeStatus = "high"
)

// String returns the string representation of the range status.
func (r RangeStatus) String() string {
	return string(r)
}

// BiomarkerRange describes one input field: the range the entry form
// accepts, the scale of its indicator bar, and its normal band. The engine
// never enforces these ranges; they are advisory.
type BiomarkerRange struct {
	Field     string  `json:"field" yaml:"field"`
	Label     string  `json:"label" yaml:"label"`
	Unit      string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	InputMin  float64 `json:"inputMin" yaml:"inputMin"`
	InputMax  float64 `json:"inputMax" yaml:"inputMax"`
	ScaleMin  float64 `json:"scaleMin" yaml:"scaleMin"`
	ScaleMax  float64 `json:"scaleMax" yaml:"scaleMax"`
	NormalMin float64 `json:"normalMin" yaml:"normalMin"`
	NormalMax float64 `json:"normalMax" yaml:"normalMax"`
}

// RangeAssessment is the advisory reading of a single value.
type RangeAssessment struct {
	Field      string      `json:"field" yaml:"field"`
	Value      float64     `json:"value" yaml:"value"`
	Level      RangeStatus `json:"level" yaml:"level"`
	Position   float64     `json:"position" yaml:"position"`
	WithinForm bool        `json:"withinForm" yaml:"withinForm"`
}

// Assess classifies the value against the normal band and computes the
// indicator position as a percentage of the scale, clamped to [0, 100].
func (r BiomarkerRange) Assess(value float64) RangeAssessment {
	level := RangeNormal
	switch {
	case value < r.NormalMin:
		level = RangeLow
	case value > r.NormalMax:
		level = RangeHigh
	}

	position := 0.0
	if span := r.ScaleMax - r.ScaleMin; span > 0 {
		position = math.Max(0, math.Min(100, (value-r.ScaleMin)/span*100))
	}

	return RangeAssessment{
		Field:      r.Field,
		Value:      value,
		Level:      level,
		Position:   position,
		WithinForm: r.Contains(value),
	}
}

// Contains reports whether the value is inside the accepted form range.
func (r BiomarkerRange) Contains(value float64) bool {
	return value >= r.InputMin && value <= r.InputMax
}

// plain builds a range whose scale and normal band equal the form range.
func plain(field, label, unit string, lo, hi float64) BiomarkerRange {
	return BiomarkerRange{
		Field: field, Label: label, Unit: unit,
		InputMin: lo, InputMax: hi,
		ScaleMin: lo, ScaleMax: hi,
		NormalMin: lo, NormalMax: hi,
	}
}

var bioAgeRanges = []BiomarkerRange{
	plain("age", "Chronological Age", "years", 18, 120),
	{Field: "glucose", Label: "Fasting Glucose", Unit: "mg/dL", InputMin: 40, InputMax: 300, ScaleMin: 70, ScaleMax: 120, NormalMin: 70, NormalMax: 99},
	{Field: "crp", Label: "C-Reactive Protein", Unit: "mg/L", InputMin: 0, InputMax: 20, ScaleMin: 0, ScaleMax: 10, NormalMin: 0, NormalMax: 1.0},
	{Field: "albumin", Label: "Albumin", Unit: "g/dL", InputMin: 2, InputMax: 6, ScaleMin: 3.0, ScaleMax: 6.0, NormalMin: 3.5, NormalMax: 5.2},
	{Field: "creatinine", Label: "Creatinine", Unit: "mg/dL", InputMin: 0.2, InputMax: 3, ScaleMin: 0.5, ScaleMax: 2.0, NormalMin: 0.6, NormalMax: 1.2},
	{Field: "bun", Label: "Blood Urea Nitrogen", Unit: "mg/dL", InputMin: 5, InputMax: 50, ScaleMin: 5, ScaleMax: 30, NormalMin: 7, NormalMax: 20},
	{Field: "alt", Label: "Alanine Aminotransferase", Unit: "U/L", InputMin: 0, InputMax: 200, ScaleMin: 0, ScaleMax: 100, NormalMin: 0, NormalMax: 40},
	{Field: "hdl", Label: "HDL Cholesterol", Unit: "mg/dL", InputMin: 20, InputMax: 120, ScaleMin: 20, ScaleMax: 100, NormalMin: 40, NormalMax: 100},
	{Field: "ldl", Label: "LDL Cholesterol", Unit: "mg/dL", InputMin: 40, InputMax: 250, ScaleMin: 40, ScaleMax: 200, NormalMin: 40, NormalMax: 100},
	{Field: "hba1c", Label: "HbA1c", Unit: "%", InputMin: 3, InputMax: 15, ScaleMin: 4.0, ScaleMax: 12.0, NormalMin: 4.0, NormalMax: 5.7},
	{Field: "wbc", Label: "White Blood Cell Count", Unit: "K/μL", InputMin: 2, InputMax: 20, ScaleMin: 3.0, ScaleMax: 11.0, NormalMin: 4.5, NormalMax: 11.0},
}

// Cardiovascular normal bands follow the risk factor thresholds.
var cardioRanges = []BiomarkerRange{
	plain("age", "Age", "years", 30, 79),
	{Field: "totalCholesterol", Label: "Total Cholesterol", Unit: "mg/dL", InputMin: 100, InputMax: 400, ScaleMin: 100, ScaleMax: 400, NormalMin: 100, NormalMax: 200},
	{Field: "hdl", Label: "HDL Cholesterol", Unit: "mg/dL", InputMin: 20, InputMax: 100, ScaleMin: 20, ScaleMax: 100, NormalMin: 40, NormalMax: 100},
	{Field: "systolicBP", Label: "Systolic Blood Pressure", Unit: "mmHg", InputMin: 90, InputMax: 200, ScaleMin: 90, ScaleMax: 200, NormalMin: 90, NormalMax: 129},
}

var metabolicRanges = []BiomarkerRange{
	{Field: "fastingGlucose", Label: "Fasting Glucose", Unit: "mg/dL", InputMin: 60, InputMax: 200, ScaleMin: 60, ScaleMax: 140, NormalMin: 70, NormalMax: 100},
	plain("postprandialGlucose", "Postprandial Glucose", "mg/dL", 70, 300),
	{Field: "hba1c", Label: "HbA1c", Unit: "%", InputMin: 4, InputMax: 10, ScaleMin: 4, ScaleMax: 8, NormalMin: 4, NormalMax: 5.7},
	{Field: "fastingInsulin", Label: "Fasting Insulin", Unit: "μIU/mL", InputMin: 2, InputMax: 30, ScaleMin: 2, ScaleMax: 20, NormalMin: 2, NormalMax: 8},
	{Field: "triglycerides", Label: "Triglycerides", Unit: "mg/dL", InputMin: 30, InputMax: 300, ScaleMin: 30, ScaleMax: 200, NormalMin: 30, NormalMax: 150},
	{Field: "hdl", Label: "HDL Cholesterol", Unit: "mg/dL", InputMin: 20, InputMax: 100, ScaleMin: 20, ScaleMax: 80, NormalMin: 40, NormalMax: 80},
	plain("weight", "Weight", "kg", 40, 200),
	plain("height", "Height", "cm", 140, 220),
	{Field: "waistCircumference", Label: "Waist Circumference", Unit: "cm", InputMin: 50, InputMax: 150, ScaleMin: 60, ScaleMax: 120, NormalMin: 60, NormalMax: 94},
}

var bodyCompRanges = []BiomarkerRange{
	plain("age", "Age", "years", 18, 100),
	plain("weight", "Weight", "kg", 30, 250),
	plain("height", "Height", "cm", 120, 220),
	plain("waistCircumference", "Waist Circumference", "cm", 40, 200),
	plain("neckCircumference", "Neck Circumference", "cm", 20, 60),
	plain("hipCircumference", "Hip Circumference", "cm", 60, 200),
	plain("bodyFatPercentage", "Body Fat Percentage", "%", 3, 60),
}

// RangesFor returns a copy of the declared ranges of a calculator's input
// fields, in form order.
func RangesFor(kind CalculatorKind) []BiomarkerRange {
	var src []BiomarkerRange
	switch kind {
	case KindBioAge:
		src = bioAgeRanges
	case KindCardiovascular:
		src = cardioRanges
	case KindMetabolic:
		src = metabolicRanges
	case KindBodyComposition:
		src = bodyCompRanges
	default:
		return nil
	}
	out := make([]BiomarkerRange, len(src))
	copy(out, src)
	return out
}

// RangeFor looks up the declared range of one field.
func RangeFor(kind CalculatorKind, field string) (BiomarkerRange, bool) {
	for _, r := range RangesFor(kind) {
		if r.Field == field {
			return r, true
		}
	}
	return BiomarkerRange{}, false
}

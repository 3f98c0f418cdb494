package domain

import "fmt"

// NamedValue pairs an input field name with its numeric value. Inputs expose
// their numeric fields in declaration order so validation and range checks
// report fields deterministically.
type NamedValue struct {
	Name  string
	Value float64
}

// BioAgeInput is the blood panel used by the biological age estimate.
// Gender is accepted for completeness of the panel but does not change the
// estimate.
type BioAgeInput struct {
	Age        float64 `json:"age" yaml:"age"`
	Gender     Gender  `json:"gender" yaml:"gender"`
	Glucose    float64 `json:"glucose" yaml:"glucose"`
	CRP        float64 `json:"crp" yaml:"crp"`
	Albumin    float64 `json:"albumin" yaml:"albumin"`
	Creatinine float64 `json:"creatinine" yaml:"creatinine"`
	BUN        float64 `json:"bun" yaml:"bun"`
	ALT        float64 `json:"alt" yaml:"alt"`
	HDL        float64 `json:"hdl" yaml:"hdl"`
	LDL        float64 `json:"ldl" yaml:"ldl"`
	HbA1c      float64 `json:"hba1c" yaml:"hba1c"`
	WBC        float64 `json:"wbc" yaml:"wbc"`
}

// DefaultBioAgeInput returns the panel pre-filled in the calculator form.
func DefaultBioAgeInput() BioAgeInput {
	return BioAgeInput{
		Age:        35,
		Gender:     Male,
		Glucose:    85,
		CRP:        0.8,
		Albumin:    4.5,
		Creatinine: 0.9,
		BUN:        15,
		ALT:        20,
		HDL:        60,
		LDL:        100,
		HbA1c:      5.2,
		WBC:        5.5,
	}
}

// Fields returns the numeric fields keyed by their JSON names.
func (in BioAgeInput) Fields() []NamedValue {
	return []NamedValue{
		{"age", in.Age},
		{"glucose", in.Glucose},
		{"crp", in.CRP},
		{"albumin", in.Albumin},
		{"creatinine", in.Creatinine},
		{"bun", in.BUN},
		{"alt", in.ALT},
		{"hdl", in.HDL},
		{"ldl", in.LDL},
		{"hba1c", in.HbA1c},
		{"wbc", in.WBC},
	}
}

// Validate checks that every numeric field is finite.
func (in BioAgeInput) Validate() error {
	return ValidateFinite(in.Fields())
}

// CardioInput holds the Framingham-style risk factors.
type CardioInput struct {
	Age                 float64 `json:"age" yaml:"age"`
	Gender              Gender  `json:"gender" yaml:"gender"`
	TotalCholesterol    float64 `json:"totalCholesterol" yaml:"totalCholesterol"`
	HDL                 float64 `json:"hdl" yaml:"hdl"`
	SystolicBP          float64 `json:"systolicBP" yaml:"systolicBP"`
	OnBloodPressureMeds bool    `json:"onBloodPressureMeds" yaml:"onBloodPressureMeds"`
	Smoker              bool    `json:"smoker" yaml:"smoker"`
	Diabetic            bool    `json:"diabetic" yaml:"diabetic"`
}

// DefaultCardioInput returns the risk factors pre-filled in the calculator
// form.
func DefaultCardioInput() CardioInput {
	return CardioInput{
		Age:              50,
		Gender:           Male,
		TotalCholesterol: 180,
		HDL:              50,
		SystolicBP:       120,
	}
}

// Fields returns the numeric fields keyed by their JSON names.
func (in CardioInput) Fields() []NamedValue {
	return []NamedValue{
		{"age", in.Age},
		{"totalCholesterol", in.TotalCholesterol},
		{"hdl", in.HDL},
		{"systolicBP", in.SystolicBP},
	}
}

// Validate checks that every numeric field is finite and the gender is known.
func (in CardioInput) Validate() error {
	if err := ValidateFinite(in.Fields()); err != nil {
		return err
	}
	return ValidateGender(in.Gender)
}

// MetabolicInput holds the glycaemic, lipid and anthropometric markers of
// the metabolic health score.
type MetabolicInput struct {
	FastingGlucose      float64 `json:"fastingGlucose" yaml:"fastingGlucose"`
	PostprandialGlucose float64 `json:"postprandialGlucose" yaml:"postprandialGlucose"`
	HbA1c               float64 `json:"hba1c" yaml:"hba1c"`
	FastingInsulin      float64 `json:"fastingInsulin" yaml:"fastingInsulin"`
	Triglycerides       float64 `json:"triglycerides" yaml:"triglycerides"`
	HDL                 float64 `json:"hdl" yaml:"hdl"`
	Weight              float64 `json:"weight" yaml:"weight"`
	Height              float64 `json:"height" yaml:"height"`
	WaistCircumference  float64 `json:"waistCircumference" yaml:"waistCircumference"`
}

// DefaultMetabolicInput returns the markers pre-filled in the calculator form.
func DefaultMetabolicInput() MetabolicInput {
	return MetabolicInput{
		FastingGlucose:      85,
		PostprandialGlucose: 120,
		HbA1c:               5.2,
		FastingInsulin:      8,
		Triglycerides:       100,
		HDL:                 55,
		Weight:              70,
		Height:              170,
		WaistCircumference:  80,
	}
}

// Fields returns the numeric fields keyed by their JSON names.
func (in MetabolicInput) Fields() []NamedValue {
	return []NamedValue{
		{"fastingGlucose", in.FastingGlucose},
		{"postprandialGlucose", in.PostprandialGlucose},
		{"hba1c", in.HbA1c},
		{"fastingInsulin", in.FastingInsulin},
		{"triglycerides", in.Triglycerides},
		{"hdl", in.HDL},
		{"weight", in.Weight},
		{"height", in.Height},
		{"waistCircumference", in.WaistCircumference},
	}
}

// Validate checks that every numeric field is finite and that height can be
// used as a divisor.
func (in MetabolicInput) Validate() error {
	if err := ValidateFinite(in.Fields()); err != nil {
		return err
	}
	if in.Height <= 0 {
		return NewInvalidInputError("height", in.Height, "height must be positive")
	}
	return nil
}

// BodyCompInput holds the anthropometric measurements of the body
// composition calculator. BodyFatPercentage is only read when BodyFatMethod
// is measured; nil means no percentage was supplied.
type BodyCompInput struct {
	Age                float64       `json:"age" yaml:"age"`
	Gender             Gender        `json:"gender" yaml:"gender"`
	Weight             float64       `json:"weight" yaml:"weight"`
	Height             float64       `json:"height" yaml:"height"`
	WaistCircumference float64       `json:"waistCircumference" yaml:"waistCircumference"`
	NeckCircumference  float64       `json:"neckCircumference" yaml:"neckCircumference"`
	HipCircumference   float64       `json:"hipCircumference" yaml:"hipCircumference"`
	BodyFatPercentage  *float64      `json:"bodyFatPercentage,omitempty" yaml:"bodyFatPercentage,omitempty"`
	BodyFatMethod      BodyFatMethod `json:"bodyFatMethod,omitempty" yaml:"bodyFatMethod,omitempty"`
}

// DefaultBodyCompInput returns the measurements pre-filled in the calculator
// form.
func DefaultBodyCompInput() BodyCompInput {
	return BodyCompInput{
		Age:                35,
		Gender:             Male,
		Weight:             75,
		Height:             175,
		WaistCircumference: 83,
		NeckCircumference:  38,
		HipCircumference:   95,
		BodyFatMethod:      BodyFatEstimate,
	}
}

// Measured reports whether the caller supplied a measured body fat
// percentage. Any supplied value counts, including zero.
func (in BodyCompInput) Measured() bool {
	return in.BodyFatMethod == BodyFatMeasured && in.BodyFatPercentage != nil
}

type bodyCompKey struct {
	input      BodyCompInput
	bodyFat    float64
	hasBodyFat bool
}

// CacheInput returns the input with the body fat percentage dereferenced.
func (in BodyCompInput) CacheInput() any {
	key := bodyCompKey{}
	if in.BodyFatPercentage != nil {
		key.bodyFat, key.hasBodyFat = *in.BodyFatPercentage, true
	}
	in.BodyFatPercentage = nil
	key.input = in
	return key
}

// Fields returns the numeric fields keyed by their JSON names. The body fat
// percentage is only listed when it is measured.
func (in BodyCompInput) Fields() []NamedValue {
	fields := []NamedValue{
		{"age", in.Age},
		{"weight", in.Weight},
		{"height", in.Height},
		{"waistCircumference", in.WaistCircumference},
		{"neckCircumference", in.NeckCircumference},
		{"hipCircumference", in.HipCircumference},
	}
	if in.Measured() {
		fields = append(fields, NamedValue{"bodyFatPercentage", *in.BodyFatPercentage})
	}
	return fields
}

// Validate checks the finite-number, gender, method and divisor
// preconditions. The Navy log-argument check lives with the formula.
func (in BodyCompInput) Validate() error {
	if err := ValidateFinite(in.Fields()); err != nil {
		return err
	}
	if err := ValidateGender(in.Gender); err != nil {
		return err
	}
	if !in.BodyFatMethod.IsValid() {
		return fmt.Errorf("%w: unknown body fat method %q", ErrInvalidInput, in.BodyFatMethod)
	}
	if in.Height <= 0 {
		return NewInvalidInputError("height", in.Height, "height must be positive")
	}
	if in.HipCircumference <= 0 {
		return NewInvalidInputError("hipCircumference", in.HipCircumference, "hip circumference must be positive")
	}
	return nil
}

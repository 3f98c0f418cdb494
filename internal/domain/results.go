package domain

import (
	"maps"
	"slices"
)

// FactorScore is the per-factor entry of a calculator result. Not every
// calculator fills every field: biological age reports an impact, metabolic
// health a score, body composition a category.
type FactorScore struct {
	Value          float64 `json:"value" yaml:"value"`
	Score          float64 `json:"score" yaml:"score"`
	Category       string  `json:"category,omitempty" yaml:"category,omitempty"`
	Status         Status  `json:"status,omitempty" yaml:"status,omitempty"`
	Impact         Impact  `json:"impact,omitempty" yaml:"impact,omitempty"`
	Interpretation string  `json:"interpretation" yaml:"interpretation"`
}

// BioAgeResult is the output of the biological age estimate.
type BioAgeResult struct {
	BioAge           float64                `json:"bioAge" yaml:"bioAge"`
	ChronologicalAge float64                `json:"chronologicalAge" yaml:"chronologicalAge"`
	AgeDifference    float64                `json:"ageDifference" yaml:"ageDifference"`
	Status           Status                 `json:"status" yaml:"status"`
	Interpretation   string                 `json:"interpretation" yaml:"interpretation"`
	BiomarkerScores  map[string]FactorScore `json:"biomarkerScores" yaml:"biomarkerScores"`
	// ImpactRanking lists the biomarkers that moved the estimate, largest
	// contribution first.
	ImpactRanking   []string `json:"impactRanking" yaml:"impactRanking"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
}

// Clone returns a deep copy of the result.
func (r *BioAgeResult) Clone() *BioAgeResult {
	if r == nil {
		return nil
	}
	c := *r
	c.BiomarkerScores = maps.Clone(r.BiomarkerScores)
	c.ImpactRanking = slices.Clone(r.ImpactRanking)
	c.Recommendations = slices.Clone(r.Recommendations)
	return &c
}

// PointBreakdown itemises the Framingham-style point score.
type PointBreakdown struct {
	Base          int `json:"base" yaml:"base"`
	Age           int `json:"age" yaml:"age"`
	Cholesterol   int `json:"cholesterol" yaml:"cholesterol"`
	HDL           int `json:"hdl" yaml:"hdl"`
	BloodPressure int `json:"bloodPressure" yaml:"bloodPressure"`
	Smoking       int `json:"smoking" yaml:"smoking"`
	Diabetes      int `json:"diabetes" yaml:"diabetes"`
	Total         int `json:"total" yaml:"total"`
}

// Sum adds up the individual contributions.
func (p PointBreakdown) Sum() int {
	return p.Base + p.Age + p.Cholesterol + p.HDL + p.BloodPressure + p.Smoking + p.Diabetes
}

// RiskFactor is one annotated cardiovascular risk factor.
type RiskFactor struct {
	Key            string     `json:"key" yaml:"key"`
	Impact         RiskImpact `json:"impact" yaml:"impact"`
	Description    string     `json:"description" yaml:"description"`
	Recommendation string     `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
}

// CardioResult is the output of the cardiovascular risk calculator.
type CardioResult struct {
	TenYearRisk     float64        `json:"tenYearRisk" yaml:"tenYearRisk"`
	HeartAge        float64        `json:"heartAge" yaml:"heartAge"`
	Points          PointBreakdown `json:"points" yaml:"points"`
	Status          Status         `json:"status" yaml:"status"`
	Interpretation  string         `json:"interpretation" yaml:"interpretation"`
	RiskFactors     []RiskFactor   `json:"riskFactors" yaml:"riskFactors"`
	Recommendations []string       `json:"recommendations" yaml:"recommendations"`
}

// Clone returns a deep copy of the result.
func (r *CardioResult) Clone() *CardioResult {
	if r == nil {
		return nil
	}
	c := *r
	c.RiskFactors = slices.Clone(r.RiskFactors)
	c.Recommendations = slices.Clone(r.Recommendations)
	return &c
}

// RiskFactor returns the annotation with the given key.
func (r *CardioResult) RiskFactor(key string) (RiskFactor, bool) {
	for _, f := range r.RiskFactors {
		if f.Key == key {
			return f, true
		}
	}
	return RiskFactor{}, false
}

// MetabolicResult is the output of the metabolic health score.
type MetabolicResult struct {
	TotalScore                 float64                `json:"totalScore" yaml:"totalScore"`
	Status                     MetabolicStatus        `json:"status" yaml:"status"`
	DisplayStatus              Status                 `json:"displayStatus" yaml:"displayStatus"`
	Interpretation             string                 `json:"interpretation" yaml:"interpretation"`
	BMI                        float64                `json:"bmi" yaml:"bmi"`
	BMICategory                string                 `json:"bmiCategory" yaml:"bmiCategory"`
	InsulinSensitivity         float64                `json:"insulinSensitivity" yaml:"insulinSensitivity"`
	InsulinSensitivityCategory string                 `json:"insulinSensitivityCategory" yaml:"insulinSensitivityCategory"`
	MetabolicFactors           map[string]FactorScore `json:"metabolicFactors" yaml:"metabolicFactors"`
	Recommendations            []string               `json:"recommendations" yaml:"recommendations"`
}

// Clone returns a deep copy of the result.
func (r *MetabolicResult) Clone() *MetabolicResult {
	if r == nil {
		return nil
	}
	c := *r
	c.MetabolicFactors = maps.Clone(r.MetabolicFactors)
	c.Recommendations = slices.Clone(r.Recommendations)
	return &c
}

// BodyCompResult is the output of the body composition calculator.
type BodyCompResult struct {
	BMI                   float64         `json:"bmi" yaml:"bmi"`
	BMICategory           string          `json:"bmiCategory" yaml:"bmiCategory"`
	BMIStatus             Status          `json:"bmiStatus" yaml:"bmiStatus"`
	FFMI                  float64         `json:"ffmi" yaml:"ffmi"`
	FFMICategory          string          `json:"ffmiCategory" yaml:"ffmiCategory"`
	BodyFatPercentage     float64         `json:"bodyFatPercentage" yaml:"bodyFatPercentage"`
	BodyFatMethod         BodyFatMethod   `json:"bodyFatMethod" yaml:"bodyFatMethod"`
	BodyFatCategory       string          `json:"bodyFatCategory" yaml:"bodyFatCategory"`
	BodyFatStatus         Status          `json:"bodyFatStatus" yaml:"bodyFatStatus"`
	WaistToHeightRatio    float64         `json:"waistToHeightRatio" yaml:"waistToHeightRatio"`
	WaistToHeightCategory string          `json:"waistToHeightCategory" yaml:"waistToHeightCategory"`
	WaistToHeightStatus   Status          `json:"waistToHeightStatus" yaml:"waistToHeightStatus"`
	WaistToHipRatio       float64         `json:"waistToHipRatio" yaml:"waistToHipRatio"`
	WaistToHipCategory    string          `json:"waistToHipCategory" yaml:"waistToHipCategory"`
	WaistToHipStatus      Status          `json:"waistToHipStatus" yaml:"waistToHipStatus"`
	VisceralFatRisk       VisceralFatRisk `json:"visceralFatRisk" yaml:"visceralFatRisk"`
	LeanMass              float64         `json:"leanMass" yaml:"leanMass"`
	FatMass               float64         `json:"fatMass" yaml:"fatMass"`
	Status                Status          `json:"status" yaml:"status"`
	Interpretation        string          `json:"interpretation" yaml:"interpretation"`
	Recommendations       []string        `json:"recommendations" yaml:"recommendations"`
}

// Clone returns a deep copy of the result.
func (r *BodyCompResult) Clone() *BodyCompResult {
	if r == nil {
		return nil
	}
	c := *r
	c.Recommendations = slices.Clone(r.Recommendations)
	return &c
}

// Factors lists the body composition indices in the shape shared with the
// other calculators.
func (r *BodyCompResult) Factors() map[string]FactorScore {
	return map[string]FactorScore{
		"bmi":           {Value: r.BMI, Category: r.BMICategory, Status: r.BMIStatus},
		"bodyFat":       {Value: r.BodyFatPercentage, Category: r.BodyFatCategory, Status: r.BodyFatStatus},
		"ffmi":          {Value: r.FFMI, Category: r.FFMICategory},
		"waistToHeight": {Value: r.WaistToHeightRatio, Category: r.WaistToHeightCategory, Status: r.WaistToHeightStatus},
		"waistToHip":    {Value: r.WaistToHipRatio, Category: r.WaistToHipCategory, Status: r.WaistToHipStatus},
		"visceralFat":   {Category: string(r.VisceralFatRisk), Status: r.VisceralFatRisk.DisplayStatus()},
	}
}

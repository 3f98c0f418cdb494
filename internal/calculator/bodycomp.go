package calculator

import (
	"fmt"

	"github.com/chronos-health-scores/internal/domain"
	"github.com/chronos-health-scores/internal/rules"
	"github.com/chronos-health-scores/pkg/formula"
)

// bodyCompFacts carries the computed indices into the recommendation rules.
type bodyCompFacts struct {
	bmi           float64
	bodyFatPct    float64
	waistToHeight float64
	visceral      domain.VisceralFatRisk
	ffmi          float64
	tables        bodyCompTables
}

var bodyCompRecommendations = rules.MustNewEngine(
	[]rules.Rule[bodyCompFacts, string]{
		{
			ID:   "underweight",
			When: func(f bodyCompFacts) bool { return f.bmi < 18.5 },
			Then: rules.Emit[bodyCompFacts](
				"Consider increasing caloric intake with nutrient-dense foods to achieve a healthy weight.",
				"Focus on strength training to build lean muscle mass.",
			),
		},
		{
			ID:   "overweight",
			When: func(f bodyCompFacts) bool { return f.bmi >= 25 },
			Then: rules.Emit[bodyCompFacts](
				"Consider a moderate caloric deficit through a combination of diet and exercise.",
				"Aim for sustainable weight loss of 0.5-1kg per week.",
			),
		},
		{
			ID:   "highBodyFat",
			When: func(f bodyCompFacts) bool { return f.bodyFatPct > f.tables.highBodyFatPct },
			Then: rules.Emit[bodyCompFacts](
				"Focus on reducing body fat percentage through combined cardiovascular and resistance training.",
				"Consider consulting a nutritionist for a personalized nutrition plan.",
			),
		},
		{
			ID:   "waistToHeight",
			When: func(f bodyCompFacts) bool { return f.waistToHeight >= 0.5 },
			Then: rules.Emit[bodyCompFacts](
				"Your waist-to-height ratio indicates increased health risk. Focus on reducing abdominal fat.",
				"Incorporate high-intensity interval training (HIIT) to target abdominal fat reduction.",
			),
		},
		{
			ID:   "visceralFat",
			When: func(f bodyCompFacts) bool { return f.visceral == domain.VisceralHigh },
			Then: rules.Emit[bodyCompFacts](
				"Your waist circumference indicates elevated visceral fat, which increases risk for metabolic diseases.",
				"Prioritize reducing abdominal obesity through diet, exercise, stress management, and improved sleep.",
			),
		},
		{
			ID:   "lowMuscleMass",
			When: func(f bodyCompFacts) bool { return f.ffmi < f.tables.lowFFMI },
			Then: rules.Emit[bodyCompFacts](
				"Consider a structured resistance training program to increase muscle mass.",
				"Ensure adequate protein intake (1.6-2.2g per kg of body weight) to support muscle growth.",
			),
		},
	},
	rules.WithFallback[bodyCompFacts](
		"Your body composition metrics are within healthy ranges. Continue your current fitness regimen.",
		"For optimal health, maintain a balanced diet and regular physical activity combining both strength and cardiovascular training.",
	),
)

// ComputeBodyComposition derives BMI, body fat, lean and fat mass, FFMI,
// waist ratios and visceral fat risk, each classified independently.
func ComputeBodyComposition(in domain.BodyCompInput) (*domain.BodyCompResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tables := bodyCompTablesFor(in.Gender)

	bodyFat, method, err := bodyFatPercentage(in)
	if err != nil {
		return nil, err
	}

	bmi := formula.BMI(in.Weight, in.Height)
	fatMass := formula.FatMass(in.Weight, bodyFat)
	leanMass := formula.LeanMass(in.Weight, bodyFat)
	ffmi := formula.FFMI(leanMass, in.Height)
	whtr := formula.WaistToHeightRatio(in.WaistCircumference, in.Height)
	whr := formula.WaistToHipRatio(in.WaistCircumference, in.HipCircumference)

	bmiCat := bodyCompBMICategory.Classify(bmi)
	fatCat := tables.bodyFat.Classify(bodyFat)
	whrCat := tables.waistToHip.Classify(whr)
	visceral := tables.visceral.Classify(in.WaistCircumference)

	facts := bodyCompFacts{
		bmi:           bmi,
		bodyFatPct:    bodyFat,
		waistToHeight: whtr,
		visceral:      visceral,
		ffmi:          ffmi,
		tables:        tables,
	}

	return &domain.BodyCompResult{
		BMI:                   bmi,
		BMICategory:           bmiCat.Label,
		BMIStatus:             bmiCat.Status,
		FFMI:                  ffmi,
		FFMICategory:          tables.ffmi.Classify(ffmi),
		BodyFatPercentage:     bodyFat,
		BodyFatMethod:         method,
		BodyFatCategory:       fatCat.Label,
		BodyFatStatus:         fatCat.Status,
		WaistToHeightRatio:    whtr,
		WaistToHeightCategory: waistToHeightCategory.Classify(whtr),
		WaistToHeightStatus:   waistToHeightStatus.Classify(whtr),
		WaistToHipRatio:       whr,
		WaistToHipCategory:    whrCat.Label,
		WaistToHipStatus:      whrCat.Status,
		VisceralFatRisk:       visceral,
		LeanMass:              leanMass,
		FatMass:               fatMass,
		Status:                fatCat.Status,
		Interpretation:        fmt.Sprintf("Category: %s", fatCat.Label),
		Recommendations:       bodyCompRecommendations.Evaluate(facts),
	}, nil
}

// bodyFatPercentage uses the measured percentage when one was supplied and
// the Navy estimate otherwise. Both are clamped to the reportable range.
func bodyFatPercentage(in domain.BodyCompInput) (float64, domain.BodyFatMethod, error) {
	if in.Measured() {
		return formula.ClampBodyFat(*in.BodyFatPercentage), domain.BodyFatMeasured, nil
	}

	pct, err := formula.NavyBodyFat(in.Gender, in.WaistCircumference, in.NeckCircumference, in.HipCircumference, in.Height)
	if err != nil {
		return 0, "", err
	}
	return pct, domain.BodyFatEstimate, nil
}

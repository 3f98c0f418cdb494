package calculator

import (
	"github.com/chronos-health-scores/internal/domain"
	"github.com/chronos-health-scores/pkg/threshold"
)

// category is a labelled classification with its display tier.
type category struct {
	Label  string
	Status domain.Status
}

// Biological age.

var bioAgeDescriptions = map[string]string{
	"glucose": "Higher fasting glucose levels are associated with accelerated aging.",
	"crp":     "Elevated CRP indicates chronic inflammation, which accelerates aging.",
	"albumin": "Lower albumin levels may indicate reduced liver function and protein status.",
	"hdl":     "Higher HDL cholesterol is associated with longevity and better cardiovascular health.",
	"ldl":     "Elevated LDL cholesterol increases cardiovascular risk.",
	"hba1c":   "Higher HbA1c indicates sustained elevated blood sugar over time.",
}

// Panel markers that are collected but do not move the estimate.
var bioAgePanelOnly = []string{"creatinine", "bun", "alt", "wbc"}

var bioAgeStatus = threshold.MustNew(
	threshold.AtMost(-3, domain.StatusGood),
	threshold.AtMost(0, domain.StatusNeutral),
	threshold.Below(3, domain.StatusWarning),
	threshold.Otherwise(domain.StatusDanger),
)

var bioAgeInterpretation = threshold.MustNew(
	threshold.AtMost(-5, "Excellent! Your biological age is significantly lower than your chronological age. Your biomarkers indicate excellent health and potential longevity."),
	threshold.Below(0, "Good! Your biological age is lower than your chronological age, suggesting your body is aging slower than average."),
	threshold.AtMost(0, "Your biological age matches your chronological age, suggesting normal aging patterns."),
	threshold.Below(5, "Your biological age is slightly higher than your chronological age. Consider lifestyle modifications to improve key biomarkers."),
	threshold.Otherwise("Your biological age is significantly higher than your chronological age. It's recommended to consult with a healthcare provider to address the biomarkers that need improvement."),
)

// Cardiovascular risk.

var cardioStatus = threshold.MustNew(
	threshold.Below(5, domain.StatusGood),
	threshold.Below(10, domain.StatusWarning),
	threshold.Otherwise(domain.StatusDanger),
)

var cardioInterpretation = threshold.MustNew(
	threshold.Below(5, "Your 10-year risk of cardiovascular disease is low. Continue maintaining a healthy lifestyle."),
	threshold.Below(10, "Your risk is moderate. Addressing risk factors can help reduce your risk further."),
	threshold.Below(20, "Your risk is elevated. Consult with a healthcare provider to develop a risk reduction plan."),
	threshold.Otherwise("Your risk is high. It's strongly recommended to consult with a healthcare provider to address risk factors."),
)

// Metabolic health.

var metabolicBMICategory = threshold.MustNew(
	threshold.Below(18.5, "Underweight"),
	threshold.Below(25, "Normal weight"),
	threshold.Below(30, "Overweight"),
	threshold.Otherwise("Obese"),
)

var insulinSensitivityCategory = threshold.MustNew(
	threshold.Below(1, "Excellent"),
	threshold.Below(1.5, "Good"),
	threshold.Below(2, "Fair"),
	threshold.Below(2.5, "Poor"),
	threshold.Otherwise("Very Poor"),
)

var fastingGlucoseScore = threshold.MustNew(
	threshold.AtMost(70, 0.0),
	threshold.AtMost(85, 10.0),
	threshold.AtMost(95, 8.0),
	threshold.AtMost(100, 6.0),
	threshold.AtMost(110, 4.0),
	threshold.AtMost(125, 2.0),
	threshold.Otherwise(0.0),
)

var hba1cScore = threshold.MustNew(
	threshold.AtMost(5.2, 10.0),
	threshold.AtMost(5.5, 8.0),
	threshold.AtMost(5.7, 6.0),
	threshold.AtMost(6.0, 4.0),
	threshold.AtMost(6.4, 2.0),
	threshold.Otherwise(0.0),
)

var insulinSensitivityScore = threshold.MustNew(
	threshold.Below(1, 10.0),
	threshold.Below(1.5, 8.0),
	threshold.Below(2, 6.0),
	threshold.Below(2.5, 4.0),
	threshold.Below(3, 2.0),
	threshold.Otherwise(0.0),
)

var triglyceridesScore = threshold.MustNew(
	threshold.Below(70, 10.0),
	threshold.Below(100, 8.0),
	threshold.Below(130, 6.0),
	threshold.Below(150, 4.0),
	threshold.Below(200, 2.0),
	threshold.Otherwise(0.0),
)

var metabolicHDLScore = threshold.MustNew(
	threshold.Below(30, 0.0),
	threshold.Below(35, 2.0),
	threshold.Below(40, 4.0),
	threshold.Below(50, 6.0),
	threshold.Below(60, 8.0),
	threshold.Otherwise(10.0),
)

var waistScore = threshold.MustNew(
	threshold.Below(80, 10.0),
	threshold.Below(90, 8.0),
	threshold.Below(100, 6.0),
	threshold.Below(110, 4.0),
	threshold.Below(120, 2.0),
	threshold.Otherwise(0.0),
)

var factorStatus = threshold.MustNew(
	threshold.Below(4, domain.StatusDanger),
	threshold.Below(8, domain.StatusWarning),
	threshold.Otherwise(domain.StatusGood),
)

var metabolicStatus = threshold.MustNew(
	threshold.Below(4, domain.MetabolicPoor),
	threshold.Below(6, domain.MetabolicFair),
	threshold.Below(8, domain.MetabolicGood),
	threshold.Otherwise(domain.MetabolicOptimal),
)

const diabeticRange = "Diabetic range - consultation with a healthcare provider is recommended."

var fastingGlucoseInterpretation = threshold.MustNew(
	threshold.Below(70, "Below optimal range - may indicate hypoglycemia."),
	threshold.AtMost(85, "Optimal range for metabolic health."),
	threshold.AtMost(100, "Normal range, but lower values are associated with better metabolic health."),
	threshold.AtMost(125, "Prediabetic range - indicates increased risk for diabetes."),
	threshold.Otherwise(diabeticRange),
)

var hba1cInterpretation = threshold.MustNew(
	threshold.AtMost(5.2, "Optimal range for long-term metabolic health."),
	threshold.AtMost(5.7, "Normal range, with lower values generally indicating better glucose control."),
	threshold.AtMost(6.4, "Prediabetic range - indicates increased risk for diabetes."),
	threshold.Otherwise(diabeticRange),
)

var insulinSensitivityInterpretation = threshold.MustNew(
	threshold.Below(1, "Excellent insulin sensitivity."),
	threshold.Below(1.5, "Good insulin sensitivity."),
	threshold.Below(2, "Fair insulin sensitivity."),
	threshold.Below(2.5, "Reduced insulin sensitivity."),
	threshold.Below(3, "Poor insulin sensitivity - early insulin resistance."),
	threshold.Otherwise("Significant insulin resistance - consultation with a healthcare provider is recommended."),
)

var triglyceridesInterpretation = threshold.MustNew(
	threshold.Below(70, "Optimal level for metabolic health."),
	threshold.Below(100, "Very good level."),
	threshold.Below(150, "Normal range, with lower values generally better for metabolic health."),
	threshold.Below(200, "Borderline high - consider lifestyle modifications."),
	threshold.Otherwise("High - consultation with a healthcare provider is recommended."),
)

var hdlInterpretation = threshold.MustNew(
	threshold.Below(40, "Low HDL - associated with increased cardiovascular risk."),
	threshold.Below(60, "Acceptable range, with higher values generally better."),
	threshold.Otherwise("Optimal level - associated with reduced cardiovascular risk."),
)

var waistInterpretation = threshold.MustNew(
	threshold.Below(80, "Optimal range associated with lower metabolic risk."),
	threshold.Below(95, "Moderate risk range."),
	threshold.Otherwise("Increased metabolic risk - abdominal obesity is associated with insulin resistance."),
)

// Body composition.

var bodyCompBMICategory = threshold.MustNew(
	threshold.Below(18.5, category{"Underweight", domain.StatusWarning}),
	threshold.Below(25, category{"Normal weight", domain.StatusGood}),
	threshold.Below(30, category{"Overweight", domain.StatusWarning}),
	threshold.Below(35, category{"Obese Class I", domain.StatusDanger}),
	threshold.Below(40, category{"Obese Class II", domain.StatusDanger}),
	threshold.Otherwise(category{"Obese Class III", domain.StatusDanger}),
)

var waistToHeightCategory = threshold.MustNew(
	threshold.Below(0.4, "Extremely slim"),
	threshold.Below(0.43, "Slender"),
	threshold.Below(0.47, "Healthy slim"),
	threshold.Below(0.53, "Healthy"),
	threshold.Below(0.58, "Overweight"),
	threshold.Below(0.63, "Very overweight"),
	threshold.Otherwise("Obese"),
)

var waistToHeightStatus = threshold.MustNew(
	threshold.Below(0.5, domain.StatusGood),
	threshold.Below(0.6, domain.StatusWarning),
	threshold.Otherwise(domain.StatusDanger),
)

// bodyCompTables holds the gender-specific body composition breakpoints.
type bodyCompTables struct {
	bodyFat        *threshold.Table[category]
	ffmi           *threshold.Table[string]
	waistToHip     *threshold.Table[category]
	visceral       *threshold.Table[domain.VisceralFatRisk]
	highBodyFatPct float64
	lowFFMI        float64
}

var bodyCompMale = bodyCompTables{
	bodyFat: threshold.MustNew(
		threshold.Below(6, category{"Essential fat", domain.StatusWarning}),
		threshold.Below(14, category{"Athletic", domain.StatusGood}),
		threshold.Below(18, category{"Fitness", domain.StatusGood}),
		threshold.Below(25, category{"Average", domain.StatusWarning}),
		threshold.Otherwise(category{"Obese", domain.StatusDanger}),
	),
	ffmi: threshold.MustNew(
		threshold.Below(18, "Below average"),
		threshold.Below(20, "Average"),
		threshold.Below(22, "Above average"),
		threshold.Below(23, "Excellent"),
		threshold.Below(26, "Superior"),
		threshold.Otherwise("Exceptional"),
	),
	waistToHip: threshold.MustNew(
		threshold.Below(0.9, category{"Low risk", domain.StatusGood}),
		threshold.Below(1.0, category{"Moderate risk", domain.StatusWarning}),
		threshold.Otherwise(category{"High risk", domain.StatusDanger}),
	),
	visceral: threshold.MustNew(
		threshold.Below(94, domain.VisceralLow),
		threshold.Below(102, domain.VisceralModerate),
		threshold.Otherwise(domain.VisceralHigh),
	),
	highBodyFatPct: 25,
	lowFFMI:        18,
}

var bodyCompFemale = bodyCompTables{
	bodyFat: threshold.MustNew(
		threshold.Below(14, category{"Essential fat", domain.StatusWarning}),
		threshold.Below(21, category{"Athletic", domain.StatusGood}),
		threshold.Below(25, category{"Fitness", domain.StatusGood}),
		threshold.Below(32, category{"Average", domain.StatusWarning}),
		threshold.Otherwise(category{"Obese", domain.StatusDanger}),
	),
	ffmi: threshold.MustNew(
		threshold.Below(15, "Below average"),
		threshold.Below(16, "Average"),
		threshold.Below(17.5, "Above average"),
		threshold.Below(19, "Excellent"),
		threshold.Below(21, "Superior"),
		threshold.Otherwise("Exceptional"),
	),
	waistToHip: threshold.MustNew(
		threshold.Below(0.8, category{"Low risk", domain.StatusGood}),
		threshold.Below(0.85, category{"Moderate risk", domain.StatusWarning}),
		threshold.Otherwise(category{"High risk", domain.StatusDanger}),
	),
	visceral: threshold.MustNew(
		threshold.Below(80, domain.VisceralLow),
		threshold.Below(88, domain.VisceralModerate),
		threshold.Otherwise(domain.VisceralHigh),
	),
	highBodyFatPct: 32,
	lowFFMI:        15,
}

func bodyCompTablesFor(gender domain.Gender) bodyCompTables {
	if gender == domain.Female {
		return bodyCompFemale
	}
	return bodyCompMale
}

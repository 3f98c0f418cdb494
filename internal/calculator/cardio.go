package calculator

import (
	"github.com/chronos-health-scores/internal/domain"
	"github.com/chronos-health-scores/internal/rules"
	"github.com/chronos-health-scores/pkg/formula"
)

var cardioRiskFactors = rules.MustNewEngine([]rules.Rule[domain.CardioInput, domain.RiskFactor]{
	{
		ID: "age",
		When: func(in domain.CardioInput) bool {
			return in.Gender == domain.Male && in.Age >= 45 || in.Gender == domain.Female && in.Age >= 55
		},
		Then: rules.Emit[domain.CardioInput](domain.RiskFactor{
			Key:            "age",
			Impact:         domain.RiskMedium,
			Description:    "Age is a non-modifiable risk factor for heart disease.",
			Recommendation: "Focus on modifiable risk factors like diet, exercise, and not smoking.",
		}),
	},
	{
		ID:   "cholesterol",
		When: func(in domain.CardioInput) bool { return in.TotalCholesterol > 200 },
		Then: func(in domain.CardioInput) []domain.RiskFactor {
			impact := domain.RiskMedium
			if in.TotalCholesterol > 240 {
				impact = domain.RiskHigh
			}
			return []domain.RiskFactor{{
				Key:            "cholesterol",
				Impact:         impact,
				Description:    "Elevated total cholesterol increases cardiovascular risk.",
				Recommendation: "Consider dietary changes, increased physical activity, and possibly medication.",
			}}
		},
	},
	{
		ID:   "hdl",
		When: func(in domain.CardioInput) bool { return in.HDL < 40 },
		Then: rules.Emit[domain.CardioInput](domain.RiskFactor{
			Key:            "hdl",
			Impact:         domain.RiskHigh,
			Description:    `Low HDL ("good") cholesterol is a risk factor for heart disease.`,
			Recommendation: "Regular exercise, weight loss if needed, and avoiding trans fats can help raise HDL.",
		}),
	},
	{
		ID:   "bloodPressure",
		When: func(in domain.CardioInput) bool { return in.SystolicBP >= 130 },
		Then: func(in domain.CardioInput) []domain.RiskFactor {
			impact := domain.RiskMedium
			if in.SystolicBP >= 140 {
				impact = domain.RiskHigh
			}
			return []domain.RiskFactor{{
				Key:            "bloodPressure",
				Impact:         impact,
				Description:    "Elevated blood pressure increases strain on your heart and arteries.",
				Recommendation: "Reduce sodium intake, maintain healthy weight, exercise regularly, and manage stress.",
			}}
		},
	},
	{
		ID:   "smoking",
		When: func(in domain.CardioInput) bool { return in.Smoker },
		Then: rules.Emit[domain.CardioInput](domain.RiskFactor{
			Key:            "smoking",
			Impact:         domain.RiskHigh,
			Description:    "Smoking significantly increases cardiovascular risk.",
			Recommendation: "Quitting smoking is one of the most impactful changes you can make for heart health.",
		}),
	},
	{
		ID:   "diabetes",
		When: func(in domain.CardioInput) bool { return in.Diabetic },
		Then: rules.Emit[domain.CardioInput](domain.RiskFactor{
			Key:            "diabetes",
			Impact:         domain.RiskHigh,
			Description:    "Diabetes significantly increases your risk of heart disease.",
			Recommendation: "Maintain good glucose control through diet, exercise, and medication as prescribed.",
		}),
	},
})

// ComputeCardiovascularRisk scores the Framingham-style risk factors, looks
// up the 10-year risk and derives heart age and the annotated risk factors.
func ComputeCardiovascularRisk(in domain.CardioInput) (*domain.CardioResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	points := formula.FraminghamPoints(in.Gender, formula.FraminghamFactors{
		Age:                 in.Age,
		TotalCholesterol:    in.TotalCholesterol,
		HDL:                 in.HDL,
		SystolicBP:          in.SystolicBP,
		OnBloodPressureMeds: in.OnBloodPressureMeds,
		Smoker:              in.Smoker,
		Diabetic:            in.Diabetic,
	})
	risk := formula.FraminghamRisk(in.Gender, points.Total)

	factors := cardioRiskFactors.Evaluate(in)
	recommendations := make([]string, 0, len(factors))
	for _, f := range factors {
		if f.Recommendation != "" {
			recommendations = append(recommendations, f.Recommendation)
		}
	}

	return &domain.CardioResult{
		TenYearRisk:     risk,
		HeartAge:        formula.HeartAge(in.Age, risk),
		Points:          points,
		Status:          cardioStatus.Classify(risk),
		Interpretation:  cardioInterpretation.Classify(risk),
		RiskFactors:     factors,
		Recommendations: recommendations,
	}, nil
}

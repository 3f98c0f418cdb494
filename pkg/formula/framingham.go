package formula

import (
	"math"

	"github.com/chronos-health-scores/internal/domain"
	"github.com/chronos-health-scores/pkg/threshold"
)

// FraminghamFactors are the inputs of the point score.
type FraminghamFactors struct {
	Age                 float64
	TotalCholesterol    float64
	HDL                 float64
	SystolicBP          float64
	OnBloodPressureMeds bool
	Smoker              bool
	Diabetic            bool
}

// FraminghamPoints sums the gender-specific point contributions. The caller
// is expected to have validated the gender.
func FraminghamPoints(gender domain.Gender, f FraminghamFactors) domain.PointBreakdown {
	t := framinghamTablesFor(gender)

	p := domain.PointBreakdown{
		Base:        t.base,
		Age:         t.age.Classify(f.Age),
		Cholesterol: t.cholesterol.Classify(f.TotalCholesterol),
		HDL:         framinghamHDL.Classify(f.HDL),
	}
	if f.OnBloodPressureMeds {
		p.BloodPressure = t.treatedSBP.Classify(f.SystolicBP)
	} else {
		p.BloodPressure = t.untreatedSBP.Classify(f.SystolicBP)
	}
	if f.Smoker {
		p.Smoking = t.smoker
	}
	if f.Diabetic {
		p.Diabetes = t.diabetic
	}
	p.Total = p.Sum()
	return p
}

// FraminghamRisk maps a point total to a 10-year risk percentage through the
// gender-specific lookup table.
func FraminghamRisk(gender domain.Gender, points int) float64 {
	return framinghamTablesFor(gender).risk.Classify(float64(points))
}

// HeartAge maps the 10-year risk onto an age offset and rounds to whole
// years.
func HeartAge(age, riskPct float64) float64 {
	var heartAge float64
	switch {
	case riskPct <= 2:
		heartAge = math.Max(heartAgeFloor, age-5)
	case riskPct <= 5:
		heartAge = age
	case riskPct <= 10:
		heartAge = age + 5
	case riskPct <= 20:
		heartAge = age + 10
	default:
		heartAge = age + 15
	}
	return Round(heartAge, 0)
}

type framinghamTables struct {
	base         int
	smoker       int
	diabetic     int
	age          *threshold.Table[int]
	cholesterol  *threshold.Table[int]
	treatedSBP   *threshold.Table[int]
	untreatedSBP *threshold.Table[int]
	risk         *threshold.Table[float64]
}

func framinghamTablesFor(gender domain.Gender) framinghamTables {
	if gender == domain.Female {
		return framinghamFemale
	}
	return framinghamMale
}

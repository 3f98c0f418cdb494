package formula

import (
	"github.com/chronos-health-scores/pkg/threshold"
)

const (
	homaDivisor = 405.0

	// BodyFatMin and BodyFatMax bound every reported body fat percentage.
	BodyFatMin = 5.0
	BodyFatMax = 60.0

	heartAgeFloor = 40.0
)

type navyCoefficients struct{ a, b, c float64 }

var (
	navyMale   = navyCoefficients{a: 1.0324, b: 0.19077, c: 0.15456}
	navyFemale = navyCoefficients{a: 1.29579, b: 0.35004, c: 0.22100}
)

var bioAgeTerms = []AgeTerm{
	{Field: "glucose", Kind: Excess, Threshold: 99, Rate: 0.05},
	{Field: "crp", Kind: Proportional, Threshold: 1.0, Rate: 0.3},
	{Field: "albumin", Kind: Deficit, Threshold: 4.0, Rate: 0.5},
	{Field: "hdl", Kind: Bonus, Threshold: 60, Rate: 0.03},
	{Field: "ldl", Kind: Excess, Threshold: 100, Rate: 0.02},
	{Field: "hba1c", Kind: Excess, Threshold: 5.7, Rate: 0.8},
}

// Framingham point tables. Integer inputs reproduce the bracketed ranges
// (20-34, 35-39, ...); fractional values fall into the bracket below the
// next integer bound instead of scoring zero.
var framinghamHDL = threshold.MustNew(
	threshold.Below(40, 2),
	threshold.Below(50, 1),
	threshold.Below(60, 0),
	threshold.Otherwise(-2),
)

var framinghamMale = framinghamTables{
	base:     0,
	smoker:   4,
	diabetic: 3,
	age: threshold.MustNew(
		threshold.Below(20, 0),
		threshold.Below(35, -9),
		threshold.Below(40, -4),
		threshold.Below(45, 0),
		threshold.Below(50, 3),
		threshold.Below(55, 6),
		threshold.Below(60, 8),
		threshold.Below(65, 10),
		threshold.Below(70, 11),
		threshold.Below(75, 12),
		threshold.Below(80, 13),
		threshold.Otherwise(0),
	),
	cholesterol: threshold.MustNew(
		threshold.Below(160, 0),
		threshold.Below(200, 1),
		threshold.Below(240, 2),
		threshold.Below(280, 3),
		threshold.Otherwise(4),
	),
	treatedSBP: threshold.MustNew(
		threshold.Below(120, 0),
		threshold.Below(130, 1),
		threshold.Below(140, 2),
		threshold.Below(160, 2),
		threshold.Otherwise(3),
	),
	untreatedSBP: threshold.MustNew(
		threshold.Below(130, 0),
		threshold.Below(140, 1),
		threshold.Below(160, 1),
		threshold.Otherwise(2),
	),
	risk: threshold.MustNew(
		threshold.Below(0, 1.0),
		threshold.AtMost(4, 2.0),
		threshold.AtMost(6, 3.0),
		threshold.AtMost(8, 4.0),
		threshold.AtMost(10, 6.0),
		threshold.AtMost(12, 10.0),
		threshold.AtMost(14, 16.0),
		threshold.AtMost(16, 25.0),
		threshold.Otherwise(30.0),
	),
}

var framinghamFemale = framinghamTables{
	base:     -3,
	smoker:   3,
	diabetic: 4,
	age: threshold.MustNew(
		threshold.Below(20, 0),
		threshold.Below(35, -7),
		threshold.Below(40, -3),
		threshold.Below(45, 0),
		threshold.Below(50, 3),
		threshold.Below(55, 6),
		threshold.Below(60, 8),
		threshold.Below(65, 10),
		threshold.Below(70, 12),
		threshold.Below(75, 14),
		threshold.Below(80, 16),
		threshold.Otherwise(0),
	),
	cholesterol: threshold.MustNew(
		threshold.Below(160, 0),
		threshold.Below(200, 1),
		threshold.Below(240, 3),
		threshold.Below(280, 4),
		threshold.Otherwise(5),
	),
	treatedSBP: threshold.MustNew(
		threshold.Below(120, 0),
		threshold.Below(130, 3),
		threshold.Below(140, 4),
		threshold.Below(160, 5),
		threshold.Otherwise(6),
	),
	untreatedSBP: threshold.MustNew(
		threshold.Below(130, 0),
		threshold.Below(140, 2),
		threshold.Below(160, 3),
		threshold.Otherwise(4),
	),
	risk: threshold.MustNew(
		threshold.Below(0, 1.0),
		threshold.AtMost(5, 2.0),
		threshold.AtMost(7, 3.0),
		threshold.AtMost(8, 4.0),
		threshold.AtMost(10, 5.0),
		threshold.AtMost(13, 8.0),
		threshold.AtMost(16, 11.0),
		threshold.AtMost(19, 15.0),
		threshold.Otherwise(24.0),
	),
}

package formula

import (
	"math"

	"github.com/chronos-health-scores/internal/domain"
)

// NavyBodyFat estimates body fat percentage from circumferences with the
// U.S. Navy formula. Men use waist − neck, women waist + hip − neck. The
// estimate is clamped to [BodyFatMin, BodyFatMax].
//
// A non-positive logarithm argument or height yields an InvalidInputError
// instead of a clamped non-finite value.
func NavyBodyFat(gender domain.Gender, waistCm, neckCm, hipCm, heightCm float64) (float64, error) {
	if heightCm <= 0 {
		return 0, domain.NewInvalidInputError("height", heightCm, "height must be positive")
	}

	var pct float64
	switch gender {
	case domain.Male:
		arg := waistCm - neckCm
		if arg <= 0 {
			return 0, domain.NewInvalidInputError("waistCircumference", waistCm, "waist must exceed neck circumference")
		}
		pct = 495/(navyMale.a-navyMale.b*math.Log10(arg)+navyMale.c*math.Log10(heightCm)) - 450
	case domain.Female:
		arg := waistCm + hipCm - neckCm
		if arg <= 0 {
			return 0, domain.NewInvalidInputError("waistCircumference", waistCm, "waist plus hip must exceed neck circumference")
		}
		pct = 495/(navyFemale.a-navyFemale.b*math.Log10(arg)+navyFemale.c*math.Log10(heightCm)) - 450
	default:
		return 0, domain.ValidateGender(gender)
	}

	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, domain.NewInvalidInputError("height", heightCm, "body fat estimate is undefined for these measurements")
	}
	return ClampBodyFat(pct), nil
}

// ClampBodyFat bounds a body fat percentage to [BodyFatMin, BodyFatMax].
func ClampBodyFat(pct float64) float64 {
	return math.Max(BodyFatMin, math.Min(BodyFatMax, pct))
}

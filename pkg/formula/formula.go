// Package formula implements the closed-form derivations behind the health
// score calculators: anthropometric indices, HOMA-IR, the U.S. Navy body fat
// estimate, Framingham-style point scoring and the biological age terms.
//
// Every function is pure. Constants are kept as data in tables.go.
package formula

import "math"

// Round rounds to the given number of decimals with ties going up, so 37.55
// becomes 37.6 and -0.25 becomes -0.2.
func Round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Floor(x*p+0.5) / p
}

// BMI returns weight / height² with height given in centimetres.
func BMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return weightKg / (m * m)
}

// FatMass returns the fat mass in kilograms for a body fat percentage.
func FatMass(weightKg, bodyFatPct float64) float64 {
	return bodyFatPct / 100 * weightKg
}

// LeanMass returns the fat-free mass in kilograms.
func LeanMass(weightKg, bodyFatPct float64) float64 {
	return weightKg - FatMass(weightKg, bodyFatPct)
}

// FFMI returns the fat-free mass index, lean mass / height² in metres.
func FFMI(leanKg, heightCm float64) float64 {
	m := heightCm / 100
	return leanKg / (m * m)
}

// WaistToHeightRatio returns waist / height.
func WaistToHeightRatio(waistCm, heightCm float64) float64 {
	return waistCm / heightCm
}

// WaistToHipRatio returns waist / hip.
func WaistToHipRatio(waistCm, hipCm float64) float64 {
	return waistCm / hipCm
}

// HOMAIR returns the homeostatic model assessment of insulin resistance from
// fasting glucose (mg/dL) and fasting insulin (μIU/mL).
func HOMAIR(glucoseMgDL, insulin float64) float64 {
	return glucoseMgDL * insulin / homaDivisor
}

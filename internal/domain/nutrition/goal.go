// Package nutrition computes daily calorie targets from biometric inputs.
package nutrition

import (
	"math"

	"github.com/nutritrack/nutritrack/internal/domain/apperr"
)

// Sex selects the BMR formula branch. The model is binary; adding a category
// means adding an explicit case, never falling through a default.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ParseSex returns the Sex for a raw string.
func ParseSex(raw string) (Sex, error) {
	switch Sex(raw) {
	case SexMale:
		return SexMale, nil
	case SexFemale:
		return SexFemale, nil
	}
	return "", apperr.Invalidf("unknown sex category %q", raw)
}

// Sedentary activity multiplier. Fixed in the current scope.
const activityFactor = 1.2

// BMR computes the basal metabolic rate with the Mifflin-St Jeor equation.
// Height is in centimeters, weight in kilograms. Pure; callers validate
// inputs upstream (see ValidateBiometrics).
func BMR(age int, heightCm, weightKg float64, sex Sex) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == SexMale {
		return bmr + 5
	}
	return bmr - 161
}

// CalorieGoal returns the daily calorie target: round(BMR x 1.2).
func CalorieGoal(age int, heightCm, weightKg float64, sex Sex) int {
	return int(math.Round(BMR(age, heightCm, weightKg, sex) * activityFactor))
}

// ValidateBiometrics rejects non-positive or implausible inputs so the pure
// formula never sees garbage.
func ValidateBiometrics(age int, heightCm, weightKg float64) error {
	if age <= 0 || age > 130 {
		return apperr.Invalidf("age %d out of range", age)
	}
	if heightCm < 50 || heightCm > 250 {
		return apperr.Invalidf("height %.1f cm out of range", heightCm)
	}
	if weightKg < 10 || weightKg > 400 {
		return apperr.Invalidf("weight %.1f kg out of range", weightKg)
	}
	return nil
}

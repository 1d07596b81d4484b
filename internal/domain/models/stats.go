package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// DateLayout is the canonical calendar-day key used across the API and the
// document store. Dates are compared as strings, which is safe for this form.
const DateLayout = "2006-01-02"

// DailyStats is the single aggregate per (user, calendar day): running
// calorie and water totals. Both totals are clamped at zero on subtraction.
type DailyStats struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        string             `bson:"user_id" json:"userId"`
	Date          string             `bson:"date" json:"date"` // YYYY-MM-DD
	TotalCalories float64            `bson:"total_calories" json:"totalCalories"`
	WaterIntake   float64            `bson:"water_intake" json:"waterIntake"` // milliliters
}

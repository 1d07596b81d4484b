package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealSlot labels the part of the day a planned meal belongs to.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotSnack     MealSlot = "snack"
)

// Valid reports whether the slot is one of the four known values.
func (s MealSlot) Valid() bool {
	switch s {
	case SlotBreakfast, SlotLunch, SlotDinner, SlotSnack:
		return true
	}
	return false
}

// MealPlan is a planned meal for one user, calendar day and meal slot.
// TotalCalories is a snapshot taken from the recipe at creation time
// (calories per serving x serving size); once Consumed is set the snapshot
// is frozen because its value has been folded into the day's stats.
type MealPlan struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        string             `bson:"user_id" json:"userId"`
	Date          string             `bson:"date" json:"date"` // YYYY-MM-DD
	MealType      MealSlot           `bson:"meal_type" json:"mealType"`
	RecipeName    string             `bson:"recipe_name" json:"recipeName"`
	ServingSize   int                `bson:"serving_size" json:"servingSize"`
	TotalCalories float64            `bson:"total_calories" json:"totalCalories"`
	Consumed      bool               `bson:"consumed" json:"consumed"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recipe is a catalog entry. Meal plans reference recipes by title, not by
// id, so Calories here is only read at plan creation or edit time.
type Recipe struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Ingredients []string           `bson:"ingredients" json:"ingredients"`
	Calories    float64            `bson:"calories" json:"calories"` // per serving
	Servings    int                `bson:"servings" json:"servings"`
	Category    string             `bson:"category" json:"category"`
	Dietary     string             `bson:"dietary" json:"dietary"`
	Photo       string             `bson:"photo" json:"photo"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nutritrack/nutritrack/internal/domain/apperr"
	"github.com/nutritrack/nutritrack/internal/domain/models"
)

// MealPlanUpdate carries the replaceable fields of a meal plan entry.
// The consumed flag is never touched through this path.
type MealPlanUpdate struct {
	Date          string
	MealType      models.MealSlot
	RecipeName    string
	ServingSize   int
	TotalCalories float64
}

// MealPlanRepository defines storage for planned meals.
type MealPlanRepository interface {
	Insert(ctx context.Context, plan *models.MealPlan) (*models.MealPlan, error)
	FindByID(ctx context.Context, id string) (*models.MealPlan, error)
	FindByOwnerAndDate(ctx context.Context, owner, date string) ([]models.MealPlan, error)
	FindByOwner(ctx context.Context, owner string) ([]models.MealPlan, error)
	Update(ctx context.Context, id string, upd MealPlanUpdate) (*models.MealPlan, error)
	// MarkConsumed flips consumed from false to true in a single conditional
	// update and reports whether this call performed the flip. A false result
	// with a nil error means another writer got there first.
	MarkConsumed(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

const mealPlansCollection = "meal_plans"

// MealPlanRepo implements MealPlanRepository on MongoDB.
type MealPlanRepo struct {
	coll *mongo.Collection
}

// NewMealPlanRepo builds the meal plan repository.
func NewMealPlanRepo(client *Client) *MealPlanRepo {
	return &MealPlanRepo{coll: client.Database().Collection(mealPlansCollection)}
}

func (r *MealPlanRepo) Insert(ctx context.Context, plan *models.MealPlan) (*models.MealPlan, error) {
	res, err := r.coll.InsertOne(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to insert meal plan: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		plan.ID = oid
	}
	return plan, nil
}

func (r *MealPlanRepo) FindByID(ctx context.Context, id string) (*models.MealPlan, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var plan models.MealPlan
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&plan)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("meal plan %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find meal plan: %w", err)
	}
	return &plan, nil
}

func (r *MealPlanRepo) FindByOwnerAndDate(ctx context.Context, owner, date string) ([]models.MealPlan, error) {
	return r.find(ctx, bson.M{"user_id": owner, "date": date})
}

func (r *MealPlanRepo) FindByOwner(ctx context.Context, owner string) ([]models.MealPlan, error) {
	return r.find(ctx, bson.M{"user_id": owner})
}

func (r *MealPlanRepo) find(ctx context.Context, filter bson.M) ([]models.MealPlan, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query meal plans: %w", err)
	}

	plans := make([]models.MealPlan, 0)
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, fmt.Errorf("failed to decode meal plans: %w", err)
	}
	return plans, nil
}

func (r *MealPlanRepo) Update(ctx context.Context, id string, upd MealPlanUpdate) (*models.MealPlan, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"date":           upd.Date,
		"meal_type":      upd.MealType,
		"recipe_name":    upd.RecipeName,
		"serving_size":   upd.ServingSize,
		"total_calories": upd.TotalCalories,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var plan models.MealPlan
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&plan)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("meal plan %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update meal plan: %w", err)
	}
	return &plan, nil
}

func (r *MealPlanRepo) MarkConsumed(ctx context.Context, id string) (bool, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return false, err
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "consumed": false},
		bson.M{"$set": bson.M{"consumed": true}})
	if err != nil {
		return false, fmt.Errorf("failed to mark meal plan consumed: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *MealPlanRepo) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete meal plan: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFoundf("meal plan %s", id)
	}
	return nil
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.Invalidf("malformed id %q", id)
	}
	return oid, nil
}

package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nutritrack/nutritrack/internal/domain/apperr"
	"github.com/nutritrack/nutritrack/internal/domain/models"
)

// RecipeRepository defines the catalog lookups the core needs. Full catalog
// CRUD lives with the catalog service outside this slice.
type RecipeRepository interface {
	FindByTitle(ctx context.Context, title string) (*models.Recipe, error)
	Insert(ctx context.Context, recipe *models.Recipe) error
}

const recipesCollection = "recipes"

// RecipeRepo implements RecipeRepository on MongoDB.
type RecipeRepo struct {
	coll *mongo.Collection
}

// NewRecipeRepo builds the recipe repository.
func NewRecipeRepo(client *Client) *RecipeRepo {
	return &RecipeRepo{coll: client.Database().Collection(recipesCollection)}
}

func (r *RecipeRepo) FindByTitle(ctx context.Context, title string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.coll.FindOne(ctx, bson.M{"title": title}).Decode(&recipe)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("recipe %q", title)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find recipe: %w", err)
	}
	return &recipe, nil
}

func (r *RecipeRepo) Insert(ctx context.Context, recipe *models.Recipe) error {
	if _, err := r.coll.InsertOne(ctx, recipe); err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}
	return nil
}

// Package catalog imports recipes from Spoonacular into the local catalog.
// The import runs weekly via the scheduler and on demand via an admin route.
package catalog

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nutritrack/nutritrack/internal/domain/models"
	"github.com/nutritrack/nutritrack/internal/repository/mongodb"
	"github.com/nutritrack/nutritrack/pkg/clients/spoonacular"
)

// Service orchestrates the recipe import.
type Service struct {
	recipes   mongodb.RecipeRepository
	client    spoonacular.Client
	batchSize int
	logger    *zap.Logger
}

// NewService wires a catalog service instance.
func NewService(recipes mongodb.RecipeRepository, client spoonacular.Client, batchSize int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{recipes: recipes, client: client, batchSize: batchSize, logger: logger}
}

// ImportRecipes fetches a batch of random recipes, loads their nutrition
// details and stores them. A recipe that fails to fetch or store is skipped
// so one bad record does not abort the batch. Returns how many were stored.
func (s *Service) ImportRecipes(ctx context.Context) (int, error) {
	results, err := s.client.SearchRecipes(ctx, s.batchSize)
	if err != nil {
		return 0, err
	}

	s.logger.Info("fetched recipe search results", zap.Int("count", len(results)))

	stored := 0
	for _, res := range results {
		info, err := s.client.GetRecipeInformation(ctx, res.ID)
		if err != nil {
			s.logger.Warn("skip recipe, details fetch failed",
				zap.Int("spoonacular_id", res.ID),
				zap.String("title", res.Title),
				zap.Error(err))
			continue
		}

		recipe := mapRecipe(info)
		if err := s.recipes.Insert(ctx, recipe); err != nil {
			s.logger.Warn("skip recipe, store failed",
				zap.String("title", recipe.Title),
				zap.Error(err))
			continue
		}
		stored++
	}

	s.logger.Info("recipe import finished",
		zap.Int("fetched", len(results)),
		zap.Int("stored", stored))

	return stored, nil
}

func mapRecipe(info *spoonacular.RecipeInformation) *models.Recipe {
	ingredients := make([]string, 0, len(info.ExtendedIngredients))
	for _, ing := range info.ExtendedIngredients {
		ingredients = append(ingredients, ing.Name)
	}

	return &models.Recipe{
		Title:       info.Title,
		Ingredients: ingredients,
		Calories:    info.Calories(),
		Servings:    info.Servings,
		Category:    strings.Join(info.DishTypes, ", "),
		Dietary:     strings.Join(info.Diets, ", "),
		Photo:       info.Image,
		CreatedAt:   time.Now().UTC(),
	}
}

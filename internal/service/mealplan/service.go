// Package mealplan implements the planned-meal store: create with a calorie
// snapshot resolved from the recipe catalog, reads, edits, and deletion with
// reversal of any calories already folded into the day's stats.
package mealplan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nutritrack/nutritrack/internal/domain/apperr"
	"github.com/nutritrack/nutritrack/internal/domain/models"
	"github.com/nutritrack/nutritrack/internal/repository/mongodb"
)

// CreateInput carries the fields of a new meal plan entry.
type CreateInput struct {
	Date        string
	MealType    string
	RecipeName  string
	ServingSize int
}

// UpdateInput carries the replaceable fields of an existing entry.
type UpdateInput struct {
	Date        string
	MealType    string
	RecipeName  string
	ServingSize int
}

// Service is the meal plan store.
type Service struct {
	plans   mongodb.MealPlanRepository
	recipes mongodb.RecipeRepository
	stats   mongodb.StatsRepository
	logger  *zap.Logger
}

// NewService wires a meal plan service instance.
func NewService(plans mongodb.MealPlanRepository, recipes mongodb.RecipeRepository, stats mongodb.StatsRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{plans: plans, recipes: recipes, stats: stats, logger: logger}
}

// Create resolves the recipe by title, snapshots total calories as
// calories-per-serving x serving size and persists the entry unconsumed.
func (s *Service) Create(ctx context.Context, owner string, in CreateInput) (*models.MealPlan, error) {
	slot, err := validateEntryFields(in.Date, in.MealType, in.RecipeName, in.ServingSize)
	if err != nil {
		return nil, err
	}

	recipe, err := s.recipes.FindByTitle(ctx, in.RecipeName)
	if err != nil {
		return nil, err
	}

	plan := &models.MealPlan{
		UserID:        owner,
		Date:          in.Date,
		MealType:      slot,
		RecipeName:    recipe.Title,
		ServingSize:   in.ServingSize,
		TotalCalories: recipe.Calories * float64(in.ServingSize),
		Consumed:      false,
		CreatedAt:     time.Now().UTC(),
	}

	created, err := s.plans.Insert(ctx, plan)
	if err != nil {
		return nil, err
	}

	s.logger.Info("meal plan created",
		zap.String("owner", owner),
		zap.String("date", created.Date),
		zap.String("slot", string(created.MealType)),
		zap.Float64("total_calories", created.TotalCalories))

	return created, nil
}

// GetByDate returns all entries for (owner, date) in store order; the
// calendar client groups them by slot.
func (s *Service) GetByDate(ctx context.Context, owner, date string) ([]models.MealPlan, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, apperr.Invalidf("malformed date %q", date)
	}
	return s.plans.FindByOwnerAndDate(ctx, owner, date)
}

// GetByID returns one owned entry.
func (s *Service) GetByID(ctx context.Context, owner, id string) (*models.MealPlan, error) {
	return s.findOwned(ctx, owner, id)
}

// List returns every entry belonging to the owner.
func (s *Service) List(ctx context.Context, owner string) ([]models.MealPlan, error) {
	return s.plans.FindByOwner(ctx, owner)
}

// Update replaces date, slot, recipe and serving size. While the entry is
// unconsumed the calorie snapshot is recomputed from the (possibly new)
// recipe; once consumed the snapshot is frozen so that deletion can reverse
// exactly what was added to the day's stats.
func (s *Service) Update(ctx context.Context, owner, id string, in UpdateInput) (*models.MealPlan, error) {
	slot, err := validateEntryFields(in.Date, in.MealType, in.RecipeName, in.ServingSize)
	if err != nil {
		return nil, err
	}

	existing, err := s.findOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	totalCalories := existing.TotalCalories
	if !existing.Consumed {
		recipe, err := s.recipes.FindByTitle(ctx, in.RecipeName)
		if err != nil {
			return nil, err
		}
		totalCalories = recipe.Calories * float64(in.ServingSize)
	}

	return s.plans.Update(ctx, id, mongodb.MealPlanUpdate{
		Date:          in.Date,
		MealType:      slot,
		RecipeName:    in.RecipeName,
		ServingSize:   in.ServingSize,
		TotalCalories: totalCalories,
	})
}

// Delete removes the entry. If it was already consumed its calorie snapshot
// is subtracted from that date's stats first, clamped at zero, so deletion
// never leaves phantom calories behind.
func (s *Service) Delete(ctx context.Context, owner, id string) error {
	existing, err := s.findOwned(ctx, owner, id)
	if err != nil {
		return err
	}

	if existing.Consumed {
		if _, err := s.stats.Add(ctx, owner, existing.Date, -existing.TotalCalories, 0); err != nil {
			return fmt.Errorf("failed to reverse consumed calories: %w", err)
		}
		s.logger.Info("reversed consumed calories on delete",
			zap.String("owner", owner),
			zap.String("date", existing.Date),
			zap.Float64("calories", existing.TotalCalories))
	}

	return s.plans.Delete(ctx, id)
}

func (s *Service) findOwned(ctx context.Context, owner, id string) (*models.MealPlan, error) {
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Do not reveal other users' entries.
	if plan.UserID != owner {
		return nil, apperr.NotFoundf("meal plan %s", id)
	}
	return plan, nil
}

func validateEntryFields(date, mealType, recipeName string, servingSize int) (models.MealSlot, error) {
	if recipeName == "" {
		return "", apperr.Invalidf("recipe name is required")
	}
	if date == "" {
		return "", apperr.Invalidf("date is required")
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return "", apperr.Invalidf("malformed date %q", date)
	}
	if servingSize < 1 {
		return "", apperr.Invalidf("serving size must be a positive integer")
	}

	slot := models.MealSlot(strings.ToLower(mealType))
	if !slot.Valid() {
		return "", apperr.Invalidf("invalid meal type %q", mealType)
	}
	return slot, nil
}

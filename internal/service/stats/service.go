// Package stats implements the per-(owner, date) aggregation: get-or-create,
// manual overrides, water logging, historical range queries and consumption
// logging against the meal plan store.
package stats

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nutritrack/nutritrack/internal/domain/apperr"
	"github.com/nutritrack/nutritrack/internal/domain/models"
	"github.com/nutritrack/nutritrack/internal/repository/mongodb"
)

// UpdateInput carries the optional fields of an absolute stats correction.
type UpdateInput struct {
	TotalCalories *float64
	WaterIntake   *float64
}

// Service is the daily stats aggregator and consumption logger.
type Service struct {
	stats  mongodb.StatsRepository
	plans  mongodb.MealPlanRepository
	logger *zap.Logger
}

// NewService wires a stats service instance.
func NewService(stats mongodb.StatsRepository, plans mongodb.MealPlanRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{stats: stats, plans: plans, logger: logger}
}

// Get returns the stats row for (owner, date), creating and persisting a
// zeroed one on first read so later increments always have a stable row.
func (s *Service) Get(ctx context.Context, owner, date string) (*models.DailyStats, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	return s.stats.GetOrCreate(ctx, owner, date)
}

// Update overwrites whichever totals are supplied. This is the manual
// correction path, shared with the meal-driven increments on the same fields,
// so last writer wins across both.
func (s *Service) Update(ctx context.Context, owner, date string, in UpdateInput) (*models.DailyStats, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if in.TotalCalories == nil && in.WaterIntake == nil {
		return nil, apperr.Invalidf("nothing to update: supply totalCalories or waterIntake")
	}
	if in.TotalCalories != nil && *in.TotalCalories < 0 {
		return nil, apperr.Invalidf("totalCalories must not be negative")
	}
	if in.WaterIntake != nil && *in.WaterIntake < 0 {
		return nil, apperr.Invalidf("waterIntake must not be negative")
	}

	return s.stats.Set(ctx, owner, date, mongodb.StatsOverride{
		TotalCalories: in.TotalCalories,
		WaterIntake:   in.WaterIntake,
	})
}

// AddWater adds amount milliliters to the date's water total.
func (s *Service) AddWater(ctx context.Context, owner, date string, amount float64) (*models.DailyStats, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, apperr.Invalidf("water amount must be positive")
	}
	return s.stats.AddWater(ctx, owner, date, amount)
}

// History returns all stats rows with date in [start, end], ascending.
func (s *Service) History(ctx context.Context, owner, start, end string) ([]models.DailyStats, error) {
	if start == "" || end == "" {
		return nil, apperr.Invalidf("startDate and endDate are required")
	}
	if err := validateDate(start); err != nil {
		return nil, err
	}
	if err := validateDate(end); err != nil {
		return nil, err
	}
	if start > end {
		return nil, apperr.Invalidf("startDate %s is after endDate %s", start, end)
	}
	return s.stats.FindRange(ctx, owner, start, end)
}

// LogConsumption marks the meal plan consumed exactly once and folds its
// calories into that date's stats. The flag is flipped with a conditional
// store update, so a concurrent duplicate call loses and gets a conflict.
// If the stats write fails after the flip the day is under-counted; the
// Update correction path exists to repair that, and the alternative ordering
// would over-count instead.
func (s *Service) LogConsumption(ctx context.Context, owner, mealPlanID string, caloriesOverride, water float64) (*models.DailyStats, error) {
	if caloriesOverride < 0 {
		return nil, apperr.Invalidf("caloriesConsumed must not be negative")
	}
	if water < 0 {
		return nil, apperr.Invalidf("waterConsumed must not be negative")
	}

	plan, err := s.plans.FindByID(ctx, mealPlanID)
	if err != nil {
		return nil, err
	}
	if plan.UserID != owner {
		return nil, apperr.NotFoundf("meal plan %s", mealPlanID)
	}
	if plan.Consumed {
		return nil, apperr.Conflictf("meal plan %s already consumed", mealPlanID)
	}

	flipped, err := s.plans.MarkConsumed(ctx, mealPlanID)
	if err != nil {
		return nil, err
	}
	if !flipped {
		// Lost the race against a concurrent log for the same entry.
		return nil, apperr.Conflictf("meal plan %s already consumed", mealPlanID)
	}

	delta := plan.TotalCalories
	if caloriesOverride > 0 {
		delta = caloriesOverride
	}

	updated, err := s.stats.Add(ctx, owner, plan.Date, delta, water)
	if err != nil {
		s.logger.Error("stats increment failed after consumed flag was set; day is under-counted",
			zap.String("owner", owner),
			zap.String("meal_plan_id", mealPlanID),
			zap.String("date", plan.Date),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("consumption logged",
		zap.String("owner", owner),
		zap.String("meal_plan_id", mealPlanID),
		zap.String("date", plan.Date),
		zap.Float64("calories", delta),
		zap.Float64("water", water))

	return updated, nil
}

func validateDate(date string) error {
	if date == "" {
		return apperr.Invalidf("date is required")
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return apperr.Invalidf("malformed date %q, want YYYY-MM-DD", date)
	}
	return nil
}

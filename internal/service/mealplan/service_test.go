package mealplan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nutritrack/nutritrack/internal/domain/apperr"
	"github.com/nutritrack/nutritrack/internal/domain/models"
	"github.com/nutritrack/nutritrack/internal/repository/mongodb"
)

type fakePlanRepo struct {
	plans map[string]*models.MealPlan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[string]*models.MealPlan)}
}

func (f *fakePlanRepo) Insert(_ context.Context, plan *models.MealPlan) (*models.MealPlan, error) {
	if plan.ID.IsZero() {
		plan.ID = primitive.NewObjectID()
	}
	f.plans[plan.ID.Hex()] = plan
	return plan, nil
}

func (f *fakePlanRepo) FindByID(_ context.Context, id string) (*models.MealPlan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, apperr.NotFoundf("meal plan %s", id)
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlanRepo) FindByOwnerAndDate(_ context.Context, owner, date string) ([]models.MealPlan, error) {
	out := make([]models.MealPlan, 0)
	for _, p := range f.plans {
		if p.UserID == owner && p.Date == date {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) FindByOwner(_ context.Context, owner string) ([]models.MealPlan, error) {
	out := make([]models.MealPlan, 0)
	for _, p := range f.plans {
		if p.UserID == owner {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) Update(_ context.Context, id string, upd mongodb.MealPlanUpdate) (*models.MealPlan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, apperr.NotFoundf("meal plan %s", id)
	}
	p.Date = upd.Date
	p.MealType = upd.MealType
	p.RecipeName = upd.RecipeName
	p.ServingSize = upd.ServingSize
	p.TotalCalories = upd.TotalCalories
	cp := *p
	return &cp, nil
}

func (f *fakePlanRepo) MarkConsumed(_ context.Context, id string) (bool, error) {
	p, ok := f.plans[id]
	if !ok || p.Consumed {
		return false, nil
	}
	p.Consumed = true
	return true, nil
}

func (f *fakePlanRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.plans[id]; !ok {
		return apperr.NotFoundf("meal plan %s", id)
	}
	delete(f.plans, id)
	return nil
}

type fakeRecipeRepo struct {
	recipes map[string]*models.Recipe
}

func (f *fakeRecipeRepo) FindByTitle(_ context.Context, title string) (*models.Recipe, error) {
	r, ok := f.recipes[title]
	if !ok {
		return nil, apperr.NotFoundf("recipe %q", title)
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRecipeRepo) Insert(_ context.Context, recipe *models.Recipe) error {
	f.recipes[recipe.Title] = recipe
	return nil
}

type fakeStatsRepo struct {
	rows map[string]*models.DailyStats
}

func (f *fakeStatsRepo) row(owner, date string) *models.DailyStats {
	k := owner + "|" + date
	if r, ok := f.rows[k]; ok {
		return r
	}
	r := &models.DailyStats{UserID: owner, Date: date}
	f.rows[k] = r
	return r
}

func (f *fakeStatsRepo) GetOrCreate(_ context.Context, owner, date string) (*models.DailyStats, error) {
	cp := *f.row(owner, date)
	return &cp, nil
}

func (f *fakeStatsRepo) Set(_ context.Context, owner, date string, over mongodb.StatsOverride) (*models.DailyStats, error) {
	r := f.row(owner, date)
	if over.TotalCalories != nil {
		r.TotalCalories = *over.TotalCalories
	}
	if over.WaterIntake != nil {
		r.WaterIntake = *over.WaterIntake
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStatsRepo) AddWater(ctx context.Context, owner, date string, amount float64) (*models.DailyStats, error) {
	return f.Add(ctx, owner, date, 0, amount)
}

func (f *fakeStatsRepo) Add(_ context.Context, owner, date string, calories, water float64) (*models.DailyStats, error) {
	r := f.row(owner, date)
	r.TotalCalories = max(0, r.TotalCalories+calories)
	r.WaterIntake = max(0, r.WaterIntake+water)
	cp := *r
	return &cp, nil
}

func (f *fakeStatsRepo) FindRange(_ context.Context, owner, start, end string) ([]models.DailyStats, error) {
	out := make([]models.DailyStats, 0)
	for _, r := range f.rows {
		if r.UserID == owner && r.Date >= start && r.Date <= end {
			out = append(out, *r)
		}
	}
	return out, nil
}

func newTestService() (*Service, *fakePlanRepo, *fakeRecipeRepo, *fakeStatsRepo) {
	plans := newFakePlanRepo()
	recipes := &fakeRecipeRepo{recipes: map[string]*models.Recipe{
		"Pasta":  {Title: "Pasta", Calories: 300},
		"Omelet": {Title: "Omelet", Calories: 150},
	}}
	statsRepo := &fakeStatsRepo{rows: make(map[string]*models.DailyStats)}
	return NewService(plans, recipes, statsRepo, nil), plans, recipes, statsRepo
}

func TestCreate_SnapshotsCalories(t *testing.T) {
	svc, _, _, _ := newTestService()

	plan, err := svc.Create(context.Background(), "u1", CreateInput{
		Date:        "2024-05-01",
		MealType:    "lunch",
		RecipeName:  "Pasta",
		ServingSize: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 600.0, plan.TotalCalories)
	assert.False(t, plan.Consumed)
	assert.Equal(t, models.SlotLunch, plan.MealType)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	cases := []CreateInput{
		{Date: "2024-05-01", MealType: "lunch", RecipeName: "", ServingSize: 1},
		{Date: "", MealType: "lunch", RecipeName: "Pasta", ServingSize: 1},
		{Date: "2024-13-40", MealType: "lunch", RecipeName: "Pasta", ServingSize: 1},
		{Date: "2024-05-01", MealType: "brunch", RecipeName: "Pasta", ServingSize: 1},
		{Date: "2024-05-01", MealType: "lunch", RecipeName: "Pasta", ServingSize: 0},
	}

	for _, in := range cases {
		_, err := svc.Create(ctx, "u1", in)
		assert.True(t, errors.Is(err, apperr.ErrValidation), "input %+v", in)
	}
}

func TestCreate_UnknownRecipe(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), "u1", CreateInput{
		Date:        "2024-05-01",
		MealType:    "dinner",
		RecipeName:  "Nothing",
		ServingSize: 1,
	})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestGetByID_HidesOtherOwners(t *testing.T) {
	svc, plans, _, _ := newTestService()

	plan := &models.MealPlan{UserID: "u2", Date: "2024-05-01"}
	_, err := plans.Insert(context.Background(), plan)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), "u1", plan.ID.Hex())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUpdate_RecomputesSnapshotWhileUnconsumed(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	plan, err := svc.Create(ctx, "u1", CreateInput{
		Date: "2024-05-01", MealType: "lunch", RecipeName: "Pasta", ServingSize: 2,
	})
	require.NoError(t, err)
	require.Equal(t, 600.0, plan.TotalCalories)

	updated, err := svc.Update(ctx, "u1", plan.ID.Hex(), UpdateInput{
		Date: "2024-05-01", MealType: "dinner", RecipeName: "Omelet", ServingSize: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 450.0, updated.TotalCalories)
	assert.Equal(t, models.SlotDinner, updated.MealType)
}

func TestUpdate_SnapshotFrozenOnceConsumed(t *testing.T) {
	svc, plans, _, _ := newTestService()
	ctx := context.Background()

	plan, err := svc.Create(ctx, "u1", CreateInput{
		Date: "2024-05-01", MealType: "lunch", RecipeName: "Pasta", ServingSize: 2,
	})
	require.NoError(t, err)

	flipped, err := plans.MarkConsumed(ctx, plan.ID.Hex())
	require.NoError(t, err)
	require.True(t, flipped)

	updated, err := svc.Update(ctx, "u1", plan.ID.Hex(), UpdateInput{
		Date: "2024-05-01", MealType: "lunch", RecipeName: "Omelet", ServingSize: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 600.0, updated.TotalCalories,
		"consumed snapshot stays frozen so deletion reverses exactly what was added")
}

func TestDelete_UnconsumedLeavesStatsAlone(t *testing.T) {
	svc, _, _, statsRepo := newTestService()
	ctx := context.Background()

	plan, err := svc.Create(ctx, "u1", CreateInput{
		Date: "2024-05-01", MealType: "lunch", RecipeName: "Pasta", ServingSize: 2,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "u1", plan.ID.Hex()))
	assert.Empty(t, statsRepo.rows)
}

func TestDelete_ConsumedReversesContribution(t *testing.T) {
	svc, plans, _, statsRepo := newTestService()
	ctx := context.Background()

	plan, err := svc.Create(ctx, "u1", CreateInput{
		Date: "2024-05-01", MealType: "lunch", RecipeName: "Pasta", ServingSize: 2,
	})
	require.NoError(t, err)

	_, err = plans.MarkConsumed(ctx, plan.ID.Hex())
	require.NoError(t, err)
	_, err = statsRepo.Add(ctx, "u1", "2024-05-01", 600, 0)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "u1", plan.ID.Hex()))

	row, err := statsRepo.GetOrCreate(ctx, "u1", "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, 0.0, row.TotalCalories)
}

func TestDelete_ReversalClampsAtZero(t *testing.T) {
	svc, plans, _, statsRepo := newTestService()
	ctx := context.Background()

	plan, err := svc.Create(ctx, "u1", CreateInput{
		Date: "2024-05-01", MealType: "lunch", RecipeName: "Pasta", ServingSize: 2,
	})
	require.NoError(t, err)

	_, err = plans.MarkConsumed(ctx, plan.ID.Hex())
	require.NoError(t, err)
	// A manual correction lowered the day's total below the entry snapshot.
	_, err = statsRepo.Add(ctx, "u1", "2024-05-01", 400, 0)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "u1", plan.ID.Hex()))

	row, err := statsRepo.GetOrCreate(ctx, "u1", "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, 0.0, row.TotalCalories, "floored at zero, never negative")
}

func TestGetByDate_MalformedDate(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.GetByDate(context.Background(), "u1", "not-a-date")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

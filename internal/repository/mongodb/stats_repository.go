package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nutritrack/nutritrack/internal/domain/models"
)

// StatsOverride carries the optional fields of an absolute stats update.
// Nil fields are left untouched.
type StatsOverride struct {
	TotalCalories *float64
	WaterIntake   *float64
}

// StatsRepository defines storage for the per-(owner, date) aggregates.
// Every write upserts so the row materializes on first touch.
type StatsRepository interface {
	// GetOrCreate returns the row for (owner, date), persisting a zeroed one
	// if it does not exist yet.
	GetOrCreate(ctx context.Context, owner, date string) (*models.DailyStats, error)
	// Set overwrites the supplied fields. Used for manual corrections.
	Set(ctx context.Context, owner, date string, over StatsOverride) (*models.DailyStats, error)
	// AddWater adds amount (ml) to the water total.
	AddWater(ctx context.Context, owner, date string, amount float64) (*models.DailyStats, error)
	// Add folds calorie and water deltas into the totals. Negative deltas
	// clamp the result at zero.
	Add(ctx context.Context, owner, date string, calories, water float64) (*models.DailyStats, error)
	// FindRange returns all rows with start <= date <= end, ascending by date.
	FindRange(ctx context.Context, owner, start, end string) ([]models.DailyStats, error)
}

const dailyStatsCollection = "daily_stats"

// StatsRepo implements StatsRepository on MongoDB.
type StatsRepo struct {
	coll *mongo.Collection
}

// NewStatsRepo builds the daily stats repository.
func NewStatsRepo(client *Client) *StatsRepo {
	return &StatsRepo{coll: client.Database().Collection(dailyStatsCollection)}
}

func (r *StatsRepo) GetOrCreate(ctx context.Context, owner, date string) (*models.DailyStats, error) {
	update := bson.M{"$setOnInsert": bson.M{
		"user_id":        owner,
		"date":           date,
		"total_calories": 0.0,
		"water_intake":   0.0,
	}}
	return r.findOneAndUpdate(ctx, owner, date, update)
}

func (r *StatsRepo) Set(ctx context.Context, owner, date string, over StatsOverride) (*models.DailyStats, error) {
	set := bson.M{"user_id": owner, "date": date}
	if over.TotalCalories != nil {
		set["total_calories"] = *over.TotalCalories
	}
	if over.WaterIntake != nil {
		set["water_intake"] = *over.WaterIntake
	}
	return r.findOneAndUpdate(ctx, owner, date, bson.M{"$set": set})
}

func (r *StatsRepo) AddWater(ctx context.Context, owner, date string, amount float64) (*models.DailyStats, error) {
	return r.Add(ctx, owner, date, 0, amount)
}

func (r *StatsRepo) Add(ctx context.Context, owner, date string, calories, water float64) (*models.DailyStats, error) {
	// Aggregation pipeline update so increment and zero-clamp are one atomic
	// document write, never a read-modify-write round trip.
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"user_id":        owner,
			"date":           date,
			"total_calories": clampedAdd("$total_calories", calories),
			"water_intake":   clampedAdd("$water_intake", water),
		}}},
	}
	return r.findOneAndUpdate(ctx, owner, date, update)
}

func clampedAdd(field string, delta float64) bson.M {
	return bson.M{"$max": bson.A{
		0,
		bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{field, 0}}, delta}},
	}}
}

func (r *StatsRepo) findOneAndUpdate(ctx context.Context, owner, date string, update any) (*models.DailyStats, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stats models.DailyStats
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"user_id": owner, "date": date}, update, opts).Decode(&stats)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert daily stats: %w", err)
	}
	return &stats, nil
}

func (r *StatsRepo) FindRange(ctx context.Context, owner, start, end string) ([]models.DailyStats, error) {
	filter := bson.M{
		"user_id": owner,
		"date":    bson.M{"$gte": start, "$lte": end},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}

	rows := make([]models.DailyStats, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode daily stats: %w", err)
	}
	return rows, nil
}

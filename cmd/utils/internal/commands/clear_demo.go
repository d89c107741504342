package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/carta/services/availability/seeding"
	"go.mongodb.org/mongo-driver/bson"
)

// ClearDemo removes seeded demo schedules from the availability database
func ClearDemo(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	logger.Info("Starting demo data cleanup...")

	client, err := connect(ctx, config)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	logger.Info("Connected to MongoDB")

	db := client.Database(seeding.DatabaseName)

	result, err := db.Collection(seeding.ScheduleCollection).DeleteMany(ctx,
		bson.M{"business_id": seeding.DemoBusinessID})
	if err != nil {
		return fmt.Errorf("delete demo schedules: %w", err)
	}
	logger.Info("Demo schedules removed", "count", result.DeletedCount)

	// Drop the seed tracker entries so seed-demo can run again
	if _, err := db.Collection("_seeds").DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear seed tracker: %w", err)
	}

	return nil
}

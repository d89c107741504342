// Package seeding holds the availability service's seed definitions.
// It lives outside the internal tree so the ops CLI can apply and clear
// the same seeds the service applies on startup.
package seeding

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/seed"
	"github.com/appetiteclub/carta/services/availability/internal/availability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DatabaseName and ScheduleCollection mirror the service's storage
	// constants for CLI commands that connect without the repository.
	DatabaseName       = availability.DatabaseName
	ScheduleCollection = availability.ScheduleCollection
)

// DemoBusinessID identifies the seeded demo business shared across the
// service family's demo environments.
const DemoBusinessID = "550e8400-e29b-41d4-a716-446655440100"

// Seeds returns all seeds for the Availability service
func Seeds(db *mongo.Database) []seed.Seed {
	return []seed.Seed{
		{
			ID:          "2026-08-30_availability_demo_schedules",
			Description: "Seed demo menu schedules covering general, time-restricted, and seasonal cases",
			Run: func(ctx context.Context) error {
				return seedDemoSchedules(ctx, db)
			},
		},
	}
}

// seedDemoSchedules inserts one schedule of every flavor the resolver
// distinguishes: an always-on general menu, a breakfast window, an
// overnight bar window, and an active-dates holiday menu.
func seedDemoSchedules(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection(ScheduleCollection)
	now := time.Now()

	type demoSchedule struct {
		id            string
		name          string
		slug          string
		location      string
		restricted    bool
		availableFrom string
		availableTo   string
		daysOfWeek    []int
		activeDates   []string
		priority      int
		displayOrder  int
	}

	demos := []demoSchedule{
		{
			id:           "550e8400-e29b-41d4-a716-446655440101",
			name:         "All Day Menu",
			slug:         "all-day",
			location:     availability.LocationGeneral,
			displayOrder: 0,
		},
		{
			id:            "550e8400-e29b-41d4-a716-446655440102",
			name:          "Breakfast",
			slug:          "breakfast",
			location:      "breakfast",
			restricted:    true,
			availableFrom: "06:00",
			availableTo:   "11:00",
			priority:      5,
			displayOrder:  1,
		},
		{
			id:            "550e8400-e29b-41d4-a716-446655440103",
			name:          "Night Bar",
			slug:          "night-bar",
			location:      "bar",
			restricted:    true,
			availableFrom: "22:00",
			availableTo:   "02:00",
			daysOfWeek:    []int{4, 5, 6},
			priority:      3,
			displayOrder:  2,
		},
		{
			id:           "550e8400-e29b-41d4-a716-446655440104",
			name:         "Christmas Specials",
			slug:         "christmas-specials",
			location:     availability.LocationGeneral,
			activeDates:  []string{"2026-12-24", "2026-12-25", "2026-12-26"},
			priority:     10,
			displayOrder: 3,
		},
	}

	for _, d := range demos {
		days := d.daysOfWeek
		if len(days) == 0 {
			days = []int{0, 1, 2, 3, 4, 5, 6}
		}
		_, err := collection.UpdateOne(ctx,
			bson.M{"_id": d.id},
			bson.M{"$setOnInsert": bson.M{
				"_id":                d.id,
				"business_id":        DemoBusinessID,
				"name":               d.name,
				"slug":               d.slug,
				"location":           d.location,
				"is_time_restricted": d.restricted,
				"available_from":     d.availableFrom,
				"available_to":       d.availableTo,
				"days_of_week":       days,
				"start_date":         "",
				"end_date":           "",
				"active_dates":       d.activeDates,
				"priority":           d.priority,
				"display_order":      d.displayOrder,
				"active":             true,
				"schema_version":     availability.CurrentScheduleSchemaVersion,
				"created_at":         now,
				"created_by":         "seed",
				"updated_at":         now,
				"updated_by":         "seed",
			}},
			options.Update().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("seed schedule %s: %w", d.slug, err)
		}
	}

	return nil
}

// SeedingFunc returns a function for running seeds during service startup
func SeedingFunc(appName string, dbFn func() *mongo.Database, logger apt.Logger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		logger.Info("Applying availability service database seeds...")
		db := dbFn()
		tracker := seed.NewMongoTracker(db)
		seeds := Seeds(db)
		if err := seed.Apply(ctx, tracker, seeds, appName); err != nil {
			return fmt.Errorf("apply seeds: %w", err)
		}
		logger.Info("Availability service database seeds applied successfully")
		return nil
	}
}

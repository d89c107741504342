package commands

import (
	"context"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/carta/services/availability/seeding"
	"go.mongodb.org/mongo-driver/bson"
)

var allDatabases = []string{
	seeding.DatabaseName,
}

// ResetDB drops all Carta databases - USE WITH CAUTION
func ResetDB(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	logger.Info("DANGER: this will drop ALL Carta databases, this action cannot be undone")

	client, err := connect(ctx, config)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	logger.Info("Connected to MongoDB")

	for _, dbName := range allDatabases {
		logger.Info("Dropping database", "database", dbName)
		db := client.Database(dbName)
		result := db.RunCommand(ctx, bson.D{{Key: "dropDatabase", Value: 1}})
		if result.Err() != nil {
			logger.Infof("Failed to drop database %s (may not exist): %v", dbName, result.Err())
		} else {
			logger.Info("Database dropped", "database", dbName)
		}
	}

	logger.Info("All databases have been dropped")
	return nil
}

package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/carta/services/availability/internal/availability"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ScheduleRepo implements the availability.ScheduleRepo interface using MongoDB
type ScheduleRepo struct {
	client     *mongo.Client
	db         *mongo.Database
	collection *mongo.Collection
	logger     apt.Logger
	config     *apt.Config
}

// NewScheduleRepo creates a new MongoDB schedule repository
func NewScheduleRepo(config *apt.Config, logger apt.Logger) *ScheduleRepo {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &ScheduleRepo{
		logger: logger,
		config: config,
	}
}

// Start initializes the MongoDB connection
func (r *ScheduleRepo) Start(ctx context.Context) error {
	mongoURL, _ := r.config.GetString("db.mongo.url")
	if mongoURL == "" {
		mongoURL = "mongodb://localhost:27017"
	}

	dbName, _ := r.config.GetString("db.mongo.name")
	if dbName == "" {
		dbName = availability.DatabaseName
	}

	clientOptions := options.Client().ApplyURI(mongoURL).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("cannot connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("cannot ping MongoDB: %w", err)
	}

	r.client = client
	r.db = client.Database(dbName)
	r.collection = r.db.Collection(availability.ScheduleCollection)

	// Unique slug per business
	slugIndexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "business_id", Value: 1}, {Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, slugIndexModel); err != nil {
		return fmt.Errorf("cannot create business_id/slug index: %w", err)
	}

	activeIndexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "business_id", Value: 1}, {Key: "active", Value: 1}},
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, activeIndexModel); err != nil {
		return fmt.Errorf("cannot create business_id/active index: %w", err)
	}

	r.logger.Infof("Connected to MongoDB: %s, database: %s, collection: %s", mongoURL, dbName, availability.ScheduleCollection)
	return nil
}

// Stop closes the MongoDB connection
func (r *ScheduleRepo) Stop(ctx context.Context) error {
	if r.client != nil {
		if err := r.client.Disconnect(ctx); err != nil {
			return fmt.Errorf("cannot disconnect from MongoDB: %w", err)
		}
		r.logger.Info("Disconnected from MongoDB")
	}
	return nil
}

// GetDatabase exposes the underlying database for seeding hooks
func (r *ScheduleRepo) GetDatabase() *mongo.Database {
	return r.db
}

// Create inserts a new schedule
func (r *ScheduleRepo) Create(ctx context.Context, schedule *availability.MenuSchedule) error {
	if schedule == nil {
		return fmt.Errorf("schedule cannot be nil")
	}

	schedule.EnsureID()
	schedule.BeforeCreate()

	_, err := r.collection.InsertOne(ctx, schedule)
	if err != nil {
		return fmt.Errorf("could not create schedule: %w", err)
	}
	return nil
}

// Get retrieves a schedule by ID
func (r *ScheduleRepo) Get(ctx context.Context, id uuid.UUID) (*availability.MenuSchedule, error) {
	var s availability.MenuSchedule

	filter := bson.M{"_id": id.String()}
	err := r.collection.FindOne(ctx, filter).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("schedule with ID %s not found", id.String())
		}
		return nil, fmt.Errorf("could not get schedule: %w", err)
	}

	s.Normalize()
	return &s, nil
}

// ListByBusiness retrieves all schedules for a business
func (r *ScheduleRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*availability.MenuSchedule, error) {
	filter := bson.M{"business_id": businessID.String()}
	return r.list(ctx, filter)
}

// ListActiveByBusiness retrieves the active schedule snapshot the
// resolver evaluates against
func (r *ScheduleRepo) ListActiveByBusiness(ctx context.Context, businessID uuid.UUID) ([]*availability.MenuSchedule, error) {
	filter := bson.M{"business_id": businessID.String(), "active": true}
	return r.list(ctx, filter)
}

func (r *ScheduleRepo) list(ctx context.Context, filter bson.M) ([]*availability.MenuSchedule, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("could not list schedules: %w", err)
	}
	defer cursor.Close(ctx)

	var schedules []*availability.MenuSchedule
	for cursor.Next(ctx) {
		var s availability.MenuSchedule
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("could not decode schedule: %w", err)
		}
		s.Normalize()
		schedules = append(schedules, &s)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return schedules, nil
}

// Save updates an existing schedule
func (r *ScheduleRepo) Save(ctx context.Context, schedule *availability.MenuSchedule) error {
	if schedule == nil {
		return fmt.Errorf("schedule cannot be nil")
	}

	schedule.BeforeUpdate()

	filter := bson.M{"_id": schedule.GetID().String()}
	opts := options.Replace().SetUpsert(false)

	result, err := r.collection.ReplaceOne(ctx, filter, schedule, opts)
	if err != nil {
		return fmt.Errorf("could not save schedule: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("schedule with ID %s not found for update", schedule.GetID().String())
	}
	return nil
}

// Delete removes a schedule by ID
func (r *ScheduleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	filter := bson.M{"_id": id.String()}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("could not delete schedule: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("schedule with ID %s not found for deletion", id.String())
	}
	return nil
}

// ActiveSchedules implements availability.ScheduleSource for cache-less
// deployments
func (r *ScheduleRepo) ActiveSchedules(ctx context.Context, businessID uuid.UUID) ([]*availability.MenuSchedule, error) {
	return r.ListActiveByBusiness(ctx, businessID)
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"mergington-project/activities-service/models"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	databaseName    = "mergington_school"
	collectionName  = "activities"
	defaultMongoURL = "mongodb://localhost:27017"
	connectTimeout  = 5 * time.Second
)

var (
	ErrNotConnected      = errors.New("not connected to the activities database")
	ErrNotFound          = errors.New("activity not found")
	ErrDuplicateActivity = errors.New("activity with the same name already exists")
)

// ActivityRepo owns the MongoDB connection and the activities collection.
// It is the only component that talks to the store; everything above it works
// with the typed errors declared here instead of driver errors.
type ActivityRepo struct {
	mongoURL   string
	client     *mongo.Client
	activities *mongo.Collection
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
}

// NewActivityRepo resolves the connection string (explicit argument, then the
// MONGO_URL environment variable, then the local default) but does not
// connect yet.
func NewActivityRepo(mongoURL string, logger *logrus.Logger) *ActivityRepo {
	if mongoURL == "" {
		mongoURL = os.Getenv("MONGO_URL")
	}
	if mongoURL == "" {
		mongoURL = defaultMongoURL
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ActivitiesStoreCB",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		// Not-found and duplicate-key are domain outcomes, not store health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, mongo.ErrNoDocuments) || mongo.IsDuplicateKeyError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Infof("Circuit breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	return &ActivityRepo{
		mongoURL: mongoURL,
		breaker:  breaker,
		logger:   logger,
	}
}

// Connect establishes the client, verifies it with a ping and ensures the
// unique index on the activity name. On any failure the repo stays
// disconnected and the error is returned instead of propagating further.
func (r *ActivityRepo) Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(r.mongoURL).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		r.logger.Errorf("Database connection for MongoDB failed: %v", err)
		return err
	}

	if err := client.Ping(ctx, nil); err != nil {
		r.logger.Errorf("MongoDB connection ping error: %v", err)
		client.Disconnect(ctx)
		return err
	}

	collection := client.Database(databaseName).Collection(collectionName)
	if err := createActivityNameIndex(ctx, collection); err != nil {
		r.logger.Errorf("Failed to create unique index on activity name: %v", err)
		client.Disconnect(ctx)
		return err
	}

	r.client = client
	r.activities = collection
	r.logger.Infof("Successfully connected to MongoDB at %s", r.mongoURL)
	return nil
}

// Close releases the connection. Safe to call when never connected.
func (r *ActivityRepo) Close(ctx context.Context) {
	if r.client == nil {
		return
	}
	if err := r.client.Disconnect(ctx); err != nil {
		r.logger.Errorf("Error disconnecting from MongoDB: %v", err)
	}
	r.client = nil
	r.activities = nil
	r.logger.Info("MongoDB connection closed.")
}

func (r *ActivityRepo) connected() bool {
	return r.activities != nil
}

// createActivityNameIndex is idempotent: creating an index that already
// exists with the same options is a no-op on the server.
func createActivityNameIndex(ctx context.Context, collection *mongo.Collection) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"name": 1},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("failed to create unique index on activity name: %v", err)
	}
	return nil
}

// GetAllActivities returns every activity keyed by name, with the name and
// the storage _id stripped from the values. Returns an empty map when
// disconnected or when the store read fails; the error carries the cause.
func (r *ActivityRepo) GetAllActivities(ctx context.Context) (map[string]models.ActivityDetails, error) {
	activities := make(map[string]models.ActivityDetails)
	if !r.connected() {
		return activities, nil
	}

	result, err := r.breaker.Execute(func() (interface{}, error) {
		cursor, err := r.activities.Find(ctx, bson.M{})
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		var docs []models.Activity
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, err
		}
		return docs, nil
	})
	if err != nil {
		r.logger.Errorf("Failed to fetch activities: %v", err)
		return activities, err
	}

	for _, doc := range result.([]models.Activity) {
		activities[doc.Name] = doc.Details()
	}
	return activities, nil
}

// GetActivity returns the attributes of the activity with exactly the given
// name, ErrNotFound if no document matches.
func (r *ActivityRepo) GetActivity(ctx context.Context, name string) (*models.ActivityDetails, error) {
	if !r.connected() {
		return nil, ErrNotConnected
	}

	result, err := r.breaker.Execute(func() (interface{}, error) {
		var doc models.Activity
		err := r.activities.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
		if err != nil {
			return nil, err
		}
		return &doc, nil
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		r.logger.Errorf("Failed to fetch activity %s: %v", name, err)
		return nil, err
	}

	details := result.(*models.Activity).Details()
	return &details, nil
}

// CreateActivity inserts a new document combining the name and attributes.
// A name collision surfaces as ErrDuplicateActivity and leaves existing data
// untouched.
func (r *ActivityRepo) CreateActivity(ctx context.Context, name string, details models.ActivityDetails) error {
	if !r.connected() {
		return ErrNotConnected
	}

	doc := models.Activity{
		Name:            name,
		Description:     details.Description,
		Schedule:        details.Schedule,
		MaxParticipants: details.MaxParticipants,
		Participants:    details.Participants,
	}
	if doc.Participants == nil {
		doc.Participants = []string{}
	}

	_, err := r.breaker.Execute(func() (interface{}, error) {
		return r.activities.InsertOne(ctx, doc)
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateActivity
		}
		r.logger.Errorf("Error creating activity %s: %v", name, err)
		return err
	}
	return nil
}

// AddParticipant adds the email to the roster via $addToSet, so a concurrent
// duplicate signup can never produce two entries. Returns false with a nil
// error when the email was already present.
func (r *ActivityRepo) AddParticipant(ctx context.Context, name, email string) (bool, error) {
	if !r.connected() {
		return false, ErrNotConnected
	}

	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.activities.UpdateOne(ctx,
			bson.M{"name": name},
			bson.M{"$addToSet": bson.M{"participants": email}},
		)
	})
	if err != nil {
		r.logger.Errorf("Error adding participant %s to %s: %v", email, name, err)
		return false, err
	}

	updateResult := result.(*mongo.UpdateResult)
	if updateResult.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return updateResult.ModifiedCount > 0, nil
}

// RemoveParticipant pulls the email from the roster. Reports no modification
// when the email was absent or no activity matched.
func (r *ActivityRepo) RemoveParticipant(ctx context.Context, name, email string) (bool, error) {
	if !r.connected() {
		return false, ErrNotConnected
	}

	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.activities.UpdateOne(ctx,
			bson.M{"name": name},
			bson.M{"$pull": bson.M{"participants": email}},
		)
	})
	if err != nil {
		r.logger.Errorf("Error removing participant %s from %s: %v", email, name, err)
		return false, err
	}

	return result.(*mongo.UpdateResult).ModifiedCount > 0, nil
}

// DeleteActivity removes the matched document and reports whether one was
// actually removed.
func (r *ActivityRepo) DeleteActivity(ctx context.Context, name string) (bool, error) {
	if !r.connected() {
		return false, ErrNotConnected
	}

	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.activities.DeleteOne(ctx, bson.M{"name": name})
	})
	if err != nil {
		r.logger.Errorf("Error deleting activity %s: %v", name, err)
		return false, err
	}

	return result.(*mongo.DeleteResult).DeletedCount > 0, nil
}

// UpdateActivity merges the given fields into the matched document and
// reports whether anything actually changed.
func (r *ActivityRepo) UpdateActivity(ctx context.Context, name string, updates bson.M) (bool, error) {
	if !r.connected() {
		return false, ErrNotConnected
	}

	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.activities.UpdateOne(ctx,
			bson.M{"name": name},
			bson.M{"$set": updates},
		)
	})
	if err != nil {
		r.logger.Errorf("Error updating activity %s: %v", name, err)
		return false, err
	}

	updateResult := result.(*mongo.UpdateResult)
	if updateResult.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return updateResult.ModifiedCount > 0, nil
}

// DeleteAllActivities clears the collection. Used by the migration tool.
func (r *ActivityRepo) DeleteAllActivities(ctx context.Context) (int64, error) {
	if !r.connected() {
		return 0, ErrNotConnected
	}

	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.activities.DeleteMany(ctx, bson.M{})
	})
	if err != nil {
		r.logger.Errorf("Error clearing activities: %v", err)
		return 0, err
	}

	return result.(*mongo.DeleteResult).DeletedCount, nil
}

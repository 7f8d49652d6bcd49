package repositories

import (
	"context"
	"io"
	"testing"

	"mergington-project/activities-service/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestNewActivityRepoResolvesURL(t *testing.T) {
	logger := testLogger()

	t.Run("explicit argument wins", func(t *testing.T) {
		t.Setenv("MONGO_URL", "mongodb://from-env:27017")
		repo := NewActivityRepo("mongodb://explicit:27017", logger)
		assert.Equal(t, "mongodb://explicit:27017", repo.mongoURL)
	})

	t.Run("falls back to environment", func(t *testing.T) {
		t.Setenv("MONGO_URL", "mongodb://from-env:27017")
		repo := NewActivityRepo("", logger)
		assert.Equal(t, "mongodb://from-env:27017", repo.mongoURL)
	})

	t.Run("falls back to local default", func(t *testing.T) {
		t.Setenv("MONGO_URL", "")
		repo := NewActivityRepo("", logger)
		assert.Equal(t, defaultMongoURL, repo.mongoURL)
	})
}

func TestDisconnectedReadsDegrade(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepo(defaultMongoURL, testLogger())

	activities, err := repo.GetAllActivities(ctx)
	require.NoError(t, err)
	assert.NotNil(t, activities)
	assert.Empty(t, activities)

	activity, err := repo.GetActivity(ctx, "Chess Club")
	assert.Nil(t, activity)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestDisconnectedWritesFail(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepo(defaultMongoURL, testLogger())

	err := repo.CreateActivity(ctx, "Chess Club", models.ActivityDetails{MaxParticipants: 12})
	assert.ErrorIs(t, err, ErrNotConnected)

	modified, err := repo.AddParticipant(ctx, "Chess Club", "x@y.edu")
	assert.False(t, modified)
	assert.ErrorIs(t, err, ErrNotConnected)

	modified, err = repo.RemoveParticipant(ctx, "Chess Club", "x@y.edu")
	assert.False(t, modified)
	assert.ErrorIs(t, err, ErrNotConnected)

	deleted, err := repo.DeleteActivity(ctx, "Chess Club")
	assert.False(t, deleted)
	assert.ErrorIs(t, err, ErrNotConnected)

	modified, err = repo.UpdateActivity(ctx, "Chess Club", bson.M{"schedule": "Mondays"})
	assert.False(t, modified)
	assert.ErrorIs(t, err, ErrNotConnected)

	removed, err := repo.DeleteAllActivities(ctx)
	assert.Zero(t, removed)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestCloseWithoutConnectIsNoOp(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepo(defaultMongoURL, testLogger())

	repo.Close(ctx)
	repo.Close(ctx)

	activities, err := repo.GetAllActivities(ctx)
	require.NoError(t, err)
	assert.Empty(t, activities)
}

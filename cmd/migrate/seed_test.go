package main

import (
	"context"
	"errors"
	"testing"

	"mergington-project/activities-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	created map[string]models.ActivityDetails
	cleared bool
	failFor string
}

func (s *recordingStore) DeleteAllActivities(ctx context.Context) (int64, error) {
	s.cleared = true
	return int64(len(s.created)), nil
}

func (s *recordingStore) CreateActivity(ctx context.Context, name string, details models.ActivityDetails) error {
	if name == s.failFor {
		return errors.New("duplicate key error")
	}
	s.created[name] = details
	return nil
}

func TestSeedDatasetShape(t *testing.T) {
	require.Len(t, initialActivities, 9)

	for name, details := range initialActivities {
		assert.NotEmpty(t, name)
		assert.NotEmpty(t, details.Description, name)
		assert.NotEmpty(t, details.Schedule, name)
		assert.Positive(t, details.MaxParticipants, name)
		assert.Len(t, details.Participants, 2, name)

		seen := map[string]bool{}
		for _, email := range details.Participants {
			assert.False(t, seen[email], "duplicate roster entry in %s", name)
			seen[email] = true
		}
	}

	chess, ok := initialActivities["Chess Club"]
	require.True(t, ok)
	assert.Contains(t, chess.Participants, "michael@mergington.edu")
}

func TestLoadActivitiesLoadsAll(t *testing.T) {
	store := &recordingStore{created: map[string]models.ActivityDetails{}}

	loaded, total := loadActivities(context.Background(), store)

	assert.True(t, store.cleared)
	assert.Equal(t, 9, total)
	assert.Equal(t, 9, loaded)
	assert.Len(t, store.created, 9)
}

func TestLoadActivitiesReportsPartialFailure(t *testing.T) {
	store := &recordingStore{created: map[string]models.ActivityDetails{}, failFor: "Chess Club"}

	loaded, total := loadActivities(context.Background(), store)

	assert.Equal(t, 9, total)
	assert.Equal(t, 8, loaded)
	assert.NotContains(t, store.created, "Chess Club")
}

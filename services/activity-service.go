package services

import (
	"context"
	"errors"

	"mergington-project/activities-service/models"
	"mergington-project/activities-service/repositories"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrAlreadySignedUp  = errors.New("student is already signed up")
	ErrNotSignedUp      = errors.New("student is not signed up for this activity")
	ErrActivityExists   = errors.New("activity with the same name already exists")
)

// ActivityStore is the slice of the repository the service depends on.
type ActivityStore interface {
	GetAllActivities(ctx context.Context) (map[string]models.ActivityDetails, error)
	GetActivity(ctx context.Context, name string) (*models.ActivityDetails, error)
	CreateActivity(ctx context.Context, name string, details models.ActivityDetails) error
	AddParticipant(ctx context.Context, name, email string) (bool, error)
	RemoveParticipant(ctx context.Context, name, email string) (bool, error)
	DeleteActivity(ctx context.Context, name string) (bool, error)
	UpdateActivity(ctx context.Context, name string, updates bson.M) (bool, error)
}

type ActivityService struct {
	store  ActivityStore
	logger *logrus.Logger
}

// NewActivityService initializes a new ActivityService backed by the given store.
func NewActivityService(store ActivityStore, logger *logrus.Logger) *ActivityService {
	return &ActivityService{
		store:  store,
		logger: logger,
	}
}

// GetAllActivities returns the full activity mapping. A store failure
// degrades to an empty mapping; the cause is logged.
func (s *ActivityService) GetAllActivities(ctx context.Context) map[string]models.ActivityDetails {
	activities, err := s.store.GetAllActivities(ctx)
	if err != nil {
		s.logger.Errorf("Failed to fetch activities: %v", err)
	}
	return activities
}

// GetActivity looks up a single activity by exact name.
func (s *ActivityService) GetActivity(ctx context.Context, name string) (*models.ActivityDetails, error) {
	activity, err := s.store.GetActivity(ctx, name)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.logger.Errorf("Failed to fetch activity %s: %v", name, err)
		}
		return nil, ErrActivityNotFound
	}
	return activity, nil
}

// SignupForActivity enrolls the student. The existence and duplicate checks
// run before the mutation, so a failed AddParticipant afterwards means the
// store itself broke, not the request.
func (s *ActivityService) SignupForActivity(ctx context.Context, name, email string) error {
	activity, err := s.GetActivity(ctx, name)
	if err != nil {
		return err
	}

	if activity.HasParticipant(email) {
		return ErrAlreadySignedUp
	}

	if _, err := s.store.AddParticipant(ctx, name, email); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrActivityNotFound
		}
		s.logger.Errorf("Failed to sign up %s for %s: %v", email, name, err)
		return err
	}

	s.logger.Infof("Signed up %s for %s", email, name)
	return nil
}

// UnregisterFromActivity removes the student from the roster.
func (s *ActivityService) UnregisterFromActivity(ctx context.Context, name, email string) error {
	activity, err := s.GetActivity(ctx, name)
	if err != nil {
		return err
	}

	if !activity.HasParticipant(email) {
		return ErrNotSignedUp
	}

	if _, err := s.store.RemoveParticipant(ctx, name, email); err != nil {
		s.logger.Errorf("Failed to unregister %s from %s: %v", email, name, err)
		return err
	}

	s.logger.Infof("Unregistered %s from %s", email, name)
	return nil
}

// CreateActivity inserts a new activity.
func (s *ActivityService) CreateActivity(ctx context.Context, name string, details models.ActivityDetails) error {
	if details.Participants == nil {
		details.Participants = []string{}
	}

	if err := s.store.CreateActivity(ctx, name, details); err != nil {
		if errors.Is(err, repositories.ErrDuplicateActivity) {
			return ErrActivityExists
		}
		s.logger.Errorf("Failed to create activity %s: %v", name, err)
		return err
	}

	s.logger.Infof("Created activity %s", name)
	return nil
}

// UpdateActivity merges the given fields into the activity.
func (s *ActivityService) UpdateActivity(ctx context.Context, name string, updates bson.M) error {
	if _, err := s.store.UpdateActivity(ctx, name, updates); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrActivityNotFound
		}
		s.logger.Errorf("Failed to update activity %s: %v", name, err)
		return err
	}

	s.logger.Infof("Updated activity %s", name)
	return nil
}

// DeleteActivity removes the activity entirely.
func (s *ActivityService) DeleteActivity(ctx context.Context, name string) error {
	deleted, err := s.store.DeleteActivity(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrActivityNotFound
		}
		s.logger.Errorf("Failed to delete activity %s: %v", name, err)
		return err
	}
	if !deleted {
		return ErrActivityNotFound
	}

	s.logger.Infof("Deleted activity %s", name)
	return nil
}

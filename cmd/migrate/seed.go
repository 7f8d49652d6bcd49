package main

import (
	"context"
	"fmt"

	"mergington-project/activities-service/models"
)

// seedStore is the slice of the repository the loader needs.
type seedStore interface {
	DeleteAllActivities(ctx context.Context) (int64, error)
	CreateActivity(ctx context.Context, name string, details models.ActivityDetails) error
}

// initialActivities is the fixed dataset loaded into an empty collection.
var initialActivities = map[string]models.ActivityDetails{
	"Chess Club": {
		Description:     "Learn strategies and compete in chess tournaments",
		Schedule:        "Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: 12,
		Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
	},
	"Programming Class": {
		Description:     "Learn programming fundamentals and build software projects",
		Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
		MaxParticipants: 20,
		Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
	},
	"Gym Class": {
		Description:     "Physical education and sports activities",
		Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
		MaxParticipants: 30,
		Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
	},
	"Soccer Team": {
		Description:     "Join the school soccer team and compete in matches",
		Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
		MaxParticipants: 22,
		Participants:    []string{"liam@mergington.edu", "noah@mergington.edu"},
	},
	"Basketball Team": {
		Description:     "Practice and play basketball with the school team",
		Schedule:        "Wednesdays and Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: 15,
		Participants:    []string{"ava@mergington.edu", "mia@mergington.edu"},
	},
	"Art Club": {
		Description:     "Explore your creativity through painting and drawing",
		Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
		MaxParticipants: 15,
		Participants:    []string{"amelia@mergington.edu", "harper@mergington.edu"},
	},
	"Drama Club": {
		Description:     "Act, direct, and produce plays and performances",
		Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
		MaxParticipants: 20,
		Participants:    []string{"ella@mergington.edu", "scarlett@mergington.edu"},
	},
	"Math Club": {
		Description:     "Solve challenging problems and participate in math competitions",
		Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
		MaxParticipants: 10,
		Participants:    []string{"james@mergington.edu", "benjamin@mergington.edu"},
	},
	"Debate Team": {
		Description:     "Develop public speaking and argumentation skills",
		Schedule:        "Fridays, 4:00 PM - 5:30 PM",
		MaxParticipants: 12,
		Participants:    []string{"charlotte@mergington.edu", "henry@mergington.edu"},
	},
}

// loadActivities clears the collection and inserts the fixed dataset,
// reporting how many items loaded out of how many were attempted.
func loadActivities(ctx context.Context, store seedStore) (int, int) {
	removed, err := store.DeleteAllActivities(ctx)
	if err != nil {
		fmt.Printf("  Failed to clear existing activities: %v\n", err)
	} else {
		fmt.Printf("  Cleared %d existing activities\n", removed)
	}

	loaded := 0
	for name, details := range initialActivities {
		if err := store.CreateActivity(ctx, name, details); err != nil {
			fmt.Printf("  Failed: %s (%v)\n", name, err)
			continue
		}
		fmt.Printf("  Created: %s\n", name)
		loaded++
	}

	return loaded, len(initialActivities)
}

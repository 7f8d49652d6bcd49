package models

// Activity is the document stored in the activities collection. The name acts
// as the primary key and is enforced unique by an index.
type Activity struct {
	Name            string   `json:"name" bson:"name"`
	Description     string   `json:"description" bson:"description"`
	Schedule        string   `json:"schedule" bson:"schedule"`
	MaxParticipants int      `json:"max_participants" bson:"max_participants"`
	Participants    []string `json:"participants" bson:"participants"`
}

// ActivityDetails is the shape exposed to API clients: the name lives in the
// surrounding mapping key, so it is stripped from the value here.
type ActivityDetails struct {
	Description     string   `json:"description" bson:"description"`
	Schedule        string   `json:"schedule" bson:"schedule"`
	MaxParticipants int      `json:"max_participants" bson:"max_participants"`
	Participants    []string `json:"participants" bson:"participants"`
}

// Details converts a stored document into its exposed attributes.
func (a Activity) Details() ActivityDetails {
	return ActivityDetails{
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    a.Participants,
	}
}

// HasParticipant reports whether the email is already on the roster.
func (d ActivityDetails) HasParticipant(email string) bool {
	for _, participant := range d.Participants {
		if participant == email {
			return true
		}
	}
	return false
}

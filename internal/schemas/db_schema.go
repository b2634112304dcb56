// Package schemas defines the data structures
package schemas

import (
	"time"
)

// ActivityType enumerates the supported kinds of fitness activity.
type ActivityType string

const (
	ActivityJogging  ActivityType = "jogging"
	ActivityWalking  ActivityType = "walking"
	ActivityCrossfit ActivityType = "crossfit"
	ActivityWorkout  ActivityType = "workout"
	ActivityYoga     ActivityType = "yoga"
)

// Valid reports whether the type is one of the supported activity kinds.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityJogging, ActivityWalking, ActivityCrossfit, ActivityWorkout, ActivityYoga:
		return true
	}
	return false
}

// User represents the data model for a user in the system.
// The password column holds a bcrypt hash and is never serialized.
type User struct {
	ID       int64  `json:"id"`                 // Unique identifier, generated on insert.
	UserName string `json:"userName,omitempty"` // Optional display name, 3-50 characters.
	Email    string `json:"email"`              // Email address of the user.
	Password string `json:"-"`                  // Password hash of the user.
}

// Activity represents a single recorded fitness activity. Every activity
// belongs to exactly one user; reads and mutations scope by ID and UserID.
type Activity struct {
	ID          int64        `json:"id"`                    // Unique identifier, generated on insert.
	Type        ActivityType `json:"type"`                  // Kind of activity.
	Description *string      `json:"description,omitempty"` // Optional free text.
	Duration    int          `json:"duration"`              // Duration in minutes.
	DateTime    time.Time    `json:"dateTime"`              // When the activity was performed.
	Location    *string      `json:"location,omitempty"`    // Optional location, 2-50 characters.
	UserID      int64        `json:"user"`                  // Owning user's ID.
}

// ActivityPatch carries the optional fields of a partial activity update.
// Nil fields are left untouched by the repository.
type ActivityPatch struct {
	Type        *ActivityType
	Description *string
	Duration    *int
	DateTime    *time.Time
	Location    *string
}

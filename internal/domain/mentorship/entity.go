package mentorship

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("pairing not found")
	ErrDuplicateActive = errors.New("active pairing already exists")
)

type Capability string

const (
	CapabilityAdmin      Capability = "ADMIN"
	CapabilityMentor     Capability = "MENTOR"
	CapabilityInstructor Capability = "INSTRUCTOR"
	CapabilityStudent    Capability = "STUDENT"
)

type Type string

const (
	TypeInstructor Type = "INSTRUCTOR_MENTORSHIP"
	TypeStudent    Type = "STUDENT_MENTORSHIP"
)

// ParseType accepts both the full enum value and the short capability form
// ("INSTRUCTOR"/"STUDENT") that the matches endpoint uses as a query param.
func ParseType(raw string) (Type, bool) {
	switch raw {
	case string(TypeInstructor), "INSTRUCTOR":
		return TypeInstructor, true
	case string(TypeStudent), "STUDENT":
		return TypeStudent, true
	default:
		return "", false
	}
}

// MenteeCapability returns the capability that defines the mentee pool for
// a mentorship type.
func (t Type) MenteeCapability() Capability {
	if t == TypeInstructor {
		return CapabilityInstructor
	}
	return CapabilityStudent
}

type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusEnded  Status = "ENDED"
)

type Chapter struct {
	ID   uuid.UUID
	Name string
}

type Profile struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Bio       string
	Interests []string
}

// Person is a directory snapshot: identity plus everything the matcher
// needs to score it. ActiveMenteeCount is only populated for mentors and
// counts ACTIVE pairings of any type where the person is the mentor.
type Person struct {
	ID          uuid.UUID
	Name        string
	Email       string
	ChapterID   *uuid.UUID
	ChapterName string
	Bio         string
	Interests   []string

	ActiveMenteeCount int
}

type Pairing struct {
	ID        uuid.UUID
	MentorID  uuid.UUID
	MenteeID  uuid.UUID
	Type      Type
	Status    Status
	Notes     string
	CreatedAt time.Time
}

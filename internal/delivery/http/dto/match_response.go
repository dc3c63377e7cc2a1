package dto

import (
	"time"

	"github.com/google/uuid"
)

type MatchSuggestionResponse struct {
	MentorID uuid.UUID `json:"mentor_id"`
	MenteeID uuid.UUID `json:"mentee_id"`
	Type     string    `json:"type"`

	MatchScore   int      `json:"match_score"`
	MatchReasons []string `json:"match_reasons"`

	Mentor MatchPersonResponse `json:"mentor"`
	Mentee MatchPersonResponse `json:"mentee"`
}

type MatchPersonResponse struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Chapter       string   `json:"chapter,omitempty"`
	Interests     []string `json:"interests"`
	ActiveMentees int      `json:"active_mentees,omitempty"`
}

type PairingResponse struct {
	ID          uuid.UUID `json:"id"`
	MentorID    uuid.UUID `json:"mentor_id"`
	MentorName  string    `json:"mentor_name"`
	MentorEmail string    `json:"mentor_email"`
	MenteeID    uuid.UUID `json:"mentee_id"`
	MenteeName  string    `json:"mentee_name"`
	MenteeEmail string    `json:"mentee_email"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

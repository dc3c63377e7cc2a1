package ws

import (
	"encoding/json"
	"time"

	"mentorhub/internal/domain/mentorship"
)

type PairingApprovedEvent struct {
	Type       string `json:"type"`
	PairingID  string `json:"pairing_id"`
	MentorID   string `json:"mentor_id"`
	MenteeID   string `json:"mentee_id"`
	Mentorship string `json:"mentorship_type"`
	Timestamp  string `json:"timestamp"`
}

// Notifier adapts the hub to the approval-notification contract the match
// usecase expects.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) PairingApproved(p mentorship.Pairing) {
	if n == nil || n.hub == nil {
		return
	}

	evt := PairingApprovedEvent{
		Type:       "pairing_approved",
		PairingID:  p.ID.String(),
		MentorID:   p.MentorID.String(),
		MenteeID:   p.MenteeID.String(),
		Mentorship: string(p.Type),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.Broadcast(b)
}

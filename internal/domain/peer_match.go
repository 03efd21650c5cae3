package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SignalSlot identifies which side of a peer match a signaling payload
// belongs to. Each participant owns exactly one slot.
type SignalSlot string

const (
	SlotInitiator SignalSlot = "initiator"
	SlotOpponent  SignalSlot = "opponent"
)

const (
	MatchStatusActive    = "active"
	MatchStatusCompleted = "completed"
)

const (
	RoleInterviewer = "interviewer"
	RoleCandidate   = "candidate"
)

// RoundFeedback is the scored result of one interview round, shared by
// both participants.
type RoundFeedback struct {
	Feedback string `json:"feedback"`
	Rating   int    `json:"rating"`
	Tip      string `json:"tip"`
}

// PeerMatch is a paired P2P interview session. Signaling payloads are
// opaque to the backend; each slot holds only the most recent payload
// its owner deposited (latest value wins, no queuing).
type PeerMatch struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	InitiatorID        int             `json:"initiator_id" db:"initiator_id"`
	OpponentID         int             `json:"opponent_id" db:"opponent_id"`
	Status             string          `json:"status" db:"status"`
	CurrentInterviewer int             `json:"current_interviewer" db:"current_interviewer"`
	InitiatorSignal    json.RawMessage `json:"initiator_signal" db:"initiator_signal"`
	OpponentSignal     json.RawMessage `json:"opponent_signal" db:"opponent_signal"`
	LastFeedback       *RoundFeedback  `json:"last_feedback" db:"-"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
}

func (m *PeerMatch) HasUser(userID int) bool {
	return m.InitiatorID == userID || m.OpponentID == userID
}

// PartnerOf returns the other participant's id.
func (m *PeerMatch) PartnerOf(userID int) (int, bool) {
	switch userID {
	case m.InitiatorID:
		return m.OpponentID, true
	case m.OpponentID:
		return m.InitiatorID, true
	}
	return 0, false
}

// SlotOf returns the signal slot owned by the given participant.
func (m *PeerMatch) SlotOf(userID int) (SignalSlot, bool) {
	switch userID {
	case m.InitiatorID:
		return SlotInitiator, true
	case m.OpponentID:
		return SlotOpponent, true
	}
	return "", false
}

// SignalFrom returns the payload deposited in the given slot.
func (m *PeerMatch) SignalFrom(slot SignalSlot) json.RawMessage {
	if slot == SlotInitiator {
		return m.InitiatorSignal
	}
	return m.OpponentSignal
}

// RoleOf reports whether the participant currently interviews or answers.
func (m *PeerMatch) RoleOf(userID int) string {
	if m.CurrentInterviewer == userID {
		return RoleInterviewer
	}
	return RoleCandidate
}

// QueueEntry is one user waiting in the matchmaking pool.
type QueueEntry struct {
	UserID   int       `json:"user_id" db:"user_id"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`
}

package models

import "time"

// SessionStatus is the lifecycle state of a conversation.
type SessionStatus string

const (
	StatusActive          SessionStatus = "active"
	StatusWaitingForHuman SessionStatus = "waiting_for_human"
	// StatusCompleted is reserved for a future explicit end-conversation
	// action; nothing transitions into it today, eviction is the only exit.
	StatusCompleted SessionStatus = "completed"
)

// SessionContext accumulates what the conversation has revealed about the
// visitor so replies can be phrased with it.
type SessionContext struct {
	LastIntent       Intent `json:"last_intent,omitempty"`
	Budget           string `json:"budget,omitempty"`
	Area             string `json:"area,omitempty"`
	PropertyInterest string `json:"property_interest,omitempty"`
	LeadCaptured     bool   `json:"lead_captured"`
}

// ChatSession groups the ordered turns of one visitor's conversation.
// LastActivityAt is monotonically non-decreasing; it is bumped on every
// append and drives retention-based eviction.
type ChatSession struct {
	ID             string         `json:"id"`
	Messages       []*ChatMessage `json:"messages"`
	Context        SessionContext `json:"context"`
	Status         SessionStatus  `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	LastActivityAt time.Time      `json:"last_activity_at"`
}

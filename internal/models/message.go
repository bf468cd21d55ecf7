package models

import "time"

// Author identifies which side of the conversation produced a message.
type Author string

const (
	AuthorVisitor   Author = "visitor"
	AuthorAssistant Author = "assistant"
)

// OptionAction describes what the storefront does when a quick-reply is chosen.
type OptionAction string

const (
	ActionSendMessage   OptionAction = "send-message"
	ActionOpenLink      OptionAction = "open-external-link"
	ActionHumanCallback OptionAction = "request-human-callback"
	ActionContactForm   OptionAction = "open-contact-form"
)

// ChatOption is a selectable quick-reply offered alongside an assistant message.
type ChatOption struct {
	ID     string       `json:"id"`
	Label  string       `json:"label"`
	Value  string       `json:"value"`
	Action OptionAction `json:"action"`
}

// MessageMeta carries classification details attached to assistant messages.
type MessageMeta struct {
	DetectedIntent Intent  `json:"detected_intent,omitempty"`
	Confidence     float64 `json:"confidence,omitempty"`
	RequiresHuman  bool    `json:"requires_human,omitempty"`
}

// ChatMessage is one turn in a conversation. Messages are immutable once
// created and belong to exactly one ChatSession.
type ChatMessage struct {
	ID        string       `json:"id"`
	Author    Author       `json:"author"`
	Content   string       `json:"content"`
	Options   []ChatOption `json:"options,omitempty"`
	Meta      MessageMeta  `json:"meta"`
	CreatedAt time.Time    `json:"created_at"`
}

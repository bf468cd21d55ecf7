package chat

import (
	"fmt"

	"github.com/qmuntal/stateless"

	"propertychat/internal/models"
)

// Session lifecycle triggers.
var (
	triggerHumanRequested stateless.Trigger = "HumanRequested"
	// triggerConversationEnded is reserved: nothing fires it yet, completion
	// is only ever realized by retention eviction.
	triggerConversationEnded stateless.Trigger = "ConversationEnded"
)

// newStatusMachine builds the lifecycle machine seeded with the session's
// current status. Requesting a human is idempotent: re-firing the trigger on
// an already-waiting session is ignored rather than rejected.
func newStatusMachine(current models.SessionStatus) *stateless.StateMachine {
	m := stateless.NewStateMachine(current)
	m.Configure(models.StatusActive).
		Permit(triggerHumanRequested, models.StatusWaitingForHuman).
		Permit(triggerConversationEnded, models.StatusCompleted)
	m.Configure(models.StatusWaitingForHuman).
		Ignore(triggerHumanRequested).
		Permit(triggerConversationEnded, models.StatusCompleted)
	m.Configure(models.StatusCompleted).
		Ignore(triggerHumanRequested).
		Ignore(triggerConversationEnded)
	return m
}

// markWaitingForHuman moves the session out of self-service once a reply
// requires a human follow-up.
func markWaitingForHuman(session *models.ChatSession) error {
	m := newStatusMachine(session.Status)
	if err := m.Fire(triggerHumanRequested); err != nil {
		return fmt.Errorf("session %s status transition: %w", session.ID, err)
	}
	status, ok := m.MustState().(models.SessionStatus)
	if !ok {
		return fmt.Errorf("session %s: unexpected state type %T", session.ID, m.MustState())
	}
	session.Status = status
	return nil
}

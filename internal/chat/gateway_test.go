package chat

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertychat/internal/config"
	"propertychat/internal/models"
	"propertychat/internal/ratelimit"
)

func newTestGateway(t *testing.T, mock *clock.Mock) (*Gateway, *SessionStore) {
	t.Helper()
	mock.Set(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)) // Sunday, open
	store := NewSessionStore(mock)
	limiter := ratelimit.NewMemoryLimiter(mock, time.Minute, 10)
	responder := newTestResponder(t, mock)
	gw := NewGateway(limiter, store, responder, mock, config.SessionConfig{
		Retention:        time.Hour,
		SweepProbability: 0.1,
	})
	gw.randFloat = func() float64 { return 1 } // no sweep unless a test opts in
	return gw, store
}

func TestGatewayMultiTurnConversation(t *testing.T) {
	mock := clock.NewMock()
	gw, store := newTestGateway(t, mock)
	ctx := context.Background()

	first, err := gw.Handle(ctx, Request{Text: "I want to buy an apartment", ClientID: "1.2.3.4"})
	require.NoError(t, err)
	require.NotEmpty(t, first.SessionID)
	assert.Equal(t, models.IntentBuyProperty, first.Reply.Meta.DetectedIntent)

	second, err := gw.Handle(ctx, Request{Text: "hello", SessionID: first.SessionID, ClientID: "1.2.3.4"})
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, models.IntentGreeting, second.Reply.Meta.DetectedIntent)

	session, ok := store.Get(first.SessionID)
	require.True(t, ok)
	require.Len(t, session.Messages, 4)
	assert.Equal(t, models.AuthorVisitor, session.Messages[0].Author)
	assert.Equal(t, models.AuthorAssistant, session.Messages[1].Author)
	assert.Equal(t, models.AuthorVisitor, session.Messages[2].Author)
	assert.Equal(t, models.AuthorAssistant, session.Messages[3].Author)
	assert.Equal(t, "I want to buy an apartment", session.Messages[0].Content)
	assert.Equal(t, models.IntentGreeting, session.Context.LastIntent)
	assert.Equal(t, "apartment", session.Context.PropertyInterest)
}

func TestGatewayValidationShortCircuits(t *testing.T) {
	mock := clock.NewMock()
	gw, store := newTestGateway(t, mock)

	_, err := gw.Handle(context.Background(), Request{Text: "   ", ClientID: "1.2.3.4"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ReasonEmpty, vErr.Reason)
	assert.Equal(t, 0, store.Len(), "rejected requests must not create sessions")
}

func TestGatewayRateLimitShortCircuits(t *testing.T) {
	mock := clock.NewMock()
	gw, store := newTestGateway(t, mock)
	ctx := context.Background()

	var sessionID string
	for i := 0; i < 10; i++ {
		res, err := gw.Handle(ctx, Request{Text: "hello", SessionID: sessionID, ClientID: "9.9.9.9"})
		require.NoError(t, err, "call %d", i+1)
		sessionID = res.SessionID
	}
	session, ok := store.Get(sessionID)
	require.True(t, ok)
	require.Len(t, session.Messages, 20)

	_, err := gw.Handle(ctx, Request{Text: "hello", SessionID: sessionID, ClientID: "9.9.9.9"})
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Len(t, session.Messages, 20, "throttled call must not touch the session")

	// Another client is unaffected.
	_, err = gw.Handle(ctx, Request{Text: "hello", ClientID: "8.8.8.8"})
	assert.NoError(t, err)
}

func TestGatewaySweepEvictsExpiredSessions(t *testing.T) {
	mock := clock.NewMock()
	gw, store := newTestGateway(t, mock)
	ctx := context.Background()

	stale, err := gw.Handle(ctx, Request{Text: "hello", ClientID: "1.1.1.1"})
	require.NoError(t, err)

	mock.Add(2 * time.Hour)

	gw.randFloat = func() float64 { return 0 } // force the sweep
	_, err = gw.Handle(ctx, Request{Text: "hello", ClientID: "2.2.2.2"})
	require.NoError(t, err)

	_, ok := store.Get(stale.SessionID)
	assert.False(t, ok, "expired session must be evicted by the piggybacked sweep")

	// The old id now yields a brand-new conversation.
	reborn, err := gw.Handle(ctx, Request{Text: "hello", SessionID: stale.SessionID, ClientID: "3.3.3.3"})
	require.NoError(t, err)
	session, ok := store.Get(reborn.SessionID)
	require.True(t, ok)
	assert.Len(t, session.Messages, 2)
}

func TestGatewayMarkLeadCaptured(t *testing.T) {
	mock := clock.NewMock()
	gw, store := newTestGateway(t, mock)

	res, err := gw.Handle(context.Background(), Request{Text: "hello", ClientID: "1.2.3.4"})
	require.NoError(t, err)

	assert.True(t, gw.MarkLeadCaptured(res.SessionID))
	session, _ := store.Get(res.SessionID)
	assert.True(t, session.Context.LeadCaptured)

	assert.False(t, gw.MarkLeadCaptured("00000000-0000-0000-0000-000000000000"))
}

func TestGatewayContextExtraction(t *testing.T) {
	mock := clock.NewMock()
	gw, store := newTestGateway(t, mock)
	ctx := context.Background()

	res, err := gw.Handle(ctx, Request{Text: "I want to buy a villa in Herzliya for 2m", ClientID: "1.2.3.4"})
	require.NoError(t, err)

	session, ok := store.Get(res.SessionID)
	require.True(t, ok)
	assert.Equal(t, models.IntentBuyProperty, session.Context.LastIntent)
	assert.Equal(t, "villa", session.Context.PropertyInterest)
	assert.Equal(t, "2m", session.Context.Budget)
	assert.Equal(t, "Herzliya", session.Context.Area)
}

package chat

import (
	"context"
	"errors"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"propertychat/internal/config"
	"propertychat/internal/logger"
	"propertychat/internal/models"
	"propertychat/internal/ratelimit"
)

// ErrRateLimited is returned when the client has exhausted its window.
var ErrRateLimited = errors.New("too many requests")

// Request is one inbound chat turn from a visitor.
type Request struct {
	Text      string
	SessionID string
	ClientID  string
}

// Result carries the assistant reply and the session id to echo on the next
// turn.
type Result struct {
	Reply     *models.ChatMessage
	SessionID string
}

// Gateway sequences one chat turn: validate, rate-check, resolve the session,
// append the visitor message, classify, generate and append the reply, then
// opportunistically sweep expired sessions. It is the only component with an
// HTTP-facing contract.
type Gateway struct {
	validator  *Validator
	limiter    ratelimit.Limiter
	store      *SessionStore
	classifier *Classifier
	responder  *Responder
	clock      clock.Clock

	retention time.Duration
	sweepProb float64
	randFloat func() float64
}

// NewGateway wires the pipeline together.
func NewGateway(limiter ratelimit.Limiter, store *SessionStore, responder *Responder, clk clock.Clock, cfg config.SessionConfig) *Gateway {
	retention := cfg.Retention
	if retention <= 0 {
		retention = time.Hour
	}
	prob := cfg.SweepProbability
	if prob <= 0 || prob > 1 {
		prob = 0.1
	}
	return &Gateway{
		validator:  NewValidator(),
		limiter:    limiter,
		store:      store,
		classifier: NewClassifier(),
		responder:  responder,
		clock:      clk,
		retention:  retention,
		sweepProb:  prob,
		randFloat:  rand.Float64,
	}
}

// Handle processes a single visitor message. Validation and rate-check
// failures short-circuit before any session state exists; the remaining steps
// run inside the session's critical section, so a visitor message is never
// stored without its reply.
func (g *Gateway) Handle(ctx context.Context, req Request) (*Result, error) {
	if err := g.validator.Validate(req.Text); err != nil {
		return nil, err
	}

	allowed, err := g.limiter.Allow(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrRateLimited
	}

	text := strings.TrimSpace(req.Text)
	var reply *models.ChatMessage
	sessionID, err := g.store.WithSession(req.SessionID, func(session *models.ChatSession) error {
		visitorMsg := &models.ChatMessage{
			ID:        uuid.NewString(),
			Author:    models.AuthorVisitor,
			Content:   text,
			CreatedAt: g.clock.Now().UTC(),
		}
		g.store.Append(session, visitorMsg)

		// The reply reads the context of earlier turns; this turn's findings
		// fold in afterwards so a first greeting is never a "welcome back".
		cls := g.classifier.Classify(text)
		var err error
		reply, err = g.responder.Respond(cls, session)
		if err != nil {
			return err
		}
		updateContext(&session.Context, cls.Intent, text)
		g.store.Append(session, reply)
		return nil
	})
	if err != nil {
		return nil, err
	}

	g.maybeSweep()
	return &Result{Reply: reply, SessionID: sessionID}, nil
}

// MarkLeadCaptured flags the session's context once a lead has actually been
// persisted. A missing session is not an error; the lead still exists.
func (g *Gateway) MarkLeadCaptured(sessionID string) bool {
	return g.store.UpdateIfPresent(sessionID, func(session *models.ChatSession) {
		session.Context.LeadCaptured = true
	})
}

// maybeSweep triggers retention eviction on a fraction of requests so the
// store self-bounds without a background scheduler.
func (g *Gateway) maybeSweep() {
	if g.randFloat() >= g.sweepProb {
		return
	}
	if removed := g.store.Sweep(g.retention); removed > 0 {
		logger.L.Debug("swept expired chat sessions", "removed", removed, "live", g.store.Len())
	}
}

var (
	budgetPattern = regexp.MustCompile(`(?i)([$€₪]\s?\d[\d,.]*|\b\d[\d,.]*\s*(?:k|m|million|thousand)\b|\b\d{6,}\b)`)
	areaPattern   = regexp.MustCompile(`(?i)\b(?:in|near|around)\s+([a-z][a-z'-]{2,40})`)
)

var propertyKinds = []string{
	"apartment", "penthouse", "villa", "house", "duplex", "studio", "office", "land", "cottage",
}

// updateContext folds what this turn revealed into the session context. Only
// non-empty findings overwrite earlier ones.
func updateContext(sc *models.SessionContext, intent models.Intent, text string) {
	sc.LastIntent = intent
	lower := strings.ToLower(text)
	for _, kind := range propertyKinds {
		if strings.Contains(lower, kind) {
			sc.PropertyInterest = kind
			break
		}
	}
	if m := budgetPattern.FindString(text); m != "" {
		sc.Budget = strings.TrimSpace(m)
	}
	if m := areaPattern.FindStringSubmatch(text); len(m) == 2 {
		sc.Area = strings.TrimSpace(m[1])
	}
}

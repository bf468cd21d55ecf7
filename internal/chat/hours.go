package chat

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	"propertychat/internal/config"
)

// HoursPolicy decides whether a human is around to pick up a conversation.
// The brokerage works Sunday through Thursday; only the hour range and the
// timezone come from configuration.
type HoursPolicy struct {
	clock     clock.Clock
	loc       *time.Location
	openHour  int
	closeHour int
}

// NewHoursPolicy builds the policy from config. An empty or "Local" timezone
// uses the host timezone.
func NewHoursPolicy(cfg config.HoursConfig, clk clock.Clock) (*HoursPolicy, error) {
	loc := time.Local
	if cfg.Timezone != "" && cfg.Timezone != "Local" {
		var err error
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
		}
	}
	openHour, closeHour := cfg.OpenHour, cfg.CloseHour
	if closeHour <= openHour {
		openHour, closeHour = 9, 18
	}
	return &HoursPolicy{clock: clk, loc: loc, openHour: openHour, closeHour: closeHour}, nil
}

// IsOpenNow reports whether the current local time falls inside the open
// window: Sunday through Thursday, hour in [openHour, closeHour).
func (p *HoursPolicy) IsOpenNow() bool {
	now := p.clock.Now().In(p.loc)
	switch now.Weekday() {
	case time.Friday, time.Saturday:
		return false
	}
	h := now.Hour()
	return h >= p.openHour && h < p.closeHour
}

// StatusMessage returns the online/offline line shown in the chat widget.
func (p *HoursPolicy) StatusMessage() string {
	if p.IsOpenNow() {
		return "We're online — our agents are answering right now."
	}
	return fmt.Sprintf("We're offline at the moment. Our hours are Sunday to Thursday, %d:00–%d:00. Leave a message and we'll get back to you.",
		p.openHour, p.closeHour)
}

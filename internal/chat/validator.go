package chat

import (
	"regexp"
	"strings"
)

// Rejection reasons surfaced verbatim to the client.
const (
	ReasonEmpty         = "EMPTY"
	ReasonTooLong       = "TOO_LONG"
	ReasonSpamSuspected = "SPAM_SUSPECTED"
)

// ValidationError reports why a message was rejected before processing.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid message: " + e.Reason
}

const maxMessageLen = 500

// Ten or more identical characters in a row trips the repeat check. RE2 has
// no backreferences, so the run is counted by hand in hasLongRun.
const maxCharRun = 10

var urlPattern = regexp.MustCompile(`(?i)(https?://|www\.|\b[a-z0-9-]+\.(com|net|org|io|info|biz)\b)`)

var spamKeywords = []string{
	"buy", "sell", "cheap", "free", "click", "urgent", "limited", "offer",
}

// Validator rejects malformed, oversized, or spam-pattern messages. It is
// pure: no state, no side effects, identical verdict for identical input.
type Validator struct{}

// NewValidator constructs a Validator.
func NewValidator() *Validator { return &Validator{} }

// Validate applies the rejection rules in order; the first failing rule wins.
// A nil return means the message may enter the pipeline.
func (v *Validator) Validate(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &ValidationError{Reason: ReasonEmpty}
	}
	if len([]rune(text)) > maxMessageLen {
		return &ValidationError{Reason: ReasonTooLong}
	}
	if hasLongRun(trimmed) || urlPattern.MatchString(trimmed) || looksLikeSpam(trimmed) {
		return &ValidationError{Reason: ReasonSpamSuspected}
	}
	return nil
}

func hasLongRun(s string) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
			if run >= maxCharRun {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// looksLikeSpam requires two or more distinct keyword hits: single words like
// "buy" are ordinary real-estate vocabulary and must keep flowing to the
// classifier, while keyword pile-ups ("free offer, click now") do not occur
// in genuine inquiries.
func looksLikeSpam(s string) bool {
	lower := strings.ToLower(s)
	hits := 0
	for _, kw := range spamKeywords {
		if containsWord(lower, kw) {
			hits++
			if hits >= 2 {
				return true
			}
		}
	}
	return false
}

func containsWord(lower, word string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		if (start == 0 || !isWordChar(lower[start-1])) && (end == len(lower) || !isWordChar(lower[end])) {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '_'
}

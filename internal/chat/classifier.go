package chat

import (
	"strings"

	"propertychat/internal/models"
)

// Classification is the outcome of intent detection for one message.
type Classification struct {
	Intent     models.Intent
	Confidence float64
}

// intentRule pairs one intent with the vocabulary that selects it.
type intentRule struct {
	intent   models.Intent
	keywords []string
}

// Rules are evaluated top to bottom and the first hit wins. Vocabularies
// overlap ("buy" and "agent" can share a sentence), so this order is the
// tie-break and is part of the observable contract; do not reorder.
var intentRules = []intentRule{
	{models.IntentBuyProperty, []string{"buy", "buying", "purchase", "purchasing"}},
	{models.IntentSellProperty, []string{"sell", "selling", "list my"}},
	{models.IntentRentProperty, []string{"rent", "rental", "lease", "tenant"}},
	{models.IntentInvestment, []string{"invest", "investment", "roi", "yield", "portfolio"}},
	{models.IntentValuation, []string{"valuation", "worth", "appraisal", "value my"}},
	{models.IntentViewing, []string{"viewing", "visit", "tour", "open house"}},
	{models.IntentHumanAgent, []string{"agent", "human", "speak", "talk to", "representative", "call me"}},
	{models.IntentGreeting, []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening", "greetings"}},
}

// Classifier maps free text to one discrete intent label. It is a pure
// function: no state, no I/O, identical label for identical text.
type Classifier struct{}

// NewClassifier constructs a Classifier.
func NewClassifier() *Classifier { return &Classifier{} }

// Classify lower-cases the input and tests each rule's keyword set in fixed
// priority order; the first rule with any match wins. Unmatched text falls
// back to the general intent.
func (c *Classifier) Classify(text string) Classification {
	lower := strings.ToLower(text)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if matchKeyword(lower, kw) {
				confidence := 0.8
				if rule.intent == models.IntentGreeting {
					confidence = 1.0
				}
				return Classification{Intent: rule.intent, Confidence: confidence}
			}
		}
	}
	return Classification{Intent: models.IntentGeneral, Confidence: 0.8}
}

// matchKeyword keeps substring semantics for longer vocabulary ("rent" must
// hit "rental") but holds short tokens to word boundaries: "hi" may not fire
// on "this" or "anything".
func matchKeyword(lower, kw string) bool {
	if len(kw) <= 3 {
		return containsWord(lower, kw)
	}
	return strings.Contains(lower, kw)
}

package chat

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"propertychat/internal/models"
	"propertychat/internal/notify"
)

// Responder turns a classified intent into the assistant's reply: a static
// body per intent plus the quick-reply options appropriate to it. Phrasing
// borrows from the session context and the business-hours policy; the
// human_agent template additionally parks the session for a human.
type Responder struct {
	clock   clock.Clock
	hours   *HoursPolicy
	contact notify.Contact
}

// NewResponder constructs a Responder.
func NewResponder(clk clock.Clock, hours *HoursPolicy, contact notify.Contact) *Responder {
	return &Responder{clock: clk, hours: hours, contact: contact}
}

// Respond builds the reply message for the intent. For human_agent the reply
// carries requires_human metadata and the session transitions to
// waiting_for_human; every other intent leaves the status untouched.
func (r *Responder) Respond(cls Classification, session *models.ChatSession) (*models.ChatMessage, error) {
	var (
		content       string
		options       []models.ChatOption
		requiresHuman bool
	)

	switch cls.Intent {
	case models.IntentBuyProperty:
		content = "Great, let's find you the right property. What type are you looking for, and do you already have a budget or area in mind?"
		if interest := session.Context.PropertyInterest; interest != "" {
			content = fmt.Sprintf("Happy to keep looking at %ss with you. What else matters — budget, area, or timing?", interest)
		}
		options = []models.ChatOption{
			option("Property type", "What property types are available?", models.ActionSendMessage),
			option("My budget", "I'd like to discuss my budget", models.ActionSendMessage),
			option("Preferred area", "I'd like to talk about areas", models.ActionSendMessage),
			option("Schedule a viewing", "I'd like to schedule a viewing", models.ActionHumanCallback),
		}

	case models.IntentSellProperty:
		content = "We can help you sell. We start with a free valuation of your property, then build a marketing plan with you."
		options = []models.ChatOption{
			option("Free valuation", "I'd like a valuation of my property", models.ActionHumanCallback),
			option("Talk to an agent", "I'd like to talk to an agent about selling", models.ActionSendMessage),
			option("Send property details", "Open the contact form", models.ActionContactForm),
		}

	case models.IntentRentProperty:
		content = "Looking to rent? Tell us the area and monthly budget you have in mind and we'll shortlist matching homes."
		options = []models.ChatOption{
			option("Preferred area", "I'd like to talk about rental areas", models.ActionSendMessage),
			option("Monthly budget", "I'd like to discuss my rental budget", models.ActionSendMessage),
			option("Schedule a viewing", "I'd like to schedule a viewing", models.ActionHumanCallback),
		}

	case models.IntentInvestment:
		content = "Our investment desk tracks yield and appreciation across the city. An advisor can walk you through current opportunities."
		options = []models.ChatOption{
			option("Talk to an advisor", "Please have an advisor call me", models.ActionHumanCallback),
			option("WhatsApp us", r.contact.WhatsAppLink("Hi, I'm interested in investment properties"), models.ActionOpenLink),
			option("Current projects", "What projects are currently available?", models.ActionSendMessage),
		}

	case models.IntentValuation:
		content = "We'll gladly estimate what your property is worth — the valuation is free and without obligation."
		options = []models.ChatOption{
			option("Schedule a valuation", "I'd like to schedule a valuation", models.ActionHumanCallback),
			option("WhatsApp us", r.contact.WhatsAppLink("Hi, I'd like a property valuation"), models.ActionOpenLink),
			option("Email us", r.contact.MailtoLink("Property valuation"), models.ActionContactForm),
		}

	case models.IntentViewing:
		content = "We'd love to show you around. Leave your details and an agent will coordinate a time that suits you."
		options = []models.ChatOption{
			option("Request a callback", "Please call me to arrange a viewing", models.ActionHumanCallback),
			option("WhatsApp us", r.contact.WhatsAppLink("Hi, I'd like to arrange a viewing"), models.ActionOpenLink),
			option("Email us", r.contact.MailtoLink("Viewing request"), models.ActionContactForm),
		}

	case models.IntentHumanAgent:
		if r.hours.IsOpenNow() {
			content = "Of course — connecting you with one of our agents. Pick whichever channel suits you best."
		} else {
			content = "Of course — an agent will pick this up as soon as we're back. " + r.hours.StatusMessage()
		}
		options = []models.ChatOption{
			option("WhatsApp", r.contact.WhatsAppLink("Hi, I'd like to speak with an agent"), models.ActionOpenLink),
			option("Request a callback", "Please call me back", models.ActionHumanCallback),
			option("Email us", r.contact.MailtoLink("Agent request"), models.ActionContactForm),
			option("Schedule a meeting", "I'd like to schedule a meeting", models.ActionSendMessage),
		}
		requiresHuman = true

	case models.IntentGreeting:
		if session.Context.LastIntent != "" {
			content = fmt.Sprintf("Welcome back! How else can %s help you today?", r.contact.Name)
		} else {
			content = fmt.Sprintf("Hello! You've reached %s. %s How can we help?", r.contact.Name, r.hours.StatusMessage())
		}
		options = mainMenuOptions()

	default:
		content = "I can help with buying, selling, renting, investments, valuations and viewings — or connect you to one of our agents."
		options = mainMenuOptions()
	}

	msg := &models.ChatMessage{
		ID:        uuid.NewString(),
		Author:    models.AuthorAssistant,
		Content:   content,
		Options:   options,
		CreatedAt: r.clock.Now().UTC(),
		Meta: models.MessageMeta{
			DetectedIntent: cls.Intent,
			Confidence:     cls.Confidence,
			RequiresHuman:  requiresHuman,
		},
	}
	if requiresHuman {
		if err := markWaitingForHuman(session); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

func mainMenuOptions() []models.ChatOption {
	return []models.ChatOption{
		option("Buying", "I want to buy a property", models.ActionSendMessage),
		option("Selling", "I want to sell my property", models.ActionSendMessage),
		option("Renting", "I'm looking to rent", models.ActionSendMessage),
		option("Talk to an agent", "I'd like to talk to an agent", models.ActionSendMessage),
	}
}

func option(label, value string, action models.OptionAction) models.ChatOption {
	return models.ChatOption{
		ID:     uuid.NewString(),
		Label:  label,
		Value:  value,
		Action: action,
	}
}

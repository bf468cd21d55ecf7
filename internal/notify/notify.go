// Package notify builds outbound contact artifacts: WhatsApp deep links,
// mailto and tel URLs. It is purely generative and shares no state with the
// chat core.
package notify

import (
	"net/url"
	"strings"

	"propertychat/internal/config"
)

// Contact carries the brokerage's outbound channels.
type Contact struct {
	Name     string
	Phone    string
	WhatsApp string
	Email    string
}

// FromConfig copies the configured brokerage details into a Contact.
func FromConfig(cfg config.BrokerageConfig) Contact {
	return Contact{
		Name:     cfg.Name,
		Phone:    cfg.Phone,
		WhatsApp: cfg.WhatsApp,
		Email:    cfg.Email,
	}
}

// WhatsAppLink returns a wa.me deep link that opens a conversation with the
// brokerage, pre-filled with text.
func (c Contact) WhatsAppLink(text string) string {
	link := "https://wa.me/" + digitsOnly(c.WhatsApp)
	if text != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link
}

// MailtoLink returns a mailto URL for the brokerage inbox.
func (c Contact) MailtoLink(subject string) string {
	link := "mailto:" + c.Email
	if subject != "" {
		link += "?subject=" + url.QueryEscape(subject)
	}
	return link
}

// TelLink returns a tel URL for the brokerage phone line.
func (c Contact) TelLink() string {
	return "tel:" + strings.ReplaceAll(c.Phone, " ", "")
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

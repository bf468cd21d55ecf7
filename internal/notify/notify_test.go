package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"propertychat/internal/config"
)

func testContact() Contact {
	return FromConfig(config.BrokerageConfig{
		Name:     "Prime Estates",
		Phone:    "+972 3 555 1234",
		WhatsApp: "+972 50-555-1234",
		Email:    "info@primeestates.example",
	})
}

func TestWhatsAppLink(t *testing.T) {
	c := testContact()
	assert.Equal(t,
		"https://wa.me/972505551234?text=Hi%2C+I%27d+like+a+property+valuation",
		c.WhatsAppLink("Hi, I'd like a property valuation"))
	assert.Equal(t, "https://wa.me/972505551234", c.WhatsAppLink(""))
}

func TestMailtoLink(t *testing.T) {
	c := testContact()
	assert.Equal(t,
		"mailto:info@primeestates.example?subject=Viewing+request",
		c.MailtoLink("Viewing request"))
	assert.Equal(t, "mailto:info@primeestates.example", c.MailtoLink(""))
}

func TestTelLink(t *testing.T) {
	assert.Equal(t, "tel:+97235551234", testContact().TelLink())
}

package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorAcceptsOrdinaryInquiries(t *testing.T) {
	v := NewValidator()
	for _, text := range []string{
		"I want to buy an apartment",
		"hello",
		"Do you have rentals in the city center?",
		"What is my house worth?",
		strings.Repeat("ab", 250), // exactly the length ceiling
	} {
		assert.NoError(t, v.Validate(text), "input %q", text)
	}
}

func TestValidatorRejectsEmpty(t *testing.T) {
	v := NewValidator()
	for _, text := range []string{"", "   ", "\n\t "} {
		err := v.Validate(text)
		require.Error(t, err)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, ReasonEmpty, vErr.Reason)
	}
}

func TestValidatorRejectsTooLong(t *testing.T) {
	v := NewValidator()
	err := v.Validate(strings.Repeat("a", 501))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ReasonTooLong, vErr.Reason)
}

func TestValidatorRejectsSpamPatterns(t *testing.T) {
	v := NewValidator()
	for _, text := range []string{
		"aaaaaaaaaa",                         // ten repeated characters
		"hello!!!!!!!!!!",                    // repeated punctuation
		"check out https://spam.example/买房", // URL
		"visit www.dodgy-deals.example now",
		"great deals on example.com",
		"free offer, click now",     // two spam keywords
		"buy cheap, urgent urgent!", // keyword pile-up
	} {
		err := v.Validate(text)
		require.Error(t, err, "input %q", text)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, ReasonSpamSuspected, vErr.Reason, "input %q", text)
	}
}

func TestValidatorSingleKeywordIsNotSpam(t *testing.T) {
	v := NewValidator()
	// Single occurrences of trade vocabulary must reach the classifier.
	assert.NoError(t, v.Validate("I want to buy a penthouse"))
	assert.NoError(t, v.Validate("thinking about selling my flat"))
}

func TestValidatorOrderOfRules(t *testing.T) {
	v := NewValidator()
	// Oversized spam is reported as TOO_LONG: length is checked first.
	err := v.Validate(strings.Repeat("z", 600))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ReasonTooLong, vErr.Reason)
}

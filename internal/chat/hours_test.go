package chat

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertychat/internal/config"
)

func newTestHours(t *testing.T, mock *clock.Mock) *HoursPolicy {
	t.Helper()
	p, err := NewHoursPolicy(config.HoursConfig{Timezone: "UTC", OpenHour: 9, CloseHour: 18}, mock)
	require.NoError(t, err)
	return p
}

func TestHoursOpenWindow(t *testing.T) {
	mock := clock.NewMock()
	p := newTestHours(t, mock)

	// 2026-03-01 is a Sunday.
	cases := []struct {
		at   time.Time
		open bool
	}{
		{time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), true},   // Sunday mid-morning
		{time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC), true},    // Thursday at opening
		{time.Date(2026, 3, 5, 17, 59, 0, 0, time.UTC), true},  // Thursday before close
		{time.Date(2026, 3, 5, 18, 0, 0, 0, time.UTC), false},  // close hour is exclusive
		{time.Date(2026, 3, 1, 8, 59, 0, 0, time.UTC), false},  // before opening
		{time.Date(2026, 3, 6, 11, 0, 0, 0, time.UTC), false},  // Friday
		{time.Date(2026, 3, 7, 11, 0, 0, 0, time.UTC), false},  // Saturday
		{time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC), false}, // late night
	}
	for _, tc := range cases {
		mock.Set(tc.at)
		assert.Equal(t, tc.open, p.IsOpenNow(), "at %s", tc.at)
	}
}

func TestHoursStatusMessage(t *testing.T) {
	mock := clock.NewMock()
	p := newTestHours(t, mock)

	mock.Set(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	assert.Contains(t, p.StatusMessage(), "online")

	mock.Set(time.Date(2026, 3, 6, 10, 0, 0, 0, time.UTC))
	msg := p.StatusMessage()
	assert.Contains(t, msg, "offline")
	assert.Contains(t, msg, "Sunday to Thursday")
}

func TestHoursBadTimezone(t *testing.T) {
	_, err := NewHoursPolicy(config.HoursConfig{Timezone: "Narnia/Lamppost"}, clock.NewMock())
	assert.Error(t, err)
}

package weekly

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.UTC)
	require.NoError(t, err)
	return ts
}

func TestWeekStartMonday(t *testing.T) {
	tests := []struct {
		name string
		now  string
		want string
	}{
		{"monday maps to itself", "2025-01-06T00:00:00", "2025-01-06"},
		{"tuesday maps back one day", "2025-01-07T09:30:00", "2025-01-06"},
		{"saturday maps back five days", "2025-01-11T23:59:59", "2025-01-06"},
		{"sunday maps back six days", "2025-01-12T12:00:00", "2025-01-06"},
		{"next monday starts a new week", "2025-01-13T00:00:00", "2025-01-13"},
		{"year boundary", "2025-01-01T08:00:00", "2024-12-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekStartMonday(mustTime(t, tt.now)))
		})
	}
}

func TestWeekStartMondayProperties(t *testing.T) {
	// Any instant across several weeks must map to a Monday no more than
	// six days earlier.
	start := mustTime(t, "2025-01-01T00:00:00")
	for i := 0; i < 21*4; i++ {
		now := start.Add(time.Duration(i) * 6 * time.Hour)
		ws := WeekStartMonday(now)

		day, err := time.ParseInLocation(DateLayout, ws, time.UTC)
		require.NoError(t, err)

		assert.Equal(t, time.Monday, day.Weekday(), "week start %s for now %s", ws, now)
		assert.False(t, day.After(now), "week start must not be after now")
		assert.Less(t, now.Sub(day), 7*24*time.Hour, "week start must be within 6 days")
	}
}

func TestPhaseTimes(t *testing.T) {
	mon, reveal, sunEnd, err := PhaseTimes("2025-01-06", time.UTC)
	require.NoError(t, err)

	assert.Equal(t, mustTime(t, "2025-01-06T00:00:00"), mon)
	assert.Equal(t, mustTime(t, "2025-01-09T18:00:00"), reveal)
	assert.Equal(t, mustTime(t, "2025-01-12T23:59:59"), sunEnd)

	assert.Equal(t, time.Thursday, reveal.Weekday())
	assert.True(t, mon.Before(reveal))
	assert.True(t, reveal.Before(sunEnd))
}

func TestPhaseTimesInvalidWeekStart(t *testing.T) {
	_, _, _, err := PhaseTimes("not-a-date", time.UTC)
	assert.Error(t, err)
}

func TestCurrentPhase(t *testing.T) {
	tests := []struct {
		name string
		now  string
		want Phase
	}{
		{"monday morning is answering", "2025-01-06T08:00:00", PhaseAnswering},
		{"one second before reveal is answering", "2025-01-09T17:59:59", PhaseAnswering},
		{"reveal boundary instant is reveal", "2025-01-09T18:00:00", PhaseReveal},
		{"after reveal stays reveal", "2025-01-10T12:00:00", PhaseReveal},
		{"past the read-window end stays reveal", "2025-01-13T00:00:00", PhaseReveal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phase, err := CurrentPhase("2025-01-06", mustTime(t, tt.now))
			require.NoError(t, err)
			assert.Equal(t, tt.want, phase)
		})
	}
}

func TestDailyRevealAt(t *testing.T) {
	reveal, err := DailyRevealAt("2025-01-05", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, mustTime(t, "2025-01-05T20:00:00"), reveal)

	_, err = DailyRevealAt("2025-13-05", time.UTC)
	assert.Error(t, err)
}

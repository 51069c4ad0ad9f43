package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseBookingState(t *testing.T) {
	for in, want := range map[string]BookingState{
		"ALL":      StateAll,
		"current":  StateCurrent,
		"Past":     StatePast,
		"FUTURE":   StateFuture,
		"WAITING":  StateWaiting,
		"REJECTED": StateRejected,
	} {
		got, err := ParseBookingState(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got)
	}
}

func TestParseBookingState_Unknown(t *testing.T) {
	for _, in := range []string{"", "APPROVED", "CANCELED", "SOMETHING"} {
		_, err := ParseBookingState(in)
		require.Error(t, err, in)
		require.True(t, errors.Is(err, ErrUnknownState))
	}
}

func TestDateTime_RoundTrip(t *testing.T) {
	d := NewDateTime(time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC))

	b, err := d.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"2025-01-01T10:30:00"`, string(b))

	var back DateTime
	require.NoError(t, back.UnmarshalJSON(b))
	require.True(t, back.Time().Equal(d.Time()))
}

func TestDateTime_FractionalSeconds(t *testing.T) {
	var d DateTime
	require.NoError(t, d.UnmarshalJSON([]byte(`"2025-01-01T10:30:00.123456"`)))
	require.Equal(t, 10, d.Time().Hour())

	require.Error(t, d.UnmarshalJSON([]byte(`"2025-01-01"`)))
	require.Error(t, d.UnmarshalJSON([]byte(`42`)))
}

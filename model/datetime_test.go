package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shareit/model"
)

func TestDateTime_Marshal(t *testing.T) {
	d := model.NewDateTime(time.Date(2025, 6, 1, 12, 30, 45, 999_000_000, time.UTC))
	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2025-06-01 12:30:45"`, string(b)) // sub-second precision dropped
}

func TestDateTime_MarshalZeroIsNull(t *testing.T) {
	b, err := json.Marshal(model.DateTime{})
	require.NoError(t, err)
	require.Equal(t, "null", string(b))
}

func TestDateTime_Unmarshal(t *testing.T) {
	var d model.DateTime
	require.NoError(t, json.Unmarshal([]byte(`"2025-06-01 12:30:45"`), &d))
	require.Equal(t, time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC), d.Time)
}

func TestDateTime_UnmarshalNull(t *testing.T) {
	var d model.DateTime
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	require.True(t, d.IsZero())
}

func TestDateTime_UnmarshalRejectsOtherLayouts(t *testing.T) {
	var d model.DateTime
	require.Error(t, json.Unmarshal([]byte(`"2025-06-01T12:30:45Z"`), &d))
}

func TestParseBookingState(t *testing.T) {
	cases := []struct {
		in   string
		want model.BookingState
	}{
		{"", model.StateAll},
		{"ALL", model.StateAll},
		{"CURRENT", model.StateCurrent},
		{"PAST", model.StatePast},
		{"FUTURE", model.StateFuture},
		{"WAITING", model.StateWaiting},
		{"REJECTED", model.StateRejected},
	}
	for _, tc := range cases {
		got, err := model.ParseBookingState(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got)
	}

	_, err := model.ParseBookingState("SOMETIMES")
	require.Error(t, err)
	require.Contains(t, err.Error(), "SOMETIMES")
}

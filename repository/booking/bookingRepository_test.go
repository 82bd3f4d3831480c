package bookingrepo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"shareit/model"
)

func TestStateClause(t *testing.T) {
	cases := []struct {
		state model.BookingState
		want  string
	}{
		{model.StateAll, ``},
		{model.StateCurrent, ` AND b.start_date <= $2 AND b.end_date >= $2`},
		{model.StatePast, ` AND b.end_date < $2`},
		{model.StateFuture, ` AND b.start_date > $2`},
		{model.StateWaiting, ` AND b.status = $2`},
		{model.StateRejected, ` AND b.status = $2`},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, stateClause(tc.state), string(tc.state))
	}
}

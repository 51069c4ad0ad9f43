package bookingrepo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ds-skoropad/java-shareit/model"
)

func TestStateCond(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	cond, arg := stateCond(model.StateAll, now)
	require.Empty(t, cond)
	require.Nil(t, arg)

	cond, arg = stateCond(model.StateCurrent, now)
	require.Equal(t, ` AND b.start_date <= $2 AND b.end_date > $2`, cond)
	require.Equal(t, now, arg)

	cond, arg = stateCond(model.StatePast, now)
	require.Equal(t, ` AND b.end_date < $2`, cond)
	require.Equal(t, now, arg)

	cond, arg = stateCond(model.StateFuture, now)
	require.Equal(t, ` AND b.start_date > $2`, cond)
	require.Equal(t, now, arg)

	cond, arg = stateCond(model.StateWaiting, now)
	require.Equal(t, ` AND b.status = $2`, cond)
	require.Equal(t, model.StatusWaiting, arg)

	cond, arg = stateCond(model.StateRejected, now)
	require.Equal(t, ` AND b.status = $2`, cond)
	require.Equal(t, model.StatusRejected, arg)
}

func TestStateCond_Unmatched(t *testing.T) {
	cond, arg := stateCond(model.BookingState("NOPE"), time.Now())
	require.Equal(t, ` AND false`, cond)
	require.Nil(t, arg)
}

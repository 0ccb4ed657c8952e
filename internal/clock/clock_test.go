package clock

import (
	"testing"
	"time"

	"github.com/dekarrin/ggpagent/internal/ggerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Timer_Check_expires(t *testing.T) {
	tmr := New(10*time.Millisecond, 0)
	assert.NoError(t, tmr.Check())

	time.Sleep(20 * time.Millisecond)

	err := tmr.Check()
	require.Error(t, err)
	assert.True(t, ggerrors.Is(err, ggerrors.KindTimeUp))
}

func Test_Timer_nil_never_expires(t *testing.T) {
	var tmr *Timer
	assert.NoError(t, tmr.Check())
}

func Test_Scope_disallows_nesting(t *testing.T) {
	var sc Scope

	_, leave, err := sc.Enter(time.Second, 0)
	require.NoError(t, err)

	_, _, err = sc.Enter(time.Second, 0)
	assert.Error(t, err)

	leave()

	_, leave2, err := sc.Enter(time.Second, 0)
	require.NoError(t, err)
	leave2()
}

package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/ggpagent/internal/ggerrors"
	"github.com/dekarrin/ggpagent/server/match"
)

func Test_Registry_Create_Get_Remove(t *testing.T) {
	r := match.NewRegistry()
	assert.Equal(t, 0, r.Len())

	m := &match.Match{ID: "g1"}
	require.NoError(t, r.Create(m))
	assert.Equal(t, 1, r.Len())

	got, err := r.Get("g1")
	require.NoError(t, err)
	assert.Same(t, m, got)

	r.Remove("g1")
	assert.Equal(t, 0, r.Len())
}

func Test_Registry_Create_duplicate(t *testing.T) {
	r := match.NewRegistry()
	require.NoError(t, r.Create(&match.Match{ID: "g1"}))

	err := r.Create(&match.Match{ID: "g1"})
	require.Error(t, err)
	assert.True(t, ggerrors.Is(err, ggerrors.KindDuplicateGameID))
}

func Test_Registry_Get_unknown(t *testing.T) {
	r := match.NewRegistry()
	_, err := r.Get("nope")
	require.Error(t, err)
	assert.True(t, ggerrors.Is(err, ggerrors.KindUnknownGameID))
}

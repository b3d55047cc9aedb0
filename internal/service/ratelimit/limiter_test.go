package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllowWithinBurst(t *testing.T) {
	t.Parallel()
	l := New(3, 0)

	require.True(t, l.Allow("k"))
	require.True(t, l.Allow("k"))
	require.True(t, l.Allow("k"))
	require.False(t, l.Allow("k"))
}

func TestAllowKeysIndependent(t *testing.T) {
	t.Parallel()
	l := New(1, 0)

	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("a"))
	require.True(t, l.Allow("b"))
}

func TestPerMinute(t *testing.T) {
	t.Parallel()
	l := PerMinute(5)

	for i := 0; i < 5; i++ {
		require.Truef(t, l.Allow("k"), "call %d should pass", i)
	}
	require.False(t, l.Allow("k"))
}

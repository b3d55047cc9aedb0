package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errSentinel = errors.New("sentinel")

func TestObservationEqual(t *testing.T) {
	t.Parallel()

	vol := 100.0
	volSame := 100.0
	volOther := 200.0

	a := Observation{Date: "2024-01-01", Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: &vol}

	b := a
	b.Volume = &volSame
	require.True(t, a.Equal(b))

	b.Volume = &volOther
	require.False(t, a.Equal(b))

	b.Volume = nil
	require.False(t, a.Equal(b))

	c := a
	c.Close = 9
	require.False(t, a.Equal(c))

	noVol := Observation{Date: "2024-01-01", Open: 1, High: 2, Low: 0.5, Close: 1.5}
	require.True(t, noVol.Equal(noVol))
}

func TestParseAssetClass(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]AssetClass{
		"stocks":      AssetStock,
		"forex":       AssetForex,
		"commodities": AssetCommodity,
		"etfs":        AssetETF,
	} {
		got, err := ParseAssetClass(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.Equal(t, in, got.Plural())
	}

	_, err := ParseAssetClass("bonds")
	require.Error(t, err)
	require.True(t, IsFault(err, FaultUnsupportedAssetClass))
}

func TestFaultKindOf(t *testing.T) {
	t.Parallel()

	err := NewFaultWrap(FaultProviderError, "fetch", errSentinel)
	require.Equal(t, FaultProviderError, FaultKindOf(err))
	require.ErrorIs(t, err, errSentinel)

	require.Equal(t, FaultKind(""), FaultKindOf(errSentinel))
}

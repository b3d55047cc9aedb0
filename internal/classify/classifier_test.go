package classify

import (
	"testing"

	"SeriesVault/internal/domain/models"

	"github.com/stretchr/testify/require"
)

func TestClassifyStock(t *testing.T) {
	t.Parallel()

	cls, err := Classify("aapl", "stocks")
	require.NoError(t, err)
	require.Equal(t, "AAPL", cls.Symbol)
	require.Equal(t, models.AssetStock, cls.Class)
	require.Equal(t, models.FuncDailySeries, cls.Function)
}

func TestClassifyETF(t *testing.T) {
	t.Parallel()

	cls, err := Classify("  voo ", "etfs")
	require.NoError(t, err)
	require.Equal(t, "VOO", cls.Symbol)
	require.Equal(t, models.AssetETF, cls.Class)
	require.Equal(t, models.FuncDailySeries, cls.Function)
}

func TestClassifyForex(t *testing.T) {
	t.Parallel()

	cls, err := Classify("eur_usd", "forex")
	require.NoError(t, err)
	require.Equal(t, "EUR_USD", cls.Symbol)
	require.Equal(t, models.AssetForex, cls.Class)
	require.Equal(t, models.FuncFXDaily, cls.Function)
}

func TestClassifyForexMissingSeparator(t *testing.T) {
	t.Parallel()

	for _, ticker := range []string{"EURUSD", "EUR_", "_USD", "_"} {
		_, err := Classify(ticker, "forex")
		require.Errorf(t, err, "expected error for %q", ticker)
		require.True(t, models.IsFault(err, models.FaultInvalidSymbolFormat))
	}
}

func TestClassifyCommodityProxy(t *testing.T) {
	t.Parallel()

	cls, err := Classify("gld", "commodities")
	require.NoError(t, err)
	require.Equal(t, "GLD", cls.Symbol)
	require.Equal(t, models.AssetCommodity, cls.Class)
	require.Equal(t, models.FuncDailySeries, cls.Function)
}

func TestClassifyCommodityUnknownProxy(t *testing.T) {
	t.Parallel()

	_, err := Classify("AAPL", "commodities")
	require.Error(t, err)
	require.True(t, models.IsFault(err, models.FaultInvalidSymbolFormat))
}

func TestClassifyUnsupportedClass(t *testing.T) {
	t.Parallel()

	for _, hint := range []string{"crypto", "bonds", ""} {
		_, err := Classify("AAPL", hint)
		require.Errorf(t, err, "expected error for %q", hint)
		require.True(t, models.IsFault(err, models.FaultUnsupportedAssetClass))
	}
}

func TestClassifyEmptyTicker(t *testing.T) {
	t.Parallel()

	_, err := Classify("   ", "stocks")
	require.Error(t, err)
	require.True(t, models.IsFault(err, models.FaultInvalidSymbolFormat))
}

// Same input always maps to the same classification.
func TestClassifyDeterministic(t *testing.T) {
	t.Parallel()

	first, err := Classify("MSFT", "stocks")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Classify("MSFT", "stocks")
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

// Every supported class either classifies or returns a typed fault;
// no ticker panics or falls through.
func TestClassifyTotality(t *testing.T) {
	t.Parallel()

	tickers := []string{"AAPL", "eur_usd", "GLD", "???", "", "BRK.B", "a/b"}
	hints := []string{"stocks", "forex", "commodities", "etfs", "unknown"}
	for _, ticker := range tickers {
		for _, hint := range hints {
			cls, err := Classify(ticker, hint)
			if err != nil {
				kind := models.FaultKindOf(err)
				require.Containsf(t,
					[]models.FaultKind{models.FaultUnsupportedAssetClass, models.FaultInvalidSymbolFormat},
					kind, "unexpected fault kind %q for (%q, %q)", kind, ticker, hint)
				continue
			}
			require.NotEmpty(t, cls.Symbol)
			require.NotEmpty(t, cls.Function)
		}
	}
}

func TestCommodityProxiesCopy(t *testing.T) {
	t.Parallel()

	m := CommodityProxies()
	require.Contains(t, m, "GLD")
	m["GLD"] = "mutated"

	fresh := CommodityProxies()
	require.NotEqual(t, "mutated", fresh["GLD"])
}

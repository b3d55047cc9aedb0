package classify

import (
	"fmt"
	"strings"

	"SeriesVault/internal/domain/models"
)

// Classification carries everything the rest of the pipeline needs to
// fetch and store a symbol: the canonical storage key, its asset class,
// and the provider function that serves it.
type Classification struct {
	Symbol   string
	Class    models.AssetClass
	Function models.ProviderFunction
}

// commodityProxies is the fixed allow-list of ETF proxies accepted as
// commodities, each pinned to one real-world commodity. Proxies trade
// like stocks, so they are fetched with the stock daily function.
var commodityProxies = map[string]string{
	"GLD":  "gold",
	"SLV":  "silver",
	"USO":  "crude oil",
	"UNG":  "natural gas",
	"CPER": "copper",
	"DBA":  "agriculture",
	"WEAT": "wheat",
	"CORN": "corn",
}

// Classify maps a requested ticker and asset-class hint to a canonical
// symbol, its class, and the provider function to fetch it with.
// Deterministic and total over the four documented classes.
func Classify(ticker, hint string) (Classification, error) {
	class, err := models.ParseAssetClass(strings.TrimSpace(hint))
	if err != nil {
		return Classification{}, err
	}

	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	if symbol == "" {
		return Classification{}, models.NewFault(models.FaultInvalidSymbolFormat, "empty symbol")
	}

	switch class {
	case models.AssetForex:
		from, to, ok := strings.Cut(symbol, "_")
		if !ok || from == "" || to == "" {
			return Classification{}, models.NewFault(models.FaultInvalidSymbolFormat,
				fmt.Sprintf("forex symbol %q must be in FROM_TO form", symbol))
		}
		return Classification{Symbol: symbol, Class: class, Function: models.FuncFXDaily}, nil

	case models.AssetCommodity:
		if _, ok := commodityProxies[symbol]; !ok {
			return Classification{}, models.NewFault(models.FaultInvalidSymbolFormat,
				fmt.Sprintf("%q is not a known commodity proxy", symbol))
		}
		return Classification{Symbol: symbol, Class: class, Function: models.FuncDailySeries}, nil

	default: // stock, etf
		return Classification{Symbol: symbol, Class: class, Function: models.FuncDailySeries}, nil
	}
}

// CommodityProxies returns the allow-list keyed by proxy ticker.
func CommodityProxies() map[string]string {
	out := make(map[string]string, len(commodityProxies))
	for k, v := range commodityProxies {
		out[k] = v
	}
	return out
}

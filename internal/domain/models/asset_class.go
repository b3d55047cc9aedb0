package models

import "fmt"

// AssetClass is the closed set of asset classes the pipeline serves.
// It is resolved once at classification time; nothing deeper in the
// pipeline branches on raw request strings.
type AssetClass string

const (
	AssetStock     AssetClass = "stock"
	AssetForex     AssetClass = "forex"
	AssetCommodity AssetClass = "commodity"
	AssetETF       AssetClass = "etf"
)

// ParseAssetClass maps a request "type" value to an AssetClass.
func ParseAssetClass(s string) (AssetClass, error) {
	switch s {
	case "stocks":
		return AssetStock, nil
	case "forex":
		return AssetForex, nil
	case "commodities":
		return AssetCommodity, nil
	case "etfs":
		return AssetETF, nil
	default:
		return "", NewFault(FaultUnsupportedAssetClass, fmt.Sprintf("unsupported asset class %q", s))
	}
}

// AllAssetClasses lists every class in a stable order. Store scans and
// cache materialization iterate this.
func AllAssetClasses() []AssetClass {
	return []AssetClass{AssetStock, AssetForex, AssetCommodity, AssetETF}
}

// Plural returns the request/cache key for the class ("stock" -> "stocks").
func (c AssetClass) Plural() string {
	switch c {
	case AssetStock:
		return "stocks"
	case AssetForex:
		return "forex"
	case AssetCommodity:
		return "commodities"
	case AssetETF:
		return "etfs"
	default:
		return string(c)
	}
}

// ProviderFunction identifies which provider API function fetches a symbol.
type ProviderFunction string

const (
	// FuncDailySeries is the stock-style daily time series. Commodities
	// are fetched with it too, via their ETF proxies.
	FuncDailySeries ProviderFunction = "TIME_SERIES_DAILY"
	// FuncFXDaily is the daily foreign exchange series.
	FuncFXDaily ProviderFunction = "FX_DAILY"
)

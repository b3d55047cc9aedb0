package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"SeriesVault/internal/domain/models"
	drepo "SeriesVault/internal/domain/repository"
	"SeriesVault/internal/service/ratelimit"
	xhttp "SeriesVault/pkg/http"
	applogger "SeriesVault/pkg/logger"
	xutil "SeriesVault/pkg/util"
)

// Client implements a SeriesProvider backed by the Alpha Vantage REST API.
type Client struct {
	baseURL    string
	apiKey     string
	outputSize string
	timeout    time.Duration

	http    *xhttp.Client
	limiter *ratelimit.Limiter
	l       *applogger.Logger
}

// New creates a new Alpha Vantage SeriesProvider. requestsPerMinute
// bounds outbound calls client-side; 0 disables the bound.
func New(baseURL, apiKey, outputSize string, timeout time.Duration, requestsPerMinute int, l *applogger.Logger) drepo.SeriesProvider {
	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		outputSize: outputSize,
		timeout:    timeout,
		http:       xhttp.NewClient(xhttp.WithTimeout(timeout)),
		l:          l,
	}
	if requestsPerMinute > 0 {
		c.limiter = ratelimit.PerMinute(requestsPerMinute)
	}
	return c
}

// payload covers every response shape the provider sends for daily
// series: an error body, a throttle note, or one of the two series maps.
type payload struct {
	ErrorMessage string                       `json:"Error Message"`
	Note         string                       `json:"Note"`
	Information  string                       `json:"Information"`
	Daily        map[string]map[string]string `json:"Time Series (Daily)"`
	FXDaily      map[string]map[string]string `json:"Time Series FX (Daily)"`
}

// FetchDaily performs one outbound request for the symbol's daily
// series and returns observations ordered by date ascending. The call
// is bounded by the configured timeout; expiry surfaces as ProviderError.
func (c *Client) FetchDaily(ctx context.Context, fn models.ProviderFunction, symbol string) ([]models.Observation, error) {
	if c.limiter != nil && !c.limiter.Allow(c.apiKey) {
		return nil, models.NewFault(models.FaultRateLimited,
			fmt.Sprintf("request budget exhausted, skipping fetch for %s", symbol))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL,
		QueryParams: c.queryParams(fn, symbol),
	}, &body)
	if err != nil {
		return nil, models.NewFaultWrap(models.FaultProviderError,
			fmt.Sprintf("fetch %s %s", fn, symbol), err)
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, models.NewFaultWrap(models.FaultProviderError,
			fmt.Sprintf("decode response for %s: %s", symbol, truncate(body, 200)), err)
	}

	if p.ErrorMessage != "" {
		return nil, models.NewFault(models.FaultProviderError, p.ErrorMessage)
	}
	if p.Note != "" {
		return nil, models.NewFault(models.FaultRateLimited, p.Note)
	}
	if p.Information != "" {
		return nil, models.NewFault(models.FaultRateLimited, p.Information)
	}

	series := p.Daily
	withVolume := true
	if fn == models.FuncFXDaily {
		series = p.FXDaily
		withVolume = false
	}
	if series == nil {
		return nil, models.NewFault(models.FaultProviderError,
			fmt.Sprintf("unexpected response shape for %s: %s", symbol, truncate(body, 200)))
	}

	obs, err := normalize(series, withVolume)
	if err != nil {
		return nil, models.NewFaultWrap(models.FaultProviderError,
			fmt.Sprintf("normalize series for %s", symbol), err)
	}

	c.l.Debug("provider fetch ok",
		applogger.String("symbol", symbol),
		applogger.String("function", string(fn)),
		applogger.Int("observations", len(obs)),
		applogger.Duration("duration", time.Since(start)),
	)
	return obs, nil
}

func (c *Client) queryParams(fn models.ProviderFunction, symbol string) map[string][]string {
	params := map[string][]string{
		"function": {string(fn)},
		"apikey":   {c.apiKey},
	}
	if fn == models.FuncFXDaily {
		from, to, _ := strings.Cut(symbol, "_")
		params["from_symbol"] = []string{from}
		params["to_symbol"] = []string{to}
	} else {
		params["symbol"] = []string{symbol}
		params["outputsize"] = []string{c.outputSize}
	}
	return params
}

// normalize converts the provider's date-keyed map (newest-first by
// convention, unordered as a JSON object) into a date-ascending slice.
func normalize(series map[string]map[string]string, withVolume bool) ([]models.Observation, error) {
	dates := make([]string, 0, len(series))
	for d := range series {
		if _, ok := xutil.ParseDay(d); !ok {
			return nil, fmt.Errorf("malformed date key %q", d)
		}
		dates = append(dates, d)
	}
	// YYYY-MM-DD sorts chronologically as plain strings.
	sort.Strings(dates)

	out := make([]models.Observation, 0, len(dates))
	for _, d := range dates {
		bar := series[d]
		o := models.Observation{Date: d}
		var err error
		if o.Open, err = field(bar, "1. open"); err != nil {
			return nil, err
		}
		if o.High, err = field(bar, "2. high"); err != nil {
			return nil, err
		}
		if o.Low, err = field(bar, "3. low"); err != nil {
			return nil, err
		}
		if o.Close, err = field(bar, "4. close"); err != nil {
			return nil, err
		}
		if withVolume {
			v, err := field(bar, "5. volume")
			if err != nil {
				return nil, err
			}
			o.Volume = &v
		}
		out = append(out, o)
	}
	return out, nil
}

func field(bar map[string]string, key string) (float64, error) {
	raw, ok := bar[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse field %q value %q: %w", key, raw, err)
	}
	return v, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

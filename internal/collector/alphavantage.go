package collector

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"InvestLens/internal/model"
)

const alphaVantageBaseURL = "https://www.alphavantage.co/query"

// AlphaVantageFetcher implements Fetcher using the Alpha Vantage
// TIME_SERIES_DAILY endpoint. Requires an API key.
type AlphaVantageFetcher struct {
	BaseURL string
	APIKey  string
	client  *resty.Client
}

// NewAlphaVantageFetcher creates a new Alpha Vantage fetcher with optional
// proxy support.
func NewAlphaVantageFetcher(apiKey, proxyURL string) *AlphaVantageFetcher {
	client := resty.New().SetTimeout(30 * time.Second)
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &AlphaVantageFetcher{
		BaseURL: alphaVantageBaseURL,
		APIKey:  apiKey,
		client:  client,
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

// avDailyResponse is the TIME_SERIES_DAILY payload. Alpha Vantage reports
// errors and rate limits inside a 200 response body.
type avDailyResponse struct {
	TimeSeries map[string]struct {
		Open   string `json:"1. open"`
		High   string `json:"2. high"`
		Low    string `json:"3. low"`
		Close  string `json:"4. close"`
		Volume string `json:"5. volume"`
	} `json:"Time Series (Daily)"`
	ErrorMessage string `json:"Error Message"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
}

func (f *AlphaVantageFetcher) FetchDailyBars(symbol string, window Window) ([]model.Bar, error) {
	outputSize := "compact" // most recent 100 rows
	if window.Days() > 100 {
		outputSize = "full"
	}

	resp, err := f.client.R().
		SetQueryParams(map[string]string{
			"function":   "TIME_SERIES_DAILY",
			"symbol":     symbol,
			"outputsize": outputSize,
			"apikey":     f.APIKey,
		}).
		Get(f.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("alphavantage: status %d, body: %s", resp.StatusCode(), resp.String())
	}

	var payload avDailyResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	if payload.ErrorMessage != "" {
		return nil, fmt.Errorf("alphavantage api error: %s", payload.ErrorMessage)
	}
	if payload.Note != "" {
		return nil, fmt.Errorf("alphavantage rate limited: %s", payload.Note)
	}
	if len(payload.TimeSeries) == 0 {
		if payload.Information != "" {
			return nil, fmt.Errorf("alphavantage: %s", payload.Information)
		}
		return nil, fmt.Errorf("alphavantage: %w", ErrNoData)
	}

	bars := make([]model.Bar, 0, len(payload.TimeSeries))
	for date, row := range payload.TimeSeries {
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("alphavantage: bad date %q: %w", date, err)
		}
		bar, err := parseAVBar(t, row.Open, row.High, row.Low, row.Close, row.Volume)
		if err != nil {
			return nil, fmt.Errorf("alphavantage: bad row for %s: %w", date, err)
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return trimToWindow(bars, window), nil
}

func parseAVBar(t time.Time, open, high, low, cls, volume string) (model.Bar, error) {
	var bar model.Bar
	var err error
	bar.Time = t
	if bar.Open, err = strconv.ParseFloat(open, 64); err != nil {
		return bar, err
	}
	if bar.High, err = strconv.ParseFloat(high, 64); err != nil {
		return bar, err
	}
	if bar.Low, err = strconv.ParseFloat(low, 64); err != nil {
		return bar, err
	}
	if bar.Close, err = strconv.ParseFloat(cls, 64); err != nil {
		return bar, err
	}
	if bar.Volume, err = strconv.ParseFloat(volume, 64); err != nil {
		return bar, err
	}
	return bar, nil
}

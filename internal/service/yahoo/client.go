package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	xhttp "StockPulse/pkg/http"
	"StockPulse/pkg/util"
)

// Client implements MarketData over the Yahoo Finance v8 chart API.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

// New creates a Yahoo chart client. proxyURL may be empty.
func New(baseURL string, timeout time.Duration, proxyURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: xhttp.NewClient(
			xhttp.WithTimeout(timeout),
			xhttp.WithProxy(proxyURL),
			xhttp.WithHeader("User-Agent", "Mozilla/5.0"),
			xhttp.WithHeader("Accept", "application/json"),
		),
	}
}

func (c *Client) Name() string { return "yahoo" }

// chartResponse mirrors the parts of /v8/finance/chart we read. Nullable
// numbers are pointers so holidays and halted sessions decode as nil.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string `json:"symbol"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
				GMTOffset            int    `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Fetch returns daily bars whose calendar date falls in [start, end).
func (c *Client) Fetch(ctx context.Context, ticker string, start, end time.Time) (*models.PriceSeries, error) {
	if !start.Before(end) {
		return nil, models.ErrInvalidRange
	}

	var chart chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v8/finance/chart/" + url.PathEscape(ticker),
		QueryParams: map[string][]string{
			"period1":              {strconv.FormatInt(start.Unix(), 10)},
			"period2":              {strconv.FormatInt(end.Unix(), 10)},
			"interval":             {"1d"},
			"events":               {"history"},
			"includeAdjustedClose": {"true"},
		},
	}, &chart)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) && se.StatusCode == 404 {
			return nil, fmt.Errorf("%w: %s not found", models.ErrNoData, ticker)
		}
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrNoData, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, models.ErrNoData
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	var adj []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}
	loc := exchangeLocation(result.Meta.ExchangeTimezoneName, result.Meta.GMTOffset)

	series := &models.PriceSeries{Ticker: ticker, HasAdjClose: len(adj) > 0}
	seen := make(map[time.Time]int, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, h, l, cl := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
		if o == nil || h == nil || l == nil || cl == nil {
			continue
		}
		date := util.CalendarDate(time.Unix(ts, 0), loc)
		if date.Before(start) || !date.Before(end) {
			continue
		}
		bar := models.Bar{Date: date, Open: *o, High: *h, Low: *l, Close: *cl}
		if v := at(quote.Volume, i); v != nil {
			bar.Volume = *v
		}
		if v := at(adj, i); v != nil {
			bar.AdjClose = *v
		} else {
			bar.AdjClose = *cl
		}
		// Yahoo may append an intraday bar for a date it already returned.
		if j, dup := seen[date]; dup {
			series.Bars[j] = bar
			continue
		}
		seen[date] = len(series.Bars)
		series.Bars = append(series.Bars, bar)
	}

	if len(series.Bars) == 0 {
		return nil, models.ErrNoData
	}
	sort.Slice(series.Bars, func(i, j int) bool { return series.Bars[i].Date.Before(series.Bars[j].Date) })
	return series, nil
}

func at(xs []*float64, i int) *float64 {
	if i < 0 || i >= len(xs) {
		return nil
	}
	return xs[i]
}

func exchangeLocation(name string, gmtOffset int) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.FixedZone("exchange", gmtOffset)
}

var _ drepo.MarketData = (*Client)(nil)

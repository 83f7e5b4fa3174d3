package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
)

const chartBody = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "AAPL", "exchangeTimezoneName": "America/New_York", "gmtoffset": -18000},
      "timestamp": [1709130600, 1709044200, 1709217000, 1709303400, 1709562600],
      "indicators": {
        "quote": [{
          "open":   [181.27, 182.51, null, 179.55, 176.15],
          "high":   [182.57, 183.12, null, 180.53, 176.90],
          "low":    [179.53, 180.13, null, 177.38, 173.79],
          "close":  [180.75, 181.42, null, 179.66, 175.10],
          "volume": [136682600, 48953900, null, 73488000, 81510100]
        }],
        "adjclose": [{"adjclose": [179.90, 180.57, null, 178.82, 174.28]}]
      }
    }],
    "error": null
  }
}`

func TestFetchParsesAndOrdersBars(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/AAPL" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chartBody))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, "")
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	s, err := c.Fetch(context.Background(), "AAPL", start, end)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !strings.Contains(gotQuery, "interval=1d") || !strings.Contains(gotQuery, "period1=1706745600") {
		t.Fatalf("unexpected query %s", gotQuery)
	}
	// null bar dropped, 2024-03-04 is outside [start, end)
	if len(s.Bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(s.Bars))
	}
	want := []string{"2024-02-27", "2024-02-28", "2024-03-01"}
	for i, w := range want {
		if got := s.Bars[i].Date.Format("2006-01-02"); got != w {
			t.Fatalf("bar %d: want %s got %s", i, w, got)
		}
	}
	if s.Bars[0].Close != 181.42 || s.Bars[2].AdjClose != 178.82 {
		t.Fatalf("unexpected values %+v", s.Bars)
	}
	if !s.HasAdjClose {
		t.Fatalf("expected adj close column")
	}
}

func TestFetchProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second, "").Fetch(context.Background(), "ZZZZ",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, models.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestFetchEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":[{"meta":{},"timestamp":[],"indicators":{"quote":[{}]}}],"error":null}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second, "").Fetch(context.Background(), "AAPL",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, models.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second, "").Fetch(context.Background(), "AAPL",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	if err == nil || errors.Is(err, models.ErrNoData) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestFetchRejectsInvertedRange(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := New("http://127.0.0.1:0", time.Second, "").Fetch(context.Background(), "AAPL", d, d); !errors.Is(err, models.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

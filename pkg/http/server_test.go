package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type panicHandler struct{}

func (panicHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/boom", func(echo.Context) error { panic("boom") })
}

func TestServerInfraRoutes(t *testing.T) {
	s := NewServer([]Handler{panicHandler{}})

	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rec.Code)
	}
	var env APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil || env.Status != http.StatusOK {
		t.Fatalf("unexpected envelope %s (%v)", rec.Body.String(), err)
	}

	rec = httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected recovered panic to answer 500, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Fatalf("expected request metrics to be exported")
	}
}

func TestMetricsPathDisabled(t *testing.T) {
	s := NewServer(nil, WithMetricsPath(""))
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCORSAllowList(t *testing.T) {
	s := NewServer(nil, WithCORS("https://charts.example.com"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(echo.HeaderOrigin, "https://charts.example.com")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "https://charts.example.com" {
		t.Fatalf("expected origin to be echoed, got %q", got)
	}
	if rec.Header().Get(echo.HeaderAccessControlAllowCredentials) != "true" {
		t.Fatalf("expected credentials to be allowed")
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(echo.HeaderOrigin, "https://evil.example.com")
	rec = httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "" {
		t.Fatalf("unexpected allow origin %q", got)
	}

	off := NewServer(nil)
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(echo.HeaderOrigin, "https://charts.example.com")
	rec = httptest.NewRecorder()
	off.Echo().ServeHTTP(rec, req)
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "" {
		t.Fatalf("cors should be off by default, got %q", got)
	}
}

type ipHandler struct{}

func (ipHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ip", func(c echo.Context) error { return c.String(http.StatusOK, c.RealIP()) })
}

func realIP(t *testing.T, s *Server, peer, xff string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.RemoteAddr = peer
	req.Header.Set(echo.HeaderXForwardedFor, xff)
	req.Header.Set(echo.HeaderXRealIP, xff)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec.Body.String()
}

func TestRealIPIgnoresUntrustedForwarding(t *testing.T) {
	s := NewServer([]Handler{ipHandler{}})
	if got := realIP(t, s, "203.0.113.7:5555", "198.51.100.1"); got != "203.0.113.7" {
		t.Fatalf("forwarded header must be ignored without trusted proxies, got %q", got)
	}

	s = NewServer([]Handler{ipHandler{}}, WithTrustedProxies("10.0.0.0/8"))
	if got := realIP(t, s, "10.1.2.3:5555", "198.51.100.1"); got != "198.51.100.1" {
		t.Fatalf("expected client address from trusted proxy, got %q", got)
	}
	if got := realIP(t, s, "203.0.113.7:5555", "198.51.100.1"); got != "203.0.113.7" {
		t.Fatalf("untrusted peer must not set the client address, got %q", got)
	}
}

type sampleRequest struct {
	Name    string `query:"name" validate:"required"`
	Horizon int    `query:"horizon" validate:"gte=1,lte=90"`
	Column  string `query:"column" default:"close" validate:"oneof=open close"`
}

func TestReadAndValidateRequest(t *testing.T) {
	e := echo.New()

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?name=a&horizon=10", nil), httptest.NewRecorder())
	req := sampleRequest{}
	if errs := ReadAndValidateRequest(c, &req); errs != nil {
		t.Fatalf("unexpected errors %+v", errs)
	}
	if req.Column != "close" {
		t.Fatalf("expected default column, got %q", req.Column)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/?horizon=91", nil), httptest.NewRecorder())
	errs := ReadAndValidateRequest(c, &sampleRequest{})
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %+v", errs)
	}
	codes := map[string]bool{}
	for _, e := range errs {
		codes[e.Code] = true
	}
	if !codes["ERR_REQUIRED"] || !codes["ERR_LTE"] {
		t.Fatalf("unexpected codes %v", codes)
	}
	for _, e := range errs {
		if e.Code == "ERR_LTE" && (e.Field != "horizon" || e.Message != "horizon must be at most 90" || e.Params["max"] != "90") {
			t.Fatalf("unexpected horizon error %+v", e)
		}
	}
}

func TestValidateRequestKeepsPrefill(t *testing.T) {
	req := sampleRequest{Name: "x", Horizon: 5, Column: "open"}
	if errs := ValidateRequest(context.Background(), &req); errs != nil {
		t.Fatalf("unexpected errors %+v", errs)
	}
	if req.Column != "open" {
		t.Fatalf("prefilled value overwritten: %q", req.Column)
	}
}

func TestAppErrorResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if err := AppErrorResponse(c, FetchError("upstream down")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if rec.Code != http.StatusBadGateway || !strings.Contains(rec.Body.String(), "ERR_FETCH") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

package server

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/rushteam/outfit"
	"github.com/rushteam/outfit/catalog"
	"github.com/rushteam/outfit/core"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	cat, err := catalog.New([]core.ClothingItem{
		{Name: "A", Type: core.CategoryTop, Color: "black", Purpose: core.PurposeCasual, TempMin: 10, TempMax: 20, Image: "a.png"},
		{Name: "B", Type: core.CategoryTop, Color: "red", Purpose: core.PurposeFormal, TempMin: 0, TempMax: 10, Image: "b.png"},
		{Name: "C", Type: core.CategoryBottom, Color: "white", Purpose: core.PurposeCasual, TempMin: 10, TempMax: 20, Image: "c.png"},
		{Name: "D", Type: core.CategoryBottom, Color: "blue", Purpose: core.PurposeFormal, TempMin: 0, TempMax: 10, Image: "d.png"},
	})
	if err != nil {
		t.Fatal(err)
	}
	e, err := outfit.New(cat)
	if err != nil {
		t.Fatal(err)
	}
	return New(e, opts...)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return v
}

func TestRecommend(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/api/v1/recommend?temperature=15&purpose=Casual")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	resp := decode[recommendResponse](t, rec)
	if resp.NoMatch || len(resp.Pairs) != 1 {
		t.Fatalf("resp = %+v", resp)
	}
	p := resp.Pairs[0]
	if p.Top.Name != "A" || p.Bottom.Name != "C" {
		t.Errorf("pair = %s/%s", p.Top.Name, p.Bottom.Name)
	}
	if math.Abs(p.Score-2.2) > 1e-9 {
		t.Errorf("score = %v", p.Score)
	}
	if p.Top.Image != "a.png" {
		t.Errorf("image = %q", p.Top.Image)
	}
	if resp.Query.Purpose != "casual" {
		t.Errorf("query = %+v", resp.Query)
	}
}

func TestRecommend_Limit(t *testing.T) {
	s := newTestServer(t, WithDefaultLimit(2))
	if got := decode[recommendResponse](t, get(t, s, "/api/v1/recommend")); len(got.Pairs) != 2 {
		t.Errorf("default limit: pairs = %d, want 2", len(got.Pairs))
	}
	if got := decode[recommendResponse](t, get(t, s, "/api/v1/recommend?limit=10")); len(got.Pairs) != 4 {
		t.Errorf("limit=10: pairs = %d, want 4", len(got.Pairs))
	}
}

func TestRecommend_NoMatch(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/api/v1/recommend?color=neon")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[recommendResponse](t, rec)
	if !resp.NoMatch || len(resp.Pairs) != 0 {
		t.Errorf("resp = %+v", resp)
	}
	if !strings.Contains(rec.Body.String(), `"pairs":[]`) {
		t.Errorf("pairs should encode as empty array: %s", rec.Body.String())
	}
}

func TestRecommend_BadRequest(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name  string
		query string
		field string
	}{
		{"unknown purpose", "purpose=party", "recommendRequest.Purpose"},
		{"temperature not a number", "temperature=warm", ""},
		{"temperature NaN", "temperature=NaN", ""},
		{"temperature too high", "temperature=60", "recommendRequest.Temperature"},
		{"limit zero", "limit=0", "recommendRequest.Limit"},
		{"limit not a number", "limit=many", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, "/api/v1/recommend?"+tt.query)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			resp := decode[errorResponse](t, rec)
			if resp.Error.Code != core.ErrorCodeInvalidInput {
				t.Errorf("code = %q", resp.Error.Code)
			}
			if tt.field != "" && (len(resp.Error.Fields) != 1 || resp.Error.Fields[0].Field != tt.field) {
				t.Errorf("fields = %+v, want %s", resp.Error.Fields, tt.field)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/api/v1/catalog")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[catalogResponse](t, rec)
	if resp.Count != 4 || len(resp.Items) != 4 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Items[0].Name != "A" || resp.Items[0].TempAvg != 15 {
		t.Errorf("first item = %+v", resp.Items[0])
	}
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	if rec := get(t, s, "/healthz"); rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d", rec.Code)
	}
	get(t, s, "/api/v1/catalog")
	rec := get(t, s, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "outfit_http_requests_total") {
		t.Error("metrics missing outfit_http_requests_total")
	}
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t)
	if rec := get(t, s, "/api/v2/recommend"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

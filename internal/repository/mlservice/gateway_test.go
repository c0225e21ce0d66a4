//go:build !integration

package mlservice

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"styleMarket/domain"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

func scoreOf(r domain.RemoteRecommendation) string {
	if r.Score == nil {
		return "null"
	}
	b, _ := json.Marshal(*r.Score)
	return string(b)
}

func TestClient_NotConfigured(t *testing.T) {
	client := NewClient(Config{BaseURL: "  "})

	if client.Configured() {
		t.Fatal("Configured() = true for blank base url")
	}

	_, err := client.Similar(context.Background(), "p1", 10)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Similar() error = %v, want ErrNotConfigured", err)
	}
	if errors.Is(err, ErrUnreachable) {
		t.Error("not configured must be distinct from unreachable")
	}
}

func TestClient_SimilarFlatList(t *testing.T) {
	var gotPath, gotQuery string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		respond(`[
			{"product_id": "p1", "score": 0.5},
			{"productId": "p2", "score": "0.25"},
			{"id": 7},
			{"score": 1},
			{"product_id": "p1", "score": 0.1},
			{"id": 0},
			"junk",
			{"product_id": "p3", "score": null},
			{"product_id": "p4", "score": "high"}
		]`)(w, r)
	})

	client := NewClient(Config{BaseURL: srv.URL})
	recs, err := client.Similar(context.Background(), "target", 5)
	if err != nil {
		t.Fatalf("Similar() error = %v", err)
	}

	if gotPath != "/recs/similar" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "limit=5&product_id=target" {
		t.Errorf("query = %q", gotQuery)
	}

	want := []struct{ id, score string }{
		{"p1", "0.5"},
		{"p2", "0.25"},
		{"7", "null"},
		{"p3", "null"},
		{"p4", "null"},
	}
	if len(recs) != len(want) {
		t.Fatalf("Similar() = %+v, want %d entries", recs, len(want))
	}
	for i, w := range want {
		if recs[i].ProductID != w.id || scoreOf(recs[i]) != w.score {
			t.Errorf("entry %d = (%s, %s), want (%s, %s)", i, recs[i].ProductID, scoreOf(recs[i]), w.id, w.score)
		}
	}
}

func TestNormalize_WrappedItems(t *testing.T) {
	recs, err := Normalize([]byte(`{"items": [{"id": "a", "score": 0}, {"product_id": "b"}], "model": "v2"}`))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(recs) != 2 || recs[0].ProductID != "a" || recs[1].ProductID != "b" {
		t.Fatalf("Normalize() = %+v", recs)
	}
	if recs[0].Score == nil || *recs[0].Score != 0 {
		t.Errorf("score 0 must be kept, got %s", scoreOf(recs[0]))
	}
	if recs[1].Score != nil {
		t.Errorf("missing score = %s, want null", scoreOf(recs[1]))
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	first, err := Normalize([]byte(`{"items": [{"productId": "x", "score": 2}, {"id": "y"}, {"id": "x"}]}`))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	flat := make([]map[string]any, 0, len(first))
	for _, r := range first {
		flat = append(flat, map[string]any{"product_id": r.ProductID, "score": r.Score})
	}
	body, _ := json.Marshal(flat)

	second, err := Normalize(body)
	if err != nil {
		t.Fatalf("Normalize(flat) error = %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %+v vs %+v", first, second)
	}
	for i := range first {
		if first[i].ProductID != second[i].ProductID || scoreOf(first[i]) != scoreOf(second[i]) {
			t.Errorf("entry %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestNormalize_InvalidShapes(t *testing.T) {
	bodies := []string{
		``,
		`not json`,
		`"a string"`,
		`42`,
		`null`,
		`{"foo": []}`,
		`{"items": {"id": "a"}}`,
		`{"items": null}`,
		`[{"id": "a"`,
	}

	for _, body := range bodies {
		if _, err := Normalize([]byte(body)); !errors.Is(err, ErrBadResponse) {
			t.Errorf("Normalize(%q) error = %v, want ErrBadResponse", body, err)
		}
	}
}

func TestNormalize_EmptyListIsValid(t *testing.T) {
	recs, err := Normalize([]byte(`{"items": []}`))
	if err != nil || len(recs) != 0 {
		t.Errorf("Normalize() = %v, %v, want empty and no error", recs, err)
	}
}

func TestClient_BadResponse(t *testing.T) {
	srv := newTestServer(t, respond(`<html>oops</html>`))

	_, err := NewClient(Config{BaseURL: srv.URL}).Similar(context.Background(), "p", 1)
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("error = %v, want ErrBadResponse", err)
	}
}

func TestClient_BadStatus(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := NewClient(Config{BaseURL: srv.URL}).Similar(context.Background(), "p", 1)
	if !errors.Is(err, ErrBadStatus) {
		t.Fatalf("error = %v, want ErrBadStatus", err)
	}
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) || gwErr.Status != http.StatusBadGateway || gwErr.Reason() != "bad_status" {
		t.Errorf("GatewayError = %+v", gwErr)
	}
}

func TestClient_TimeoutWithinBudget(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(3 * time.Second):
		}
	})

	client := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := client.Similar(context.Background(), "p", 1)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("error = %v, want ErrTimeout", err)
	}
	if elapsed > time.Second {
		t.Errorf("timeout took %v, want close to the 50ms budget", elapsed)
	}
}

func TestClient_PerRequestTimeoutOverridesDefault(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(3 * time.Second):
		}
	})

	client := NewClient(Config{BaseURL: srv.URL, Timeout: time.Minute})

	start := time.Now()
	_, err := client.FetchRecommendations(context.Background(), Request{Path: "/recs/similar", Timeout: 30 * time.Millisecond})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("error = %v, want ErrTimeout", err)
	}
	if time.Since(start) > time.Second {
		t.Errorf("request outlived its own budget")
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := NewClient(Config{BaseURL: base}).Similar(context.Background(), "p", 1)
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("error = %v, want ErrUnreachable", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("unreachable must be distinct from timeout")
	}
}

func TestClient_InvalidBaseURL(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "not a url"}).Similar(context.Background(), "p", 1)
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("error = %v, want ErrUnreachable", err)
	}
}

func TestClient_ListQueryValuesRepeat(t *testing.T) {
	var got map[string][]string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		respond(`[]`)(w, r)
	})

	_, err := NewClient(Config{BaseURL: srv.URL}).FetchRecommendations(context.Background(), Request{
		Path: "/recs/similar",
		Query: map[string]any{
			"category": []string{"outerwear", "shoes"},
			"ids":      []any{1, "two", nil},
			"limit":    5,
			"skip":     nil,
		},
	})
	if err != nil {
		t.Fatalf("FetchRecommendations() error = %v", err)
	}

	if c := got["category"]; len(c) != 2 || c[0] != "outerwear" || c[1] != "shoes" {
		t.Errorf("category = %v", c)
	}
	if ids := got["ids"]; len(ids) != 2 || ids[0] != "1" || ids[1] != "two" {
		t.Errorf("ids = %v", ids)
	}
	if l := got["limit"]; len(l) != 1 || l[0] != "5" {
		t.Errorf("limit = %v", l)
	}
	if _, ok := got["skip"]; ok {
		t.Error("nil query value was sent")
	}
}

func TestClient_PersonalPostsProfile(t *testing.T) {
	var (
		method, contentType, auth string
		body                      map[string]any
		limit                     string
	)
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		auth = r.Header.Get("Authorization")
		limit = r.URL.Query().Get("limit")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		respond(`{"items": [{"product_id": "p9", "score": 0.7}]}`)(w, r)
	})

	client := NewClient(Config{BaseURL: srv.URL, Username: "reco", Password: "secret"})
	profile := domain.PreferenceProfile{
		Categories: []string{"outerwear"},
		PriceRange: &domain.PriceRange{Min: 900, Max: 1300},
	}

	recs, err := client.Personal(context.Background(), profile, 3)
	if err != nil {
		t.Fatalf("Personal() error = %v", err)
	}
	if len(recs) != 1 || recs[0].ProductID != "p9" {
		t.Errorf("Personal() = %+v", recs)
	}

	if method != http.MethodPost || contentType != "application/json" {
		t.Errorf("method/content-type = %s %s", method, contentType)
	}
	if auth != "Basic cmVjbzpzZWNyZXQ=" {
		t.Errorf("Authorization = %q", auth)
	}
	if limit != "3" {
		t.Errorf("limit = %q", limit)
	}
	if _, ok := body["brands"]; ok {
		t.Error("empty brands should be omitted")
	}
	if pr, ok := body["priceRange"].([]any); !ok || len(pr) != 2 {
		t.Errorf("priceRange = %v", body["priceRange"])
	}
}

func TestClient_ForUserQuery(t *testing.T) {
	var path, user string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		user = r.URL.Query().Get("user_id")
		respond(`[]`)(w, r)
	})

	if _, err := NewClient(Config{BaseURL: srv.URL}).ForUser(context.Background(), 42, 20); err != nil {
		t.Fatalf("ForUser() error = %v", err)
	}
	if path != "/recs/personalized" || user != "42" {
		t.Errorf("path=%q user_id=%q", path, user)
	}
}

func TestClient_OpenBreakerFailsFast(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := NewClient(Config{BaseURL: srv.URL})
	for i := 0; i < 10; i++ {
		if _, err := client.Similar(context.Background(), "p", 1); !errors.Is(err, ErrBadStatus) {
			t.Fatalf("call %d error = %v, want ErrBadStatus", i, err)
		}
	}

	_, err := client.Similar(context.Background(), "p", 1)
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("error after trip = %v, want ErrUnreachable", err)
	}
	if got := hits.Load(); got != 10 {
		t.Errorf("server hits = %d, want 10", got)
	}
}

func TestGatewayError_Reason(t *testing.T) {
	kinds := map[error]string{
		ErrNotConfigured: "not_configured",
		ErrTimeout:       "timeout",
		ErrUnreachable:   "unreachable",
		ErrBadStatus:     "bad_status",
		ErrBadResponse:   "bad_response",
	}
	for kind, want := range kinds {
		err := newError(kind, "/x", 0, nil)
		if got := err.Reason(); got != want {
			t.Errorf("Reason(%v) = %q, want %q", kind, got, want)
		}
		if !errors.Is(err, kind) {
			t.Errorf("errors.Is(%v) = false", kind)
		}
	}
}

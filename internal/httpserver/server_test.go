package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/robalobadob/wordle-placer/internal/session"
	"github.com/robalobadob/wordle-placer/internal/store"
)

func newTestServer() *Server {
	return New(store.NewMemoryStore(), Config{
		SessionSecret: "test_secret",
		Settings:      session.Settings{MaxPerLetter: 2},
	})
}

func do(t *testing.T, s *Server, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) viewRes {
	t.Helper()
	var v viewRes
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func fingerprintsOf(v viewRes) []string {
	out := make([]string, len(v.Candidates))
	for i, c := range v.Candidates {
		out[i] = c.Fingerprint
	}
	return out
}

func TestHealthAndAlphabet(t *testing.T) {
	s := newTestServer()
	if rec := do(t, s, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("/health = %d", rec.Code)
	}

	rec := do(t, s, http.MethodGet, "/alphabet", "", "")
	var res alphabetRes
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if len(res.Letters) != 22 || len(res.FinalPairs) != 5 || res.SlotCount != 5 {
		t.Fatalf("alphabet = %+v", res)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
		t.Fatalf("content type = %q", got)
	}
}

func TestNotFoundIsJSON(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/nope", "", "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), `"not_found"`) {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestSolveStateless(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []string
		warning bool
		status  int
	}{
		{
			name: "fixed and pool",
			body: `{"fixed":["","","","","ת"],"pool":"בב"}`,
			want: []string{"בב__ת", "ב_ב_ת", "ב__בת", "_בב_ת", "_ב_בת", "__בבת"},
		},
		{
			name: "bans and dismissed",
			body: `{"fixed":["","","","","ת"],"pool":"בב","bans":[{"letter":"ב","position":0}],"dismissed":["_ב_בת"]}`,
			want: []string{"_בב_ת", "__בבת"},
		},
		{
			name:    "too many known letters",
			body:    `{"fixed":["א","ב","ג","",""],"pool":"דהו"}`,
			want:    []string{},
			warning: true,
		},
		{name: "bad json", body: `{`, status: http.StatusBadRequest},
		{name: "bad ban", body: `{"pool":"א","bans":[{"letter":"א","position":7}]}`, status: http.StatusBadRequest},
		{name: "too many fixed cells", body: `{"fixed":["","","","","",""]}`, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(), http.MethodPost, "/solve", "", tt.body)
			status := tt.status
			if status == 0 {
				status = http.StatusOK
			}
			if rec.Code != status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, status, rec.Body.String())
			}
			if status != http.StatusOK {
				return
			}
			v := decodeView(t, rec)
			if got := fingerprintsOf(v); !slices.Equal(got, tt.want) {
				t.Fatalf("candidates = %q, want %q", got, tt.want)
			}
			if (v.Warning != nil) != tt.warning {
				t.Fatalf("warning = %+v", v.Warning)
			}
			if tt.warning && (v.Warning.Kind != "TooManyKnownLetters" || v.Warning.Provided != 3 || v.Warning.Free != 2) {
				t.Fatalf("warning = %+v", v.Warning)
			}
		})
	}
}

func TestSolveDisplayUsesFinalForm(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/solve", "", `{"fixed":["ש","ל","ו","","מ"]}`)
	v := decodeView(t, rec)
	if len(v.Candidates) != 1 {
		t.Fatalf("candidates = %+v", v.Candidates)
	}
	c := v.Candidates[0]
	if c.Fingerprint != "שלו_מ" || c.Display != "שלו_ם" || c.Slots[4] != "ם" {
		t.Fatalf("candidate = %+v", c)
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodPost, "/session/new", "", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("new = %d", rec.Code)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Fatalf("no session cookie set")
	}
	var created newSessionRes
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	tok := created.Token
	if tok == "" || created.View.SessionID == "" {
		t.Fatalf("new session = %+v", created)
	}
	if got := fingerprintsOf(created.View); !slices.Equal(got, []string{"_____"}) {
		t.Fatalf("initial = %q", got)
	}

	rec = do(t, s, http.MethodPut, "/session/input", tok, `{"fixed":["","","","","ת"],"pool":"ב ב"}`)
	v := decodeView(t, rec)
	if v.Count != 6 || v.Pool != "בב" || !v.PoolRewritten {
		t.Fatalf("input view = %+v", v)
	}

	rec = do(t, s, http.MethodPost, "/session/ban", tok, `{"letter":"ב","position":0}`)
	v = decodeView(t, rec)
	if got := fingerprintsOf(v); !slices.Equal(got, []string{"_בב_ת", "_ב_בת", "__בבת"}) {
		t.Fatalf("after ban = %q", got)
	}

	rec = do(t, s, http.MethodPost, "/session/dismiss", tok, `{"fingerprint":"_ב_בת"}`)
	v = decodeView(t, rec)
	if got := fingerprintsOf(v); !slices.Equal(got, []string{"_בב_ת", "__בבת"}) {
		t.Fatalf("after dismiss = %q", got)
	}

	rec = do(t, s, http.MethodGet, "/session/", tok, "")
	v = decodeView(t, rec)
	if v.Count != 2 || len(v.Bans) != 1 || len(v.Dismissed) != 1 {
		t.Fatalf("get view = %+v", v)
	}

	if rec := do(t, s, http.MethodPost, "/session/ban", tok, `{"letter":"בב","position":0}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad ban = %d", rec.Code)
	}

	if rec := do(t, s, http.MethodDelete, "/session/", tok, ""); rec.Code != http.StatusOK {
		t.Fatalf("delete = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/session/", tok, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete = %d", rec.Code)
	}
}

func TestSessionRequiresValidToken(t *testing.T) {
	s := newTestServer()
	if rec := do(t, s, http.MethodGet, "/session/", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/session/", "garbage", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token = %d", rec.Code)
	}

	other := New(store.NewMemoryStore(), Config{SessionSecret: "other"})
	tok, _, err := other.signToken("some-id")
	if err != nil {
		t.Fatal(err)
	}
	if rec := do(t, s, http.MethodGet, "/session/", tok, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("foreign token = %d", rec.Code)
	}

	tok, _, _ = s.signToken("unknown-id")
	if rec := do(t, s, http.MethodGet, "/session/", tok, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown session = %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodOptions, "/solve", "", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("origin = %q", got)
	}
}

func TestSessionTokenSlidesWithActivity(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := New(store.NewMemoryStore(), Config{SessionSecret: "test_secret", SessionTTL: time.Hour})
	s.now = func() time.Time { return clock }

	rec := do(t, s, http.MethodPost, "/session/new", "", "")
	var created newSessionRes
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	first := created.Token
	tok := first

	// Each edit lands inside the TTL of the previous token but, taken
	// together, well past the TTL of the first one.
	for step := 1; step <= 4; step++ {
		clock = clock.Add(40 * time.Minute)
		rec := do(t, s, http.MethodPut, "/session/input", tok, `{"fixed":["","","","","ת"],"pool":"בב"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("step %d: status = %d (%s)", step, rec.Code, rec.Body.String())
		}
		next := rec.Header().Get(tokenHeader)
		if next == "" {
			t.Fatalf("step %d: no refreshed token", step)
		}
		var cookie string
		for _, c := range rec.Result().Cookies() {
			if c.Name == "placer_session" {
				cookie = c.Value
			}
		}
		if cookie != next {
			t.Fatalf("step %d: cookie and header tokens differ", step)
		}
		tok = next
	}

	if rec := do(t, s, http.MethodGet, "/session/", tok, ""); rec.Code != http.StatusOK {
		t.Fatalf("active session rejected: %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/session/", first, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("stale first token = %d, want 401", rec.Code)
	}

	// Idle past the TTL: the latest token lapses too.
	clock = clock.Add(61 * time.Minute)
	if rec := do(t, s, http.MethodGet, "/session/", tok, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("idle token = %d, want 401", rec.Code)
	}
}

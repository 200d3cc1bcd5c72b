package httpserver

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	admindashboardservice "pledgewall/contexts/donation-pledges/admin-dashboard-service"
	auditservice "pledgewall/contexts/donation-pledges/audit-service"
	leaderboardservice "pledgewall/contexts/donation-pledges/leaderboard-service"
	pledgeservice "pledgewall/contexts/donation-pledges/pledge-service"
	"pledgewall/internal/platform/kv/memory"
)

func newTestServer(adminKey string) (*Server, *memory.Store) {
	store := memory.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	audit := auditservice.NewKVModule(store, logger)
	pledges := pledgeservice.NewKVModule(store, audit.Service, logger)
	leaderboard := leaderboardservice.NewModule(leaderboardservice.Dependencies{
		Pledges:  pledges.Repo,
		Limit:    20,
		Interval: time.Hour,
		Logger:   logger,
	})
	dashboard := admindashboardservice.NewModule(admindashboardservice.Dependencies{
		Pledges:    pledges.Repo,
		Audit:      audit.Service,
		AuditLimit: 100,
		Logger:     logger,
	})

	return New(pledges, audit, leaderboard, dashboard, adminKey, logger, ":0"), store
}

func postForm(handler http.Handler, path, session string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if session != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: session})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func pledgeForm(amount string) url.Values {
	return url.Values{
		"name":   {"Ada Lovelace"},
		"amount": {amount},
		"phone":  {"555-0100"},
		"email":  {"ada@example.com"},
	}
}

func TestRootRedirectsToPledge(t *testing.T) {
	server, _ := newTestServer("")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status %d, want 303", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/pledge" {
		t.Fatalf("location %q, want /pledge", got)
	}
}

func TestSessionCookieIssuedAndReissued(t *testing.T) {
	server, _ := newTestServer("")

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pledge", nil))

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("no session cookie issued")
	}
	if !cookie.HttpOnly || !cookie.Secure || cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie attributes wrong: %+v", cookie)
	}
	if cookie.MaxAge != sessionMaxAge || cookie.Path != "/" {
		t.Fatalf("cookie lifetime wrong: %+v", cookie)
	}

	// A returning visitor keeps their id; the cookie is refreshed anyway.
	req := httptest.NewRequest(http.MethodGet, "/pledge", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: cookie.Value})
	rec2 := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec2, req)

	reissued := rec2.Result().Cookies()
	if len(reissued) == 0 || reissued[0].Value != cookie.Value {
		t.Fatalf("session id not preserved on reissue")
	}
}

func TestPledgeSubmitCreatesAndRedirects(t *testing.T) {
	server, _ := newTestServer("")

	rec := postForm(server.Handler(), "/pledge", "visitor-1", pledgeForm("100"))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status %d, want 303, body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != "/pledge?success=true" {
		t.Fatalf("location %q", got)
	}

	pledge, found, err := server.pledges.Queries.GetBySession(context.Background(), "visitor-1")
	if err != nil || !found {
		t.Fatalf("pledge not stored: found=%v err=%v", found, err)
	}
	if pledge.Amount != 100 {
		t.Fatalf("amount %d, want 100", pledge.Amount)
	}
}

func TestPledgeSubmitRejectsBadAmount(t *testing.T) {
	server, _ := newTestServer("")

	rec := postForm(server.Handler(), "/pledge", "visitor-1", pledgeForm("lots"))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status %d, want 303", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/pledge?error=") {
		t.Fatalf("expected error redirect, got %q", location)
	}

	if _, found, _ := server.pledges.Queries.GetBySession(context.Background(), "visitor-1"); found {
		t.Fatalf("invalid submission must not store a pledge")
	}
}

func TestPledgePageShowsExistingPledge(t *testing.T) {
	server, _ := newTestServer("")
	postForm(server.Handler(), "/pledge", "visitor-1", pledgeForm("100"))

	req := httptest.NewRequest(http.MethodGet, "/pledge", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "visitor-1"})
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Update Pledge") {
		t.Fatalf("existing pledge not reflected in form")
	}
}

func TestLeaderboardPageRenders(t *testing.T) {
	server, _ := newTestServer("")
	postForm(server.Handler(), "/pledge", "visitor-1", pledgeForm("100"))

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leaderboard", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Ada Lovelace") {
		t.Fatalf("pledge missing from leaderboard page")
	}
}

func TestLeaderboardStreamSendsImmediateEvent(t *testing.T) {
	server, _ := newTestServer("")
	postForm(server.Handler(), "/pledge", "visitor-1", pledgeForm("100"))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/leaderboard", nil).WithContext(ctx)
	req.Header.Set("Accept", "text/event-stream")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type %q", ct)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "data: ") || !strings.Contains(body, `"totalAmount":100`) {
		t.Fatalf("unexpected stream payload: %q", body)
	}
}

func TestAdminPageRenders(t *testing.T) {
	server, _ := newTestServer("")
	postForm(server.Handler(), "/pledge", "visitor-1", pledgeForm("100"))

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin?search=ada", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "ada@example.com") || !strings.Contains(body, "Total pledged") {
		t.Fatalf("admin page missing expected content")
	}
}

func TestAdminDeleteAction(t *testing.T) {
	server, _ := newTestServer("")
	postForm(server.Handler(), "/pledge", "visitor-1", pledgeForm("100"))

	pledge, _, err := server.pledges.Queries.GetBySession(context.Background(), "visitor-1")
	if err != nil {
		t.Fatalf("seed lookup failed: %v", err)
	}

	rec := postForm(server.Handler(), "/admin", "", url.Values{
		"action": {"delete"},
		"id":     {pledge.ID},
	})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin" {
		t.Fatalf("delete redirect wrong: %d %q", rec.Code, rec.Header().Get("Location"))
	}

	all, err := server.pledges.Queries.ListAll(context.Background())
	if err != nil || len(all) != 0 {
		t.Fatalf("pledge survived delete: err=%v n=%d", err, len(all))
	}
	entries, err := server.audit.Service.ListRecent(context.Background(), 10)
	if err != nil || len(entries) != 1 || string(entries[0].Action) != "delete" {
		t.Fatalf("delete not audited: err=%v entries=%+v", err, entries)
	}
}

func TestAdminUpdateActionRejectsBlankName(t *testing.T) {
	server, _ := newTestServer("")
	postForm(server.Handler(), "/pledge", "visitor-1", pledgeForm("100"))

	pledge, _, err := server.pledges.Queries.GetBySession(context.Background(), "visitor-1")
	if err != nil {
		t.Fatalf("seed lookup failed: %v", err)
	}

	rec := postForm(server.Handler(), "/admin", "", url.Values{
		"action": {"update"},
		"id":     {pledge.ID},
		"name":   {"   "},
		"amount": {"50"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status %d, want 303", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.Contains(location, "error=") || !strings.Contains(location, "required") {
		t.Fatalf("validation failure must carry a specific message, got %q", location)
	}

	unchanged, err := server.pledges.Queries.GetByID(context.Background(), pledge.ID)
	if err != nil || unchanged.Name != "Ada Lovelace" || unchanged.Amount != 100 {
		t.Fatalf("rejected update must not change the pledge: err=%v %+v", err, unchanged)
	}
}

func TestAdminUpdateActionRejectsUnknownPledge(t *testing.T) {
	server, _ := newTestServer("")

	rec := postForm(server.Handler(), "/admin", "", url.Values{
		"action": {"update"},
		"id":     {"missing"},
		"name":   {"Nobody"},
		"amount": {"50"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status %d, want 303", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Location"), "error=") {
		t.Fatalf("expected error redirect, got %q", rec.Header().Get("Location"))
	}
}

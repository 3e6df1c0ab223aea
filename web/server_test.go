package web_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"goflix/models"
	"goflix/views"
	"goflix/web"
	"goflix/web/api"

	"github.com/rohanthewiz/rweb"
)

// fakeMetadataAPI answers list, search and video requests. Every listing
// holds one item titled after the endpoint so pages can be checked for it.
func fakeMetadataAPI(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/search/multi":
			fmt.Fprint(w, `{"results":[{"id":42,"media_type":"movie"}]}`)
		case "/movie/42/videos":
			fmt.Fprint(w, `{"results":[{"key":"XYZ123","site":"YouTube","type":"Trailer"}]}`)
		default:
			title := strings.Trim(r.URL.Path, "/")
			if g := r.URL.Query().Get("with_genres"); g != "" {
				title += " genre " + g
			}
			fmt.Fprintf(w, `{"results":[{"id":1,"title":%q,"overview":"About %s","backdrop_path":"/b.jpg","poster_path":"/p.jpg"}]}`, title, title)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

type testServer struct {
	baseURL string
	client  *http.Client
}

// setupTestServer starts the app on a dynamic port against a fake metadata API.
// opts adjust the configuration before the server is built.
func setupTestServer(t *testing.T, opts ...func(*models.Config)) *testServer {
	t.Helper()

	meta := fakeMetadataAPI(t)

	cfg := models.DefaultConfig()
	cfg.TMDBBaseURL = meta.URL
	cfg.TMDBAPIKey = "test-key"
	cfg.RateLimit = 1000
	cfg.CacheBackend = models.CacheNone
	for _, opt := range opts {
		opt(cfg)
	}

	client := models.NewMetadataClient(cfg)
	deps := views.Deps{
		Source:      client,
		Trailers:    models.NewTrailerFinder(client),
		Concurrency: cfg.FetchConcurrency,
	}

	signer, err := models.NewSessionSigner("test-secret-key-for-session-testing-32chars")
	if err != nil {
		t.Fatalf("failed to create signer: %v", err)
	}

	readyChan := make(chan struct{}, 1)
	srv := web.NewServer(&web.App{
		Config:   cfg,
		Registry: views.NewRegistry(cfg.SessionIdleTTL, func() *views.Home { return views.NewHome(deps) }),
		Signer:   signer,
	}, rweb.ServerOptions{
		ReadyChan: readyChan,
		Address:   "localhost:", // Dynamic port
	})

	go func() {
		_ = srv.Run()
	}()

	<-readyChan

	jar, _ := cookiejar.New(nil)
	return &testServer{
		baseURL: fmt.Sprintf("http://localhost:%s", srv.GetListenPort()),
		client:  &http.Client{Timeout: 5 * time.Second, Jar: jar},
	}
}

func (s *testServer) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := s.client.Get(s.baseURL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func (s *testServer) postForm(t *testing.T, path string, form url.Values) (int, string) {
	t.Helper()
	resp, err := s.client.PostForm(s.baseURL+path, form)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

// postFrom posts an empty form claiming to come from forwardedFor.
func (s *testServer) postFrom(t *testing.T, path, forwardedFor string) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, s.baseURL+path, strings.NewReader(""))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	resp, err := s.client.Do(req)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode
}

func (s *testServer) postJSON(t *testing.T, path string, payload any) (int, api.APIResponse) {
	t.Helper()
	b, _ := json.Marshal(payload)
	resp, err := s.client.Post(s.baseURL+path, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	var result api.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.StatusCode, result
}

// ============================================================================
// Home page and row fragments
// ============================================================================

func TestHomePage(t *testing.T) {
	server := setupTestServer(t)

	status, body := server.get(t, "/")
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", status)
	}

	expected := []string{
		"discover/tv", // banner from originals
		"About discover/tv",
		`id="row-0"`,
		"NETFLIX ORIGINALS",
		"Trending Now",
		"Browse by Genre",
		"trending/all/week",
		"/rows/1/items/0/click",
	}
	for _, want := range expected {
		if !strings.Contains(body, want) {
			t.Errorf("expected home page to contain %q", want)
		}
	}
	if strings.Contains(body, "youtube.com/embed") {
		t.Error("expected no trailer before any click")
	}
}

func TestRowClickTogglesTrailer(t *testing.T) {
	server := setupTestServer(t)
	server.get(t, "/")

	status, body := server.postForm(t, "/rows/1/items/0/click", nil)
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", status, body)
	}
	if !strings.Contains(body, "https://www.youtube.com/embed/XYZ123?autoplay=1") {
		t.Errorf("expected trailer embed in fragment, got %s", body)
	}
	if !strings.Contains(body, `id="row-1"`) {
		t.Error("expected the fragment to carry the row id")
	}

	_, body = server.postForm(t, "/rows/1/items/0/click", nil)
	if strings.Contains(body, "youtube.com/embed") {
		t.Error("expected second click to close the trailer")
	}
}

func TestRowClickErrors(t *testing.T) {
	server := setupTestServer(t)
	server.get(t, "/health") // session cookie only

	// No home mounted yet for this session
	if status, _ := server.postForm(t, "/rows/0/items/0/click", nil); status != http.StatusNotFound {
		t.Errorf("expected 404 before mount, got %d", status)
	}

	server.get(t, "/")

	if status, _ := server.postForm(t, "/rows/99/items/0/click", nil); status != http.StatusNotFound {
		t.Errorf("expected 404 for unknown row, got %d", status)
	}
	if status, _ := server.postForm(t, "/rows/1/items/5/click", nil); status != http.StatusNotFound {
		t.Errorf("expected 404 for unknown item, got %d", status)
	}
}

func TestRowClickRateLimit(t *testing.T) {
	const attempts = 40 // burst plus more refill than a quick loop can earn

	// countLimited clicks from a new address each time and counts 429s
	countLimited := func(server *testServer) int {
		limited := 0
		for i := range attempts {
			status := server.postFrom(t, "/rows/99/items/0/click", fmt.Sprintf("10.0.0.%d", i+1))
			if status == http.StatusTooManyRequests {
				limited++
			}
		}
		return limited
	}

	t.Run("forwarded address is ignored by default", func(t *testing.T) {
		server := setupTestServer(t)
		server.get(t, "/")

		if limited := countLimited(server); limited == 0 {
			t.Error("expected rotating X-Forwarded-For to share one bucket")
		}
	})

	t.Run("trusted proxy keys by forwarded address", func(t *testing.T) {
		server := setupTestServer(t, func(cfg *models.Config) { cfg.TrustProxy = true })
		server.get(t, "/")

		if limited := countLimited(server); limited != 0 {
			t.Errorf("expected each forwarded address to get its own bucket, %d limited", limited)
		}
	})
}

func TestRowEndpointChange(t *testing.T) {
	server := setupTestServer(t)
	server.get(t, "/")

	genreRow := len(models.HomeRows)

	status, body := server.postForm(t, fmt.Sprintf("/rows/%d/endpoint", genreRow),
		url.Values{"endpoint": {models.EndpointHorror}})
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", status, body)
	}
	if !strings.Contains(body, "discover/movie genre 27") {
		t.Errorf("expected horror listing in fragment, got %s", body)
	}

	status, _ = server.postForm(t, fmt.Sprintf("/rows/%d/endpoint", genreRow),
		url.Values{"endpoint": {"/account/1/favorite"}})
	if status != http.StatusBadRequest {
		t.Errorf("expected 400 for non-catalog endpoint, got %d", status)
	}
}

// ============================================================================
// Login
// ============================================================================

func TestLoginModeSwitch(t *testing.T) {
	server := setupTestServer(t)

	status, body := server.get(t, "/login")
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", status)
	}
	if !strings.Contains(body, "Sign In") || !strings.Contains(body, "New to Netflix?") {
		t.Error("expected SignIn form")
	}
	if strings.Contains(body, `name="name"`) {
		t.Error("expected no name field in SignIn")
	}

	_, body = server.postForm(t, "/login/mode", url.Values{"mode": {"signup"}, "email": {"ada@example.com"}})
	if !strings.Contains(body, "Sign Up") || !strings.Contains(body, `name="name"`) {
		t.Error("expected SignUp form with a name field")
	}
	if !strings.Contains(body, "Already have Account?") {
		t.Error("expected switch back to sign in")
	}
	if !strings.Contains(body, "ada@example.com") {
		t.Error("expected typed email to be kept")
	}

	if status, _ := server.postForm(t, "/login/mode", url.Values{"mode": {"admin"}}); status != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown mode, got %d", status)
	}

	// Reloading starts over in SignIn
	_, body = server.get(t, "/login")
	if strings.Contains(body, `name="name"`) {
		t.Error("expected reload to reset to SignIn")
	}
}

// ============================================================================
// JSON API
// ============================================================================

func TestAPIHomeAndClick(t *testing.T) {
	server := setupTestServer(t)

	status, body := server.get(t, "/api/v1/home")
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", status)
	}

	var result struct {
		Success bool           `json:"success"`
		Data    api.HomeOutput `json:"data"`
	}
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result.Success || result.Data.Banner == nil {
		t.Fatal("expected a banner in the home snapshot")
	}
	if len(result.Data.Rows) != len(models.HomeRows)+1 {
		t.Errorf("expected %d rows, got %d", len(models.HomeRows)+1, len(result.Data.Rows))
	}
	if got := result.Data.Rows[0].Items[0].ImageURL; got != models.DefaultImageBaseURL+"/p.jpg" {
		t.Errorf("expected poster URL for the large row, got %q", got)
	}

	status, resp := server.postJSON(t, "/api/v1/rows/2/click", map[string]int{"index": 0})
	if status != http.StatusOK || !resp.Success {
		t.Fatalf("expected click to succeed, got %d %q", status, resp.Error)
	}
	row, _ := resp.Data.(map[string]interface{})
	if row["trailer_id"] != "XYZ123" {
		t.Errorf("expected trailer XYZ123, got %v", row["trailer_id"])
	}

	// Closing click, then an out of range index
	server.postJSON(t, "/api/v1/rows/2/click", map[string]int{"index": 0})
	status, resp = server.postJSON(t, "/api/v1/rows/2/click", map[string]int{"index": 50})
	if status != http.StatusBadRequest || resp.Success {
		t.Errorf("expected 400 for out of range index, got %d", status)
	}

	status, _ = server.postJSON(t, "/api/v1/rows/2/click", map[string]string{})
	if status != http.StatusBadRequest {
		t.Errorf("expected 400 for missing index, got %d", status)
	}
}

func TestAPICatalogAndHealth(t *testing.T) {
	server := setupTestServer(t)

	status, body := server.get(t, "/api/v1/catalog")
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", status)
	}
	var result struct {
		Data api.CatalogOutput `json:"data"`
	}
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result.Data.Rows) != len(models.HomeRows)+1 {
		t.Errorf("expected %d catalog rows, got %d", len(models.HomeRows)+1, len(result.Data.Rows))
	}
	if len(result.Data.Genres) != len(models.Genres) {
		t.Errorf("expected %d genres, got %d", len(models.Genres), len(result.Data.Genres))
	}

	status, body = server.get(t, "/health")
	if status != http.StatusOK || !strings.Contains(body, "healthy") {
		t.Errorf("expected healthy response, got %d %s", status, body)
	}
}

func TestStaticAssets(t *testing.T) {
	server := setupTestServer(t)

	if status, body := server.get(t, "/static/css/app.css"); status != http.StatusOK || !strings.Contains(body, ".banner") {
		t.Errorf("expected stylesheet, got %d", status)
	}
	if status, _ := server.get(t, "/static/css/missing.css"); status != http.StatusNotFound {
		t.Errorf("expected 404 for missing asset, got %d", status)
	}

	t.Run("versioned stylesheet is cached for good", func(t *testing.T) {
		resp, err := server.client.Get(server.baseURL + "/static/css/app.css?v=1")
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		resp.Body.Close()

		if cc := resp.Header.Get("Cache-Control"); !strings.Contains(cc, "immutable") {
			t.Errorf("expected immutable caching, got %q", cc)
		}
		if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
			t.Errorf("expected text/css, got %q", ct)
		}
		if resp.Header.Get("ETag") == "" {
			t.Error("expected an ETag")
		}
	})

	t.Run("matching etag is not modified", func(t *testing.T) {
		resp, err := server.client.Get(server.baseURL + "/favicon.ico")
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		resp.Body.Close()
		etag := resp.Header.Get("ETag")

		req, _ := http.NewRequest(http.MethodGet, server.baseURL+"/favicon.ico", nil)
		req.Header.Set("If-None-Match", etag)
		resp, err = server.client.Do(req)
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusNotModified {
			t.Errorf("expected 304, got %d", resp.StatusCode)
		}
	})
}

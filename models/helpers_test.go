package models_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"goflix/models"
)

const testAPIKey = "test-key"

// fakeTMDB is an httptest server answering a fixed set of paths with JSON.
type fakeTMDB struct {
	*httptest.Server
	hits atomic.Int64
}

func newFakeTMDB(t *testing.T, routes map[string]string) *fakeTMDB {
	t.Helper()

	f := &fakeTMDB{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		if r.URL.Query().Get("api_key") != testAPIKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(f.Close)
	return f
}

func testConfig(baseURL string) *models.Config {
	cfg := models.DefaultConfig()
	cfg.TMDBBaseURL = baseURL
	cfg.TMDBAPIKey = testAPIKey
	cfg.RequestTimeout = 2 * time.Second
	cfg.RateLimit = 1000
	return cfg
}

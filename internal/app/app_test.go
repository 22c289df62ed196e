package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/config"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	return config.Config{
		HTTPAddr:              ":0",
		StoreBackend:          config.StoreMemory,
		ScheduleLocation:      time.UTC,
		UtilizationMaxWorkers: 2,
		CacheEnabled:          true,
		CacheTTL:              time.Minute,
	}
}

func TestNewHTTPServer_MemoryDemoLeague(t *testing.T) {
	app, err := NewHTTPServer(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, app.Close()) })

	rec := httptest.NewRecorder()
	app.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leagues/demo-hockey-2025/lineups/2025-10-07", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestNewHTTPServer_SeedSchedulePaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Winter League.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date,Visitor,Home\n2025-12-01,Alpha,Beta\n"), 0o600))

	cfg := memoryConfig()
	cfg.SeedSchedulePaths = []string{path}
	app, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leagues/winter-league/teams", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	app.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leagues/demo-hockey-2025", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewHTTPServer_Rejections(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	_, err := NewHTTPServer(context.Background(), cfg, nil)
	require.Error(t, err)

	cfg = memoryConfig()
	cfg.SeedSchedulePaths = []string{filepath.Join(t.TempDir(), "missing.csv")}
	_, err = NewHTTPServer(context.Background(), cfg, nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}

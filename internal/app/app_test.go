package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/draft-companion/internal/config"
	"github.com/riskibarqy/draft-companion/internal/domain/league"
	"github.com/riskibarqy/draft-companion/internal/domain/roster"
	"github.com/riskibarqy/draft-companion/internal/platform/logging"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:              config.EnvDev,
		ServiceName:         "draft-companion-api",
		HTTPAddr:            ":0",
		CORSAllowedOrigins:  []string{"*"},
		MetricsEnabled:      true,
		CatalogSource:       config.CatalogSourceMemory,
		CatalogTimeout:      time.Second,
		SettingsStore:       config.SettingsStoreMemory,
		DraftAutoPickDelay:  time.Millisecond,
		DraftExplainWorkers: 1,
	}
}

func TestNew_ServesHealthAndMetrics(t *testing.T) {
	a, err := New(context.Background(), testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer func() { _ = a.Shutdown(context.Background()) }()

	for _, path := range []string{"/healthz", "/metrics"} {
		rec := httptest.NewRecorder()
		a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestNew_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false
	a, err := New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer func() { _ = a.Shutdown(context.Background()) }()

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with metrics disabled, got %d", rec.Code)
	}
}

func TestNew_EmptyAddr(t *testing.T) {
	cfg := testConfig()
	cfg.HTTPAddr = ""
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}

func TestNew_DraftFlowWithFileSettings(t *testing.T) {
	cfg := testConfig()
	cfg.SettingsStore = config.SettingsStoreFile
	cfg.SettingsFile = filepath.Join(t.TempDir(), "league.yaml")

	a, err := New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer func() { _ = a.Shutdown(context.Background()) }()

	rec := httptest.NewRecorder()
	body := `{"leagueName":"Office","numTeams":4,"draftPosition":2,"roster":{"PG":1,"C":1},"benchSlots":1}`
	req := httptest.NewRequest(http.MethodPut, "/v1/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	a.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("save settings: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/drafts", strings.NewReader(`{}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create draft: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewSettingsRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		repo, err := newSettingsRepository(testConfig(), nil)
		if err != nil {
			t.Fatalf("new repository: %v", err)
		}
		if err := repo.Save(ctx, league.DefaultSettings()); err != nil {
			t.Fatalf("save: %v", err)
		}
		if _, ok, err := repo.Get(ctx); err != nil || !ok {
			t.Fatalf("expected stored settings, ok=%v err=%v", ok, err)
		}
	})

	t.Run("postgres without db", func(t *testing.T) {
		cfg := testConfig()
		cfg.SettingsStore = config.SettingsStorePostgres
		if _, err := newSettingsRepository(cfg, nil); err == nil {
			t.Fatalf("expected error without a database handle")
		}
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := testConfig()
		cfg.SettingsStore = "redis"
		if _, err := newSettingsRepository(cfg, nil); err == nil {
			t.Fatalf("expected error for unknown store")
		}
	})
}

func TestNewRosterExportRepository_Memory(t *testing.T) {
	ctx := context.Background()
	repo := newRosterExportRepository(nil)
	if err := repo.Save(ctx, roster.Export{DraftID: "d1", LeagueName: "Office"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := repo.GetLatest(ctx)
	if err != nil || !ok {
		t.Fatalf("expected latest export, ok=%v err=%v", ok, err)
	}
	if got.DraftID != "d1" {
		t.Fatalf("unexpected draft id: %q", got.DraftID)
	}
}

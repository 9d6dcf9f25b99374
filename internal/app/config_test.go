package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"yatra/internal/api"
	"yatra/internal/app"
	"yatra/internal/apitest"
	"yatra/internal/store"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{app.EnvAPIURL, app.EnvTimeout, app.EnvLogLevel, app.EnvPassphrase} {
		t.Setenv(k, "")
	}
}

func write(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	cfg, err := app.LoadConfig(home, app.Overrides{})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Home != home || cfg.BaseURL != api.DefaultBaseURL || cfg.Timeout != api.DefaultTimeout {
		t.Fatalf("defaults: %+v", cfg)
	}
}

func TestLoadConfig_Layering(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	write(t, filepath.Join(home, "config.yml"), "base_url: http://yaml.example/api\ntimeout: 20s\nlog_level: info\n")
	write(t, filepath.Join(home, ".env"), "YATRA_LOG_LEVEL=debug\nYATRA_TIMEOUT=30\n")

	cfg, err := app.LoadConfig(home, app.Overrides{})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BaseURL != "http://yaml.example/api" {
		t.Fatalf("base url from yaml: %q", cfg.BaseURL)
	}
	if cfg.LogLevel != "debug" || cfg.Timeout != 30*time.Second {
		t.Fatalf(".env layer: %+v", cfg)
	}

	t.Setenv(app.EnvAPIURL, "http://env.example/api")
	t.Setenv(app.EnvTimeout, "5s")
	cfg, err = app.LoadConfig(home, app.Overrides{})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BaseURL != "http://env.example/api" || cfg.Timeout != 5*time.Second {
		t.Fatalf("env layer: %+v", cfg)
	}

	cfg, err = app.LoadConfig(home, app.Overrides{BaseURL: "http://flag.example/api", LogLevel: "ERROR"})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BaseURL != "http://flag.example/api" || cfg.LogLevel != "error" {
		t.Fatalf("flag layer: %+v", cfg)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	if _, err := app.LoadConfig(home, app.Overrides{BaseURL: "not a url"}); err == nil {
		t.Fatal("want invalid url error")
	}
	if _, err := app.LoadConfig(home, app.Overrides{LogLevel: "loud"}); err == nil {
		t.Fatal("want invalid level error")
	}
	t.Setenv(app.EnvTimeout, "soon")
	if _, err := app.LoadConfig(home, app.Overrides{}); err == nil {
		t.Fatal("want invalid timeout error")
	}
}

func TestNewWire_EndToEnd(t *testing.T) {
	clearEnv(t)
	srv, base := apitest.Start(t)
	if _, err := srv.AddUser("asha", "asha@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	home := t.TempDir()
	cfg, err := app.LoadConfig(home, app.Overrides{BaseURL: base, Passphrase: "hunter2"})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	var expired error
	cfg.OnLoginRequired = func(err error) { expired = err }
	w, err := app.NewWire(cfg)
	if err != nil {
		t.Fatalf("NewWire: %v", err)
	}
	t.Cleanup(w.Close)
	ctx := context.Background()
	if err := w.Session.Login(ctx, "asha", "s3cret-pass"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// The credential file is sealed with the passphrase.
	if _, _, err := store.NewFileStore(home, base).Get("access"); !errors.Is(err, store.ErrPassphraseRequired) {
		t.Fatalf("plaintext read: want ErrPassphraseRequired, got %v", err)
	}

	d, err := w.Dashboard.Load(ctx)
	if err != nil || d.User.Username != "asha" {
		t.Fatalf("Dashboard: %v %+v", err, d)
	}

	srv.RevokeAccessTokens()
	srv.FailRefresh(true)
	if _, err := w.Session.WhoAmI(ctx); !errors.Is(err, api.ErrLoginRequired) {
		t.Fatalf("want ErrLoginRequired, got %v", err)
	}
	if expired == nil {
		t.Fatal("login-required hook not called")
	}
}

func TestWire_CatalogRefreshAfterInvalidate(t *testing.T) {
	clearEnv(t)
	srv, base := apitest.Start(t)
	cfg, err := app.LoadConfig(t.TempDir(), app.Overrides{BaseURL: base})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	w, err := app.NewWire(cfg)
	if err != nil {
		t.Fatalf("NewWire: %v", err)
	}
	defer w.Close()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := w.Catalog.Routes(ctx, ""); err != nil {
			t.Fatalf("Routes: %v", err)
		}
	}
	if n := srv.Hits("/bus-routes/"); n != 1 {
		t.Fatalf("want one fetch while cached, got %d", n)
	}
	w.Catalog.Invalidate()
	if _, err := w.Catalog.Routes(ctx, ""); err != nil {
		t.Fatalf("Routes: %v", err)
	}
	if n := srv.Hits("/bus-routes/"); n != 2 {
		t.Fatalf("want a refetch after Invalidate, got %d", n)
	}
	w.Close()
}

package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Store.Backend != StoreBackendRedis {
		t.Fatalf("default backend = %q, want redis", cfg.Store.Backend)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("default port = %d, want 8080", cfg.Server.Port)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("API_KEY", "hunter2")
	t.Setenv("PG_HOST", "db.internal")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Store.Backend != StoreBackendPostgres {
		t.Fatalf("backend = %q, want postgres", cfg.Store.Backend)
	}
	if cfg.Server.APIKey != "hunter2" {
		t.Fatalf("api key = %q", cfg.Server.APIKey)
	}
	if cfg.Postgres.Host != "db.internal" {
		t.Fatalf("postgres host = %q", cfg.Postgres.Host)
	}
	if cfg.Server.Port != 9000 {
		t.Fatalf("port = %d, want 9000", cfg.Server.Port)
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "tablestorage")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown store backend")
	}
}

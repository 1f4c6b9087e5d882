package toolconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	d := Default()
	if !d.CacheEnabled {
		t.Fatalf("expected CacheEnabled default true")
	}
	if d.DefaultEnvVarName != "ECONFIG_SETTINGS" {
		t.Fatalf("DefaultEnvVarName = %q, want ECONFIG_SETTINGS", d.DefaultEnvVarName)
	}
}

func TestLoadWithoutEnvVarReturnsDefaults(t *testing.T) {
	os.Unsetenv("ECONFIG_SETTINGS")
	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != Default() {
		t.Fatalf("Load() = %+v, want defaults", got)
	}
}

func TestLoadYAMLOverridesEnvVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("cache_enabled: false\nsearch_root: /srv/app\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("ECONFIG_SETTINGS", path)

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.CacheEnabled {
		t.Fatalf("expected CacheEnabled to be overridden to false")
	}
	if got.SearchRoot != "/srv/app" {
		t.Fatalf("SearchRoot = %q, want /srv/app", got.SearchRoot)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv("ECONFIG_SETTINGS", filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != Default() {
		t.Fatalf("Load() = %+v, want defaults on missing file", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadConfig(t *testing.T) {
	projectRoot, err := filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	var cfg Config

	cfg, err = ReadConfig(configPath)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Webserver.Port == 0 {
		t.Error("Webserver.Port should not be 0")
	}

	if cfg.Webserver.URL == "" {
		t.Error("Webserver.URL should not be empty")
	}

	if cfg.Store.Path == "" {
		t.Error("Store.Path should not be empty")
	}

	if cfg.Gita.Model == "" {
		t.Error("Gita.Model should not be empty")
	}
}

func TestReadConfig_EnvJSONOverride(t *testing.T) {
	projectRoot, err := filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	t.Setenv(EnvConfigJSON, `{"Title":"Override Portal","Webserver":{"Port":9090}}`)

	cfg, err := ReadConfig(configPath)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title != "Override Portal" {
		t.Errorf("Title = %q, want %q", cfg.Title, "Override Portal")
	}

	if cfg.Webserver.Port != 9090 {
		t.Errorf("Webserver.Port = %d, want 9090", cfg.Webserver.Port)
	}
}

func TestReadConfig_MissingFile(t *testing.T) {
	dir := t.TempDir() + string(os.PathSeparator)

	if _, err := ReadConfig(dir); err == nil {
		t.Error("ReadConfig() with missing main.toml should fail")
	}
}

func TestValidate_Defaults(t *testing.T) {
	cfg := Config{
		Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
		Store:     Store{Path: "./data/portal.db"},
	}

	if err := validate(&cfg); err != nil {
		t.Fatalf("validate() error = %v", err)
	}

	if cfg.Webserver.ShutDownTime != 5 {
		t.Errorf("ShutDownTime default = %d, want 5", cfg.Webserver.ShutDownTime)
	}
}

func TestValidate_Invalid(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero port", Config{Webserver: Webserver{URL: "u"}, Store: Store{Path: "p"}}},
		{"empty url", Config{Webserver: Webserver{Port: 1}, Store: Store{Path: "p"}}},
		{"empty store path", Config{Webserver: Webserver{Port: 1, URL: "u"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := validate(&tc.cfg); err == nil {
				t.Error("validate() should fail")
			}
		})
	}
}

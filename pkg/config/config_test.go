//go:build !integration

package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_PASSWORD", "pass")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("RECOMMENDER_URL", "")
	t.Setenv("RECOMMENDER_TIMEOUT_MS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Recommender.BaseURL != "" {
		t.Errorf("BaseURL = %q, want empty", cfg.Recommender.BaseURL)
	}
	if cfg.Recommender.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Recommender.Timeout)
	}
	if cfg.Server.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Server.Port)
	}
}

func TestLoad_Recommender(t *testing.T) {
	setRequired(t)
	t.Setenv("RECOMMENDER_URL", "http://ml:8000")
	t.Setenv("RECOMMENDER_TIMEOUT_MS", "250")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Recommender.BaseURL != "http://ml:8000" {
		t.Errorf("BaseURL = %q", cfg.Recommender.BaseURL)
	}
	if cfg.Recommender.Timeout != 250*time.Millisecond {
		t.Errorf("Timeout = %v, want 250ms", cfg.Recommender.Timeout)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing jwt secret", map[string]string{"JWT_SECRET": "", "DB_PASSWORD": "pass"}},
		{"missing db password", map[string]string{"JWT_SECRET": "s", "DB_PASSWORD": ""}},
		{"bad timeout", map[string]string{"JWT_SECRET": "s", "DB_PASSWORD": "p", "RECOMMENDER_TIMEOUT_MS": "soon"}},
		{"zero timeout", map[string]string{"JWT_SECRET": "s", "DB_PASSWORD": "p", "RECOMMENDER_TIMEOUT_MS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RECOMMENDER_TIMEOUT_MS", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("Load() error = nil, want error")
			}
		})
	}
}

package config

import (
	"testing"
	"time"
)

func TestLoadAppConfig_Defaults(t *testing.T) {
	cfg, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig() error = %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Version != "dev" {
		t.Errorf("Version = %q, want %q", cfg.Version, "dev")
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
	if cfg.ReadHeaderTimeout != 5*time.Second {
		t.Errorf("ReadHeaderTimeout = %v, want 5s", cfg.ReadHeaderTimeout)
	}
	if cfg.MaxBodyBytes != 1<<20 {
		t.Errorf("MaxBodyBytes = %d, want %d", cfg.MaxBodyBytes, 1<<20)
	}
	if !cfg.CSPEnabled {
		t.Error("CSPEnabled = false, want true")
	}
	if cfg.CSPReportOnly {
		t.Error("CSPReportOnly = true, want false")
	}
}

func TestLoadAppConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_VERSION", "1.2.3")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("CSP_ENABLED", "false")
	t.Setenv("CSP_REPORT_ONLY", "true")

	cfg, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig() error = %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", cfg.Version, "1.2.3")
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
	}
	if cfg.CSPEnabled {
		t.Error("CSPEnabled = true, want false")
	}
	if !cfg.CSPReportOnly {
		t.Error("CSPReportOnly = false, want true")
	}
}

func TestAppConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			mutate:  func(*AppConfig) {},
			wantErr: false,
		},
		{
			name:    "port too small",
			mutate:  func(c *AppConfig) { c.Port = 0 },
			wantErr: true,
		},
		{
			name:    "port too large",
			mutate:  func(c *AppConfig) { c.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "empty version",
			mutate:  func(c *AppConfig) { c.Version = "" },
			wantErr: true,
		},
		{
			name:    "zero shutdown timeout",
			mutate:  func(c *AppConfig) { c.ShutdownTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "negative body limit",
			mutate:  func(c *AppConfig) { c.MaxBodyBytes = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &AppConfig{
				Port:              8080,
				Version:           "dev",
				ShutdownTimeout:   10 * time.Second,
				ReadHeaderTimeout: 5 * time.Second,
				MaxBodyBytes:      1 << 20,
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAppConfig_Addr(t *testing.T) {
	cfg := &AppConfig{Port: 8080}
	if got := cfg.Addr(); got != ":8080" {
		t.Errorf("Addr() = %q, want %q", got, ":8080")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Run("LoadDefaultWhenMissing", func(t *testing.T) {
		config, err := LoadConfig("nonexistent.yaml")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config == nil {
			t.Fatal("expected default config, got nil")
		}
		if config.Server.Port != "8080" {
			t.Errorf("expected port 8080, got %s", config.Server.Port)
		}
		if config.Server.RoomCodeLength != 5 {
			t.Errorf("expected roomCodeLength 5, got %d", config.Server.RoomCodeLength)
		}
		if config.Server.RoomTimeout != time.Hour {
			t.Errorf("expected roomTimeout 1h, got %s", config.Server.RoomTimeout)
		}
	})

	t.Run("LoadFromYAML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yaml")

		yamlContent := `
server:
  port: "9090"
  roomCodeLength: 6
  roomTimeout: 12h
  rateLimit: 5
`
		if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.Server.Port != "9090" {
			t.Errorf("expected port 9090, got %s", config.Server.Port)
		}
		if config.Server.RoomCodeLength != 6 {
			t.Errorf("expected roomCodeLength 6, got %d", config.Server.RoomCodeLength)
		}
		if config.Server.RoomTimeout != 12*time.Hour {
			t.Errorf("expected roomTimeout 12h, got %s", config.Server.RoomTimeout)
		}
		if config.Server.RateLimit != 5 {
			t.Errorf("expected rateLimit 5, got %f", config.Server.RateLimit)
		}
		// Unspecified keys fall back to defaults.
		if config.Server.RateLimitBurst != 20 {
			t.Errorf("expected rateLimitBurst 20, got %d", config.Server.RateLimitBurst)
		}
	})

	t.Run("RejectsInvalidConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "bad-config.yaml")

		yamlContent := `
server:
  roomCodeLength: 1
`
		if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected error for roomCodeLength below minimum")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr bool
	}{
		{"defaults are valid", func(c *ServerConfig) {}, false},
		{"empty port", func(c *ServerConfig) { c.Server.Port = "" }, true},
		{"empty host", func(c *ServerConfig) { c.Server.Host = "" }, true},
		{"short room code", func(c *ServerConfig) { c.Server.RoomCodeLength = 2 }, true},
		{"negative room timeout", func(c *ServerConfig) { c.Server.RoomTimeout = -time.Hour }, true},
		{"zero rate limit", func(c *ServerConfig) { c.Server.RateLimit = 0 }, true},
		{"zero burst", func(c *ServerConfig) { c.Server.RateLimitBurst = 0 }, true},
		{"zero request size", func(c *ServerConfig) { c.Server.MaxRequestSize = 0 }, true},
		{"room timeout may be zero", func(c *ServerConfig) { c.Server.RoomTimeout = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

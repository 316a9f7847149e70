package internal

import (
	"log/slog"
	"testing"
)

func TestNewDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.App.HTTP.Port != 8080 {
		t.Errorf("port = %d", cfg.App.HTTP.Port)
	}
	if cfg.App.LogLevel != slog.LevelInfo {
		t.Errorf("log level = %v", cfg.App.LogLevel)
	}
	if cfg.Library.Path != "./articles" {
		t.Errorf("library path = %q", cfg.Library.Path)
	}
	if cfg.Library.Cache {
		t.Error("cache should default to off")
	}
	if cfg.Auth.AuthEnabled() {
		t.Error("auth should default to disabled")
	}
}

func TestHTTPConfig_Validate(t *testing.T) {
	c := HTTPConfig{Port: 0}
	if err := c.Validate(); err == nil {
		t.Error("port 0 should be invalid")
	}
	c.Port = 70000
	if err := c.Validate(); err == nil {
		t.Error("port 70000 should be invalid")
	}
	c.Port = 8080
	if err := c.Validate(); err != nil {
		t.Errorf("port 8080: %v", err)
	}
	if c.Address() != ":8080" {
		t.Errorf("address = %q", c.Address())
	}
}

func TestLibraryConfig_Validate(t *testing.T) {
	c := LibraryConfig{}
	if err := c.Validate(); err == nil {
		t.Error("empty path should be invalid")
	}
	c.Path = "./articles"
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSearchConfig_Validate(t *testing.T) {
	c := SearchConfig{DefaultLimit: -1}
	if err := c.Validate(); err == nil {
		t.Error("negative limit should be invalid")
	}
	c.DefaultLimit = 0
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_Validate(t *testing.T) {
	c := AuthConfig{}
	if err := c.Validate(); err != nil {
		t.Errorf("empty mode should normalise to disabled: %v", err)
	}
	if c.Mode != AuthModeDisabled {
		t.Errorf("mode = %q", c.Mode)
	}

	c = AuthConfig{Mode: AuthModeToken}
	if err := c.Validate(); err == nil {
		t.Error("token mode without token should be invalid")
	}

	c = AuthConfig{Mode: AuthModeToken, Token: "secret"}
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !c.AuthEnabled() {
		t.Error("token mode should enable auth")
	}

	c = AuthConfig{Mode: "bogus"}
	if err := c.Validate(); err == nil {
		t.Error("unknown mode should be invalid")
	}
}

package internal

import (
	"strings"
	"testing"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestHubConfig_URLs(t *testing.T) {
	cfg := HubConfig{Owner: "THORCollective", Repo: "HEARTH", Branch: "main"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("hub config should pass: %v", err)
	}
	if got := cfg.RepoURL(); got != "https://github.com/THORCollective/HEARTH" {
		t.Errorf("RepoURL = %q", got)
	}
	if got := cfg.SourceBaseURL(); got != "https://github.com/THORCollective/HEARTH/blob/main" {
		t.Errorf("SourceBaseURL = %q", got)
	}
}

func TestHubConfig_RequiredFields(t *testing.T) {
	cfg := HubConfig{Owner: "THORCollective"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("hub config without repo/branch should fail")
	}
}

func TestVaultConfig_EffectiveCategories(t *testing.T) {
	cfg := VaultConfig{Path: "./vault"}
	got := cfg.EffectiveCategories()
	if len(got) != 3 || got[0] != "Flames" {
		t.Errorf("default categories = %v", got)
	}

	cfg.Categories = []string{"Custom"}
	if got := cfg.EffectiveCategories(); len(got) != 1 || got[0] != "Custom" {
		t.Errorf("explicit categories = %v", got)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

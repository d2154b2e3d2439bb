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
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestDefaultConfig_MissingAPIKeyFails(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("missing api key should fail validation")
	}
}

func TestDefaultConfig_ValidWithKey(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Notion.APIKey = "secret_abc"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config with key should pass: %v", err)
	}
	if cfg.Notion.BaseURL != "https://api.notion.com" {
		t.Errorf("base url = %q", cfg.Notion.BaseURL)
	}
	if cfg.Notion.Version != "2022-06-28" {
		t.Errorf("version = %q", cfg.Notion.Version)
	}
	if cfg.Notion.TimeoutSeconds != 30 || cfg.Notion.MaxRetries != 3 {
		t.Errorf("unexpected notion defaults: %+v", cfg.Notion)
	}
	if cfg.Write.BatchSize != 100 {
		t.Errorf("batch size = %d, want 100", cfg.Write.BatchSize)
	}
	if cfg.Write.ReplaceClearsExisting {
		t.Error("replace_clears_existing should default to false")
	}
}

func TestDefaultConfig_ParentPageOptional(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Notion.APIKey = "secret_abc"
	cfg.Notion.ParentPageID = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("missing parent page should still validate: %v", err)
	}
}

func TestNotionConfig_TimeoutBounds(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Notion.APIKey = "secret_abc"

	cfg.Notion.TimeoutSeconds = 0
	if err := cfg.Notion.Validate(); err == nil {
		t.Error("zero timeout should fail")
	}
	cfg.Notion.TimeoutSeconds = 301
	if err := cfg.Notion.Validate(); err == nil {
		t.Error("oversized timeout should fail")
	}
	cfg.Notion.TimeoutSeconds = 30
	if err := cfg.Notion.Validate(); err != nil {
		t.Errorf("valid timeout failed: %v", err)
	}
}

func TestWriteConfig_BatchSizeBounds(t *testing.T) {
	cases := []struct {
		size    int
		wantErr bool
	}{
		{0, true},
		{1, false},
		{100, false},
		{101, true},
	}
	for _, tc := range cases {
		cfg := WriteConfig{BatchSize: tc.size}
		err := cfg.Validate()
		if tc.wantErr && err == nil {
			t.Errorf("batch size %d should fail", tc.size)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("batch size %d failed: %v", tc.size, err)
		}
	}
}

func TestApplyEnv_Overrides(t *testing.T) {
	t.Setenv("NOTION_API_KEY", "secret_env")
	t.Setenv("NOTION_PARENT_ID", "parent_env")

	cfg := NewDefaultConfig()
	cfg.Notion.APIKey = "secret_file"
	cfg.Notion.ParentPageID = "parent_file"
	cfg.ApplyEnv()

	if cfg.Notion.APIKey != "secret_env" {
		t.Errorf("api key = %q, want env value", cfg.Notion.APIKey)
	}
	if cfg.Notion.ParentPageID != "parent_env" {
		t.Errorf("parent id = %q, want env value", cfg.Notion.ParentPageID)
	}
}

func TestApplyEnv_UnsetKeepsFileValues(t *testing.T) {
	t.Setenv("NOTION_API_KEY", "")
	t.Setenv("NOTION_PARENT_ID", "")

	cfg := NewDefaultConfig()
	cfg.Notion.APIKey = "secret_file"
	cfg.Notion.ParentPageID = "parent_file"
	cfg.ApplyEnv()

	if cfg.Notion.APIKey != "secret_file" || cfg.Notion.ParentPageID != "parent_file" {
		t.Errorf("unset env must keep file values, got %+v", cfg.Notion)
	}
}

package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefaultIsValid(t *testing.T) {
	if errs := Default().Validate(); len(errs) > 0 {
		t.Errorf("default config must validate cleanly: %v", ValidationErrors(errs))
	}
}

func TestLoadUsesDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider.Backend != "openai" {
		t.Errorf("backend = %q", cfg.Provider.Backend)
	}
	if cfg.Planner.CacheTTL() != 24*time.Hour {
		t.Errorf("cache TTL = %v", cfg.Planner.CacheTTL())
	}
	if cfg.Planner.DefaultCurrency != "JPY" {
		t.Errorf("currency = %q", cfg.Planner.DefaultCurrency)
	}
}

func TestLoadOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("provider.backend", "scripted")
	viper.Set("planner.max_prompt_turns", 5)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider.Backend != "scripted" {
		t.Errorf("backend = %q", cfg.Provider.Backend)
	}
	if cfg.Planner.MaxPromptTurns != 5 {
		t.Errorf("max prompt turns = %d", cfg.Planner.MaxPromptTurns)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Provider.Backend = "carrier-pigeon"
	cfg.Planner.CompletionThreshold = 1.5
	cfg.Logging.Level = "loud"

	errs := cfg.Validate()
	if len(errs) != 3 {
		t.Fatalf("expected 3 validation errors, got %d: %v", len(errs), ValidationErrors(errs))
	}

	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, want := range []string{"provider.backend", "planner.completion_threshold", "logging.level"} {
		if !fields[want] {
			t.Errorf("missing validation error for %s", want)
		}
	}
}

func TestAPIKeyEnv(t *testing.T) {
	t.Setenv("TABIPLAN_TEST_KEY", "sk-test")
	p := ProviderConfig{APIKeyEnv: "TABIPLAN_TEST_KEY"}
	if p.APIKey() != "sk-test" {
		t.Errorf("APIKey = %q", p.APIKey())
	}

	p.APIKeyEnv = ""
	if p.APIKey() != "" {
		t.Error("empty env name must yield empty key")
	}
}

func TestResolveDataDir(t *testing.T) {
	p := PathsConfig{DataDir: "/tmp/custom", DatabaseFile: "tabiplan.db"}
	if p.ResolveDataDir() != "/tmp/custom" {
		t.Errorf("explicit data dir ignored: %q", p.ResolveDataDir())
	}
	if p.DatabasePath() != "/tmp/custom/tabiplan.db" {
		t.Errorf("database path = %q", p.DatabasePath())
	}
}

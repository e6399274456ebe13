package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Aayushman-oss/nutriscan-ai/internal/config"
	"github.com/Aayushman-oss/nutriscan-ai/internal/extract"
	"github.com/Aayushman-oss/nutriscan-ai/internal/validate"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		cfgFile, homeDir = "", ""
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLockedError(t *testing.T) {
	cfg := config.DefaultConfig()
	err := lockedError(cfg)
	if !strings.Contains(err.Error(), "locked") || !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("lockedError() = %v", err)
	}

	p := cfg.LLMProviders["gemini"]
	p.APIKey = ""
	cfg.LLMProviders["gemini"] = p
	if err := lockedError(cfg); !strings.Contains(err.Error(), "llm_providers.gemini") {
		t.Errorf("literal-key message should name the config key: %v", err)
	}
}

func TestBuildServices_Locked(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "llm_providers:\n  gemini:\n    api_key: ${NUTRISCAN_CLI_TEST_UNSET_KEY}\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	mgr, err := config.NewManager(path)
	if err != nil {
		t.Fatal(err)
	}
	_, err = buildServices(mgr)
	if err == nil || !strings.Contains(err.Error(), "NUTRISCAN_CLI_TEST_UNSET_KEY") {
		t.Fatalf("buildServices() error = %v, want locked message", err)
	}
}

func TestWithRetries(t *testing.T) {
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = 2 * time.Second })

	t.Run("retries unavailable service", func(t *testing.T) {
		calls := 0
		got, err := withRetries(context.Background(), 2, func() (string, error) {
			calls++
			if calls < 3 {
				return "", fmt.Errorf("%w: 503", extract.ErrServiceUnavailable)
			}
			return "ok", nil
		})
		if err != nil || got != "ok" {
			t.Fatalf("withRetries() = %q, %v", got, err)
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("gives up after retries", func(t *testing.T) {
		calls := 0
		_, err := withRetries(context.Background(), 1, func() (int, error) {
			calls++
			return 0, fmt.Errorf("%w: timeout", extract.ErrServiceUnavailable)
		})
		if !errors.Is(err, extract.ErrServiceUnavailable) {
			t.Errorf("error = %v, want ErrServiceUnavailable", err)
		}
		if calls != 2 {
			t.Errorf("calls = %d, want 2", calls)
		}
	})

	t.Run("does not retry contract violations", func(t *testing.T) {
		calls := 0
		_, err := withRetries(context.Background(), 3, func() (int, error) {
			calls++
			return 0, &validate.ValidationError{Kind: validate.SchemaMismatch, Field: "verdict"}
		})
		var ve *validate.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("error = %v, want ValidationError", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("negative retries runs once", func(t *testing.T) {
		calls := 0
		_, _ = withRetries(context.Background(), -5, func() (int, error) {
			calls++
			return 0, extract.ErrServiceUnavailable
		})
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})
}

func TestConfigCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "config", "init", "--home", dir)
	if err != nil {
		t.Fatalf("config init: %v\n%s", err, out)
	}
	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	if _, err := execute(t, "config", "init", "--home", dir); err == nil {
		t.Error("second init without --force should fail")
	}

	if _, err := execute(t, "config", "get", "defaults.llm_provider", "--config", path); err != nil {
		t.Fatalf("config get: %v", err)
	}
	if _, err := execute(t, "config", "get", "pipeline.nope", "--config", path); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestConfigPath(t *testing.T) {
	t.Cleanup(func() { cfgFile, homeDir = "", "" })

	cfgFile = "/etc/nutriscan.yaml"
	if got, _ := configPath(); got != "/etc/nutriscan.yaml" {
		t.Errorf("configPath() = %q, want --config value", got)
	}

	cfgFile = ""
	homeDir = t.TempDir()
	if got, _ := configPath(); got != "" {
		t.Errorf("configPath() = %q, want empty without a home config", got)
	}
	if err := config.WriteDefault(filepath.Join(homeDir, "config.yaml")); err != nil {
		t.Fatal(err)
	}
	if got, _ := configPath(); got != filepath.Join(homeDir, "config.yaml") {
		t.Errorf("configPath() = %q, want home config", got)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "nutriscan ") {
		t.Errorf("version output = %q", out)
	}
}

func TestAPICommandTree(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		if c.Name() != "api" {
			continue
		}
		for _, sub := range c.Commands() {
			names = append(names, sub.Name())
		}
	}
	joined := strings.Join(names, ",")
	for _, want := range []string{"health", "ready", "status", "analyze", "alternatives", "prompts", "settings"} {
		if !strings.Contains(joined, want) {
			t.Errorf("api command %q missing from %s", want, joined)
		}
	}
}

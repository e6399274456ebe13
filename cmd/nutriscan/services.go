package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Aayushman-oss/nutriscan-ai/internal/config"
	"github.com/Aayushman-oss/nutriscan-ai/internal/home"
	"github.com/Aayushman-oss/nutriscan-ai/internal/logging"
	"github.com/Aayushman-oss/nutriscan-ai/internal/providers"
	"github.com/Aayushman-oss/nutriscan-ai/internal/svcctx"
)

// configPath picks the config file: --config, then the config in --home.
// An empty result lets the manager search ./ and ~/.nutriscan.
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	if homeDir == "" {
		return "", nil
	}
	h, err := home.New(homeDir)
	if err != nil {
		return "", err
	}
	if h.ConfigExists() {
		return h.ConfigPath(), nil
	}
	return "", nil
}

func loadConfig() (*config.Manager, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	mgr, err := config.NewManager(path)
	if err != nil {
		return nil, err
	}
	mgr.SetLogger(logging.New("config"))
	return mgr, nil
}

// buildServices wires the pipeline for the current config. A default provider
// without a credential yields the locked message.
func buildServices(mgr *config.Manager) (*svcctx.Services, error) {
	cfg := mgr.Get()
	logger := logging.New("nutriscan")

	reg := providers.NewRegistry()
	reg.SetLogger(logging.New("providers"))
	reg.Reload(cfg.ToProviderRegistryConfig())

	svc, err := svcctx.New(cfg, reg, logger)
	if err != nil {
		if errors.Is(err, providers.ErrMissingAPIKey) {
			return nil, lockedError(cfg)
		}
		return nil, err
	}
	return svc, nil
}

// lockedError names the environment variable that unlocks the default
// provider.
func lockedError(cfg *config.Config) error {
	name := cfg.Defaults.LLMProvider
	p, _ := cfg.GetLLMProvider(name)
	vars := config.EnvVarNames(p.APIKey)
	if len(vars) == 0 {
		return fmt.Errorf("nutriscan is locked: add an api_key for llm_providers.%s to your config", name)
	}
	return fmt.Errorf("nutriscan is locked: set %s to use the %s provider", strings.Join(vars, " or "), name)
}

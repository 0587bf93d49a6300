// Package config loads multimerge's layered JSON configuration: a
// global file at ~/.multimergeconfig, overridden by a per-run project
// config at .multimerge/config inside the output tree, following the
// teacher's global-then-repo merge idiom.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the settings a merge run reads before resolving: which
// strategy to fall back to when no policy rule matches a path, the
// rename template, and which CAS backend to use for blob storage.
type Config struct {
	Policy PolicyConfig `json:"policy"`
	CAS    CASConfig    `json:"cas"`
}

// PolicyConfig configures policy.Matcher construction.
type PolicyConfig struct {
	DefaultStrategy string `json:"default_strategy"` // "replace", "rename", or "merge"
	RenameFormat    string `json:"rename_format"`     // e.g. "{stem}_{pid}"
}

// CASConfig selects and configures the blob store backing large merged
// assets.
type CASConfig struct {
	Backend string `json:"backend"` // "memory" or "file"
	Dir     string `json:"dir,omitempty"`
}

// DefaultConfig returns a config with sensible defaults: Replace
// fallback, the default formatter's "{stem}_{pid}" shape, and an
// in-memory CAS.
func DefaultConfig() *Config {
	return &Config{
		Policy: PolicyConfig{
			DefaultStrategy: "replace",
			RenameFormat:    "{stem}_{pid}",
		},
		CAS: CASConfig{
			Backend: "memory",
		},
	}
}

// PolicyFile mirrors the optional <output>/.multimerge/policy.json
// document: an ordered list of glob-to-strategy rules plus a default
// strategy string. It is decoded here as plain strings - compiling
// Rules into globs and parsing Default into a policy.Strategy is
// internal/policy's job, keeping this package ignorant of the
// Strategy enum.
type PolicyFile struct {
	Default string           `json:"default"`
	Rules   []PolicyFileRule `json:"rules"`
}

// PolicyFileRule is one ordered entry of a PolicyFile's rule list.
type PolicyFileRule struct {
	Glob     string `json:"glob"`
	Strategy string `json:"strategy"`
}

// policyFilePath returns the path to the output tree's policy file.
func policyFilePath(outputDir string) string {
	return filepath.Join(outputDir, ".multimerge", "policy.json")
}

// LoadPolicyFile reads outputDir's policy.json, if one exists. A
// missing file is not an error: it returns a zero-value PolicyFile, so
// callers fall back entirely to Config.Policy.DefaultStrategy with no
// per-path rules.
func LoadPolicyFile(outputDir string) (*PolicyFile, error) {
	data, err := os.ReadFile(policyFilePath(outputDir))
	if err != nil {
		if os.IsNotExist(err) {
			return &PolicyFile{}, nil
		}
		return nil, fmt.Errorf("read policy file: %w", err)
	}

	var pf PolicyFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse policy file: %w", err)
	}
	return &pf, nil
}

// SavePolicyFile writes pf to outputDir's policy.json, creating its
// .multimerge directory if needed.
func SavePolicyFile(outputDir string, pf *PolicyFile) error {
	path := policyFilePath(outputDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create .multimerge directory: %w", err)
	}

	data, err := json.MarshalIndent(pf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal policy file: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// globalConfigPath returns the path to the global config file.
func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".multimergeconfig"), nil
}

// repoConfigPath returns the path to the output tree's local config
// file, rooted under outputDir.
func repoConfigPath(outputDir string) string {
	return filepath.Join(outputDir, ".multimerge", "config")
}

// LoadConfig loads configuration from both the global and the
// outputDir-local config files. The local config overrides the global
// one field by field.
func LoadConfig(outputDir string) (*Config, error) {
	cfg := DefaultConfig()

	globalPath, err := globalConfigPath()
	if err == nil {
		if data, err := os.ReadFile(globalPath); err == nil {
			var globalCfg Config
			if err := json.Unmarshal(data, &globalCfg); err == nil {
				mergeConfig(cfg, &globalCfg)
			}
		}
	}

	repoPath := repoConfigPath(outputDir)
	if data, err := os.ReadFile(repoPath); err == nil {
		var repoCfg Config
		if err := json.Unmarshal(data, &repoCfg); err == nil {
			mergeConfig(cfg, &repoCfg)
		}
	}

	return cfg, nil
}

// SaveGlobalConfig saves configuration to the global config file.
func SaveGlobalConfig(cfg *Config) error {
	globalPath, err := globalConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(globalPath, data, 0644)
}

// SaveRepoConfig saves configuration to outputDir's local config file,
// creating its .multimerge directory if needed.
func SaveRepoConfig(outputDir string, cfg *Config) error {
	repoPath := repoConfigPath(outputDir)

	if err := os.MkdirAll(filepath.Dir(repoPath), 0755); err != nil {
		return fmt.Errorf("failed to create .multimerge directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(repoPath, data, 0644)
}

// GetValue retrieves a configuration value by key (e.g. "policy.default_strategy").
func GetValue(outputDir, key string) (string, error) {
	cfg, err := LoadConfig(outputDir)
	if err != nil {
		return "", err
	}

	section, field, err := splitKey(key)
	if err != nil {
		return "", err
	}

	switch section {
	case "policy":
		switch field {
		case "default_strategy":
			return cfg.Policy.DefaultStrategy, nil
		case "rename_format":
			return cfg.Policy.RenameFormat, nil
		default:
			return "", fmt.Errorf("unknown policy config field: %s", field)
		}
	case "cas":
		switch field {
		case "backend":
			return cfg.CAS.Backend, nil
		case "dir":
			return cfg.CAS.Dir, nil
		default:
			return "", fmt.Errorf("unknown cas config field: %s", field)
		}
	default:
		return "", fmt.Errorf("unknown config section: %s", section)
	}
}

// SetValue sets a configuration value by key (e.g. "policy.default_strategy", "rename").
func SetValue(outputDir, key, value string, global bool) error {
	var cfg *Config

	if global {
		globalPath, _ := globalConfigPath()
		cfg = loadOrDefault(globalPath)
	} else {
		cfg = loadOrDefault(repoConfigPath(outputDir))
	}

	section, field, err := splitKey(key)
	if err != nil {
		return err
	}

	switch section {
	case "policy":
		switch field {
		case "default_strategy":
			cfg.Policy.DefaultStrategy = value
		case "rename_format":
			cfg.Policy.RenameFormat = value
		default:
			return fmt.Errorf("unknown policy config field: %s", field)
		}
	case "cas":
		switch field {
		case "backend":
			cfg.CAS.Backend = value
		case "dir":
			cfg.CAS.Dir = value
		default:
			return fmt.Errorf("unknown cas config field: %s", field)
		}
	default:
		return fmt.Errorf("unknown config section: %s", section)
	}

	if global {
		return SaveGlobalConfig(cfg)
	}
	return SaveRepoConfig(outputDir, cfg)
}

func loadOrDefault(path string) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig()
	}
	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}
	return cfg
}

func splitKey(key string) (section, field string, err error) {
	parts := strings.SplitN(key, ".", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid config key: %s (expected format: section.key)", key)
	}
	return parts[0], parts[1], nil
}

// mergeConfig merges source config into destination config. Only
// non-empty string fields from source override destination.
func mergeConfig(dst, src *Config) {
	if src.Policy.DefaultStrategy != "" {
		dst.Policy.DefaultStrategy = src.Policy.DefaultStrategy
	}
	if src.Policy.RenameFormat != "" {
		dst.Policy.RenameFormat = src.Policy.RenameFormat
	}
	if src.CAS.Backend != "" {
		dst.CAS.Backend = src.CAS.Backend
	}
	if src.CAS.Dir != "" {
		dst.CAS.Dir = src.CAS.Dir
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFileYAML is the canonical config filename.
	DefaultConfigFileYAML = ".clientsweep.yaml"
	// DefaultConfigFileYML is a compatible alternate config filename.
	DefaultConfigFileYML = ".clientsweep.yml"
)

// FileConfig represents values loaded from a .clientsweep.yaml file.
// The password is deliberately not a recognized key; secrets are
// prompted interactively or passed per invocation, never stored.
type FileConfig struct {
	Server       string   `yaml:"server"`
	Port         *int     `yaml:"port"`
	Domain       string   `yaml:"domain"`
	Username     string   `yaml:"username"`
	GroupBy      string   `yaml:"group_by"`
	Threshold    *int     `yaml:"threshold"`
	PageSize     *int     `yaml:"page_size"`
	Timeout      string   `yaml:"timeout"`
	DeletePause  string   `yaml:"delete_pause"`
	Insecure     *bool    `yaml:"insecure_skip_verify"`
	ExcludeNames []string `yaml:"exclude_names"`
	Output       string   `yaml:"output"`
}

// Normalize trims and removes empty items from list fields.
func (fc *FileConfig) Normalize() {
	if fc == nil {
		return
	}
	fc.Server = strings.TrimSpace(fc.Server)
	fc.Domain = strings.TrimSpace(fc.Domain)
	fc.Username = strings.TrimSpace(fc.Username)
	fc.GroupBy = strings.TrimSpace(fc.GroupBy)
	fc.Timeout = strings.TrimSpace(fc.Timeout)
	fc.DeletePause = strings.TrimSpace(fc.DeletePause)
	fc.Output = strings.TrimSpace(fc.Output)
	fc.ExcludeNames = normalizeList(fc.ExcludeNames)
}

// Apply merges file values into cfg. Flag values take precedence; only
// unset cfg fields are filled from the file.
func (fc *FileConfig) Apply(cfg *Config) error {
	if fc == nil || cfg == nil {
		return nil
	}

	if cfg.Server == "" {
		cfg.Server = fc.Server
	}
	if fc.Port != nil && cfg.Port == DefaultConfig().Port {
		cfg.Port = *fc.Port
	}
	if cfg.Domain == "" {
		cfg.Domain = fc.Domain
	}
	if fc.Username != "" && cfg.Username == currentUsername() {
		cfg.Username = fc.Username
	}
	if fc.GroupBy != "" && cfg.GroupBy == GroupByName {
		if !ValidGroupBy(fc.GroupBy) {
			return fmt.Errorf("invalid group_by %q in config file", fc.GroupBy)
		}
		cfg.GroupBy = fc.GroupBy
	}
	if fc.Threshold != nil && cfg.Threshold == DefaultConfig().Threshold {
		cfg.Threshold = *fc.Threshold
	}
	if fc.PageSize != nil && cfg.PageSize == DefaultConfig().PageSize {
		cfg.PageSize = *fc.PageSize
	}
	if fc.Timeout != "" {
		timeout, err := ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q in config file: %w", fc.Timeout, err)
		}
		cfg.RequestTimeout = timeout
	}
	if fc.DeletePause != "" {
		pause, err := ParseDuration(fc.DeletePause)
		if err != nil {
			return fmt.Errorf("invalid delete_pause %q in config file: %w", fc.DeletePause, err)
		}
		cfg.DeletePause = pause
	}
	if fc.Insecure != nil {
		cfg.InsecureSkipVerify = *fc.Insecure
	}
	if len(fc.ExcludeNames) > 0 {
		cfg.ExcludeNames = append(cfg.ExcludeNames, fc.ExcludeNames...)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = fc.Output
	}

	return nil
}

// AutoLoadFile discovers and loads the first available config file.
func AutoLoadFile() (*FileConfig, string, error) {
	candidates := []string{
		DefaultConfigFileYAML,
		DefaultConfigFileYML,
	}

	if homeDir, err := os.UserHomeDir(); err == nil && strings.TrimSpace(homeDir) != "" {
		candidates = append(candidates,
			filepath.Join(homeDir, DefaultConfigFileYAML),
			filepath.Join(homeDir, DefaultConfigFileYML),
		)
	}

	return LoadFirstExistingFile(candidates)
}

// LoadFirstExistingFile loads the first config file that exists in paths.
func LoadFirstExistingFile(paths []string) (*FileConfig, string, error) {
	for _, path := range paths {
		candidate := strings.TrimSpace(path)
		if candidate == "" {
			continue
		}

		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("failed to access config file %q: %w", candidate, err)
		}
		if info.IsDir() {
			return nil, "", fmt.Errorf("config path %q is a directory, expected a file", candidate)
		}

		cfg, err := LoadFile(candidate)
		if err != nil {
			return nil, "", err
		}
		return cfg, candidate, nil
	}

	return nil, "", nil
}

// LoadFile loads config values from a specific YAML file path.
func LoadFile(path string) (*FileConfig, error) {
	filename := strings.TrimSpace(path)
	if filename == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", filename, err)
	}

	cfg := &FileConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", filename, err)
	}

	cfg.Normalize()
	return cfg, nil
}

func normalizeList(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}

	normalized := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		normalized = append(normalized, trimmed)
	}
	return normalized
}

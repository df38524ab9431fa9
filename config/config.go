package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix marks environment variables that override config file keys,
	// e.g. RELGEN_SOURCE_REPO overrides source_repo.
	EnvPrefix = "RELGEN_"

	dotEnvFile = ".env"
)

// Credential environment variables.
const (
	GitHubTokenEnv      = "GITHUB_TOKEN"
	GitHubTokenAliasEnv = "GH_TOKEN"
	GitHubUsernameEnv   = "GITHUB_USERNAME"
)

// ErrConfigNotFound is returned by FindConfigFile when no file exists in the default locations.
var ErrConfigNotFound = errors.New("config file not found in default locations")

// Config is the flat key/value configuration of relgen.
type Config struct {
	Values  map[string]string // lower-cased keys
	BaseDir string            // directory relative paths are resolved against
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Load reads the configuration file at path, expanding ${VAR} references, and
// overlays RELGEN_* environment variables on top of it. An empty path loads
// the environment only, with the working directory as base directory.
func Load(path string) (*Config, error) {
	cfg := &Config{Values: map[string]string{}}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}

		var raw map[string]string
		if unmarshalErr := yaml.Unmarshal(data, &raw); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
		for key, value := range raw {
			cfg.Values[strings.ToLower(key)] = expandEnv(value)
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config file %q: %w", path, err)
		}
		cfg.BaseDir = filepath.Dir(absPath)
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		cfg.BaseDir = wd
	}

	overlayEnv(cfg.Values)
	return cfg, nil
}

// overlayEnv copies every RELGEN_<KEY> variable into values as <key>.
func overlayEnv(values map[string]string) {
	for _, entry := range os.Environ() {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || len(name) <= len(EnvPrefix) || !strings.EqualFold(name[:len(EnvPrefix)], EnvPrefix) {
			continue
		}
		key := strings.ToLower(name[len(EnvPrefix):])
		logger.Debugf("Using %s from the environment", key)
		values[key] = value
	}
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".relgen.yaml",
		".relgen.yml",
		"relgen.yaml",
		"relgen.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", ErrConfigNotFound
}

// LoadDotEnv loads a .env file from the working directory, if any. Variables
// already set in the environment are kept.
func LoadDotEnv() {
	if _, err := os.Stat(dotEnvFile); err != nil {
		return
	}
	if err := godotenv.Load(dotEnvFile); err != nil {
		logger.Warnf("Failed to load %s: %v", dotEnvFile, err)
		return
	}
	logger.Debugf("Loaded %s", dotEnvFile)
}

// Credentials returns the GitHub token and username from the environment.
// The token may be a ${VAR} reference or a path to a file holding it.
func Credentials() (string, string) {
	token := os.Getenv(GitHubTokenEnv)
	if token == "" {
		token = os.Getenv(GitHubTokenAliasEnv)
	}
	return resolveToken(token), os.Getenv(GitHubUsernameEnv)
}

// expandEnv replaces ${VAR} references with their environment values.
func expandEnv(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := expandEnv(raw)

	// If the resolved value is a path to an existing file, read the token from it
	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

package file

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/branchsync-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.LogPathResolver = (*ConfigStore)(nil)

// Configuration keys. Nested TOML tables are flattened into
// dot-notation keys on load.
const (
	KeyAPIURL      = "api.url"
	KeyAPIToken    = "api.token"
	KeyGitHubToken = "github.token"
	KeyGitHubHost  = "github.host"
	KeyLoggingPath = "logging.path"
)

// Environment variables that override the corresponding file keys.
const (
	EnvAPIURL      = "BRANCHSYNC_API"
	EnvAPIToken    = "BRANCHSYNC_API_TOKEN"
	EnvGitHubToken = "GITHUB_TOKEN"
	EnvLoggingPath = "BRANCHSYNC_LOG_PATH"
)

// ErrNoLoggingPath is returned when no logging directory is configured
// through either the config file or the environment.
var ErrNoLoggingPath = errors.New("no logging path configured")

// ConfigStore is a file-based configuration store using TOML.
// Configuration is stored in a TOML file within the branchsync config
// directory. Environment variables take precedence over file values.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.branchsync/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".branchsync")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		data:     make(map[string]any),
	}

	// Load existing data if file exists
	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// APIURL returns the platform API base URL, or empty when not set.
func (s *ConfigStore) APIURL() string {
	return s.lookup(EnvAPIURL, KeyAPIURL)
}

// APIToken returns the platform API token, or empty when not set.
func (s *ConfigStore) APIToken() string {
	return s.lookup(EnvAPIToken, KeyAPIToken)
}

// GitHubToken returns the GitHub access token, or empty when not set.
func (s *ConfigStore) GitHubToken() string {
	return s.lookup(EnvGitHubToken, KeyGitHubToken)
}

// GitHubHost returns the GitHub Enterprise host, or empty for
// github.com. There is no environment override for the host; it is
// set per-invocation with a CLI flag instead.
func (s *ConfigStore) GitHubHost() string {
	return s.getString(KeyGitHubHost)
}

// LoggingPath returns the directory sync logs are written to.
// Returns ErrNoLoggingPath when neither the environment nor the
// config file names one.
func (s *ConfigStore) LoggingPath() (string, error) {
	path := s.lookup(EnvLoggingPath, KeyLoggingPath)
	if path == "" {
		return "", ErrNoLoggingPath
	}
	return path, nil
}

// lookup prefers the environment variable over the file key.
func (s *ConfigStore) lookup(envVar, key string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return s.getString(key)
}

func (s *ConfigStore) getString(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	if !ok {
		return ""
	}

	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// Set stores a configuration value and persists immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(unflattenMap(s.data))
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet - that's fine, start empty
			s.data = make(map[string]any)
			return nil
		}
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}

	if loaded == nil {
		loaded = make(map[string]any)
	}

	// Flatten nested tables into dot-notation keys for easier access
	s.data = flattenMap(loaded, "")
	return nil
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			// Recursively flatten nested maps
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}

// unflattenMap restores dot-notation keys to nested tables so the
// written file keeps the [section] layout users edit by hand.
func unflattenMap(m map[string]any) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		parts := splitKey(key)
		node := result
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = value
	}

	return result
}

func splitKey(key string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			parts = append(parts, key[start:i])
			start = i + 1
		}
	}
	return append(parts, key[start:])
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultEndpoint is used when no endpoint is configured anywhere.
	DefaultEndpoint = "http://localhost:5000/process"
	DefaultModel    = "gpt-4o-mini"

	// EndpointEnv overrides the endpoint stored in the config file.
	EndpointEnv = "STUDYASSIST_API_URL"
	HomeEnv     = "STUDYASSIST_HOME"

	dirName     = ".studyassist"
	fileName    = "config.json"
	logFileName = "studyassist.log"
)

// Profile holds the LLM settings used by the reference backend.
type Profile struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url,omitempty"`
	Model   string `json:"model"`
}

type Config struct {
	Endpoint       string             `json:"endpoint,omitempty"`
	Profiles       map[string]Profile `json:"profiles"`
	ActiveProfile  string             `json:"active_profile"`
	currentProfile *Profile
}

func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return config, nil
}

// ResolveEndpoint picks the endpoint address. An explicit override (usually a
// command line flag) wins, then the environment, then the config file.
func (c *Config) ResolveEndpoint(override string) string {
	if v := strings.TrimSpace(override); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(EndpointEnv)); v != "" {
		return v
	}
	if c != nil && strings.TrimSpace(c.Endpoint) != "" {
		return strings.TrimSpace(c.Endpoint)
	}
	return DefaultEndpoint
}

// IsValid reports whether the active profile can reach an LLM provider.
func (c *Config) IsValid() bool {
	return c.currentProfile != nil && c.currentProfile.APIKey != ""
}

func (c *Config) GetAPIKey() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.APIKey
}

func (c *Config) GetModel() string {
	if c.currentProfile == nil || c.currentProfile.Model == "" {
		return DefaultModel
	}
	return c.currentProfile.Model
}

func (c *Config) GetBaseURL() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.BaseURL
}

// ProfileNames returns the configured profile names, optionally skipping one.
func (c *Config) ProfileNames(skip string) []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		if name != skip {
			names = append(names, name)
		}
	}
	return names
}

func GetConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// GetLogPath is where the interactive form writes its logs, since the
// terminal itself is owned by the UI.
func GetLogPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, logFileName), nil
}

func configDir() (string, error) {
	var home string

	if v := os.Getenv(HomeEnv); v != "" {
		home = v
	} else {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		home = userHome
	}

	return filepath.Join(home, dirName), nil
}

func ensureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// A file may carry only the endpoint; profiles matter to serve alone.
	if len(config.Profiles) == 0 {
		config.Profiles = defaultConfig().Profiles
		if config.ActiveProfile == "" {
			config.ActiveProfile = "default"
		}
	}

	return &config, nil
}

func defaultConfig() *Config {
	return &Config{
		Profiles: map[string]Profile{
			"default": {Model: DefaultModel},
		},
		ActiveProfile: "default",
	}
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := defaultConfig()

	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	// API keys live in here
	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := ensureConfigDir(configPath); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := saveConfig(c, configPath); err != nil {
		return err
	}

	return c.setCurrentProfile()
}

// RemoveProfile deletes a profile. When the active profile goes away another
// one takes over, and a fresh default is created if none is left.
func (c *Config) RemoveProfile(name string) error {
	if _, exists := c.Profiles[name]; !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}

	delete(c.Profiles, name)

	if len(c.Profiles) == 0 {
		c.Profiles["default"] = Profile{Model: DefaultModel}
	}

	if c.ActiveProfile == name {
		if _, ok := c.Profiles["default"]; ok {
			c.ActiveProfile = "default"
		} else {
			for other := range c.Profiles {
				c.ActiveProfile = other
				break
			}
		}
	}

	return c.setCurrentProfile()
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// Fall back to any available profile
		for name, p := range c.Profiles {
			c.ActiveProfile = name
			profile = p
			exists = true
			break
		}
	}

	if !exists {
		return fmt.Errorf("no valid profiles found")
	}

	c.currentProfile = &profile
	return nil
}

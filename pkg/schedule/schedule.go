// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package schedule

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/AccelByte/extend-spotlight-session/pkg/poller"
)

// Config is the poller schedule file.
type Config struct {
	Pollers []PollerConfig `yaml:"pollers"`
}

// PollerConfig overrides one poller's timing.
type PollerConfig struct {
	ID        string        `yaml:"id"`
	Interval  time.Duration `yaml:"interval"`
	Immediate bool          `yaml:"immediate"`
	Disabled  bool          `yaml:"disabled,omitempty"`
}

// Default returns the built-in schedule.
func Default() *Config {
	return &Config{
		Pollers: []PollerConfig{
			{ID: poller.Requests, Interval: 5 * time.Second},
			{ID: poller.Trust, Interval: 8 * time.Second},
			{ID: poller.Notifications, Interval: 7 * time.Second, Immediate: true},
			{ID: poller.MatchStatus, Interval: 3 * time.Second},
		},
	}
}

var knownIDs = map[string]bool{
	poller.Requests:      true,
	poller.Trust:         true,
	poller.Notifications: true,
	poller.MatchStatus:   true,
}

// Load reads path and merges it over the defaults by poller id.
// An empty path or a missing file yields the defaults.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logrus.Infof("schedule file %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule file %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &file); err != nil {
		return nil, fmt.Errorf("failed to parse schedule YAML: %w", err)
	}
	if err := file.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schedule: %w", err)
	}

	for _, override := range file.Pollers {
		for i := range cfg.Pollers {
			if cfg.Pollers[i].ID == override.ID {
				cfg.Pollers[i] = override
			}
		}
	}
	return cfg, nil
}

// Validate checks ids and intervals.
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for _, p := range c.Pollers {
		if p.ID == "" {
			return fmt.Errorf("poller with empty ID found")
		}
		if !knownIDs[p.ID] {
			return fmt.Errorf("unknown poller ID: %s", p.ID)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate poller ID: %s", p.ID)
		}
		seen[p.ID] = true

		if p.Interval <= 0 {
			return fmt.Errorf("poller %s has non-positive interval %s", p.ID, p.Interval)
		}
	}
	return nil
}

// Get returns the entry for id.
func (c *Config) Get(id string) (PollerConfig, bool) {
	for _, p := range c.Pollers {
		if p.ID == id {
			return p, true
		}
	}
	return PollerConfig{}, false
}

func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		parts := strings.SplitN(key, ":", 2)
		value := os.Getenv(parts[0])
		if value == "" && len(parts) == 2 {
			return parts[1]
		}
		return value
	})
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults for settings a config file may leave out.
const (
	DefaultLeftHotkey    = "Mod4-Shift-Left"
	DefaultRightHotkey   = "Mod4-Shift-Right"
	DefaultFlipReference = "display"
	DefaultQueueSize     = 8
	DefaultLogLevel      = "info"

	MaxQueueSize = 1024
)

// Config holds the application configuration.
type Config struct {
	// LeftHotkey and RightHotkey use the keybind syntax, e.g. Mod4-Shift-Left.
	LeftHotkey  string `yaml:"left_hotkey"`
	RightHotkey string `yaml:"right_hotkey"`
	// PromptForPermission lets a failed permission check warn the user.
	PromptForPermission bool `yaml:"prompt_for_permission"`
	// FlipReference is "display" or "desktop".
	FlipReference string `yaml:"flip_reference"`
	QueueSize     int    `yaml:"queue_size"`
	LogLevel      string `yaml:"log_level"`
	Display       string `yaml:"display,omitempty"`
	XAuthority    string `yaml:"xauthority,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		LeftHotkey:          DefaultLeftHotkey,
		RightHotkey:         DefaultRightHotkey,
		PromptForPermission: true,
		FlipReference:       DefaultFlipReference,
		QueueSize:           DefaultQueueSize,
		LogLevel:            DefaultLogLevel,
	}
}

// Save writes the configuration to the standard location.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LeftHotkey) == "" {
		return &ValidationError{Path: "left_hotkey", Err: fmt.Errorf("left_hotkey is required")}
	}
	if strings.TrimSpace(c.RightHotkey) == "" {
		return &ValidationError{Path: "right_hotkey", Err: fmt.Errorf("right_hotkey is required")}
	}
	if strings.EqualFold(c.LeftHotkey, c.RightHotkey) {
		return &ValidationError{Path: "right_hotkey", Err: fmt.Errorf("right_hotkey must differ from left_hotkey")}
	}
	switch c.FlipReference {
	case "display", "desktop":
	default:
		return &ValidationError{Path: "flip_reference", Err: fmt.Errorf("flip_reference must be one of: display, desktop")}
	}
	if c.QueueSize < 1 || c.QueueSize > MaxQueueSize {
		return &ValidationError{Path: "queue_size", Err: fmt.Errorf("queue_size must be between 1 and %d", MaxQueueSize)}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}

	return nil
}

// Warnings lists settings that are valid but probably not what the user
// meant. Callers report them through their own logger.
func (c *Config) Warnings() []string {
	var warnings []string
	if !c.PromptForPermission {
		warnings = append(warnings, "prompt_for_permission is false; a missing window manager will only show up at debug level")
	}
	if c.XAuthority != "" && c.Display == "" {
		warnings = append(warnings, "xauthority is set without display; it applies to $DISPLAY")
	}
	return warnings
}

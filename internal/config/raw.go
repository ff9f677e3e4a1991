package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// RawConfig is one config file as written. Nil fields were not set.
type RawConfig struct {
	Include             IncludeList `yaml:"include"`
	LeftHotkey          *string     `yaml:"left_hotkey"`
	RightHotkey         *string     `yaml:"right_hotkey"`
	PromptForPermission *bool       `yaml:"prompt_for_permission"`
	FlipReference       *string     `yaml:"flip_reference"`
	QueueSize           *int        `yaml:"queue_size"`
	LogLevel            *string     `yaml:"log_level"`
	Display             *string     `yaml:"display"`
	XAuthority          *string     `yaml:"xauthority"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.LeftHotkey != nil {
		out.LeftHotkey = overlay.LeftHotkey
	}
	if overlay.RightHotkey != nil {
		out.RightHotkey = overlay.RightHotkey
	}
	if overlay.PromptForPermission != nil {
		out.PromptForPermission = overlay.PromptForPermission
	}
	if overlay.FlipReference != nil {
		out.FlipReference = overlay.FlipReference
	}
	if overlay.QueueSize != nil {
		out.QueueSize = overlay.QueueSize
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.XAuthority != nil {
		out.XAuthority = overlay.XAuthority
	}

	return out
}

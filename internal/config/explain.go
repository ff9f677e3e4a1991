package config

import (
	"fmt"
	"strings"
)

// Paths lists every key Explain accepts, in file order.
var Paths = []string{
	"left_hotkey",
	"right_hotkey",
	"prompt_for_permission",
	"flip_reference",
	"queue_size",
	"log_level",
	"display",
	"xauthority",
}

// Explain returns the effective value at the given path and its source.
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	switch path {
	case "left_hotkey":
		return cfg.LeftHotkey, nil
	case "right_hotkey":
		return cfg.RightHotkey, nil
	case "prompt_for_permission":
		return cfg.PromptForPermission, nil
	case "flip_reference":
		return cfg.FlipReference, nil
	case "queue_size":
		return cfg.QueueSize, nil
	case "log_level":
		return cfg.LogLevel, nil
	case "display":
		return cfg.Display, nil
	case "xauthority":
		return cfg.XAuthority, nil
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}

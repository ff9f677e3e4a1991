package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// PathEnv overrides the config file location when set.
const PathEnv = "HALFSNAP_CONFIG"

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

type Source struct {
	Kind   SourceKind
	Name   string // for default
	File   string
	Line   int
	Column int
}

type LoadResult struct {
	Config  *Config
	Sources map[string]Source // key -> file position of the last writer
	Files   []string          // every file read, includes before includers
}

// DefaultConfigPath returns $HALFSNAP_CONFIG or ~/.config/halfsnap/config.yaml.
func DefaultConfigPath() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "halfsnap", "config.yaml"), nil
}

// Load reads the configuration from the standard location.
func Load() (*Config, error) {
	res, err := LoadWithSources()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadWithSources loads config and returns file-level sources for introspection.
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads path and everything it includes. A missing file yields
// the defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	l := &loader{
		seen:    make(map[string]bool),
		sources: make(map[string]Source),
	}

	if _, err := os.Stat(path); err == nil {
		if err := l.load(path); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg, err := BuildEffectiveConfig(l.raw)
	if err != nil {
		return nil, l.withSource(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, l.withSource(err)
	}

	return &LoadResult{
		Config:  cfg,
		Sources: l.sources,
		Files:   l.files,
	}, nil
}

// loader accumulates files in merge order: a file's includes first, in the
// order listed, then the file itself.
type loader struct {
	raw     RawConfig
	sources map[string]Source
	files   []string
	seen    map[string]bool
	stack   []string
}

func (l *loader) load(path string) error {
	canon := canonicalPath(path)
	if slices.Contains(l.stack, canon) {
		return fmt.Errorf("include cycle detected: %s -> %s", strings.Join(l.stack, " -> "), canon)
	}
	if l.seen[canon] {
		return nil
	}
	l.seen[canon] = true

	data, err := os.ReadFile(canon)
	if err != nil {
		return fmt.Errorf("%s: failed to read: %w", canon, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%s: failed to parse yaml: %w", canon, err)
	}
	var raw RawConfig
	if err := decodeStrict(data, &raw); err != nil {
		return fmt.Errorf("%s: %w", canon, err)
	}
	positions := keyPositions(&doc, canon)

	l.stack = append(l.stack, canon)
	for _, inc := range raw.Include {
		paths, err := expandInclude(canon, inc)
		if err != nil {
			at := positions["include"]
			return fmt.Errorf("%s:%d:%d: include %q: %w", canon, at.Line, at.Column, inc, err)
		}
		for _, p := range paths {
			if err := l.load(p); err != nil {
				return err
			}
		}
	}
	l.stack = l.stack[:len(l.stack)-1]

	l.raw = l.raw.merge(raw)
	for key, src := range positions {
		if key != "include" {
			l.sources[key] = src
		}
	}
	l.files = append(l.files, canon)
	return nil
}

// withSource points a validation error at the file line that set the key.
func (l *loader) withSource(err error) error {
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path == "" {
		return err
	}
	if src, ok := l.sources[verr.Path]; ok {
		verr.Source = src
	}
	return err
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

// expandInclude resolves include against the including file. A directory
// expands to its *.yaml and *.yml files in name order.
func expandInclude(baseFile, include string) ([]string, error) {
	if include == "" {
		return nil, fmt.Errorf("path is empty")
	}
	path, err := expandHome(include)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(baseFile), path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(ent.Name())) {
		case ".yaml", ".yml":
			files = append(files, filepath.Join(path, ent.Name()))
		}
	}
	// os.ReadDir already sorts by name.
	return files, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
}

// keyPositions maps each top-level key to the position of its value. The
// config is flat, so nested nodes are not walked.
func keyPositions(doc *yaml.Node, file string) map[string]Source {
	out := make(map[string]Source)
	node := doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return out
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		val := node.Content[i+1]
		out[node.Content[i].Value] = Source{
			Kind:   SourceFile,
			File:   file,
			Line:   val.Line,
			Column: val.Column,
		}
	}
	return out
}

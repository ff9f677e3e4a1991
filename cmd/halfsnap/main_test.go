package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/halfsnap/internal/config"
	"github.com/1broseidon/halfsnap/internal/ipc"
)

func TestRunConfigInitWritesLoadableDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "halfsnap", "config.yaml")

	if rc := runConfig([]string{"init", "--path", path}); rc != 0 {
		t.Fatalf("config init rc=%d, want 0", rc)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if rc := runConfig([]string{"validate", "--path", path}); rc != 0 {
		t.Fatalf("config validate rc=%d, want 0", rc)
	}
	if rc := runConfig([]string{"init", "--path", path}); rc != 1 {
		t.Fatalf("second init rc=%d, want 1 without --force", rc)
	}
	if rc := runConfig([]string{"init", "--path", path, "--force"}); rc != 0 {
		t.Fatalf("init --force rc=%d, want 0", rc)
	}
}

func TestRunConfigValidateRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("flip_reference: sideways\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if rc := runConfig([]string{"validate", "--path", path}); rc != 1 {
		t.Fatalf("validate rc=%d, want 1", rc)
	}
}

func TestRunConfigUsageErrors(t *testing.T) {
	if rc := runConfig(nil); rc != 2 {
		t.Fatalf("no subcommand rc=%d, want 2", rc)
	}
	if rc := runConfig([]string{"bogus"}); rc != 2 {
		t.Fatalf("unknown subcommand rc=%d, want 2", rc)
	}
	if rc := runConfig([]string{"explain"}); rc != 2 {
		t.Fatalf("explain without path rc=%d, want 2", rc)
	}
}

func TestRunTileRejectsBadArguments(t *testing.T) {
	if rc := runTile(nil); rc != 2 {
		t.Fatalf("no direction rc=%d, want 2", rc)
	}
	if rc := runTile([]string{"up"}); rc != 2 {
		t.Fatalf("bad direction rc=%d, want 2", rc)
	}
	if rc := runTile([]string{"left", "right"}); rc != 2 {
		t.Fatalf("two directions rc=%d, want 2", rc)
	}
}

func TestFormatSource(t *testing.T) {
	cases := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceFile, File: "/a.yaml", Line: 3, Column: 5}, "file:/a.yaml:3:5"},
		{config.Source{Kind: config.SourceFile, File: "/a.yaml"}, "file:/a.yaml"},
		{config.Source{Kind: config.SourceFile}, "file"},
		{config.Source{Kind: config.SourceDefault, Name: "defaults"}, "default:defaults"},
		{config.Source{Kind: config.SourceDefault}, "default"},
	}
	for _, tc := range cases {
		if got := formatSource(tc.src); got != tc.want {
			t.Errorf("formatSource(%+v) = %q, want %q", tc.src, got, tc.want)
		}
	}
}

func TestPrintDisplays(t *testing.T) {
	var buf bytes.Buffer
	printDisplays(&buf, []ipc.DisplayInfo{
		{
			ID: 0, Name: "DP-1", Primary: true,
			Frame:   ipc.RectInfo{Space: "bottom-left", Width: 1920, Height: 1080},
			Visible: ipc.RectInfo{Space: "bottom-left", Width: 1920, Height: 1055},
		},
		{
			ID: 1, Name: "HDMI-1",
			Frame:   ipc.RectInfo{Space: "bottom-left", X: 1920, Width: 1280, Height: 1024},
			Visible: ipc.RectInfo{Space: "bottom-left", X: 1920, Width: 1280, Height: 1024},
		},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "DP-1") || !strings.Contains(lines[1], "*") {
		t.Errorf("primary row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "1280x1024+1920+0") {
		t.Errorf("second row = %q", lines[2])
	}
}

func TestPrintStatusIncludesLastResult(t *testing.T) {
	var buf bytes.Buffer
	printStatus(&buf, &ipc.StatusData{
		DaemonRunning: true,
		Calls:         2,
		Succeeded:     1,
		Failed:        1,
		Last:          &ipc.TileResult{Direction: "left", State: "resolving-window", Error: "no window"},
		LastAt:        "2026-01-02T03:04:05Z",
	})

	out := buf.String()
	if !strings.Contains(out, "1 ok, 1 failed, 2 total") {
		t.Errorf("missing counters:\n%s", out)
	}
	if !strings.Contains(out, "tile left failed at resolving-window: no window") {
		t.Errorf("missing last result:\n%s", out)
	}
}

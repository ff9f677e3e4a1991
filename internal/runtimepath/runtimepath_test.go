package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got != td {
		t.Fatalf("Dir() = %q, want %q", got, td)
	}
}

func TestDir_FallbacksWhenXDGRuntimeDirMissing(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got == "" {
		t.Fatal("Dir() returned empty path")
	}

	wantRun := fmt.Sprintf("/run/user/%d", os.Getuid())
	wantTmp := fmt.Sprintf("/tmp/halfsnap-runtime-%d", os.Getuid())
	if got != wantRun && got != wantTmp {
		t.Fatalf("Dir() = %q, want %q or %q", got, wantRun, wantTmp)
	}
}

func TestSocketPath(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)
	t.Setenv(SocketEnv, "")

	socket, err := SocketPath()
	if err != nil {
		t.Fatalf("SocketPath() error: %v", err)
	}
	if !strings.HasSuffix(socket, "/halfsnap.sock") || !strings.HasPrefix(socket, td) {
		t.Fatalf("SocketPath() = %q, want %s/halfsnap.sock", socket, td)
	}
}

func TestSocketPath_EnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.sock")
	t.Setenv(SocketEnv, want)

	got, err := SocketPath()
	if err != nil {
		t.Fatalf("SocketPath() error: %v", err)
	}
	if got != want {
		t.Fatalf("SocketPath() = %q, want %q", got, want)
	}
}

func TestPrivateTempDir_CreatesOwnedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "rt")

	got, err := privateTempDir(dir, os.Getuid())
	if err != nil {
		t.Fatalf("privateTempDir: %v", err)
	}
	if got != dir {
		t.Fatalf("got %q, want %q", got, dir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm&0077 != 0 {
		t.Fatalf("mode = %v, want no group/other bits", perm)
	}
}

func TestPrivateTempDir_RejectsForeignOwner(t *testing.T) {
	dir := t.TempDir()
	if _, err := privateTempDir(dir, os.Getuid()+1); err == nil || !strings.Contains(err.Error(), "owned by") {
		t.Fatalf("expected ownership error, got %v", err)
	}
}

func TestPrivateTempDir_RejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(file, nil, 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := privateTempDir(file, os.Getuid()); err == nil {
		t.Fatal("expected error for a regular file")
	}
}

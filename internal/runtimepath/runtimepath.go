// Package runtimepath locates the per-user directory that holds the daemon
// socket.
package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

const (
	// SocketEnv overrides the socket path when set.
	SocketEnv = "HALFSNAP_SOCKET"
	// SocketName is the socket file inside Dir.
	SocketName = "halfsnap.sock"
)

// Dir returns the first usable runtime directory out of $XDG_RUNTIME_DIR,
// /run/user/<uid> and /tmp/halfsnap-runtime-<uid>. The /tmp fallback is
// created 0700 and rejected if another user owns it.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir, nil
	}

	uid := os.Getuid()
	if dir := fmt.Sprintf("/run/user/%d", uid); isDir(dir) {
		return dir, nil
	}
	return privateTempDir(fmt.Sprintf("/tmp/halfsnap-runtime-%d", uid), uid)
}

// SocketPath returns the daemon IPC socket path.
func SocketPath() (string, error) {
	if p := os.Getenv(SocketEnv); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SocketName), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func privateTempDir(dir string, uid int) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	info, err := os.Lstat(dir)
	if err != nil {
		return "", fmt.Errorf("failed to stat runtime dir: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("runtime dir %s is not a directory", dir)
	}
	if st, ok := info.Sys().(*syscall.Stat_t); ok && int(st.Uid) != uid {
		return "", fmt.Errorf("runtime dir %s is owned by uid %d", dir, st.Uid)
	}
	return dir, nil
}

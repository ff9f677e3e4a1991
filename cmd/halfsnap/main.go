package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/halfsnap/internal/config"
	"github.com/1broseidon/halfsnap/internal/daemon"
	"github.com/1broseidon/halfsnap/internal/ipc"
	"github.com/1broseidon/halfsnap/internal/logging"
	"github.com/1broseidon/halfsnap/internal/platform"
	"github.com/1broseidon/halfsnap/internal/runtimepath"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "tile":
		os.Exit(runTile(os.Args[2:]))
	case "displays":
		os.Exit(runDisplays(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: halfsnap <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the halfsnap daemon (foreground)")
	fmt.Fprintln(w, "  tile <left|right>   Tile the focused window to one half of its display")
	fmt.Fprintln(w, "  displays            List displays and their frames")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  reload              Ask the daemon to reread its config")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "  config init         Write the default configuration file")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'halfsnap <command> --help' for command-specific options.")
}

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/halfsnap/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: halfsnap daemon [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run in the foreground. SIGHUP reloads the config; SIGINT and SIGTERM stop.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	configPath := *path
	if configPath == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		configPath = p
	}
	res, err := config.LoadFromPath(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	cfg := res.Config

	var level slog.LevelVar
	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	level.Set(lvl)
	logger := logging.NewLeveler(os.Stderr, &level)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", "path", configPath, "files", len(res.Files))

	if cfg.XAuthority != "" {
		os.Setenv("XAUTHORITY", cfg.XAuthority)
	}

	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display, logger.With("component", "x11"))
	if err != nil {
		logger.Error("failed to connect to display", "error", err)
		return 1
	}
	defer backend.Disconnect()

	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		logger.Warn("IPC disabled", "error", err)
		socketPath = ""
	}

	d, err := daemon.New(cfg, backend, daemon.Options{
		ConfigPath: configPath,
		SocketPath: socketPath,
		Level:      &level,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("failed to create daemon", "error", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		for {
			select {
			case sig := <-sigCh:
				if sig == syscall.SIGHUP {
					if err := d.Reload(); err != nil {
						logger.Error("reload failed", "error", err)
					}
					continue
				}
				logger.Info("signal received", "signal", sig.String())
				cancel()
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := d.Run(ctx); err != nil {
		if errors.Is(err, ipc.ErrAlreadyRunning) {
			logger.Error("another halfsnap daemon is running", "socket", socketPath)
		} else {
			logger.Error("daemon failed", "error", err)
		}
		return 1
	}
	return 0
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: halfsnap status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printStatus(os.Stdout, status)
	return 0
}

func printStatus(w io.Writer, status *ipc.StatusData) {
	fmt.Fprintf(w, "daemon_running: %v\n", status.DaemonRunning)
	fmt.Fprintf(w, "pid:            %d\n", status.PID)
	fmt.Fprintf(w, "uptime_seconds: %d\n", status.UptimeSeconds)
	fmt.Fprintf(w, "permission:     %s\n", yesNo(status.Permission))
	fmt.Fprintf(w, "flip_reference: %s\n", status.FlipReference)
	fmt.Fprintf(w, "queue_pending:  %d\n", status.QueuePending)
	fmt.Fprintf(w, "tiles:          %d ok, %d failed, %d total\n", status.Succeeded, status.Failed, status.Calls)
	if status.Last != nil {
		fmt.Fprintf(w, "last:           %s (%s)\n", status.Last.Summary(), status.LastAt)
	}
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: halfsnap reload")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask the running daemon to reread its configuration.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "reload takes no arguments")
		fs.Usage()
		return 2
	}

	if err := ipc.NewClient().Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("config reloaded")
	return 0
}

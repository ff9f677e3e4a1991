package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/1broseidon/halfsnap/internal/config"
	"github.com/1broseidon/halfsnap/internal/engine"
	"github.com/1broseidon/halfsnap/internal/ipc"
	"github.com/1broseidon/halfsnap/internal/logging"
	"github.com/1broseidon/halfsnap/internal/platform"
	"github.com/1broseidon/halfsnap/internal/tiling"
)

func runTile(args []string) int {
	fs := flag.NewFlagSet("tile", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	direct := fs.Bool("direct", false, "Tile in this process instead of asking the daemon")
	verbose := fs.Bool("v", false, "Log each tiling stage (with --direct)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: halfsnap tile [--direct] [-v] <left|right>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Tile the focused window to the left or right half of its display.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	dir, err := tiling.ParseDirection(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	var res ipc.TileResult
	if *direct {
		out, err := tileDirect(dir, *verbose)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		res = ipc.NewTileResult(out)
	} else {
		r, err := ipc.NewClient().Tile(dir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			printHint(os.Stderr, "Is the daemon running? Use --direct to tile without it.")
			return 1
		}
		res = *r
	}

	printTileResult(os.Stdout, res)
	if !res.OK {
		return 1
	}
	return 0
}

// tileDirect runs one tile against a fresh X connection using the user's
// config.
func tileDirect(dir tiling.Direction, verbose bool) (engine.Outcome, error) {
	cfg, err := config.Load()
	if err != nil {
		return engine.Outcome{}, err
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(os.Stderr, level)
	for _, w := range cfg.Warnings() {
		logger.Debug("config warning", "detail", w)
	}

	backend, err := openBackend(cfg, logger)
	if err != nil {
		return engine.Outcome{}, err
	}
	defer backend.Disconnect()

	ref, err := engine.ParseReference(cfg.FlipReference)
	if err != nil {
		return engine.Outcome{}, err
	}
	tiler := engine.NewTiler(backend, engine.Options{
		PromptForPermission: cfg.PromptForPermission,
		FlipReference:       ref,
	}, logger)
	return tiler.Tile(dir), nil
}

func openBackend(cfg *config.Config, logger *slog.Logger) (*platform.LinuxBackend, error) {
	if cfg.XAuthority != "" {
		os.Setenv("XAUTHORITY", cfg.XAuthority)
	}
	return platform.NewLinuxBackendFromDisplay(cfg.Display, logger)
}

func runDisplays(args []string) int {
	fs := flag.NewFlagSet("displays", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	jsonOut := fs.Bool("json", false, "Print JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: halfsnap displays [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List displays. Asks the daemon first and falls back to a direct X connection.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "displays takes no arguments")
		fs.Usage()
		return 2
	}

	data, err := ipc.NewClient().GetDisplays()
	if err != nil {
		data, err = displaysDirect()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	printDisplays(os.Stdout, data.Displays)
	return 0
}

func displaysDirect() (*ipc.DisplaysData, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	backend, err := openBackend(cfg, logging.New(os.Stderr, slog.LevelWarn))
	if err != nil {
		return nil, err
	}
	defer backend.Disconnect()

	displays, err := backend.Displays()
	if err != nil {
		return nil, err
	}
	data := &ipc.DisplaysData{Displays: make([]ipc.DisplayInfo, 0, len(displays))}
	for _, d := range displays {
		data.Displays = append(data.Displays, ipc.NewDisplayInfo(d))
	}
	return data, nil
}

func printDisplays(w io.Writer, displays []ipc.DisplayInfo) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRIMARY\tFRAME\tVISIBLE")
	for _, d := range displays {
		primary := ""
		if d.Primary {
			primary = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", d.ID, d.Name, primary, formatRect(d.Frame), formatRect(d.Visible))
	}
	tw.Flush()
}

func formatRect(r ipc.RectInfo) string {
	return fmt.Sprintf("%dx%d+%d+%d (%s)", r.Width, r.Height, r.X, r.Y, r.Space)
}

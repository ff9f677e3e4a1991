// Package mcp exposes halfsnap to MCP clients over stdio. Every tool call is
// forwarded to the running daemon, so tiling stays serialized with the
// keyboard shortcuts.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/halfsnap/internal/ipc"
	"github.com/1broseidon/halfsnap/internal/tiling"
)

const (
	ServerName    = "halfsnap"
	ServerVersion = "0.1.0"
)

// Daemon is the part of the IPC client the tools need.
type Daemon interface {
	Tile(dir tiling.Direction) (*ipc.TileResult, error)
	GetDisplays() (*ipc.DisplaysData, error)
	GetStatus() (*ipc.StatusData, error)
}

// Server is the MCP server for halfsnap.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Daemon
}

// NewServer creates an MCP server that forwards to daemon.
func NewServer(daemon Daemon) *Server {
	s := &Server{daemon: daemon}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "tile_window",
		Description: "Move the focused window so it fills the left or right half of the display it is on. Needs the halfsnap daemon running. A failed tile (no focused window, missing window manager support) is reported in the result, not as a tool error.",
	}, s.handleTileWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_displays",
		Description: "List the connected displays with their full and visible frames. Frames use bottom-left coordinates.",
	}, s.handleListDisplays)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "daemon_status",
		Description: "Report daemon uptime, window manager support and tile counters.",
	}, s.handleDaemonStatus)
}

func (s *Server) handleTileWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args TileWindowInput) (*mcpsdk.CallToolResult, TileWindowOutput, error) {
	dir, err := tiling.ParseDirection(args.Direction)
	if err != nil {
		return nil, TileWindowOutput{}, err
	}

	res, err := s.daemon.Tile(dir)
	if err != nil {
		return nil, TileWindowOutput{}, fmt.Errorf("tile %s: %w", dir, err)
	}

	return nil, TileWindowOutput{
		OK:      res.OK,
		Summary: res.Summary(),
		State:   res.State,
		Window:  res.Window,
		Display: res.Display,
		Target:  res.Target,
		Error:   res.Error,
	}, nil
}

func (s *Server) handleListDisplays(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListDisplaysInput) (*mcpsdk.CallToolResult, ListDisplaysOutput, error) {
	data, err := s.daemon.GetDisplays()
	if err != nil {
		return nil, ListDisplaysOutput{}, fmt.Errorf("list displays: %w", err)
	}
	displays := data.Displays
	if displays == nil {
		displays = []ipc.DisplayInfo{}
	}
	return nil, ListDisplaysOutput{Displays: displays}, nil
}

func (s *Server) handleDaemonStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ DaemonStatusInput) (*mcpsdk.CallToolResult, DaemonStatusOutput, error) {
	status, err := s.daemon.GetStatus()
	if err != nil {
		return nil, DaemonStatusOutput{}, fmt.Errorf("daemon status: %w", err)
	}
	return nil, DaemonStatusOutput{Status: *status}, nil
}

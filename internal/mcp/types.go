package mcp

import "github.com/1broseidon/halfsnap/internal/ipc"

// TileWindowInput is the input for the tile_window tool.
type TileWindowInput struct {
	Direction string `json:"direction" jsonschema:"Half of the display to fill: left or right"`
}

// TileWindowOutput is the output for the tile_window tool.
type TileWindowOutput struct {
	OK      bool          `json:"ok"`
	Summary string        `json:"summary"`
	State   string        `json:"state"`
	Window  uint32        `json:"window,omitempty"`
	Display string        `json:"display,omitempty"`
	Target  *ipc.RectInfo `json:"target,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// ListDisplaysInput is the input for the list_displays tool.
type ListDisplaysInput struct{}

// ListDisplaysOutput is the output for the list_displays tool.
type ListDisplaysOutput struct {
	Displays []ipc.DisplayInfo `json:"displays"`
}

// DaemonStatusInput is the input for the daemon_status tool.
type DaemonStatusInput struct{}

// DaemonStatusOutput is the output for the daemon_status tool.
type DaemonStatusOutput struct {
	Status ipc.StatusData `json:"status"`
}

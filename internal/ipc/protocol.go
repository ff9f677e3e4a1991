package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/halfsnap/internal/engine"
	"github.com/1broseidon/halfsnap/internal/geom"
	"github.com/1broseidon/halfsnap/internal/platform"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandTile        CommandType = "TILE"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandGetDisplays CommandType = "GET_DISPLAYS"
	CommandReload      CommandType = "RELOAD"
)

// Request represents an IPC request from client to server
type Request struct {
	// ID correlates a request with its response and the daemon's log lines.
	ID      string          `json:"id,omitempty"`
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	ID     string          `json:"id,omitempty"` // echoes Request.ID
	Status string          `json:"status"`       // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// TilePayload is the payload of a TILE request.
type TilePayload struct {
	Direction string `json:"direction"`
}

// RectInfo is a rectangle on the wire.
type RectInfo struct {
	Space  string `json:"space"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func rectInfo(r geom.Rect) RectInfo {
	return RectInfo{Space: r.Space.String(), X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// TileResult reports how a TILE request ended. A failed tile is still an OK
// response; Error carries the reason.
type TileResult struct {
	Direction string    `json:"direction"`
	OK        bool      `json:"ok"`
	State     string    `json:"state"`
	Window    uint32    `json:"window,omitempty"`
	Display   string    `json:"display,omitempty"`
	Target    *RectInfo `json:"target,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// NewTileResult converts an outcome for the wire.
func NewTileResult(out engine.Outcome) TileResult {
	res := TileResult{
		Direction: out.Direction.String(),
		OK:        out.OK(),
		State:     out.State.String(),
		Window:    uint32(out.Window),
	}
	if out.Display != nil {
		res.Display = out.Display.Name
	}
	if out.Target.Space != geom.SpaceUnknown {
		target := rectInfo(out.Target)
		res.Target = &target
	}
	if out.Err != nil {
		res.Error = out.Err.Error()
	}
	return res
}

// Summary is a one-line human description of the result.
func (r TileResult) Summary() string {
	if !r.OK {
		return fmt.Sprintf("tile %s failed at %s: %s", r.Direction, r.State, r.Error)
	}
	if r.Target == nil {
		return fmt.Sprintf("tiled %s", r.Direction)
	}
	return fmt.Sprintf("tiled window 0x%x %s on %s to %dx%d+%d+%d",
		r.Window, r.Direction, r.Display, r.Target.Width, r.Target.Height, r.Target.X, r.Target.Y)
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	DaemonRunning bool        `json:"daemon_running"`
	PID           int         `json:"pid"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	Permission    bool        `json:"permission"`
	FlipReference string      `json:"flip_reference"`
	QueuePending  int         `json:"queue_pending"`
	Calls         int         `json:"calls"`
	Succeeded     int         `json:"succeeded"`
	Failed        int         `json:"failed"`
	Last          *TileResult `json:"last,omitempty"`
	LastAt        string      `json:"last_at,omitempty"` // RFC 3339
}

// DisplayInfo represents information about a single display
type DisplayInfo struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Primary bool     `json:"primary"`
	Frame   RectInfo `json:"frame"`
	Visible RectInfo `json:"visible"`
}

// NewDisplayInfo converts a display for the wire.
func NewDisplayInfo(d platform.Display) DisplayInfo {
	return DisplayInfo{
		ID:      d.ID,
		Name:    d.Name,
		Primary: d.Primary,
		Frame:   rectInfo(d.Frame),
		Visible: rectInfo(d.Visible),
	}
}

// DisplaysData represents the data returned by GET_DISPLAYS
type DisplaysData struct {
	Displays []DisplayInfo `json:"displays"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

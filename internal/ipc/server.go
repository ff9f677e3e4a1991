package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/halfsnap/internal/engine"
	"github.com/1broseidon/halfsnap/internal/platform"
	"github.com/1broseidon/halfsnap/internal/tiling"
	"github.com/google/uuid"
)

// DefaultTileTimeout bounds how long a TILE request waits for its outcome.
const DefaultTileTimeout = 5 * time.Second

// ErrAlreadyRunning is returned by Start when another daemon answers on the
// socket.
var ErrAlreadyRunning = errors.New("daemon already running")

// Handler carries out IPC commands.
type Handler interface {
	Tile(ctx context.Context, dir tiling.Direction) (engine.Outcome, error)
	Status() StatusData
	Displays() ([]platform.Display, error)
	Reload() error
}

// Server handles IPC requests from clients
type Server struct {
	socketPath  string
	listener    net.Listener
	handler     Handler
	logger      *slog.Logger
	tileTimeout time.Duration

	wg           sync.WaitGroup
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server on socketPath.
func NewServer(socketPath string, handler Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		socketPath:  socketPath,
		handler:     handler,
		logger:      logger.With("component", "ipc"),
		tileTimeout: DefaultTileTimeout,
	}
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	if conn, err := net.DialTimeout("unix", s.socketPath, 200*time.Millisecond); err == nil {
		conn.Close()
		return fmt.Errorf("%w on %s", ErrAlreadyRunning, s.socketPath)
	}
	// Nothing answered, so any file left here is stale.
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.stopping() {
				return
			}
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

func (s *Server) stopping() bool {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()
	return s.shuttingDown
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(s.tileTimeout + time.Second))

	reader := bufio.NewReader(conn)

	// One JSON request per line.
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	resp := s.handleCommand(req)
	resp.ID = req.ID

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Warn("failed to marshal response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	s.logger.Debug("IPC request", "command", req.Command, "request_id", req.ID)
	switch req.Command {
	case CommandTile:
		return s.handleTile(req.Payload)
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetDisplays:
		return s.handleGetDisplays()
	case CommandReload:
		return s.handleReload()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleTile(payload json.RawMessage) *Response {
	var req TilePayload
	if len(payload) == 0 {
		return NewErrorResponse("TILE requires a direction")
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid TILE payload: %v", err))
	}
	dir, err := tiling.ParseDirection(req.Direction)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.tileTimeout)
	defer cancel()

	out, err := s.handler.Tile(ctx, dir)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to tile: %v", err))
	}

	resp, err := NewOKResponse(NewTileResult(out))
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleGetStatus() *Response {
	resp, err := NewOKResponse(s.handler.Status())
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleGetDisplays() *Response {
	displays, err := s.handler.Displays()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to list displays: %v", err))
	}

	data := DisplaysData{Displays: make([]DisplayInfo, 0, len(displays))}
	for _, d := range displays {
		data.Displays = append(data.Displays, NewDisplayInfo(d))
	}

	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// handleReload reloads the configuration
func (s *Server) handleReload() *Response {
	s.logger.Info("received RELOAD")
	if err := s.handler.Reload(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop closes the listener, waits for open connections and removes the
// socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	if s.shuttingDown {
		s.shutdownMu.Unlock()
		return
	}
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}

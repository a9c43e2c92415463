// Package web serves arcade sessions over websockets. Clients send JSON
// commands and receive msgpack snapshot frames plus JSON events.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/engine"
	"github.com/vovakirdan/minigames/internal/platform"
)

const (
	writeWait    = 5 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = pongWait * 9 / 10
	frameQueue   = 8
	eventQueue   = 64
)

// Message types.
const (
	TypeStart = "start"
	TypeInput = "input"
	TypeStop  = "stop"
	TypeScore = "score"
	TypeEnd   = "end"
	TypeError = "error"
)

// ClientMessage is a command from the browser. Input names a control:
// left, right, up, down, action, secondary, pause, point or text.
type ClientMessage struct {
	Type       string  `json:"type"`
	Game       string  `json:"game,omitempty"`
	Input      string  `json:"input,omitempty"`
	X          float64 `json:"x,omitempty"`
	Y          float64 `json:"y,omitempty"`
	Text       string  `json:"text,omitempty"`
	TimeLimit  int     `json:"time_limit,omitempty"`
	Difficulty string  `json:"difficulty,omitempty"`
	Seed       int64   `json:"seed,omitempty"`
}

// Event is a JSON message to the browser.
type Event struct {
	Type  string `json:"type"`
	Game  string `json:"game,omitempty"`
	Score int    `json:"score"`
	Level int    `json:"level,omitempty"`
	Error string `json:"error,omitempty"`
}

// Server upgrades /ws requests. Each connection gets its own host, so a
// client runs at most one session at a time.
type Server struct {
	deps     platform.Deps
	config   core.RuntimeConfig
	upgrader websocket.Upgrader
	log      *log.Logger
}

// NewServer creates a server; cfg seeds every session's runtime config.
func NewServer(deps platform.Deps, cfg core.RuntimeConfig) *Server {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	return &Server{
		deps:   deps,
		config: cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: deps.Logger.WithPrefix("web"),
	}
}

// Handler routes GET /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.ServeWS)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("starting websocket server", "address", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdown)
	if e := <-errc; e != nil && !errors.Is(e, http.ErrServerClosed) && err == nil {
		err = e
	}
	return err
}

// ServeWS upgrades the request and serves the connection until it closes.
// A game query parameter starts that game right away.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "err", err)
		return
	}

	c := newConn(s, ws)
	s.log.Info("connection opened", "remote", ws.RemoteAddr().String())
	defer s.log.Info("connection closed", "remote", ws.RemoteAddr().String())

	go c.writeLoop()
	if game := r.URL.Query().Get("game"); game != "" {
		c.start(ClientMessage{Type: TypeStart, Game: game})
	}
	c.readLoop()
}

type conn struct {
	srv  *Server
	ws   *websocket.Conn
	host *engine.Host
	log  *log.Logger

	frames chan []byte
	events chan []byte
	done   chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	loop   sync.WaitGroup
}

func newConn(s *Server, ws *websocket.Conn) *conn {
	return &conn{
		srv:    s,
		ws:     ws,
		host:   &engine.Host{},
		log:    s.log.With("remote", ws.RemoteAddr().String()),
		frames: make(chan []byte, frameQueue),
		events: make(chan []byte, eventQueue),
		done:   make(chan struct{}),
	}
}

func (c *conn) readLoop() {
	defer c.close()

	c.ws.SetReadLimit(4096)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Error("read failed", "err", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendEvent(Event{Type: TypeError, Error: "malformed message"})
			continue
		}
		c.handle(msg)
	}
}

func (c *conn) handle(msg ClientMessage) {
	switch msg.Type {
	case TypeStart:
		c.start(msg)
	case TypeStop:
		c.host.Stop()
	case TypeInput:
		if s := c.host.Current(); s != nil {
			applyInput(s, msg)
		}
	default:
		c.sendEvent(Event{Type: TypeError, Error: "unknown message type " + msg.Type})
	}
}

// applyInput forwards one control to the session.
func applyInput(s *engine.Session, msg ClientMessage) {
	switch msg.Input {
	case "left":
		s.OnDirectional(core.DirLeft)
	case "right":
		s.OnDirectional(core.DirRight)
	case "up":
		s.OnDirectional(core.DirUp)
	case "down":
		s.OnDirectional(core.DirDown)
	case "action":
		s.OnAction()
	case "secondary":
		s.OnSecondary()
	case "pause":
		s.TogglePause()
	case "point":
		s.OnPositional(msg.X, msg.Y)
	case "text":
		s.OnText(msg.Text)
	}
}

// start replaces the running session with a new one and drives it from
// its own frame loop.
func (c *conn) start(msg ClientMessage) {
	c.stopLoop()

	cfg := c.srv.config
	if msg.TimeLimit != 0 {
		cfg.TimeLimit = msg.TimeLimit
	}
	if msg.Difficulty != "" {
		cfg.Difficulty = msg.Difficulty
	}
	if msg.Seed != 0 {
		cfg.Seed = msg.Seed
	}

	deps := c.srv.deps
	deps.Logger = c.log
	s, _, err := platform.Launch(c.host, msg.Game, cfg, deps)
	if err != nil {
		c.sendEvent(Event{Type: TypeError, Game: msg.Game, Error: err.Error()})
		return
	}
	game := msg.Game
	s.SetScoreChangeCallback(func(score, level int) {
		c.sendEvent(Event{Type: TypeScore, Game: game, Score: score, Level: level})
	})
	s.SetGameEndCallback(func(score, level int) {
		c.sendEvent(Event{Type: TypeEnd, Game: game, Score: score, Level: level})
	})
	c.log.Debug("session started", "game", game)

	ctx, cancel := context.WithCancel(context.Background())
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()

	c.loop.Add(1)
	go func() {
		defer c.loop.Done()
		_ = engine.Loop{Rate: cfg.TickRate}.Run(ctx, func(now time.Time) bool {
			alive := s.Frame(now)
			data, err := EncodeFrame(s.Snapshot())
			if err != nil {
				c.log.Error("frame encoding failed", "err", err)
				return false
			}
			c.sendFrame(data)
			return alive
		})
	}()
}

func (c *conn) stopLoop() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	c.loop.Wait()
}

// sendFrame queues a frame, evicting the oldest queued one when the client
// falls behind.
func (c *conn) sendFrame(data []byte) {
	for {
		select {
		case c.frames <- data:
			return
		case <-c.done:
			return
		default:
		}
		select {
		case <-c.frames:
		default:
		}
	}
}

func (c *conn) sendEvent(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	select {
	case c.events <- data:
	case <-c.done:
	default:
		c.log.Warn("event dropped", "type", ev.Type)
	}
}

func (c *conn) writeLoop() {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	write := func(kind int, data []byte) bool {
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.ws.WriteMessage(kind, data); err != nil {
			c.log.Debug("write failed", "err", err)
			return false
		}
		return true
	}

	for {
		// Events go out before any frame queued after them.
		select {
		case data := <-c.events:
			if !write(websocket.TextMessage, data) {
				return
			}
			continue
		default:
		}

		select {
		case <-c.done:
			return
		case data := <-c.events:
			if !write(websocket.TextMessage, data) {
				return
			}
		case data := <-c.frames:
			if !write(websocket.BinaryMessage, data) {
				return
			}
		case <-ping.C:
			if !write(websocket.PingMessage, nil) {
				return
			}
		}
	}
}

func (c *conn) close() {
	c.stopLoop()
	c.host.Stop()
	close(c.done)
	_ = c.ws.Close()
}

package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/san-kum/lissatunnel/internal/session"
	"github.com/san-kum/lissatunnel/internal/tunnel"
)

const (
	writeWait  = 200 * time.Millisecond
	maxFrameDt = 0.1
)

var ErrUnknownToggle = errors.New("stream: unknown view toggle")

// Server owns a session and is the only thing that touches it. Every
// session call happens under mu.
type Server struct {
	mu       sync.Mutex
	sess     *session.Session
	fps      int
	log      zerolog.Logger
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader

	published *tunnel.Tunnel
	revision  uint64
	startTime time.Time
}

func NewServer(s *session.Session, fps int, log zerolog.Logger) *Server {
	if fps <= 0 {
		fps = 60
	}
	return &Server{
		sess:      s,
		fps:       fps,
		log:       log,
		clients:   map[*websocket.Conn]bool{},
		upgrader:  websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		published: s.Tunnel(),
		startTime: time.Now(),
	}
}

// Handler routes the frame, control, mesh and health endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleFramesWS)
	mux.HandleFunc("/control", s.HandleControlWS)
	mux.HandleFunc("/mesh", s.HandleMesh)
	mux.HandleFunc("/health", s.HandleHealth)
	return withCORS(mux)
}

// Run ticks the session at the server's frame rate until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	nominal := 1 / float64(s.fps)
	last := time.Time{}
	for {
		select {
		case <-ctx.Done():
			s.closeClients()
			return nil
		case now := <-ticker.C:
			dt := nominal
			if !last.IsZero() {
				if elapsed := now.Sub(last).Seconds(); elapsed <= maxFrameDt {
					dt = elapsed
				}
			}
			last = now
			s.Step(dt)
		}
	}
}

// Step advances the session by dt and broadcasts the resulting frame.
func (s *Server) Step(dt float64) Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sess.Tick(dt)
	f := frameOf(s.sess.Snapshot(), s.syncRevision())
	b, err := json.Marshal(f)
	if err != nil {
		s.log.Error().Err(err).Msg("encode frame")
		return f
	}
	for c := range s.clients {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			s.log.Debug().Err(err).Msg("write frame")
			delete(s.clients, c)
			c.Close()
		}
	}
	return f
}

// syncRevision bumps the revision when the session published a new tunnel.
// Callers hold mu.
func (s *Server) syncRevision() uint64 {
	if t := s.sess.Tunnel(); t != s.published {
		s.published = t
		s.revision++
		s.log.Debug().Uint64("revision", s.revision).Int("rings", len(t.Rings)).Msg("tunnel revision")
	}
	return s.revision
}

func (s *Server) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	t := s.sess.Tunnel()
	hello := Hello{
		Type:     TypeHello,
		Revision: s.syncRevision(),
		Period:   t.Period(),
		Rings:    len(t.Rings),
		Sides:    t.Sides,
		FPS:      s.fps,
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(hello); err != nil {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.clients[conn] = true
	s.mu.Unlock()
	s.log.Info().Str("remote", r.RemoteAddr).Msg("frame client connected")

	go func() {
		defer s.dropClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) dropClient(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.Close()
		delete(s.clients, c)
	}
}

func (s *Server) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg Control
		var applyErr error
		if err := json.Unmarshal(data, &msg); err != nil {
			applyErr = fmt.Errorf("invalid control message: %w", err)
		} else {
			applyErr = s.Apply(msg)
		}
		if err := conn.WriteJSON(s.Status(applyErr)); err != nil {
			return
		}
	}
}

// Apply runs every setter present in msg. A rejected setter does not stop
// the others; the errors are joined.
func (s *Server) Apply(msg Control) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if msg.Speed != nil {
		s.sess.SetSpeed(*msg.Speed)
	}
	if msg.CameraT != nil {
		s.sess.SetCameraT(*msg.CameraT)
	}
	if msg.Outside != nil {
		s.sess.SetOutsideView(*msg.Outside)
	}
	if msg.NumPolygons != nil {
		errs = append(errs, s.sess.SetNumPolygons(*msg.NumPolygons))
	}
	if msg.WallAlpha != nil {
		errs = append(errs, s.sess.SetWallAlpha(*msg.WallAlpha))
	}
	if msg.Intermittent != nil {
		errs = append(errs, s.sess.SetIntermittentWalls(*msg.Intermittent))
	}
	if msg.Toggle != "" && !s.sess.ToggleView(msg.Toggle) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownToggle, msg.Toggle))
	}
	if msg.Restart {
		errs = append(errs, s.sess.Restart())
	}
	s.syncRevision()

	err := errors.Join(errs...)
	if err != nil {
		s.log.Warn().Err(err).Msg("control rejected")
	}
	return err
}

// Status reports the session state, with err as the outcome of the last
// control message.
func (s *Server) Status(err error) Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	cam := s.sess.Camera()
	opts := s.sess.TunnelOptions()
	st := Status{
		Type:         TypeStatus,
		OK:           err == nil,
		Revision:     s.syncRevision(),
		T:            cam.T,
		Speed:        cam.Speed,
		Outside:      cam.OutsideView,
		NumPolygons:  opts.NumPolygons,
		WallAlpha:    opts.WallAlpha,
		Intermittent: opts.Intermittent,
		View:         s.sess.View(),
	}
	if err != nil {
		st.Error = err.Error()
	}
	return st
}

func (s *Server) HandleMesh(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	t := s.sess.Tunnel()
	rev := s.syncRevision()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(MeshMessage{Revision: rev, Sides: t.Sides, Mesh: t.Mesh()})
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := map[string]any{
		"frame":    s.sess.Frames(),
		"revision": s.syncRevision(),
		"uptime_s": time.Since(s.startTime).Seconds(),
		"clients":  len(s.clients),
		"fps":      s.fps,
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.ServeHTTP(w, r)
	})
}

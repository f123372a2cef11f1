// Package live implements the websocket preview protocol: each session
// holds a screen instance and a scope, scope updates from the client
// re-execute the screen, and the resulting tree is diffed against the
// previous render so only patches go over the wire.
package live

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Jjop12/renpy/pkg/renderer/html"
	"github.com/Jjop12/renpy/pkg/screen"
	"github.com/Jjop12/renpy/pkg/sl"
	"github.com/Jjop12/renpy/pkg/vdom"
)

// SessionFactory builds the screen instance and initial scope for a new
// session. Called once per websocket connection.
type SessionFactory func() (*screen.Instance, sl.Scope, error)

// Server handles websocket connections for live previews.
type Server struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger
	factory  SessionFactory

	mu       sync.RWMutex
	sessions map[string]*Session
	nextID   atomic.Uint64
}

// NewServer creates a live preview server.
func NewServer(logger *slog.Logger, factory SessionFactory) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(*http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:   logger,
		factory:  factory,
		sessions: make(map[string]*Session),
	}
}

// HandleWebSocket upgrades the connection and runs a session until the
// peer disconnects.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "err", err)
		return
	}

	instance, scope, err := s.factory()
	if err != nil {
		s.logger.Error("session setup failed", "err", err)
		conn.Close()
		return
	}

	session := &Session{
		ID:       strconv.FormatUint(s.nextID.Add(1), 10),
		logger:   s.logger,
		conn:     conn,
		instance: instance,
		scope:    scope,
		sendCh:   make(chan Message, 64),
		closeCh:  make(chan struct{}),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	go func() {
		session.run()
		s.mu.Lock()
		delete(s.sessions, session.ID)
		s.mu.Unlock()
	}()
}

// Broadcast sends a message to every connected session. Used by the dev
// server to push reloads after a document changes.
func (s *Server) Broadcast(msg Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, session := range s.sessions {
		session.send(msg)
	}
}

// SessionCount returns the number of connected sessions.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Session is one live preview connection.
type Session struct {
	ID string

	logger   *slog.Logger
	conn     *websocket.Conn
	instance *screen.Instance
	scope    sl.Scope
	prev     *vdom.Node

	sendCh  chan Message
	closeCh chan struct{}
	once    sync.Once
}

func (s *Session) close() {
	s.once.Do(func() {
		close(s.closeCh)
		s.conn.Close()
	})
}

func (s *Session) send(msg Message) {
	select {
	case s.sendCh <- msg:
	default:
		s.logger.Warn("send buffer full, dropping message", "session", s.ID, "type", msg.Type)
	}
}

func (s *Session) run() {
	defer s.close()
	go s.writer()

	s.send(Message{Type: "hello", Session: s.ID})

	if err := s.renderFull(); err != nil {
		s.send(Message{Type: "error", Error: err.Error()})
	}

	for {
		var msg Message
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("unexpected close", "session", s.ID, "err", err)
			}
			return
		}
		s.handle(msg)
	}
}

func (s *Session) writer() {
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg := <-s.sendCh:
			s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := s.conn.WriteJSON(msg); err != nil {
				s.logger.Warn("write failed", "session", s.ID, "err", err)
				s.close()
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.close()
				return
			}

		case <-s.closeCh:
			return
		}
	}
}

func (s *Session) handle(msg Message) {
	switch msg.Type {
	case "set":
		if msg.Name == "" {
			s.send(Message{Type: "error", Error: "set requires a name"})
			return
		}
		s.scope[msg.Name] = msg.Value
		if err := s.update(); err != nil {
			s.send(Message{Type: "error", Error: err.Error()})
		}

	case "render":
		if err := s.renderFull(); err != nil {
			s.send(Message{Type: "error", Error: err.Error()})
		}

	default:
		s.logger.Warn("unknown message type", "session", s.ID, "type", msg.Type)
	}
}

// render executes the screen and wraps the top-level elements into a
// single root for diffing.
func (s *Session) render() (*vdom.Node, error) {
	elements, err := s.instance.Render(s.scope)
	if err != nil {
		return nil, err
	}
	root := vdom.NewWidget("screen", nil)
	for _, el := range elements {
		node, ok := el.(*vdom.Node)
		if !ok {
			return nil, fmt.Errorf("element %T is not a widget tree node", el)
		}
		root.Add(node)
	}
	return root, nil
}

func (s *Session) renderFull() error {
	root, err := s.render()
	if err != nil {
		return err
	}
	out, err := html.RenderToString(root)
	if err != nil {
		return err
	}
	s.prev = root
	s.send(Message{Type: "render", HTML: out})
	return nil
}

// update re-renders and sends patches against the previous tree.
func (s *Session) update() error {
	next, err := s.render()
	if err != nil {
		return err
	}

	if s.prev == nil {
		s.prev = next
		out, err := html.RenderToString(next)
		if err != nil {
			return err
		}
		s.send(Message{Type: "render", HTML: out})
		return nil
	}

	patches := vdom.Diff(s.prev, next)
	s.prev = next
	if len(patches) == 0 {
		return nil
	}

	encoded, err := encodePatches(patches, html.RenderToString)
	if err != nil {
		return err
	}
	s.send(Message{Type: "patches", Patches: encoded})
	return nil
}

package server

import (
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

// Server accepts WebSocket connections and runs one heads-up session per
// connection.
type Server struct {
	log      *log.Logger
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewServer creates a session server
func NewServer(logger *log.Logger) *Server {
	return &Server{
		log:      logger,
		sessions: make(map[string]*Session),
	}
}

// Start begins serving on the specified port and blocks
func (s *Server) Start(port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)

	s.log.Info("starting server", "port", port)
	return http.ListenAndServe("0.0.0.0:"+port, mux)
}

// SessionCount reports the number of live sessions
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "err", err)
		return
	}

	session := NewSession(s.log)
	s.register(session)
	s.log.Info("client connected", "remote", r.RemoteAddr, "session", session.ID)

	go s.writePump(session, conn)
	go s.readPump(session, conn)
}

func (s *Server) register(session *Session) {
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
}

func (s *Server) unregister(session *Session) {
	s.mu.Lock()
	if _, ok := s.sessions[session.ID]; ok {
		delete(s.sessions, session.ID)
		close(session.send)
	}
	s.mu.Unlock()
}

// readPump reads commands from the connection and drives the session.
// Commands are handled inline, so each session's game is single-threaded.
func (s *Server) readPump(session *Session, conn *websocket.Conn) {
	defer func() {
		s.unregister(session)
		conn.Close()
		s.log.Info("client disconnected", "session", session.ID)
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Error("read error", "session", session.ID, "err", err)
			}
			break
		}

		if err := session.HandleCommand(message); err != nil {
			s.log.Warn("command failed", "session", session.ID, "err", err)
		}
	}
}

// writePump sends queued envelopes to the connection
func (s *Server) writePump(session *Session, conn *websocket.Conn) {
	defer conn.Close()

	for {
		message, ok := <-session.send
		if !ok {
			conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			s.log.Error("write error", "session", session.ID, "err", err)
			return
		}
	}
}

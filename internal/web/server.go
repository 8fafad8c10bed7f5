// Package web serves the single-page chat UI: upload a spreadsheet,
// preview it, ask questions about it.
package web

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/config"
	"github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/session"
)

const sessionCookie = "fa_session"

// Server owns the fiber app and one chat session per browser.
type Server struct {
	app       *fiber.App
	log       *zap.Logger
	cfg       *config.Settings
	completer session.Completer

	mu       sync.Mutex
	sessions map[string]*session.Session
}

func New(cfg *config.Settings, log *zap.Logger, completer session.Completer) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		app: fiber.New(fiber.Config{
			BodyLimit:             32 << 20, // uploads
			DisableStartupMessage: true,
		}),
		log:       log,
		cfg:       cfg,
		completer: completer,
		sessions:  map[string]*session.Session{},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/", s.index)
	s.app.Get("/health", s.health)

	api := s.app.Group("/api")
	api.Post("/upload", s.upload)
	api.Get("/preview", s.preview)
	api.Post("/ask", s.ask)
	api.Get("/transcript", s.transcript)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

// sessionFor returns the caller's session, creating one and setting the
// cookie on first contact. Transcripts never cross sessions.
func (s *Server) sessionFor(c *fiber.Ctx) *session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id := c.Cookies(sessionCookie); id != "" {
		if sess, ok := s.sessions[id]; ok {
			return sess
		}
	}
	sess := session.New(s.completer, s.log, s.cfg.RowCap)
	s.sessions[sess.ID] = sess
	c.Cookie(&fiber.Cookie{Name: sessionCookie, Value: sess.ID, HTTPOnly: true})
	s.log.Info("session started", zap.String("session", sess.ID))
	return sess
}

package server

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"go.uber.org/zap"

	"github.com/soar/inputmap/internal/device"
	"github.com/soar/inputmap/internal/hub"
	"github.com/soar/inputmap/internal/storage"
)

type Server struct {
	log         *zap.Logger
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	manager     *storage.Manager
	registry    *device.Registry
	frontendFS  fs.FS
	addr        string
	httpServer  *http.Server
}

func New(log *zap.Logger, h *hub.Hub, b *hub.Broadcaster, m *storage.Manager, registry *device.Registry, frontendFS fs.FS, addr string) *Server {
	return &Server{
		log:         log,
		hub:         h,
		broadcaster: b,
		manager:     m,
		registry:    registry,
		frontendFS:  frontendFS,
		addr:        addr,
	}
}

// Handler builds the route table. Exposed separately so tests can drive the
// API without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// WebSocket endpoint
	mux.HandleFunc("GET /ws", s.handleWebSocket)

	// Mapping API
	mux.HandleFunc("GET /api/devices", s.handleListDevices)
	mux.HandleFunc("POST /api/devices", s.handleRegisterDevice)
	mux.HandleFunc("GET /api/devices/{id}/buttonmap", s.handleButtonMap)
	mux.HandleFunc("GET /api/devices/{id}/profiles/{controller}", s.handleFeatures)
	mux.HandleFunc("POST /api/devices/{id}/profiles/{controller}", s.handleMapFeatures)
	mux.HandleFunc("DELETE /api/devices/{id}/profiles/{controller}", s.handleResetProfile)
	mux.HandleFunc("POST /api/devices/{id}/save", s.handleSave)
	mux.HandleFunc("POST /api/devices/{id}/revert", s.handleRevert)

	// Static files (frontend), minified on the way out
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("application/javascript", js.Minify)
	mux.Handle("/", m.Middleware(http.FileServer(http.FS(s.frontendFS))))

	return mux
}

func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	s.log.Info("http server listening", zap.String("addr", s.addr))
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		s.log.Info("shutting down http server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

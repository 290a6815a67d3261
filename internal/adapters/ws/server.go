package ws

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"auction-storefront/internal/ports/outbound"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Server serves the live dashboard feed
type Server struct {
	handler    *WsHandler
	httpServer *http.Server
	logger     zerolog.Logger
}

type ServerParams struct {
	Addr        string
	Auctions    AuctionReader
	Watcher     AuctionWatcher
	Broadcaster outbound.Broadcaster
	Logger      zerolog.Logger
}

func NewServer(params ServerParams) *Server {
	handler := NewHandler(WsHandlerParams{
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// dashboards are served from other origins
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		Auctions:    params.Auctions,
		Watcher:     params.Watcher,
		Broadcaster: params.Broadcaster,
		Logger:      params.Logger,
	})

	httpServer := &http.Server{
		Addr:        params.Addr,
		Handler:     NewMux(handler),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Minute,
	}

	return &Server{
		handler:    handler,
		httpServer: httpServer,
		logger:     params.Logger.With().Str("component", "feed_server").Logger(),
	}
}

// NewMux routes the feed and health endpoints
func NewMux(handler *WsHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", handler.HandleFeed)
	mux.HandleFunc("/health", handleHealth)
	return mux
}

// Start serves until Stop is called
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("Starting feed server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start feed server: %w", err)
	}

	return nil
}

// Stop gracefully stops the feed server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info().Msg("Stopping feed server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown feed server: %w", err)
	}

	s.logger.Info().Msg("Feed server stopped")
	return nil
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok", "service": "auction-storefront-feed"}`))
}

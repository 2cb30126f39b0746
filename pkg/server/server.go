// Package server exposes the evaluation pipeline over a websocket so an
// editor can preview scripts while they are typed.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/chazu/gengine/pkg/app"
	"github.com/chazu/gengine/pkg/config"
)

// Evaluator is the part of app.App the server needs.
type Evaluator interface {
	Evaluate(ctx context.Context, source string) app.Result
}

// MaxMessageSize is the largest request the server reads. Larger messages
// close the connection with websocket.CloseMessageTooBig.
const MaxMessageSize = 1 << 20

// Request is what a client sends: the whole script, every time.
type Request struct {
	Source string `json:"source"`
}

// Server answers each Request on /ws with the JSON app.Result.
type Server struct {
	eval      Evaluator
	addr      string
	logger    *zap.Logger
	upgrader  websocket.Upgrader
	readLimit int64 // bytes per incoming message
}

// New creates a server listening on cfg.ListenAddr.
func New(eval Evaluator, cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		eval:      eval,
		addr:      cfg.ListenAddr,
		logger:    logger,
		readLimit: MaxMessageSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Addr is the configured listen address.
func (s *Server) Addr() string { return s.addr }

// Handler routes /ws and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.readLimit)

	remote := conn.RemoteAddr().String()
	s.logger.Debug("client connected", zap.String("remote", remote))

	ctx := r.Context()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if errors.Is(err, websocket.ErrReadLimit) {
				s.logger.Warn("websocket message too large", zap.String("remote", remote), zap.Int64("limit", s.readLimit))
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read failed", zap.String("remote", remote), zap.Error(err))
			}
			return
		}

		var result app.Result
		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			// A malformed message still gets an answer; the connection stays.
			result = badRequest(err)
		} else {
			result = s.eval.Evaluate(ctx, req.Source)
		}
		if err := conn.WriteJSON(result); err != nil {
			s.logger.Warn("websocket write failed", zap.String("remote", remote), zap.Error(err))
			return
		}
	}
}

func badRequest(err error) app.Result {
	return app.Result{
		Meshes:   []app.MeshData{},
		Errors:   []app.Diagnostic{{Message: "bad request: " + err.Error()}},
		Warnings: []app.Diagnostic{},
	}
}

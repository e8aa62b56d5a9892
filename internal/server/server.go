// Package server exposes the game engine over a websocket JSON protocol.
// Clients submit lifecycle requests and actions as frames; state changes
// are pushed to every client subscribed to the affected game.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/novafree/nova-server-go/internal/config"
	"github.com/novafree/nova-server-go/internal/game"
	"github.com/novafree/nova-server-go/internal/repository"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server ties the engine, the optional record store, and the websocket hub
// together behind one HTTP listener.
type Server struct {
	cfg    config.ServerConfig
	logger *zap.Logger
	engine *game.Engine
	games  *repository.GameRepository // nil when persistence is disabled
	hub    *hub
	httpd  *http.Server
}

// New creates a Server. Pass a nil repository to run without persistence.
func New(cfg config.ServerConfig, logger *zap.Logger, engine *game.Engine, games *repository.GameRepository) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger,
		engine: engine,
		games:  games,
		hub:    newHub(logger),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.httpd = &http.Server{Addr: cfg.Address, Handler: mux}

	engine.SetNotificationHandler(s.onNotification)
	return s
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("websocket server listening", zap.String("address", s.cfg.Address))
		if err := s.httpd.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.hub.closeAll()
	return s.httpd.Shutdown(shutdownCtx)
}

// RestoreGames loads every unfinished game from the record store back into
// the engine. A no-op without persistence.
func (s *Server) RestoreGames(ctx context.Context) error {
	if s.games == nil {
		return nil
	}
	ids, err := s.games.ListUnfinished(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		v, err := s.games.Load(ctx, id)
		if err != nil {
			s.logger.Error("loading game record", zap.String("game_id", id), zap.Error(err))
			continue
		}
		if err := s.engine.Restore(v); err != nil {
			s.logger.Error("restoring game", zap.String("game_id", id), zap.Error(err))
		}
	}
	s.logger.Info("games restored", zap.Int("count", len(ids)))
	return nil
}

// onNotification pushes engine events to subscribed clients and snapshots
// the changed game to the record store.
func (s *Server) onNotification(n game.Notification) {
	s.hub.broadcast(n.GameID, Response{
		Type:   n.Type,
		GameID: n.GameID,
		Round:  n.Round,
		Phase:  n.Phase,
	})
	s.persist(n.GameID)
}

func (s *Server) persist(gameID string) {
	if s.games == nil {
		return
	}
	v, err := s.engine.Snapshot(gameID)
	if err != nil {
		s.logger.Error("snapshotting game", zap.String("game_id", gameID), zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.games.Save(ctx, v); err != nil {
		s.logger.Error("persisting game", zap.String("game_id", gameID), zap.Error(err))
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, 32)}
	s.hub.register(c)
	go c.writePump()
	s.readPump(c)
}

func (s *Server) readPump(c *client) {
	defer func() {
		s.hub.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}
		var req Request
		if err := json.Unmarshal(payload, &req); err != nil {
			s.reply(c, Response{Type: "error", Error: "malformed request"})
			continue
		}
		s.reply(c, s.handle(c, &req))
	}
}

func (s *Server) reply(c *client, resp Response) {
	payload, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("marshaling response", zap.Error(err))
		return
	}
	if !c.trySend(payload) {
		s.logger.Warn("dropping response to slow client")
	}
}

func (s *Server) handle(c *client, req *Request) Response {
	resp := Response{Type: req.Type + "_result", RequestID: req.RequestID, GameID: req.GameID}

	switch req.Type {
	case "create_game":
		if err := s.engine.CreateGame(req.GameID, req.Seed); err != nil {
			resp.Error = err.Error()
			return resp
		}
		c.subscribe(req.GameID)

	case "join_game":
		id, err := s.engine.AddPlayer(req.GameID, req.Name, req.Species)
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		c.subscribe(req.GameID)
		resp.PlayerID = int(id)

	case "start_game":
		if err := s.engine.StartGame(req.GameID); err != nil {
			resp.Error = err.Error()
			return resp
		}
		s.persist(req.GameID)

	case "subscribe":
		c.subscribe(req.GameID)

	case "action":
		if req.Action == nil {
			resp.Error = "missing action"
			return resp
		}
		outcome, err := s.engine.SubmitAction(req.GameID, toAction(req.Action))
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		resp.Round = outcome.Round
		resp.Phase = outcome.Phase.String()
		resp.Encounters = outcome.Encounters
		if outcome.Rejection != nil {
			resp.Rejection = &RejectionMsg{
				Reason: string(outcome.Rejection.Reason),
				Detail: outcome.Rejection.Detail,
			}
		}

	case "snapshot":
		v, err := s.engine.Snapshot(req.GameID)
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		resp.State = v

	default:
		resp.Type = "error"
		resp.Error = "unknown request type " + req.Type
	}
	return resp
}

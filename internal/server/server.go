package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/jdcb4/DrawNGuess/internal/config"
	"github.com/jdcb4/DrawNGuess/internal/db"
	"github.com/jdcb4/DrawNGuess/internal/game"
	"github.com/jdcb4/DrawNGuess/internal/logger"
	"github.com/jdcb4/DrawNGuess/internal/parser"
	"github.com/jdcb4/DrawNGuess/internal/timers"
)

const HTTP_API_V1_PREFIX = "/api/v1"

const (
	loopBuffer      = 1024
	maxMessageBytes = 1 << 20
	requestTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

type GameServer struct {
	Db          db.Repository
	Logger      logger.Logger
	port        string
	wssUpgrader websocket.Upgrader
	Router      *mux.Router
	ConnStore   ConnectionStore
	Loop        *game.Loop
	Engine      *game.Engine
	seeds       *game.SeedPool
	difficulty  []string
	limits      parser.Limits
	msgRate     rate.Limit
	msgBurst    int
}

func (s *GameServer) UpgradeToWebsocket(writer http.ResponseWriter, request *http.Request) *websocket.Conn {
	conn, err := s.wssUpgrader.Upgrade(writer, request, nil)
	if err != nil {
		s.Logger.Error("Failed to upgrade to WS connection", err)
		return nil
	}
	return conn
}

// Run serves until ctx is cancelled or the process is interrupted.
func (s *GameServer) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.loadSeeds(ctx); err != nil {
		return err
	}
	go s.Loop.Run(ctx)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", s.port),
		Handler:           s.Router,
		ReadHeaderTimeout: requestTimeout,
	}
	errs := make(chan error, 1)
	go func() {
		s.Logger.Info(fmt.Sprintf("Starting server on port %s", s.port))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error(fmt.Sprintf("Failed to start server on port %s", s.port), err)
			return err
		}
		return nil
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.Logger.Error("Failed to shut down http server cleanly", err)
	}
	s.Shutdown()
	return nil
}

// loadSeeds fills the seed pool so dealing a game never touches the database.
func (s *GameServer) loadSeeds(ctx context.Context) error {
	if err := s.seeds.Load(ctx, s.difficulty); err != nil {
		s.Logger.Error("Failed to load seed words", err)
		return err
	}
	s.Logger.Info(fmt.Sprintf("Loaded seed words for %s", strings.Join(s.difficulty, ", ")))
	return nil
}

func (s *GameServer) Shutdown() {
	s.Logger.Info("Shutting down server....")
	s.ConnStore.CloseAll()
	s.Engine.Flush()
	s.Db.CloseConnection()
	s.Logger.Info("Goodbye !")
}

func (s *GameServer) sendResponse(writer http.ResponseWriter, responseBody []byte, status int) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if responseBody == nil {
		return
	}
	if _, err := writer.Write(responseBody); err != nil {
		s.Logger.Error("Failed to write response body", err)
	}
}

func (s *GameServer) Health(writer http.ResponseWriter, request *http.Request) {
	s.sendResponse(writer, []byte(`{"status":"ok"}`), http.StatusOK)
}

// GameStatus tells the landing page whether a room code is worth joining.
func (s *GameServer) GameStatus(writer http.ResponseWriter, request *http.Request) {
	code, err := parser.NormalizeRoomCode(mux.Vars(request)["code"])
	if err != nil {
		s.sendResponse(writer, nil, http.StatusBadRequest)
		return
	}
	resp := parser.RoomStatusResponse{}
	err = s.Loop.Do(request.Context(), func() {
		exists, status := s.Engine.RoomStatus(code)
		resp.Exists = exists
		resp.Status = string(status)
	})
	if err != nil {
		s.Logger.Error("Room status lookup failed", err)
		s.sendResponse(writer, nil, http.StatusServiceUnavailable)
		return
	}
	respBody, err := json.Marshal(resp)
	if err != nil {
		s.sendResponse(writer, nil, http.StatusInternalServerError)
		return
	}
	s.sendResponse(writer, respBody, http.StatusOK)
}

// HandlePlayerInput upgrades the request and pumps messages from the socket
// onto the game loop until it closes.
func (s *GameServer) HandlePlayerInput(writer http.ResponseWriter, request *http.Request) {
	playerID := strings.TrimSpace(request.URL.Query().Get("playerId"))
	if playerID == "" {
		s.sendResponse(writer, nil, http.StatusBadRequest)
		return
	}
	wssConn := s.UpgradeToWebsocket(writer, request)
	if wssConn == nil {
		return
	}
	wssConn.SetReadLimit(maxMessageBytes)
	connID := uuid.NewString()
	s.ConnStore.AddConnection(connID, wssConn)
	s.Logger.Debug(fmt.Sprintf("Player %s connected as %s", playerID, connID))

	limiter := rate.NewLimiter(s.msgRate, s.msgBurst)
	for {
		_, data, err := wssConn.ReadMessage()
		if err != nil {
			s.Logger.Debug(fmt.Sprintf("Player %s disconnected: %s", playerID, err))
			break
		}
		if !limiter.Allow() {
			s.ConnStore.Send(connID, game.EventError, parser.ErrorResponse{Message: "slow down"})
			continue
		}
		msg, err := parser.ParseClientMessage(data)
		if err != nil {
			s.ConnStore.Send(connID, game.EventError, parser.ErrorResponse{Message: err.Error()})
			continue
		}
		s.Loop.Post(func() { s.dispatch(connID, playerID, msg) })
	}
	s.Loop.Post(func() { s.Engine.Disconnect(connID) })
	s.ConnStore.RemoveConnection(connID)
}

func (s *GameServer) routes() {
	s.Router.HandleFunc("/health", s.Health).Methods("GET")
	s.Router.HandleFunc("/game/{code:[A-Za-z]+}", s.GameStatus).Methods("GET")
	s.Router.HandleFunc("/connect", s.HandlePlayerInput)
}

func NewGameServer(cfg *config.Config, repo db.Repository) *GameServer {
	log := logger.New("api_server")
	loop := game.NewLoop(loopBuffer, logger.New("game_loop"))
	connStore := NewConnectionStore(logger.New("connections"))
	clock := timers.NewRealClock(func(f func()) { loop.Post(f) })
	seeds := game.NewSeedPool(repo)
	engine := game.NewEngine(cfg.Game, clock, connStore, seeds,
		game.WithArchiver(repo),
		game.WithLogger(logger.New("engine")),
	)
	return newGameServer(cfg, repo, log, loop, connStore, engine, seeds)
}

func newGameServer(cfg *config.Config, repo db.Repository, log logger.Logger, loop *game.Loop, connStore ConnectionStore, engine *game.Engine, seeds *game.SeedPool) *GameServer {
	router := mux.NewRouter().PathPrefix(HTTP_API_V1_PREFIX).Subrouter()
	gs := &GameServer{
		Db:     repo,
		Logger: log,
		port:   cfg.Port,
		wssUpgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		Router:     router,
		ConnStore:  connStore,
		Loop:       loop,
		Engine:     engine,
		seeds:      seeds,
		difficulty: slices.Sorted(maps.Keys(cfg.Game.KnownDifficulty)),
		limits: parser.Limits{
			MaxNameLength:    cfg.Game.MaxNameLength,
			MaxGuessLength:   cfg.Game.MaxGuessLength,
			MaxDrawingLength: cfg.Game.MaxDrawingLength,
		},
		msgRate:  rate.Limit(cfg.MessagesPerSec),
		msgBurst: cfg.MessageBurst,
	}
	gs.routes()
	return gs
}

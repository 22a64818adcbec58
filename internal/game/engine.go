package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/jdcb4/DrawNGuess/internal/config"
	"github.com/jdcb4/DrawNGuess/internal/logger"
	"github.com/jdcb4/DrawNGuess/internal/parser"
	"github.com/jdcb4/DrawNGuess/internal/state"
	"github.com/jdcb4/DrawNGuess/internal/timers"
)

const roomCodeSize = 4

type playerKey struct {
	Room   string
	Player string
}

// Engine owns every room. It is not safe for concurrent use: run it behind a
// Loop, and build its Clock so that timer callbacks land on the same Loop.
type Engine struct {
	rooms       state.StateStore
	turnTimers  *timers.Registry[string]
	graceTimers *timers.Registry[playerKey]
	clock       timers.Clock
	notifier    Notifier
	seeds       SeedSource
	archive     Archiver
	cfg         config.Game
	log         logger.Logger
	rng         *rand.Rand
	// connection id -> player it is bound to
	sessions map[string]playerKey
	// archive writes still in flight
	archiving sync.WaitGroup
}

type Option func(*Engine)

func WithArchiver(a Archiver) Option {
	return func(e *Engine) { e.archive = a }
}

func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

func WithLogger(l logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func WithStore(s state.StateStore) Option {
	return func(e *Engine) { e.rooms = s }
}

func NewEngine(cfg config.Game, clock timers.Clock, notifier Notifier, seeds SeedSource, opts ...Option) *Engine {
	e := &Engine{
		rooms:       state.NewInMemoryRoomStore(),
		turnTimers:  timers.NewRegistry[string](clock),
		graceTimers: timers.NewRegistry[playerKey](clock),
		clock:       clock,
		notifier:    notifier,
		seeds:       seeds,
		cfg:         cfg,
		log:         logger.New("engine"),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		sessions:    make(map[string]playerKey),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Room returns the live room. Callers must stay on the loop.
func (e *Engine) Room(code string) (*state.Room, error) {
	return e.rooms.GetRoom(code)
}

// RoomStatus backs the HTTP existence check.
func (e *Engine) RoomStatus(code string) (bool, state.Status) {
	room, err := e.rooms.GetRoom(code)
	if err != nil {
		return false, ""
	}
	return true, room.Game.Status
}

// Flush blocks until every finished game handed to the Archiver is written.
func (e *Engine) Flush() {
	e.archiving.Wait()
}

func (e *Engine) defaultSettings() state.Settings {
	return state.Settings{
		Difficulties:   append([]string(nil), e.cfg.Difficulties...),
		DrawingSeconds: e.cfg.DrawingSeconds,
		GuessSeconds:   e.cfg.GuessSeconds,
		SkipSeconds:    e.cfg.SkipSeconds,
		TeamCount:      2,
	}
}

func (e *Engine) broadcast(room *state.Room, eventType string) {
	for _, p := range room.Players {
		if p.Connected && p.ConnectionID != "" {
			e.notifier.Send(p.ConnectionID, eventType, state.FilterFor(room, p.ID))
		}
	}
}

func (e *Engine) broadcastFull(room *state.Room, eventType string) {
	view := state.FullView(room)
	for _, p := range room.Players {
		if p.Connected && p.ConnectionID != "" {
			e.notifier.Send(p.ConnectionID, eventType, view)
		}
	}
}

func (e *Engine) notice(room *state.Room, msg string) {
	for _, p := range room.Players {
		if p.Connected && p.ConnectionID != "" {
			e.notifier.Send(p.ConnectionID, EventNotice, parser.NoticeResponse{Message: msg})
		}
	}
}

func (e *Engine) logf(format string, args ...any) {
	e.log.Info(fmt.Sprintf(format, args...))
}

package game

import (
	"context"

	"github.com/jdcb4/DrawNGuess/internal/db"
)

const (
	EventRoomCreated  = "room-created"
	EventRoomJoined   = "room-joined"
	EventRoomUpdate   = "room-update"
	EventGameStarted  = "game-started"
	EventTurnAdvanced = "turn-advanced"
	EventGameOver     = "game-over"
	EventKicked       = "kicked"
	EventNotice       = "notice"
	EventError        = "error"
)

// Notifier delivers an outbound event to one connection. It must not block
// the caller for long; implementations queue.
type Notifier interface {
	Send(connID string, eventType string, payload any)
}

type SeedSource interface {
	Seeds(ctx context.Context, difficulties []string) ([]string, error)
}

type Archiver interface {
	RecordFinishedGame(ctx context.Context, game db.FinishedGame) error
}

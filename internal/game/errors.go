package game

import (
	"errors"

	"github.com/jdcb4/DrawNGuess/internal/state"
)

var (
	ErrRoomNotFound     = state.ErrRoomNotFound
	ErrRoomFull         = errors.New("room full")
	ErrGameInProgress   = errors.New("game in progress")
	ErrNotHost          = errors.New("only the host can do that")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrNotEnoughSeeds   = errors.New("not enough words for the selected difficulties")
	ErrInvalidSettings  = errors.New("invalid settings")
	ErrCannotKickSelf   = errors.New("host cannot kick themselves")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrWrongPhase       = errors.New("action not allowed in this phase")
	ErrWrongAction      = errors.New("action does not match this turn")
	ErrAlreadySubmitted = errors.New("already submitted this turn")
	ErrNotSubmitted     = errors.New("nothing submitted this turn")
	ErrNoBook           = errors.New("player holds no book")
	ErrNotAuthor        = errors.New("last page was not written by this player this turn")
	ErrTeamsDisabled    = errors.New("teams are disabled")
	ErrTeamNotFound     = errors.New("team not found")
	ErrNotCaptain       = errors.New("only the team captain can rename the team")
	ErrLoopStopped      = errors.New("game loop stopped")
)

package game

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/go-set/v3"

	"github.com/jdcb4/DrawNGuess/internal/db"
	"github.com/jdcb4/DrawNGuess/internal/state"
)

const archiveTimeout = 5 * time.Second

// startNewTurn resets the per-turn bookkeeping, passes every book one seat
// along (except on the first turn) and arms the room's turn timer.
func (e *Engine) startNewTurn(room *state.Room, first bool) {
	g := &room.Game
	g.Submitted = set.New[string](len(room.Players))
	now := e.clock.Now()
	g.TurnStartedAt = &now
	if !first {
		e.rotateBooks(room)
	}

	code, turn := room.Code, g.Turn
	if budget := g.Settings.Budget(g.Action()); budget > 0 {
		e.turnTimers.Start(code, budget, func() { e.onTurnTimeout(code, turn) })
	} else {
		e.turnTimers.Clear(code)
	}
	e.log.Debug(fmt.Sprintf("Room %s started turn %d (%s)", code, turn, g.Action()))
	e.broadcast(room, EventTurnAdvanced)
}

// rotateBooks moves each book from the player at index i to i+1 mod N of the
// current player list.
func (e *Engine) rotateBooks(room *state.Room) {
	n := len(room.Players)
	for _, b := range room.Game.Books {
		idx := room.PlayerIndex(b.HolderID)
		if idx < 0 {
			e.log.Warn("Book of " + b.OwnerID + " has no holder in room " + room.Code)
			continue
		}
		b.HolderID = room.Players[(idx+1)%n].ID
	}
}

func (e *Engine) SubmitDrawing(code, playerID, drawing string) error {
	return e.submit(code, playerID, state.ActionDrawing, drawing)
}

func (e *Engine) SubmitGuess(code, playerID, guess string) error {
	return e.submit(code, playerID, state.ActionGuess, guess)
}

// SubmitSkipReady acknowledges a skip round. No page is written.
func (e *Engine) SubmitSkipReady(code, playerID string) error {
	return e.submit(code, playerID, state.ActionSkip, "")
}

func (e *Engine) submit(code, playerID string, action state.ActionType, content string) error {
	room, err := e.rooms.GetRoom(code)
	if err != nil {
		return err
	}
	g := &room.Game
	if g.Status != state.StatusPlaying {
		return ErrWrongPhase
	}
	p := room.Player(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}
	if g.Submitted.Contains(playerID) {
		return ErrAlreadySubmitted
	}
	if g.Action() != action {
		return ErrWrongAction
	}
	if action != state.ActionSkip {
		book := g.BookHeldBy(playerID)
		if book == nil {
			return ErrNoBook
		}
		book.Pages = append(book.Pages, state.Page{
			Kind:       action.PageKind(),
			AuthorID:   p.ID,
			AuthorName: p.Name,
			Content:    content,
			CreatedAt:  e.clock.Now(),
			Turn:       g.Turn,
		})
	}
	g.Submitted.Insert(playerID)
	e.broadcast(room, EventRoomUpdate)
	if room.AllSubmitted() {
		e.advanceTurn(code, g.Turn)
	}
	return nil
}

// Unsubmit takes back this turn's submission so the player can edit it.
func (e *Engine) Unsubmit(code, playerID string) error {
	room, err := e.rooms.GetRoom(code)
	if err != nil {
		return err
	}
	g := &room.Game
	if g.Status != state.StatusPlaying {
		return ErrWrongPhase
	}
	if room.Player(playerID) == nil {
		return ErrPlayerNotFound
	}
	if !g.Submitted.Contains(playerID) {
		return ErrNotSubmitted
	}
	if g.Action() != state.ActionSkip {
		book := g.BookHeldBy(playerID)
		if book == nil {
			return ErrNoBook
		}
		last := book.LastPage()
		if last == nil || last.AuthorID != playerID || last.Turn != g.Turn {
			return ErrNotAuthor
		}
		book.Pages = book.Pages[:len(book.Pages)-1]
	}
	g.Submitted.Remove(playerID)
	e.broadcast(room, EventRoomUpdate)
	return nil
}

// onTurnTimeout runs when the turn budget is spent. Submissions still in
// flight get a short grace window before the turn is forced forward.
func (e *Engine) onTurnTimeout(code string, turn int) {
	room, err := e.rooms.GetRoom(code)
	if err != nil || room.Game.Status != state.StatusPlaying || room.Game.Turn != turn {
		return
	}
	if e.cfg.TimerGrace <= 0 {
		e.advanceTurn(code, turn)
		return
	}
	e.logf("Room %s turn %d timed out, advancing in %s", code, turn, e.cfg.TimerGrace)
	e.turnTimers.Start(code, e.cfg.TimerGrace, func() { e.advanceTurn(code, turn) })
}

// advanceTurn closes turn and opens the next one. Calls for a turn that has
// already moved on are ignored, so the timer and the last submission can both
// reach here safely.
func (e *Engine) advanceTurn(code string, turn int) {
	room, err := e.rooms.GetRoom(code)
	if err != nil {
		return
	}
	g := &room.Game
	if g.Status != state.StatusPlaying || g.Turn != turn {
		return
	}
	e.turnTimers.Clear(code)
	for _, p := range room.Players {
		if !g.Submitted.Contains(p.ID) {
			e.autoFill(room, p, !p.Connected)
		}
	}
	g.Turn++
	if g.Turn >= len(room.Players) {
		e.finishGame(room)
		return
	}
	e.startNewTurn(room, false)
}

// autoFill writes a blank page for a player who did not submit and credits
// the submission. Skip rounds only credit.
func (e *Engine) autoFill(room *state.Room, p *state.Player, disconnected bool) {
	g := &room.Game
	action := g.Action()
	if action != state.ActionSkip {
		if book := g.BookHeldBy(p.ID); book != nil {
			book.Pages = append(book.Pages, state.Page{
				Kind:         action.PageKind(),
				AuthorID:     p.ID,
				AuthorName:   p.Name,
				Content:      "",
				CreatedAt:    e.clock.Now(),
				Turn:         g.Turn,
				AutoFilled:   true,
				Disconnected: disconnected,
			})
		}
	}
	g.Submitted.Insert(p.ID)
}

func (e *Engine) finishGame(room *state.Room) {
	g := &room.Game
	g.Status = state.StatusReveal
	g.TurnStartedAt = nil
	e.turnTimers.Clear(room.Code)
	e.logf("Room %s finished after %d turns", room.Code, g.Turn)
	e.record(room)
	e.broadcastFull(room, EventGameOver)
}

// record snapshots the finished game on the loop. The write itself runs off
// the loop; Flush waits for it.
func (e *Engine) record(room *state.Room) {
	if e.archive == nil {
		return
	}
	view := state.FullView(room)
	books, err := json.Marshal(view.Game.Books)
	if err != nil {
		e.log.Error("Failed to encode books for archive", err)
		return
	}
	finished := db.FinishedGame{
		RoomCode:    room.Code,
		PlayerCount: len(room.Players),
		Turns:       room.Game.Turn,
		BooksJSON:   string(books),
		FinishedAt:  e.clock.Now(),
	}
	archive, log := e.archive, e.log
	e.archiving.Add(1)
	go func() {
		defer e.archiving.Done()
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()
		if err := archive.RecordFinishedGame(ctx, finished); err != nil {
			log.Error("Failed to archive finished game "+finished.RoomCode, err)
		}
	}()
}

package game

import (
	"fmt"

	"github.com/jdcb4/DrawNGuess/internal/state"
)

// reconnect rebinds an existing player to a new connection. Their book,
// submissions and host flag are untouched.
func (e *Engine) reconnect(room *state.Room, p *state.Player, connID, name string) {
	key := playerKey{Room: room.Code, Player: p.ID}
	if bound, ok := e.sessions[connID]; ok && bound != key {
		e.detach(connID)
	}
	e.graceTimers.Clear(key)
	if p.ConnectionID != "" && p.ConnectionID != connID {
		delete(e.sessions, p.ConnectionID)
	}
	p.ConnectionID = connID
	if name != "" {
		p.Name = name
	}
	p.Connected = true
	e.sessions[connID] = key
	e.logf("Player %s reconnected to room %s", p.ID, room.Code)
	e.broadcast(room, EventRoomUpdate)
}

// detach unbinds a connection from whatever player it currently speaks for,
// treating it like a dropped socket for that player.
func (e *Engine) detach(connID string) {
	if _, ok := e.sessions[connID]; ok {
		e.Disconnect(connID)
	}
}

// Disconnect marks the player behind connID as gone and starts their grace
// period. A connection that was already superseded by a newer one is ignored.
func (e *Engine) Disconnect(connID string) {
	key, ok := e.sessions[connID]
	if !ok {
		return
	}
	delete(e.sessions, connID)
	room, err := e.rooms.GetRoom(key.Room)
	if err != nil {
		return
	}
	p := room.Player(key.Player)
	if p == nil || p.ConnectionID != connID {
		return
	}
	p.Connected = false
	p.ConnectionID = ""
	e.graceTimers.Start(key, e.cfg.DisconnectGrace, func() { e.onGraceExpired(key) })
	e.logf("Player %s disconnected from room %s", key.Player, key.Room)
	e.broadcast(room, EventRoomUpdate)
}

func (e *Engine) onGraceExpired(key playerKey) {
	room, err := e.rooms.GetRoom(key.Room)
	if err != nil {
		return
	}
	p := room.Player(key.Player)
	if p == nil || p.Connected {
		return
	}
	g := &room.Game
	if g.Status == state.StatusPlaying && !g.Submitted.Contains(p.ID) {
		e.autoFill(room, p, true)
	}
	e.logf("Player %s did not come back to room %s", p.ID, room.Code)
	e.notice(room, fmt.Sprintf("%s left the game", p.Name))
	e.removePlayer(room, p.ID)
}

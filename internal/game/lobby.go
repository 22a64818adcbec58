package game

import (
	"context"
	"fmt"
	"slices"

	"github.com/hashicorp/go-set/v3"

	"github.com/jdcb4/DrawNGuess/internal/config"
	"github.com/jdcb4/DrawNGuess/internal/parser"
	"github.com/jdcb4/DrawNGuess/internal/state"
	"github.com/jdcb4/DrawNGuess/internal/utils"
)

// CreateRoom opens a room with the caller as host and returns its code.
func (e *Engine) CreateRoom(connID, playerID, name string) (string, error) {
	e.detach(connID)
	code, err := utils.NewRoomCode(roomCodeSize, 64, e.rooms.Exists)
	if err != nil {
		return "", err
	}
	room := state.NewRoom(code, e.defaultSettings())
	room.Players = append(room.Players, &state.Player{
		ID:           playerID,
		ConnectionID: connID,
		Name:         name,
		Connected:    true,
		Host:         true,
	})
	e.rooms.SetRoom(room)
	e.sessions[connID] = playerKey{Room: code, Player: playerID}
	e.logf("Player %s created room %s", playerID, code)
	e.notifier.Send(connID, EventRoomCreated, parser.CreateRoomResponse{Code: code, Room: state.FilterFor(room, playerID)})
	return code, nil
}

// JoinRoom adds a player, or rebinds the connection of a player who is
// already in the room under the same identity.
func (e *Engine) JoinRoom(connID, code, playerID, name string) (state.RoomView, error) {
	room, err := e.rooms.GetRoom(code)
	if err != nil {
		return state.RoomView{}, err
	}
	if existing := room.Player(playerID); existing != nil {
		e.reconnect(room, existing, connID, name)
		view := state.FilterFor(room, playerID)
		e.notifier.Send(connID, EventRoomJoined, view)
		return view, nil
	}
	if room.Game.Status != state.StatusLobby {
		return state.RoomView{}, ErrGameInProgress
	}
	if len(room.Players) >= e.cfg.MaxPlayers {
		return state.RoomView{}, ErrRoomFull
	}
	e.detach(connID)
	room.Players = append(room.Players, &state.Player{
		ID:           playerID,
		ConnectionID: connID,
		Name:         name,
		Connected:    true,
		Host:         room.Host() == nil,
	})
	e.sessions[connID] = playerKey{Room: code, Player: playerID}
	assignTeams(room)
	e.logf("Player %s joined room %s", playerID, code)
	view := state.FilterFor(room, playerID)
	e.notifier.Send(connID, EventRoomJoined, view)
	e.broadcast(room, EventRoomUpdate)
	return view, nil
}

func (e *Engine) ToggleReady(code, playerID string) error {
	room, err := e.rooms.GetRoom(code)
	if err != nil {
		return err
	}
	p := room.Player(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}
	if room.Game.Status != state.StatusLobby {
		return ErrWrongPhase
	}
	p.Ready = !p.Ready
	e.broadcast(room, EventRoomUpdate)
	return nil
}

func (e *Engine) UpdateSettings(code, playerID string, req parser.UpdateSettingsRequest) error {
	room, err := e.hostRoom(code, playerID)
	if err != nil {
		return err
	}
	if room.Game.Status != state.StatusLobby {
		return ErrWrongPhase
	}
	settings, err := e.applySettings(room.Settings, req)
	if err != nil {
		return err
	}
	room.Settings = settings
	room.Game.Settings = settings.Clone()
	assignTeams(room)
	e.broadcast(room, EventRoomUpdate)
	return nil
}

func (e *Engine) applySettings(current state.Settings, req parser.UpdateSettingsRequest) (state.Settings, error) {
	s := current.Clone()
	if req.Difficulties != nil {
		picked := set.New[string](len(req.Difficulties))
		for _, d := range req.Difficulties {
			if !e.cfg.KnownDifficulty[d] {
				return s, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidSettings, d)
			}
			picked.Insert(d)
		}
		if picked.Empty() {
			return s, fmt.Errorf("%w: pick at least one difficulty", ErrInvalidSettings)
		}
		s.Difficulties = picked.Slice()
		slices.Sort(s.Difficulties)
	}
	for _, limit := range []struct {
		value  *int
		target *int
	}{
		{req.DrawingSeconds, &s.DrawingSeconds},
		{req.GuessSeconds, &s.GuessSeconds},
		{req.SkipSeconds, &s.SkipSeconds},
	} {
		if limit.value == nil {
			continue
		}
		if v := *limit.value; v != 0 && (v < 10 || v > config.MaxTurnSeconds) {
			return s, fmt.Errorf("%w: time limit %d out of range", ErrInvalidSettings, v)
		}
		*limit.target = *limit.value
	}
	if req.TeamsEnabled != nil {
		s.TeamsEnabled = *req.TeamsEnabled
	}
	if req.TeamCount != nil {
		if *req.TeamCount < 2 || *req.TeamCount > 8 {
			return s, fmt.Errorf("%w: team count %d out of range", ErrInvalidSettings, *req.TeamCount)
		}
		s.TeamCount = *req.TeamCount
	}
	return s, nil
}

// StartGame deals one secret seed per player and starts turn 0.
func (e *Engine) StartGame(ctx context.Context, code, playerID string) error {
	room, err := e.hostRoom(code, playerID)
	if err != nil {
		return err
	}
	if room.Game.Status != state.StatusLobby {
		return ErrGameInProgress
	}
	n := len(room.Players)
	if n < e.cfg.MinPlayers {
		return fmt.Errorf("%w: need %d, have %d", ErrNotEnoughPlayers, e.cfg.MinPlayers, n)
	}
	pool, err := e.seeds.Seeds(ctx, room.Settings.Difficulties)
	if err != nil {
		return fmt.Errorf("load seeds: %w", err)
	}
	if len(pool) < n {
		return ErrNotEnoughSeeds
	}
	pool = slices.Clone(pool)
	e.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	now := e.clock.Now()
	game := state.NewGameState(room.Settings)
	game.Status = state.StatusPlaying
	game.StartPlayers = n
	for i, p := range room.Players {
		p.Ready = false
		game.Books = append(game.Books, &state.Book{
			OwnerID:   p.ID,
			OwnerName: p.Name,
			Seed:      pool[i],
			HolderID:  p.ID,
			Pages: []state.Page{{
				Kind:       state.PageSeed,
				AuthorID:   p.ID,
				AuthorName: p.Name,
				Content:    pool[i],
				CreatedAt:  now,
				Turn:       -1,
			}},
		})
	}
	room.Game = game
	e.logf("Room %s started a game with %d players", code, n)
	e.broadcast(room, EventGameStarted)
	e.startNewTurn(room, true)
	return nil
}

// EndGame throws away the current game and returns the room to the lobby.
func (e *Engine) EndGame(code, playerID string) error {
	room, err := e.hostRoom(code, playerID)
	if err != nil {
		return err
	}
	if room.Game.Status == state.StatusLobby {
		return ErrWrongPhase
	}
	e.turnTimers.Clear(code)
	room.Game = state.NewGameState(room.Settings)
	for _, p := range room.Players {
		p.Ready = false
	}
	e.logf("Room %s returned to the lobby", code)
	e.broadcast(room, EventRoomUpdate)
	return nil
}

func (e *Engine) KickPlayer(code, hostID, targetID string) error {
	room, err := e.hostRoom(code, hostID)
	if err != nil {
		return err
	}
	if hostID == targetID {
		return ErrCannotKickSelf
	}
	target := room.Player(targetID)
	if target == nil {
		return ErrPlayerNotFound
	}
	if target.Connected && target.ConnectionID != "" {
		e.notifier.Send(target.ConnectionID, EventKicked, parser.KickedResponse{Reason: "You were removed by the host"})
	}
	e.logf("Player %s was kicked from room %s", targetID, code)
	e.removePlayer(room, targetID)
	return nil
}

// LeaveRoom removes the player right away, without a grace period.
func (e *Engine) LeaveRoom(code, playerID string) error {
	room, err := e.rooms.GetRoom(code)
	if err != nil {
		return err
	}
	if room.Player(playerID) == nil {
		return ErrPlayerNotFound
	}
	e.removePlayer(room, playerID)
	return nil
}

func (e *Engine) hostRoom(code, playerID string) (*state.Room, error) {
	room, err := e.rooms.GetRoom(code)
	if err != nil {
		return nil, err
	}
	p := room.Player(playerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	if !p.Host {
		return nil, ErrNotHost
	}
	return room, nil
}

// removePlayer drops a player, migrates the host flag, retires the book they
// held mid-game and deletes the room once it is empty.
func (e *Engine) removePlayer(room *state.Room, playerID string) {
	idx := room.PlayerIndex(playerID)
	if idx < 0 {
		return
	}
	p := room.Players[idx]
	e.graceTimers.Clear(playerKey{Room: room.Code, Player: playerID})
	if p.ConnectionID != "" {
		delete(e.sessions, p.ConnectionID)
	}
	room.Players = slices.Delete(room.Players, idx, idx+1)

	if len(room.Players) == 0 {
		e.turnTimers.Clear(room.Code)
		e.rooms.DeleteRoom(room.Code)
		e.logf("Room %s is empty and was removed", room.Code)
		return
	}
	assignTeams(room)
	if p.Host {
		next := room.Players[idx%len(room.Players)]
		next.Host = true
		e.notice(room, fmt.Sprintf("%s is now the host", next.Name))
	}

	g := &room.Game
	if g.Status != state.StatusPlaying {
		e.broadcast(room, EventRoomUpdate)
		return
	}
	g.Submitted.Remove(playerID)
	for i, b := range g.Books {
		if b.HolderID == playerID {
			g.Retired = append(g.Retired, b)
			g.Books = slices.Delete(g.Books, i, i+1)
			break
		}
	}
	e.broadcast(room, EventRoomUpdate)
	if room.AllSubmitted() {
		e.advanceTurn(room.Code, g.Turn)
	}
}

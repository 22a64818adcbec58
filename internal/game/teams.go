package game

import (
	"fmt"

	"github.com/jdcb4/DrawNGuess/internal/state"
)

// assignTeams deals players round-robin across the room's teams in join
// order. Team names survive reassignment.
func assignTeams(room *state.Room) {
	if !room.Settings.TeamsEnabled || room.Settings.TeamCount < 1 {
		room.Teams = nil
		for _, p := range room.Players {
			p.TeamID = ""
		}
		return
	}
	names := make(map[string]string, len(room.Teams))
	for _, t := range room.Teams {
		names[t.ID] = t.Name
	}
	teams := make([]*state.Team, room.Settings.TeamCount)
	for i := range teams {
		id := fmt.Sprintf("team-%d", i+1)
		name, ok := names[id]
		if !ok {
			name = fmt.Sprintf("Team %d", i+1)
		}
		teams[i] = &state.Team{ID: id, Name: name}
	}
	for i, p := range room.Players {
		t := teams[i%len(teams)]
		t.MemberIDs = append(t.MemberIDs, p.ID)
		p.TeamID = t.ID
	}
	room.Teams = teams
}

func (e *Engine) RenameTeam(code, playerID, teamID, name string) error {
	room, err := e.rooms.GetRoom(code)
	if err != nil {
		return err
	}
	if room.Player(playerID) == nil {
		return ErrPlayerNotFound
	}
	if !room.Settings.TeamsEnabled {
		return ErrTeamsDisabled
	}
	for _, t := range room.Teams {
		if t.ID != teamID {
			continue
		}
		if t.Captain() != playerID {
			return ErrNotCaptain
		}
		t.Name = name
		e.broadcast(room, EventRoomUpdate)
		return nil
	}
	return ErrTeamNotFound
}

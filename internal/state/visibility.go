package state

import (
	"sort"
	"time"
)

// RoomView is what leaves the server. It never carries connection ids.
type RoomView struct {
	Code     string       `json:"code"`
	Players  []PlayerView `json:"players"`
	Teams    []Team       `json:"teams"`
	Settings Settings     `json:"settings"`
	Game     GameView     `json:"gameState"`
}

type PlayerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Ready     bool   `json:"isReady"`
	Connected bool   `json:"isConnected"`
	Host      bool   `json:"isHost"`
	TeamID    string `json:"teamId,omitempty"`
}

type GameView struct {
	Status        Status     `json:"status"`
	Turn          int        `json:"currentTurn"`
	Action        ActionType `json:"actionType,omitempty"`
	Books         []Book     `json:"books"`
	Submitted     []string   `json:"submittedPlayerIds"`
	Settings      Settings   `json:"settings"`
	TurnStartedAt *time.Time `json:"turnStartTime"`
}

// FilterFor builds the view sent to recipient. While playing, the recipient
// sees only the book they currently hold.
func FilterFor(room *Room, recipient string) RoomView {
	view := baseView(room)
	books := make([]Book, 0, 1)
	if room.Game.Status == StatusPlaying {
		if b := room.Game.BookHeldBy(recipient); b != nil {
			books = append(books, b.clone())
		}
	} else {
		books = allBooks(&room.Game)
	}
	view.Game.Books = books
	return view
}

// FullView is the unfiltered view, used for the reveal.
func FullView(room *Room) RoomView {
	view := baseView(room)
	view.Game.Books = allBooks(&room.Game)
	return view
}

func allBooks(g *GameState) []Book {
	books := make([]Book, 0, len(g.Books)+len(g.Retired))
	for _, b := range g.Books {
		books = append(books, b.clone())
	}
	for _, b := range g.Retired {
		books = append(books, b.clone())
	}
	return books
}

func baseView(room *Room) RoomView {
	players := make([]PlayerView, 0, len(room.Players))
	for _, p := range room.Players {
		players = append(players, PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			Ready:     p.Ready,
			Connected: p.Connected,
			Host:      p.Host,
			TeamID:    p.TeamID,
		})
	}
	teams := make([]Team, 0, len(room.Teams))
	for _, t := range room.Teams {
		c := *t
		c.MemberIDs = append([]string(nil), t.MemberIDs...)
		teams = append(teams, c)
	}
	submitted := room.Game.Submitted.Slice()
	sort.Strings(submitted)
	var started *time.Time
	if room.Game.TurnStartedAt != nil {
		t := *room.Game.TurnStartedAt
		started = &t
	}
	return RoomView{
		Code:     room.Code,
		Players:  players,
		Teams:    teams,
		Settings: room.Settings.Clone(),
		Game: GameView{
			Status:        room.Game.Status,
			Turn:          room.Game.Turn,
			Action:        room.Game.Action(),
			Submitted:     submitted,
			Settings:      room.Game.Settings.Clone(),
			TurnStartedAt: started,
		},
	}
}

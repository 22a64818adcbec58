package state

import (
	"time"

	"github.com/hashicorp/go-set/v3"
)

type Status string

const (
	StatusLobby   Status = "lobby"
	StatusPlaying Status = "playing"
	StatusReveal  Status = "reveal"
)

type PageKind string

const (
	PageSeed    PageKind = "seed"
	PageDrawing PageKind = "drawing"
	PageGuess   PageKind = "guess"
	PageSkip    PageKind = "skip"
)

type Player struct {
	ID           string
	ConnectionID string
	Name         string
	Ready        bool
	Connected    bool
	Host         bool
	TeamID       string
}

type Team struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds"`
}

// Captain is the first member; only the captain may rename the team.
func (t *Team) Captain() string {
	if len(t.MemberIDs) == 0 {
		return ""
	}
	return t.MemberIDs[0]
}

type Settings struct {
	Difficulties   []string `json:"difficulties"`
	DrawingSeconds int      `json:"drawingSeconds"`
	GuessSeconds   int      `json:"guessSeconds"`
	SkipSeconds    int      `json:"skipSeconds"`
	TeamsEnabled   bool     `json:"teamsEnabled"`
	TeamCount      int      `json:"teamCount"`
}

func (s Settings) Clone() Settings {
	c := s
	c.Difficulties = append([]string(nil), s.Difficulties...)
	return c
}

// Budget is the time allowed for a turn of the given action. Zero means the
// turn waits for every player.
func (s Settings) Budget(a ActionType) time.Duration {
	switch a {
	case ActionSkip:
		return time.Duration(s.SkipSeconds) * time.Second
	case ActionDrawing:
		return time.Duration(s.DrawingSeconds) * time.Second
	case ActionGuess:
		return time.Duration(s.GuessSeconds) * time.Second
	}
	return 0
}

type Page struct {
	Kind         PageKind  `json:"kind"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	Turn         int       `json:"turn"`
	AutoFilled   bool      `json:"autoFilled"`
	Disconnected bool      `json:"disconnected"`
}

type Book struct {
	OwnerID   string `json:"ownerId"`
	OwnerName string `json:"ownerName"`
	Seed      string `json:"seed"`
	Pages     []Page `json:"pages"`
	HolderID  string `json:"currentHolder"`
}

func (b *Book) LastPage() *Page {
	if len(b.Pages) == 0 {
		return nil
	}
	return &b.Pages[len(b.Pages)-1]
}

func (b *Book) clone() Book {
	c := *b
	c.Pages = append([]Page(nil), b.Pages...)
	return c
}

type GameState struct {
	Status Status
	Turn   int
	Books  []*Book
	// Retired books were held by players who left mid-game. They are shown
	// at reveal but no longer rotate.
	Retired       []*Book
	Submitted     *set.Set[string]
	Settings      Settings
	StartPlayers  int
	TurnStartedAt *time.Time
}

func NewGameState(settings Settings) GameState {
	return GameState{
		Status:    StatusLobby,
		Submitted: set.New[string](0),
		Settings:  settings.Clone(),
	}
}

// Action is the action type of the current turn.
func (g *GameState) Action() ActionType {
	if g.Status != StatusPlaying {
		return ActionNone
	}
	return ActionFor(g.Turn, g.StartPlayers)
}

func (g *GameState) BookHeldBy(playerID string) *Book {
	for _, b := range g.Books {
		if b.HolderID == playerID {
			return b
		}
	}
	return nil
}

type Room struct {
	Code     string
	Players  []*Player
	Teams    []*Team
	Settings Settings
	Game     GameState
}

func NewRoom(code string, settings Settings) *Room {
	return &Room{
		Code:     code,
		Players:  []*Player{},
		Settings: settings.Clone(),
		Game:     NewGameState(settings),
	}
}

func (r *Room) Player(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) PlayerIndex(id string) int {
	for i, p := range r.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (r *Room) Host() *Player {
	for _, p := range r.Players {
		if p.Host {
			return p
		}
	}
	return nil
}

// AllSubmitted reports whether every current player is in the submitted set.
func (r *Room) AllSubmitted() bool {
	if len(r.Players) == 0 {
		return false
	}
	for _, p := range r.Players {
		if !r.Game.Submitted.Contains(p.ID) {
			return false
		}
	}
	return true
}

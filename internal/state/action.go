package state

type ActionType string

const (
	ActionNone    ActionType = ""
	ActionSkip    ActionType = "skip"
	ActionDrawing ActionType = "drawing"
	ActionGuess   ActionType = "guess"
)

// ActionFor derives what players do on a turn. Rooms with an odd number of
// players open with a skip round so that every book ends on a guess.
func ActionFor(turn, playerCount int) ActionType {
	effective := turn
	if playerCount%2 == 1 {
		if turn == 0 {
			return ActionSkip
		}
		effective = turn - 1
	}
	if effective%2 == 0 {
		return ActionDrawing
	}
	return ActionGuess
}

// PageKind maps a content action to the kind of page it produces.
func (a ActionType) PageKind() PageKind {
	switch a {
	case ActionDrawing:
		return PageDrawing
	case ActionGuess:
		return PageGuess
	}
	return PageSkip
}

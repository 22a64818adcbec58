package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/jdcb4/DrawNGuess/internal/game"
	"github.com/jdcb4/DrawNGuess/internal/parser"
)

// silent lists message types whose failures are not reported back.
var silent = map[string]bool{
	parser.TypeSubmitDrawing: true,
	parser.TypeSubmitGuess:   true,
	parser.TypeSubmitSkip:    true,
	parser.TypeUnsubmit:      true,
}

// dispatch runs on the game loop.
func (s *GameServer) dispatch(connID, playerID string, msg *parser.ClientMessage) {
	err := s.handle(connID, playerID, msg)
	if err == nil {
		return
	}
	s.Logger.Debug(fmt.Sprintf("%s from %s rejected: %s", msg.Type, playerID, err))
	if silent[msg.Type] {
		return
	}
	// a vanished room or player is a no-op, except when the client is asking
	// to get in
	if msg.Type != parser.TypeJoinRoom &&
		(errors.Is(err, game.ErrRoomNotFound) || errors.Is(err, game.ErrPlayerNotFound)) {
		return
	}
	s.ConnStore.Send(connID, game.EventError, parser.ErrorResponse{Action: msg.Type, Message: err.Error()})
}

func (s *GameServer) handle(connID, playerID string, msg *parser.ClientMessage) error {
	code := msg.RoomCode
	switch msg.Type {
	case parser.TypeCreateRoom:
		req, err := parser.ParseCreateRoomRequest(msg, s.limits)
		if err != nil {
			return err
		}
		_, err = s.Engine.CreateRoom(connID, playerID, req.Name)
		return err
	case parser.TypeJoinRoom:
		req, err := parser.ParseJoinRoomRequest(msg, s.limits)
		if err != nil {
			return err
		}
		_, err = s.Engine.JoinRoom(connID, code, playerID, req.Name)
		return err
	case parser.TypeToggleReady:
		return s.Engine.ToggleReady(code, playerID)
	case parser.TypeUpdateSettings:
		req, err := parser.ParseUpdateSettingsRequest(msg)
		if err != nil {
			return err
		}
		return s.Engine.UpdateSettings(code, playerID, *req)
	case parser.TypeStartGame:
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return s.Engine.StartGame(ctx, code, playerID)
	case parser.TypeSubmitDrawing:
		req, err := parser.ParseSubmitDrawingRequest(msg, s.limits)
		if err != nil {
			return err
		}
		return s.Engine.SubmitDrawing(code, playerID, req.Drawing)
	case parser.TypeSubmitGuess:
		req, err := parser.ParseSubmitGuessRequest(msg, s.limits)
		if err != nil {
			return err
		}
		return s.Engine.SubmitGuess(code, playerID, req.Guess)
	case parser.TypeSubmitSkip:
		return s.Engine.SubmitSkipReady(code, playerID)
	case parser.TypeUnsubmit:
		return s.Engine.Unsubmit(code, playerID)
	case parser.TypeEndGame:
		return s.Engine.EndGame(code, playerID)
	case parser.TypeKickPlayer:
		req, err := parser.ParseKickPlayerRequest(msg)
		if err != nil {
			return err
		}
		return s.Engine.KickPlayer(code, playerID, req.PlayerID)
	case parser.TypeLeaveRoom:
		return s.Engine.LeaveRoom(code, playerID)
	case parser.TypeRenameTeam:
		req, err := parser.ParseRenameTeamRequest(msg, s.limits)
		if err != nil {
			return err
		}
		return s.Engine.RenameTeam(code, playerID, req.TeamID, req.Name)
	}
	return parser.ErrUnknownType
}

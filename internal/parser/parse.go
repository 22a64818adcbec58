package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	TypeCreateRoom     = "create-room"
	TypeJoinRoom       = "join-room"
	TypeToggleReady    = "toggle-ready"
	TypeUpdateSettings = "update-settings"
	TypeStartGame      = "start-game"
	TypeSubmitDrawing  = "submit-drawing"
	TypeSubmitGuess    = "submit-guess"
	TypeSubmitSkip     = "submit-skip-ready"
	TypeUnsubmit       = "unsubmit"
	TypeEndGame        = "end-game"
	TypeKickPlayer     = "kick-player"
	TypeLeaveRoom      = "leave-room"
	TypeRenameTeam     = "rename-team"
)

var (
	ErrMalformed      = errors.New("malformed message")
	ErrUnknownType    = errors.New("unknown message type")
	ErrInvalidName    = errors.New("invalid display name")
	ErrInvalidCode    = errors.New("invalid room code")
	ErrPayloadTooLong = errors.New("payload too long")
	ErrMissingField   = errors.New("missing field")
)

// Limits bound user supplied strings.
type Limits struct {
	MaxNameLength    int
	MaxGuessLength   int
	MaxDrawingLength int
}

type ClientMessage struct {
	Type     string          `json:"type"`
	RoomCode string          `json:"roomCode"`
	Payload  json.RawMessage `json:"payload"`
}

type ServerMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type CreateRoomRequest struct {
	Name string `json:"name"`
}

type JoinRoomRequest struct {
	Name string `json:"name"`
}

type SubmitDrawingRequest struct {
	Drawing string `json:"drawing"`
}

type SubmitGuessRequest struct {
	Guess string `json:"guess"`
}

type KickPlayerRequest struct {
	PlayerID string `json:"playerId"`
}

type RenameTeamRequest struct {
	TeamID string `json:"teamId"`
	Name   string `json:"name"`
}

type UpdateSettingsRequest struct {
	Difficulties   []string `json:"difficulties"`
	DrawingSeconds *int     `json:"drawingSeconds"`
	GuessSeconds   *int     `json:"guessSeconds"`
	SkipSeconds    *int     `json:"skipSeconds"`
	TeamsEnabled   *bool    `json:"teamsEnabled"`
	TeamCount      *int     `json:"teamCount"`
}

type CreateRoomResponse struct {
	Code string `json:"code"`
	Room any    `json:"room"`
}

type ErrorResponse struct {
	Action  string `json:"action"`
	Message string `json:"message"`
}

type NoticeResponse struct {
	Message string `json:"message"`
}

type KickedResponse struct {
	Reason string `json:"reason"`
}

type RoomStatusResponse struct {
	Exists bool   `json:"exists"`
	Status string `json:"status,omitempty"`
}

var roomScoped = map[string]bool{
	TypeJoinRoom:       true,
	TypeToggleReady:    true,
	TypeUpdateSettings: true,
	TypeStartGame:      true,
	TypeSubmitDrawing:  true,
	TypeSubmitGuess:    true,
	TypeSubmitSkip:     true,
	TypeUnsubmit:       true,
	TypeEndGame:        true,
	TypeKickPlayer:     true,
	TypeLeaveRoom:      true,
	TypeRenameTeam:     true,
}

func ParseClientMessage(data []byte) (*ClientMessage, error) {
	msg := &ClientMessage{}
	if err := json.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, err.Error())
	}
	if msg.Type != TypeCreateRoom && !roomScoped[msg.Type] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, msg.Type)
	}
	if roomScoped[msg.Type] {
		code, err := NormalizeRoomCode(msg.RoomCode)
		if err != nil {
			return nil, err
		}
		msg.RoomCode = code
	}
	return msg, nil
}

// Decode unmarshals the payload into v, rejecting unknown fields.
func (m *ClientMessage) Decode(v any) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("%w: payload", ErrMissingField)
	}
	dec := json.NewDecoder(bytes.NewReader(m.Payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformed, err.Error())
	}
	return nil
}

func NormalizeRoomCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 4 || len(code) > 8 {
		return "", ErrInvalidCode
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCode
		}
	}
	return code, nil
}

func NormalizeName(name string, limits Limits) (string, error) {
	name = strings.TrimSpace(name)
	if len(name) == 0 || utf8.RuneCountInString(name) > limits.MaxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

func ParseCreateRoomRequest(msg *ClientMessage, limits Limits) (*CreateRoomRequest, error) {
	req := &CreateRoomRequest{}
	if err := msg.Decode(req); err != nil {
		return nil, err
	}
	name, err := NormalizeName(req.Name, limits)
	if err != nil {
		return nil, err
	}
	req.Name = name
	return req, nil
}

func ParseJoinRoomRequest(msg *ClientMessage, limits Limits) (*JoinRoomRequest, error) {
	req := &JoinRoomRequest{}
	if err := msg.Decode(req); err != nil {
		return nil, err
	}
	name, err := NormalizeName(req.Name, limits)
	if err != nil {
		return nil, err
	}
	req.Name = name
	return req, nil
}

func ParseSubmitDrawingRequest(msg *ClientMessage, limits Limits) (*SubmitDrawingRequest, error) {
	req := &SubmitDrawingRequest{}
	if err := msg.Decode(req); err != nil {
		return nil, err
	}
	if len(req.Drawing) > limits.MaxDrawingLength {
		return nil, ErrPayloadTooLong
	}
	return req, nil
}

func ParseSubmitGuessRequest(msg *ClientMessage, limits Limits) (*SubmitGuessRequest, error) {
	req := &SubmitGuessRequest{}
	if err := msg.Decode(req); err != nil {
		return nil, err
	}
	req.Guess = strings.TrimSpace(req.Guess)
	if utf8.RuneCountInString(req.Guess) > limits.MaxGuessLength {
		return nil, ErrPayloadTooLong
	}
	return req, nil
}

func ParseKickPlayerRequest(msg *ClientMessage) (*KickPlayerRequest, error) {
	req := &KickPlayerRequest{}
	if err := msg.Decode(req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.PlayerID) == "" {
		return nil, fmt.Errorf("%w: playerId", ErrMissingField)
	}
	return req, nil
}

func ParseRenameTeamRequest(msg *ClientMessage, limits Limits) (*RenameTeamRequest, error) {
	req := &RenameTeamRequest{}
	if err := msg.Decode(req); err != nil {
		return nil, err
	}
	if req.TeamID == "" {
		return nil, fmt.Errorf("%w: teamId", ErrMissingField)
	}
	name, err := NormalizeName(req.Name, limits)
	if err != nil {
		return nil, err
	}
	req.Name = name
	return req, nil
}

func ParseUpdateSettingsRequest(msg *ClientMessage) (*UpdateSettingsRequest, error) {
	req := &UpdateSettingsRequest{}
	if err := msg.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

func Encode(msgType string, payload any) ([]byte, error) {
	return json.Marshal(ServerMessage{Type: msgType, Payload: payload})
}

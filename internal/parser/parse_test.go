package parser

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var limits = Limits{MaxNameLength: 10, MaxGuessLength: 12, MaxDrawingLength: 16}

func TestParseClientMessage(t *testing.T) {
	tests := []struct {
		description string
		input       string
		expectedErr error
		code        string
	}{
		{"Test with valid create room", `{"type":"create-room","payload":{"name":"rookie"}}`, nil, ""},
		{"Test with room code normalized", `{"type":"toggle-ready","roomCode":" abcd "}`, nil, "ABCD"},
		{"Test with unknown type", `{"type":"dance","roomCode":"ABCD"}`, ErrUnknownType, ""},
		{"Test with malformed json", `{"type":`, ErrMalformed, ""},
		{"Test with missing room code", `{"type":"start-game"}`, ErrInvalidCode, ""},
		{"Test with digits in room code", `{"type":"start-game","roomCode":"AB12"}`, ErrInvalidCode, ""},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			msg, err := ParseClientMessage([]byte(tc.input))
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.code, msg.RoomCode)
		})
	}
}

func TestParseCreateRoomRequest(t *testing.T) {
	tests := []struct {
		description string
		payload     string
		expectedErr error
		name        string
	}{
		{"Test with valid name", `{"name":"  rookie "}`, nil, "rookie"},
		{"Test with player name containing all whitespaces", `{"name":"     "}`, ErrInvalidName, ""},
		{"Test with empty player name", `{"name":""}`, ErrInvalidName, ""},
		{"Test with too long name", `{"name":"abcdefghijk"}`, ErrInvalidName, ""},
		{"Test with unknown field", `{"name":"rookie","admin":true}`, ErrMalformed, ""},
		{"Test with no payload", ``, ErrMissingField, ""},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			msg := &ClientMessage{Type: TypeCreateRoom, Payload: json.RawMessage(tc.payload)}
			req, err := ParseCreateRoomRequest(msg, limits)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.name, req.Name)
		})
	}
}

func TestParseSubmissions(t *testing.T) {
	msg := &ClientMessage{Payload: json.RawMessage(`{"guess":" a cat "}`)}
	guess, err := ParseSubmitGuessRequest(msg, limits)
	require.NoError(t, err)
	assert.Equal(t, "a cat", guess.Guess)

	msg = &ClientMessage{Payload: json.RawMessage(`{"guess":"` + strings.Repeat("x", 13) + `"}`)}
	_, err = ParseSubmitGuessRequest(msg, limits)
	assert.ErrorIs(t, err, ErrPayloadTooLong)

	msg = &ClientMessage{Payload: json.RawMessage(`{"drawing":"data:image/png"}`)}
	drawing, err := ParseSubmitDrawingRequest(msg, limits)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png", drawing.Drawing)

	msg = &ClientMessage{Payload: json.RawMessage(`{"drawing":"` + strings.Repeat("x", 17) + `"}`)}
	_, err = ParseSubmitDrawingRequest(msg, limits)
	assert.ErrorIs(t, err, ErrPayloadTooLong)
}

func TestParseKickAndRename(t *testing.T) {
	_, err := ParseKickPlayerRequest(&ClientMessage{Payload: json.RawMessage(`{"playerId":" "}`)})
	assert.ErrorIs(t, err, ErrMissingField)

	kick, err := ParseKickPlayerRequest(&ClientMessage{Payload: json.RawMessage(`{"playerId":"p2"}`)})
	require.NoError(t, err)
	assert.Equal(t, "p2", kick.PlayerID)

	_, err = ParseRenameTeamRequest(&ClientMessage{Payload: json.RawMessage(`{"name":"reds"}`)}, limits)
	assert.ErrorIs(t, err, ErrMissingField)

	rename, err := ParseRenameTeamRequest(&ClientMessage{Payload: json.RawMessage(`{"teamId":"team-1","name":" reds "}`)}, limits)
	require.NoError(t, err)
	assert.Equal(t, "reds", rename.Name)
}

func TestParseUpdateSettingsRequest(t *testing.T) {
	msg := &ClientMessage{Payload: json.RawMessage(`{"difficulties":["hard"],"guessSeconds":40}`)}
	req, err := ParseUpdateSettingsRequest(msg)
	require.NoError(t, err)
	assert.Equal(t, []string{"hard"}, req.Difficulties)
	require.NotNil(t, req.GuessSeconds)
	assert.Equal(t, 40, *req.GuessSeconds)
	assert.Nil(t, req.DrawingSeconds)
}

func TestEncode(t *testing.T) {
	data, err := Encode("notice", NoticeResponse{Message: "hi"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"notice","payload":{"message":"hi"}}`, string(data))
}

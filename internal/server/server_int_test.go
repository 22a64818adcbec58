package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdcb4/DrawNGuess/internal/config"
	"github.com/jdcb4/DrawNGuess/internal/db"
	"github.com/jdcb4/DrawNGuess/internal/game"
	"github.com/jdcb4/DrawNGuess/internal/logger"
	"github.com/jdcb4/DrawNGuess/internal/parser"
	"github.com/jdcb4/DrawNGuess/internal/state"
)

func setup(t *testing.T) (*GameServer, *httptest.Server, db.Repository) {
	cfg, err := config.Load("testdata/test.env")
	require.NoError(t, err, "Failed to load environment variables")
	logger.SetLevel(cfg.LogLevel)
	cfg.Database = filepath.Join(t.TempDir(), cfg.Database)
	repo, err := db.SetupDB(cfg.Database)
	require.NoError(t, err, "Failed to setup database")

	gs := NewGameServer(cfg, repo)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, gs.loadSeeds(ctx), "Failed to load seed words")
	go gs.Loop.Run(ctx)
	server := httptest.NewServer(gs.Router)
	t.Cleanup(func() {
		gs.ConnStore.CloseAll()
		server.Close()
		cancel()
		gs.Engine.Flush()
		repo.CloseConnection()
	})
	return gs, server, repo
}

func readEvent(t *testing.T, conn *websocket.Conn, eventType string) json.RawMessage {
	for {
		conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		env := envelope{}
		require.NoError(t, conn.ReadJSON(&env), "Timed out waiting for %s", eventType)
		if env.Type == eventType {
			return env.Payload
		}
	}
}

// TestGameFlow lets every turn run out, so the game is finished entirely by
// the server's timers and the result lands in sqlite.
func TestGameFlow(t *testing.T) {
	_, server, repo := setup(t)
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + HTTP_API_V1_PREFIX + "/connect?playerId="

	var conns []*websocket.Conn
	for player := 1; player <= 2; player++ {
		conn, resp, err := websocket.DefaultDialer.Dial(fmt.Sprintf("%splayer%d", wsURL, player), nil)
		require.NoError(t, err, "Failed to connect player %d", player)
		resp.Body.Close()
		defer conn.Close()
		conns = append(conns, conn)
	}

	require.NoError(t, conns[0].WriteJSON(map[string]any{"type": parser.TypeCreateRoom, "payload": map[string]string{"name": "rookie"}}))
	created := parser.CreateRoomResponse{}
	require.NoError(t, json.Unmarshal(readEvent(t, conns[0], game.EventRoomCreated), &created))
	code := created.Code

	resp, err := http.Get(server.URL + HTTP_API_V1_PREFIX + "/game/" + code)
	require.NoError(t, err)
	body, err := ReadResponseBody(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"exists":true,"status":"lobby"}`, string(body))

	require.NoError(t, conns[1].WriteJSON(map[string]any{"type": parser.TypeJoinRoom, "roomCode": code, "payload": map[string]string{"name": "veteran"}}))
	readEvent(t, conns[1], game.EventRoomJoined)
	require.NoError(t, conns[0].WriteJSON(map[string]any{"type": parser.TypeStartGame, "roomCode": code}))

	for _, conn := range conns {
		view := state.RoomView{}
		require.NoError(t, json.Unmarshal(readEvent(t, conn, game.EventGameOver), &view))
		assert.Equal(t, state.StatusReveal, view.Game.Status)
		require.Len(t, view.Game.Books, 2)
		for _, b := range view.Game.Books {
			require.Len(t, b.Pages, 3)
			assert.True(t, b.Pages[1].AutoFilled, "nobody drew, the timer filled the page")
			assert.True(t, b.Pages[2].AutoFilled)
		}
	}

	// the archive write lands shortly after the reveal
	var games []db.FinishedGame
	require.Eventually(t, func() bool {
		games, err = repo.FinishedGames(context.Background(), code)
		return err == nil && len(games) == 1
	}, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, 2, games[0].PlayerCount)
	assert.Equal(t, 2, games[0].Turns)
	assert.Contains(t, games[0].BooksJSON, "rookie")
}

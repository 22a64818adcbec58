package db

import (
	"context"

	"github.com/jdcb4/DrawNGuess/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

type Repository interface {
	SetupConnection(database string) error
	CloseConnection()
	Seeds(ctx context.Context, difficulties []string) ([]string, error)
	AddSeeds(ctx context.Context, seeds []Seed) error
	RecordFinishedGame(ctx context.Context, game FinishedGame) error
	FinishedGames(ctx context.Context, roomCode string) ([]FinishedGame, error)
}

func SetupDB(dbName string) (Repository, error) {
	var repository Repository = &SqliteStore{
		Logger: logger.New("database"),
	}
	err := repository.SetupConnection(dbName)
	return repository, err
}

package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdcb4/DrawNGuess/internal/logger"

	"github.com/jmoiron/sqlx"
)

var schema = `CREATE TABLE IF NOT EXISTS seeds (
  word varchar(64) NOT NULL,
  difficulty varchar(16) NOT NULL,
  PRIMARY KEY (word, difficulty),
  CONSTRAINT non_empty_word CHECK (TRIM(word) <> '')
);

CREATE TABLE IF NOT EXISTS finished_games (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  room_code varchar(8) NOT NULL,
  player_count int NOT NULL,
  turns int NOT NULL,
  books_json TEXT NOT NULL,
  finished_at DATETIME NOT NULL
);`

var defaultSeeds = map[string][]string{
	"easy": {
		"cat", "house", "sun", "tree", "fish", "car", "apple", "boat", "moon", "flower",
		"dog", "hat", "ball", "star", "cake", "bird", "chair", "book", "key", "shoe",
	},
	"medium": {
		"lighthouse", "volcano", "astronaut", "snowman", "pirate ship", "giraffe", "waterfall",
		"skateboard", "dragon", "campfire", "robot", "castle", "octopus", "rainbow", "cactus",
	},
	"hard": {
		"déjà vu", "procrastination", "time travel", "gravity", "nostalgia", "black hole",
		"democracy", "photosynthesis", "stage fright", "traffic jam", "echo", "jet lag",
	},
}

type SqliteStore struct {
	Conn   *sqlx.DB
	Logger logger.Logger
}

func (s *SqliteStore) SetupConnection(dbname string) error {
	sqlite_dbfile := dbname
	if !strings.HasSuffix(dbname, ".db") {
		sqlite_dbfile = dbname + ".db"
	}
	db, err := sqlx.Connect("sqlite3", sqlite_dbfile)
	if err != nil {
		s.Logger.Error("Database setup failed", err)
		return err
	}
	db.SetMaxOpenConns(1)
	s.Conn = db
	if _, err := s.Conn.Exec(schema); err != nil {
		s.Logger.Error("Failed to create schema", err)
		return err
	}
	if err := s.seedDefaults(context.Background()); err != nil {
		return err
	}
	s.Logger.Info(fmt.Sprintf("Database %s setup successfully", sqlite_dbfile))
	return nil
}

func (s *SqliteStore) CloseConnection() {
	s.Logger.Info("Closing database connection")
	if err := s.Conn.Close(); err != nil {
		s.Logger.Error("Failed to tear down database connection", err)
		return
	}
	s.Logger.Info("Database connection closed successfully")
}

func (s *SqliteStore) seedDefaults(ctx context.Context) error {
	var count int
	if err := s.Conn.GetContext(ctx, &count, `SELECT COUNT(*) FROM seeds;`); err != nil {
		s.Logger.Error("Failed to count seeds", err)
		return err
	}
	if count > 0 {
		return nil
	}
	seeds := []Seed{}
	for difficulty, words := range defaultSeeds {
		for _, w := range words {
			seeds = append(seeds, Seed{Word: w, Difficulty: difficulty})
		}
	}
	return s.AddSeeds(ctx, seeds)
}

// Seeds returns every word whose difficulty is one of difficulties. A word
// filed under several of them comes back once.
func (s *SqliteStore) Seeds(ctx context.Context, difficulties []string) ([]string, error) {
	if len(difficulties) == 0 {
		return []string{}, nil
	}
	query, args, err := sqlx.In(`SELECT DISTINCT word FROM seeds WHERE difficulty IN (?) ORDER BY word;`, difficulties)
	if err != nil {
		return nil, err
	}
	words := []string{}
	if err := s.Conn.SelectContext(ctx, &words, s.Conn.Rebind(query), args...); err != nil {
		s.Logger.Error("Failed to fetch seeds", err)
		return nil, err
	}
	return words, nil
}

func (s *SqliteStore) AddSeeds(ctx context.Context, seeds []Seed) error {
	txn, err := s.Conn.Beginx()
	if err != nil {
		s.Logger.Error("Failed to add seeds", err)
		return err
	}
	// only a key conflict is skipped; a blank word still fails non_empty_word
	insertSeedSQL := `INSERT INTO seeds(word, difficulty) VALUES(:word, :difficulty)
  ON CONFLICT(word, difficulty) DO NOTHING;`
	for _, seed := range seeds {
		if _, err := txn.NamedExecContext(ctx, insertSeedSQL, seed); err != nil {
			s.Logger.Error("Failed to add seed", err)
			if errRoll := txn.Rollback(); errRoll != nil {
				s.Logger.Error("Failed to rollback AddSeeds txn", errRoll)
				return errRoll
			}
			return err
		}
	}
	if errCommit := txn.Commit(); errCommit != nil {
		s.Logger.Error("Failed to Commit AddSeeds txn", errCommit)
		return errCommit
	}
	s.Logger.Debug(fmt.Sprintf("Added %d seeds", len(seeds)))
	return nil
}

func (s *SqliteStore) RecordFinishedGame(ctx context.Context, game FinishedGame) error {
	sql := `INSERT INTO finished_games(room_code, player_count, turns, books_json, finished_at)
  VALUES(:room_code, :player_count, :turns, :books_json, :finished_at);`
	if _, err := s.Conn.NamedExecContext(ctx, sql, game); err != nil {
		s.Logger.Error("Failed to record finished game", err)
		return err
	}
	s.Logger.Info(fmt.Sprintf("Recorded finished game for room %s", game.RoomCode))
	return nil
}

func (s *SqliteStore) FinishedGames(ctx context.Context, roomCode string) ([]FinishedGame, error) {
	games := []FinishedGame{}
	sql := `SELECT * FROM finished_games WHERE room_code = ? ORDER BY id;`
	if err := s.Conn.SelectContext(ctx, &games, sql, roomCode); err != nil {
		s.Logger.Error("Failed to fetch finished games", err)
		return nil, err
	}
	return games, nil
}

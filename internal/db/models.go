package db

import "time"

type Seed struct {
	Word       string `db:"word"`
	Difficulty string `db:"difficulty"`
}

type FinishedGame struct {
	Id          int64     `db:"id"`
	RoomCode    string    `db:"room_code"`
	PlayerCount int       `db:"player_count"`
	Turns       int       `db:"turns"`
	BooksJSON   string    `db:"books_json"`
	FinishedAt  time.Time `db:"finished_at"`
}

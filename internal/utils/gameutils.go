package utils

import (
	"errors"
	"math/rand"
)

var ErrNoFreeCode = errors.New("could not find a free room code")

func GetRandomGameId(size int) string {
	r := make([]byte, size)
	for i := 0; i < size; i += 1 {
		offset := rand.Intn(26)
		r[i] = byte('A' + offset)
	}
	return string(r)
}

// NewRoomCode draws codes until taken reports a free one.
func NewRoomCode(size, attempts int, taken func(string) bool) (string, error) {
	for i := 0; i < attempts; i++ {
		code := GetRandomGameId(size)
		if !taken(code) {
			return code, nil
		}
	}
	return "", ErrNoFreeCode
}

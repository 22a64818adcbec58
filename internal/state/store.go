package state

import (
	"errors"
	"fmt"
)

var ErrRoomNotFound = errors.New("room not found")

type StateStore interface {
	GetRoom(code string) (*Room, error)
	SetRoom(room *Room)
	DeleteRoom(code string)
	Exists(code string) bool
}

// InMemoryRoomStore is owned by the game loop and is not locked.
type InMemoryRoomStore struct {
	store map[string]*Room
}

func NewInMemoryRoomStore() *InMemoryRoomStore {
	return &InMemoryRoomStore{store: make(map[string]*Room)}
}

func (i *InMemoryRoomStore) GetRoom(code string) (*Room, error) {
	room, exists := i.store[code]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, code)
	}
	return room, nil
}

func (i *InMemoryRoomStore) SetRoom(room *Room) {
	i.store[room.Code] = room
}

func (i *InMemoryRoomStore) DeleteRoom(code string) {
	delete(i.store, code)
}

func (i *InMemoryRoomStore) Exists(code string) bool {
	_, exists := i.store[code]
	return exists
}

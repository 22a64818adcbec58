package game

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jdcb4/DrawNGuess/internal/db"
)

type MockSeedSource struct {
	mock.Mock
}

func (m *MockSeedSource) Seeds(ctx context.Context, difficulties []string) ([]string, error) {
	ret := m.Called(ctx, difficulties)
	var words []string
	if ret.Get(0) != nil {
		words = ret.Get(0).([]string)
	}
	return words, ret.Error(1)
}

func NewMockSeedSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSeedSource {
	m := &MockSeedSource{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) RecordFinishedGame(ctx context.Context, game db.FinishedGame) error {
	ret := m.Called(ctx, game)
	return ret.Error(0)
}

func NewMockArchiver(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockArchiver {
	m := &MockArchiver{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type sentEvent struct {
	Type    string
	Payload any
}

// recorder is a Notifier that keeps everything sent, per connection.
type recorder struct {
	byConn map[string][]sentEvent
}

func newRecorder() *recorder {
	return &recorder{byConn: make(map[string][]sentEvent)}
}

func (r *recorder) Send(connID, eventType string, payload any) {
	r.byConn[connID] = append(r.byConn[connID], sentEvent{Type: eventType, Payload: payload})
}

func (r *recorder) last(connID, eventType string) (any, bool) {
	events := r.byConn[connID]
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Type == eventType {
			return events[i].Payload, true
		}
	}
	return nil, false
}

func (r *recorder) count(connID, eventType string) int {
	n := 0
	for _, ev := range r.byConn[connID] {
		if ev.Type == eventType {
			n++
		}
	}
	return n
}

package game

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSeedPoolServesFromMemoryAfterLoad(t *testing.T) {
	source := NewMockSeedSource(t)
	source.On("Seeds", mock.Anything, []string{"easy"}).Return([]string{"dog", "cat"}, nil).Once()
	source.On("Seeds", mock.Anything, []string{"hard"}).Return([]string{"cat", "void"}, nil).Once()

	pool := NewSeedPool(source)
	require.NoError(t, pool.Load(context.Background(), []string{"easy", "hard"}))

	for i := 0; i < 3; i++ {
		words, err := pool.Seeds(context.Background(), []string{"easy", "hard"})
		require.NoError(t, err)
		assert.Equal(t, []string{"cat", "dog", "void"}, words)
	}
	words, err := pool.Seeds(context.Background(), []string{"hard"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "void"}, words)
}

func TestSeedPoolFetchesUnknownDifficultyOnce(t *testing.T) {
	source := NewMockSeedSource(t)
	source.On("Seeds", mock.Anything, []string{"custom"}).Return([]string{"kraken"}, nil).Once()

	pool := NewSeedPool(source)
	for i := 0; i < 2; i++ {
		words, err := pool.Seeds(context.Background(), []string{"custom"})
		require.NoError(t, err)
		assert.Equal(t, []string{"kraken"}, words)
	}
}

func TestSeedPoolSourceFailure(t *testing.T) {
	source := NewMockSeedSource(t)
	source.On("Seeds", mock.Anything, mock.Anything).Return(nil, errors.New("db closed")).Twice()

	pool := NewSeedPool(source)
	assert.Error(t, pool.Load(context.Background(), []string{"easy"}))
	_, err := pool.Seeds(context.Background(), []string{"easy"})
	assert.Error(t, err)
}

func TestSeedPoolEmptySelection(t *testing.T) {
	pool := NewSeedPool(NewMockSeedSource(t))
	words, err := pool.Seeds(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, words)
}

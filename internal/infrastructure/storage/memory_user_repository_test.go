package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"accessibility-bot/internal/domain/entity"
)

func TestMemoryUserRepository_GetCreatesUser(t *testing.T) {
	repo := NewMemoryUserRepository()

	user, err := repo.Get(context.Background(), 7, 70)
	require.NoError(t, err)
	require.Equal(t, int64(7), user.ID)
	require.Equal(t, int64(70), user.ChatID)
	require.Equal(t, entity.StateMainMenu, user.State)
}

func TestMemoryUserRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	user.SetState(entity.StateProcessing)

	stored, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, stored.State)

	require.NoError(t, repo.Save(ctx, user))
	stored, err = repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, stored.State)
}

func TestMemoryUserRepository_Errors(t *testing.T) {
	repo := NewMemoryUserRepository()
	require.Error(t, repo.Save(context.Background(), nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.Get(ctx, 1, 10)
	require.ErrorIs(t, err, context.Canceled)
}

func TestMemoryUserRepository_Concurrent(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			user, err := repo.Get(ctx, id%4, id)
			if err != nil {
				return
			}
			user.SetState(entity.StateAwaitingScreenshot)
			_ = repo.Save(ctx, user)
		}(int64(i))
	}
	wg.Wait()

	for id := int64(0); id < 4; id++ {
		user, err := repo.Get(ctx, id, 0)
		require.NoError(t, err)
		require.Equal(t, entity.StateAwaitingScreenshot, user.State)
	}
}

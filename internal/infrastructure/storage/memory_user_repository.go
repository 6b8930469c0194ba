package storage

import (
	"context"
	"errors"
	"sync"

	"accessibility-bot/internal/domain/entity"
	"accessibility-bot/internal/domain/port"
)

// MemoryUserRepository состояние диалогов в памяти процесса.
// Сканы не сохраняются, после перезапуска все снова в главном меню.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[int64]entity.User
}

// NewMemoryUserRepository создаёт пустое хранилище
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[int64]entity.User),
	}
}

// Get возвращает копию пользователя
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		user = *entity.NewUser(userID, chatID)
		r.users[userID] = user
	}
	return &user, nil
}

// Save записывает копию пользователя
func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.users[user.ID] = *user
	r.mu.Unlock()
	return nil
}

var _ port.UserRepository = (*MemoryUserRepository)(nil)

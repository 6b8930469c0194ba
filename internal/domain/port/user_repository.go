package port

import (
	"context"

	"accessibility-bot/internal/domain/entity"
)

// UserRepository хранит состояние диалога с пользователем.
// Реализации отдают копии, так что вызывающий может менять их без блокировок.
type UserRepository interface {
	// Get возвращает пользователя, при первом обращении создаёт его в главном меню
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save записывает состояние пользователя
	Save(ctx context.Context, user *entity.User) error
}

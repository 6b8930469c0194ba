package port

import (
	"context"

	"accessibility-bot/internal/domain/entity"
)

// ReportRenderer собирает документ для скачивания
type ReportRenderer interface {
	Render(ctx context.Context, report *entity.Report) (*entity.Artifact, error)
}

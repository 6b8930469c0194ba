package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/semaphore"

	app "accessibility-bot/internal/application"
	"accessibility-bot/internal/container"
	"accessibility-bot/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я проверяю доступность веб-интерфейсов по скриншоту.

📸 Пришлите скриншот страницы (фото или файлом PNG/JPEG/WebP), и я оценю контраст, использование цвета, масштабирование текста и наличие alt-текста.

📄 Для точной проверки alt-текста сначала отправьте HTML-файл страницы, затем скриншот.

📋 Команды:
/check — начать проверку
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ (необязательно) Отправьте HTML-файл страницы
2️⃣ Отправьте скриншот страницы в браузере
3️⃣ Получите оценки, рекомендации и отчёт файлом

💡 Рекомендации:
• Присылайте скриншот целиком, вместе с вкладками и адресной строкой
• Файлом качество лучше, чем фото
• Фотографии документов и людей бот отклонит

📋 Команды:
/check — начать проверку
/cancel — отменить операцию`

	msgAwaitingScreenshot = "📸 Отправьте скриншот страницы для проверки."
	msgCancelled          = "❌ Операция отменена. Отправьте /check для новой проверки."
	msgSendScreenshot     = "📸 Пожалуйста, отправьте скриншот страницы или HTML-файл."
	msgUnknownCommand     = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing         = "⏳ Анализирую скриншот..."
	msgQueued             = "⏳ Сейчас много проверок, ваш скриншот в очереди."
	msgBusy               = "⏳ Предыдущий скриншот ещё обрабатывается, подождите."
	msgMarkupSaved        = "📄 Разметка сохранена. Теперь отправьте скриншот этой страницы."
	msgUnsupportedFile    = "⚠️ Поддерживаются изображения PNG, JPEG, WebP и HTML-файлы."
	msgTooLarge           = "⚠️ Файл слишком большой."
	msgProcessingError    = "⚠️ Не удалось обработать изображение. Попробуйте ещё раз."
	msgReportError        = "⚠️ Не удалось собрать отчёт, результаты выше."
)

// Options ограничения бота.
type Options struct {
	MaxConcurrent  int64
	MaxUploadBytes int64
}

// Bot представляет Telegram-бота
type Bot struct {
	api         *tgbotapi.BotAPI
	users       *app.UserService
	screenshots *app.ScreenshotService
	logger      *slog.Logger
	client      *http.Client
	sem         *semaphore.Weighted
	maxBytes    int64
	wg          sync.WaitGroup
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container, logger *slog.Logger, opts Options) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}

	logger.Info("authorized", "account", api.Self.UserName)

	return &Bot{
		api:         api,
		users:       c.UserService,
		screenshots: c.ScreenshotService,
		logger:      logger,
		client:      &http.Client{Timeout: 60 * time.Second},
		sem:         semaphore.NewWeighted(opts.MaxConcurrent),
		maxBytes:    opts.MaxUploadBytes,
	}, nil
}

// Run обрабатывает сообщения до отмены контекста.
// Анализы идут в фоне, число одновременных ограничено.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.wg.Wait()
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.users.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		b.logger.Error("get user", "user_id", msg.From.ID, "error", err)
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	upload, ok := classify(msg)
	switch {
	case !ok && msg.Document != nil:
		b.sendMessage(msg.Chat.ID, msgUnsupportedFile)
	case !ok:
		b.sendMessage(msg.Chat.ID, msgSendScreenshot)
	case b.maxBytes > 0 && int64(upload.size) > b.maxBytes:
		b.sendMessage(msg.Chat.ID, msgTooLarge)
	case upload.kind == uploadMarkup:
		b.handleMarkup(ctx, msg, upload)
	case user.State == entity.StateProcessing:
		b.sendMessage(msg.Chat.ID, msgBusy)
	default:
		b.startAnalysis(ctx, msg, upload)
	}
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	switch msg.Command() {
	case "start":
		if _, err := b.screenshots.Cancel(ctx, userID, chatID); err != nil {
			b.logger.Error("reset user", "user_id", userID, "error", err)
		}
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "check":
		if _, err := b.users.BeginCheck(ctx, userID, chatID); err != nil {
			b.logger.Error("begin check", "user_id", userID, "error", err)
		}
		b.sendMessage(chatID, msgAwaitingScreenshot)

	case "cancel":
		if _, err := b.screenshots.Cancel(ctx, userID, chatID); err != nil {
			b.logger.Error("cancel", "user_id", userID, "error", err)
		}
		b.sendMessage(chatID, msgCancelled)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

func (b *Bot) handleMarkup(ctx context.Context, msg *tgbotapi.Message, upload incomingFile) {
	data, err := b.downloadFile(ctx, upload.fileID)
	if err != nil {
		b.logger.Warn("download markup", "user_id", msg.From.ID, "error", err)
		b.sendMessage(msg.Chat.ID, downloadErrorText(err))
		return
	}
	if _, err := b.screenshots.AcceptMarkup(ctx, msg.From.ID, msg.Chat.ID, data); err != nil {
		b.logger.Warn("accept markup", "user_id", msg.From.ID, "error", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}
	b.sendMessage(msg.Chat.ID, msgMarkupSaved)
}

func (b *Bot) startAnalysis(ctx context.Context, msg *tgbotapi.Message, upload incomingFile) {
	queued := !b.sem.TryAcquire(1)
	if queued {
		b.sendMessage(msg.Chat.ID, msgQueued)
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		if queued {
			if err := b.sem.Acquire(ctx, 1); err != nil {
				return
			}
		}
		defer b.sem.Release(1)
		b.handleScreenshot(ctx, msg, upload)
	}()
}

// handleScreenshot скачивает скриншот, прогоняет анализ и отвечает результатом.
func (b *Bot) handleScreenshot(ctx context.Context, msg *tgbotapi.Message, upload incomingFile) {
	chatID := msg.Chat.ID
	b.sendMessage(chatID, msgProcessing)

	data, err := b.downloadFile(ctx, upload.fileID)
	if err != nil {
		b.logger.Warn("download screenshot", "user_id", msg.From.ID, "error", err)
		b.sendMessage(chatID, downloadErrorText(err))
		return
	}

	started := time.Now()
	out, err := b.screenshots.ProcessScreenshot(ctx, msg.From.ID, chatID, data)

	var invalid *entity.InvalidImageError
	switch {
	case errors.As(err, &invalid):
		b.logger.Info("screenshot rejected", "user_id", msg.From.ID, "reason", invalid.Reason)
		b.sendMessage(chatID, formatRejection(invalid))
		return
	case out == nil || out.Report == nil:
		b.logger.Error("analysis failed", "user_id", msg.From.ID, "error", err)
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	b.logger.Info("screenshot analyzed",
		"user_id", msg.From.ID,
		"rule_score", out.Report.Scores.Rule,
		"ml_score", out.Report.Scores.ML,
		"elapsed", time.Since(started))

	b.sendMessage(chatID, formatReport(out.Report))

	if err != nil || out.Artifact == nil {
		b.logger.Error("render report", "user_id", msg.From.ID, "error", err)
		b.sendMessage(chatID, msgReportError)
		return
	}
	b.sendDocument(chatID, out.Artifact)
}

var errTooLarge = errors.New("file exceeds upload limit")

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	fileURL, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
	}

	return readLimited(resp.Body, b.maxBytes)
}

// readLimited читает не больше limit байт; limit <= 0 без ограничения.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, errTooLarge
	}
	return data, nil
}

func downloadErrorText(err error) string {
	if errors.Is(err, errTooLarge) {
		return msgTooLarge
	}
	return msgProcessingError
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) sendDocument(chatID int64, art *entity.Artifact) {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: art.Name, Bytes: art.Data})
	doc.Caption = "📄 Отчёт о доступности"
	if _, err := b.api.Send(doc); err != nil {
		b.logger.Error("send document", "chat_id", chatID, "error", err)
	}
}

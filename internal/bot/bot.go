// Package bot provides the Telegram bot initialization and handlers.
package bot

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/config"
	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/logger"
	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/session"
)

// Bot wraps the Telegram bot with application dependencies.
type Bot struct {
	bot        *bot.Bot
	cfg        *config.Config
	store      *session.Store
	httpClient *http.Client
}

// New creates a new Bot instance.
func New(cfg *config.Config, store *session.Store) (*Bot, error) {
	b := &Bot{
		cfg:   cfg,
		store: store,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	opts := []bot.Option{
		bot.WithMiddlewares(b.whitelistMiddleware),
		bot.WithDefaultHandler(b.defaultHandler),
	}

	telegramBot, err := bot.New(cfg.TelegramBotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b.bot = telegramBot
	b.registerHandlers()

	return b, nil
}

// Start begins polling for updates.
func (b *Bot) Start(ctx context.Context) {
	logger.Log.Info().Msg("Bot started polling")
	b.bot.Start(ctx)
}

// registerHandlers sets up command handlers.
func (b *Bot) registerHandlers() {
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, b.handleStart)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, b.handleHelp)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/settings", bot.MatchTypePrefix, b.handleSettings)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/name", bot.MatchTypePrefix, b.handleName)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/watermark", bot.MatchTypePrefix, b.handleWatermark)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/watermark_pos", bot.MatchTypePrefix, b.handleWatermarkPos)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/compress", bot.MatchTypePrefix, b.handleCompress)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/pagesize", bot.MatchTypePrefix, b.handlePageSize)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/preview", bot.MatchTypePrefix, b.handlePreview)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/delete_last", bot.MatchTypePrefix, b.handleDeleteLast)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/remove", bot.MatchTypePrefix, b.handleRemove)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/move", bot.MatchTypePrefix, b.handleMove)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/clear", bot.MatchTypePrefix, b.handleClear)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/makepdf", bot.MatchTypePrefix, b.handleMakePDF)
}

// whitelistMiddleware checks if the user is whitelisted before processing.
func (b *Bot) whitelistMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
		userID := extractUserID(update)
		if userID == 0 {
			return
		}

		username := extractUsername(update)
		logUserAction(userID, username, update)

		if !b.cfg.IsUserWhitelisted(userID) {
			logger.Log.Warn().
				Int64("user_id", userID).
				Str("username", username).
				Msg("Blocked non-whitelisted user")
			if update.Message != nil {
				_, _ = tgBot.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: update.Message.Chat.ID,
					Text:   "⛔ Sorry, you are not authorized to use this bot.",
				})
			}
			return
		}

		next(ctx, tgBot, update)
	}
}

// logUserAction logs the user's input/action.
func logUserAction(userID int64, username string, update *tgmodels.Update) {
	switch {
	case update.Message != nil:
		msg := update.Message
		event := logger.Log.Info().
			Int64("user_id", userID).
			Str("username", username).
			Int64("chat_id", msg.Chat.ID)

		if msg.Text != "" {
			event = event.Str("text", msg.Text)
		}
		if len(msg.Photo) > 0 {
			event = event.Str("type", "photo")
		}
		if msg.Document != nil {
			event = event.Str("type", "document").Str("filename", msg.Document.FileName)
		}

		event.Msg("User input")

	case update.EditedMessage != nil:
		logger.Log.Info().
			Int64("user_id", userID).
			Str("username", username).
			Str("text", update.EditedMessage.Text).
			Msg("Edited message")
	}
}

// extractUsername gets the username from the update.
func extractUsername(update *tgmodels.Update) string {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.Username
	}
	if update.EditedMessage != nil && update.EditedMessage.From != nil {
		return update.EditedMessage.From.Username
	}
	return ""
}

// extractUserID gets the user ID from various update types.
func extractUserID(update *tgmodels.Update) int64 {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.ID
	}
	if update.EditedMessage != nil && update.EditedMessage.From != nil {
		return update.EditedMessage.From.ID
	}
	return 0
}

// defaultHandler receives everything that is not a registered command.
// Photo messages feed the user's session; anything else gets a hint.
func (b *Bot) defaultHandler(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}

	if len(update.Message.Photo) > 0 {
		b.handlePhotoCore(ctx, tgBot, update)
		return
	}

	logger.Log.Debug().
		Int64("chat_id", update.Message.Chat.ID).
		Str("text", update.Message.Text).
		Msg("Default handler triggered")

	_, err := tgBot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      "I didn't understand that. Send me a photo to add it to your PDF, or use /help to see available commands.",
		ParseMode: tgmodels.ParseModeHTML,
	})
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to send default response")
	}
}

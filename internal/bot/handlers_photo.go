package bot

import (
	"context"
	"fmt"
	"time"

	tgmodels "github.com/go-telegram/bot/models"

	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/logger"
	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/session"
	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/telemetry"
)

// handlePhotoCore stores an incoming photo in the sender's session. Telegram
// delivers several renditions per photo; the largest one is last.
func (b *Bot) handlePhotoCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil || len(update.Message.Photo) == 0 {
		return
	}
	chatID := update.Message.Chat.ID
	userID := extractUserID(update)

	fileID := update.Message.Photo[len(update.Message.Photo)-1].FileID

	data, err := b.downloadFile(ctx, tg, fileID)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Int64("user_id", userID).
			Str("file_id", fileID).
			Msg("Failed to download photo")
		reply(ctx, tg, chatID, "❌ I couldn't download that photo. Please try sending it again.")
		return
	}

	s := b.store.GetOrCreate(userID)
	count, err := s.Append(session.Photo{
		FileID:  fileID,
		Data:    data,
		AddedAt: time.Now(),
	})
	if err != nil {
		reply(ctx, tg, chatID, errorText(err))
		return
	}

	telemetry.PhotosStored.Add(ctx, 1)
	logger.Log.Info().
		Int64("user_id", userID).
		Str("file_id", fileID).
		Int("count", count).
		Int("bytes", len(data)).
		Msg("Photo stored")

	reply(ctx, tg, chatID, fmt.Sprintf("📸 Photo saved! Total: %d. Run /makepdf when you are ready.", count))
}

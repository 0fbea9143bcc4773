package bot

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"

	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/logger"
	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/pdf"
	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/session"
	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/telemetry"
)

// handleMakePDF handles the /makepdf command.
func (b *Bot) handleMakePDF(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleMakePDFCore(ctx, tgBot, update)
}

// handleMakePDFCore is the testable implementation of handleMakePDF.
func (b *Bot) handleMakePDFCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}
	recordCommand(ctx, "makepdf")
	chatID := update.Message.Chat.ID
	userID := extractUserID(update)

	s := b.store.GetOrCreate(userID)
	photos := s.Snapshot()
	if len(photos) == 0 {
		reply(ctx, tg, chatID, errorText(session.ErrEmptyList))
		return
	}
	settings := s.Settings()

	reply(ctx, tg, chatID, fmt.Sprintf("⏳ Generating your PDF from %d photos…", len(photos)))

	assembleCtx := ctx
	if b.cfg != nil && b.cfg.PDFTimeout > 0 {
		var cancel context.CancelFunc
		assembleCtx, cancel = context.WithTimeout(ctx, b.cfg.PDFTimeout)
		defer cancel()
	}

	pages := make([][]byte, len(photos))
	for i, p := range photos {
		pages[i] = p.Data
	}

	start := time.Now()
	out, err := pdf.Assemble(assembleCtx, pages, settings)
	elapsed := time.Since(start)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Int64("user_id", userID).
			Int("photos", len(photos)).
			Msg("PDF assembly failed")
		reply(ctx, tg, chatID, errorText(err))
		return
	}

	telemetry.AssembleDuration.Record(ctx, elapsed.Seconds())
	telemetry.PhotosPerPDF.Record(ctx, int64(len(photos)))

	_, err = tg.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: chatID,
		Document: &tgmodels.InputFileUpload{
			Filename: settings.OutputFilename(),
			Data:     bytes.NewReader(out),
		},
		Caption: fmt.Sprintf("📄 %d pages, %s", len(photos), formatSize(len(out))),
	})
	if err != nil {
		logger.Log.Error().Err(err).Int64("user_id", userID).Msg("Failed to send PDF")
		reply(ctx, tg, chatID, "❌ The PDF was generated but I couldn't send it. Please try /makepdf again.")
		return
	}

	logger.Log.Info().
		Int64("user_id", userID).
		Int("photos", len(photos)).
		Int("bytes", len(out)).
		Dur("elapsed", elapsed).
		Msg("PDF sent")

	if b.cfg == nil || b.cfg.ClearAfterPDF {
		b.store.Clear(userID)
		reply(ctx, tg, chatID, "🧹 Photo list cleared. Send new photos to start the next document.")
	}
}

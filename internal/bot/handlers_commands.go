package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/logger"
	appmodels "github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/models"
	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/pdf"
	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/session"
	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/telemetry"
)

// recordCommand bumps the per-command counter.
func recordCommand(ctx context.Context, name string) {
	telemetry.CommandsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("command", name)))
}

// errorText maps known errors onto user-facing replies.
func errorText(err error) string {
	switch {
	case errors.Is(err, session.ErrEmptyList):
		return "📭 Your photo list is empty. Send me some photos first!"
	case errors.Is(err, session.ErrIndexOutOfRange):
		return "❌ That photo number does not exist. Use /preview to see the current list."
	case errors.Is(err, session.ErrTooManyPhotos):
		return "❌ Photo limit reached. Run /makepdf to generate the PDF, or /clear to start over."
	case errors.Is(err, appmodels.ErrInvalidName):
		return "❌ That filename cannot be used. Letters, digits, spaces, dashes and underscores only."
	case errors.Is(err, appmodels.ErrInvalidEnum):
		return "❌ Unrecognized value. Check /help for the accepted options."
	case errors.Is(err, appmodels.ErrOutOfRange):
		return fmt.Sprintf("❌ Quality must be between %d and %d.",
			appmodels.MinCompressionQuality, appmodels.MaxCompressionQuality)
	case errors.Is(err, pdf.ErrEmptyInput):
		return "📭 Your photo list is empty. Send me some photos first!"
	case errors.Is(err, pdf.ErrUnsupportedImage):
		return "❌ One of your photos is in a format I cannot read. Remove it with /remove and try again."
	default:
		return "❌ Something went wrong. Please try again."
	}
}

// reply sends a plain HTML-mode message and logs send failures.
func reply(ctx context.Context, tg TelegramAPI, chatID int64, text string) {
	_, err := tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: tgmodels.ParseModeHTML,
	})
	if err != nil {
		logger.Log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

// formatGreeting returns a greeting suffix with the user's name.
func formatGreeting(firstName string) string {
	if firstName == "" {
		return ""
	}
	return ", " + firstName
}

// formatSize renders a byte count for preview listings.
func formatSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}

// handleStart handles the /start command.
func (b *Bot) handleStart(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleStartCore(ctx, tgBot, update)
}

// handleStartCore is the testable implementation of handleStart.
func (b *Bot) handleStartCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}
	recordCommand(ctx, "start")

	firstName := ""
	if update.Message.From != nil {
		firstName = update.Message.From.FirstName
	}

	text := fmt.Sprintf(`👋 Welcome%s!

I turn your photos into a single PDF document.

<b>Quick Start:</b>
• Send me photos, one or several at a time
• Reorder or drop photos with /move, /remove, /delete_last
• Tweak the output with /name, /watermark, /compress, /pagesize
• When you are done, run /makepdf

Use /help to see all available commands.`,
		formatGreeting(firstName))

	logger.Log.Debug().Int64("chat_id", update.Message.Chat.ID).Msg("Sending /start response")
	reply(ctx, tg, update.Message.Chat.ID, text)
}

// handleHelp handles the /help command.
func (b *Bot) handleHelp(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleHelpCore(ctx, tgBot, update)
}

// handleHelpCore is the testable implementation of handleHelp.
func (b *Bot) handleHelpCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}
	recordCommand(ctx, "help")

	text := `📚 <b>Available Commands</b>

<b>Building the PDF:</b>
• Send photos to add them as pages
• <code>/makepdf</code> - Generate and send the PDF
• <code>/clear</code> - Remove all stored photos

<b>Editing the photo list:</b>
• <code>/preview</code> - Show the current pages in order
• <code>/move &lt;from&gt; &lt;to&gt;</code> - Move a photo to a new position
• <code>/remove &lt;n&gt;</code> - Remove the photo at position n
• <code>/delete_last</code> - Remove the most recent photo

<b>Output settings:</b>
• <code>/settings</code> - Show current settings
• <code>/name &lt;filename&gt;</code> - Set the PDF filename
• <code>/watermark &lt;text&gt;</code> - Set the watermark (no text clears it)
• <code>/watermark_pos &lt;br|tl|center&gt;</code> - Set the watermark position
• <code>/compress &lt;1-95&gt;</code> - Set the image quality
• <code>/pagesize &lt;A3|A4|A5|Letter|Legal|Tabloid&gt;</code> - Set the page size

<b>Other:</b>
• <code>/help</code> - Show this help message`

	logger.Log.Debug().Int64("chat_id", update.Message.Chat.ID).Msg("Sending /help response")
	reply(ctx, tg, update.Message.Chat.ID, text)
}

// handleSettings handles the /settings command.
func (b *Bot) handleSettings(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleSettingsCore(ctx, tgBot, update)
}

// handleSettingsCore is the testable implementation of handleSettings.
func (b *Bot) handleSettingsCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}
	recordCommand(ctx, "settings")

	s := b.store.GetOrCreate(extractUserID(update))
	settings := s.Settings()

	watermark := "(none)"
	if settings.WatermarkText != "" {
		watermark = settings.WatermarkText
	}

	var sb strings.Builder
	sb.WriteString("⚙️ <b>Current Settings</b>\n\n")
	sb.WriteString(fmt.Sprintf("• Filename: <code>%s</code>\n", settings.OutputFilename()))
	sb.WriteString(fmt.Sprintf("• Watermark: %s\n", watermark))
	sb.WriteString(fmt.Sprintf("• Watermark position: %s\n", settings.WatermarkPos))
	sb.WriteString(fmt.Sprintf("• Compression quality: %d\n", settings.CompressionQuality))
	sb.WriteString(fmt.Sprintf("• Page size: %s\n", settings.PageSize))
	sb.WriteString(fmt.Sprintf("• Photos stored: %d", s.Len()))

	reply(ctx, tg, update.Message.Chat.ID, sb.String())
}

// handleName handles the /name command.
func (b *Bot) handleName(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleNameCore(ctx, tgBot, update)
}

// handleNameCore is the testable implementation of handleName.
func (b *Bot) handleNameCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}
	recordCommand(ctx, "name")
	chatID := update.Message.Chat.ID

	args := extractCommandArgs(update.Message.Text, "/name")
	if args == "" {
		reply(ctx, tg, chatID, "Usage: <code>/name my document</code>")
		return
	}

	s := b.store.GetOrCreate(extractUserID(update))
	err := s.UpdateSettings(func(set *appmodels.Settings) error {
		return set.SetFilename(args)
	})
	if err != nil {
		reply(ctx, tg, chatID, errorText(err))
		return
	}

	settings := s.Settings()
	reply(ctx, tg, chatID, fmt.Sprintf("✅ The PDF will be named <code>%s</code>.", settings.OutputFilename()))
}

// handleWatermark handles the /watermark command.
func (b *Bot) handleWatermark(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleWatermarkCore(ctx, tgBot, update)
}

// handleWatermarkCore is the testable implementation of handleWatermark.
// /watermark_pos shares the prefix and registration order is not guaranteed,
// so those messages are forwarded to the position handler.
func (b *Bot) handleWatermarkCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}
	if strings.HasPrefix(update.Message.Text, "/watermark_pos") {
		b.handleWatermarkPosCore(ctx, tg, update)
		return
	}
	recordCommand(ctx, "watermark")
	chatID := update.Message.Chat.ID

	args := extractCommandArgs(update.Message.Text, "/watermark")
	s := b.store.GetOrCreate(extractUserID(update))

	_ = s.UpdateSettings(func(set *appmodels.Settings) error {
		set.SetWatermark(args)
		return nil
	})

	if args == "" {
		reply(ctx, tg, chatID, "🧹 Watermark cleared.")
		return
	}
	reply(ctx, tg, chatID, fmt.Sprintf("✅ Watermark set to <code>%s</code>. Position: %s (change with /watermark_pos).",
		args, s.Settings().WatermarkPos))
}

// handleWatermarkPos handles the /watermark_pos command.
func (b *Bot) handleWatermarkPos(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleWatermarkPosCore(ctx, tgBot, update)
}

// handleWatermarkPosCore is the testable implementation of handleWatermarkPos.
func (b *Bot) handleWatermarkPosCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}
	recordCommand(ctx, "watermark_pos")
	chatID := update.Message.Chat.ID

	args := extractCommandArgs(update.Message.Text, "/watermark_pos")
	if args == "" {
		reply(ctx, tg, chatID, "Usage: <code>/watermark_pos br</code> (bottom right), <code>tl</code> (top left) or <code>center</code>")
		return
	}

	s := b.store.GetOrCreate(extractUserID(update))
	err := s.UpdateSettings(func(set *appmodels.Settings) error {
		return set.SetWatermarkPosition(args)
	})
	if err != nil {
		reply(ctx, tg, chatID, errorText(err))
		return
	}

	reply(ctx, tg, chatID, fmt.Sprintf("✅ Watermark position set to %s.", s.Settings().WatermarkPos))
}

// handleCompress handles the /compress command.
func (b *Bot) handleCompress(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleCompressCore(ctx, tgBot, update)
}

// handleCompressCore is the testable implementation of handleCompress.
func (b *Bot) handleCompressCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}
	recordCommand(ctx, "compress")
	chatID := update.Message.Chat.ID

	quality, err := parseCompressArg(extractCommandArgs(update.Message.Text, "/compress"))
	if err != nil {
		reply(ctx, tg, chatID, fmt.Sprintf("Usage: <code>/compress 75</code> (between %d and %d, lower = smaller file)",
			appmodels.MinCompressionQuality, appmodels.MaxCompressionQuality))
		return
	}

	s := b.store.GetOrCreate(extractUserID(update))
	err = s.UpdateSettings(func(set *appmodels.Settings) error {
		return set.SetCompression(quality)
	})
	if err != nil {
		reply(ctx, tg, chatID, errorText(err))
		return
	}

	reply(ctx, tg, chatID, fmt.Sprintf("✅ Compression quality set to %d.", quality))
}

// handlePageSize handles the /pagesize command.
func (b *Bot) handlePageSize(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handlePageSizeCore(ctx, tgBot, update)
}

// handlePageSizeCore is the testable implementation of handlePageSize.
func (b *Bot) handlePageSizeCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}
	recordCommand(ctx, "pagesize")
	chatID := update.Message.Chat.ID

	args := extractCommandArgs(update.Message.Text, "/pagesize")
	if args == "" {
		reply(ctx, tg, chatID, "Usage: <code>/pagesize A4</code> (A3, A4, A5, Letter, Legal or Tabloid)")
		return
	}

	s := b.store.GetOrCreate(extractUserID(update))
	err := s.UpdateSettings(func(set *appmodels.Settings) error {
		return set.SetPageSize(args)
	})
	if err != nil {
		reply(ctx, tg, chatID, errorText(err))
		return
	}

	size := s.Settings().PageSize
	w, h := pdf.Dimensions(size)
	reply(ctx, tg, chatID, fmt.Sprintf("✅ Page size set to %s (%.0f x %.0f pt).", size, w, h))
}

// handlePreview handles the /preview command.
func (b *Bot) handlePreview(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handlePreviewCore(ctx, tgBot, update)
}

// handlePreviewCore is the testable implementation of handlePreview.
func (b *Bot) handlePreviewCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}
	recordCommand(ctx, "preview")
	chatID := update.Message.Chat.ID

	entries := b.store.GetOrCreate(extractUserID(update)).Preview()
	if len(entries) == 0 {
		reply(ctx, tg, chatID, errorText(session.ErrEmptyList))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🖼 <b>Current pages</b> (%d)\n\n", len(entries)))
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%d. <code>%s</code> (%s)\n", e.Index, e.FileID, formatSize(e.Size)))
	}
	sb.WriteString("\nReorder with /move, drop with /remove, then run /makepdf.")

	reply(ctx, tg, chatID, sb.String())
}

// handleDeleteLast handles the /delete_last command.
func (b *Bot) handleDeleteLast(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleDeleteLastCore(ctx, tgBot, update)
}

// handleDeleteLastCore is the testable implementation of handleDeleteLast.
func (b *Bot) handleDeleteLastCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}
	recordCommand(ctx, "delete_last")
	chatID := update.Message.Chat.ID

	s := b.store.GetOrCreate(extractUserID(update))
	if err := s.RemoveLast(); err != nil {
		reply(ctx, tg, chatID, errorText(err))
		return
	}

	reply(ctx, tg, chatID, fmt.Sprintf("🗑 Removed the last photo. %d left.", s.Len()))
}

// handleRemove handles the /remove command.
func (b *Bot) handleRemove(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleRemoveCore(ctx, tgBot, update)
}

// handleRemoveCore is the testable implementation of handleRemove.
func (b *Bot) handleRemoveCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}
	recordCommand(ctx, "remove")
	chatID := update.Message.Chat.ID

	index, err := parseIndexArg(extractCommandArgs(update.Message.Text, "/remove"))
	if err != nil {
		reply(ctx, tg, chatID, "Usage: <code>/remove 2</code> (see positions with /preview)")
		return
	}

	s := b.store.GetOrCreate(extractUserID(update))
	if err := s.RemoveAt(index); err != nil {
		reply(ctx, tg, chatID, errorText(err))
		return
	}

	reply(ctx, tg, chatID, fmt.Sprintf("🗑 Removed photo %d. %d left.", index, s.Len()))
}

// handleMove handles the /move command.
func (b *Bot) handleMove(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleMoveCore(ctx, tgBot, update)
}

// handleMoveCore is the testable implementation of handleMove.
func (b *Bot) handleMoveCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}
	recordCommand(ctx, "move")
	chatID := update.Message.Chat.ID

	args, err := parseMoveArgs(extractCommandArgs(update.Message.Text, "/move"))
	if err != nil {
		reply(ctx, tg, chatID, "Usage: <code>/move 1 3</code> (moves photo 1 to position 3)")
		return
	}

	s := b.store.GetOrCreate(extractUserID(update))
	if err := s.Move(args.From, args.To); err != nil {
		reply(ctx, tg, chatID, errorText(err))
		return
	}

	reply(ctx, tg, chatID, fmt.Sprintf("✅ Moved photo %d to position %d. Check /preview.", args.From, args.To))
}

// handleClear handles the /clear command.
func (b *Bot) handleClear(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleClearCore(ctx, tgBot, update)
}

// handleClearCore is the testable implementation of handleClear.
func (b *Bot) handleClearCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}
	recordCommand(ctx, "clear")
	chatID := update.Message.Chat.ID

	userID := extractUserID(update)
	count := b.store.GetOrCreate(userID).Len()
	b.store.Clear(userID)

	reply(ctx, tg, chatID, fmt.Sprintf("🧹 Cleared %d photos. Your settings are unchanged.", count))
}

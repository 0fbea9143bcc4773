package mocks

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/require"
)

func TestMockBotSendMessage(t *testing.T) {
	t.Parallel()

	m := NewMockBot()

	msg, err := m.SendMessage(context.Background(), &bot.SendMessageParams{
		ChatID:    int64(42),
		Text:      "hello",
		ParseMode: models.ParseModeHTML,
	})
	require.NoError(t, err)
	require.Equal(t, 1000, msg.ID)
	require.Equal(t, int64(42), msg.Chat.ID)

	require.Equal(t, 1, m.SentMessageCount())
	last := m.LastSentMessage()
	require.NotNil(t, last)
	require.Equal(t, "hello", last.Text)
	require.Equal(t, models.ParseModeHTML, last.ParseMode)
}

func TestMockBotSendMessageError(t *testing.T) {
	t.Parallel()

	m := NewMockBot()
	m.SendMessageError = errors.New("network down")

	msg, err := m.SendMessage(context.Background(), &bot.SendMessageParams{ChatID: int64(1), Text: "x"})
	require.Error(t, err)
	require.Nil(t, msg)
	require.Equal(t, 0, m.SentMessageCount())
}

func TestMockBotSendDocument(t *testing.T) {
	t.Parallel()

	m := NewMockBot()

	payload := []byte("%PDF-1.4 fake")
	msg, err := m.SendDocument(context.Background(), &bot.SendDocumentParams{
		ChatID: int64(42),
		Document: &models.InputFileUpload{
			Filename: "output.pdf",
			Data:     bytes.NewReader(payload),
		},
		Caption: "done",
	})
	require.NoError(t, err)
	require.Equal(t, "output.pdf", msg.Document.FileName)

	require.Equal(t, 1, m.SentDocumentCount())
	doc := m.LastSentDocument()
	require.NotNil(t, doc)
	require.Equal(t, "output.pdf", doc.Filename)
	require.Equal(t, "done", doc.Caption)
	require.Equal(t, payload, doc.Data)
}

func TestMockBotSendDocumentError(t *testing.T) {
	t.Parallel()

	m := NewMockBot()
	m.SendDocumentError = errors.New("boom")

	_, err := m.SendDocument(context.Background(), &bot.SendDocumentParams{ChatID: int64(1)})
	require.Error(t, err)
	require.Equal(t, 0, m.SentDocumentCount())
}

func TestMockBotGetFile(t *testing.T) {
	t.Parallel()

	t.Run("default echoes file ID", func(t *testing.T) {
		t.Parallel()
		m := NewMockBot()

		f, err := m.GetFile(context.Background(), &bot.GetFileParams{FileID: "abc"})
		require.NoError(t, err)
		require.Equal(t, "abc", f.FileID)
		require.NotEmpty(t, f.FilePath)
	})

	t.Run("configured file", func(t *testing.T) {
		t.Parallel()
		m := NewMockBot()
		m.FileToReturn = &models.File{FileID: "xyz", FilePath: "photos/custom.jpg"}

		f, err := m.GetFile(context.Background(), &bot.GetFileParams{FileID: "abc"})
		require.NoError(t, err)
		require.Equal(t, "xyz", f.FileID)
	})

	t.Run("error injection", func(t *testing.T) {
		t.Parallel()
		m := NewMockBot()
		m.GetFileError = errors.New("no such file")

		_, err := m.GetFile(context.Background(), &bot.GetFileParams{FileID: "abc"})
		require.Error(t, err)
	})
}

func TestMockBotFileDownloadLink(t *testing.T) {
	t.Parallel()

	m := NewMockBot()
	require.Contains(t, m.FileDownloadLink(&models.File{}), "api.telegram.org")

	m.FileDownloadLinkToReturn = "http://localhost:1234/file"
	require.Equal(t, "http://localhost:1234/file", m.FileDownloadLink(&models.File{}))
}

func TestMockBotReset(t *testing.T) {
	t.Parallel()

	m := NewMockBot()
	m.SendMessageError = errors.New("x")
	m.GetFileError = errors.New("y")
	_, _ = m.SendDocument(context.Background(), &bot.SendDocumentParams{ChatID: int64(1)})

	m.Reset()
	require.NoError(t, m.SendMessageError)
	require.NoError(t, m.GetFileError)
	require.Equal(t, 0, m.SentMessageCount())
	require.Equal(t, 0, m.SentDocumentCount())
	require.Nil(t, m.LastSentMessage())
	require.Nil(t, m.LastSentDocument())
}

func TestChatIDToInt64(t *testing.T) {
	t.Parallel()

	require.Equal(t, int64(5), chatIDToInt64(int64(5)))
	require.Equal(t, int64(5), chatIDToInt64(int(5)))
	require.Equal(t, int64(0), chatIDToInt64("channel"))
}

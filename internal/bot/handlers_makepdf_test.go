package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/bot/mocks"
	appmodels "github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/models"
)

func TestHandleMakePDFCore(t *testing.T) {
	t.Parallel()

	t.Run("sends PDF with one page per photo", func(t *testing.T) {
		t.Parallel()
		b := newTestBot(t)
		m := mocks.NewMockBot()
		seedPhotos(t, b, testUserID, 3)

		b.handleMakePDFCore(context.Background(), m, mocks.CommandUpdate(testChatID, testUserID, "/makepdf"))

		require.Equal(t, 1, m.SentDocumentCount())
		doc := m.LastSentDocument()
		require.Equal(t, "output.pdf", doc.Filename)
		require.Contains(t, doc.Caption, "3 pages")
		require.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF-")))
		require.Contains(t, string(doc.Data), "/Count 3")
	})

	t.Run("uses configured filename", func(t *testing.T) {
		t.Parallel()
		b := newTestBot(t)
		m := mocks.NewMockBot()
		seedPhotos(t, b, testUserID, 1)
		require.NoError(t, b.store.GetOrCreate(testUserID).UpdateSettings(func(set *appmodels.Settings) error {
			return set.SetFilename("holiday")
		}))

		b.handleMakePDFCore(context.Background(), m, mocks.CommandUpdate(testChatID, testUserID, "/makepdf"))

		require.Equal(t, "holiday.pdf", m.LastSentDocument().Filename)
	})

	t.Run("empty list replies without document", func(t *testing.T) {
		t.Parallel()
		b := newTestBot(t)
		m := mocks.NewMockBot()

		b.handleMakePDFCore(context.Background(), m, mocks.CommandUpdate(testChatID, testUserID, "/makepdf"))

		require.Equal(t, 0, m.SentDocumentCount())
		require.Contains(t, m.LastSentMessage().Text, "empty")
	})

	t.Run("clears list after sending by default", func(t *testing.T) {
		t.Parallel()
		b := newTestBot(t)
		m := mocks.NewMockBot()
		seedPhotos(t, b, testUserID, 2)

		b.handleMakePDFCore(context.Background(), m, mocks.CommandUpdate(testChatID, testUserID, "/makepdf"))

		require.Equal(t, 0, b.store.GetOrCreate(testUserID).Len())
		require.Contains(t, m.LastSentMessage().Text, "cleared")
	})

	t.Run("keeps list when auto-clear disabled", func(t *testing.T) {
		t.Parallel()
		b := newTestBot(t)
		b.cfg.ClearAfterPDF = false
		m := mocks.NewMockBot()
		seedPhotos(t, b, testUserID, 2)

		b.handleMakePDFCore(context.Background(), m, mocks.CommandUpdate(testChatID, testUserID, "/makepdf"))

		require.Equal(t, 1, m.SentDocumentCount())
		require.Equal(t, 2, b.store.GetOrCreate(testUserID).Len())
	})

	t.Run("send failure keeps photos", func(t *testing.T) {
		t.Parallel()
		b := newTestBot(t)
		m := mocks.NewMockBot()
		m.SendDocumentError = errors.New("telegram down")
		seedPhotos(t, b, testUserID, 2)

		b.handleMakePDFCore(context.Background(), m, mocks.CommandUpdate(testChatID, testUserID, "/makepdf"))

		require.Contains(t, m.LastSentMessage().Text, "couldn't send")
		require.Equal(t, 2, b.store.GetOrCreate(testUserID).Len())
	})

	t.Run("canceled context reports failure", func(t *testing.T) {
		t.Parallel()
		b := newTestBot(t)
		m := mocks.NewMockBot()
		seedPhotos(t, b, testUserID, 1)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		b.handleMakePDFCore(ctx, m, mocks.CommandUpdate(testChatID, testUserID, "/makepdf"))

		require.Equal(t, 0, m.SentDocumentCount())
	})
}

func TestMoveThenMakePDFScenario(t *testing.T) {
	t.Parallel()

	b := newTestBot(t)
	m := mocks.NewMockBot()
	seedPhotos(t, b, testUserID, 3)

	b.handleMoveCore(context.Background(), m, mocks.CommandUpdate(testChatID, testUserID, "/move 1 3"))

	entries := b.store.GetOrCreate(testUserID).Preview()
	order := make([]string, len(entries))
	for i, e := range entries {
		order[i] = e.FileID
	}
	require.Equal(t, []string{"p2", "p3", "p1"}, order)

	b.handleMakePDFCore(context.Background(), m, mocks.CommandUpdate(testChatID, testUserID, "/makepdf"))

	doc := m.LastSentDocument()
	require.NotNil(t, doc)
	require.Contains(t, string(doc.Data), "/Count 3")
}

func TestWatermarkSettingsFlowIntoPDF(t *testing.T) {
	t.Parallel()

	b := newTestBot(t)
	m := mocks.NewMockBot()
	seedPhotos(t, b, testUserID, 1)

	b.handleWatermarkCore(context.Background(), m, mocks.CommandUpdate(testChatID, testUserID, "/watermark DRAFT"))
	b.handleWatermarkPosCore(context.Background(), m, mocks.CommandUpdate(testChatID, testUserID, "/watermark_pos center"))
	b.handleMakePDFCore(context.Background(), m, mocks.CommandUpdate(testChatID, testUserID, "/makepdf"))

	doc := m.LastSentDocument()
	require.NotNil(t, doc)
	require.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF-")))
}

func TestMakePDFPerUserIsolation(t *testing.T) {
	t.Parallel()

	b := newTestBot(t)
	m := mocks.NewMockBot()
	seedPhotos(t, b, 1, 2)
	seedPhotos(t, b, 2, 1)

	b.handleMakePDFCore(context.Background(), m, mocks.CommandUpdate(10, 1, "/makepdf"))
	require.Contains(t, m.LastSentDocument().Caption, fmt.Sprintf("%d pages", 2))

	b.handleMakePDFCore(context.Background(), m, mocks.CommandUpdate(20, 2, "/makepdf"))
	require.Contains(t, m.LastSentDocument().Caption, fmt.Sprintf("%d pages", 1))
}

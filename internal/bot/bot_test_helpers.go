package bot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/config"
	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/session"
)

// newTestBot creates a Bot wired to an in-memory store, without a Telegram
// connection. Handlers are exercised through their Core variants with MockBot.
func newTestBot(t *testing.T) *Bot {
	t.Helper()

	return &Bot{
		cfg: &config.Config{
			TelegramBotToken: "test-token",
			MaxPhotos:        10,
			ClearAfterPDF:    true,
			PDFTimeout:       30 * time.Second,
		},
		store: session.NewStore(10),
	}
}

// jpegBytes returns a small solid-color JPEG for photo payloads.
func jpegBytes(t *testing.T, c color.RGBA) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 24, 24))
	for y := 0; y < 24; y++ {
		for x := 0; x < 24; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

// seedPhotos appends n photos directly to the user's session, bypassing the
// download path. File IDs are p1..pn.
func seedPhotos(t *testing.T, b *Bot, userID int64, n int) {
	t.Helper()

	colors := []color.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
		{R: 255, G: 255, A: 255},
	}

	s := b.store.GetOrCreate(userID)
	for i := 0; i < n; i++ {
		_, err := s.Append(session.Photo{
			FileID: fmt.Sprintf("p%d", i+1),
			Data:   jpegBytes(t, colors[i%len(colors)]),
		})
		require.NoError(t, err)
	}
}

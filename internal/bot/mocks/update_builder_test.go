package mocks

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpdateBuilder_WithMessage(t *testing.T) {
	t.Parallel()

	update := NewUpdateBuilder().
		WithMessage(100, 200, "/start").
		Build()

	require.NotNil(t, update.Message)
	require.Equal(t, int64(100), update.Message.Chat.ID)
	require.Equal(t, int64(200), update.Message.From.ID)
	require.Equal(t, "/start", update.Message.Text)
	require.Equal(t, "private", string(update.Message.Chat.Type))
}

func TestUpdateBuilder_WithFrom(t *testing.T) {
	t.Parallel()

	update := NewUpdateBuilder().
		WithMessage(100, 200, "hi").
		WithFrom(300, "alice", "Alice", "Smith").
		Build()

	require.Equal(t, int64(300), update.Message.From.ID)
	require.Equal(t, "alice", update.Message.From.Username)
	require.Equal(t, "Alice", update.Message.From.FirstName)
}

func TestUpdateBuilder_WithPhoto(t *testing.T) {
	t.Parallel()

	update := NewUpdateBuilder().
		WithMessage(100, 200, "").
		WithPhoto("photo-1").
		Build()

	require.Len(t, update.Message.Photo, 2)
	// Telegram orders renditions smallest first.
	largest := update.Message.Photo[len(update.Message.Photo)-1]
	require.Equal(t, "photo-1", largest.FileID)
	require.Greater(t, largest.Width, update.Message.Photo[0].Width)
}

func TestUpdateBuilder_WithPhotoCreatesMessage(t *testing.T) {
	t.Parallel()

	update := NewUpdateBuilder().WithPhoto("p").Build()
	require.NotNil(t, update.Message)
	require.Len(t, update.Message.Photo, 2)
}

func TestUpdateBuilder_WithEditedMessage(t *testing.T) {
	t.Parallel()

	update := NewUpdateBuilder().
		WithEditedMessage(100, 200, "edited").
		Build()

	require.Nil(t, update.Message)
	require.NotNil(t, update.EditedMessage)
	require.Equal(t, "edited", update.EditedMessage.Text)
}

func TestConvenienceConstructors(t *testing.T) {
	t.Parallel()

	t.Run("MessageUpdate", func(t *testing.T) {
		t.Parallel()
		u := MessageUpdate(1, 2, "hello")
		require.Equal(t, "hello", u.Message.Text)
	})

	t.Run("CommandUpdate", func(t *testing.T) {
		t.Parallel()
		u := CommandUpdate(1, 2, "/preview")
		require.Equal(t, "/preview", u.Message.Text)
	})

	t.Run("PhotoUpdate", func(t *testing.T) {
		t.Parallel()
		u := PhotoUpdate(1, 2, "file-9")
		require.Empty(t, u.Message.Text)
		require.Equal(t, "file-9", u.Message.Photo[len(u.Message.Photo)-1].FileID)
	})
}

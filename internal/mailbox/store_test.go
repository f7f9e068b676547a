package mailbox

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndReadEmail(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "emails"))
	require.NoError(t, store.Reset())

	email := &Email{
		Subject: "Order for chairs",
		From:    "buyer@adatum.example",
		Date:    "Mon, 12 Jan 2026 10:15:00 +0200",
		Content: "We would like 3 pieces of 1900-S.",
	}
	attachments := map[string][]byte{
		"chair.jpg": []byte("jpegdata"),
		"order.pdf": []byte("pdfdata"),
	}

	folder, err := store.SaveEmail(email, attachments)
	require.NoError(t, err)
	assert.DirExists(t, folder)

	loaded, err := ReadEmail(folder)
	require.NoError(t, err)
	assert.Equal(t, "Order for chairs", loaded.Subject)
	assert.Equal(t, "We would like 3 pieces of 1900-S.", loaded.Content)
	require.Len(t, loaded.Attachments, 2)
	// Sorted by filename
	assert.Equal(t, "chair.jpg", filepath.Base(loaded.Attachments[0]))
	assert.Equal(t, "order.pdf", filepath.Base(loaded.Attachments[1]))

	data, err := os.ReadFile(loaded.Attachments[0])
	require.NoError(t, err)
	assert.Equal(t, []byte("jpegdata"), data)

	paths, err := AttachmentPaths(folder)
	require.NoError(t, err)
	assert.Equal(t, loaded.Attachments, paths)
}

func TestSaveEmailSameTimestamp(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "emails"))
	store.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }

	first, err := store.SaveEmail(&Email{Subject: "first"}, nil)
	require.NoError(t, err)
	second, err := store.SaveEmail(&Email{Subject: "second"}, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	loaded, err := ReadEmail(first)
	require.NoError(t, err)
	assert.Equal(t, "first", loaded.Subject)

	loaded, err = ReadEmail(second)
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.Subject)
}

func TestResetClearsFolders(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "emails"))
	require.NoError(t, store.Reset())

	_, err := store.SaveEmail(&Email{Subject: "a"}, nil)
	require.NoError(t, err)

	folders, err := store.Folders()
	require.NoError(t, err)
	require.Len(t, folders, 1)

	require.NoError(t, store.Reset())
	folders, err = store.Folders()
	require.NoError(t, err)
	assert.Empty(t, folders)
}

func TestFoldersMissingDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "does-not-exist"))
	folders, err := store.Folders()
	require.NoError(t, err)
	assert.Empty(t, folders)
}

func TestOrderRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "emails"))
	require.NoError(t, store.Reset())
	folder, err := store.SaveEmail(&Email{Subject: "order"}, nil)
	require.NoError(t, err)

	assert.False(t, HasOrder(folder))

	type payload struct {
		Customer string `json:"customer"`
	}
	require.NoError(t, SaveOrder(folder, &payload{Customer: "Adatum Corporation"}))
	assert.True(t, HasOrder(folder))

	var got payload
	require.NoError(t, ReadOrder(folder, &got))
	assert.Equal(t, "Adatum Corporation", got.Customer)

	require.NoError(t, SaveReceipt(folder, map[string]any{"order_number": "SO-1001"}))
	assert.FileExists(t, filepath.Join(folder, "bc_response.json"))
}

func TestReadOrderMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "emails"))
	require.NoError(t, store.Reset())
	folder, err := store.SaveEmail(&Email{}, nil)
	require.NoError(t, err)

	var out map[string]any
	err = ReadOrder(folder, &out)
	assert.True(t, os.IsNotExist(err))
}

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePictureName(t *testing.T) {
	tests := []struct {
		name     string
		stem     string
		wantNum  string
		wantDesc string
		wantOK   bool
	}{
		{
			name:     "parenthesized description",
			stem:     "1996-S (ATLANTA-kovalevy, perus)",
			wantNum:  "1996-S",
			wantDesc: "ATLANTA-kovalevy, perus",
			wantOK:   true,
		},
		{
			name:     "missing closing parenthesis",
			stem:     "1929-W (Jabra speaker - sensitive microphone",
			wantNum:  "1929-W",
			wantDesc: "Jabra speaker - sensitive microphone",
			wantOK:   true,
		},
		{
			name:     "bare number and description",
			stem:     "1928-S AMSTERDAM-lamppu",
			wantNum:  "1928-S",
			wantDesc: "AMSTERDAM-lamppu",
			wantOK:   true,
		},
		{
			name:     "number only",
			stem:     "1953-W",
			wantNum:  "1953-W",
			wantDesc: "1953-W",
			wantOK:   true,
		},
		{
			name:   "empty stem",
			stem:   "   ",
			wantOK: false,
		},
		{
			name:   "parenthesis first",
			stem:   "(no item number)",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			num, desc, ok := parsePictureName(tt.stem)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantNum, num)
				assert.Equal(t, tt.wantDesc, desc)
			}
		})
	}
}

func TestScanPictures(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"1996-S (ATLANTA-kovalevy, perus).png",
		"1929-W (Jabra speaker - sensitive microphone.jpg",
		"1900-S PARIS-vierastuoli.JPEG",
		"notes.txt",
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("img"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0755))

	pictures, err := ScanPictures(dir)
	require.NoError(t, err)
	require.Len(t, pictures, 3)

	byNumber := map[string]Picture{}
	for _, p := range pictures {
		byNumber[p.ItemNumber] = p
	}

	atlanta := byNumber["1996-S"]
	assert.Equal(t, "ATLANTA-kovalevy, perus", atlanta.Description)
	assert.Equal(t, "png", atlanta.Ext)
	assert.Equal(t, filepath.Join(dir, files[0]), atlanta.Path)

	jabra := byNumber["1929-W"]
	assert.Equal(t, "Jabra speaker - sensitive microphone", jabra.Description)
	assert.Equal(t, "jpg", jabra.Ext)

	paris := byNumber["1900-S"]
	assert.Equal(t, "jpeg", paris.Ext)
}

func TestScanPicturesMissingDir(t *testing.T) {
	pictures, err := ScanPictures(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, pictures)
}

package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Picture is a product catalog image whose filename carries the item number
// and description, e.g. "1996-S (ATLANTA-kovalevy, perus).png".
type Picture struct {
	Path        string
	ItemNumber  string
	Description string
	// Ext is the image extension without the leading dot, used as the MIME
	// subtype when the image is embedded as a data URL.
	Ext string
}

// ScanPictures reads a catalog directory and parses item metadata out of the
// picture filenames. Non-image files and names that yield no item number are
// skipped. A missing directory yields an empty catalog, not an error.
func ScanPictures(dir string) ([]Picture, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog dir %s: %w", dir, err)
	}

	var pictures []Picture
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
			continue
		}

		number, description, ok := parsePictureName(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		if !ok {
			continue
		}

		pictures = append(pictures, Picture{
			Path:        filepath.Join(dir, e.Name()),
			ItemNumber:  number,
			Description: description,
			Ext:         ext[1:],
		})
	}

	return pictures, nil
}

// parsePictureName extracts the item number and description from a picture
// file stem. Supported shapes:
//
//	"1996-S (ATLANTA-kovalevy, perus)"  -> number + parenthesized description
//	"1929-W (Jabra speaker - sensitive" -> missing closing parenthesis
//	"1928-S AMSTERDAM-lamppu"           -> bare number + description
//	"1953-W"                            -> number only, description = number
func parsePictureName(stem string) (number, description string, ok bool) {
	stem = strings.TrimSpace(stem)
	if stem == "" {
		return "", "", false
	}

	open := strings.Index(stem, "(")
	switch {
	case open >= 0 && strings.Contains(stem[open:], ")"):
		number = strings.TrimSpace(strings.Fields(stem)[0])
		close := strings.Index(stem, ")")
		description = stem[open+1 : close]
	case open >= 0:
		number = strings.TrimSpace(strings.Fields(stem)[0])
		description = stem[open+1:]
	default:
		parts := strings.SplitN(stem, " ", 2)
		number = parts[0]
		if len(parts) > 1 {
			description = parts[1]
		} else {
			description = number
		}
	}

	if number == "" || strings.HasPrefix(number, "(") {
		return "", "", false
	}
	return number, strings.TrimSpace(description), true
}

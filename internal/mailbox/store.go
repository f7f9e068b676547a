package mailbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	contentFile  = "content.json"
	orderFile    = "identified_order.json"
	receiptFile  = "bc_response.json"
	attachSubdir = "attachments"
)

// Email is the persisted form of a fetched message.
type Email struct {
	Subject     string   `json:"subject"`
	From        string   `json:"from"`
	Date        string   `json:"date"`
	Content     string   `json:"content"`
	Attachments []string `json:"attachments"`
}

// Store persists fetched emails on disk, one folder per message. Each folder
// holds content.json, an attachments/ subdirectory, and later the
// identified_order.json and bc_response.json produced by the pipeline.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// the first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Dir returns the root directory of the store.
func (s *Store) Dir() string {
	return s.dir
}

// Reset removes all previously stored emails so a fetch run starts clean.
func (s *Store) Reset() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("failed to reset mailbox dir %s: %w", s.dir, err)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create mailbox dir %s: %w", s.dir, err)
	}
	return nil
}

// SaveEmail persists an email and its attachments into a new folder and
// returns the folder path. Attachment filenames are expected to be sanitized
// by the caller; the stored Email records the final on-disk paths.
func (s *Store) SaveEmail(email *Email, attachments map[string][]byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create mailbox dir %s: %w", s.dir, err)
	}

	folder, err := s.createFolder()
	if err != nil {
		return "", err
	}
	attachDir := filepath.Join(folder, attachSubdir)
	if err := os.MkdirAll(attachDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create email folder: %w", err)
	}

	email.Attachments = email.Attachments[:0]
	names := make([]string, 0, len(attachments))
	for name := range attachments {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		path := filepath.Join(attachDir, name)
		if err := os.WriteFile(path, attachments[name], 0644); err != nil {
			return "", fmt.Errorf("failed to write attachment %s: %w", name, err)
		}
		email.Attachments = append(email.Attachments, path)
	}

	if err := writeJSON(filepath.Join(folder, contentFile), email); err != nil {
		return "", err
	}

	return folder, nil
}

// createFolder makes a new timestamped email folder. Two emails saved within
// the same microsecond would collide on the timestamp alone, so the name gets
// a numeric suffix until os.Mkdir succeeds.
func (s *Store) createFolder() (string, error) {
	base := filepath.Join(s.dir, fmt.Sprintf("email_%s", s.now().Format("20060102_150405.000000")))
	folder := base
	for i := 1; ; i++ {
		err := os.Mkdir(folder, 0755)
		if err == nil {
			return folder, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("failed to create email folder: %w", err)
		}
		folder = fmt.Sprintf("%s_%d", base, i)
	}
}

// ReadEmail loads the persisted email from a folder.
func ReadEmail(folder string) (*Email, error) {
	var email Email
	if err := readJSON(filepath.Join(folder, contentFile), &email); err != nil {
		return nil, err
	}
	return &email, nil
}

// AttachmentPaths lists the files stored under a folder's attachments
// directory. A missing directory yields an empty slice.
func AttachmentPaths(folder string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(folder, attachSubdir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read attachments dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(folder, attachSubdir, e.Name()))
	}
	return paths, nil
}

// Folders lists the email folders in the store, sorted by name. Timestamped
// folder names make this chronological.
func (s *Store) Folders() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read mailbox dir %s: %w", s.dir, err)
	}

	var folders []string
	for _, e := range entries {
		if e.IsDir() {
			folders = append(folders, filepath.Join(s.dir, e.Name()))
		}
	}
	sort.Strings(folders)
	return folders, nil
}

// SaveOrder writes the identified order JSON next to the email it came from.
func SaveOrder(folder string, order any) error {
	return writeJSON(filepath.Join(folder, orderFile), order)
}

// ReadOrder loads the identified order from a folder into out. Returns
// os.ErrNotExist when no order has been identified for the folder.
func ReadOrder(folder string, out any) error {
	return readJSON(filepath.Join(folder, orderFile), out)
}

// HasOrder reports whether an identified order exists in the folder.
func HasOrder(folder string) bool {
	_, err := os.Stat(filepath.Join(folder, orderFile))
	return err == nil
}

// OrderPath returns the path of the identified order file for a folder.
func OrderPath(folder string) string {
	return filepath.Join(folder, orderFile)
}

// SaveReceipt writes the Business Central posting result next to the order.
func SaveReceipt(folder string, receipt any) error {
	return writeJSON(filepath.Join(folder, receiptFile), receipt)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

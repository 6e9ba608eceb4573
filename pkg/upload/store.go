package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxResumeSize is the hard cap on uploaded resume files.
const MaxResumeSize = 5 * 1024 * 1024 // 5 MiB

// ErrFileType and ErrFileSize are returned by Save for rejected uploads.
// Callers translate them into user-facing validation messages.
var (
	ErrFileType = errors.New("invalid file type")
	ErrFileSize = errors.New("file too large")
)

// Extension is derived from the validated MIME type, never from the
// client-supplied filename.
var allowedMimeTypes = map[string]string{
	"application/pdf":    "pdf",
	"application/msword": "doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
	"text/plain": "txt",
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// Store persists resume files under a fixed uploads root.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the uploads directory.
func (s *Store) Root() string {
	return s.root
}

// Validate checks the declared MIME type against the whitelist and the
// declared size against the cap, without touching the filesystem.
func (s *Store) Validate(declaredMime string, declaredSize int64) error {
	if _, ok := allowedMimeTypes[normalizeMime(declaredMime)]; !ok {
		return ErrFileType
	}
	if declaredSize > MaxResumeSize {
		return ErrFileSize
	}
	return nil
}

// Save validates the declared MIME type and size, then writes the file
// under a unique stored name: {safeBase}_{unixTimestamp}_{uniqueToken}.{ext}.
// The stored name is returned on success.
func (s *Store) Save(r io.Reader, declaredMime string, declaredSize int64, originalName string) (string, error) {
	if err := s.Validate(declaredMime, declaredSize); err != nil {
		return "", err
	}
	ext := allowedMimeTypes[normalizeMime(declaredMime)]

	storedName := fmt.Sprintf("%s_%d_%s.%s",
		safeBaseName(originalName),
		time.Now().Unix(),
		uuid.NewString(),
		ext,
	)

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(s.root, storedName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// Size is re-enforced while copying in case the declared size lied.
	if _, err := io.Copy(dst, io.LimitReader(r, MaxResumeSize+1)); err != nil {
		_ = os.Remove(filepath.Join(s.root, storedName))
		return "", err
	}
	if info, err := dst.Stat(); err == nil && info.Size() > MaxResumeSize {
		_ = os.Remove(filepath.Join(s.root, storedName))
		return "", ErrFileSize
	}

	return storedName, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *Store) Remove(storedName string) error {
	if storedName == "" {
		return nil
	}
	// Base strips any path components a corrupted record could carry.
	path := filepath.Join(s.root, filepath.Base(storedName))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RemoveAll deletes a batch of stored files, ignoring missing ones.
func (s *Store) RemoveAll(storedNames []string) {
	for _, name := range storedNames {
		_ = s.Remove(name)
	}
}

// normalizeMime strips parameters, e.g. "text/plain; charset=utf-8".
func normalizeMime(mime string) string {
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	return strings.TrimSpace(strings.ToLower(mime))
}

func safeBaseName(originalName string) string {
	base := filepath.Base(originalName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = unsafeChars.ReplaceAllString(base, "_")
	return strings.ToLower(base)
}

package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"reel-processor/internal/domain/repositories"
	fl "reel-processor/pkg/file"
)

// LocalStorage hands out request-lifetime paths under the uploads and outputs
// directories. Names carry a fresh uuid, so concurrent requests never share a path.
// Paths stay marked in use from Allocate until Release.
type LocalStorage struct {
	uploadsDir string
	outputsDir string
	log        logrus.FieldLogger

	mu     sync.Mutex
	active map[string]struct{}
}

func NewLocalStorage(uploadsDir, outputsDir string, log logrus.FieldLogger) *LocalStorage {
	return &LocalStorage{
		uploadsDir: uploadsDir,
		outputsDir: outputsDir,
		log:        log,
		active:     make(map[string]struct{}),
	}
}

func (l *LocalStorage) UploadsDir() string {
	return l.uploadsDir
}

func (l *LocalStorage) OutputsDir() string {
	return l.outputsDir
}

// Allocate returns a fresh path for the category. Nothing is created on disk.
func (l *LocalStorage) Allocate(category, originalName string) (string, error) {
	dir := l.uploadsDir
	switch category {
	case repositories.CategoryUpload, repositories.CategoryAudio:
	case repositories.CategoryOutput:
		dir = l.outputsDir
	default:
		return "", fmt.Errorf("unknown scratch category %q", category)
	}
	path := filepath.Join(dir, fl.MakeKey(category, uuid.NewString(), originalName))

	l.mu.Lock()
	l.active[path] = struct{}{}
	l.mu.Unlock()
	return path, nil
}

// InUse reports whether path was handed out and not yet released.
func (l *LocalStorage) InUse(path string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.active[path]
	return ok
}

// Stage copies a multipart upload to a newly allocated path. On failure the partial
// file is removed before returning.
func (l *LocalStorage) Stage(fileHeader *multipart.FileHeader, category string) (string, error) {
	path, err := l.Allocate(category, fileHeader.Filename)
	if err != nil {
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		l.Release(path)
		return "", fmt.Errorf("upload could not be opened: %w", err)
	}
	defer src.Close()

	if err := writeFile(path, src); err != nil {
		l.Release(path)
		return "", err
	}
	return path, nil
}

func writeFile(path string, src io.Reader) error {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("file could not be created: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("file could not be written: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("file could not be closed: %w", err)
	}
	return nil
}

// Release deletes every path. Already-absent files are not an error; other failures are
// logged and swallowed so cleanup never replaces the caller's result.
func (l *LocalStorage) Release(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		l.mu.Lock()
		delete(l.active, p)
		l.mu.Unlock()
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			l.log.WithError(err).WithField("path", p).Warn("scratch file could not be removed")
		}
	}
}

package filestorage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // root directory of all stored files
	prefix   string
}

// NewLocalStorage creates a new LocalStorage rooted at basePath.
func NewLocalStorage(basePath, prefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o750); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath, prefix: prefix}, nil
}

// Save implements DocumentStore.
func (ls *LocalStorage) Save(ctx context.Context, filename, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := NewKey(ls.prefix, filename, time.Now())
	dstPath, err := ls.resolve(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o750); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	if err := os.WriteFile(dstPath, data, 0o640); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write stored file")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Debug().Str("filename", filename).Str("key", key).Msg("File saved")
	return key, nil
}

// Delete implements DocumentStore.
func (ls *LocalStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}

	physicalPath, err := ls.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Debug().Str("key", key).Msg("File deleted")
	return nil
}

// resolve maps a key to a path, refusing anything that escapes basePath.
func (ls *LocalStorage) resolve(key string) (string, error) {
	full := filepath.Join(ls.basePath, filepath.FromSlash(key))
	rel, err := filepath.Rel(ls.basePath, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}
	return full, nil
}

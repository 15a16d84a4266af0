// Package dispatch orchestrates the Atlas Fit pipeline: profile and load
// lookup, fit scoring, result persistence, and blob archival.
package dispatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// StorageClient abstracts blob storage for archived fit results and rank
// sheets. Objects are immutable audit artifacts keyed by org and ID.
type StorageClient interface {
	PutFit(ctx context.Context, orgID, fitID string, data []byte) error
	GetFit(ctx context.Context, orgID, fitID string) ([]byte, error)
	PutRankSheet(ctx context.Context, orgID, sheetID string, data []byte) error
	GetRankSheet(ctx context.Context, orgID, sheetID string) ([]byte, error)
}

// LocalStorage implements StorageClient using the local filesystem.
// Useful for development and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(orgID, kind, id string) string {
	return filepath.Join(s.BaseDir, orgID, kind, id+".json")
}

func (s *LocalStorage) put(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// PutFit stores an archived fit result blob.
func (s *LocalStorage) PutFit(ctx context.Context, orgID, fitID string, data []byte) error {
	return s.put(s.path(orgID, "fits", fitID), data)
}

// GetFit retrieves an archived fit result blob.
func (s *LocalStorage) GetFit(ctx context.Context, orgID, fitID string) ([]byte, error) {
	return os.ReadFile(s.path(orgID, "fits", fitID))
}

// PutRankSheet stores a rank sheet blob.
func (s *LocalStorage) PutRankSheet(ctx context.Context, orgID, sheetID string, data []byte) error {
	return s.put(s.path(orgID, "ranksheets", sheetID), data)
}

// GetRankSheet retrieves a rank sheet blob.
func (s *LocalStorage) GetRankSheet(ctx context.Context, orgID, sheetID string) ([]byte, error) {
	return os.ReadFile(s.path(orgID, "ranksheets", sheetID))
}

package dispatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStoragePutGetFit(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)
	ctx := context.Background()

	data := []byte(`{"score":92}`)
	if err := s.PutFit(ctx, "org1", "fit1", data); err != nil {
		t.Fatalf("PutFit: %v", err)
	}

	got, err := s.GetFit(ctx, "org1", "fit1")
	if err != nil {
		t.Fatalf("GetFit: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("GetFit = %q, want %q", got, data)
	}

	// Verify file path layout
	expectedPath := filepath.Join(dir, "org1", "fits", "fit1.json")
	if _, err := os.Stat(expectedPath); err != nil {
		t.Errorf("expected file at %s: %v", expectedPath, err)
	}
}

func TestLocalStoragePutGetRankSheet(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)
	ctx := context.Background()

	data := []byte(`{"entries":[]}`)
	if err := s.PutRankSheet(ctx, "org1", "sheet1", data); err != nil {
		t.Fatalf("PutRankSheet: %v", err)
	}

	got, err := s.GetRankSheet(ctx, "org1", "sheet1")
	if err != nil {
		t.Fatalf("GetRankSheet: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("GetRankSheet = %q, want %q", got, data)
	}

	expectedPath := filepath.Join(dir, "org1", "ranksheets", "sheet1.json")
	if _, err := os.Stat(expectedPath); err != nil {
		t.Errorf("expected file at %s: %v", expectedPath, err)
	}
}

func TestLocalStorageGetNotFound(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)
	ctx := context.Background()

	_, err := s.GetFit(ctx, "org1", "nonexistent")
	if err == nil {
		t.Error("expected error for nonexistent fit")
	}
}

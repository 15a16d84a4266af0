package fitscore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadProfileFile reads a driver preference profile from a JSON file.
func LoadProfileFile(path string) (*DriverProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var profile DriverProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("unmarshaling profile: %w", err)
	}

	return &profile, nil
}

// LoadLoadFile reads a single load record from a JSON file.
func LoadLoadFile(path string) (Load, error) {
	var load Load
	data, err := os.ReadFile(path)
	if err != nil {
		return load, fmt.Errorf("reading load: %w", err)
	}

	if err := json.Unmarshal(data, &load); err != nil {
		return load, fmt.Errorf("unmarshaling load: %w", err)
	}

	return load, nil
}

// LoadLoadsFile reads a list of load records from a JSON file. The file may
// hold either a bare array or an object with a "loads" key.
func LoadLoadsFile(path string) ([]Load, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading loads: %w", err)
	}

	var loads []Load
	if err := json.Unmarshal(data, &loads); err == nil {
		return loads, nil
	}

	var wrapped struct {
		Loads []Load `json:"loads"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("unmarshaling loads: %w", err)
	}
	return wrapped.Loads, nil
}

// SaveResult writes a fit result to disk as indented JSON.
func SaveResult(path string, result FitResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for result: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}

	return nil
}

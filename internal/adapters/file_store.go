package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/nous/pkg/domain"
)

// FileStore implements ports.SaveStore using the local filesystem.
// It stores each slot as a JSON file in a configured directory.
type FileStore struct {
	BasePath string
}

// NewFileStore creates a new FileStore with the given base path.
// If basePath is empty, it defaults to ".nous/saves".
func NewFileStore(basePath string) *FileStore {
	if basePath == "" {
		basePath = filepath.Join(".nous", "saves")
	}
	return &FileStore{BasePath: basePath}
}

// Save persists the payload to a JSON file.
func (f *FileStore) Save(ctx context.Context, slot string, data []byte) error {
	if slot == "" {
		return fmt.Errorf("slot cannot be empty")
	}

	if err := os.MkdirAll(f.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure save directory: %w", err)
	}

	filePath := filepath.Join(f.BasePath, slot+".json")

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}

	return nil
}

// Load retrieves the payload from a JSON file.
func (f *FileStore) Load(ctx context.Context, slot string) ([]byte, error) {
	if slot == "" {
		return nil, fmt.Errorf("slot cannot be empty")
	}

	filePath := filepath.Join(f.BasePath, slot+".json")

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}

	return data, nil
}

// Delete removes the save file.
func (f *FileStore) Delete(ctx context.Context, slot string) error {
	if slot == "" {
		return fmt.Errorf("slot cannot be empty")
	}

	filePath := filepath.Join(f.BasePath, slot+".json")

	err := os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete save file: %w", err)
	}

	return nil
}

// List returns all existing slot names.
func (f *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}

	var slots []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			name := entry.Name()
			slots = append(slots, name[:len(name)-len(".json")])
		}
	}

	return slots, nil
}

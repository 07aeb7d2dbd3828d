package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Source yields the place records once at startup.
type Source interface {
	Places(ctx context.Context) ([]Place, error)
}

// FileSource reads a JSON array of places from disk.
type FileSource struct {
	Path string
}

func (f FileSource) Places(ctx context.Context) ([]Place, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	var places []Place
	if err := json.Unmarshal(raw, &places); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.Path, err)
	}
	return places, nil
}

// Load pulls every place from src into a Snapshot.
func Load(ctx context.Context, src Source) (*Snapshot, error) {
	places, err := src.Places(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return NewSnapshot(places), nil
}

package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"opsagent/internal/utils/platformerrors"
)

// Store abstracts collection persistence so repositories never touch the
// filesystem directly.
type Store interface {
	// Read loads a named collection into v. A collection that has never
	// been written loads as empty and is not an error.
	Read(ctx context.Context, collection string, v any) error
	// Write replaces a named collection with v.
	Write(ctx context.Context, collection string, v any) error
}

// JSONStore keeps each collection in <dir>/<collection>.json. Writes go
// through a temp file and a rename so readers never observe a partial file.
type JSONStore struct {
	dir string
}

var _ Store = (*JSONStore)(nil)

// NewJSONStore creates a store rooted at dir. The directory is created on
// first write.
func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

func (s *JSONStore) Read(ctx context.Context, collection string, v any) error {
	data, err := os.ReadFile(s.path(collection))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return platformerrors.NewErrorWithCause(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeDatabaseError, fmt.Sprintf("failed to read collection %s", collection), err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		// Never recreate a corrupt file; the operator decides what to do
		// with the bytes on disk.
		return platformerrors.NewErrorWithCause(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeDatabaseError, fmt.Sprintf("collection %s is corrupt", collection), err)
	}
	return nil
}

func (s *JSONStore) Write(ctx context.Context, collection string, v any) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return platformerrors.NewErrorWithCause(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeDatabaseError, "failed to create data directory", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return platformerrors.NewErrorWithCause(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeDatabaseError, fmt.Sprintf("failed to encode collection %s", collection), err)
	}

	tmp, err := os.CreateTemp(s.dir, collection+"-*.tmp")
	if err != nil {
		return platformerrors.NewErrorWithCause(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeDatabaseError, fmt.Sprintf("failed to stage collection %s", collection), err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return platformerrors.NewErrorWithCause(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeDatabaseError, fmt.Sprintf("failed to write collection %s", collection), err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return platformerrors.NewErrorWithCause(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeDatabaseError, fmt.Sprintf("failed to flush collection %s", collection), err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return platformerrors.NewErrorWithCause(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeDatabaseError, fmt.Sprintf("failed to close collection %s", collection), err)
	}
	if err := os.Rename(tmp.Name(), s.path(collection)); err != nil {
		_ = os.Remove(tmp.Name())
		return platformerrors.NewErrorWithCause(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeDatabaseError, fmt.Sprintf("failed to replace collection %s", collection), err)
	}
	return nil
}

func (s *JSONStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

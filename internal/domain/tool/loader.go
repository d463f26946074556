package tool

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// schemaFile is the on-disk document shape: either a bare definition or a
// {"tools": [...]} envelope.
type schemaFile struct {
	Tools []Definition `json:"tools"`
}

// LoadFile parses one schema file into its tool definitions.
func LoadFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var envelope schemaFile
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Tools) > 0 {
		return envelope.Tools, nil
	}

	var single Definition
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if single.Name == "" {
		return nil, fmt.Errorf("parse %s: no tools found", path)
	}
	return []Definition{single}, nil
}

// LoadDir loads every *.json file under dir (sorted, non-recursive) into the
// registry. A malformed file or descriptor is logged and skipped; the rest
// of the directory still loads. The returned count is the number of
// definitions registered.
func LoadDir(dir string, registry *Registry, logger zerolog.Logger) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read schema dir %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	loaded := 0
	var loadErrs []error
	for _, path := range files {
		defs, err := LoadFile(path)
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Msg("skipping unreadable tool schema file")
			loadErrs = append(loadErrs, err)
			continue
		}
		for _, def := range defs {
			if err := registry.Register(def); err != nil {
				logger.Warn().Err(err).Str("file", path).Msg("skipping invalid tool definition")
				loadErrs = append(loadErrs, err)
				continue
			}
			loaded++
		}
	}

	if loaded > 0 {
		logger.Info().Int("tools", loaded).Int("files", len(files)).Str("dir", dir).Msg("tool schemas loaded")
	}
	return loaded, errors.Join(loadErrs...)
}

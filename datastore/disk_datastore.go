package datastore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Septimmius/ml-templates/utils"
)

type (
	DiskDataStore struct {
		rootPath string
	}
)

func NewDiskDataStore(rootPath string) (*DiskDataStore, error) {
	dds := &DiskDataStore{
		rootPath: rootPath,
	}

	return dds, nil
}

func (dds *DiskDataStore) fullPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dds.rootPath, path)
}

// WriteFile writes through a temp file in the same directory and renames it
// into place, so readers never see a partial file.
func (dds *DiskDataStore) WriteFile(_ context.Context, path string, r io.Reader) error {
	full := dds.fullPath(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("error in os.MkdirAll: %w", err)
	}

	tmp := full + ".tmp-" + utils.GenRandomShortID()
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("error in os.Create: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("error in io.Copy: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("error closing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, full); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("error in os.Rename: %w", err)
	}

	logger.Debug().Str("path", full).Msg("wrote file to disk")
	return nil
}

func (dds *DiskDataStore) ReadFile(_ context.Context, path string) ([]byte, error) {
	b, err := os.ReadFile(dds.fullPath(path))
	if err != nil {
		return nil, fmt.Errorf("error in os.ReadFile: %w", err)
	}
	return b, nil
}

func (dds *DiskDataStore) Shutdown(_ context.Context) error {
	return nil
}

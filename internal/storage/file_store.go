package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reviewreminder/internal/providers"
	"reviewreminder/internal/storage/interfaces"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// FileStore is a MemoryStore persisted as zstd-compressed JSON. Flush
// writes a temp file and renames it over the target.
type FileStore struct {
	*MemoryStore
	flushMu    sync.Mutex
	path       string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

// NewFileStore opens the store at path, loading any existing snapshot.
func NewFileStore(path string, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (*FileStore, error) {
	fs := &FileStore{
		MemoryStore: NewMemoryStore(),
		path:        path,
		compressor:  compressor,
		logger:      logger,
		metrics:     metrics,
	}
	if err := fs.Load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) Load() error {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	raw, err := fs.compressor.Decompress(data)
	if err != nil {
		return fmt.Errorf("settings file %s: %w", fs.path, err)
	}

	var values Values
	if err := json.Unmarshal(raw, &values); err != nil {
		return fmt.Errorf("settings file %s: %w", fs.path, err)
	}
	fs.replace(values)
	fs.logger.Infof(providers.TypeApp, "Loaded settings from %s", fs.path)
	return nil
}

func (fs *FileStore) Flush() error {
	fs.flushMu.Lock()
	defer fs.flushMu.Unlock()

	values, gen, dirty := fs.Snapshot()
	if !dirty {
		return nil
	}

	start := time.Now()
	if err := fs.writeFile(values); err != nil {
		return err
	}
	fs.markFlushed(gen)
	fs.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func (fs *FileStore) writeFile(values Values) error {
	jsonData, err := json.Marshal(values)
	if err != nil {
		return err
	}
	data, err := fs.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(fs.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmpFile := fs.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fs.path)
}

func (fs *FileStore) Close() {
	fs.compressor.Close()
}

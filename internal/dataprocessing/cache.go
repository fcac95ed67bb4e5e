package dataprocessing

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"leitor/internal/files"
	"leitor/pkg/contracts/domain"
)

// DatasetBuilder is the rebuild dependency of the cache; tests substitute a
// counting fake to assert how often a rebuild actually runs.
type DatasetBuilder interface {
	Build(ctx context.Context) (*domain.Dataset, error)
}

// Cache keeps the last built dataset together with the file signature it
// was built from. One cache instance is shared by every reader; a single
// mutex serializes signature comparison and store, while the rebuild itself
// runs outside the lock so readers are never blocked behind a slow parse.
// Concurrent rebuilds for the same signature transition are tolerated; the
// last writer under the lock wins and the dataset is always replaced as a
// whole, never mutated.
type Cache struct {
	dir     string
	builder DatasetBuilder
	logger  *slog.Logger

	mu        sync.Mutex
	signature string
	dataset   *domain.Dataset
	valid     bool
}

// NewCache creates the dataset cache for one source directory.
func NewCache(dir string, builder DatasetBuilder, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		dir:     dir,
		builder: builder,
		logger:  logger.With(slog.String("component", "dataset_cache")),
	}
}

// Load returns the cached dataset when the source directory is unchanged,
// rebuilding it otherwise.
func (c *Cache) Load(ctx context.Context) (*domain.Dataset, error) {
	signature, err := c.currentSignature()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.valid && c.signature == signature {
		dataset := c.dataset
		c.mu.Unlock()
		return dataset, nil
	}
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "dataset stale, rebuilding")
	dataset, err := c.builder.Build(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.signature = signature
	c.dataset = dataset
	c.valid = true
	c.mu.Unlock()
	return dataset, nil
}

// Invalidate drops the stored dataset so the next Load rebuilds
// unconditionally. Called after the file set is changed by an upload.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.signature = ""
	c.dataset = nil
	c.valid = false
	c.mu.Unlock()
}

// currentSignature snapshots the (path, mtime-ns) tuple of every
// spreadsheet, sorted by path. Two snapshots are equal iff no file was
// added, removed or touched. A missing directory signs as empty.
func (c *Cache) currentSignature() (string, error) {
	found, err := files.ListSpreadsheets(c.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}

	var sb strings.Builder
	for _, file := range found {
		sb.WriteString(file.Path)
		sb.WriteByte(0)
		sb.WriteString(strconv.FormatInt(file.ModTime.UnixNano(), 10))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

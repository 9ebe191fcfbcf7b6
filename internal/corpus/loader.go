// Package corpus reads a directory of text files into documents.
package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	internalErrors "github.com/gcbaptista/go-questions/internal/errors"
	"github.com/gcbaptista/go-questions/model"
	"github.com/gcbaptista/go-questions/store"
)

// Options controls which files are read and how many are read at once.
type Options struct {
	Concurrency int      // Maximum parallel file reads; values below 1 mean 1
	Extensions  []string // Accepted file extensions (e.g., ".txt"); empty accepts every file
	Logger      *logrus.Entry
}

// Load reads every regular, non-hidden file directly inside dir and returns one
// document per file, keyed by file name and sorted by ID.
// Any failure aborts the load with a CorpusError; callers never see a partial corpus.
func Load(ctx context.Context, dir string, opts Options) ([]model.Document, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, internalErrors.NewCorpusError(dir, err)
	}

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	docs := store.NewDocumentStore(nil)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			logger.WithField("file", name).Debug("skipping hidden file")
			continue
		}
		if !acceptExtension(name, opts.Extensions) {
			logger.WithField("file", name).Debug("skipping file with unaccepted extension")
			continue
		}

		path := filepath.Join(dir, name)
		info, err := os.Stat(path) // follows symlinks
		if err != nil {
			_ = g.Wait()
			return nil, internalErrors.NewCorpusError(path, err)
		}
		if !info.Mode().IsRegular() {
			logger.WithField("file", name).Debug("skipping non-regular entry")
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(path) // #nosec G304 -- path is built from the corpus directory listing
			if err != nil {
				return internalErrors.NewCorpusError(path, err)
			}
			docs.Add(model.Document{ID: name, Text: string(content)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, internalErrors.NewCorpusError(dir, fmt.Errorf("load cancelled: %w", ctx.Err()))
		}
		return nil, err
	}

	loaded := docs.All()
	logger.WithFields(logrus.Fields{
		"directory": dir,
		"documents": len(loaded),
	}).Info("corpus loaded")

	return loaded, nil
}

// acceptExtension reports whether name passes the extension filter
func acceptExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range extensions {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if !strings.HasPrefix(allowed, ".") {
			allowed = "." + allowed
		}
		if ext == allowed {
			return true
		}
	}
	return false
}

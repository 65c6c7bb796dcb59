// Package dataset orchestrates a full annotation load: it walks the dataset
// directory tree, parses file contents into nested data, runs the expansion
// engine against a declarative form, and returns the canonical record set.
package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dukaforge/formload/internal/engine"
	"github.com/dukaforge/formload/internal/loaders"
	"github.com/dukaforge/formload/pkg/types"
)

// Options configures a load. Zero value is usable: no logging, no progress.
type Options struct {
	Logger   *log.Logger
	Progress engine.Progress
}

// Load walks the dataset rooted at root, expands it against f, consolidates
// sibling results, applies pairing context, and returns the canonical
// records. The registry supplies the identity tie-break order and owns the
// run-scoped token state.
func Load(root string, reg *types.Registry, f engine.Form, opts Options) ([]*types.DataEntry, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("dataset root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dataset root %s is not a directory", root)
	}

	logger.Debug("reading dataset tree", "root", root)
	data, err := readTree(root, logger)
	if err != nil {
		return nil, err
	}

	eng := engine.New(reg)
	eng.Progress = opts.Progress

	x, err := eng.Expand(engine.Path{}, data, f, 0)
	if err != nil {
		return nil, err
	}
	entries, err := x.Consolidate(reg)
	if err != nil {
		return nil, err
	}
	records, err := engine.ApplyPairings(entries)
	if err != nil {
		return nil, err
	}

	logger.Info("dataset loaded", "root", root, "branches", x.Len(), "records", len(records))
	return records, nil
}

// readTree parses the directory at dir into nested data: subdirectories
// become mappings keyed by entry name, JSON and text files parse into
// nested structures, and any other file contributes its absolute path so
// filename tokens can validate existence.
func readTree(dir string, logger *log.Logger) (map[string]any, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	out := make(map[string]any, len(entries))
	for _, ent := range entries {
		name := ent.Name()
		full := filepath.Join(dir, name)

		if ent.IsDir() {
			sub, err := readTree(full, logger)
			if err != nil {
				return nil, err
			}
			out[name] = sub
			continue
		}

		switch strings.ToLower(filepath.Ext(name)) {
		case ".json":
			v, err := loaders.ReadJSON(full)
			if err != nil {
				return nil, err
			}
			out[name] = v
		case ".txt":
			v, err := loaders.ReadText(full)
			if err != nil {
				return nil, err
			}
			out[name] = v
		default:
			abs, err := filepath.Abs(full)
			if err != nil {
				return nil, fmt.Errorf("resolving %s: %w", full, err)
			}
			out[name] = abs
		}
		logger.Debug("read file", "path", full)
	}
	return out, nil
}

// Load command walks a dataset and prints or persists the canonical records.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dukaforge/formload/internal/dataset"
	"github.com/dukaforge/formload/internal/engine"
	"github.com/dukaforge/formload/internal/sqlite"
	"github.com/dukaforge/formload/pkg/types"
)

var (
	flagPreset string
	flagSave   bool
)

var loadCmd = &cobra.Command{
	Use:   "load <root>",
	Short: "Load a dataset directory into canonical records",
	Long: `Load walks the dataset rooted at <root>, matches its files against the
selected form preset, and consolidates the extracted values into one
record per image.

With --save the records are also persisted to the data directory as a
SQLite database plus a records.jsonl file.

Example:
  formload load ./dataset --preset yolo
  formload load ./dataset --preset coco --json
  formload load ./dataset --save`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&flagPreset, "preset", "", "form preset (default from config.yaml)")
	loadCmd.Flags().BoolVar(&flagSave, "save", false, "persist records to the data directory")
}

func runLoad(cmd *cobra.Command, args []string) error {
	name := flagPreset
	if name == "" {
		name = configPreset
	}
	p, ok := lookupPreset(name)
	if !ok {
		names := make([]string, len(presets))
		for i, q := range presets {
			names[i] = q.Name
		}
		fmt.Fprintf(os.Stderr, "load: unknown preset %q (valid: %s)\n", name, strings.Join(names, ", "))
		os.Exit(exitUserError)
	}

	std := types.NewStandard()
	counter := &engine.Counter{}
	records, err := dataset.Load(args[0], std.Registry, p.build(std), dataset.Options{
		Logger:   logger,
		Progress: counter,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "load:", err)
		if isDataError(err) {
			os.Exit(exitUserError)
		}
		os.Exit(exitSysError)
	}

	if flagSave {
		if err := saveRecords(records); err != nil {
			fmt.Fprintln(os.Stderr, "load:", err)
			os.Exit(exitSysError)
		}
	}

	if flagJSON {
		out, err := json.MarshalIndent(recordsJSON(records), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal records: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("%d records from %s\n", len(records), args[0])
	for _, r := range records {
		var parts []string
		for _, label := range r.Labels() {
			items, _ := r.Get(label)
			values := make([]string, len(items))
			for i, it := range items {
				values[i] = it.Value
			}
			parts = append(parts, fmt.Sprintf("%s=%s", label, strings.Join(values, ",")))
		}
		fmt.Println(" ", strings.Join(parts, " "))
	}
	return nil
}

// isDataError reports whether err describes a problem with the dataset
// itself rather than with the system running the load.
func isDataError(err error) bool {
	var derr *types.DatasetError
	var cerr *types.ConflictError
	var verr *types.ValidationError
	return errors.As(err, &derr) || errors.As(err, &cerr) || errors.As(err, &verr)
}

// saveRecords persists records under the resolved data directory.
func saveRecords(records []*types.DataEntry) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	store := sqlite.NewStore()
	if err := store.Attach(dataDir); err != nil {
		return fmt.Errorf("attach store: %w", err)
	}
	defer store.Detach()

	ids, err := store.SaveRecords(records)
	if err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	logger.Info("records saved", "data_dir", dataDir, "count", len(ids))
	return nil
}

// recordsJSON flattens records into a JSON-friendly shape, each record a map
// from type label to its values in extraction order.
func recordsJSON(records []*types.DataEntry) []map[string][]string {
	out := make([]map[string][]string, 0, len(records))
	for _, r := range records {
		m := make(map[string][]string, r.Len())
		for _, label := range r.Labels() {
			items, _ := r.Get(label)
			values := make([]string, len(items))
			for i, it := range items {
				values[i] = it.Value
			}
			m[label] = values
		}
		out = append(out, m)
	}
	return out
}

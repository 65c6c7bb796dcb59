// JSONL persistence for the record store: records.jsonl is the durable
// source of truth, rewritten atomically via temp-file, fsync, rename.
package sqlite

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// readJSONL reads records.jsonl, one record per line. Malformed lines are
// skipped so a damaged line never blocks the rest of the file. A missing
// file reads as empty.
func readJSONL(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var recs []Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		recs = append(recs, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return recs, nil
}

// writeJSONL atomically writes recs to path using the temp-file, fsync,
// rename pattern.
func writeJSONL(path string, recs []Record) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".records-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for _, rec := range recs {
		if err := enc.Encode(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("encoding record %s: %w", rec.RecordID, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing records: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing records: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming %s: %w", path, err)
	}
	return nil
}

// loadJSONL rebuilds the database contents from records.jsonl. Loading is
// transactional: the database keeps its previous contents on failure.
func loadJSONL(db *sql.DB, path string) error {
	recs, err := readJSONL(path)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM record_fields"); err != nil {
		return fmt.Errorf("clearing fields: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM records"); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}

	recStmt, err := tx.Prepare("INSERT INTO records (record_id, created_at) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing record insert: %w", err)
	}
	defer recStmt.Close()

	fieldStmt, err := tx.Prepare(
		"INSERT INTO record_fields (record_id, label, value, position) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing field insert: %w", err)
	}
	defer fieldStmt.Close()

	for _, rec := range recs {
		if _, err := recStmt.Exec(rec.RecordID, rec.CreatedAt.Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("loading record %s: %w", rec.RecordID, err)
		}
		for _, f := range rec.Fields {
			if _, err := fieldStmt.Exec(rec.RecordID, f.Label, f.Value, f.Position); err != nil {
				return fmt.Errorf("loading field %s of %s: %w", f.Label, rec.RecordID, err)
			}
		}
	}
	return tx.Commit()
}

package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/dukaforge/formload/pkg/types"
)

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// recordsDB and recordsJSONL are the filenames used inside the data dir.
const (
	recordsDB    = "records.db"
	recordsJSONL = "records.jsonl"
)

// Field is one stored value of a record. Position orders values within a
// record; redundant-storage fields occupy several positions.
type Field struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Position int    `json:"position"`
}

// Record is one persisted canonical record.
type Record struct {
	RecordID  string    `json:"record_id"`
	CreatedAt time.Time `json:"created_at"`
	Fields    []Field   `json:"fields"`
}

// Store persists canonical record sets under a data directory.
type Store struct {
	mu       sync.RWMutex
	attached bool
	dataDir  string
	db       *sql.DB
}

// NewStore creates a detached store; call Attach before use.
func NewStore() *Store {
	return &Store{}
}

// newRecordID generates a UUID v7 string.
func newRecordID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Attach opens the store under dataDir, creating the directory and schema
// as needed, and rebuilds the database from records.jsonl when the file
// exists. Returns ErrAlreadyAttached on a second attach.
func (s *Store) Attach(dataDir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attached {
		return ErrAlreadyAttached
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, recordsDB))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("creating schema: %w", err)
	}
	if err := loadJSONL(db, filepath.Join(dataDir, recordsJSONL)); err != nil {
		db.Close()
		return err
	}

	s.db = db
	s.dataDir = dataDir
	s.attached = true
	return nil
}

// Detach closes the store. Idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.attached = false
	return err
}

// SaveRecords persists entries as new records and returns their generated
// IDs in entry order. The database insert is transactional, and the JSONL
// file is rewritten atomically afterwards.
func (s *Store) SaveRecords(entries []*types.DataEntry) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return nil, ErrStoreDetached
	}

	now := time.Now().UTC()
	recs := make([]Record, 0, len(entries))
	for _, e := range entries {
		recs = append(recs, entryRecord(e, now))
	}

	if err := insertRecords(s.db, recs); err != nil {
		return nil, err
	}
	if err := s.persistJSONL(); err != nil {
		return nil, err
	}

	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.RecordID
	}
	return ids, nil
}

// Records returns all persisted records ordered by creation time, fields in
// position order.
func (s *Store) Records() ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return nil, ErrStoreDetached
	}
	return queryRecords(s.db)
}

// Count returns the number of persisted records.
func (s *Store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return 0, ErrStoreDetached
	}
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// entryRecord flattens a data entry into a persistable record.
func entryRecord(e *types.DataEntry, now time.Time) Record {
	rec := Record{RecordID: newRecordID(), CreatedAt: now}
	pos := 0
	for _, label := range e.Labels() {
		items, _ := e.Get(label)
		for _, it := range items {
			rec.Fields = append(rec.Fields, Field{Label: label, Value: it.Value, Position: pos})
			pos++
		}
	}
	return rec
}

// insertRecords writes recs to the database in one transaction.
func insertRecords(db *sql.DB, recs []Record) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

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
			return fmt.Errorf("inserting record %s: %w", rec.RecordID, err)
		}
		for _, f := range rec.Fields {
			if _, err := fieldStmt.Exec(rec.RecordID, f.Label, f.Value, f.Position); err != nil {
				return fmt.Errorf("inserting field %s of %s: %w", f.Label, rec.RecordID, err)
			}
		}
	}
	return tx.Commit()
}

// queryRecords reads every record with its fields in position order.
func queryRecords(db *sql.DB) ([]Record, error) {
	rows, err := db.Query("SELECT record_id, created_at FROM records ORDER BY created_at, record_id")
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var recs []Record
	byID := make(map[string]int)
	for rows.Next() {
		var id, created string
		if err := rows.Scan(&id, &created); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at of %s: %w", id, err)
		}
		byID[id] = len(recs)
		recs = append(recs, Record{RecordID: id, CreatedAt: ts})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	frows, err := db.Query(
		"SELECT record_id, label, value, position FROM record_fields ORDER BY record_id, position")
	if err != nil {
		return nil, fmt.Errorf("querying fields: %w", err)
	}
	defer frows.Close()

	for frows.Next() {
		var f Field
		var id string
		if err := frows.Scan(&id, &f.Label, &f.Value, &f.Position); err != nil {
			return nil, fmt.Errorf("scanning field: %w", err)
		}
		if i, ok := byID[id]; ok {
			recs[i].Fields = append(recs[i].Fields, f)
		}
	}
	if err := frows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fields: %w", err)
	}
	return recs, nil
}

// persistJSONL rewrites records.jsonl from the database state. Caller holds
// the write lock.
func (s *Store) persistJSONL() error {
	recs, err := queryRecords(s.db)
	if err != nil {
		return err
	}
	return writeJSONL(filepath.Join(s.dataDir, recordsJSONL), recs)
}

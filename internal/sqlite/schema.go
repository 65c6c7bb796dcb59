// Package sqlite persists canonical record sets produced by a dataset load.
// SQLite is the query engine; records.jsonl in the data directory is the
// durable source of truth and rebuilds the database on attach.
package sqlite

// Schema DDL for the record store. Records carry a generated identity and
// creation time; every extracted field lives in record_fields, ordered by
// position so redundant-storage sequences round-trip.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS records (
    record_id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS record_fields (
    record_id TEXT NOT NULL,
    label TEXT NOT NULL,
    value TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (record_id, label, position),
    FOREIGN KEY (record_id) REFERENCES records(record_id)
);

CREATE INDEX IF NOT EXISTS idx_record_fields_label
    ON record_fields(label, value);
`

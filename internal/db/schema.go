package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
//
// Parent references are intentionally not foreign keys: a dangling parent
// is a recoverable integrity warning for the catalog engine, not a write
// the database should refuse (restores may insert rows in any order).
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS properties (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    address    TEXT,
    image_url  TEXT,
    image_hint TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS locations (
    id          TEXT PRIMARY KEY,
    property_id TEXT NOT NULL REFERENCES properties(id),
    name        TEXT NOT NULL,
    parent_id   TEXT,
    type        TEXT NOT NULL CHECK (type IN ('room', 'cabinet', 'shelf', 'drawer', 'box', 'bin', 'other')),
    icon        TEXT NOT NULL,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_locations_property ON locations(property_id);
CREATE INDEX IF NOT EXISTS idx_locations_parent ON locations(parent_id);

CREATE TABLE IF NOT EXISTS items (
    id            TEXT PRIMARY KEY,
    property_id   TEXT NOT NULL REFERENCES properties(id),
    location_id   TEXT NOT NULL,
    parent_id     TEXT,
    name          TEXT NOT NULL,
    description   TEXT,
    quantity      INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 1),
    tags          TEXT,
    image_url     TEXT,
    image_hint    TEXT,
    image         BLOB,
    image_mime    TEXT,
    is_container  INTEGER NOT NULL DEFAULT 0,
    door_count    INTEGER NOT NULL DEFAULT 0 CHECK (door_count >= 0),
    drawer_count  INTEGER NOT NULL DEFAULT 0 CHECK (drawer_count >= 0),
    sub_type      TEXT CHECK (sub_type IN ('door', 'drawer')),
    sub_number    INTEGER,
    location_path TEXT,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_items_property ON items(property_id);
CREATE INDEX IF NOT EXISTS idx_items_location ON items(location_id);
CREATE INDEX IF NOT EXISTS idx_items_parent ON items(parent_id);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

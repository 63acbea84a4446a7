package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"alphabetize-cli/internal/model"

	_ "modernc.org/sqlite"
)

const sqliteFileName = "state.sqlite"

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), sqliteFileName)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite registers the "sqlite" driver.
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL lets the panel keep reading while a CLI run writes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS scenes (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			root_id TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS collections (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			hide_render INTEGER NOT NULL,
			hide_viewport INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS objects (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			hide_render INTEGER NOT NULL,
			hide_viewport INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS links (
			parent_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			kind TEXT NOT NULL,
			child_id TEXT NOT NULL,
			PRIMARY KEY (parent_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_links_child ON links(child_id);`,
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			ts_unixms INTEGER NOT NULL,
			actor TEXT NOT NULL,
			type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			payload_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_ts ON events(ts_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// LoadSQLite reads the document. A workspace with no state yet yields an empty
// document.
func (s Store) LoadSQLite(ctx context.Context) (*model.Document, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	out := &model.Document{
		Version:     1,
		Scenes:      []model.Scene{},
		Collections: []model.Collection{},
		Objects:     []model.Object{},
	}

	readMeta := func(k string) string {
		var v string
		_ = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, k).Scan(&v)
		return strings.TrimSpace(v)
	}
	if v := readMeta("version"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			out.Version = n
		}
	}
	out.ID = readMeta("document_id")
	out.ActiveCollectionID = readMeta("active_collection_id")

	if xs, err := readJSONRows[model.Scene](ctx, db, `SELECT json FROM scenes ORDER BY position`); err == nil {
		out.Scenes = append(out.Scenes, xs...)
	} else {
		return nil, err
	}
	if xs, err := readJSONRows[model.Collection](ctx, db, `SELECT json FROM collections ORDER BY position`); err == nil {
		out.Collections = append(out.Collections, xs...)
	} else {
		return nil, err
	}
	if xs, err := readJSONRows[model.Object](ctx, db, `SELECT json FROM objects ORDER BY position`); err == nil {
		out.Objects = append(out.Objects, xs...)
	} else {
		return nil, err
	}

	// Child order lives in links; the collection JSON only carries attributes.
	children, err := readLinks(ctx, db)
	if err != nil {
		return nil, err
	}
	for i := range out.Collections {
		refs := children[out.Collections[i].ID]
		if refs == nil {
			refs = []model.ChildRef{}
		}
		out.Collections[i].Children = refs
	}
	return out, nil
}

func readLinks(ctx context.Context, db *sql.DB) (map[string][]model.ChildRef, error) {
	rows, err := db.QueryContext(ctx, `SELECT parent_id, kind, child_id FROM links ORDER BY parent_id, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]model.ChildRef{}
	for rows.Next() {
		var parent, kind, child string
		if err := rows.Scan(&parent, &kind, &child); err != nil {
			return nil, err
		}
		out[parent] = append(out[parent], model.ChildRef{Kind: model.ChildKind(kind), ID: child})
	}
	return out, rows.Err()
}

// SaveSQLite replaces the stored document in one transaction.
func (s Store) SaveSQLite(ctx context.Context, doc *model.Document) error {
	return s.commitSQLite(ctx, doc, nil)
}

// commitSQLite replaces the stored document and, when ev is set, appends it to
// the event log in the same transaction.
func (s Store) commitSQLite(ctx context.Context, doc *model.Document, ev *pendingEvent) error {
	if doc == nil {
		return errors.New("nil document")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := writeDocumentTx(ctx, tx, doc); err != nil {
		return err
	}
	if ev != nil {
		if err := ev.insert(ctx, tx); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func writeDocumentTx(ctx context.Context, tx *sql.Tx, doc *model.Document) error {
	if doc.Version == 0 {
		doc.Version = 1
	}
	meta := map[string]string{
		"version":              strconv.Itoa(doc.Version),
		"document_id":          strings.TrimSpace(doc.ID),
		"active_collection_id": strings.TrimSpace(doc.ActiveCollectionID),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, k, v); err != nil {
			return err
		}
	}

	for _, t := range []string{"scenes", "collections", "objects", "links"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()

	for i, sc := range doc.Scenes {
		raw, _ := json.Marshal(sc)
		if _, err := tx.ExecContext(ctx, `INSERT INTO scenes(position, id, root_id, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			i, sc.ID, sc.RootID, string(raw), nowMs); err != nil {
			return err
		}
	}
	for i, c := range doc.Collections {
		attrs := c
		attrs.Children = nil
		raw, _ := json.Marshal(attrs)
		if _, err := tx.ExecContext(ctx, `INSERT INTO collections(position, id, name, hide_render, hide_viewport, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?)`,
			i, c.ID, c.Name, boolToInt(c.HideRender), boolToInt(c.HideViewport), string(raw), nowMs); err != nil {
			return err
		}
		for pos, ref := range c.Children {
			if _, err := tx.ExecContext(ctx, `INSERT INTO links(parent_id, position, kind, child_id) VALUES(?, ?, ?, ?)`,
				c.ID, pos, string(ref.Kind), ref.ID); err != nil {
				return err
			}
		}
	}
	for i, o := range doc.Objects {
		raw, _ := json.Marshal(o)
		if _, err := tx.ExecContext(ctx, `INSERT INTO objects(position, id, name, hide_render, hide_viewport, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?)`,
			i, o.ID, o.Name, boolToInt(o.HideRender), boolToInt(o.HideViewport), string(raw), nowMs); err != nil {
			return err
		}
	}
	return nil
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

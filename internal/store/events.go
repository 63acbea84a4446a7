package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"alphabetize-cli/internal/model"

	"github.com/google/uuid"
)

const (
	EventForestAlphabetize = "forest.alphabetize"
	EventForestImport      = "forest.import"
	EventSceneAdd          = "scene.add"
	EventCollectionAdd     = "collection.add"
	EventObjectAdd         = "object.add"
	EventObjectLink        = "object.link"
	EventVisibilitySet     = "visibility.set"
)

// AppendEvent records one event in the workspace log.
func (s Store) AppendEvent(actor, typ, entityID string, payload any) error {
	return s.appendEventSQLite(context.Background(), actor, typ, entityID, payload)
}

// Commit saves doc and records one event for it in a single transaction:
// either both land or neither does.
func (s Store) Commit(doc *model.Document, actor, typ, entityID string, payload any) error {
	ev, err := newPendingEvent(actor, typ, entityID, payload)
	if err != nil {
		return err
	}
	return s.commitSQLite(context.Background(), doc, &ev)
}

// ReadEvents returns the most recent events, oldest first. limit <= 0 reads all.
func (s Store) ReadEvents(limit int) ([]model.Event, error) {
	return s.readEventsSQLite(context.Background(), limit)
}

type pendingEvent struct {
	id, actor, typ, entityID string
	payloadJSON              string
}

func newPendingEvent(actor, typ, entityID string, payload any) (pendingEvent, error) {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return pendingEvent{}, errors.New("event: missing type")
	}
	actor = strings.TrimSpace(actor)
	if actor == "" {
		actor = "cli"
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return pendingEvent{}, err
	}
	return pendingEvent{
		id:          uuid.NewString(),
		actor:       actor,
		typ:         typ,
		entityID:    strings.TrimSpace(entityID),
		payloadJSON: string(pb),
	}, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (ev pendingEvent) insert(ctx context.Context, db execer) error {
	_, err := db.ExecContext(ctx, `INSERT INTO events(id, ts_unixms, actor, type, entity_id, payload_json) VALUES(?, ?, ?, ?, ?, ?)`,
		ev.id, time.Now().UTC().UnixMilli(), ev.actor, ev.typ, ev.entityID, ev.payloadJSON)
	return err
}

func (s Store) appendEventSQLite(ctx context.Context, actor, typ, entityID string, payload any) error {
	ev, err := newPendingEvent(actor, typ, entityID, payload)
	if err != nil {
		return err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	return ev.insert(ctx, db)
}

func (s Store) readEventsSQLite(ctx context.Context, limit int) ([]model.Event, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	// rowid breaks ties between events written in the same millisecond.
	q := `SELECT id, ts_unixms, actor, type, entity_id, payload_json
	      FROM events
	      ORDER BY ts_unixms DESC, rowid DESC`
	var rows *sql.Rows
	if limit > 0 {
		rows, err = db.QueryContext(ctx, q+` LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		var id, actor, typ, entityID, payloadJSON string
		var tsMs int64
		if err := rows.Scan(&id, &tsMs, &actor, &typ, &entityID, &payloadJSON); err != nil {
			return nil, err
		}
		var payload any
		_ = json.Unmarshal([]byte(payloadJSON), &payload)
		out = append(out, model.Event{
			ID:       id,
			TS:       time.UnixMilli(tsMs).UTC(),
			Actor:    actor,
			Type:     typ,
			EntityID: entityID,
			Payload:  payload,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Newest were selected; hand them back oldest first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

package eventlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// Event types appended by the service.
const (
	TypeSessionCompleted = "SessionCompleted"
	TypeDeckImported     = "DeckImported"
)

type Event struct {
	Offset    int64
	SiteID    string
	Type      string
	Key       string
	DataJSON  string
	CreatedAt int64
}

// Repo appends to the event_log table. Appends are fire-and-forget
// from the caller's perspective; a failed append is logged, never
// surfaced to the patient.
type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Append(ctx context.Context, e Event) error {
	if e.SiteID == "" {
		e.SiteID = "local"
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (site_id, typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		e.SiteID, e.Type, e.Key, e.DataJSON, time.Now().Unix())
	return err
}

// AppendJSON marshals payload and appends it under the given type/key.
func (r *Repo) AppendJSON(ctx context.Context, typ, key string, payload any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return r.Append(ctx, Event{Type: typ, Key: key, DataJSON: string(buf)})
}

package card

import (
	"database/sql"
	"errors"
	"time"
)

// SQLStore persists cards in the cards table. Works against both the
// sqlite and postgres schemas from internal/db.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Put(c Card) error {
	clean := Sanitize([]Card{c})
	if len(clean) == 0 {
		return errors.New("card rejected: label and media required")
	}
	c = clean[0]
	if c.CreatedAt == 0 {
		c.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.Exec(`INSERT INTO cards (id,patient_id,label,media_uri,category,kind,dedupe_key,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (patient_id,dedupe_key) DO UPDATE SET label=EXCLUDED.label, kind=EXCLUDED.kind`,
		c.ID, c.PatientID, c.Label, c.MediaURI, c.Category, c.Kind, c.Key(), c.CreatedAt)
	return err
}

func (s *SQLStore) Get(id string) (Card, error) {
	row := s.db.QueryRow(`SELECT id,patient_id,label,media_uri,category,kind,created_at FROM cards WHERE id=$1`, id)
	var c Card
	if err := row.Scan(&c.ID, &c.PatientID, &c.Label, &c.MediaURI, &c.Category, &c.Kind, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Card{}, ErrNotFound
		}
		return Card{}, err
	}
	return c, nil
}

func (s *SQLStore) List(patientID, category string) ([]Card, error) {
	var rows *sql.Rows
	var err error
	if category == "" {
		rows, err = s.db.Query(`SELECT id,patient_id,label,media_uri,category,kind,created_at
			FROM cards WHERE patient_id=$1 ORDER BY created_at`, patientID)
	} else {
		rows, err = s.db.Query(`SELECT id,patient_id,label,media_uri,category,kind,created_at
			FROM cards WHERE patient_id=$1 AND category=$2 ORDER BY created_at`, patientID, category)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Card
	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.ID, &c.PatientID, &c.Label, &c.MediaURI, &c.Category, &c.Kind, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// rows predate the sanitizer in old databases; filter on the way out too
	return Sanitize(out), nil
}

func (s *SQLStore) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM cards WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

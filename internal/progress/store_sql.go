package progress

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// SQLStore keeps session summaries in the session_summaries table and
// computes category aggregates in SQL.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Save(ctx context.Context, sum Summary) (Summary, error) {
	if sum.ID == "" {
		sum.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_summaries (id,patient_id,category,total_questions,correct_answers,skipped,total_time_seconds,ts)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		sum.ID, sum.PatientID, sum.Category, sum.TotalQuestions, sum.CorrectAnswers, sum.Skipped, sum.TotalTimeSeconds, sum.Timestamp)
	if err != nil {
		return Summary{}, err
	}
	return sum, nil
}

func (s *SQLStore) List(ctx context.Context, patientID, category string) ([]Summary, error) {
	var rows *sql.Rows
	var err error
	if category == "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id,patient_id,category,total_questions,correct_answers,skipped,total_time_seconds,ts
			 FROM session_summaries WHERE patient_id=$1 ORDER BY ts DESC`, patientID)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id,patient_id,category,total_questions,correct_answers,skipped,total_time_seconds,ts
			 FROM session_summaries WHERE patient_id=$1 AND category=$2 ORDER BY ts DESC`, patientID, category)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.PatientID, &sum.Category, &sum.TotalQuestions,
			&sum.CorrectAnswers, &sum.Skipped, &sum.TotalTimeSeconds, &sum.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLStore) Stats(ctx context.Context, patientID string) ([]CategoryStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category,
		        COUNT(*),
		        AVG(CASE WHEN total_questions - skipped > 0
		                 THEN CAST(correct_answers AS REAL) / (total_questions - skipped)
		                 ELSE 0 END),
		        SUM(total_time_seconds),
		        MAX(ts)
		 FROM session_summaries WHERE patient_id=$1
		 GROUP BY category ORDER BY category`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CategoryStats
	for rows.Next() {
		var st CategoryStats
		if err := rows.Scan(&st.Category, &st.GamesPlayed, &st.AvgAccuracy, &st.TotalSeconds, &st.LastPlayed); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

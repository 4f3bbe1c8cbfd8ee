package progress

// Summary is the per-session record handed to the progress tracker
// when a recall game completes.
type Summary struct {
	ID               string `json:"id"`
	PatientID        string `json:"patient_id"`
	Category         string `json:"category"`
	TotalQuestions   int    `json:"total_questions"`
	CorrectAnswers   int    `json:"correct_answers"`
	Skipped          int    `json:"skipped"`
	TotalTimeSeconds int    `json:"total_time_seconds"`
	Timestamp        int64  `json:"timestamp"`
}

// CategoryStats aggregates a patient's history within one category.
type CategoryStats struct {
	Category     string  `json:"category"`
	GamesPlayed  int     `json:"games_played"`
	AvgAccuracy  float64 `json:"avg_accuracy"` // correct / (total - skipped), averaged over games
	TotalSeconds int     `json:"total_seconds"`
	LastPlayed   int64   `json:"last_played"`
}

// Accuracy is the fraction of answered questions that were correct.
// Skips are not counted against the patient.
func (s Summary) Accuracy() float64 {
	answered := s.TotalQuestions - s.Skipped
	if answered <= 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(answered)
}

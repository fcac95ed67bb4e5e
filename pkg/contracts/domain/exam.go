// Package domain holds the shared data contracts exchanged between the
// dataset engine, the aggregation layer and the HTTP transport. Values here
// are plain structured data: no framework types, no I/O.
package domain

// StudentResult is one student's outcome on one worksheet.
//
// Answers maps question label to the student's normalized answer; an empty
// string records a question the student left blank (the question still
// counts toward ValidQuestions). AnswerKey carries the sheet's correct
// answers so per-question accuracy can be recomputed over any filtered
// subset of students.
type StudentResult struct {
	File           string            `json:"file"`
	Sheet          string            `json:"sheet"`
	Class          string            `json:"class"`
	Number         string            `json:"number"`
	Identifier     string            `json:"identifier"`
	Name           string            `json:"name"`
	Score          float64           `json:"score"`
	MaxScore       float64           `json:"max_score"`
	ScorePercent   float64           `json:"score_percent"`
	Correct        int               `json:"correct"`
	ValidQuestions int               `json:"valid_questions"`
	CorrectPercent float64           `json:"correct_percent"`
	Answers        map[string]string `json:"answers"`
	AnswerKey      map[string]string `json:"answer_key"`

	// Status is filled in by the aggregation layer when a view asks for
	// band classification; it is nil on freshly parsed results.
	Status *StatusInfo `json:"status,omitempty"`
}

// QuestionStats aggregates one question label across all files and sheets.
type QuestionStats struct {
	Label    string  `json:"label"`
	Key      string  `json:"key"`
	Weight   float64 `json:"weight"`
	Answered int     `json:"answered"`
	Correct  int     `json:"correct"`
}

// Dataset is the unit the cache builds, stores and serves. It is immutable
// once built: rebuilds replace it wholesale.
type Dataset struct {
	Classes   []string                 `json:"classes"`
	Files     []string                 `json:"files"`
	Students  []StudentResult          `json:"students"`
	Questions map[string]QuestionStats `json:"questions"`
}

// EmptyDataset returns a dataset with no content but non-nil collections,
// used when the source directory does not exist yet.
func EmptyDataset() *Dataset {
	return &Dataset{
		Classes:   []string{},
		Files:     []string{},
		Students:  []StudentResult{},
		Questions: map[string]QuestionStats{},
	}
}

package dataprocessing

import (
	"math"
	"strconv"
	"strings"

	"leitor/pkg/contracts/domain"
)

const (
	// headerNumberToken and headerIdentifierToken form the layout
	// fingerprint: a worksheet is an exam-result sheet only when row 2
	// starts with these two headers.
	headerNumberToken     = "nº"
	headerIdentifierToken = "cpf"

	// voidSentinel marks a question excluded from grading in the answer
	// key row. Kept byte-for-byte as found in the source spreadsheets.
	voidSentinel = "##"

	// answerKeyRowName is the name the answer-key row carries when it
	// leaks into the data rows.
	answerKeyRowName = "gabarito"
)

// Worksheet layout landmarks (0-indexed rows and columns).
const (
	classLabelRow    = 0
	headerRow        = 1
	answerKeyRow     = 2
	weightRow        = 3
	firstCandidate   = 4
	firstQuestionCol = 4
	scoreCol         = 3
	nameCol          = 2
	identifierCol    = 1
)

// SheetBundle is the successful outcome of parsing one worksheet.
type SheetBundle struct {
	Students  []domain.StudentResult
	Class     string
	Questions map[string]domain.QuestionStats
}

// questionColumn pairs a question label with its column index. Column order
// is the canonical question order within a sheet.
type questionColumn struct {
	col   int
	label string
}

// ParseSheet extracts students and question statistics from one worksheet,
// given its rows as returned by the workbook reader. The second return is
// false when the sheet does not follow the exam layout; that is an expected
// outcome, not an error, and such sheets contribute nothing.
func ParseSheet(fileName, sheetName string, rows [][]string) (*SheetBundle, bool) {
	header := rowCells(rows, headerRow)
	if len(header) == 0 {
		return nil, false
	}
	if normalizeToken(cellAt(header, 0)) != headerNumberToken ||
		normalizeToken(cellAt(header, 1)) != headerIdentifierToken {
		return nil, false
	}

	keyRow := rowCells(rows, answerKeyRow)
	if len(keyRow) == 0 {
		return nil, false
	}
	weights := rowCells(rows, weightRow)

	columns := identifyQuestionColumns(header)
	if len(columns) == 0 {
		return nil, false
	}

	answerKey := make(map[string]string, len(columns))
	questionWeight := make(map[string]float64)
	for _, q := range columns {
		key := NormalizeAnswer(cellAt(keyRow, q.col))
		if key == "" || key == voidSentinel {
			continue
		}
		answerKey[q.label] = key
		if w := cellAt(weights, q.col); IsNumeric(w) {
			questionWeight[q.label] = w.Number
		}
	}

	className := extractClassName(sheetName, rows)

	stats := make(map[string]*domain.QuestionStats, len(answerKey))
	for _, q := range columns {
		key, ok := answerKey[q.label]
		if !ok {
			continue
		}
		stats[q.label] = &domain.QuestionStats{
			Label:  q.label,
			Key:    key,
			Weight: questionWeight[q.label],
		}
	}

	firstRow, ok := findFirstStudentRow(rows)
	if !ok {
		return nil, false
	}

	maxScore := 0.0
	for _, w := range questionWeight {
		maxScore += w
	}

	var students []domain.StudentResult
	for i := firstRow; i < len(rows); i++ {
		cells := rowCells(rows, i)
		if blankRow(cells) {
			continue
		}
		numberCell := cellAt(cells, 0)
		if !IsStudentNumber(numberCell) {
			continue
		}
		name := NormalizeName(cellAt(cells, nameCol))
		if name == "" || strings.ToLower(name) == answerKeyRowName {
			continue
		}

		answers := make(map[string]string, len(answerKey))
		correct := 0
		correctWeight := 0.0
		for _, q := range columns {
			key, graded := answerKey[q.label]
			if !graded {
				continue
			}
			answer := NormalizeAnswer(cellAt(cells, q.col))
			if answer == "" {
				answers[q.label] = ""
				continue
			}
			answers[q.label] = answer
			stats[q.label].Answered++
			if answer == key {
				correct++
				correctWeight += questionWeight[q.label]
				stats[q.label].Correct++
			}
		}

		score := correctWeight
		if scoreCell := cellAt(cells, scoreCol); IsNumeric(scoreCell) {
			score = scoreCell.Number
		}
		score = round2(score)

		students = append(students, domain.StudentResult{
			File:           fileName,
			Sheet:          sheetName,
			Class:          className,
			Number:         formatStudentNumber(numberCell),
			Identifier:     FormatIdentifier(cellAt(cells, identifierCol)),
			Name:           name,
			Score:          score,
			MaxScore:       maxScore,
			ScorePercent:   percentage(score, maxScore),
			Correct:        correct,
			ValidQuestions: len(answerKey),
			CorrectPercent: percentage(float64(correct), float64(len(answerKey))),
			Answers:        answers,
			AnswerKey:      answerKey,
		})
	}
	if len(students) == 0 {
		return nil, false
	}

	questions := make(map[string]domain.QuestionStats, len(stats))
	for label, s := range stats {
		questions[label] = *s
	}
	return &SheetBundle{Students: students, Class: className, Questions: questions}, true
}

// identifyQuestionColumns returns every non-blank header cell at or beyond
// the first question column. A trailing ".0" left over from numeric labels
// is stripped; when stripping empties the label, the column falls back to
// its ordinal within the question block.
func identifyQuestionColumns(header []Cell) []questionColumn {
	var columns []questionColumn
	for col := firstQuestionCol; col < len(header); col++ {
		c := header[col]
		if c.Kind == CellEmpty {
			continue
		}
		label := strings.TrimSuffix(c.Text, ".0")
		if label == "" {
			label = strconv.Itoa(col - firstQuestionCol)
		}
		columns = append(columns, questionColumn{col: col, label: label})
	}
	return columns
}

// extractClassName takes the literal text of the class label cell, strips a
// trailing parenthesized annotation, and falls back to the worksheet title
// when the cell is blank or not textual.
func extractClassName(sheetName string, rows [][]string) string {
	label := cellAt(rowCells(rows, classLabelRow), 0)
	if label.Kind != CellText {
		return sheetName
	}
	name := strings.TrimSpace(strings.SplitN(label.Text, "(", 2)[0])
	if name == "" {
		return sheetName
	}
	return name
}

// findFirstStudentRow locates the first row at or after the candidate data
// region whose leading cell looks like a student number.
func findFirstStudentRow(rows [][]string) (int, bool) {
	for i := firstCandidate; i < len(rows); i++ {
		cells := rowCells(rows, i)
		if len(cells) == 0 {
			continue
		}
		if IsStudentNumber(cellAt(cells, 0)) {
			return i, true
		}
	}
	return 0, false
}

func formatStudentNumber(c Cell) string {
	if c.Kind == CellNumber {
		return strconv.FormatInt(int64(c.Number), 10)
	}
	return c.Text
}

func rowCells(rows [][]string, index int) []Cell {
	if index < 0 || index >= len(rows) {
		return nil
	}
	cells := make([]Cell, len(rows[index]))
	for i, raw := range rows[index] {
		cells[i] = NewCell(raw)
	}
	return cells
}

func cellAt(cells []Cell, index int) Cell {
	if index < 0 || index >= len(cells) {
		return Cell{Kind: CellEmpty}
	}
	return cells[index]
}

func blankRow(cells []Cell) bool {
	for _, c := range cells {
		if c.Kind != CellEmpty {
			return false
		}
	}
	return true
}

func percentage(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return round2(part / whole * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

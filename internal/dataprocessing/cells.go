package dataprocessing

import (
	"math"
	"strconv"
	"strings"
)

// CellKind discriminates the closed set of value shapes a spreadsheet cell
// can take once read. No raw cell value crosses this boundary untyped.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
	CellBool
)

// Cell is a spreadsheet cell value after classification. Text holds the
// trimmed literal for number and text cells; Number is only meaningful for
// CellNumber.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// NewCell classifies one formatted cell value as read from the workbook.
// Whitespace-only values are empty; TRUE/FALSE are booleans; anything that
// parses as a finite float is numeric; the rest is text.
func NewCell(raw string) Cell {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Cell{Kind: CellEmpty}
	}
	if text == "TRUE" || text == "FALSE" {
		return Cell{Kind: CellBool, Text: text}
	}
	if n, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return Cell{Kind: CellNumber, Text: text, Number: n}
	}
	return Cell{Kind: CellText, Text: text}
}

// NormalizeAnswer returns the upper-cased trimmed answer, or "" when the
// cell is blank.
func NormalizeAnswer(c Cell) string {
	if c.Kind == CellEmpty {
		return ""
	}
	return strings.ToUpper(c.Text)
}

// NormalizeName returns the trimmed name text, or "" when blank.
func NormalizeName(c Cell) string {
	if c.Kind == CellEmpty {
		return ""
	}
	return c.Text
}

// FormatIdentifier renders an identifier cell as text. Identifiers stored as
// numbers with a fractional or exponent representation are recovered as
// their integer text form; everything else keeps its trimmed literal.
func FormatIdentifier(c Cell) string {
	if c.Kind == CellEmpty {
		return ""
	}
	if c.Kind == CellNumber && strings.ContainsAny(c.Text, ".eE") {
		return strconv.FormatInt(int64(c.Number), 10)
	}
	return c.Text
}

// IsStudentNumber reports whether the cell can head a student data row:
// a numeric cell, or a text cell consisting solely of digits.
func IsStudentNumber(c Cell) bool {
	switch c.Kind {
	case CellNumber:
		return true
	case CellText:
		for _, r := range c.Text {
			if r < '0' || r > '9' {
				return false
			}
		}
		return c.Text != ""
	default:
		return false
	}
}

// IsNumeric reports whether the cell holds a non-boolean numeric value.
func IsNumeric(c Cell) bool {
	return c.Kind == CellNumber
}

// normalizeToken lower-cases a cell's trimmed text for case-insensitive
// header comparisons.
func normalizeToken(c Cell) string {
	return strings.ToLower(c.Text)
}

package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"leitor/pkg/contracts/domain"
)

// utf8BOM makes Excel detect the encoding instead of assuming Latin-1.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Options configures the CSV output.
type Options struct {
	// Comma is the field delimiter. The zero value selects ';', which is
	// what pt-BR Excel expects.
	Comma rune
	// DecimalComma formats scores with a comma separator ("7,5") when set.
	DecimalComma bool
	// BOMPrefix prepends a UTF-8 BOM for Excel compatibility.
	BOMPrefix bool
}

// DefaultOptions returns the options used by the download endpoint.
func DefaultOptions() Options {
	return Options{Comma: ';', DecimalComma: true, BOMPrefix: true}
}

var studentHeaders = []string{
	"arquivo", "aba", "turma", "numero", "nome",
	"nota", "nota_maxima", "acertos", "questoes_validas", "situacao",
}

// WriteStudents streams the student results as CSV. Rows follow the order
// of the input slice, so callers pass an already filtered and sorted view.
func WriteStudents(w io.Writer, students []domain.StudentResult, opts Options) error {
	if opts.Comma == 0 {
		opts.Comma = ';'
	}

	if opts.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	writer.Comma = opts.Comma

	if err := writer.Write(studentHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, student := range students {
		record := []string{
			student.File,
			student.Sheet,
			student.Class,
			student.Number,
			student.Name,
			formatScore(student.Score, opts.DecimalComma),
			formatScore(student.MaxScore, opts.DecimalComma),
			fmt.Sprintf("%d", student.Correct),
			fmt.Sprintf("%d", student.ValidQuestions),
			statusLabel(student.Status),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatScore(value float64, decimalComma bool) string {
	formatted := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
	if formatted == "" || formatted == "-" {
		formatted = "0"
	}
	if decimalComma {
		formatted = strings.ReplaceAll(formatted, ".", ",")
	}
	return formatted
}

func statusLabel(status *domain.StatusInfo) string {
	if status == nil {
		return ""
	}
	return status.Label
}

package exporter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leitor/pkg/contracts/domain"
)

func sampleStudents() []domain.StudentResult {
	return []domain.StudentResult{
		{
			File:           "prova1.xlsx",
			Sheet:          "3A",
			Class:          "3A",
			Number:         "1",
			Name:           "Ana Souza",
			Score:          7.5,
			MaxScore:       10,
			Correct:        15,
			ValidQuestions: 20,
			Status:         &domain.StatusInfo{ID: "bom", Label: "Bom"},
		},
		{
			File:           "prova1.xlsx",
			Sheet:          "3B",
			Class:          "3B",
			Number:         "2",
			Name:           "Bruno Lima",
			Score:          4,
			MaxScore:       10,
			Correct:        8,
			ValidQuestions: 20,
		},
	}
}

func TestWriteStudentsDefaultOptions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStudents(&buf, sampleStudents(), DefaultOptions()))

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, utf8BOM), "BOM prefix expected")

	reader := csv.NewReader(bytes.NewReader(raw[len(utf8BOM):]))
	reader.Comma = ';'
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, studentHeaders, records[0])
	assert.Equal(t, []string{"prova1.xlsx", "3A", "3A", "1", "Ana Souza", "7,5", "10", "15", "20", "Bom"}, records[1])
	assert.Equal(t, "4", records[2][5])
	assert.Empty(t, records[2][9], "missing status exports as empty")
}

func TestWriteStudentsPlainOptions(t *testing.T) {
	var buf bytes.Buffer
	err := WriteStudents(&buf, sampleStudents(), Options{Comma: ',', DecimalComma: false})
	require.NoError(t, err)

	out := buf.String()
	assert.False(t, strings.HasPrefix(out, string(utf8BOM)))
	assert.Contains(t, out, "Ana Souza,7.5,10")
}

func TestWriteStudentsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStudents(&buf, nil, Options{}))

	reader := csv.NewReader(&buf)
	reader.Comma = ';'
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "headers only")
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		value float64
		comma bool
		want  string
	}{
		{7.5, true, "7,5"},
		{7.5, false, "7.5"},
		{10, true, "10"},
		{0, true, "0"},
		{6.25, true, "6,25"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatScore(tt.value, tt.comma))
	}
}

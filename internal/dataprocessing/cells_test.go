package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCell(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want CellKind
	}{
		{name: "empty", raw: "", want: CellEmpty},
		{name: "whitespace only", raw: "   ", want: CellEmpty},
		{name: "integer", raw: "42", want: CellNumber},
		{name: "decimal", raw: "7.5", want: CellNumber},
		{name: "scientific", raw: "2.22e+10", want: CellNumber},
		{name: "boolean true", raw: "TRUE", want: CellBool},
		{name: "boolean false", raw: "FALSE", want: CellBool},
		{name: "plain text", raw: "Ana Souza", want: CellText},
		{name: "padded text", raw: "  GABARITO  ", want: CellText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewCell(tt.raw).Kind)
		})
	}
}

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "blank is absent", raw: "", want: ""},
		{name: "whitespace is absent", raw: " \t ", want: ""},
		{name: "upper-cases", raw: "a", want: "A"},
		{name: "trims", raw: " b ", want: "B"},
		{name: "keeps sentinel", raw: "##", want: "##"},
		{name: "numeric answer", raw: "00", want: "00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAnswer(NewCell(tt.raw)))
		})
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "", NormalizeName(NewCell("  ")))
	assert.Equal(t, "Ana Souza", NormalizeName(NewCell("  Ana Souza ")))
}

func TestFormatIdentifier(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "blank", raw: "", want: ""},
		{name: "zero padded text preserved", raw: "00123456789", want: "00123456789"},
		{name: "decimal recovered as integer", raw: "22222222222.0", want: "22222222222"},
		{name: "scientific recovered as integer", raw: "1.2345678901e+10", want: "12345678901"},
		{name: "plain text trimmed", raw: " AB-12 ", want: "AB-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatIdentifier(NewCell(tt.raw)))
		})
	}
}

func TestIsStudentNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{raw: "1", want: true},
		{raw: "007", want: true},
		{raw: "3.5", want: true},
		{raw: "", want: false},
		{raw: "TRUE", want: false},
		{raw: "12a", want: false},
		{raw: "Aluno", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStudentNumber(NewCell(tt.raw)))
		})
	}
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric(NewCell("8.25")))
	assert.False(t, IsNumeric(NewCell("TRUE")))
	assert.False(t, IsNumeric(NewCell("")))
	assert.False(t, IsNumeric(NewCell("oito")))
}

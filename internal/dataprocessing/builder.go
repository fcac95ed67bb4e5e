package dataprocessing

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/xuri/excelize/v2"

	"leitor/internal/files"
	"leitor/pkg/contracts/domain"
)

// Builder assembles a Dataset from every spreadsheet in the source
// directory. Files are visited in path order and worksheets in file order,
// so student order is reproducible across rebuilds.
type Builder struct {
	dir    string
	logger *slog.Logger
}

// NewBuilder creates a dataset builder over the given source directory.
func NewBuilder(dir string, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{dir: dir, logger: logger.With(slog.String("component", "dataset_builder"))}
}

// Build reads every spreadsheet and merges the per-sheet bundles into one
// dataset. A missing source directory yields an empty dataset; a workbook
// that cannot be opened fails the whole build.
func (b *Builder) Build(ctx context.Context) (*domain.Dataset, error) {
	sheets, err := files.ListSpreadsheets(b.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			b.logger.InfoContext(ctx, "spreadsheet directory absent, serving empty dataset",
				slog.String("dir", b.dir))
			return domain.EmptyDataset(), nil
		}
		return nil, err
	}

	var students []domain.StudentResult
	questions := make(map[string]domain.QuestionStats)
	classSet := make(map[string]struct{})
	fileSet := make(map[string]struct{})

	for _, file := range sheets {
		parsed, err := b.buildFile(file, &students, questions, classSet)
		if err != nil {
			return nil, err
		}
		if parsed {
			fileSet[file.Name] = struct{}{}
		}
	}

	dataset := &domain.Dataset{
		Classes:   sortedKeys(classSet),
		Files:     sortedKeys(fileSet),
		Students:  students,
		Questions: questions,
	}
	if dataset.Students == nil {
		dataset.Students = []domain.StudentResult{}
	}
	b.logger.InfoContext(ctx, "dataset built",
		slog.Int("files", len(dataset.Files)),
		slog.Int("students", len(dataset.Students)),
		slog.Int("questions", len(dataset.Questions)))
	return dataset, nil
}

// buildFile parses every worksheet of one workbook, reporting whether any
// sheet contributed data.
func (b *Builder) buildFile(file files.FileInfo, students *[]domain.StudentResult, questions map[string]domain.QuestionStats, classSet map[string]struct{}) (bool, error) {
	workbook, err := excelize.OpenFile(file.Path)
	if err != nil {
		return false, fmt.Errorf("open workbook %s: %w", file.Name, err)
	}
	defer workbook.Close()

	parsed := false
	for _, sheetName := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(sheetName)
		if err != nil {
			return false, fmt.Errorf("read sheet %s of %s: %w", sheetName, file.Name, err)
		}
		bundle, ok := ParseSheet(file.Name, sheetName, rows)
		if !ok {
			continue
		}
		parsed = true
		*students = append(*students, bundle.Students...)
		classSet[bundle.Class] = struct{}{}
		mergeQuestions(questions, bundle.Questions)
	}
	return parsed, nil
}

// mergeQuestions folds a per-sheet question bank into the global one.
// Answer counters accumulate; the correct answer and the weight keep the
// first non-empty and first non-zero value seen.
func mergeQuestions(global map[string]domain.QuestionStats, sheet map[string]domain.QuestionStats) {
	for label, incoming := range sheet {
		entry, ok := global[label]
		if !ok {
			global[label] = incoming
			continue
		}
		entry.Answered += incoming.Answered
		entry.Correct += incoming.Correct
		if entry.Key == "" {
			entry.Key = incoming.Key
		}
		if entry.Weight == 0 {
			entry.Weight = incoming.Weight
		}
		global[label] = entry
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

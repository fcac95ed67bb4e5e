// Package services wires the dataset cache and the aggregation layer into
// the operations the HTTP handlers expose: the student table, insights,
// question metrics, chart data and the spreadsheet upload flow.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"leitor/internal/config"
	"leitor/internal/dataprocessing"
	apierrors "leitor/internal/errors"
	"leitor/internal/files"
	"leitor/internal/roster"
	"leitor/pkg/contracts/domain"
)

// StudentsPerPage is the page size of the student table.
const StudentsPerPage = 50

// DatasetCache is the cache dependency of the service.
type DatasetCache interface {
	Load(ctx context.Context) (*domain.Dataset, error)
	Invalidate()
}

// RosterStore persists the class roster reconciled from the dataset.
type RosterStore interface {
	Reconcile(ctx context.Context, observed []string) error
	List(ctx context.Context) ([]roster.Class, error)
}

// StudentQuery carries the table parameters of one student listing request.
type StudentQuery struct {
	Filter        domain.StudentFilter
	SortField     string
	SortDirection string
	Page          int
}

// StudentTable is the paginated, filtered and sorted student view.
type StudentTable struct {
	Students      []domain.StudentResult `json:"students"`
	Total         int                    `json:"total"`
	FilteredTotal int                    `json:"filtered_total"`
	Page          int                    `json:"page"`
	TotalPages    int                    `json:"total_pages"`
	SortField     string                 `json:"sort_field"`
	SortDirection string                 `json:"sort_direction"`
	Classes       []string               `json:"classes"`
	Files         []string               `json:"files"`
	Filter        domain.StudentFilter   `json:"filter"`
}

// QuestionView bundles everything the questions page shows.
type QuestionView struct {
	Questions []domain.QuestionMetric `json:"questions"`
	Overview  domain.QuestionOverview `json:"overview"`
	Best      []domain.QuestionMetric `json:"best"`
	Worst     []domain.QuestionMetric `json:"worst"`
	Chart     domain.QuestionChart    `json:"chart"`
	Search    string                  `json:"search"`
}

// DatasetService exposes the dataset-backed read and upload operations.
type DatasetService struct {
	cfg    *config.Config
	cache  DatasetCache
	roster RosterStore
	logger *slog.Logger
}

// NewDatasetService creates the service over a cache and a roster store.
func NewDatasetService(cfg *config.Config, cache DatasetCache, rosterStore RosterStore, logger *slog.Logger) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetService{
		cfg:    cfg,
		cache:  cache,
		roster: rosterStore,
		logger: logger.With(slog.String("component", "dataset_service")),
	}
}

// Students returns one page of the student table. A class filter naming a
// class absent from the dataset is dropped rather than rejected, so stale
// bookmarked URLs degrade to the unfiltered view.
func (s *DatasetService) Students(ctx context.Context, query StudentQuery) (*StudentTable, error) {
	dataset, err := s.cache.Load(ctx)
	if err != nil {
		return nil, err
	}

	filter := query.Filter
	if filter.Class != "" && !contains(dataset.Classes, filter.Class) {
		filter.Class = ""
	}

	filtered := dataprocessing.ApplyFilter(dataset.Students, filter)
	filtered = dataprocessing.Deduplicate(filtered)
	filtered = dataprocessing.AnnotateStatus(filtered)

	sorted, sortField, sortDirection := dataprocessing.SortStudents(
		filtered, query.SortField, query.SortDirection,
		domain.SortByScore, domain.SortDesc)

	page, totalPages, items := paginate(sorted, query.Page, StudentsPerPage)

	return &StudentTable{
		Students:      items,
		Total:         len(dataset.Students),
		FilteredTotal: len(sorted),
		Page:          page,
		TotalPages:    totalPages,
		SortField:     sortField,
		SortDirection: sortDirection,
		Classes:       dataset.Classes,
		Files:         dataset.Files,
		Filter:        filter,
	}, nil
}

// ExportStudents returns the full filtered, sorted student set for a CSV
// download. Pagination does not apply: exports carry every matching row.
func (s *DatasetService) ExportStudents(ctx context.Context, query StudentQuery) ([]domain.StudentResult, error) {
	dataset, err := s.cache.Load(ctx)
	if err != nil {
		return nil, err
	}

	filter := query.Filter
	if filter.Class != "" && !contains(dataset.Classes, filter.Class) {
		filter.Class = ""
	}

	filtered := dataprocessing.ApplyFilter(dataset.Students, filter)
	filtered = dataprocessing.Deduplicate(filtered)
	filtered = dataprocessing.AnnotateStatus(filtered)

	sorted, _, _ := dataprocessing.SortStudents(
		filtered, query.SortField, query.SortDirection,
		domain.SortByScore, domain.SortDesc)

	return sorted, nil
}

// Insights computes the aggregate view over the filtered, deduplicated
// student set.
func (s *DatasetService) Insights(ctx context.Context, filter domain.StudentFilter) (*domain.Insights, error) {
	students, err := s.filteredStudents(ctx, filter)
	if err != nil {
		return nil, err
	}
	insights := dataprocessing.BuildInsights(students)
	return &insights, nil
}

// Visual computes the chart payloads over the filtered student set.
func (s *DatasetService) Visual(ctx context.Context, filter domain.StudentFilter) (*domain.VisualData, error) {
	students, err := s.filteredStudents(ctx, filter)
	if err != nil {
		return nil, err
	}
	insights := dataprocessing.BuildInsights(students)
	visual := dataprocessing.BuildVisualData(students, insights)
	return &visual, nil
}

// Questions returns per-question metrics computed over the filtered,
// deduplicated student set. The label search narrows the metric set itself,
// so the overview and best/worst lists describe the searched subset.
func (s *DatasetService) Questions(ctx context.Context, filter domain.StudentFilter, search string) (*QuestionView, error) {
	dataset, err := s.cache.Load(ctx)
	if err != nil {
		return nil, err
	}

	if filter.Class != "" && !contains(dataset.Classes, filter.Class) {
		filter.Class = ""
	}
	students := dataprocessing.ApplyFilter(dataset.Students, filter)
	students = dataprocessing.Deduplicate(students)

	metrics := dataprocessing.BuildQuestionMetrics(students, dataset.Questions)
	visible := dataprocessing.FilterQuestionMetrics(metrics, search)

	return &QuestionView{
		Questions: visible,
		Overview:  dataprocessing.SummarizeQuestionMetrics(visible),
		Best:      dataprocessing.BestQuestions(visible, 5),
		Worst:     dataprocessing.WorstQuestions(visible, 5),
		Chart:     dataprocessing.QuestionChartSeries(visible),
		Search:    strings.TrimSpace(search),
	}, nil
}

// Classes returns the sorted class list of the current dataset.
func (s *DatasetService) Classes(ctx context.Context) ([]string, error) {
	dataset, err := s.cache.Load(ctx)
	if err != nil {
		return nil, err
	}
	return dataset.Classes, nil
}

// Files returns the spreadsheet files contributing to the current dataset.
func (s *DatasetService) Files(ctx context.Context) ([]string, error) {
	dataset, err := s.cache.Load(ctx)
	if err != nil {
		return nil, err
	}
	return dataset.Files, nil
}

// SaveSpreadsheet runs the upload flow: the file is persisted first and
// only then probed, so a rejected workbook must be deleted again before
// returning. A workbook that opens but yields no students is equally
// rejected; the cache is re-invalidated after the delete so readers never
// see the phantom file.
func (s *DatasetService) SaveSpreadsheet(ctx context.Context, filename string, src io.Reader) error {
	if !strings.HasSuffix(strings.ToLower(filename), files.SpreadsheetExt) {
		return fmt.Errorf("save %s: %w", filename, apierrors.ErrNotSpreadsheet)
	}
	if filepath.Base(filename) != filename {
		return fmt.Errorf("save %s: %w", filename, apierrors.ErrNotSpreadsheet)
	}

	dir := s.cfg.Paths.SpreadsheetsDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create spreadsheets dir: %w", err)
	}

	destination := filepath.Join(dir, filename)
	if err := writeFile(destination, src, s.cfg.Upload.MaxSizeBytes); err != nil {
		return err
	}

	if err := files.ProbeWorkbook(destination); err != nil {
		os.Remove(destination)
		s.logger.WarnContext(ctx, "uploaded file is not a readable workbook",
			slog.String("file", filename),
			slog.String("error", err.Error()))
		return fmt.Errorf("open %s: %w", filename, apierrors.ErrWorkbookOpen)
	}

	s.cache.Invalidate()
	dataset, err := s.cache.Load(ctx)
	if err != nil {
		return err
	}

	if !fileHasStudents(dataset, filename) {
		os.Remove(destination)
		s.cache.Invalidate()
		s.logger.WarnContext(ctx, "uploaded workbook has no recognizable exam sheet",
			slog.String("file", filename))
		return fmt.Errorf("parse %s: %w", filename, apierrors.ErrWorkbookEmpty)
	}

	if err := s.roster.Reconcile(ctx, dataset.Classes); err != nil {
		// The upload itself succeeded; a roster failure is logged, not
		// surfaced to the uploader.
		s.logger.ErrorContext(ctx, "roster reconciliation failed",
			slog.String("error", err.Error()))
	}

	s.logger.InfoContext(ctx, "spreadsheet saved",
		slog.String("file", filename),
		slog.Int("students", len(dataset.Students)))
	return nil
}

// SyncRoster reconciles the roster against the current dataset and returns
// the observed class list.
func (s *DatasetService) SyncRoster(ctx context.Context) ([]string, error) {
	dataset, err := s.cache.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.roster.Reconcile(ctx, dataset.Classes); err != nil {
		return nil, err
	}
	return dataset.Classes, nil
}

func (s *DatasetService) filteredStudents(ctx context.Context, filter domain.StudentFilter) ([]domain.StudentResult, error) {
	dataset, err := s.cache.Load(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Class != "" && !contains(dataset.Classes, filter.Class) {
		filter.Class = ""
	}
	filtered := dataprocessing.ApplyFilter(dataset.Students, filter)
	return dataprocessing.Deduplicate(filtered), nil
}

// writeFile streams the upload to disk, enforcing the size limit while
// copying. An oversized upload leaves no partial file behind.
func writeFile(path string, src io.Reader, maxSize int64) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	written, err := io.Copy(dst, io.LimitReader(src, maxSize+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if written > maxSize {
		os.Remove(path)
		return fmt.Errorf("write %s: %w", filepath.Base(path), apierrors.ErrFileTooLarge)
	}
	return nil
}

func fileHasStudents(dataset *domain.Dataset, filename string) bool {
	for i := range dataset.Students {
		if dataset.Students[i].File == filename {
			return true
		}
	}
	return false
}

// paginate clamps the requested page into range and slices one page out.
func paginate(students []domain.StudentResult, page, perPage int) (int, int, []domain.StudentResult) {
	totalPages := (len(students) + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(students) {
		start = len(students)
	}
	if end > len(students) {
		end = len(students)
	}
	return page, totalPages, students[start:end]
}

func contains(values []string, target string) bool {
	idx := sort.SearchStrings(values, target)
	return idx < len(values) && values[idx] == target
}

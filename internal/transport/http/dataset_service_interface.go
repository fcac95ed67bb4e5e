package http

import (
	"context"
	"io"

	"leitor/internal/services"
	"leitor/pkg/contracts/domain"
)

// DatasetServiceInterface defines the dataset operations the handlers use.
// Tests substitute a stub implementation.
type DatasetServiceInterface interface {
	Students(ctx context.Context, query services.StudentQuery) (*services.StudentTable, error)
	ExportStudents(ctx context.Context, query services.StudentQuery) ([]domain.StudentResult, error)
	Insights(ctx context.Context, filter domain.StudentFilter) (*domain.Insights, error)
	Visual(ctx context.Context, filter domain.StudentFilter) (*domain.VisualData, error)
	Questions(ctx context.Context, filter domain.StudentFilter, search string) (*services.QuestionView, error)
	Classes(ctx context.Context) ([]string, error)
	Files(ctx context.Context) ([]string, error)
	SaveSpreadsheet(ctx context.Context, filename string, src io.Reader) error
	SyncRoster(ctx context.Context) ([]string, error)
}

package http

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "leitor/internal/errors"
	"leitor/internal/exporter"
	custommw "leitor/internal/middleware"
	"leitor/internal/services"
	"leitor/pkg/contracts/domain"
)

// uploadFormField is the multipart field carrying the spreadsheet.
const uploadFormField = "arquivo"

// sortableFields are the sort values the export endpoint accepts.
var sortableFields = []string{
	domain.SortByName, domain.SortByClass, domain.SortByScore,
	domain.SortByScorePercent, domain.SortByCorrect,
	domain.SortByCorrectPercent, domain.SortByFile, domain.SortByStatus,
}

// DatasetHandler handles the dataset HTTP endpoints with RFC 7807 errors.
type DatasetHandler struct {
	service      DatasetServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validation   *custommw.ValidationMiddleware
	queryParams  *custommw.QueryParamValidator
	maxUploadMem int64
}

// NewDatasetHandler creates a new dataset handler.
func NewDatasetHandler(service DatasetServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DatasetHandler {
	return &DatasetHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dataset_handler")),
		errorHandler: errorHandler,
		validation:   custommw.NewValidationMiddleware(logger, errorHandler),
		queryParams:  custommw.NewQueryParamValidator(logger, errorHandler),
		maxUploadMem: 4 << 20,
	}
}

// uploadRequest carries the validated upload metadata.
type uploadRequest struct {
	Filename string `json:"arquivo" validate:"required,filename"`
}

// Routes returns the dataset routes.
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/students", h.GetStudents)
	r.Get("/students/export", h.ExportStudents)
	r.Get("/classes", h.GetClasses)
	r.Get("/files", h.GetFiles)
	r.Get("/insights", h.GetInsights)
	r.Get("/questions", h.GetQuestions)
	r.Get("/visual", h.GetVisual)

	r.Post("/spreadsheets", h.UploadSpreadsheet)
	r.Post("/roster/sync", h.SyncRoster)

	return r
}

// GetStudents handles GET /api/students.
func (h *DatasetHandler) GetStudents(w http.ResponseWriter, r *http.Request) {
	query := services.StudentQuery{
		Filter:        filterFromQuery(r.URL.Query()),
		SortField:     r.URL.Query().Get("sort"),
		SortDirection: r.URL.Query().Get("direction"),
	}
	if page := r.URL.Query().Get("page"); page != "" {
		if n, err := strconv.Atoi(page); err == nil {
			query.Page = n
		}
	}

	table, err := h.service.Students(r.Context(), query)
	if err != nil {
		h.handleError(w, r, "failed to build student table", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   table,
	})
}

// ExportStudents handles GET /api/students/export. It streams the filtered
// student set as an Excel-friendly CSV download.
func (h *DatasetHandler) ExportStudents(w http.ResponseWriter, r *http.Request) {
	sortField, ok := h.queryParams.ValidateEnum(w, r, "sort", sortableFields, domain.SortByScore)
	if !ok {
		return
	}
	direction, ok := h.queryParams.ValidateEnum(w, r, "direction",
		[]string{domain.SortAsc, domain.SortDesc}, domain.SortDesc)
	if !ok {
		return
	}

	query := services.StudentQuery{
		Filter:        filterFromQuery(r.URL.Query()),
		SortField:     sortField,
		SortDirection: direction,
	}

	students, err := h.service.ExportStudents(r.Context(), query)
	if err != nil {
		h.handleError(w, r, "failed to export students", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="alunos.csv"`)

	if err := exporter.WriteStudents(w, students, exporter.DefaultOptions()); err != nil {
		// Headers are already sent; all we can do is log.
		h.logger.ErrorContext(r.Context(), "failed to stream csv export",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetReqID(r.Context())))
	}
}

// GetClasses handles GET /api/classes.
func (h *DatasetHandler) GetClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.service.Classes(r.Context())
	if err != nil {
		h.handleError(w, r, "failed to list classes", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   classes,
		"count":  len(classes),
	})
}

// GetFiles handles GET /api/files.
func (h *DatasetHandler) GetFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.service.Files(r.Context())
	if err != nil {
		h.handleError(w, r, "failed to list files", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   files,
		"count":  len(files),
	})
}

// GetInsights handles GET /api/insights.
func (h *DatasetHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.service.Insights(r.Context(), filterFromQuery(r.URL.Query()))
	if err != nil {
		h.handleError(w, r, "failed to build insights", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   insights,
	})
}

// GetQuestions handles GET /api/questions.
func (h *DatasetHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Questions(r.Context(), filterFromQuery(r.URL.Query()), r.URL.Query().Get("busca"))
	if err != nil {
		h.handleError(w, r, "failed to build question metrics", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
	})
}

// GetVisual handles GET /api/visual.
func (h *DatasetHandler) GetVisual(w http.ResponseWriter, r *http.Request) {
	visual, err := h.service.Visual(r.Context(), filterFromQuery(r.URL.Query()))
	if err != nil {
		h.handleError(w, r, "failed to build visual data", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   visual,
	})
}

// UploadSpreadsheet handles POST /api/spreadsheets (multipart form).
func (h *DatasetHandler) UploadSpreadsheet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	file, header, err := h.uploadedFile(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(uploadFormField, "a spreadsheet file is required"))
		return
	}
	defer file.Close()

	if err := h.validation.ValidateStruct(uploadRequest{Filename: header.Filename}); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "spreadsheet upload received",
		slog.String("request_id", reqID),
		slog.String("file", header.Filename),
		slog.Int64("size", header.Size),
	)

	if err := h.service.SaveSpreadsheet(r.Context(), header.Filename, file); err != nil {
		h.logger.WarnContext(r.Context(), "spreadsheet upload rejected",
			slog.String("request_id", reqID),
			slog.String("file", header.Filename),
			slog.String("error", err.Error()),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"file":   header.Filename,
	})
}

// SyncRoster handles POST /api/roster/sync.
func (h *DatasetHandler) SyncRoster(w http.ResponseWriter, r *http.Request) {
	classes, err := h.service.SyncRoster(r.Context())
	if err != nil {
		h.handleError(w, r, "roster sync failed", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":  "success",
		"classes": classes,
	})
}

func (h *DatasetHandler) uploadedFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(h.maxUploadMem); err != nil {
		return nil, nil, err
	}
	file, header, err := r.FormFile(uploadFormField)
	if err == nil {
		return file, header, nil
	}
	// Accept the generic field name as well.
	if errors.Is(err, http.ErrMissingFile) {
		return r.FormFile("file")
	}
	return nil, nil, err
}

func (h *DatasetHandler) handleError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg,
		slog.String("error", err.Error()),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	h.errorHandler.HandleError(w, r, err)
}

// filterFromQuery extracts the student filter from query parameters.
// Score bounds accept the decimal comma; unparseable values are treated as
// absent rather than rejected.
func filterFromQuery(values url.Values) domain.StudentFilter {
	return domain.StudentFilter{
		Class:    strings.TrimSpace(values.Get("turma")),
		File:     strings.TrimSpace(values.Get("arquivo")),
		Name:     strings.TrimSpace(values.Get("nome")),
		ScoreMin: parseScore(values.Get("nota_min")),
		ScoreMax: parseScore(values.Get("nota_max")),
	}
}

func parseScore(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return nil
	}
	return &value
}

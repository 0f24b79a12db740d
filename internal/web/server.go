// Package web implements the bindery upload service.
//
// The service serves a single upload form, runs the imposition pipeline on
// submitted PDFs, and hands out download links to the generated booklet
// files. Artifacts live in a store with a retention window; a background
// sweep removes expired runs.
package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/binderykit/bindery/internal/config"
	"github.com/binderykit/bindery/pkg/errors"
	"github.com/binderykit/bindery/pkg/paper"
	"github.com/binderykit/bindery/pkg/pipeline"
	"github.com/binderykit/bindery/pkg/store"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Server handles the upload form and artifact downloads.
type Server struct {
	cfg    config.Config
	store  store.Store
	index  store.Index
	runner *pipeline.Runner
	logger *log.Logger
	tmpl   *template.Template
}

// New creates a server backed by the given artifact store and index.
func New(cfg config.Config, st store.Store, idx store.Index, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parsing templates")
	}
	return &Server{
		cfg:    cfg,
		store:  st,
		index:  idx,
		runner: pipeline.NewRunner(st, idx, logger),
		logger: logger,
		tmpl:   tmpl,
	}, nil
}

// Router builds the HTTP route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Post("/impose", s.handleImpose)
	r.Get("/artifacts/{id}/{filename}", s.handleArtifact)

	return r
}

// logRequests logs each request with method, path, status, and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

// =============================================================================
// Page Data
// =============================================================================

// formValues echoes the submitted form back into the template so a failed
// request keeps the user's choices.
type formValues struct {
	PaperSize      string
	Sheets         int
	Flyleafs       int
	DuplexRotate   bool
	CustomWidthMM  string
	CustomHeightMM string
	ScalingMode    string
	PagePosition   string
	OutputMode     string
	CropMarks      bool
	FoldMarks      bool
	SignatureOrder bool
}

// download is one generated file offered on the result page.
type download struct {
	URL       string
	Filename  string
	PageCount int
}

// pageData is the template context for the index page.
type pageData struct {
	PaperSizes []string
	Form       formValues
	Error      string
	Result     *resultData
	Recent     []store.Artifact
}

// resultData summarizes a successful run.
type resultData struct {
	Message     string
	Signatures  int
	OutputPages int
	Downloads   []download
	PreviewURL  string
}

// defaultForm seeds the form with the configured defaults.
func (s *Server) defaultForm() formValues {
	return formValues{
		PaperSize:    s.cfg.Defaults.Paper,
		Sheets:       s.cfg.Defaults.Sheets,
		ScalingMode:  s.cfg.Defaults.Scaling,
		PagePosition: s.cfg.Defaults.Position,
		OutputMode:   pipeline.OutputAggregated,
	}
}

// render writes the index template with the given data and status code.
func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	data.PaperSizes = paper.Names()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, "index.html.tmpl", data); err != nil {
		s.logger.Error("rendering template", "err", err)
	}
}

// renderError re-renders the form with an error banner.
func (s *Server) renderError(w http.ResponseWriter, status int, form formValues, message string) {
	s.render(w, status, pageData{Form: form, Error: message})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{Form: s.defaultForm()}
	if s.index != nil {
		recent, err := s.index.Recent(r.Context(), 10)
		if err != nil {
			s.logger.Warn("listing recent artifacts", "err", err)
		}
		data.Recent = recent
	}
	s.render(w, http.StatusOK, data)
}

func (s *Server) handleImpose(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		s.renderError(w, http.StatusBadRequest, s.defaultForm(), "The uploaded file is too large.")
		return
	}

	form := s.parseForm(r)

	file, header, err := r.FormFile("file")
	if err != nil || header.Filename == "" {
		s.renderError(w, http.StatusBadRequest, form, "Upload a PDF file to continue.")
		return
	}
	defer file.Close()

	sourceName := filepath.Base(header.Filename)
	if strings.ToLower(filepath.Ext(sourceName)) != ".pdf" {
		s.renderError(w, http.StatusBadRequest, form, "Only .pdf uploads are supported.")
		return
	}

	tmpPath, size, err := s.saveUpload(file)
	if tmpPath != "" {
		defer os.Remove(tmpPath)
	}
	if err != nil {
		s.logger.Error("saving upload", "err", err)
		s.renderError(w, http.StatusInternalServerError, form, "The upload could not be stored. Try again.")
		return
	}
	if size == 0 {
		s.renderError(w, http.StatusBadRequest, form, "The uploaded file is empty.")
		return
	}

	opts, err := s.pipelineOptions(form, tmpPath, sourceName)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, form, errors.UserMessage(err))
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		status := http.StatusBadRequest
		message := errors.UserMessage(err)
		switch errors.GetCode(err) {
		case errors.ErrCodePDF:
			message = "The file could not be read as a valid PDF."
		case errors.ErrCodeIO, errors.ErrCodeInternal:
			status = http.StatusInternalServerError
		}
		s.renderError(w, status, form, message)
		return
	}

	s.render(w, http.StatusOK, pageData{Form: form, Result: s.resultData(result)})
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	filename := chi.URLParam(r, "filename")

	path, err := s.store.Path(r.Context(), id, filename)
	if err != nil {
		switch errors.GetCode(err) {
		case errors.ErrCodeNotFound:
			http.Error(w, "File not found", http.StatusNotFound)
		case errors.ErrCodeInvalidInput:
			http.Error(w, "Invalid filename", http.StatusBadRequest)
		default:
			http.Error(w, "Internal error", http.StatusInternalServerError)
		}
		return
	}

	if etag, err := store.HashFile(path); err == nil {
		w.Header().Set("ETag", `"`+etag+`"`)
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeFile(w, r, path)
}

// =============================================================================
// Helpers
// =============================================================================

// parseForm reads the imposition controls from the multipart form, falling
// back to the configured defaults for missing values.
func (s *Server) parseForm(r *http.Request) formValues {
	form := s.defaultForm()
	if v := r.FormValue("paper_size"); v != "" {
		form.PaperSize = v
	}
	if v := r.FormValue("signature_length"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			form.Sheets = n
		}
	}
	if v := r.FormValue("flyleafs"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			form.Flyleafs = n
		}
	}
	form.DuplexRotate = r.FormValue("duplex_rotate") != ""
	form.CustomWidthMM = strings.TrimSpace(r.FormValue("custom_width_mm"))
	form.CustomHeightMM = strings.TrimSpace(r.FormValue("custom_height_mm"))
	if v := r.FormValue("scaling_mode"); v != "" {
		form.ScalingMode = v
	}
	if v := r.FormValue("page_position"); v != "" {
		form.PagePosition = v
	}
	if v := r.FormValue("output_mode"); v != "" {
		form.OutputMode = v
	}
	form.CropMarks = r.FormValue("crop_marks") != ""
	form.FoldMarks = r.FormValue("fold_marks") != ""
	form.SignatureOrder = r.FormValue("signature_order") != ""
	return form
}

// pipelineOptions converts the form into validated pipeline options. Custom
// dimensions are parsed here so malformed numbers surface as form errors.
func (s *Server) pipelineOptions(form formValues, tmpPath, sourceName string) (pipeline.Options, error) {
	opts := pipeline.Options{
		Source:         tmpPath,
		SourceName:     sourceName,
		Sheets:         form.Sheets,
		Flyleafs:       form.Flyleafs,
		DuplexRotate:   form.DuplexRotate,
		PaperSize:      form.PaperSize,
		Scaling:        form.ScalingMode,
		Position:       form.PagePosition,
		CropMarks:      form.CropMarks,
		FoldMarks:      form.FoldMarks,
		SignatureOrder: form.SignatureOrder,
		OutputMode:     form.OutputMode,
		Preview:        true,
		Logger:         s.logger,
	}

	if form.CustomWidthMM != "" || form.CustomHeightMM != "" {
		width, errW := strconv.ParseFloat(form.CustomWidthMM, 64)
		height, errH := strconv.ParseFloat(form.CustomHeightMM, 64)
		if errW != nil || errH != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput,
				"custom paper dimensions must be numbers in millimeters")
		}
		opts.CustomWidthMM = width
		opts.CustomHeightMM = height
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// saveUpload streams the uploaded file into a temp file for the reader.
func (s *Server) saveUpload(file io.Reader) (string, int64, error) {
	tmp, err := os.CreateTemp("", "bindery-upload-*.pdf")
	if err != nil {
		return "", 0, err
	}
	size, err := io.Copy(tmp, file)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	return tmp.Name(), size, err
}

// resultData builds the result page view model with download links.
func (s *Server) resultData(result *pipeline.Result) *resultData {
	data := &resultData{
		Message:    "Imposition complete.",
		Signatures: len(result.Signatures),
	}
	for _, f := range result.Files {
		url := fmt.Sprintf("/artifacts/%s/%s", result.ArtifactID, f.Filename)
		if f.Kind == pipeline.KindPreview {
			data.PreviewURL = url
			continue
		}
		data.OutputPages += f.PageCount
		data.Downloads = append(data.Downloads, download{
			URL:       url,
			Filename:  f.Filename,
			PageCount: f.PageCount,
		})
	}
	return data
}

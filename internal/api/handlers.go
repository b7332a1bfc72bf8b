package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tsawler/lexico"
	"github.com/tsawler/lexico/internal/report"
	"github.com/tsawler/lexico/internal/service"
	"github.com/tsawler/lexico/internal/store"
)

const (
	defaultSummaryRows = 20
	maxSummaryRows     = 1000
)

type analyzeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language" validate:"omitempty,max=16"`
}

type createDocumentRequest struct {
	Title    string `json:"title" validate:"max=200"`
	Language string `json:"language" validate:"omitempty,max=16"`
	Text     string `json:"text" validate:"required"`
}

type batchRequest struct {
	DocumentIDs []string `json:"document_ids" validate:"required,min=1,max=100,dive,required"`
	Language    string   `json:"language" validate:"omitempty,max=16"`
}

type analysisResponse struct {
	Result *lexico.AnalysisResult `json:"result"`
	Stats  lexico.Stats           `json:"stats"`
}

type languagesResponse struct {
	Languages []lexico.Language `json:"languages"`
	Default   lexico.Language   `json:"default"`
}

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (rt *Router) listLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, rt.logger, http.StatusOK, languagesResponse{
		Languages: rt.svc.Languages(),
		Default:   lexico.DefaultLanguage,
	})
}

func (rt *Router) analyzeText(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !rt.decode(w, r, &req) {
		return
	}
	res, stats, err := rt.svc.AnalyzeText(r.Context(), req.Text, req.Language)
	if err != nil {
		rt.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rt.logger, http.StatusOK, analysisResponse{Result: res, Stats: stats})
}

func (rt *Router) createDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if !rt.decode(w, r, &req) {
		return
	}
	doc, err := rt.svc.CreateDocument(r.Context(), req.Title, req.Language, req.Text)
	if err != nil {
		rt.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/documents/"+doc.ID)
	writeJSON(w, rt.logger, http.StatusCreated, doc)
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := rt.svc.Documents(r.Context())
	if err != nil {
		rt.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rt.logger, http.StatusOK, map[string]any{"documents": docs})
}

func (rt *Router) getDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := rt.svc.Document(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		rt.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rt.logger, http.StatusOK, doc)
}

func (rt *Router) analyzeDocument(w http.ResponseWriter, r *http.Request) {
	a, err := rt.svc.AnalyzeDocument(r.Context(), chi.URLParam(r, "documentID"), r.URL.Query().Get("lang"))
	if err != nil {
		rt.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/analyses/"+a.ID)
	writeJSON(w, rt.logger, http.StatusCreated, a)
}

func (rt *Router) listAnalyses(w http.ResponseWriter, r *http.Request) {
	ids, err := rt.svc.AnalysisIDs(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		rt.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rt.logger, http.StatusOK, map[string]any{"analysis_ids": ids})
}

func (rt *Router) analyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !rt.decode(w, r, &req) {
		return
	}
	out, err := rt.svc.AnalyzeBatch(r.Context(), req.DocumentIDs, req.Language)
	if err != nil {
		rt.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rt.logger, http.StatusCreated, map[string]any{"analyses": out})
}

func (rt *Router) summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	top, err := rowsParam(q.Get("top"))
	if err != nil {
		writeError(w, rt.logger, http.StatusBadRequest, "top: "+err.Error())
		return
	}
	low, err := rowsParam(q.Get("low"))
	if err != nil {
		writeError(w, rt.logger, http.StatusBadRequest, "low: "+err.Error())
		return
	}

	id := chi.URLParam(r, "documentID")
	res, err := rt.svc.Summary(r.Context(), id, q.Get("lang"), top, low)
	if err != nil {
		rt.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rt.logger, http.StatusOK, report.NewSummary(id, res))
}

func (rt *Router) getAnalysis(w http.ResponseWriter, r *http.Request) {
	a, err := rt.svc.Analysis(r.Context(), chi.URLParam(r, "analysisID"))
	if err != nil {
		rt.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rt.logger, http.StatusOK, a)
}

func (rt *Router) getReport(w http.ResponseWriter, r *http.Request) {
	a, err := rt.svc.Analysis(r.Context(), chi.URLParam(r, "analysisID"))
	if err != nil {
		rt.writeServiceError(w, r, err)
		return
	}
	doc, err := rt.svc.Document(r.Context(), a.DocumentID)
	if err != nil {
		rt.writeServiceError(w, r, err)
		return
	}
	pageLen := 0
	if v := r.URL.Query().Get("page_len"); v != "" {
		if pageLen, err = strconv.Atoi(v); err != nil || pageLen < 10 {
			writeError(w, rt.logger, http.StatusBadRequest, "page_len must be an integer of at least 10")
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", "lexical_report_"+doc.ID+".txt"))
	err = report.WriteText(w, report.Document{ID: doc.ID, Title: doc.Title}, a.Result, a.Stats, report.Options{
		PageLen:     pageLen,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		rt.logger.Error("Failed to write report", zap.String("analysisID", a.ID), zap.Error(err))
	}
}

// rowsParam parses a summary length, defaulting to defaultSummaryRows.
func rowsParam(v string) (int, error) {
	if v == "" {
		return defaultSummaryRows, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New("must be an integer")
	}
	if n < 0 || n > maxSummaryRows {
		return 0, fmt.Errorf("must be between 0 and %d", maxSummaryRows)
	}
	return n, nil
}

// decode reads and validates a JSON body, writing the error response itself
// when it fails.
func (rt *Router) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, rt.logger, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, rt.logger, http.StatusBadRequest, "body must be valid JSON")
		return false
	}

	if err := rt.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field()+": "+fe.Tag())
			}
			writeJSON(w, rt.logger, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
			return false
		}
		writeError(w, rt.logger, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (rt *Router) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, rt.logger, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmptyDocument):
		writeError(w, rt.logger, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDocumentTooLarge):
		writeError(w, rt.logger, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, rt.logger, http.StatusServiceUnavailable, "request cancelled")
	default:
		rt.logger.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, rt.logger, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, logger *zap.Logger, status int, msg string) {
	writeJSON(w, logger, status, errorResponse{Error: msg})
}

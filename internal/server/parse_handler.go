// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/profile-forge/internal/cache"
	"github.com/profile-forge/internal/database"
	"github.com/profile-forge/internal/parser"
	"github.com/profile-forge/internal/processor"
)

// ParseHandler holds the dependencies for the parse endpoints
type ParseHandler struct {
	structurer    *processor.Structurer
	cache         *cache.ResultCache
	history       *database.HistoryStore
	maxUploadSize int64
}

// NewParseHandler creates a parse handler. cache and history may be nil;
// parsing works without them.
func NewParseHandler(structurer *processor.Structurer, resultCache *cache.ResultCache, history *database.HistoryStore, maxUploadSize int64) *ParseHandler {
	if maxUploadSize <= 0 {
		maxUploadSize = 20 << 20
	}
	return &ParseHandler{
		structurer:    structurer,
		cache:         resultCache,
		history:       history,
		maxUploadSize: maxUploadSize,
	}
}

// HandleParseFile handles POST /api/v1/parse - multipart document upload
func (h *ParseHandler) HandleParseFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	tempPath, fileName, err := h.saveUpload(r, "file")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	// The uploaded file is a scoped resource: deleted on every exit path
	defer os.Remove(tempPath)

	if !parser.IsSupportedFile(tempPath) {
		writeError(w, http.StatusUnsupportedMediaType, fmt.Sprintf("unsupported file type: %s", filepath.Ext(fileName)))
		return
	}

	rawText, err := parser.ExtractText(tempPath)
	if err != nil {
		log.Printf("HandleParseFile: extraction failed for %s: %v", fileName, err)
		h.recordFailure(fileName, database.StatusExtractionFailed, err)
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("could not extract text: %v", err))
		return
	}

	h.parseAndRespond(w, r, fileName, rawText)
}

// HandleParseText handles POST /api/v1/parse/text - raw text in a JSON body
func (h *ParseHandler) HandleParseText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, h.maxUploadSize)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	h.parseAndRespond(w, r, "text-input", req.Text)
}

// HandleParsePages handles POST /api/v1/parse/pages - either a multi-page
// PDF rasterized server-side, or individual page images, run through the
// vision flow and merged
func (h *ParseHandler) HandleParsePages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %v", err))
		return
	}

	var pages []processor.Page
	var sourceName string

	if files := r.MultipartForm.File["pages"]; len(files) > 0 {
		sourceName = fmt.Sprintf("%d page images", len(files))
		for _, fh := range files {
			file, err := fh.Open()
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("could not read page %s: %v", fh.Filename, err))
				return
			}
			data, err := io.ReadAll(io.LimitReader(file, h.maxUploadSize))
			file.Close()
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("could not read page %s: %v", fh.Filename, err))
				return
			}
			mimeType := fh.Header.Get("Content-Type")
			if mimeType == "" {
				mimeType = "image/png"
			}
			pages = append(pages, processor.Page{Image: data, MimeType: mimeType})
		}
	} else {
		tempPath, fileName, err := h.saveUpload(r, "file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "provide either 'pages' image parts or a 'file' PDF")
			return
		}
		defer os.Remove(tempPath)

		sourceName = fileName
		images, err := parser.RenderPDFPages(tempPath)
		if err != nil {
			h.recordFailure(fileName, database.StatusExtractionFailed, err)
			writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("could not render pages: %v", err))
			return
		}
		for _, img := range images {
			pages = append(pages, processor.Page{Image: img, MimeType: "image/png"})
		}
	}

	record, err := h.structurer.ParseFromPages(r.Context(), pages)
	if err != nil {
		h.respondParseError(w, sourceName, err)
		return
	}

	h.recordSuccess(sourceName, record)
	writeJSON(w, http.StatusOK, record)
}

// parseAndRespond runs the text pipeline with the cache in front of it.
// Cleaning is idempotent, so the cache key matches what ParseFromText
// sends to the model; oversized documents get split into sections there.
func (h *ParseHandler) parseAndRespond(w http.ResponseWriter, r *http.Request, sourceName, rawText string) {
	cleaned := processor.CleanText(rawText)

	if cached := h.cache.Get(r.Context(), cleaned); cached != nil {
		log.Printf("parseAndRespond: cache hit for %s", sourceName)
		writeJSON(w, http.StatusOK, cached)
		return
	}

	record, err := h.structurer.ParseFromText(r.Context(), cleaned)
	if err != nil {
		h.respondParseError(w, sourceName, err)
		return
	}

	h.cache.Set(r.Context(), cleaned, record)
	h.recordSuccess(sourceName, record)
	writeJSON(w, http.StatusOK, record)
}

// respondParseError maps pipeline failures onto HTTP statuses
func (h *ParseHandler) respondParseError(w http.ResponseWriter, sourceName string, err error) {
	var insufficient *processor.InsufficientDataError
	var unavailable *processor.ServiceUnavailableError

	switch {
	case errors.As(err, &insufficient):
		h.recordFailure(sourceName, database.StatusInsufficientData, err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &unavailable):
		h.recordFailure(sourceName, database.StatusServiceError, err)
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		h.recordFailure(sourceName, database.StatusServiceError, err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// saveUpload writes the named multipart file to a temp file, preserving
// the extension so the extractor can route it
func (h *ParseHandler) saveUpload(r *http.Request, field string) (tempPath, fileName string, err error) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		return "", "", fmt.Errorf("invalid multipart form: %v", err)
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", "", fmt.Errorf("missing %q upload: %v", field, err)
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	temp, err := os.CreateTemp("", "profile-forge-*"+ext)
	if err != nil {
		return "", "", fmt.Errorf("could not create temp file: %v", err)
	}

	if _, err := io.Copy(temp, io.LimitReader(file, h.maxUploadSize)); err != nil {
		temp.Close()
		os.Remove(temp.Name())
		return "", "", fmt.Errorf("could not save upload: %v", err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(temp.Name())
		return "", "", fmt.Errorf("could not save upload: %v", err)
	}

	return temp.Name(), header.Filename, nil
}

func (h *ParseHandler) recordSuccess(sourceName string, record *processor.ProfileRecord) {
	if h.history == nil {
		return
	}
	if err := h.history.RecordSuccess(uuid.New().String(), sourceName, record); err != nil {
		log.Printf("recordSuccess: failed to store history: %v", err)
	}
}

func (h *ParseHandler) recordFailure(sourceName string, status database.ParseStatus, cause error) {
	if h.history == nil {
		return
	}
	if err := h.history.RecordFailure(uuid.New().String(), sourceName, status, cause.Error()); err != nil {
		log.Printf("recordFailure: failed to store history: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/profile-forge/internal/database"
)

// HistoryHandler exposes recent parse history
type HistoryHandler struct {
	history *database.HistoryStore
}

func NewHistoryHandler(history *database.HistoryStore) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// HandleList handles GET /api/v1/history?limit=N
func (h *HistoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.history == nil {
		writeError(w, http.StatusServiceUnavailable, "history store not configured")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := h.history.Recent(limit)
	if err != nil {
		log.Printf("HandleList: query failed: %v", err)
		writeError(w, http.StatusInternalServerError, "could not load history")
		return
	}

	writeJSON(w, http.StatusOK, records)
}

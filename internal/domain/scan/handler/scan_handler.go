// Package handler exposes the scan service over a small JSON HTTP API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/markwatch/markwatch/internal/domain/bulletin"
	"github.com/markwatch/markwatch/internal/domain/report"
	"github.com/markwatch/markwatch/internal/domain/scan"
)

// maxRequestBytes bounds inline scan payloads (page text plus base64 images).
const maxRequestBytes = 32 << 20

// requestTimeout wraps the whole run, extraction included, since extraction
// is the only stage expected to block.
const requestTimeout = 2 * time.Minute

// Search result paging bounds.
const (
	defaultSearchLimit = 25
	maxSearchLimit     = 100
)

// ScanHandler serves scan runs and bulletin search.
type ScanHandler struct {
	service *scan.Service
	logger  *slog.Logger
}

// NewScanHandler creates the HTTP handler for the scan endpoints.
func NewScanHandler(service *scan.Service, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{service: service, logger: logger}
}

// Register attaches the scan routes to the mux.
func (h *ScanHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/scans", h.handleScan)
	mux.HandleFunc("GET /v1/filings/search", h.handleSearch)
}

type scanRequest struct {
	BulletinRef string                 `json:"bulletin_ref,omitempty"`
	Pages       []string               `json:"pages,omitempty"`
	Images      [][]bulletin.PageImage `json:"images,omitempty"`
	Portfolio   []string               `json:"portfolio"`
}

type scanResponse struct {
	*scan.RunResult
	Message string `json:"message"`
}

func (h *ScanHandler) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Pages) == 0 && req.BulletinRef == "" {
		h.writeError(w, http.StatusBadRequest, "either pages or bulletin_ref is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := h.service.Run(ctx, scan.RunInput{
		BulletinRef: req.BulletinRef,
		Pages:       req.Pages,
		Images:      req.Images,
		Portfolio:   req.Portfolio,
	})
	if err != nil {
		if errors.Is(err, scan.ErrNoExtractor) {
			h.writeError(w, http.StatusUnprocessableEntity, "bulletin_ref given but no extraction service is configured")
			return
		}
		h.logger.Error("scan run failed", slog.Any("error", err))
		h.writeError(w, http.StatusBadGateway, "scan failed")
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="scan-report.xlsx"`)
		if err := report.WriteWorkbook(w, result); err != nil {
			h.logger.Error("failed to write scan workbook", slog.Any("error", err))
		}
		return
	}

	// Zero matches is a positive outcome, not an empty-error state.
	message := "potential conflicts found"
	if result.NoConflicts {
		message = "no conflicts found"
	}

	h.writeJSON(w, http.StatusOK, scanResponse{RunResult: result, Message: message})
}

type searchResponse struct {
	Hits []bulletin.FilingHit `json:"hits"`
}

func (h *ScanHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	index := h.service.Index()
	if index == nil {
		h.writeError(w, http.StatusNotFound, "filing search is not enabled")
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSearchLimit {
			h.writeError(w, http.StatusBadRequest, "limit must be an integer between 1 and 100")
			return
		}
		limit = n
	}

	hits, err := index.Search(query, limit)
	if err != nil {
		h.logger.Error("filing search failed", slog.Any("error", err))
		h.writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	h.writeJSON(w, http.StatusOK, searchResponse{Hits: hits})
}

func (h *ScanHandler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("failed to encode response", slog.Any("error", err))
	}
}

func (h *ScanHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

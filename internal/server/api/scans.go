// Package api provides HTTP API handlers for stored scan history.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ayusman/cubescan/internal/store"
)

const defaultListLimit = 50

// ScanHandler handles HTTP requests for scan resources.
type ScanHandler struct {
	store *store.Store
}

// NewScanHandler creates a new ScanHandler with the given store.
func NewScanHandler(s *store.Store) *ScanHandler {
	return &ScanHandler{store: s}
}

// ServeHTTP routes /api/scans and /api/scans/{id}.
func (h *ScanHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/scans")
	id = strings.TrimPrefix(id, "/")

	if id == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type scanResponse struct {
	ID         string `json:"id"`
	CubeString string `json:"cube_string"`
	Translated string `json:"translated"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type faceResponse struct {
	Slot     string `json:"slot"`
	Colors   string `json:"colors"`
	Sequence int    `json:"sequence"`
}

type solutionResponse struct {
	Raw       string `json:"raw"`
	Notation  string `json:"notation"`
	MoveCount int    `json:"move_count"`
	Error     string `json:"error,omitempty"`
}

type scanDetailResponse struct {
	scanResponse
	Faces    []faceResponse    `json:"faces"`
	Solution *solutionResponse `json:"solution,omitempty"`
}

type listScansResponse struct {
	Scans []scanResponse `json:"scans"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toResponse(sc *store.Scan) scanResponse {
	return scanResponse{
		ID:         sc.ID,
		CubeString: sc.CubeString,
		Translated: sc.Translated,
		Status:     string(sc.Status),
		CreatedAt:  sc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  sc.UpdatedAt.Format(time.RFC3339),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/scans?limit=N, newest first.
func (h *ScanHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	scans, err := h.store.Scans().List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list scans")
		return
	}

	resp := listScansResponse{Scans: make([]scanResponse, 0, len(scans))}
	for _, sc := range scans {
		resp.Scans = append(resp.Scans, toResponse(sc))
	}
	writeJSON(w, http.StatusOK, resp)
}

// get handles GET /api/scans/{id} with faces and solution.
func (h *ScanHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	sc, err := h.store.Scans().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "scan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get scan")
		return
	}

	faces, err := h.store.Faces().ListByScan(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get faces")
		return
	}

	resp := scanDetailResponse{
		scanResponse: toResponse(sc),
		Faces:        make([]faceResponse, 0, len(faces)),
	}
	for _, f := range faces {
		resp.Faces = append(resp.Faces, faceResponse{Slot: f.Slot, Colors: f.Colors, Sequence: f.Sequence})
	}

	sol, err := h.store.Solutions().GetByScanID(id)
	switch {
	case err == nil:
		resp.Solution = &solutionResponse{
			Raw:       sol.Raw,
			Notation:  sol.Notation,
			MoveCount: sol.MoveCount,
			Error:     sol.Error,
		}
	case !errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusInternalServerError, "failed to get solution")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// delete handles DELETE /api/scans/{id}.
func (h *ScanHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Scans().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "scan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete scan")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/kestfor/FiveWordCliques/internal/services/finder"
	"github.com/kestfor/FiveWordCliques/internal/services/finder/words"
)

// maxBodyBytes bounds an uploaded word list.
const maxBodyBytes = 64 << 20

type handler struct {
	service finder.Service
}

func NewHandler(service finder.Service) *handler {
	return &handler{
		service: service,
	}
}

func (h *handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/searches", h.HandleSubmit)
	mux.HandleFunc("GET /api/v1/searches/{run_id}", h.HandleGetResult)
	mux.HandleFunc("GET /api/v1/searches/{run_id}/progress", h.HandleGetProgress)
	mux.HandleFunc("DELETE /api/v1/searches/{run_id}", h.HandleDelete)
}

// HandleSubmit expects a plain-text word list, one word per line.
func (h *handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	lines, err := words.ReadLines(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	runID, err := h.service.Submit(r.Context(), lines)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, SubmitResponse{RunID: runID})
}

func (h *handler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	runID, ok := parseRunID(w, r)
	if !ok {
		return
	}

	progress, err := h.service.Progress(r.Context(), runID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

func (h *handler) HandleGetResult(w http.ResponseWriter, r *http.Request) {
	runID, ok := parseRunID(w, r)
	if !ok {
		return
	}

	result, err := h.service.Result(r.Context(), runID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	runID, ok := parseRunID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), runID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func parseRunID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	runID := r.PathValue("run_id")

	if runID == "" {
		http.Error(w, "run_id is required", http.StatusBadRequest)
		return uuid.Nil, false
	}

	runUUID, err := uuid.Parse(runID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return uuid.Nil, false
	}

	return runUUID, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, finder.ErrRunNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, finder.ErrRunNotReady):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, finder.ErrTooManyRuns):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	case errors.Is(err, finder.ErrInvalidConfig), errors.Is(err, finder.ErrUnreadableInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

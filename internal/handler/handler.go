package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/linkpulse/linkpulse/internal/batch"
	"github.com/linkpulse/linkpulse/internal/model"
	"github.com/linkpulse/linkpulse/internal/sanitize"
)

// CheckRequest is the batch request body.
type CheckRequest struct {
	Links   []string           `json:"links"`
	Options model.ProbeOptions `json:"options"`
}

// CheckResponse is the successful batch response envelope.
type CheckResponse struct {
	Results   []model.ProbeResult `json:"results"`
	Summary   model.BatchSummary  `json:"summary"`
	Timestamp time.Time           `json:"timestamp"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HTTPHandler serves the batch check API on top of a batch runner.
type HTTPHandler struct {
	runner *batch.Runner
}

// NewHTTPHandler creates a new instance of HTTPHandler.
func NewHTTPHandler(runner *batch.Runner) *HTTPHandler {
	return &HTTPHandler{runner: runner}
}

// Routes returns the full handler chain: routing wrapped in CORS and panic
// recovery.
func (h *HTTPHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/check", h.handleCheck)
	mux.HandleFunc("/api/health", h.handleHealth)
	return recoverMiddleware(corsMiddleware(mux))
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) handleCheck(w http.ResponseWriter, r *http.Request) {
	logRequest(r)
	if r.Method != http.MethodPost {
		logAndReturnError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Prefilled options keep the defaults for fields the body omits.
	req := CheckRequest{Options: model.DefaultProbeOptions()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logAndReturnError(w, "Invalid JSON body", http.StatusBadRequest,
			fmt.Sprintf("Bad request from %s: %v", r.RemoteAddr, err))
		return
	}
	if len(req.Links) == 0 {
		logAndReturnError(w, "No links provided", http.StatusBadRequest)
		return
	}
	if len(req.Links) > h.runner.MaxBatchSize() {
		logAndReturnError(w,
			fmt.Sprintf("Too many links: maximum %d per batch", h.runner.MaxBatchSize()),
			http.StatusTooManyRequests)
		return
	}

	urls, err := sanitize.Batch(req.Links)
	if err != nil {
		logAndReturnError(w, "No valid URLs provided", http.StatusBadRequest)
		return
	}

	start := time.Now()
	results, err := h.runner.Run(r.Context(), urls, req.Options)
	if err != nil {
		if errors.Is(err, batch.ErrBatchTooLarge) {
			logAndReturnError(w, err.Error(), http.StatusTooManyRequests)
			return
		}
		logAndReturnError(w, "Internal processing error", http.StatusInternalServerError,
			fmt.Sprintf("Batch run failed: %v", err))
		return
	}
	log.Infof("Checked %d URLs in %s", len(results), time.Since(start).Round(time.Millisecond))

	writeJSON(w, http.StatusOK, CheckResponse{
		Results:   results,
		Summary:   batch.Summarize(results),
		Timestamp: time.Now().UTC(),
	})
}

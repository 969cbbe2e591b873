// Package handlers provides HTTP handlers for running and inspecting
// simulations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aristath/qbind/internal/domain"
	"github.com/aristath/qbind/internal/modules/runs"
	"github.com/aristath/qbind/internal/modules/simulation"
	"github.com/aristath/qbind/pkg/formulas"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// traceTail is how many trailing trace entries feed the stability summary.
const traceTail = 25

// Handler handles simulation HTTP requests
type Handler struct {
	service *simulation.Service
	repo    *runs.Repository
	log     zerolog.Logger
}

// NewHandler creates a new simulation handler
func NewHandler(service *simulation.Service, repo *runs.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		repo:    repo,
		log:     log.With().Str("handler", "simulation").Logger(),
	}
}

// RunRequest selects a preset and optionally overrides its tunables.
type RunRequest struct {
	Preset        string `json:"preset"`
	Strategy      string `json:"strategy,omitempty"`
	MaxIterations int    `json:"max_iterations,omitempty"`
	Repetitions   *int   `json:"repetitions,omitempty"`
	Seed          *int64 `json:"seed,omitempty"`
}

// HandleRun handles POST /api/simulations
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	req := RunRequest{Preset: "mpro"}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.log.Error().Err(err).Msg("Failed to decode request body")
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	var simReq domain.SimulationRequest
	switch req.Preset {
	case "", "mpro":
		simReq = simulation.MproPreset()
	case "mpro-spsa":
		simReq = simulation.MproSPSAPreset()
	default:
		http.Error(w, "Unknown preset", http.StatusBadRequest)
		return
	}

	if req.Strategy != "" {
		simReq.Strategy = req.Strategy
	}
	if req.MaxIterations > 0 {
		simReq.MaxIterations = req.MaxIterations
	}
	if req.Repetitions != nil {
		simReq.Repetitions = *req.Repetitions
	}
	if req.Seed != nil {
		simReq.Seed = *req.Seed
	}

	result, err := h.service.Run(simReq)
	if err != nil {
		h.writeError(w, err)
		return
	}

	id, err := h.repo.Save(runs.Run{
		Strategy:      simReq.Strategy,
		MaxIterations: simReq.MaxIterations,
		Energy:        result.Energy.Value,
		Iterations:    result.Energy.IterationsUsed,
		Converged:     result.Energy.Converged,
		Verdict:       result.Verdict,
		Trace:         result.Energy.Trace,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to persist run")
		http.Error(w, "Failed to persist run", http.StatusInternalServerError)
		return
	}

	tail := formulas.Tail(result.Energy.Trace, traceTail)
	response := map[string]interface{}{
		"data": map[string]interface{}{
			"run_id":       id,
			"energy":       result.Energy.Value,
			"verdict":      result.Verdict,
			"iterations":   result.Energy.IterationsUsed,
			"converged":    result.Energy.Converged,
			"energy_bound": result.EnergyBound,
			"trace_summary": map[string]interface{}{
				"tail_mean":   formulas.Mean(tail),
				"tail_stddev": formulas.StdDev(tail),
			},
		},
		"metadata": map[string]interface{}{
			"strategy":    simReq.Strategy,
			"duration_ms": result.Duration.Milliseconds(),
			"timestamp":   time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleList handles GET /api/simulations
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := parsePositiveInt(v)
		if err != nil {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	list, err := h.repo.List(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list runs")
		http.Error(w, "Failed to list runs", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"runs": list,
		},
		"metadata": map[string]interface{}{
			"count":     len(list),
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGet handles GET /api/simulations/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.repo.Get(id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to load run")
		http.Error(w, "Failed to load run", http.StatusInternalServerError)
		return
	}
	if run == nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"run": run,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// writeError maps pipeline errors to HTTP statuses: malformed inputs are the
// caller's fault, numeric failures are an unprocessable simulation.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrConstruction):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrNumeric):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		h.log.Error().Err(err).Msg("Simulation failed")
		http.Error(w, "Simulation failed", http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("not a positive integer")
	}
	return n, nil
}

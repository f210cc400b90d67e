package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/google/uuid"

	"schedsim/internal/sched"
	"schedsim/internal/workload"
)

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondOK(w, RequestIDFromContext(r.Context()), healthResponse{
		Status:    "healthy",
		Version:   "0.1.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
	})
}

type policyInfo struct {
	Name        string `json:"name"`
	Preemptive  bool   `json:"preemptive"`
	Description string `json:"description"`
}

var policyCatalog = []policyInfo{
	{sched.NameFIFO, false, "first-in-first-out in arrival order"},
	{sched.NameSJF, false, "shortest job first among arrived tasks"},
	{sched.NameSTCF, true, "shortest time to completion first, one tick at a time"},
	{sched.NameRR, true, "round robin with a fixed time quantum"},
	{sched.NameMLFQ, true, "multi-level feedback queue with periodic priority boost"},
}

func (s *Server) handleListPolicies(w http.ResponseWriter, r *http.Request) {
	respondOK(w, RequestIDFromContext(r.Context()), policyCatalog)
}

type simulateRequest struct {
	Tasks         []sched.Task `json:"tasks"`
	Policies      []string     `json:"policies"`
	Quantum       int          `json:"quantum"`
	Levels        []int        `json:"levels"`
	BoostInterval int          `json:"boost_interval"`
	Seed          uint64       `json:"seed"`
	STCFSpans     bool         `json:"stcf_spans"`
}

type simulateResponse struct {
	RunID   string         `json:"run_id"`
	Seed    uint64         `json:"seed"`
	Results []sched.Result `json:"results"`
}

// decode reads a JSON body into v and answers the client itself on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	reqID := RequestIDFromContext(r.Context())
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		status, apiErr := classify(err)
		respondError(w, reqID, status, apiErr)
		return false
	}
	respondError(w, reqID, http.StatusBadRequest, &APIError{Code: "bad_request", Message: "invalid JSON: " + err.Error()})
	return false
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req simulateRequest
	if !decode(w, r, &req) {
		return
	}

	cfg := s.config
	cfg.Merge(sched.Config{
		Quantum:       req.Quantum,
		Levels:        req.Levels,
		BoostInterval: req.BoostInterval,
		Seed:          req.Seed,
		STCFSpans:     req.STCFSpans,
	})

	report, err := sched.NewRunner(cfg, s.logger).Run(r.Context(), req.Tasks, req.Policies...)
	if err != nil {
		s.respondRunError(w, reqID, err)
		return
	}

	runID := uuid.New().String()
	s.logger.Info("simulation complete", "run_id", runID, "tasks", len(req.Tasks), "policies", len(report.Results), "seed", report.Seed)
	respondOK(w, reqID, simulateResponse{RunID: runID, Seed: report.Seed, Results: report.Results})
}

func (s *Server) respondRunError(w http.ResponseWriter, reqID string, err error) {
	status, apiErr := classify(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("simulation failed", "error", err, "request_id", reqID)
	}
	respondError(w, reqID, status, apiErr)
}

type workloadRequest struct {
	Count      int    `json:"count"`
	Seed       uint64 `json:"seed"`
	MaxArrival int    `json:"max_arrival"`
	MaxBurst   int    `json:"max_burst"`
}

type workloadResponse struct {
	Seed  uint64       `json:"seed"`
	Tasks []sched.Task `json:"tasks"`
}

func (s *Server) handleGenerateWorkload(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req workloadRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Seed == 0 {
		req.Seed = sched.TimeSeed()
	}

	tasks, err := workload.Generate(req.Count, req.Seed, workload.Options{MaxArrival: req.MaxArrival, MaxBurst: req.MaxBurst})
	if err != nil {
		s.respondRunError(w, reqID, err)
		return
	}
	respondOK(w, reqID, workloadResponse{Seed: req.Seed, Tasks: tasks})
}

package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lewisedginton/travel_agent_orchestrator/internal/agents"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/logger"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/metrics"
)

// workflowRequest is the body of POST /api/v1/agents/workflow/execute. The
// top-level context seeds the executor's inherited context for every step.
type workflowRequest struct {
	Steps   []agents.Step  `json:"steps"`
	Context map[string]any `json:"context,omitempty"`
}

// listResponse is the body of GET /api/v1/agents/list.
type listResponse struct {
	Agents []agents.AgentInfo `json:"agents"`
	Count  int                `json:"count"`
}

// dispatchAgentHandler handles POST /api/v1/agents/{agentName}. An error
// status from dispatch maps to a client error response.
func (s *Server) dispatchAgentHandler(w http.ResponseWriter, r *http.Request) {
	agentName := chi.URLParam(r, "agentName")

	var input agents.RawInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.writeJSON(w, http.StatusBadRequest, agents.Result{
			Status:  agents.StatusError,
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	s.incrementDispatch(metrics.DispatchMetricTotal)

	result := s.registry.Process(r.Context(), agentName, input)

	status := http.StatusOK
	if result.Status == agents.StatusError {
		s.incrementDispatch(metrics.DispatchMetricTotalFailed)
		status = http.StatusBadRequest
	} else {
		s.incrementDispatch(metrics.DispatchMetricTotalSuccess)
	}

	s.writeJSON(w, status, result)
}

// executeWorkflowHandler handles POST /api/v1/agents/workflow/execute.
func (s *Server) executeWorkflowHandler(w http.ResponseWriter, r *http.Request) {
	var req workflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, agents.Result{
			Status:  agents.StatusError,
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	if len(req.Steps) == 0 {
		s.writeJSON(w, http.StatusBadRequest, agents.Result{
			Status:  agents.StatusError,
			Message: "Workflow requires at least one step",
		})
		return
	}

	s.incrementDispatch(metrics.DispatchMetricWorkflowsTotal)

	result := s.executor.Run(r.Context(), req.Steps, req.Context)

	status := http.StatusOK
	if result.Status == agents.StatusError {
		s.incrementDispatch(metrics.DispatchMetricWorkflowsFailed)
		status = http.StatusBadRequest
	}

	s.writeJSON(w, status, result)
}

// listAgentsHandler handles GET /api/v1/agents/list.
func (s *Server) listAgentsHandler(w http.ResponseWriter, _ *http.Request) {
	catalog := s.registry.Catalog()
	s.writeJSON(w, http.StatusOK, listResponse{
		Agents: catalog,
		Count:  len(catalog),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("Failed to encode response", logger.ErrorField(err))
	}
}

func (s *Server) incrementDispatch(idx int) {
	if s.metrics != nil {
		s.metrics.IncrementDispatchCounter(idx)
	}
}

package rest

import (
	"sort"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"yqhp/pay-engine/pkg/types"
)

// Store keeps terminal execution states for retrieval by id. Runs are
// in-memory only; persistence belongs to an external collaborator.
type Store struct {
	mu   sync.RWMutex
	runs map[string]*types.ExecutionState
}

// NewStore 创建执行状态存储
func NewStore() *Store {
	return &Store{
		runs: make(map[string]*types.ExecutionState),
	}
}

// Put stores a terminal state.
func (s *Store) Put(st *types.ExecutionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[st.ExecutionID] = st
}

// Get returns the state for an execution id.
func (s *Store) Get(executionID string) (*types.ExecutionState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.runs[executionID]
	return st, ok
}

// All returns every stored state.
func (s *Store) All() []*types.ExecutionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*types.ExecutionState, 0, len(s.runs))
	for _, st := range s.runs {
		out = append(out, st)
	}
	return out
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}

// readyCheck handles GET /ready.
func (s *Server) readyCheck(c *fiber.Ctx) error {
	if s.engine == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status:    "not ready",
			Timestamp: time.Now().UTC(),
		})
	}
	return c.JSON(HealthResponse{
		Status:    "ready",
		Timestamp: time.Now().UTC(),
	})
}

// submitCalculation handles POST /api/v1/calculations. The run executes
// synchronously and the terminal state is returned.
func (s *Server) submitCalculation(c *fiber.Ctx) error {
	var req CalculationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "request body is not valid JSON",
		})
	}
	if req.CrewMember == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "crew_member is required",
		})
	}

	st, err := s.engine.Run(c.Context(), req.CrewMember, req.FlightAssignments, req.PayPeriodStart, req.PayPeriodEnd)
	if err != nil {
		// Structural failures are rejected before a run starts.
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	}

	s.store.Put(st)
	return c.Status(fiber.StatusCreated).JSON(newCalculationResponse(st))
}

// getCalculation handles GET /api/v1/calculations/:id.
func (s *Server) getCalculation(c *fiber.Ctx) error {
	st, ok := s.store.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "no calculation with that execution id",
		})
	}
	return c.JSON(newCalculationResponse(st))
}

// listCalculations handles GET /api/v1/calculations.
func (s *Server) listCalculations(c *fiber.Ctx) error {
	states := s.store.All()
	sort.Slice(states, func(i, j int) bool {
		return states[i].ProcessingStartedAt.Before(states[j].ProcessingStartedAt)
	})

	responses := make([]CalculationResponse, 0, len(states))
	for _, st := range states {
		responses = append(responses, newCalculationResponse(st))
	}
	return c.JSON(responses)
}

// getCalculationAudit handles GET /api/v1/calculations/:id/audit.
func (s *Server) getCalculationAudit(c *fiber.Ctx) error {
	if s.auditSink == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "audit trail is not retained in memory",
		})
	}
	entries := s.auditSink.ByExecution(c.Params("id"))
	return c.JSON(entries)
}

// getStats handles GET /api/v1/stats.
func (s *Server) getStats(c *fiber.Ctx) error {
	resp := StatsResponse{Stages: []StageStatsDTO{}}
	if s.auditor != nil {
		for _, t := range s.auditor.StageTimings() {
			resp.Stages = append(resp.Stages, StageStatsDTO{
				Stage: t.Stage,
				Count: t.Count,
				MinMS: t.MinMS,
				MaxMS: t.MaxMS,
				P50MS: t.P50MS,
				P95MS: t.P95MS,
				P99MS: t.P99MS,
			})
		}
		sort.Slice(resp.Stages, func(i, j int) bool {
			return resp.Stages[i].Stage < resp.Stages[j].Stage
		})
	}
	return c.JSON(resp)
}

package pipeline

import (
	"context"
	"sync"

	"yqhp/pay-engine/pkg/types"
)

// ClaimSource looks up pending pay claims for a crew member. The engine
// consults it once per run, after the compliance stage, to decide whether
// the claims branch executes.
type ClaimSource interface {
	PendingClaims(ctx context.Context, employeeID string) ([]types.Claim, error)
}

// MemoryClaimSource is an in-memory claim store keyed by employee id.
type MemoryClaimSource struct {
	mu     sync.RWMutex
	claims map[string][]types.Claim
}

// NewMemoryClaimSource 创建内存索赔存储
func NewMemoryClaimSource() *MemoryClaimSource {
	return &MemoryClaimSource{
		claims: make(map[string][]types.Claim),
	}
}

// Add files a claim for an employee.
func (s *MemoryClaimSource) Add(employeeID string, claim types.Claim) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claims[employeeID] = append(s.claims[employeeID], claim)
}

// PendingClaims returns the claims filed for an employee.
func (s *MemoryClaimSource) PendingClaims(ctx context.Context, employeeID string) ([]types.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending := s.claims[employeeID]
	out := make([]types.Claim, len(pending))
	copy(out, pending)
	return out, nil
}

package calc

import (
	"context"
	"fmt"

	"yqhp/pay-engine/internal/module"
	"yqhp/pay-engine/pkg/types"
)

// Claims investigates pending pay claims. A claim resolves automatically
// when the investigation confidence exceeds 0.9 and the claimed amount is
// under $500; everything else escalates to a human.
type Claims struct{}

// NewClaims 创建索赔处理模块
func NewClaims() *Claims {
	return &Claims{}
}

func (m *Claims) Stage() string {
	return types.StageClaims
}

func (m *Claims) Calculate(ctx context.Context, req *module.Request) (types.StageOutput, error) {
	result := &types.ClaimsResult{ConfidenceScore: 1.0}
	if len(req.PendingClaims) == 0 {
		return result, nil
	}

	for _, claim := range req.PendingClaims {
		finding := m.investigate(&claim, req)
		if finding.Resolution == types.ClaimResolutionApproved {
			result.TotalApproved = round2(result.TotalApproved + finding.AmountApproved)
		} else {
			result.EscalatedCount++
		}
		if finding.ConfidenceScore < result.ConfidenceScore {
			result.ConfidenceScore = finding.ConfidenceScore
		}
		result.Findings = append(result.Findings, finding)
	}
	return result, nil
}

func (m *Claims) investigate(claim *types.Claim, req *module.Request) types.ClaimFinding {
	finding := types.ClaimFinding{
		ClaimNumber: claim.ClaimNumber,
		ClaimType:   claim.ClaimType,
	}

	// Evidence: a claim naming a flight we can see in the period is easier
	// to corroborate than one with no flight reference.
	confidence := 0.85
	if claim.FlightNumber != "" {
		for i := range req.Assignments {
			if req.Assignments[i].FlightNumber == claim.FlightNumber {
				confidence = 0.95
				break
			}
		}
	}
	finding.ConfidenceScore = confidence

	if confidence > ClaimAutoResolveConfidence && claim.AmountClaimed < ClaimAutoResolveMaxAmount {
		finding.Resolution = types.ClaimResolutionApproved
		finding.AmountApproved = claim.AmountClaimed
		finding.Rationale = fmt.Sprintf("claim corroborated by flight %s, amount $%.2f under auto-resolution limit",
			claim.FlightNumber, claim.AmountClaimed)
		return finding
	}

	finding.Resolution = types.ClaimResolutionEscalated
	switch {
	case claim.AmountClaimed >= ClaimAutoResolveMaxAmount:
		finding.Rationale = fmt.Sprintf("amount $%.2f exceeds $%.0f auto-resolution limit",
			claim.AmountClaimed, ClaimAutoResolveMaxAmount)
	default:
		finding.Rationale = "insufficient corroborating evidence for automatic resolution"
	}
	return finding
}

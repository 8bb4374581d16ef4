package types

// StageOutput is implemented by every per-stage result type. Confidence is in
// [0,1] and feeds the run-level minimum computed by the finalizer.
type StageOutput interface {
	Confidence() float64
}

// SegmentCredit is the per-segment outcome of the flight time calculation.
type SegmentCredit struct {
	FlightNumber string  `json:"flight_number"`
	FlightDate   string  `json:"flight_date"`
	BlockTime    float64 `json:"block_time"`
	CreditTime   float64 `json:"credit_time"`
	MinApplied   bool    `json:"min_applied,omitempty"`
	Discrepancy  string  `json:"discrepancy,omitempty"`
}

// FlightTimeResult holds block/credit totals for the pay period.
type FlightTimeResult struct {
	TotalBlockTime  float64         `json:"total_block_time"`
	TotalCreditTime float64         `json:"total_credit_time"`
	TotalFlightPay  float64         `json:"total_flight_pay"`
	Segments        []SegmentCredit `json:"segments,omitempty"`
	Discrepancies   []string        `json:"discrepancies,omitempty"`
	ConfidenceScore float64         `json:"confidence"`
}

func (r *FlightTimeResult) Confidence() float64 { return r.ConfidenceScore }

// DutyViolation is one FAA Part 117 limit breach.
type DutyViolation struct {
	Rule        string  `json:"rule"`
	Limit       float64 `json:"limit"`
	Actual      float64 `json:"actual"`
	Description string  `json:"description"`
}

// DutyTimeResult holds duty period totals and regulatory findings.
type DutyTimeResult struct {
	TotalDutyHours  float64         `json:"total_duty_hours"`
	DutyPeriods     int             `json:"duty_periods"`
	Violations      []DutyViolation `json:"violations,omitempty"`
	Warnings        []string        `json:"warnings,omitempty"`
	FatigueRisk     string          `json:"fatigue_risk,omitempty"`
	RestCompliant   bool            `json:"rest_compliant"`
	ConfidenceScore float64         `json:"confidence"`
}

func (r *DutyTimeResult) Confidence() float64 { return r.ConfidenceScore }

// LayoverAllowance is one layover's per diem entitlement.
type LayoverAllowance struct {
	Location      string  `json:"location"`
	Date          string  `json:"date"`
	Hours         float64 `json:"hours"`
	Rate          float64 `json:"rate"`
	Amount        float64 `json:"amount"`
	International bool    `json:"international,omitempty"`
	Prorated      bool    `json:"prorated,omitempty"`
}

// PerDiemResult holds the per diem entitlement for the pay period.
type PerDiemResult struct {
	TotalPerDiem    float64            `json:"total_per_diem"`
	Layovers        []LayoverAllowance `json:"layovers,omitempty"`
	MealDeductions  float64            `json:"meal_deductions,omitempty"`
	ConfidenceScore float64            `json:"confidence"`
}

func (r *PerDiemResult) Confidence() float64 { return r.ConfidenceScore }

// PremiumItem is one premium pay component.
type PremiumItem struct {
	Type         string  `json:"type"`
	FlightNumber string  `json:"flight_number,omitempty"`
	Description  string  `json:"description,omitempty"`
	Amount       float64 `json:"amount"`
}

// PremiumPayResult holds premium components above base pay.
type PremiumPayResult struct {
	TotalPremiumPay float64       `json:"total_premium_pay"`
	Items           []PremiumItem `json:"items,omitempty"`
	ConfidenceScore float64       `json:"confidence"`
}

func (r *PremiumPayResult) Confidence() float64 { return r.ConfidenceScore }

// GuaranteeResult holds the pay floor comparison.
type GuaranteeResult struct {
	GuaranteeHours   float64 `json:"guarantee_hours"`
	ActualHours      float64 `json:"actual_hours"`
	PaidHours        float64 `json:"paid_hours"`
	GuaranteePay     float64 `json:"guarantee_pay"`
	GuaranteeApplied bool    `json:"guarantee_applied"`
	ConfidenceScore  float64 `json:"confidence"`
}

func (r *GuaranteeResult) Confidence() float64 { return r.ConfidenceScore }

// Compliance verdicts.
const (
	ComplianceVerdictPass = "pass"
	ComplianceVerdictWarn = "warn"
	ComplianceVerdictFail = "fail"
)

// ComplianceResult is the cross-check verdict over all upstream results.
type ComplianceResult struct {
	Verdict         string   `json:"verdict"`
	Violations      []string `json:"violations,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
	RequiresReview  bool     `json:"requires_review"`
	ConfidenceScore float64  `json:"confidence"`
}

func (r *ComplianceResult) Confidence() float64 { return r.ConfidenceScore }

// Claim resolutions.
const (
	ClaimResolutionApproved  = "approved"
	ClaimResolutionEscalated = "escalated"
)

// ClaimFinding is the outcome of investigating one claim.
type ClaimFinding struct {
	ClaimNumber     string  `json:"claim_number"`
	ClaimType       string  `json:"claim_type"`
	Resolution      string  `json:"resolution"`
	AmountApproved  float64 `json:"amount_approved"`
	Rationale       string  `json:"rationale,omitempty"`
	ConfidenceScore float64 `json:"confidence"`
}

// ClaimsResult holds the investigation outcome for all pending claims.
type ClaimsResult struct {
	Findings        []ClaimFinding `json:"findings,omitempty"`
	TotalApproved   float64        `json:"total_approved"`
	EscalatedCount  int            `json:"escalated_count"`
	ConfidenceScore float64        `json:"confidence"`
}

func (r *ClaimsResult) Confidence() float64 { return r.ConfidenceScore }

// PayBreakdown is the finalized pay figure set for a run.
type PayBreakdown struct {
	TotalHours      float64 `json:"total_hours"`
	BasePay         float64 `json:"base_pay"`
	PerDiem         float64 `json:"per_diem"`
	PremiumPay      float64 `json:"premium_pay"`
	ClaimsPay       float64 `json:"claims_pay,omitempty"`
	TotalPay        float64 `json:"total_pay"`
	ConfidenceScore float64 `json:"confidence"`
}

// Package types defines the shared domain types for the crew pay pipeline.
package types

import "time"

// Crew roles recognized by the pay rules.
const (
	RoleCaptain             = "Captain"
	RoleFirstOfficer        = "First Officer"
	RoleFlightAttendant     = "Flight Attendant"
	RoleLeadFlightAttendant = "Lead Flight Attendant"
)

// Crew types recognized by the guarantee rules.
const (
	CrewTypeLineHolder = "line_holder"
	CrewTypeReserve    = "reserve"
)

// CrewMemberProfile is the immutable crew member record for one pipeline run.
type CrewMemberProfile struct {
	ID               string  `json:"id" yaml:"id"`
	EmployeeID       string  `json:"employee_id" yaml:"employee_id"`
	FirstName        string  `json:"first_name" yaml:"first_name"`
	LastName         string  `json:"last_name" yaml:"last_name"`
	Role             string  `json:"role" yaml:"role"`
	CrewType         string  `json:"crew_type" yaml:"crew_type"`
	HourlyRate       float64 `json:"hourly_rate" yaml:"hourly_rate"`
	BaseAirport      string  `json:"base_airport" yaml:"base_airport"`
	MonthlyGuarantee float64 `json:"monthly_guarantee,omitempty" yaml:"monthly_guarantee,omitempty"`
}

// FlightAssignment is one flight-segment record. The sequence of assignments
// for a pay period is immutable once a run starts.
type FlightAssignment struct {
	FlightNumber       string    `json:"flight_number" yaml:"flight_number"`
	FlightDate         string    `json:"flight_date" yaml:"flight_date"`
	OriginAirport      string    `json:"origin_airport" yaml:"origin_airport"`
	DestinationAirport string    `json:"destination_airport" yaml:"destination_airport"`
	ScheduledDeparture time.Time `json:"scheduled_departure" yaml:"scheduled_departure"`
	ActualDeparture    time.Time `json:"actual_departure,omitempty" yaml:"actual_departure,omitempty"`
	ScheduledArrival   time.Time `json:"scheduled_arrival" yaml:"scheduled_arrival"`
	ActualArrival      time.Time `json:"actual_arrival,omitempty" yaml:"actual_arrival,omitempty"`
	ScheduledBlockTime float64   `json:"scheduled_block_time,omitempty" yaml:"scheduled_block_time,omitempty"`
	ActualBlockTime    float64   `json:"actual_block_time,omitempty" yaml:"actual_block_time,omitempty"`
	DutyReportTime     time.Time `json:"duty_report_time,omitempty" yaml:"duty_report_time,omitempty"`
	DutyEndTime        time.Time `json:"duty_end_time,omitempty" yaml:"duty_end_time,omitempty"`
	FlightDutyPeriod   float64   `json:"flight_duty_period,omitempty" yaml:"flight_duty_period,omitempty"`
	Position           string    `json:"position,omitempty" yaml:"position,omitempty"`
	OvernightLocation  string    `json:"overnight_location,omitempty" yaml:"overnight_location,omitempty"`
	IsInternational    bool      `json:"is_international,omitempty" yaml:"is_international,omitempty"`
	IsRedeye           bool      `json:"is_redeye,omitempty" yaml:"is_redeye,omitempty"`
	IsDeadhead         bool      `json:"is_deadhead,omitempty" yaml:"is_deadhead,omitempty"`
	TripID             string    `json:"trip_id,omitempty" yaml:"trip_id,omitempty"`
	SequenceNumber     int       `json:"sequence_number,omitempty" yaml:"sequence_number,omitempty"`
}

// Claim is a crew pay claim pending investigation.
type Claim struct {
	ID            string    `json:"id" yaml:"id"`
	ClaimNumber   string    `json:"claim_number" yaml:"claim_number"`
	EmployeeID    string    `json:"employee_id" yaml:"employee_id"`
	ClaimType     string    `json:"claim_type" yaml:"claim_type"`
	Description   string    `json:"description" yaml:"description"`
	AmountClaimed float64   `json:"amount_claimed" yaml:"amount_claimed"`
	FlightNumber  string    `json:"flight_number,omitempty" yaml:"flight_number,omitempty"`
	FiledAt       time.Time `json:"filed_at,omitempty" yaml:"filed_at,omitempty"`
}

// Known claim types.
const (
	ClaimTypeMissingFlightTime   = "missing_flight_time"
	ClaimTypeIncorrectBlockTime  = "incorrect_block_time"
	ClaimTypeMissingPremium      = "missing_premium"
	ClaimTypePerDiemError        = "per_diem_error"
	ClaimTypeGuaranteeNotApplied = "guarantee_not_applied"
	ClaimTypeDutyViolation       = "duty_violation"
	ClaimTypeOther               = "other"
)

// Package calc ships the in-process implementations of the seven
// calculation modules. Every module is deterministic: identical requests
// produce identical results.
package calc

import (
	"math"
	"time"

	"yqhp/pay-engine/internal/module"
	"yqhp/pay-engine/pkg/types"
)

// Contract constants.
const (
	// MinCreditPerSegment 每航段最低计酬小时数
	MinCreditPerSegment = 1.0

	// DailyGuaranteeHours per duty period for reserve day credit.
	DailyGuaranteeHours = 4.0

	// DefaultGuaranteeHours applies when no (role, crew type) entry matches.
	DefaultGuaranteeHours = 70.0

	// Per diem defaults when the rate table has no airport entry.
	DefaultDomesticPerDiem      = 74.0
	DefaultInternationalPerDiem = 110.0

	// First and last day of a trip pay a reduced per diem.
	TripEdgeProration = 0.75

	// Premium rules.
	HolidayPremiumFactor       = 0.5
	InternationalPremiumFactor = 0.15
	DeadheadPayFactor          = 0.5

	// Claims auto-resolution thresholds.
	ClaimAutoResolveConfidence = 0.9
	ClaimAutoResolveMaxAmount  = 500.0
)

// FAA Part 117 cumulative limits.
const (
	LimitFDP7Days          = 60.0
	LimitFDP28Days         = 190.0
	LimitFlightTime28Days  = 100.0
	LimitFlightTime365Days = 1000.0
	MinRestHours           = 10.0
	MaxFDPPerDuty          = 14.0
)

// monthlyGuarantees maps (role, crew type) to guaranteed monthly hours.
var monthlyGuarantees = map[[2]string]float64{
	{types.RoleCaptain, types.CrewTypeLineHolder}:             75.0,
	{types.RoleCaptain, types.CrewTypeReserve}:                73.0,
	{types.RoleFirstOfficer, types.CrewTypeLineHolder}:        75.0,
	{types.RoleFirstOfficer, types.CrewTypeReserve}:           73.0,
	{types.RoleFlightAttendant, types.CrewTypeLineHolder}:     70.0,
	{types.RoleFlightAttendant, types.CrewTypeReserve}:        70.0,
	{types.RoleLeadFlightAttendant, types.CrewTypeLineHolder}: 70.0,
	{types.RoleLeadFlightAttendant, types.CrewTypeReserve}:    70.0,
}

// holidays2025 is the US federal holiday calendar used for holiday pay.
var holidays2025 = map[string]bool{
	"2025-01-01": true, // New Year's Day
	"2025-01-20": true, // MLK Day
	"2025-02-17": true, // Presidents Day
	"2025-05-26": true, // Memorial Day
	"2025-06-19": true, // Juneteenth
	"2025-07-04": true, // Independence Day
	"2025-09-01": true, // Labor Day
	"2025-10-13": true, // Columbus Day
	"2025-11-11": true, // Veterans Day
	"2025-11-27": true, // Thanksgiving
	"2025-12-25": true, // Christmas
}

// redeyePremiums maps role to the flat per-segment red-eye premium.
var redeyePremiums = map[string]float64{
	types.RoleCaptain:      100.0,
	types.RoleFirstOfficer: 75.0,
}

const redeyePremiumDefault = 50.0

// Options carries the configurable rate tables shared by the modules.
type Options struct {
	// PerDiemRates maps airport code to a daily rate. Airports not listed
	// fall back to the domestic/international defaults.
	PerDiemRates map[string]float64

	DomesticPerDiem      float64
	InternationalPerDiem float64
	MealDeductionPerDay  float64
}

// DefaultOptions returns the contract-default rate tables.
func DefaultOptions() Options {
	return Options{
		DomesticPerDiem:      DefaultDomesticPerDiem,
		InternationalPerDiem: DefaultInternationalPerDiem,
	}
}

func (o Options) normalized() Options {
	if o.DomesticPerDiem <= 0 {
		o.DomesticPerDiem = DefaultDomesticPerDiem
	}
	if o.InternationalPerDiem <= 0 {
		o.InternationalPerDiem = DefaultInternationalPerDiem
	}
	return o
}

// RegisterAll registers the seven calculation modules on reg.
func RegisterAll(reg *module.Registry, opts Options) error {
	opts = opts.normalized()
	modules := []module.Module{
		NewFlightTime(),
		NewDutyTime(),
		NewPerDiem(opts),
		NewPremiumPay(),
		NewGuarantee(),
		NewCompliance(),
		NewClaims(),
	}
	for _, m := range modules {
		if err := reg.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// MustRegisterAll registers the seven modules and panics on error.
func MustRegisterAll(reg *module.Registry, opts Options) {
	if err := RegisterAll(reg, opts); err != nil {
		panic(err)
	}
}

// IsHoliday reports whether a flight date falls on a federal holiday.
func IsHoliday(flightDate string) bool {
	return holidays2025[flightDate]
}

// GuaranteeHoursFor returns the monthly guarantee for a crew member. A
// positive profile override takes precedence over the contract table.
func GuaranteeHoursFor(crew *types.CrewMemberProfile) float64 {
	if crew == nil {
		return DefaultGuaranteeHours
	}
	if crew.MonthlyGuarantee > 0 {
		return crew.MonthlyGuarantee
	}
	if hours, ok := monthlyGuarantees[[2]string{crew.Role, crew.CrewType}]; ok {
		return hours
	}
	return DefaultGuaranteeHours
}

// RedeyePremiumFor returns the per-segment red-eye premium for a role.
func RedeyePremiumFor(role string) float64 {
	if amount, ok := redeyePremiums[role]; ok {
		return amount
	}
	return redeyePremiumDefault
}

// segmentBlockTime resolves the block time of one segment, preferring
// actuals over schedule and recorded times over recorded hours.
func segmentBlockTime(f *types.FlightAssignment) (hours float64, fromActual bool) {
	switch {
	case f.ActualBlockTime > 0:
		return round2(f.ActualBlockTime), true
	case !f.ActualDeparture.IsZero() && !f.ActualArrival.IsZero():
		return round2(f.ActualArrival.Sub(f.ActualDeparture).Hours()), true
	case f.ScheduledBlockTime > 0:
		return round2(f.ScheduledBlockTime), false
	case !f.ScheduledDeparture.IsZero() && !f.ScheduledArrival.IsZero():
		return round2(f.ScheduledArrival.Sub(f.ScheduledDeparture).Hours()), false
	default:
		return 0, false
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func hoursBetween(from, to time.Time) float64 {
	if from.IsZero() || to.IsZero() || !to.After(from) {
		return 0
	}
	return to.Sub(from).Hours()
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

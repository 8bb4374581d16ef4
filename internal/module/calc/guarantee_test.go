package calc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yqhp/pay-engine/internal/module"
	"yqhp/pay-engine/pkg/types"
)

func TestGuaranteeNoFlightTime(t *testing.T) {
	m := NewGuarantee()
	req := captainRequest() // line-holder Captain at $105

	out, err := m.Calculate(context.Background(), req)
	require.NoError(t, err)
	result := out.(*types.GuaranteeResult)

	assert.InDelta(t, 75.0, result.GuaranteeHours, 1e-9)
	assert.Zero(t, result.ActualHours)
	assert.InDelta(t, 75.0, result.PaidHours, 1e-9)
	assert.InDelta(t, 75.0*105.0, result.GuaranteePay, 1e-9)
	assert.True(t, result.GuaranteeApplied)
}

func TestGuaranteeActualBelowFloor(t *testing.T) {
	m := NewGuarantee()
	req := captainRequest()
	req.FlightTime = &types.FlightTimeResult{TotalCreditTime: 5.33}

	out, err := m.Calculate(context.Background(), req)
	require.NoError(t, err)
	result := out.(*types.GuaranteeResult)

	assert.InDelta(t, 5.33, result.ActualHours, 1e-9)
	assert.InDelta(t, 75.0, result.PaidHours, 1e-9)
	assert.True(t, result.GuaranteeApplied)
}

func TestGuaranteeActualAboveFloor(t *testing.T) {
	m := NewGuarantee()
	req := captainRequest()
	req.FlightTime = &types.FlightTimeResult{TotalCreditTime: 82.5}

	out, err := m.Calculate(context.Background(), req)
	require.NoError(t, err)
	result := out.(*types.GuaranteeResult)

	assert.InDelta(t, 82.5, result.PaidHours, 1e-9)
	assert.False(t, result.GuaranteeApplied)
	assert.InDelta(t, 82.5*105.0, result.GuaranteePay, 1e-9)
}

func TestGuaranteeHoursTable(t *testing.T) {
	cases := []struct {
		role     string
		crewType string
		want     float64
	}{
		{types.RoleCaptain, types.CrewTypeLineHolder, 75.0},
		{types.RoleCaptain, types.CrewTypeReserve, 73.0},
		{types.RoleFirstOfficer, types.CrewTypeLineHolder, 75.0},
		{types.RoleFlightAttendant, types.CrewTypeReserve, 70.0},
		{"Unknown Role", "unknown", DefaultGuaranteeHours},
	}
	for _, tc := range cases {
		crew := &types.CrewMemberProfile{Role: tc.role, CrewType: tc.crewType}
		assert.InDelta(t, tc.want, GuaranteeHoursFor(crew), 1e-9, "%s/%s", tc.role, tc.crewType)
	}
}

func TestGuaranteeProfileOverride(t *testing.T) {
	m := NewGuarantee()
	req := captainRequest()
	req.CrewMember.MonthlyGuarantee = 80.0

	out, err := m.Calculate(context.Background(), req)
	require.NoError(t, err)
	result := out.(*types.GuaranteeResult)

	assert.InDelta(t, 80.0, result.GuaranteeHours, 1e-9)
	assert.InDelta(t, 80.0*105.0, result.GuaranteePay, 1e-9)
}

func TestGuaranteeRequiresCrewMember(t *testing.T) {
	m := NewGuarantee()
	_, err := m.Calculate(context.Background(), &module.Request{})
	require.Error(t, err)
	assert.True(t, module.IsDataError(err))
}

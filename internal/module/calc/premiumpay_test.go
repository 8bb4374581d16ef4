package calc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yqhp/pay-engine/internal/module"
	"yqhp/pay-engine/pkg/types"
)

func premiumItemOfType(items []types.PremiumItem, kind string) *types.PremiumItem {
	for i := range items {
		if items[i].Type == kind {
			return &items[i]
		}
	}
	return nil
}

func TestPremiumPayHoliday(t *testing.T) {
	m := NewPremiumPay()
	req := captainRequest(types.FlightAssignment{
		FlightNumber:    "XP700",
		FlightDate:      "2025-11-27", // Thanksgiving
		ActualBlockTime: 4.0,
	})

	out, err := m.Calculate(context.Background(), req)
	require.NoError(t, err)
	result := out.(*types.PremiumPayResult)

	item := premiumItemOfType(result.Items, PremiumHoliday)
	require.NotNil(t, item)
	assert.InDelta(t, HolidayPremiumFactor*105.0*4.0, item.Amount, 1e-9)
}

func TestPremiumPayRedeyeByRole(t *testing.T) {
	cases := []struct {
		role string
		want float64
	}{
		{types.RoleCaptain, 100.0},
		{types.RoleFirstOfficer, 75.0},
		{types.RoleFlightAttendant, 50.0},
	}

	m := NewPremiumPay()
	for _, tc := range cases {
		req := &module.Request{
			CrewMember: &types.CrewMemberProfile{
				EmployeeID: "P1",
				Role:       tc.role,
				HourlyRate: 100.0,
			},
			Assignments: []types.FlightAssignment{{
				FlightNumber:    "XP800",
				FlightDate:      "2025-11-05",
				ActualBlockTime: 5.0,
				IsRedeye:        true,
			}},
		}

		out, err := m.Calculate(context.Background(), req)
		require.NoError(t, err)
		result := out.(*types.PremiumPayResult)

		item := premiumItemOfType(result.Items, PremiumRedeye)
		require.NotNil(t, item, "role %s", tc.role)
		assert.InDelta(t, tc.want, item.Amount, 1e-9, "role %s", tc.role)
	}
}

func TestPremiumPayInternational(t *testing.T) {
	m := NewPremiumPay()
	req := captainRequest(types.FlightAssignment{
		FlightNumber:    "XP900",
		FlightDate:      "2025-11-06",
		ActualBlockTime: 6.0,
		IsInternational: true,
	})

	out, err := m.Calculate(context.Background(), req)
	require.NoError(t, err)
	result := out.(*types.PremiumPayResult)

	item := premiumItemOfType(result.Items, PremiumInternational)
	require.NotNil(t, item)
	assert.InDelta(t, InternationalPremiumFactor*105.0*6.0, item.Amount, 1e-9)
}

func TestPremiumPayDeadhead(t *testing.T) {
	m := NewPremiumPay()
	req := captainRequest(types.FlightAssignment{
		FlightNumber:    "XP901",
		FlightDate:      "2025-11-27", // holiday does not stack on deadhead
		ActualBlockTime: 2.0,
		IsDeadhead:      true,
		IsInternational: true,
	})

	out, err := m.Calculate(context.Background(), req)
	require.NoError(t, err)
	result := out.(*types.PremiumPayResult)

	require.Len(t, result.Items, 1)
	assert.Equal(t, PremiumDeadhead, result.Items[0].Type)
	assert.InDelta(t, DeadheadPayFactor*105.0*2.0, result.Items[0].Amount, 1e-9)
	assert.InDelta(t, result.Items[0].Amount, result.TotalPremiumPay, 1e-9)
}

func TestPremiumPayNoPremiums(t *testing.T) {
	m := NewPremiumPay()
	req := captainRequest(types.FlightAssignment{
		FlightNumber:    "XP902",
		FlightDate:      "2025-11-05",
		ActualBlockTime: 3.0,
	})

	out, err := m.Calculate(context.Background(), req)
	require.NoError(t, err)
	result := out.(*types.PremiumPayResult)

	assert.Empty(t, result.Items)
	assert.Zero(t, result.TotalPremiumPay)
	assert.InDelta(t, 1.0, result.Confidence(), 1e-9)
}

func TestPremiumPayRequiresCrewMember(t *testing.T) {
	m := NewPremiumPay()
	_, err := m.Calculate(context.Background(), &module.Request{})
	require.Error(t, err)
	assert.True(t, module.IsDataError(err))
}

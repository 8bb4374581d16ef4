package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState() *ExecutionState {
	crew := &CrewMemberProfile{
		ID:         "cm-1",
		EmployeeID: "P12345",
		Role:       RoleCaptain,
		CrewType:   CrewTypeLineHolder,
		HourlyRate: 105.0,
	}
	return NewExecutionState(crew, nil, "2025-11-01", "2025-11-15")
}

func TestNewExecutionState(t *testing.T) {
	st := newTestState()

	require.NotEmpty(t, st.ExecutionID)
	assert.Equal(t, StatusProcessing, st.Status)
	assert.False(t, st.Status.IsTerminal())
	assert.False(t, st.ProcessingStartedAt.IsZero())
	assert.Nil(t, st.ProcessingCompletedAt)
	assert.Empty(t, st.ErrorLog)
	assert.Empty(t, st.Warnings)

	other := newTestState()
	assert.NotEqual(t, st.ExecutionID, other.ExecutionID)
}

func TestExecutionStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusProcessing.IsTerminal())
	assert.True(t, StatusComplete.IsTerminal())
	assert.True(t, StatusNeedsReview.IsTerminal())
	assert.True(t, StatusError.IsTerminal())
}

func TestAddErrorAppendsOnly(t *testing.T) {
	st := newTestState()

	st.AddError(StagePerDiem, "DATA_ERROR", "bad rate table")
	st.AddError(StageClaims, "TIMEOUT_ERROR", "deadline exceeded")

	require.Len(t, st.ErrorLog, 2)
	assert.Equal(t, StagePerDiem, st.ErrorLog[0].Stage)
	assert.Equal(t, StageClaims, st.ErrorLog[1].Stage)
	assert.True(t, st.HasErrors())
	assert.Contains(t, st.ErrorLog[0].String(), "bad rate table")
}

func TestFlagForReviewIsMonotonic(t *testing.T) {
	st := newTestState()
	assert.False(t, st.RequiresHumanReview)

	st.FlagForReview("compliance failed")
	assert.True(t, st.RequiresHumanReview)
	require.Len(t, st.ReviewReasons, 1)

	// A second flag with no reason keeps the flag raised.
	st.FlagForReview("")
	assert.True(t, st.RequiresHumanReview)
	assert.Len(t, st.ReviewReasons, 1)
}

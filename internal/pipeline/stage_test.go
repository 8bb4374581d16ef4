package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yqhp/pay-engine/internal/audit"
	"yqhp/pay-engine/internal/module"
	"yqhp/pay-engine/pkg/types"
)

func TestExecuteMissingModuleStillAudited(t *testing.T) {
	registry := module.NewRegistry()
	sink := audit.NewMemorySink()
	auditor := audit.NewManager(sink)
	exec := NewStageExecutor(registry, auditor, 0)
	st := emptyState()

	result := exec.Execute(context.Background(), types.StagePerDiem, st)

	assert.False(t, result.IsSuccess())
	require.Len(t, st.ErrorLog, 1)
	assert.Equal(t, string(module.ErrCodeNotFound), st.ErrorLog[0].Code)

	// The failure must still produce its audit entry.
	entries := sink.ByExecution(st.ExecutionID)
	require.Len(t, entries, 1)
	assert.Equal(t, types.StagePerDiem, entries[0].Stage)
	assert.False(t, entries[0].Success)
	assert.NotEmpty(t, entries[0].Error)
}

func TestExecuteMidStageCancellation(t *testing.T) {
	registry := module.NewRegistry()
	registry.MustRegister(&stubStage{
		stage: types.StageDutyTime,
		out:   &types.DutyTimeResult{},
		delay: time.Second,
	})
	sink := audit.NewMemorySink()
	exec := NewStageExecutor(registry, audit.NewManager(sink), 0)
	st := emptyState()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := exec.Execute(ctx, types.StageDutyTime, st)

	assert.Equal(t, types.StageStatusFailed, result.Status)
	assert.Equal(t, "CANCELLED", result.ErrorCode)
	assert.Nil(t, st.DutyTime)
	require.Len(t, st.ErrorLog, 1)
	assert.Equal(t, "CANCELLED", st.ErrorLog[0].Code)
	require.Len(t, sink.ByExecution(st.ExecutionID), 1)
}

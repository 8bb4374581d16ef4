package module

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yqhp/pay-engine/pkg/types"
)

type stubModule struct {
	stage string
	out   types.StageOutput
	err   error
}

func (m *stubModule) Stage() string { return m.stage }

func (m *stubModule) Calculate(ctx context.Context, req *Request) (types.StageOutput, error) {
	return m.out, m.err
}

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry()

	err := reg.Register(&stubModule{stage: types.StageFlightTime})
	require.NoError(t, err)
	assert.True(t, reg.Has(types.StageFlightTime))
	assert.Equal(t, 1, reg.Count())
}

func TestRegistryRegisterNil(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(nil)
	assert.Error(t, err)
}

func TestRegistryRegisterEmptyStage(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(&stubModule{stage: ""})
	assert.Error(t, err)
}

func TestRegistryRegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&stubModule{stage: types.StageGuarantee}))

	err := reg.Register(&stubModule{stage: types.StageGuarantee})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistryGetOrError(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.GetOrError(types.StageCompliance)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))

	m := &stubModule{stage: types.StageCompliance}
	require.NoError(t, reg.Register(m))

	got, err := reg.GetOrError(types.StageCompliance)
	require.NoError(t, err)
	assert.Same(t, m, got.(*stubModule))
}

func TestRegistryUnregister(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&stubModule{stage: types.StageClaims}))

	reg.Unregister(types.StageClaims)
	assert.False(t, reg.Has(types.StageClaims))
	assert.Nil(t, reg.Get(types.StageClaims))
}

func TestRegistryStages(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&stubModule{stage: types.StageFlightTime}))
	require.NoError(t, reg.Register(&stubModule{stage: types.StageDutyTime}))

	stages := reg.Stages()
	assert.ElementsMatch(t, []string{types.StageFlightTime, types.StageDutyTime}, stages)
}

func TestMustRegisterPanics(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(&stubModule{stage: types.StagePerDiem})

	assert.Panics(t, func() {
		reg.MustRegister(&stubModule{stage: types.StagePerDiem})
	})
}

func TestErrorTaxonomy(t *testing.T) {
	transient := NewTransientError(types.StageFlightTime, "upstream unavailable", nil)
	data := NewDataError(types.StageFlightTime, "bad payload", assert.AnError)
	timeout := NewTimeoutError(types.StageDutyTime, 0)

	assert.True(t, IsTransientError(transient))
	assert.False(t, IsTransientError(data))
	assert.True(t, IsDataError(data))
	assert.True(t, IsTimeoutError(timeout))
	assert.Equal(t, ErrCodeTransient, CodeOf(transient))
	assert.Equal(t, ErrCodeData, CodeOf(assert.AnError))

	assert.ErrorIs(t, data, assert.AnError)
	assert.Contains(t, data.Error(), "DATA_ERROR")
}

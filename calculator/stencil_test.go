package calculator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanAbsoluteChange(t *testing.T) {
	prev, err := NewGrid(2, 2, 0)
	require.NoError(t, err)
	next := prev.Clone()
	require.NoError(t, next.SetCell(0, 0, 4))

	delta, err := MeanAbsoluteChange(prev, next)
	require.NoError(t, err)
	assert.Equal(t, 1.0, delta)

	other, err := NewGrid(3, 2, 0)
	require.NoError(t, err)
	_, err = MeanAbsoluteChange(prev, other)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestStep_DoesNotMutateCurrent(t *testing.T) {
	current, err := NewGrid(3, 3, 0)
	require.NoError(t, err)
	require.NoError(t, InjectHeat(current, 1, 1, 100))
	before := current.Cells()

	next, delta := Step(current, 0)

	assert.Equal(t, before, current.Cells())
	assert.NotSame(t, current, next)
	// 中心点的热量平均分给四个相邻节点
	assert.Equal(t, 0.0, next.At(1, 1))
	assert.Equal(t, 25.0, next.At(0, 1))
	assert.Equal(t, 25.0, next.At(2, 1))
	assert.Equal(t, 25.0, next.At(1, 0))
	assert.Equal(t, 25.0, next.At(1, 2))
	assert.Equal(t, 0.0, next.At(0, 0))

	want, err := MeanAbsoluteChange(current, next)
	require.NoError(t, err)
	assert.InDelta(t, want, delta, 1e-12)
	assert.InDelta(t, 200.0/9, delta, 1e-12)
}

func TestStep_ResistanceBlend(t *testing.T) {
	current, err := NewGrid(3, 3, 0)
	require.NoError(t, err)
	require.NoError(t, InjectHeat(current, 1, 1, 100))

	next, _ := Step(current, 0.25)
	// a = 0, b = 100 -> 0 + (100 - 0) * 0.25
	assert.InDelta(t, 25.0, next.At(1, 1), 1e-12)
	// a = 25, b = 0 -> 25 + (0 - 25) * 0.25
	assert.InDelta(t, 18.75, next.At(0, 1), 1e-12)
}

func TestStep_FullResistanceIsNoop(t *testing.T) {
	current, err := NewGrid(4, 5, 10)
	require.NoError(t, err)
	require.NoError(t, InjectHeat(current, 3, 2, 900))

	next, delta := Step(current, 1)
	assert.Equal(t, current.Cells(), next.Cells())
	assert.Equal(t, 0.0, delta)
}

func TestStep_ConservesHeat(t *testing.T) {
	current, err := NewGrid(6, 4, 5)
	require.NoError(t, err)
	require.NoError(t, InjectHeat(current, 0, 3, 250))

	next := current
	for i := 0; i < 20; i++ {
		next, _ = Step(next, 0.3)
	}
	assert.InDelta(t, current.Sum(), next.Sum(), 1e-9)
}

func TestExecutor_RowsMatchInline(t *testing.T) {
	current, err := NewGrid(9, 7, 3)
	require.NoError(t, err)
	require.NoError(t, InjectHeat(current, 8, 0, 300))
	require.NoError(t, InjectHeat(current, 4, 4, -50))

	want, wantDelta := Step(current, 0.4)

	for _, workers := range []int{2, 3, 4, 16} {
		e := newExecutor(workers)
		next := current.Clone()
		sum := e.dispatchTask(current, next, 0.4)
		e.close()

		assert.Empty(t, cmp.Diff(want.Cells(), next.Cells()), "workers %d", workers)
		assert.True(t, cmp.Equal(wantDelta, sum/float64(current.Len()), cmpopts.EquateApprox(0, 1e-12)), "workers %d", workers)
	}
}

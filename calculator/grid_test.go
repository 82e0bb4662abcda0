package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_WrapIndexPeriodic(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {1, 4}, {3, 1}, {2, 2}, {5, 3}, {7, 11}} {
		g, err := NewGrid(size[0], size[1], 0)
		require.NoError(t, err)
		for i := -15; i <= 15; i++ {
			for j := -15; j <= 15; j++ {
				want := g.WrapIndex(i, j)
				require.GreaterOrEqual(t, want, 0)
				require.Less(t, want, g.Len())
				for _, k := range []int{-3, -1, 1, 4} {
					for _, m := range []int{-2, 1, 3} {
						got := g.WrapIndex(i+k*g.Width(), j+m*g.Height())
						require.Equalf(t, want, got, "size %v (%d,%d) k=%d m=%d", size, i, j, k, m)
					}
				}
			}
		}
	}
}

func TestGrid_WrapIndexIdempotentOnValid(t *testing.T) {
	g, err := NewGrid(4, 6, 0)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		for j := 0; j < 6; j++ {
			assert.Equal(t, i*6+j, g.WrapIndex(i, j))
		}
	}
	assert.Equal(t, g.WrapIndex(3, 5), g.WrapIndex(-1, -1))
	assert.Equal(t, g.WrapIndex(0, 0), g.WrapIndex(4, 6))
}

func TestGrid_DegenerateAxis(t *testing.T) {
	g, err := NewGrid(1, 3, 0)
	require.NoError(t, err)
	for i := -5; i <= 5; i++ {
		assert.Equal(t, g.WrapIndex(0, 2), g.WrapIndex(i, 2))
	}
}

func TestNewGrid_RejectsBadDimensions(t *testing.T) {
	for _, size := range [][2]int{{0, 1}, {1, 0}, {-1, 5}, {5, -1}} {
		_, err := NewGrid(size[0], size[1], 0)
		assert.ErrorIs(t, err, ErrInvalidDimension)
		assert.ErrorIs(t, err, ErrConfiguration)
	}
}

func TestGrid_CellBounds(t *testing.T) {
	g, err := NewGrid(3, 2, 1.5)
	require.NoError(t, err)

	v, err := g.Cell(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	_, err = g.Cell(3, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.ErrorIs(t, g.SetCell(0, -1, 9), ErrOutOfBounds)

	require.NoError(t, g.SetCell(1, 1, 9))
	assert.Equal(t, 9.0, g.At(1, 1))
	assert.Equal(t, 9.0, g.At(-2, 3))
}

func TestInjectHeat(t *testing.T) {
	g, err := NewGrid(4, 3, 20)
	require.NoError(t, err)
	require.NoError(t, InjectHeat(g, 2, 1, 500))

	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			want := 20.0
			if i == 2 && j == 1 {
				want = 500
			}
			assert.Equalf(t, want, g.At(i, j), "cell (%d,%d)", i, j)
		}
	}
	assert.Equal(t, 20.0*11+500, g.Sum())
}

func TestInjectHeat_NoWrapping(t *testing.T) {
	g, err := NewGrid(4, 3, 20)
	require.NoError(t, err)
	for _, p := range [][2]int{{4, 0}, {-1, 0}, {0, 3}, {0, -1}, {8, 6}} {
		err := InjectHeat(g, p[0], p[1], 500)
		assert.ErrorIs(t, err, ErrInjectionOutOfBounds)
	}
	assert.Equal(t, 20.0*12, g.Sum())
}

func TestGrid_RowsAreCopies(t *testing.T) {
	g, err := NewGrid(2, 3, 1)
	require.NoError(t, err)
	rows := g.Rows()
	require.Len(t, rows, 2)
	require.Len(t, rows[0], 3)
	rows[0][0] = 42
	assert.Equal(t, 1.0, g.At(0, 0))
}

func TestGrid_WrapIndexExtremes(t *testing.T) {
	g, err := NewGrid(1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, g.WrapIndex(math.MinInt, math.MinInt))
	assert.Equal(t, 0, g.WrapIndex(math.MaxInt, math.MaxInt))

	// -2^63 ≡ 1 (mod 3), ≡ 2 (mod 5)；2^63-1 ≡ 1 (mod 3), ≡ 2 (mod 5)
	g, err = NewGrid(3, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, 1*5+2, g.WrapIndex(math.MinInt, math.MinInt))
	assert.Equal(t, 1*5+2, g.WrapIndex(math.MaxInt, math.MaxInt))
	assert.Equal(t, g.WrapIndex(math.MinInt+3, math.MinInt+5), g.WrapIndex(math.MinInt, math.MinInt))
}

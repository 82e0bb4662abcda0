package calculator

import (
	"fmt"
	"math"
)

// Grid 二维温度场，按行优先存储在一维数组中: offset = i*height + j
// i 为 x 方向，j 为 y 方向
type Grid struct {
	width  int
	height int
	cells  []float64
}

// NewGrid 创建 width x height 的温度场，所有节点为 initialTemperature
func NewGrid(width, height int, initialTemperature float64) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, width, height)
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]float64, width*height),
	}
	g.Fill(initialTemperature)
	return g, nil
}

func (g *Grid) Width() int { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) Len() int { return len(g.cells) }

// WrapIndex 将任意坐标映射到一维下标，超出边界的坐标环绕到另一侧
func (g *Grid) WrapIndex(i, j int) int {
	i = (i%g.width + g.width) % g.width
	j = (j%g.height + g.height) % g.height
	return i*g.height + j
}

// At 环绕读取
func (g *Grid) At(i, j int) float64 {
	return g.cells[g.WrapIndex(i, j)]
}

// Set 环绕写入
func (g *Grid) Set(i, j int, v float64) {
	g.cells[g.WrapIndex(i, j)] = v
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Cell 严格检查边界的读取，不做环绕
func (g *Grid) Cell(x, y int) (float64, error) {
	if !g.inBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d, %d) not in %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return g.cells[x*g.height+y], nil
}

// SetCell 严格检查边界的写入，不做环绕
func (g *Grid) SetCell(x, y int, v float64) error {
	if !g.inBounds(x, y) {
		return fmt.Errorf("%w: (%d, %d) not in %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
	}
	g.cells[x*g.height+y] = v
	return nil
}

func (g *Grid) Fill(v float64) {
	for k := range g.cells {
		g.cells[k] = v
	}
}

// Cells 返回一维数据的拷贝
func (g *Grid) Cells() []float64 {
	out := make([]float64, len(g.cells))
	copy(out, g.cells)
	return out
}

// Rows 返回二维拷贝，Rows()[i][j]
func (g *Grid) Rows() [][]float64 {
	out := make([][]float64, g.width)
	for i := 0; i < g.width; i++ {
		row := make([]float64, g.height)
		copy(row, g.cells[i*g.height:(i+1)*g.height])
		out[i] = row
	}
	return out
}

// Sum 整个金属板的热量总和
func (g *Grid) Sum() float64 {
	sum := 0.0
	for _, v := range g.cells {
		sum += v
	}
	return sum
}

func (g *Grid) Clone() *Grid {
	return &Grid{
		width:  g.width,
		height: g.height,
		cells:  g.Cells(),
	}
}

func (g *Grid) sameShape(o *Grid) bool {
	return g.width == o.width && g.height == o.height
}

// InjectHeat 在 (x, y) 注入热源，坐标必须在边界内
func InjectHeat(g *Grid, x, y int, temperature float64) error {
	if math.IsNaN(temperature) || math.IsInf(temperature, 0) {
		return fmt.Errorf("%w: injection temperature %v", ErrNonFinite, temperature)
	}
	if !g.inBounds(x, y) {
		return fmt.Errorf("%w: (%d, %d) not in %dx%d", ErrInjectionOutOfBounds, x, y, g.width, g.height)
	}
	g.cells[x*g.height+y] = temperature
	return nil
}

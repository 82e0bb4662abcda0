package calculator

import (
	"fmt"
	"math"
)

// Step 对 current 做一次完整的五点差分松弛，返回新的温度场和平均变化量 delta
// current 不会被修改
func Step(current *Grid, r float64) (*Grid, float64) {
	next := &Grid{
		width:  current.width,
		height: current.height,
		cells:  make([]float64, len(current.cells)),
	}
	sum := sweepRows(current, next, r, 0, current.width)
	return next, sum / float64(current.Len())
}

// sweepRows 计算 [first, last) 行，结果写入 next，返回这些行 |next - current| 的和
// 只读取 current，因此不同的行区间可以并行计算
func sweepRows(current, next *Grid, r float64, first, last int) float64 {
	sum := 0.0
	for i := first; i < last; i++ {
		for j := 0; j < current.height; j++ {
			// 上下左右四个相邻节点的平均值
			a := (current.At(i+1, j) + current.At(i-1, j) + current.At(i, j+1) + current.At(i, j-1)) / 4
			b := current.cells[i*current.height+j]
			// 即 a + (b-a)*r；r = 0 时等于 a，r = 1 时等于 b
			v := a*(1-r) + b*r
			next.cells[i*current.height+j] = v
			sum += math.Abs(v - b)
		}
	}
	return sum
}

// MeanAbsoluteChange 两个温度场之间每个节点变化量绝对值的平均值
func MeanAbsoluteChange(prev, next *Grid) (float64, error) {
	if !prev.sameShape(next) {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch, prev.width, prev.height, next.width, next.height)
	}
	sum := 0.0
	for k := range prev.cells {
		sum += math.Abs(next.cells[k] - prev.cells[k])
	}
	return sum / float64(prev.Len()), nil
}

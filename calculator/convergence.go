package calculator

const (
	// 每个节点的平均变化量低于该值时停止计算
	// 注意是绝对值，不是相对于整个金属板热量的百分比
	Threshold = 0.0001

	// 超过该迭代次数仍未收敛则认为计算失败
	MaxIterations = 300
)

// State 计算状态: Configuring -> Running -> {Converged, NonConvergent}
type State int

const (
	Configuring State = iota
	Running
	Converged
	NonConvergent
)

func (s State) String() string {
	switch s {
	case Configuring:
		return "configuring"
	case Running:
		return "running"
	case Converged:
		return "converged"
	case NonConvergent:
		return "nonConvergent"
	default:
		return "unknown"
	}
}

// Terminal 收敛和不收敛都是终止状态
func (s State) Terminal() bool {
	return s == Converged || s == NonConvergent
}

func HasConverged(delta, threshold float64) bool {
	return delta < threshold
}

package calculator

import (
	"context"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"heat/model"
)

// Observer 每完成一次迭代调用一次
type Observer func(frame model.Frame)

type Calculator interface {
	// 当前温度场
	Field() *Grid
	Iteration() int
	Delta() float64
	State() State

	// 计算一次迭代
	Step() (float64, error)

	// 迭代直到收敛或超过最大迭代次数
	Run(ctx context.Context, observer Observer) (model.Result, error)

	Close()
}

// HeatCalculator 双缓冲的温度场计算器
type HeatCalculator struct {
	env model.Env
	cfg Config

	thermalField  *Grid // 当前温度场，只读
	thermalField1 *Grid // 下一次迭代写入

	iteration int
	delta     float64
	state     State

	e      executor
	closed bool
}

var _ Calculator = (*HeatCalculator)(nil)

// NewCalculator 检查参数，初始化两个温度场并注入热源
func NewCalculator(env model.Env, cfg Config) (*HeatCalculator, error) {
	if cfg.Threshold <= 0 {
		cfg.Threshold = Threshold
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = MaxIterations
	}
	if env.Inject != nil {
		p := *env.Inject
		env.Inject = &p
	}
	c := &HeatCalculator{
		env:   env,
		cfg:   cfg,
		state: Configuring,
	}
	if err := Validate(env); err != nil {
		return nil, err
	}

	var err error
	c.thermalField, err = NewGrid(env.Width, env.Height, env.InitialTemperature)
	if err != nil {
		return nil, err
	}
	if env.Inject != nil {
		if err := InjectHeat(c.thermalField, env.Inject.X, env.Inject.Y, env.Inject.Temperature); err != nil {
			return nil, err
		}
	}
	c.thermalField1 = c.thermalField.Clone()

	c.e = newExecutor(cfg.Workers)
	c.state = Running

	log.WithFields(log.Fields{
		"width":              env.Width,
		"height":             env.Height,
		"initialTemperature": env.InitialTemperature,
		"resistance":         env.Resistance,
		"workers":            cfg.Workers,
	}).Info("初始化温度场")
	if env.Inject != nil {
		log.WithFields(log.Fields{
			"x":           env.Inject.X,
			"y":           env.Inject.Y,
			"temperature": env.Inject.Temperature,
		}).Info("注入热源")
	}
	return c, nil
}

// Validate 检查配置参数，任何一项不合法都不能开始计算
func Validate(env model.Env) error {
	if env.Width < 1 || env.Height < 1 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, env.Width, env.Height)
	}
	if !finite(env.InitialTemperature) {
		return fmt.Errorf("%w: initial temperature %v", ErrNonFinite, env.InitialTemperature)
	}
	if math.IsNaN(env.Resistance) {
		return fmt.Errorf("%w: resistance %v", ErrNonFinite, env.Resistance)
	}
	if env.Resistance < 0 || env.Resistance > 1 {
		return fmt.Errorf("%w: got %v", ErrResistanceRange, env.Resistance)
	}
	if p := env.Inject; p != nil {
		if !finite(p.Temperature) {
			return fmt.Errorf("%w: injection temperature %v", ErrNonFinite, p.Temperature)
		}
		if p.X < 0 || p.X >= env.Width || p.Y < 0 || p.Y >= env.Height {
			return fmt.Errorf("%w: (%d, %d) not in %dx%d", ErrInjectionOutOfBounds, p.X, p.Y, env.Width, env.Height)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (c *HeatCalculator) Field() *Grid { return c.thermalField }
func (c *HeatCalculator) Iteration() int { return c.iteration }
func (c *HeatCalculator) Delta() float64 { return c.delta }
func (c *HeatCalculator) State() State { return c.state }

// Step 计算一次迭代
// 1. 根据 thermalField 计算 thermalField1
// 2. 计算 delta，判断是否收敛
// 3. 判断是否超过最大迭代次数
// 4. 交换两个温度场
func (c *HeatCalculator) Step() (float64, error) {
	if c.state.Terminal() {
		return c.delta, fmt.Errorf("%w: %s", ErrTerminated, c.state)
	}
	if c.closed {
		return c.delta, ErrClosed
	}

	sum := c.e.dispatchTask(c.thermalField, c.thermalField1, c.env.Resistance)
	delta := sum / float64(c.thermalField.Len())
	if !finite(delta) {
		return delta, fmt.Errorf("%w: iteration %d", ErrDiverged, c.iteration+1)
	}

	c.iteration++
	c.delta = delta
	c.thermalField, c.thermalField1 = c.thermalField1, c.thermalField

	if HasConverged(delta, c.cfg.Threshold) {
		c.state = Converged
		log.WithFields(log.Fields{
			"iteration": c.iteration,
			"delta":     delta,
		}).Info("温度场收敛")
		return delta, nil
	}
	if c.iteration > c.cfg.MaxIterations {
		c.state = NonConvergent
		log.WithFields(log.Fields{
			"iteration": c.iteration,
			"delta":     delta,
		}).Warn("超过最大迭代次数，温度场未收敛")
		return delta, &NonConvergentError{Iterations: c.iteration, Delta: delta}
	}
	log.WithFields(log.Fields{
		"iteration": c.iteration,
		"delta":     delta,
	}).Debug("迭代完成")
	return delta, nil
}

// Run 从当前状态迭代到终止状态
// observer 先收到初始温度场，之后每次迭代完成后收到一次
func (c *HeatCalculator) Run(ctx context.Context, observer Observer) (model.Result, error) {
	if observer == nil {
		observer = func(model.Frame) {}
	}
	observer(c.Frame())
	for !c.state.Terminal() {
		select {
		case <-ctx.Done():
			return c.Result(), ctx.Err()
		default:
		}
		_, err := c.Step()
		if err != nil && c.state != NonConvergent {
			return c.Result(), err
		}
		observer(c.Frame())
		if err != nil {
			return c.Result(), err
		}
	}
	if c.state == NonConvergent {
		return c.Result(), &NonConvergentError{Iterations: c.iteration, Delta: c.delta}
	}
	return c.Result(), nil
}

// Frame 当前温度场的快照
func (c *HeatCalculator) Frame() model.Frame {
	return model.Frame{
		Iteration: c.iteration,
		Delta:     c.delta,
		Width:     c.thermalField.width,
		Height:    c.thermalField.height,
		Cells:     c.thermalField.Rows(),
	}
}

func (c *HeatCalculator) Result() model.Result {
	return model.Result{
		State:      c.state.String(),
		Iterations: c.iteration,
		Delta:      c.delta,
	}
}

// Close 停止 worker
func (c *HeatCalculator) Close() {
	c.closed = true
	c.e.close()
}

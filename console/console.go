// Package console 控制台驱动：读取参数，逐帧打印温度场
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"heat/calculator"
	"heat/model"
)

var ErrInvalidInput = errors.New("invalid input")

const clearScreen = "\033[H\033[2J"

type Console struct {
	in  *bufio.Scanner
	out io.Writer
	cfg calculator.Config
}

func New(in io.Reader, out io.Writer, cfg calculator.Config) *Console {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	return &Console{
		in:  scanner,
		out: out,
		cfg: cfg,
	}
}

func (c *Console) token() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: unexpected end of input", ErrInvalidInput)
	}
	return c.in.Text(), nil
}

func (c *Console) readInt() (int, error) {
	s, err := c.token()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidInput, s)
	}
	return v, nil
}

func (c *Console) readFloat() (float64, error) {
	s, err := c.token()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, s)
	}
	return v, nil
}

// ReadEnv 依次读取尺寸、初始温度、热源和热阻，每一项读入后立即检查
func (c *Console) ReadEnv() (model.Env, error) {
	var env model.Env
	var err error

	fmt.Fprint(c.out, "Please type in the size of the sheet of metal (x y): ")
	if env.Width, err = c.readInt(); err != nil {
		return env, err
	}
	if env.Width < 1 {
		return env, fmt.Errorf("%w: %v", ErrInvalidInput, calculator.ErrInvalidDimension)
	}
	if env.Height, err = c.readInt(); err != nil {
		return env, err
	}
	if env.Height < 1 {
		return env, fmt.Errorf("%w: %v", ErrInvalidInput, calculator.ErrInvalidDimension)
	}

	fmt.Fprint(c.out, "Please type in the starting temperature for the sheet: ")
	if env.InitialTemperature, err = c.readFloat(); err != nil {
		return env, err
	}
	if math.IsNaN(env.InitialTemperature) || math.IsInf(env.InitialTemperature, 0) {
		return env, fmt.Errorf("%w: %v", ErrInvalidInput, calculator.ErrNonFinite)
	}
	preview, err := calculator.NewGrid(env.Width, env.Height, env.InitialTemperature)
	if err != nil {
		return env, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	c.PrintGrid(preview.Rows())

	fmt.Fprint(c.out, "Please type in the coordinate and a temperature to inject into the sheet (x y temp): ")
	p := &model.HeatPoint{}
	if p.X, err = c.readInt(); err != nil {
		return env, err
	}
	if p.Y, err = c.readInt(); err != nil {
		return env, err
	}
	if p.Temperature, err = c.readFloat(); err != nil {
		return env, err
	}
	if err := calculator.InjectHeat(preview, p.X, p.Y, p.Temperature); err != nil {
		return env, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	env.Inject = p
	c.PrintGrid(preview.Rows())

	fmt.Fprint(c.out, "Please type in the thermal resistance of the sheet from 0 to 1 (0 = no resistance, 1 = perfect resistance): ")
	if env.Resistance, err = c.readFloat(); err != nil {
		return env, err
	}
	if math.IsNaN(env.Resistance) || env.Resistance < 0 || env.Resistance > 1 {
		return env, fmt.Errorf("%w: %v", ErrInvalidInput, calculator.ErrResistanceRange)
	}
	return env, nil
}

// WaitReady 读入任意一个词后开始计算
func (c *Console) WaitReady() error {
	fmt.Fprintln(c.out, "Ready to run. Type anything to begin execution.")
	_, err := c.token()
	return err
}

// PrintGrid 按配置的精度和宽度打印温度场
func (c *Console) PrintGrid(rows [][]float64) {
	if c.cfg.Clear {
		fmt.Fprint(c.out, clearScreen)
	}
	w := bufio.NewWriter(c.out)
	for _, row := range rows {
		for _, v := range row {
			fmt.Fprintf(w, "%*.*f", c.cfg.CellWidth, c.cfg.Precision, v)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

// Simulate 运行计算，每帧打印后等待 FrameInterval
// 未收敛时返回错误，由调用方决定退出码
func (c *Console) Simulate(ctx context.Context, env model.Env) error {
	calc, err := calculator.NewCalculator(env, c.cfg)
	if err != nil {
		return err
	}
	defer calc.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	result, err := calc.Run(ctx, func(frame model.Frame) {
		c.PrintGrid(frame.Cells)
		fmt.Fprintf(c.out, "Frame: %d\n", frame.Iteration)
		if err := c.pace(ctx); err != nil {
			cancel()
		}
	})

	var nce *calculator.NonConvergentError
	switch {
	case errors.As(err, &nce):
		fmt.Fprintln(c.out, "Run failed. Array did not converge.")
		return err
	case err != nil:
		return err
	}

	fmt.Fprintf(c.out, "Delta: %g\n", result.Delta)
	fmt.Fprintln(c.out, "Simulation Finished.")
	log.WithFields(log.Fields{
		"iterations": result.Iterations,
		"delta":      result.Delta,
	}).Debug("控制台计算结束")
	return nil
}

func (c *Console) pace(ctx context.Context) error {
	if c.cfg.FrameInterval <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(c.cfg.FrameInterval)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run 交互模式：读取参数、等待确认、运行
func (c *Console) Run(ctx context.Context) error {
	env, err := c.ReadEnv()
	if err != nil {
		fmt.Fprintln(c.out, "Invalid input.")
		return err
	}
	if err := c.WaitReady(); err != nil {
		return err
	}
	return c.Simulate(ctx, env)
}

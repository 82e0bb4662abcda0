package calculator

import (
	"sync"
)

type executor interface {
	// 计算 current 的所有行并写入 next，返回 |next - current| 的总和
	dispatchTask(current, next *Grid, r float64) float64
	close()
}

// 单线程，直接遍历
type executorInline struct{}

func (executorInline) dispatchTask(current, next *Grid, r float64) float64 {
	return sweepRows(current, next, r, 0, current.width)
}

func (executorInline) close() {}

// 基于行任务分配，每个任务计算一段连续的行并返回部分和
type executorBaseOnRows struct {
	workers      int
	dispatchChan chan task
	doneChan     chan result
	stop         chan struct{}
	once         sync.Once
}

type task struct {
	index   int
	start   int
	end     int
	r       float64
	current *Grid
	next    *Grid
}

type result struct {
	index int
	sum   float64
}

func newExecutor(workers int) executor {
	if workers <= 1 {
		return executorInline{}
	}
	e := &executorBaseOnRows{
		workers:      workers,
		dispatchChan: make(chan task, workers),
		doneChan:     make(chan result, workers),
		stop:         make(chan struct{}),
	}
	e.run()
	return e
}

func (e *executorBaseOnRows) run() {
	for i := 0; i < e.workers; i++ {
		go func() {
			for {
				select {
				case t := <-e.dispatchChan:
					sum := sweepRows(t.current, t.next, t.r, t.start, t.end)
					e.doneChan <- result{index: t.index, sum: sum}
				case <-e.stop:
					return
				}
			}
		}()
	}
}

// dispatchTask 按行平均分配任务，余数分给前面的任务
// 部分和按任务下标顺序累加，结果与调度顺序无关
func (e *executorBaseOnRows) dispatchTask(current, next *Grid, r float64) float64 {
	total := current.width
	tasks := e.workers
	if total < tasks {
		tasks = total
	}
	taskLen, remainder := total/tasks, total%tasks

	go func() {
		start := 0
		for i := 0; i < tasks; i++ {
			end := start + taskLen
			if i < remainder {
				end++
			}
			e.dispatchChan <- task{index: i, start: start, end: end, r: r, current: current, next: next}
			start = end
		}
	}()

	sums := make([]float64, tasks)
	for i := 0; i < tasks; i++ {
		res := <-e.doneChan
		sums[res.index] = res.sum
	}
	sum := 0.0
	for _, s := range sums {
		sum += s
	}
	return sum
}

func (e *executorBaseOnRows) close() {
	e.once.Do(func() {
		close(e.stop)
	})
}

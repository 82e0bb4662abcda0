package calculator

import (
	"sync"

	"heat/model"
)

// CalcHub 把每次迭代的温度场推送给外部（websocket 等）
type CalcHub struct {
	Stop             chan struct{}
	PeriodCalcResult chan model.Frame

	once sync.Once
}

func NewCalcHub(buffer int) *CalcHub {
	return &CalcHub{
		Stop:             make(chan struct{}),
		PeriodCalcResult: make(chan model.Frame, buffer),
	}
}

// PushSignal 推送一帧，停止后直接丢弃
func (ch *CalcHub) PushSignal(frame model.Frame) {
	select {
	case ch.PeriodCalcResult <- frame:
	case <-ch.Stop:
	}
}

func (ch *CalcHub) StopSignal() {
	ch.once.Do(func() {
		close(ch.Stop)
	})
}

// Observer 作为 Run 的回调使用
func (ch *CalcHub) Observer() Observer {
	return ch.PushSignal
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"heat/calculator"
	"heat/deque"
	"heat/model"
)

// Hub 每个 websocket 连接对应一个 Hub
// 请求在 handleRequest 中处理，所有写操作都在 handleResponse 中完成
type Hub struct {
	cfg  calculator.Config
	conn *websocket.Conn
	// request
	msg chan model.Msg
	// response
	reply chan model.Msg
	done  chan struct{}

	env *model.Env

	mu      sync.Mutex // 保护 history 和 cancel
	history deque.Deque
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewHub(conn *websocket.Conn, cfg calculator.Config) *Hub {
	return &Hub{
		cfg:     cfg,
		conn:    conn,
		msg:     make(chan model.Msg, 10),
		reply:   make(chan model.Msg, 10),
		done:    make(chan struct{}),
		history: deque.New(cfg.HistoryDeque, cfg.History),
	}
}

// Serve 读取请求直到连接断开
func (h *Hub) Serve() {
	go h.handleRequest()
	go h.handleResponse()
	defer func() {
		close(h.done)
		h.stopRunning()
		h.wg.Wait()
	}()

	for {
		var msg model.Msg
		if err := h.conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("read message failed")
			}
			return
		}
		select {
		case h.msg <- msg:
		case <-h.done:
			return
		}
	}
}

func (h *Hub) send(msg model.Msg) {
	select {
	case h.reply <- msg:
	case <-h.done:
	}
}

func (h *Hub) sendJSON(typ string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("marshal reply failed")
		h.send(model.Msg{Type: model.MsgError, Content: err.Error()})
		return
	}
	h.send(model.Msg{Type: typ, Content: string(data)})
}

func (h *Hub) sendError(err error) {
	h.send(model.Msg{Type: model.MsgError, Content: err.Error()})
}

func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.reply:
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.WithError(err).Warn("write message failed")
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleRequest() {
	for {
		select {
		case msg := <-h.msg:
			switch msg.Type {
			case model.MsgEnv:
				h.handleEnv(msg)
			case model.MsgStart:
				h.handleStart()
			case model.MsgStop:
				if !h.stopRunning() {
					h.send(model.Msg{Type: model.MsgStopped, Content: "not running"})
				}
			case model.MsgHistory:
				h.handleHistory()
			default:
				log.WithField("type", msg.Type).Warn("no such type")
				h.sendError(fmt.Errorf("no such type: %q", msg.Type))
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleEnv(msg model.Msg) {
	var env model.Env
	if err := json.Unmarshal([]byte(msg.Content), &env); err != nil {
		h.sendError(fmt.Errorf("parse env: %w", err))
		return
	}
	if err := calculator.Validate(env); err != nil {
		h.sendError(err)
		return
	}
	h.env = &env
	log.WithFields(log.Fields{
		"width":      env.Width,
		"height":     env.Height,
		"resistance": env.Resistance,
	}).Info("设置金属板参数")
	h.send(model.Msg{Type: model.MsgEnvSet, Content: "env is set"})
}

func (h *Hub) handleStart() {
	if h.env == nil {
		h.sendError(errors.New("env is not set"))
		return
	}
	h.mu.Lock()
	select {
	case <-h.done:
		h.mu.Unlock()
		return
	default:
	}
	if h.cancel != nil {
		h.mu.Unlock()
		h.sendError(errors.New("simulation is already running"))
		return
	}
	calc, err := calculator.NewCalculator(*h.env, h.cfg)
	if err != nil {
		h.mu.Unlock()
		h.sendError(err)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.history.Clear()
	h.wg.Add(1)
	h.mu.Unlock()

	h.send(model.Msg{Type: model.MsgStarted})
	go h.run(ctx, calc)
}

// run 在后台计算，温度场经 CalcHub 转发给客户端
func (h *Hub) run(ctx context.Context, calc *calculator.HeatCalculator) {
	defer h.wg.Done()
	defer calc.Close()

	calcHub := calculator.NewCalcHub(h.cfg.History)
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		h.forward(calcHub)
	}()
	go func() {
		select {
		case <-h.done:
			calcHub.StopSignal()
		case <-forwarded:
		}
	}()

	result, err := calc.Run(ctx, func(frame model.Frame) {
		h.mu.Lock()
		h.history.AddLast(frame)
		h.mu.Unlock()
		calcHub.PushSignal(frame)
	})
	calcHub.StopSignal()
	<-forwarded

	h.mu.Lock()
	h.cancel = nil
	h.mu.Unlock()

	var nce *calculator.NonConvergentError
	switch {
	case err == nil:
		h.sendJSON(model.MsgConverged, result)
	case errors.As(err, &nce):
		h.sendJSON(model.MsgNonConvergent, result)
	case errors.Is(err, context.Canceled):
		h.sendJSON(model.MsgStopped, result)
	default:
		h.sendError(err)
	}
}

// forward 推送 CalcHub 中的温度场，停止后把剩余的推送完
func (h *Hub) forward(calcHub *calculator.CalcHub) {
	for {
		select {
		case frame := <-calcHub.PeriodCalcResult:
			h.sendJSON(model.MsgFrame, frame)
		case <-calcHub.Stop:
			for {
				select {
				case frame := <-calcHub.PeriodCalcResult:
					h.sendJSON(model.MsgFrame, frame)
				default:
					return
				}
			}
		}
	}
}

func (h *Hub) handleHistory() {
	h.mu.Lock()
	frames := make([]model.Frame, 0, h.history.Size())
	h.history.Traverse(func(_ int, item *model.Frame) {
		frames = append(frames, *item)
	})
	h.mu.Unlock()
	for _, frame := range frames {
		h.sendJSON(model.MsgFrame, frame)
	}
}

// stopRunning 取消正在进行的计算，没有计算时返回 false
func (h *Hub) stopRunning() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel == nil {
		return false
	}
	h.cancel()
	return true
}

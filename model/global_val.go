package model

// 消息类型
// 请求: env, start, stop, history
// 响应: envSet, started, frame, converged, nonConvergent, stopped, error

const (
	MsgEnv     = "env"
	MsgStart   = "start"
	MsgStop    = "stop"
	MsgHistory = "history"

	MsgEnvSet        = "envSet"
	MsgStarted       = "started"
	MsgFrame         = "frame"
	MsgConverged     = "converged"
	MsgNonConvergent = "nonConvergent"
	MsgStopped       = "stopped"
	MsgError         = "error"
)

// Msg websocket 上收发的消息，Content 为 json 字符串
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

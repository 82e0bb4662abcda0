package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"heat/calculator"
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	cfg      calculator.Config
}

func NewServer(cfg calculator.Config, upgrader websocket.Upgrader) *Server {
	return &Server{
		addr:     cfg.Addr,
		upgrader: upgrader,
		cfg:      cfg,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	hub := NewHub(conn, s.cfg)
	log.WithField("remote", conn.RemoteAddr().String()).Info("客户端已连接")
	hub.Serve()
	log.WithField("remote", conn.RemoteAddr().String()).Info("客户端已断开")
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("websocket 服务启动")
	return http.ListenAndServe(s.addr, s.Handler())
}

package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cloudy-poro/scout/internal/progress"
)

const (
	requestReadTimeout = 10 * time.Second
	frameWriteTimeout  = 10 * time.Second
	maxRequestSize     = 4 * 1024
)

// InvalidRequest is sent when the first frame is not a usable generate request.
var InvalidRequest = progress.ReportProgress{Status: progress.StatusError, Progress: 0, Message: "Invalid request"}

func (s *Server) handleReportWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: s.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error(err, "ws upgrade")
		return
	}
	defer conn.Close()

	log := s.log.WithValues("remote", r.RemoteAddr, "request", r.Header.Get(requestIDHeader))
	conn.SetReadLimit(maxRequestSize)
	conn.SetReadDeadline(time.Now().Add(requestReadTimeout))

	var req progress.GenerateRequest
	if err := conn.ReadJSON(&req); err != nil {
		log.V(1).Info("no generate request", "error", err.Error())
		s.finish(conn, InvalidRequest)
		return
	}
	team := strings.TrimSpace(req.TeamName)
	if req.Action != progress.ActionGenerate || team == "" {
		log.Info("rejecting request", "action", req.Action)
		s.finish(conn, InvalidRequest)
		return
	}
	conn.SetReadDeadline(time.Time{})

	log = log.WithValues("team", team, "ourTeam", req.OurTeam)
	log.Info("report client connected")

	// The client never sends after the request; a read error means it left.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := s.stream(ctx, conn, team); err != nil {
		log.V(1).Info("report stream ended early", "error", err.Error())
		return
	}
	log.Info("report streamed")
	closeConn(conn)
}

// stream writes the script for team, waiting each step's delay first.
func (s *Server) stream(ctx context.Context, conn *websocket.Conn, team string) error {
	updates := s.script.Render(team)
	for i, step := range s.script {
		if step.Delay > 0 {
			t := time.NewTimer(step.Delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}
		if err := writeFrame(conn, updates[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) finish(conn *websocket.Conn, p progress.ReportProgress) {
	if err := writeFrame(conn, p); err != nil {
		return
	}
	closeConn(conn)
}

func writeFrame(conn *websocket.Conn, p progress.ReportProgress) error {
	conn.SetWriteDeadline(time.Now().Add(frameWriteTimeout))
	return conn.WriteJSON(p)
}

func closeConn(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}

package webtui

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/gorilla/websocket"
)

const (
	defaultCols  = 100
	defaultRows  = 30
	writeTimeout = 10 * time.Second
)

// controlMsg is a JSON text frame from the browser. Anything else is keystrokes.
type controlMsg struct {
	Type string `json:"type"`
	Cols int    `json:"cols"`
	Rows int    `json:"rows"`
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  16 * 1024,
	WriteBufferSize: 16 * 1024,
	CheckOrigin:     sameOrigin,
}

// sameOrigin accepts requests without an Origin header and those whose Origin
// host matches the request host.
func sameOrigin(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// parseResize reports the size carried by a resize control frame.
func parseResize(data []byte) (cols, rows uint16, ok bool) {
	if len(data) == 0 || data[0] != '{' {
		return 0, 0, false
	}
	var m controlMsg
	if err := json.Unmarshal(data, &m); err != nil {
		return 0, 0, false
	}
	if !strings.EqualFold(strings.TrimSpace(m.Type), "resize") {
		return 0, 0, false
	}
	if m.Cols <= 0 || m.Rows <= 0 || m.Cols > 1000 || m.Rows > 1000 {
		return 0, 0, false
	}
	return uint16(m.Cols), uint16(m.Rows), true
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		return
	}
	defer conn.Close()

	ptmx, cmd, err := s.startSession()
	if err != nil {
		s.log.Warn("webtui session failed", "err", err)
		_ = conn.WriteMessage(websocket.TextMessage, []byte("failed to start session: "+err.Error()))
		return
	}
	s.log.Info("webtui session started", "pid", cmd.Process.Pid)
	defer func() {
		_ = ptmx.Close()
		_ = cmd.Process.Kill()
		_, _ = cmd.Process.Wait()
		s.log.Info("webtui session ended", "pid", cmd.Process.Pid)
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var wg sync.WaitGroup
	done := make(chan struct{}, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := copyPTYToWS(ptmx, conn); err != nil {
			s.log.Debug("pty->ws stopped", "err", err)
		}
		done <- struct{}{}
	}()
	go func() {
		defer wg.Done()
		if err := copyWSToPTY(conn, ptmx); err != nil {
			s.log.Debug("ws->pty stopped", "err", err)
		}
		done <- struct{}{}
	}()

	select {
	case <-ctx.Done():
	case <-done:
	}
	// Unblock both pumps: the PTY read ends when the child dies, the websocket
	// read ends when the connection closes.
	_ = cmd.Process.Kill()
	_ = conn.Close()
	wg.Wait()
}

func (s *Server) startSession() (*os.File, *exec.Cmd, error) {
	cmd := exec.Command(s.cfg.Exe, s.cfg.Args...)
	cmd.Env = append(os.Environ(), s.cfg.Env...)
	cmd.Env = append(cmd.Env, "TERM=xterm-256color", "COLORTERM=truecolor")
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: defaultCols, Rows: defaultRows})
	if err != nil {
		return nil, nil, err
	}
	return ptmx, cmd, nil
}

func copyPTYToWS(ptmx *os.File, conn *websocket.Conn) error {
	buf := make([]byte, 16*1024)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if werr := conn.WriteMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
				return werr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func copyWSToPTY(conn *websocket.Conn, ptmx *os.File) error {
	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt == websocket.TextMessage {
			if cols, rows, ok := parseResize(data); ok {
				_ = pty.Setsize(ptmx, &pty.Winsize{Cols: cols, Rows: rows})
				continue
			}
		}
		if len(data) == 0 {
			continue
		}
		if _, err := ptmx.Write(data); err != nil {
			return err
		}
	}
}

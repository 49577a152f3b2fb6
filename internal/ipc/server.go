package ipc

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"

	"qam-observer/internal/observer"
	"qam-observer/pkg/global"
)

type Request struct {
	Command string `json:"command"`
}

type Response struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Visible  *bool  `json:"visible,omitempty"`
	Resolved *bool  `json:"resolved,omitempty"`
}

// StartSocketServer serves visibility queries on the configured unix
// socket. Blocks until the listener fails; run it on its own goroutine.
func StartSocketServer(obs *observer.Visibility) {
	log := global.GetLogger()
	socketPath := global.GetConfig().GetSocketPath()

	// Remove the socket file if it already exists
	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		log.Error("Failed to remove existing socket file", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(socketPath), 0755); err != nil {
		log.Fatal("Failed to create socket directory", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		log.Fatal("Failed to start socket server", err)
	}
	defer listener.Close()

	log.Info("Socket server started", "path", socketPath)

	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Error("Failed to accept connection", err)
			continue
		}

		log.Debug("New connection accepted")

		go handleConnection(conn, obs)
	}
}

func handleConnection(conn net.Conn, obs *observer.Visibility) {
	log := global.GetLogger()
	defer conn.Close()

	var req Request
	if err := json.NewDecoder(conn).Decode(&req); err != nil {
		log.Error("Failed to decode request", err)
		writeResponse(conn, Response{Status: "error", Message: "malformed request"})
		return
	}

	log.Debug("Handling request", "command", req.Command)
	writeResponse(conn, handleRequest(req, obs))
}

func handleRequest(req Request, obs *observer.Visibility) Response {
	switch req.Command {
	case "ping":
		return Response{Status: "ok", Message: "pong"}
	case "status":
		visible := obs.Visible()
		resolved := obs.Resolved()
		msg := "Quick Access Menu blurred"
		if visible {
			msg = "Quick Access Menu focused"
		}
		if !resolved {
			msg = "panel window not resolved, reporting default"
		}
		return Response{
			Status:   "ok",
			Message:  msg,
			Visible:  &visible,
			Resolved: &resolved,
		}
	default:
		return Response{Status: "error", Message: "unknown command: " + req.Command}
	}
}

func writeResponse(conn net.Conn, resp Response) {
	log := global.GetLogger()
	if err := json.NewEncoder(conn).Encode(resp); err != nil {
		log.Error("Failed to encode response", err)
	}
}

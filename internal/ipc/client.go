package ipc

import (
	"encoding/json"
	"net"

	"qam-observer/pkg/global"
)

// SendCommand sends one command to a running daemon and returns its
// response.
func SendCommand(command string) (Response, error) {
	log := global.GetLogger()
	socketPath := global.GetConfig().GetSocketPath()

	log.Debug("Attempting to connect to socket server", "path", socketPath)

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		log.Error("Failed to connect to socket server", err)
		return Response{}, err
	}
	defer conn.Close()

	req := Request{Command: command}
	if err := json.NewEncoder(conn).Encode(req); err != nil {
		log.Error("Failed to encode request", err)
		return Response{}, err
	}

	log.Debug("Request sent", "command", command)

	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		log.Error("Failed to decode response", err)
		return Response{}, err
	}

	log.Debug("Response received", "status", resp.Status, "message", resp.Message)
	return resp, nil
}

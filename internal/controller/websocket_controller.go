package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chessviz-backend/internal/middleware"
	"github.com/benbeisheim/chessviz-backend/internal/model"
	"github.com/benbeisheim/chessviz-backend/internal/service"
	"github.com/benbeisheim/chessviz-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	boardService *service.BoardService
}

func NewWebSocketController(boardService *service.BoardService) *WebSocketController {
	return &WebSocketController{
		boardService: boardService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	boardID := c.Params("boardId")
	viewerID := middleware.ConnViewerID(c)
	// Broadcasts and error replies share the connection
	conn := model.NewSyncConn(c)

	// Register this connection with the board
	if err := wsc.boardService.RegisterConnection(boardID, viewerID, conn); err != nil {
		log.Warnf("failed to register connection for viewer %s on board %s: %v", viewerID, boardID, err)
		conn.Close()
		return
	}
	defer wsc.boardService.UnregisterConnection(boardID, viewerID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("read error on board %s: %v", boardID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(conn, fmt.Sprintf("parse error: %v", err))
			continue
		}
		if err := wsc.handleMessage(boardID, msg); err != nil {
			log.Debugf("handle error on board %s: %v", boardID, err)
			wsc.sendError(conn, err.Error())
		}
	}
}

// Handle different types of incoming messages. Successful updates reach every viewer
// through the session's broadcast.
func (wsc *WebSocketController) handleMessage(boardID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeReset:
		_, err := wsc.boardService.Reset(boardID)
		return err
	case ws.MessageTypeClick, ws.MessageTypeSelect, ws.MessageTypeRemove:
		var square ws.SquarePayload
		if err := json.Unmarshal(msg.Payload, &square); err != nil {
			return err
		}
		pos := model.Position{X: square.X, Y: square.Y}
		var err error
		switch msg.Type {
		case ws.MessageTypeClick:
			_, err = wsc.boardService.Click(boardID, pos)
		case ws.MessageTypeSelect:
			_, err = wsc.boardService.Select(boardID, pos)
		default:
			_, err = wsc.boardService.RemovePiece(boardID, pos)
		}
		return err
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(c model.Conn, errorMsg string) {
	payload, err := json.Marshal(ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	if err := c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: json.RawMessage(payload),
	}); err != nil {
		log.Debugf("failed to send error message: %v", err)
	}
}

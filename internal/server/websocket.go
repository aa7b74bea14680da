package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	mdwerror "github.com/msto63/ghll/foundation/core/error"
	"github.com/msto63/ghll/foundation/ghll"
	"github.com/msto63/ghll/internal/history"
	"github.com/msto63/ghll/pkg/core/cache"
	coregrpc "github.com/msto63/ghll/pkg/core/grpc"
	"github.com/msto63/ghll/pkg/core/logging"
)

const wsReadTimeout = 120 * time.Second

// WebSocket upgrader with permissive settings for local development
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSMessage represents a client message
type WSMessage struct {
	Type    string          `json:"type"`    // "parse", "ping"
	Payload json.RawMessage `json:"payload"` // Message-specific payload
}

// WSParsePayload is the payload of a parse message
type WSParsePayload struct {
	Line string `json:"line"`
}

// WSResponse represents a server message
type WSResponse struct {
	Type    string      `json:"type"`    // "tree", "error", "pong"
	Payload interface{} `json:"payload"` // Response-specific payload
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WebSocketHandler parses lines sent over a WebSocket. Messages of one
// connection are handled in order, each line on its own.
type WebSocketHandler struct {
	proc   *processor
	logger *logging.Logger
}

// NewWebSocketHandler creates a new WebSocket handler; results and store may be nil
func NewWebSocketHandler(engine *ghll.Engine, results *cache.Cache[*ghll.Result], store *history.Store) *WebSocketHandler {
	logger := logging.New("ghll-websocket")
	return &WebSocketHandler{
		proc:   newProcessor(engine, results, store, logger),
		logger: logger,
	}
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	h.handleConnection(r.Context(), conn)
}

// handleConnection handles a single WebSocket connection
func (h *WebSocketHandler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	h.logger.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		return nil
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", "error", err)
			} else {
				h.logger.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		switch msg.Type {
		case "ping":
			h.sendResponse(conn, WSResponse{Type: "pong", Payload: nil})

		case "parse":
			var payload WSParsePayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				h.sendError(conn, "invalid_payload", "Invalid parse payload")
				continue
			}
			h.handleParse(coregrpc.WithRequestID(ctx, uuid.NewString()), conn, payload)

		default:
			h.sendError(conn, "unknown_type", "Unknown message type: "+msg.Type)
		}
	}
}

func (h *WebSocketHandler) handleParse(ctx context.Context, conn *websocket.Conn, payload WSParsePayload) {
	res, err := h.proc.process(ctx, payload.Line)
	if err != nil {
		h.sendError(conn, mdwerror.GetCode(err).String(), err.Error())
		return
	}
	h.sendResponse(conn, WSResponse{Type: "tree", Payload: res.View()})
}

// sendResponse sends a response message via WebSocket
func (h *WebSocketHandler) sendResponse(conn *websocket.Conn, resp WSResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		h.logger.Error("WebSocket send error", "error", err)
	}
}

// sendError sends an error response via WebSocket
func (h *WebSocketHandler) sendError(conn *websocket.Conn, code, message string) {
	h.sendResponse(conn, WSResponse{
		Type: "error",
		Payload: WSErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

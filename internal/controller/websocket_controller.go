package controller

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/minitchess-backend/internal/service"
	"github.com/benbeisheim/minitchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	analysisService *service.AnalysisService
}

func NewWebSocketController(analysisService *service.AnalysisService) *WebSocketController {
	return &WebSocketController{
		analysisService: analysisService,
	}
}

// analysisConn is the part of *websocket.Conn the read loop uses.
type analysisConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteJSON(v interface{}) error
}

// HandleConnection answers requests on one analysis socket, one at a time,
// until the client goes away.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	requestID, _ := c.Locals("requestID").(string)
	log.Debugf("analysis socket %s opened", requestID)
	defer log.Debugf("analysis socket %s closed", requestID)

	wsc.serve(context.Background(), requestID, c)
}

// serve reads on its own goroutine so that a disconnect cancels the request
// being answered, including one still waiting for an engine.
func (wsc *WebSocketController) serve(parent context.Context, requestID string, conn analysisConn) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	incoming := make(chan []byte)
	go func() {
		defer close(incoming)
		defer cancel()
		for {
			messageType, message, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Errorf("analysis socket %s: read: %v", requestID, err)
				}
				return
			}
			if messageType != websocket.TextMessage {
				continue
			}
			select {
			case incoming <- message:
			case <-ctx.Done():
				return
			}
		}
	}()

	for message := range incoming {
		var reply ws.Message
		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			reply = ws.NewError("", fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		} else {
			reply = wsc.handleMessage(ctx, msg)
		}

		if err := conn.WriteJSON(reply); err != nil {
			log.Errorf("analysis socket %s: write: %v", requestID, err)
			return
		}
	}
}

// handleMessage turns one request into its reply. Failures become error
// messages rather than closing the socket.
func (wsc *WebSocketController) handleMessage(ctx context.Context, msg ws.Message) ws.Message {
	reply, err := wsc.dispatch(ctx, msg)
	if err != nil {
		if statusFor(err) >= 500 {
			log.Errorf("analysis socket: %s: %v", msg.Type, err)
		}
		return ws.NewError(msg.ID, err)
	}
	return reply
}

func (wsc *WebSocketController) dispatch(ctx context.Context, msg ws.Message) (ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeBestMove:
		var req bestMoveRequest
		if err := decodePayload(msg.Payload, &req); err != nil {
			return ws.Message{}, err
		}
		result, err := wsc.analysisService.BestMove(ctx, *req.Board, req.Color, req.PlyCount)
		if err != nil {
			return ws.Message{}, err
		}
		return ws.NewMessage(msg.ID, ws.MessageTypeAnalysis, result)

	case ws.MessageTypeLegalMoves:
		var req legalMovesRequest
		if err := decodePayload(msg.Payload, &req); err != nil {
			return ws.Message{}, err
		}
		return ws.NewMessage(msg.ID, ws.MessageTypeMoves, movesResponse{
			Moves: wsc.analysisService.LegalMoves(*req.Board, *req.Square),
		})

	case ws.MessageTypeAllMoves:
		var req allMovesRequest
		if err := decodePayload(msg.Payload, &req); err != nil {
			return ws.Message{}, err
		}
		moves, ok := wsc.analysisService.AllMoves(*req.Board, req.Color)
		return ws.NewMessage(msg.ID, ws.MessageTypeMoves, movesResponse{
			Moves:         moves,
			HasLegalMoves: &ok,
		})

	case ws.MessageTypeApplyMove:
		var req applyMoveRequest
		if err := decodePayload(msg.Payload, &req); err != nil {
			return ws.Message{}, err
		}
		result, err := wsc.analysisService.ApplyMove(*req.Board, *req.From, *req.To, req.Promotion)
		if err != nil {
			return ws.Message{}, err
		}
		return ws.NewMessage(msg.ID, ws.MessageTypeMoveResult, result)

	default:
		return ws.Message{}, fmt.Errorf("%w: unknown message type %q", ErrInvalidRequest, msg.Type)
	}
}

func decodePayload(payload json.RawMessage, req validator) error {
	if len(payload) == 0 {
		return fmt.Errorf("%w: missing payload", ErrInvalidRequest)
	}
	if err := json.Unmarshal(payload, req); err != nil {
		return err
	}
	return req.validate()
}

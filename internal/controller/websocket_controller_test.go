package controller

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benbeisheim/minitchess-backend/internal/engine"
	"github.com/benbeisheim/minitchess-backend/internal/service"
	"github.com/benbeisheim/minitchess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

func newTestWebSocketController(t *testing.T) *WebSocketController {
	t.Helper()
	return NewWebSocketController(service.NewAnalysisService(newTestPool(t), time.Second))
}

func request(t *testing.T, id string, typ ws.MessageType, payload interface{}) ws.Message {
	t.Helper()
	msg, err := ws.NewMessage(id, typ, payload)
	if err != nil {
		t.Fatalf("new message: %v", err)
	}
	return msg
}

func TestHandleMessageBestMove(t *testing.T) {
	wsc := newTestWebSocketController(t)
	reply := wsc.handleMessage(context.Background(), request(t, "42", ws.MessageTypeBestMove, map[string]interface{}{
		"board": startRows, "color": "black", "plyCount": 1,
	}))

	if reply.Type != ws.MessageTypeAnalysis || reply.ID != "42" {
		t.Fatalf("expected an analysis reply to 42, got %s %q: %s", reply.Type, reply.ID, reply.Payload)
	}
	var result service.BestMoveResult
	if err := json.Unmarshal(reply.Payload, &result); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if result.Move == nil || result.Reason != engine.ReasonOpening || result.Notation != "c3" {
		t.Fatalf("expected the c5-c3 opening, got %+v", result)
	}
}

func TestHandleMessageMoves(t *testing.T) {
	wsc := newTestWebSocketController(t)

	reply := wsc.handleMessage(context.Background(), request(t, "1", ws.MessageTypeAllMoves, map[string]interface{}{
		"board": startRows, "color": "white",
	}))
	var all movesResponse
	if err := json.Unmarshal(reply.Payload, &all); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if reply.Type != ws.MessageTypeMoves || len(all.Moves) != 12 || all.HasLegalMoves == nil || !*all.HasLegalMoves {
		t.Fatalf("expected 12 moves, got %s %s", reply.Type, reply.Payload)
	}

	reply = wsc.handleMessage(context.Background(), request(t, "2", ws.MessageTypeLegalMoves, map[string]interface{}{
		"board": startRows, "square": "b1",
	}))
	var legal movesResponse
	if err := json.Unmarshal(reply.Payload, &legal); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	// the knight on b1 reaches a3 and c3
	if len(legal.Moves) != 2 || legal.HasLegalMoves != nil {
		t.Fatalf("expected 2 knight moves, got %s", reply.Payload)
	}
}

func TestHandleMessageApplyMove(t *testing.T) {
	wsc := newTestWebSocketController(t)
	reply := wsc.handleMessage(context.Background(), request(t, "7", ws.MessageTypeApplyMove, map[string]interface{}{
		"board": startRows, "from": "b1", "to": "c3",
	}))
	if reply.Type != ws.MessageTypeMoveResult {
		t.Fatalf("expected a move result, got %s: %s", reply.Type, reply.Payload)
	}
	var result service.ApplyResult
	if err := json.Unmarshal(reply.Payload, &result); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if result.Notation != "Nc3" {
		t.Fatalf("expected Nc3, got %s", result.Notation)
	}
}

func TestHandleMessageErrors(t *testing.T) {
	wsc := newTestWebSocketController(t)
	tests := []struct {
		name string
		msg  ws.Message
		want string
	}{
		{"unknown type", ws.Message{ID: "1", Type: "resign"}, "unknown message type"},
		{"missing payload", ws.Message{ID: "2", Type: ws.MessageTypeBestMove}, "missing payload"},
		{"bad color", request(t, "3", ws.MessageTypeBestMove, map[string]interface{}{"board": startRows, "color": "red"}), "invalid color"},
		{"illegal move", request(t, "4", ws.MessageTypeApplyMove, map[string]interface{}{"board": startRows, "from": "a1", "to": "a3"}), "invalid move"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := wsc.handleMessage(context.Background(), tt.msg)
			if reply.Type != ws.MessageTypeError || reply.ID != tt.msg.ID {
				t.Fatalf("expected an error reply to %q, got %s %q", tt.msg.ID, reply.Type, reply.ID)
			}
			var payload ws.ErrorPayload
			if err := json.Unmarshal(reply.Payload, &payload); err != nil {
				t.Fatalf("decode payload: %v", err)
			}
			if !strings.Contains(payload.Error, tt.want) {
				t.Fatalf("expected %q in %q", tt.want, payload.Error)
			}
		})
	}
}

// fakeConn feeds reads from a channel and records every reply. Closing
// reads looks like the client going away.
type fakeConn struct {
	reads chan []byte

	mu      sync.Mutex
	replies []ws.Message
}

func newFakeConn() *fakeConn {
	return &fakeConn{reads: make(chan []byte)}
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	message, ok := <-f.reads
	if !ok {
		return 0, nil, io.EOF
	}
	return websocket.TextMessage, message, nil
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies = append(f.replies, v.(ws.Message))
	return nil
}

func (f *fakeConn) send(t *testing.T, msg ws.Message) {
	t.Helper()
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	f.reads <- data
}

func serveAsync(wsc *WebSocketController, conn *fakeConn) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		wsc.serve(context.Background(), "test", conn)
	}()
	return done
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("socket loop did not stop after the client left")
	}
}

func TestServeAnswersInOrder(t *testing.T) {
	wsc := newTestWebSocketController(t)
	conn := newFakeConn()
	done := serveAsync(wsc, conn)

	conn.send(t, request(t, "1", ws.MessageTypeApplyMove, map[string]interface{}{
		"board": startRows, "from": "c2", "to": "c4",
	}))
	conn.reads <- []byte("{")
	conn.send(t, request(t, "2", ws.MessageTypeLegalMoves, map[string]interface{}{
		"board": startRows, "square": "b1",
	}))
	close(conn.reads)
	waitDone(t, done)

	want := []struct {
		id  string
		typ ws.MessageType
	}{
		{"1", ws.MessageTypeMoveResult},
		{"", ws.MessageTypeError},
		{"2", ws.MessageTypeMoves},
	}
	if len(conn.replies) != len(want) {
		t.Fatalf("expected %d replies, got %d", len(want), len(conn.replies))
	}
	for i, w := range want {
		if conn.replies[i].ID != w.id || conn.replies[i].Type != w.typ {
			t.Fatalf("reply %d: expected %s %q, got %s %q", i, w.typ, w.id, conn.replies[i].Type, conn.replies[i].ID)
		}
	}
}

func TestServeCancelsWaitingSearchOnDisconnect(t *testing.T) {
	pool := newTestPool(t)
	wsc := NewWebSocketController(service.NewAnalysisService(pool, time.Minute))
	if _, err := pool.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	conn := newFakeConn()
	done := serveAsync(wsc, conn)
	conn.send(t, request(t, "9", ws.MessageTypeBestMove, map[string]interface{}{
		"board": startRows, "color": "white",
	}))
	close(conn.reads)
	waitDone(t, done)

	if len(conn.replies) != 1 || conn.replies[0].Type != ws.MessageTypeError {
		t.Fatalf("expected one error reply, got %+v", conn.replies)
	}
	var payload ws.ErrorPayload
	if err := json.Unmarshal(conn.replies[0].Payload, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if !strings.Contains(payload.Error, context.Canceled.Error()) {
		t.Fatalf("expected the search to be cancelled, got %q", payload.Error)
	}
}

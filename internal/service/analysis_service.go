package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benbeisheim/minitchess-backend/internal/engine"
	"github.com/benbeisheim/minitchess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var ErrInvalidMove = errors.New("invalid move")

type ApplyResult struct {
	Board            model.Board  `json:"board"`
	CapturedPiece    *model.Piece `json:"capturedPiece"`
	IsPromotion      bool         `json:"isPromotion"`
	CapturedKing     bool         `json:"capturedKing"`
	Notation         string       `json:"notation"`
	OpponentHasMoves bool         `json:"opponentHasMoves"`
}

type BestMoveResult struct {
	ID       string        `json:"id"`
	Move     *model.Move   `json:"move"`
	Notation string        `json:"notation"`
	Score    float64       `json:"score"`
	Reason   engine.Reason `json:"reason"`
	Nodes    int           `json:"nodes"`
}

// AnalysisService is the stateless face of the rules and the engine. Every
// call carries the whole board, so nothing is kept between calls.
type AnalysisService struct {
	pool    *EnginePool
	timeout time.Duration
}

// NewAnalysisService builds a service on pool. A positive timeout bounds
// how long BestMove waits for a free engine.
func NewAnalysisService(pool *EnginePool, timeout time.Duration) *AnalysisService {
	return &AnalysisService{
		pool:    pool,
		timeout: timeout,
	}
}

func (as *AnalysisService) NewBoard() model.Board {
	return model.NewBoard()
}

// ApplyMove plays from-to on b. promotion may be empty; when it is set the
// move must reach the last rank with a pawn and the pawn becomes that piece.
func (as *AnalysisService) ApplyMove(b model.Board, from, to model.Square, promotion model.PieceType) (ApplyResult, error) {
	move, ok := findMove(b, from, to)
	if !ok {
		return ApplyResult{}, fmt.Errorf("%w: %s-%s", ErrInvalidMove, from, to)
	}

	result := model.ExecuteMove(b, from, to)
	next := result.Board
	if promotion != model.NoPieceType {
		var err error
		next, err = model.ExecutePromotion(next, to, model.Piece{Type: promotion, Color: move.Piece.Color})
		if err != nil {
			return ApplyResult{}, err
		}
	}

	applied := ApplyResult{
		Board:            next,
		IsPromotion:      result.IsPromotion,
		CapturedKing:     result.CapturedKing,
		Notation:         model.ToNotation(move),
		OpponentHasMoves: model.HasLegalMoves(next, move.Piece.Color.Opponent()),
	}
	if !result.CapturedPiece.IsEmpty() {
		captured := result.CapturedPiece
		applied.CapturedPiece = &captured
	}
	log.Debugf("applied %s, king captured: %v, opponent has moves: %v", applied.Notation, applied.CapturedKing, applied.OpponentHasMoves)
	return applied, nil
}

// Promote swaps the pawn standing on its last rank at sq for choice.
func (as *AnalysisService) Promote(b model.Board, sq model.Square, choice model.PieceType) (model.Board, error) {
	pawn := b.At(sq)
	return model.ExecutePromotion(b, sq, model.Piece{Type: choice, Color: pawn.Color})
}

func (as *AnalysisService) LegalMoves(b model.Board, sq model.Square) []model.Move {
	moves := model.LegalMoves(b, sq)
	if moves == nil {
		return []model.Move{}
	}
	return moves
}

func (as *AnalysisService) AllMoves(b model.Board, c model.Color) ([]model.Move, bool) {
	moves := model.GenerateAllMoves(b, c)
	if moves == nil {
		moves = []model.Move{}
	}
	return moves, len(moves) > 0
}

// BestMove borrows an engine from the pool and searches b for c.
func (as *AnalysisService) BestMove(ctx context.Context, b model.Board, c model.Color, plyCount int) (BestMoveResult, error) {
	if as.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, as.timeout)
		defer cancel()
	}

	instance, err := as.pool.Acquire(ctx)
	if err != nil {
		return BestMoveResult{}, fmt.Errorf("acquire engine: %w", err)
	}
	defer func() {
		if err := as.pool.Release(instance); err != nil {
			log.Errorf("release engine %s: %v", instance.ID(), err)
		}
	}()

	start := time.Now()
	analysis := instance.Engine.Analyze(b, c, plyCount)
	result := BestMoveResult{
		ID:     uuid.New().String(),
		Score:  analysis.Score,
		Reason: analysis.Reason,
		Nodes:  analysis.Nodes,
	}
	if analysis.Found {
		move := analysis.Move
		result.Move = &move
		result.Notation = model.ToNotation(move)
	}

	log.Debugf("engine %s: %s to move, %s (%s) after %d nodes in %s",
		instance.ID(), c, result.Notation, result.Reason, result.Nodes, time.Since(start))
	return result, nil
}

// Notation fills in the moving piece and capture flag from b when the
// caller left them out, then renders the move.
func (as *AnalysisService) Notation(b *model.Board, m model.Move) string {
	if b != nil {
		if full, ok := findMove(*b, m.From, m.To); ok {
			m = full
		}
	}
	return model.ToNotation(m)
}

func findMove(b model.Board, from, to model.Square) (model.Move, bool) {
	for _, m := range model.LegalMoves(b, from) {
		if m.To == to {
			return m, true
		}
	}
	return model.Move{}, false
}

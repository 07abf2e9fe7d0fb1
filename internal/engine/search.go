package engine

import (
	"math"

	"github.com/benbeisheim/minitchess-backend/internal/model"
)

// BestMove returns the move color c should play. ok is false when c has no
// legal moves.
func (e *Engine) BestMove(b model.Board, c model.Color, plyCount int) (model.Move, bool) {
	a := e.Analyze(b, c, plyCount)
	return a.Move, a.Found
}

// Analyze is BestMove with the reasoning behind the choice.
func (e *Engine) Analyze(b model.Board, c model.Color, plyCount int) Analysis {
	if plyCount < e.cfg.OpeningPlies {
		if m, ok := e.OpeningMove(b, c); ok {
			return Analysis{Move: m, Found: true, Reason: ReasonOpening}
		}
	}

	moves := model.GenerateAllMoves(b, c)
	if len(moves) == 0 {
		return Analysis{Reason: ReasonNoMoves}
	}

	opponent := c.Opponent()
	s := &searcher{engine: e}
	best := Analysis{Score: math.Inf(-1), Reason: ReasonSearch}

	for _, m := range e.OrderMoves(b, moves) {
		result := model.ExecuteMove(b, m.From, m.To)
		if result.CapturedKing {
			return Analysis{Move: m, Found: true, Score: WinScore, Reason: ReasonKingCapture, Nodes: s.nodes}
		}
		if !model.HasLegalMoves(result.Board, opponent) {
			return Analysis{Move: m, Found: true, Score: WinScore, Reason: ReasonStalemateWin, Nodes: s.nodes}
		}

		score := s.minimax(result.Board, e.cfg.Depth-1, math.Inf(-1), math.Inf(1), false, c, opponent)
		// strictly better only: on equal scores the earlier, higher priority
		// move stays
		if !best.Found || score > best.Score {
			best.Move = m
			best.Found = true
			best.Score = score
		}
	}

	best.Nodes = s.nodes
	return best
}

// Minimax scores b for root with side to move next. maximizing tells whether
// side is the root player.
func (e *Engine) Minimax(b model.Board, depth int, alpha, beta float64, maximizing bool, root, side model.Color) float64 {
	s := &searcher{engine: e}
	return s.minimax(b, depth, alpha, beta, maximizing, root, side)
}

type searcher struct {
	engine *Engine
	nodes  int
}

func (s *searcher) minimax(b model.Board, depth int, alpha, beta float64, maximizing bool, root, side model.Color) float64 {
	s.nodes++
	if depth == 0 {
		return s.engine.Evaluate(b, root)
	}

	// A side with no moves, or no king, has lost to whoever moved last.
	moves := model.GenerateAllMoves(b, side)
	if _, hasKing := b.FindKing(side); len(moves) == 0 || !hasKing {
		if maximizing {
			return -WinScore
		}
		return WinScore
	}

	next := side.Opponent()
	if maximizing {
		best := math.Inf(-1)
		for _, m := range moves {
			child := model.ExecuteMove(b, m.From, m.To).Board
			score := s.minimax(child, depth-1, alpha, beta, false, root, next)
			best = math.Max(best, score)
			alpha = math.Max(alpha, score)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, m := range moves {
		child := model.ExecuteMove(b, m.From, m.To).Board
		score := s.minimax(child, depth-1, alpha, beta, true, root, next)
		best = math.Min(best, score)
		beta = math.Min(beta, score)
		if beta <= alpha {
			break
		}
	}
	return best
}

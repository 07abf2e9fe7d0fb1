package engine

import (
	"sort"

	"github.com/benbeisheim/minitchess-backend/internal/model"
)

const (
	PromotionBonus = 800
	CenterWeight   = 10
)

// OrderMoves sorts moves best first for the root search: valuable victims
// taken by cheap attackers, then promotions, then moves toward the center.
// Equal priorities keep their generation order. moves is not modified.
func (e *Engine) OrderMoves(b model.Board, moves []model.Move) []model.Move {
	type prioritized struct {
		move     model.Move
		priority float64
	}
	scored := make([]prioritized, len(moves))
	for i, m := range moves {
		scored[i] = prioritized{move: m, priority: e.MovePriority(b, m)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].priority > scored[j].priority
	})

	ordered := make([]model.Move, len(scored))
	for i, s := range scored {
		ordered[i] = s.move
	}
	return ordered
}

func (e *Engine) MovePriority(b model.Board, m model.Move) float64 {
	score := 0.0
	if victim := b.At(m.To); !victim.IsEmpty() {
		score += e.cfg.PieceValues[victim.Type] - e.cfg.PieceValues[m.Piece.Type]/100
	}
	if model.IsPromotionRank(m.Piece, m.To.Row) {
		score += PromotionBonus
	}
	score += (4 - centerDistance(m.To)) * CenterWeight
	return score
}

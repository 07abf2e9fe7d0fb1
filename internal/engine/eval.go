package engine

import (
	"math"

	"github.com/benbeisheim/minitchess-backend/internal/model"
)

const (
	MobilityWeight   = 5
	KingCenterWeight = 5
	KingAttackWeight = 50

	centerCol = 2.0
	centerRow = 2.5
)

// Evaluate scores b from root's point of view. Kings carry no material
// value: losing one ends the game before evaluation is ever reached.
func (e *Engine) Evaluate(b model.Board, root model.Color) float64 {
	opponent := root.Opponent()
	score := 0.0

	for row := 0; row < model.Rows; row++ {
		for col := 0; col < model.Cols; col++ {
			p := b.Get(row, col)
			if p.IsEmpty() {
				continue
			}
			value := e.positionalValue(p, model.Square{Row: row, Col: col})
			if p.Color == root {
				score += value
			} else {
				score -= value
			}
		}
	}

	ownMoves := len(model.GenerateAllMoves(b, root))
	theirMoves := len(model.GenerateAllMoves(b, opponent))
	score += float64(ownMoves-theirMoves) * MobilityWeight

	if king, ok := b.FindKing(root); ok {
		score -= centerDistance(king) * KingCenterWeight
	}

	if king, ok := b.FindKing(opponent); ok {
		score += float64(attackers(b, king, root)) * KingAttackWeight
	}

	return score
}

func (e *Engine) positionalValue(p model.Piece, sq model.Square) float64 {
	value := 0.0
	if p.Type != model.King {
		value = e.cfg.PieceValues[p.Type]
	}
	if table, ok := e.cfg.PST[p.Type]; ok {
		value += table.Lookup(p.Color, sq)
	}
	return value
}

func centerDistance(sq model.Square) float64 {
	return math.Abs(float64(sq.Col)-centerCol) + math.Abs(float64(sq.Row)-centerRow)
}

// attackers counts the pieces of color c that could move onto sq.
func attackers(b model.Board, sq model.Square, c model.Color) int {
	count := 0
	for _, placed := range b.PiecesOf(c) {
		for _, m := range model.LegalMoves(b, placed.Square) {
			if m.To == sq {
				count++
				break
			}
		}
	}
	return count
}

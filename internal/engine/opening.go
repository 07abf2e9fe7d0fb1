package engine

import "github.com/benbeisheim/minitchess-backend/internal/model"

// OpeningMove returns the first book move for c that is playable on b.
func (e *Engine) OpeningMove(b model.Board, c model.Color) (model.Move, bool) {
	for _, o := range e.cfg.Openings[c] {
		piece := b.At(o.From)
		if piece.IsEmpty() || piece.Color != c {
			continue
		}
		for _, m := range model.LegalMoves(b, o.From) {
			if m.To == o.To {
				return m, true
			}
		}
	}
	return model.Move{}, false
}

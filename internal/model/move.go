package model

import "fmt"

type Move struct {
	From      Square `json:"from"`
	To        Square `json:"to"`
	Piece     Piece  `json:"piece"`
	IsCapture bool   `json:"isCapture"`
}

// MoveResult is the outcome of ExecuteMove. CapturedKing means the mover has
// won; acting on that is up to the caller.
type MoveResult struct {
	Board         Board `json:"board"`
	CapturedPiece Piece `json:"capturedPiece"`
	IsPromotion   bool  `json:"isPromotion"`
	CapturedKing  bool  `json:"capturedKing"`
}

// ToNotation renders a move in short algebraic form. Two pieces of the same
// type reaching the same square are not disambiguated.
func ToNotation(m Move) string {
	to := m.To.String()
	if m.Piece.Type == Pawn {
		if m.IsCapture {
			return fmt.Sprintf("%sx%s", m.From.File(), to)
		}
		return to
	}
	capture := ""
	if m.IsCapture {
		capture = "x"
	}
	return fmt.Sprintf("%s%s%s", m.Piece.Type.Letter(), capture, to)
}

func (m Move) String() string {
	return ToNotation(m)
}

package model

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

var ErrInvalidPromotion = errors.New("invalid promotion")

type direction struct {
	row int
	col int
}

var (
	kingDirs = []direction{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
	knightDirs = []direction{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
	orthogonalDirs = []direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	diagonalDirs   = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

func abs[T constraints.Signed | constraints.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// There is no check in this variant: every pseudo-legal move is legal, a king
// may step into attack and be taken on the next move.

// LegalMoves returns the moves of the piece on from, or nil for an empty
// square.
func LegalMoves(b Board, from Square) []Move {
	piece := b.At(from)
	switch piece.Type {
	case King:
		return stepMoves(b, from, piece, kingDirs)
	case Queen:
		return queenMoves(b, from, piece)
	case Rook:
		return slideMoves(b, from, piece, orthogonalDirs)
	case Knight:
		return stepMoves(b, from, piece, knightDirs)
	case Bishop:
		return bishopMoves(b, from, piece)
	case Pawn:
		return pawnMoves(b, from, piece)
	}
	return nil
}

// target reports whether piece may land on sq and whether doing so captures.
func target(b Board, sq Square, piece Piece) (ok, capture bool) {
	if !sq.Valid() {
		return false, false
	}
	occupant := b.At(sq)
	if occupant.IsEmpty() {
		return true, false
	}
	if occupant.Color != piece.Color {
		return true, true
	}
	return false, false
}

// stepMoves covers the non-sliding pieces: one jump per direction onto an
// empty or enemy square.
func stepMoves(b Board, from Square, piece Piece, dirs []direction) []Move {
	moves := []Move{}
	for _, dir := range dirs {
		to := from.add(dir)
		if ok, capture := target(b, to, piece); ok {
			moves = append(moves, Move{From: from, To: to, Piece: piece, IsCapture: capture})
		}
	}
	return moves
}

// slideMoves walks each ray until the edge, stopping after the first enemy
// and before the first friendly piece.
func slideMoves(b Board, from Square, piece Piece, dirs []direction) []Move {
	moves := []Move{}
	for _, dir := range dirs {
		for to := from.add(dir); to.Valid(); to = to.add(dir) {
			occupant := b.At(to)
			if occupant.IsEmpty() {
				moves = append(moves, Move{From: from, To: to, Piece: piece})
				continue
			}
			if occupant.Color != piece.Color {
				moves = append(moves, Move{From: from, To: to, Piece: piece, IsCapture: true})
			}
			break
		}
	}
	return moves
}

// bishopMoves is the variant bishop: diagonal rays plus a single orthogonal
// step in each direction.
func bishopMoves(b Board, from Square, piece Piece) []Move {
	moves := slideMoves(b, from, piece, diagonalDirs)
	return append(moves, stepMoves(b, from, piece, orthogonalDirs)...)
}

// queenMoves is rook rays plus plain diagonal rays. The queen does not get
// the bishop's orthogonal step.
func queenMoves(b Board, from Square, piece Piece) []Move {
	moves := slideMoves(b, from, piece, orthogonalDirs)
	return append(moves, slideMoves(b, from, piece, diagonalDirs)...)
}

func pawnMoves(b Board, from Square, piece Piece) []Move {
	moves := []Move{}
	dir := PawnDirection(piece.Color)
	forward := Square{Row: from.Row + dir, Col: from.Col}
	if forward.Valid() && b.IsEmpty(forward) {
		moves = append(moves, Move{From: from, To: forward, Piece: piece})
		if IsPawnStartRow(piece, from.Row) {
			double := Square{Row: from.Row + 2*dir, Col: from.Col}
			if double.Valid() && b.IsEmpty(double) {
				moves = append(moves, Move{From: from, To: double, Piece: piece})
			}
		}
	}
	for _, dc := range []int{-1, 1} {
		to := Square{Row: from.Row + dir, Col: from.Col + dc}
		if !to.Valid() {
			continue
		}
		occupant := b.At(to)
		if !occupant.IsEmpty() && occupant.Color != piece.Color {
			moves = append(moves, Move{From: from, To: to, Piece: piece, IsCapture: true})
		}
	}
	return moves
}

// GenerateAllMoves collects the moves of every piece of color c, scanning the
// board row by row.
func GenerateAllMoves(b Board, c Color) []Move {
	moves := []Move{}
	for _, placed := range b.PiecesOf(c) {
		moves = append(moves, LegalMoves(b, placed.Square)...)
	}
	return moves
}

func HasLegalMoves(b Board, c Color) bool {
	for _, placed := range b.PiecesOf(c) {
		if len(LegalMoves(b, placed.Square)) > 0 {
			return true
		}
	}
	return false
}

func IsLegalMove(b Board, from, to Square) bool {
	for _, m := range LegalMoves(b, from) {
		if m.To == to {
			return true
		}
	}
	return false
}

// ExecuteMove moves whatever stands on from to to and returns the new board.
// The move is not validated and b is left untouched.
func ExecuteMove(b Board, from, to Square) MoveResult {
	piece := b.At(from)
	captured := b.At(to)

	next := b.Clone()
	next.Put(to.Row, to.Col, piece)
	next.Put(from.Row, from.Col, Empty)

	return MoveResult{
		Board:         next,
		CapturedPiece: captured,
		IsPromotion:   IsPromotionRank(piece, to.Row),
		CapturedKing:  captured.Type == King,
	}
}

// ExecutePromotion replaces the pawn on sq with choice. The pawn must stand
// on its promotion rank and choice must be one of its PromotionChoices.
func ExecutePromotion(b Board, sq Square, choice Piece) (Board, error) {
	pawn := b.At(sq)
	if !IsPromotionRank(pawn, sq.Row) {
		return b, fmt.Errorf("%w: no pawn to promote on %s", ErrInvalidPromotion, sq)
	}
	for _, allowed := range PromotionChoices(pawn.Color) {
		if allowed == choice {
			return b.Set(sq.Row, sq.Col, choice), nil
		}
	}
	return b, fmt.Errorf("%w: %s cannot become %s", ErrInvalidPromotion, pawn.Color, choice.Type)
}

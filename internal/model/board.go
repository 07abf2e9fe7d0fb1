package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidBoard = errors.New("invalid board")

// Board is a 6x5 grid addressed as [row][col]. Row 0 is White's home rank.
// Board is a value: assigning it copies every square, so a board handed to
// another function can never be changed behind the caller's back.
type Board [Rows][Cols]Piece

const (
	whitePawnStartRow = 1
	blackPawnStartRow = 4
	whitePromotionRow = 5
	blackPromotionRow = 0
)

var startingRows = [Rows]string{
	"RNBQK",
	"PPPPP",
	".....",
	".....",
	"ppppp",
	"kqbnr",
}

// NewBoard returns the starting position. Black's back rank is White's in
// reverse file order, not a mirror image.
func NewBoard() Board {
	b, err := ParseBoard(startingRows[:])
	if err != nil {
		panic(err)
	}
	return b
}

func (b Board) Clone() Board {
	return b
}

// Get returns the piece on (row, col), or Empty off the board.
func (b Board) Get(row, col int) Piece {
	return b.At(Square{Row: row, Col: col})
}

func (b Board) At(sq Square) Piece {
	if !sq.Valid() {
		return Empty
	}
	return b[sq.Row][sq.Col]
}

// Set returns a copy of b with p on (row, col). Off-board writes return an
// unchanged copy.
func (b Board) Set(row, col int, p Piece) Board {
	b.Put(row, col, p)
	return b
}

// Put writes p in place. Off-board writes are ignored.
func (b *Board) Put(row, col int, p Piece) {
	sq := Square{Row: row, Col: col}
	if !sq.Valid() {
		return
	}
	b[row][col] = p
}

func (b Board) IsEmpty(sq Square) bool {
	return b.At(sq).IsEmpty()
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// PathClear reports whether every square strictly between from and to is
// empty. The squares must share a rank, file or diagonal; any other pair is
// never clear.
func (b Board) PathClear(from, to Square) bool {
	dRow, dCol := to.Row-from.Row, to.Col-from.Col
	if dRow != 0 && dCol != 0 && abs(dRow) != abs(dCol) {
		return false
	}
	step := direction{row: sign(dRow), col: sign(dCol)}
	for sq := from.add(step); sq != to; sq = sq.add(step) {
		if !sq.Valid() {
			return false
		}
		if !b.IsEmpty(sq) {
			return false
		}
	}
	return true
}

func (b Board) FindKing(c Color) (Square, bool) {
	king := Piece{Type: King, Color: c}
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if b[row][col] == king {
				return Square{Row: row, Col: col}, true
			}
		}
	}
	return Square{}, false
}

// PawnDirection is the row step of a forward pawn move.
func PawnDirection(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

func IsPromotionRank(p Piece, row int) bool {
	if p.Type != Pawn {
		return false
	}
	switch p.Color {
	case White:
		return row == whitePromotionRow
	case Black:
		return row == blackPromotionRow
	}
	return false
}

func IsPawnStartRow(p Piece, row int) bool {
	if p.Type != Pawn {
		return false
	}
	switch p.Color {
	case White:
		return row == whitePawnStartRow
	case Black:
		return row == blackPawnStartRow
	}
	return false
}

type PlacedPiece struct {
	Square Square
	Piece  Piece
}

// PiecesOf lists the pieces of one color in row-major order.
func (b Board) PiecesOf(c Color) []PlacedPiece {
	pieces := []PlacedPiece{}
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			p := b[row][col]
			if !p.IsEmpty() && p.Color == c {
				pieces = append(pieces, PlacedPiece{Square: Square{Row: row, Col: col}, Piece: p})
			}
		}
	}
	return pieces
}

func (b Board) CountPieces(c Color) int {
	return len(b.PiecesOf(c))
}

// Rows encodes the board as one string per row, row 0 first.
func (b Board) Rows() []string {
	rows := make([]string, Rows)
	for row := 0; row < Rows; row++ {
		var sb strings.Builder
		for col := 0; col < Cols; col++ {
			sb.WriteRune(b[row][col].Rune())
		}
		rows[row] = sb.String()
	}
	return rows
}

// ParseBoard decodes the output of Rows.
func ParseBoard(rows []string) (Board, error) {
	var b Board
	if len(rows) != Rows {
		return b, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, Rows, len(rows))
	}
	for row, text := range rows {
		runes := []rune(text)
		if len(runes) != Cols {
			return Board{}, fmt.Errorf("%w: row %d has %d squares", ErrInvalidBoard, row, len(runes))
		}
		for col, r := range runes {
			p, ok := PieceFromRune(r)
			if !ok {
				return Board{}, fmt.Errorf("%w: unknown piece %q at %s", ErrInvalidBoard, r, Square{Row: row, Col: col})
			}
			b[row][col] = p
		}
	}
	return b, nil
}

// String draws the board with White at the bottom.
func (b Board) String() string {
	rows := b.Rows()
	var sb strings.Builder
	for row := Rows - 1; row >= 0; row-- {
		fmt.Fprintf(&sb, "%d %s\n", row+1, rows[row])
	}
	sb.WriteString("  abcde")
	return sb.String()
}

func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Rows())
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var rows []string
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	parsed, err := ParseBoard(rows)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

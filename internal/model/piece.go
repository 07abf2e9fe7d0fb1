package model

import (
	"errors"
	"unicode"
)

var ErrInvalidColor = errors.New("invalid color")

type PieceType string

const (
	NoPieceType PieceType = ""
	King        PieceType = "king"
	Queen       PieceType = "queen"
	Rook        PieceType = "rook"
	Bishop      PieceType = "bishop"
	Knight      PieceType = "knight"
	Pawn        PieceType = "pawn"
)

// PieceTypes lists every type in a fixed order.
var PieceTypes = []PieceType{King, Queen, Rook, Bishop, Knight, Pawn}

// Letter is the algebraic prefix of the type. Pawns have none.
func (p PieceType) Letter() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

type Color string

const (
	NoColor Color = ""
	White   Color = "white"
	Black   Color = "black"
)

func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func ParseColor(s string) (Color, error) {
	switch Color(s) {
	case White, Black:
		return Color(s), nil
	}
	return NoColor, ErrInvalidColor
}

// Piece is the content of a square. The zero value is an empty square.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

var Empty = Piece{}

func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

func ColorOf(p Piece) Color {
	return p.Color
}

func TypeOf(p Piece) PieceType {
	return p.Type
}

var letterToType = map[rune]PieceType{
	'K': King,
	'Q': Queen,
	'R': Rook,
	'B': Bishop,
	'N': Knight,
	'P': Pawn,
}

var typeToLetter = map[PieceType]rune{
	King:   'K',
	Queen:  'Q',
	Rook:   'R',
	Bishop: 'B',
	Knight: 'N',
	Pawn:   'P',
}

// Rune encodes the piece as a single letter: uppercase for white, lowercase
// for black and '.' for an empty square.
func (p Piece) Rune() rune {
	r, ok := typeToLetter[p.Type]
	if !ok {
		return '.'
	}
	if p.Color == Black {
		return unicode.ToLower(r)
	}
	return r
}

func (p Piece) String() string {
	return string(p.Rune())
}

// PieceFromRune decodes a letter produced by Rune. ok is false for anything
// that is neither a piece letter nor '.'.
func PieceFromRune(r rune) (Piece, bool) {
	if r == '.' {
		return Empty, true
	}
	t, ok := letterToType[unicode.ToUpper(r)]
	if !ok {
		return Empty, false
	}
	if unicode.IsUpper(r) {
		return Piece{Type: t, Color: White}, true
	}
	return Piece{Type: t, Color: Black}, true
}

// MaterialValue is the trade value of a piece type in centipawns. Kings are
// never traded, so they are worth nothing here.
func MaterialValue(t PieceType) int {
	switch t {
	case Pawn:
		return 100
	case Knight:
		return 320
	case Bishop:
		return 330
	case Rook:
		return 500
	case Queen:
		return 900
	}
	return 0
}

// PromotionChoices are the pieces a pawn of the given color may become.
// Queens are not offered.
func PromotionChoices(c Color) []Piece {
	return []Piece{
		{Type: Rook, Color: c},
		{Type: Knight, Color: c},
		{Type: Bishop, Color: c},
	}
}

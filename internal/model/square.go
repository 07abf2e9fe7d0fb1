package model

import (
	"errors"
	"fmt"
)

const (
	Rows = 6
	Cols = 5
)

var ErrInvalidSquare = errors.New("invalid square")

// Square is a board coordinate. Row 0 is White's back rank. In JSON a
// square is its algebraic name.
type Square struct {
	Row int
	Col int
}

func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < Rows && s.Col >= 0 && s.Col < Cols
}

func (s Square) add(d direction) Square {
	return Square{Row: s.Row + d.row, Col: s.Col + d.col}
}

// String returns the algebraic name of the square, "a1" through "e6".
// Off-board squares have no name.
func (s Square) String() string {
	if !s.Valid() {
		return ""
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col, s.Row+1)
}

func (s Square) File() string {
	if !s.Valid() {
		return ""
	}
	return fmt.Sprintf("%c", 'a'+s.Col)
}

func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}
	file := name[0]
	if file >= 'A' && file <= 'Z' {
		file += 'a' - 'A'
	}
	sq := Square{Row: int(name[1]) - '1', Col: int(file) - 'a'}
	if !sq.Valid() {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}
	return sq, nil
}

// MustSquare is ParseSquare for literals known to be valid.
func MustSquare(name string) Square {
	sq, err := ParseSquare(name)
	if err != nil {
		panic(err)
	}
	return sq
}

func (s Square) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: row %d col %d", ErrInvalidSquare, s.Row, s.Col)
	}
	return []byte(s.String()), nil
}

func (s *Square) UnmarshalText(text []byte) error {
	sq, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*s = sq
	return nil
}

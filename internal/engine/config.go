package engine

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/minitchess-backend/internal/model"
)

var ErrInvalidConfig = errors.New("invalid engine config")

const (
	DefaultDepth        = 3
	DefaultOpeningPlies = 4
)

// PieceSquareTable holds a positional bonus per square from White's point of
// view. Black reads it upside down.
type PieceSquareTable [model.Rows][model.Cols]float64

// Lookup returns the bonus for a piece of color c on sq.
func (t PieceSquareTable) Lookup(c model.Color, sq model.Square) float64 {
	row := sq.Row
	if c == model.Black {
		row = model.Rows - 1 - row
	}
	return t[row][sq.Col]
}

// Opening is a preferred early move, tried while the game is young.
type Opening struct {
	From model.Square
	To   model.Square
}

type Config struct {
	Depth int
	// PieceValues drives capture ordering. Kings are included so that taking
	// one sorts first; evaluation ignores them.
	PieceValues  map[model.PieceType]float64
	PST          map[model.PieceType]PieceSquareTable
	Openings     map[model.Color][]Opening
	OpeningPlies int
}

func DefaultPieceValues() map[model.PieceType]float64 {
	return map[model.PieceType]float64{
		model.Pawn:   100,
		model.Knight: 320,
		model.Bishop: 330,
		model.Rook:   500,
		model.Queen:  900,
		model.King:   20000,
	}
}

func DefaultPST() map[model.PieceType]PieceSquareTable {
	return map[model.PieceType]PieceSquareTable{
		model.Pawn: {
			{0, 0, 0, 0, 0},
			{50, 50, 50, 50, 50},
			{10, 10, 20, 10, 10},
			{5, 5, 10, 5, 5},
			{0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0},
		},
		model.Knight: {
			{-50, -40, -30, -40, -50},
			{-40, -20, 0, -20, -40},
			{-30, 0, 10, 0, -30},
			{-30, 5, 15, 5, -30},
			{-40, -20, 0, -20, -40},
			{-50, -40, -30, -40, -50},
		},
		model.Bishop: {
			{-20, -10, -10, -10, -20},
			{-10, 0, 0, 0, -10},
			{-10, 0, 10, 0, -10},
			{-10, 5, 5, 5, -10},
			{-10, 0, 0, 0, -10},
			{-20, -10, -10, -10, -20},
		},
		model.Rook: {
			{0, 0, 0, 0, 0},
			{5, 10, 10, 10, 5},
			{-5, 0, 0, 0, -5},
			{-5, 0, 0, 0, -5},
			{0, 0, 0, 0, 0},
			{0, 0, 5, 0, 0},
		},
		model.Queen: {
			{-20, -10, -10, -10, -20},
			{-10, 0, 0, 0, -10},
			{-10, 0, 10, 0, -10},
			{-10, 0, 5, 0, -10},
			{-10, 0, 0, 0, -10},
			{-20, -10, -10, -10, -20},
		},
		model.King: {
			{-30, -40, -40, -40, -30},
			{-30, -40, -40, -40, -30},
			{-20, -30, -30, -30, -20},
			{-10, -20, -20, -20, -10},
			{20, 20, 0, 20, 20},
			{20, 30, 10, 30, 20},
		},
	}
}

func DefaultOpenings() map[model.Color][]Opening {
	sq := model.MustSquare
	return map[model.Color][]Opening{
		model.White: {
			{From: sq("c2"), To: sq("c4")},
			{From: sq("b2"), To: sq("b4")},
			{From: sq("d2"), To: sq("d4")},
			{From: sq("b1"), To: sq("c3")},
			{From: sq("d1"), To: sq("c3")},
		},
		model.Black: {
			{From: sq("c5"), To: sq("c3")},
			{From: sq("b5"), To: sq("b3")},
			{From: sq("d5"), To: sq("d3")},
			{From: sq("d6"), To: sq("c4")},
			{From: sq("b6"), To: sq("c4")},
		},
	}
}

func DefaultConfig() Config {
	return Config{
		Depth:        DefaultDepth,
		PieceValues:  DefaultPieceValues(),
		PST:          DefaultPST(),
		Openings:     DefaultOpenings(),
		OpeningPlies: DefaultOpeningPlies,
	}
}

func (c Config) Validate() error {
	if c.Depth < 1 {
		return fmt.Errorf("%w: depth must be at least 1, got %d", ErrInvalidConfig, c.Depth)
	}
	if c.OpeningPlies < 0 {
		return fmt.Errorf("%w: negative opening plies", ErrInvalidConfig)
	}
	for _, t := range model.PieceTypes {
		if _, ok := c.PieceValues[t]; !ok {
			return fmt.Errorf("%w: missing value for %s", ErrInvalidConfig, t)
		}
	}
	for color, openings := range c.Openings {
		for _, o := range openings {
			if !o.From.Valid() || !o.To.Valid() {
				return fmt.Errorf("%w: %s opening off the board", ErrInvalidConfig, color)
			}
		}
	}
	return nil
}

// clone copies every table so the engine never shares maps with its caller.
func (c Config) clone() Config {
	out := Config{
		Depth:        c.Depth,
		PieceValues:  make(map[model.PieceType]float64, len(c.PieceValues)),
		PST:          make(map[model.PieceType]PieceSquareTable, len(c.PST)),
		Openings:     make(map[model.Color][]Opening, len(c.Openings)),
		OpeningPlies: c.OpeningPlies,
	}
	for t, v := range c.PieceValues {
		out.PieceValues[t] = v
	}
	for t, table := range c.PST {
		out.PST[t] = table
	}
	for color, openings := range c.Openings {
		out.Openings[color] = append([]Opening(nil), openings...)
	}
	return out
}

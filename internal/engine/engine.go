// Package engine picks moves for the 5x6 variant: a short opening book, then
// a fixed-depth minimax search with alpha-beta pruning over copied boards.
//
// Two rules shape the search. Taking the enemy king wins on the spot, and so
// does leaving the opponent without a single legal move. Both are checked
// for every root move before any searching is done.
package engine

import (
	"fmt"

	"github.com/benbeisheim/minitchess-backend/internal/model"
)

// WinScore is the score of a node where the side to move is stuck or has
// lost its king.
const WinScore = 100000.0

type Reason string

const (
	ReasonOpening      Reason = "opening"
	ReasonKingCapture  Reason = "king-capture"
	ReasonStalemateWin Reason = "stalemate-win"
	ReasonSearch       Reason = "search"
	ReasonNoMoves      Reason = "no-moves"
)

// Analysis explains a BestMove decision. Found is false only when the side
// to move has no legal moves, which means the game is already over.
type Analysis struct {
	Move   model.Move `json:"move"`
	Found  bool       `json:"found"`
	Score  float64    `json:"score"`
	Reason Reason     `json:"reason"`
	Nodes  int        `json:"nodes"`
}

// Engine holds nothing but its configuration, which never changes after New,
// so one Engine may serve any number of goroutines.
type Engine struct {
	cfg Config
}

func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg.clone()}, nil
}

// NewDefault returns an engine with DefaultConfig.
func NewDefault() *Engine {
	return &Engine{cfg: DefaultConfig()}
}

func (e *Engine) Depth() int {
	return e.cfg.Depth
}

func (e *Engine) Name() string {
	return fmt.Sprintf("minimax (depth %d)", e.cfg.Depth)
}

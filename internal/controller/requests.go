package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/minitchess-backend/internal/model"
	"github.com/benbeisheim/minitchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

var ErrInvalidRequest = errors.New("invalid request")

type applyMoveRequest struct {
	Board     *model.Board    `json:"board"`
	From      *model.Square   `json:"from"`
	To        *model.Square   `json:"to"`
	Promotion model.PieceType `json:"promotion,omitempty"`
}

func (r *applyMoveRequest) validate() error {
	if r.Board == nil || r.From == nil || r.To == nil {
		return fmt.Errorf("%w: board, from and to are required", ErrInvalidRequest)
	}
	return validatePromotion(r.Promotion)
}

type promoteRequest struct {
	Board  *model.Board    `json:"board"`
	Square *model.Square   `json:"square"`
	Piece  model.PieceType `json:"piece"`
}

func (r *promoteRequest) validate() error {
	if r.Board == nil || r.Square == nil || r.Piece == model.NoPieceType {
		return fmt.Errorf("%w: board, square and piece are required", ErrInvalidRequest)
	}
	return validatePromotion(r.Piece)
}

type legalMovesRequest struct {
	Board  *model.Board  `json:"board"`
	Square *model.Square `json:"square"`
}

func (r *legalMovesRequest) validate() error {
	if r.Board == nil || r.Square == nil {
		return fmt.Errorf("%w: board and square are required", ErrInvalidRequest)
	}
	return nil
}

type allMovesRequest struct {
	Board *model.Board `json:"board"`
	Color model.Color  `json:"color"`
}

func (r *allMovesRequest) validate() error {
	if r.Board == nil {
		return fmt.Errorf("%w: board is required", ErrInvalidRequest)
	}
	return validateColor(r.Color)
}

type bestMoveRequest struct {
	Board    *model.Board `json:"board"`
	Color    model.Color  `json:"color"`
	PlyCount int          `json:"plyCount"`
}

func (r *bestMoveRequest) validate() error {
	if r.Board == nil {
		return fmt.Errorf("%w: board is required", ErrInvalidRequest)
	}
	if r.PlyCount < 0 {
		return fmt.Errorf("%w: negative plyCount", ErrInvalidRequest)
	}
	return validateColor(r.Color)
}

type notationRequest struct {
	Board *model.Board `json:"board,omitempty"`
	Move  *model.Move  `json:"move"`
}

func (r *notationRequest) validate() error {
	if r.Move == nil {
		return fmt.Errorf("%w: move is required", ErrInvalidRequest)
	}
	return nil
}

type movesResponse struct {
	Moves         []model.Move `json:"moves"`
	HasLegalMoves *bool        `json:"hasLegalMoves,omitempty"`
}

func validateColor(c model.Color) error {
	if _, err := model.ParseColor(string(c)); err != nil {
		return fmt.Errorf("%w: %q", err, c)
	}
	return nil
}

func validatePromotion(t model.PieceType) error {
	if t == model.NoPieceType {
		return nil
	}
	for _, known := range model.PieceTypes {
		if t == known {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown piece %q", model.ErrInvalidPromotion, t)
}

// statusFor maps an error to the HTTP status reported for it.
func statusFor(err error) int {
	var fe *fiber.Error
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, model.ErrInvalidBoard),
		errors.Is(err, model.ErrInvalidSquare),
		errors.Is(err, model.ErrInvalidColor),
		errors.Is(err, model.ErrInvalidPromotion),
		errors.Is(err, service.ErrInvalidMove),
		errors.As(err, &syntaxErr),
		errors.As(err, &typeErr):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrPoolClosed),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

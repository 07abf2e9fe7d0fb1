package controller

import (
	"github.com/benbeisheim/minitchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type AnalysisController struct {
	analysisService *service.AnalysisService
}

func NewAnalysisController(analysisService *service.AnalysisService) *AnalysisController {
	return &AnalysisController{analysisService: analysisService}
}

func (ac *AnalysisController) NewBoard(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"board": ac.analysisService.NewBoard(),
	})
}

func (ac *AnalysisController) ApplyMove(c *fiber.Ctx) error {
	var req applyMoveRequest
	if err := parse(c, &req); err != nil {
		return respondError(c, err)
	}

	result, err := ac.analysisService.ApplyMove(*req.Board, *req.From, *req.To, req.Promotion)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (ac *AnalysisController) Promote(c *fiber.Ctx) error {
	var req promoteRequest
	if err := parse(c, &req); err != nil {
		return respondError(c, err)
	}

	board, err := ac.analysisService.Promote(*req.Board, *req.Square, req.Piece)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"board": board,
	})
}

func (ac *AnalysisController) LegalMoves(c *fiber.Ctx) error {
	var req legalMovesRequest
	if err := parse(c, &req); err != nil {
		return respondError(c, err)
	}

	return c.JSON(movesResponse{
		Moves: ac.analysisService.LegalMoves(*req.Board, *req.Square),
	})
}

func (ac *AnalysisController) AllMoves(c *fiber.Ctx) error {
	var req allMovesRequest
	if err := parse(c, &req); err != nil {
		return respondError(c, err)
	}

	moves, ok := ac.analysisService.AllMoves(*req.Board, req.Color)
	return c.JSON(movesResponse{
		Moves:         moves,
		HasLegalMoves: &ok,
	})
}

func (ac *AnalysisController) BestMove(c *fiber.Ctx) error {
	var req bestMoveRequest
	if err := parse(c, &req); err != nil {
		return respondError(c, err)
	}

	result, err := ac.analysisService.BestMove(c.UserContext(), *req.Board, req.Color, req.PlyCount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (ac *AnalysisController) Notation(c *fiber.Ctx) error {
	var req notationRequest
	if err := parse(c, &req); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"notation": ac.analysisService.Notation(req.Board, *req.Move),
	})
}

type validator interface {
	validate() error
}

func parse(c *fiber.Ctx, req validator) error {
	if err := c.BodyParser(req); err != nil {
		return err
	}
	return req.validate()
}

func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

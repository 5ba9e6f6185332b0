package controller

import (
	"errors"
	"strconv"

	"github.com/benbeisheim/chessviz-backend/internal/middleware"
	"github.com/benbeisheim/chessviz-backend/internal/model"
	"github.com/benbeisheim/chessviz-backend/internal/movegen"
	"github.com/benbeisheim/chessviz-backend/internal/notation"
	"github.com/benbeisheim/chessviz-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

var errMissingSquare = errors.New("a square or x/y coordinates are required")

type BoardController struct {
	boardService *service.BoardService
}

func NewBoardController(boardService *service.BoardService) *BoardController {
	return &BoardController{boardService: boardService}
}

type createRequest struct {
	FEN string `json:"fen"`
}

// squareRequest names a square either algebraically or by coordinates.
type squareRequest struct {
	Square string `json:"square"`
	X      *int   `json:"x"`
	Y      *int   `json:"y"`
}

func (r squareRequest) position() (model.Position, error) {
	if r.Square != "" {
		return notation.ParseSquare(r.Square)
	}
	if r.X == nil || r.Y == nil {
		return model.Position{}, errMissingSquare
	}
	pos := model.Position{X: *r.X, Y: *r.Y}
	if !pos.InBounds() {
		return model.Position{}, model.ErrInvalidPosition
	}
	return pos, nil
}

func (bc *BoardController) CreateBoard(c *fiber.Ctx) error {
	var req createRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	boardID, err := bc.boardService.CreateBoard(req.FEN)
	if err != nil {
		return respondError(c, err)
	}
	log.Infof("viewer %s created board %s", middleware.ViewerID(c), boardID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Board created",
		"boardId": boardID,
	})
}

func (bc *BoardController) GetBoardState(c *fiber.Ctx) error {
	view, err := bc.boardService.GetBoardState(c.Params("boardId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

func (bc *BoardController) DeleteBoard(c *fiber.Ctx) error {
	if err := bc.boardService.DeleteBoard(c.Params("boardId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (bc *BoardController) GetMoves(c *fiber.Ctx) error {
	req := squareRequest{Square: c.Query("square")}
	for key, dst := range map[string]**int{"x": &req.X, "y": &req.Y} {
		if v := c.Query(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "query parameter " + key + " must be an integer",
				})
			}
			*dst = &n
		}
	}
	pos, err := req.position()
	if err != nil {
		return respondError(c, err)
	}

	candidates, err := bc.boardService.Moves(c.Params("boardId"), pos)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"square":     pos.SquareName(),
		"candidates": candidates,
	})
}

func (bc *BoardController) Click(c *fiber.Ctx) error {
	return bc.withSquare(c, bc.boardService.Click)
}

func (bc *BoardController) Select(c *fiber.Ctx) error {
	return bc.withSquare(c, bc.boardService.Select)
}

func (bc *BoardController) RemovePiece(c *fiber.Ctx) error {
	return bc.withSquare(c, bc.boardService.RemovePiece)
}

func (bc *BoardController) Reset(c *fiber.Ctx) error {
	view, err := bc.boardService.Reset(c.Params("boardId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

func (bc *BoardController) LoadFEN(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	view, err := bc.boardService.LoadFEN(c.Params("boardId"), req.FEN)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

func (bc *BoardController) withSquare(c *fiber.Ctx, action func(string, model.Position) (service.BoardView, error)) error {
	var req squareRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	pos, err := req.position()
	if err != nil {
		return respondError(c, err)
	}

	view, err := action(c.Params("boardId"), pos)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrSessionExists):
		return fiber.StatusConflict
	case errors.Is(err, errMissingSquare),
		errors.Is(err, model.ErrInvalidPosition),
		errors.Is(err, model.ErrEmptySquare),
		errors.Is(err, notation.ErrInvalidFEN),
		errors.Is(err, notation.ErrInvalidSquare),
		errors.Is(err, movegen.ErrOutOfBounds),
		errors.Is(err, movegen.ErrPieceNotOnBoard),
		errors.Is(err, movegen.ErrUnknownPieceType):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

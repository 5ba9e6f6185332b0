package service

import (
	"fmt"

	"github.com/benbeisheim/chessviz-backend/internal/model"
	"github.com/benbeisheim/chessviz-backend/internal/notation"
	"github.com/google/uuid"
)

// BoardView is a session snapshot plus its FEN placement, as served to clients.
type BoardView struct {
	ID string `json:"boardId"`
	model.SessionState
	FEN string `json:"fen"`
}

type BoardService struct {
	sessionManager *SessionManager
}

func NewBoardService(sessionManager *SessionManager) *BoardService {
	return &BoardService{
		sessionManager: sessionManager,
	}
}

// CreateBoard starts a session from fen, or from the starting position when fen is empty.
func (bs *BoardService) CreateBoard(fen string) (string, error) {
	board := model.NewBoard()
	if fen != "" {
		var err error
		if board, err = notation.ParseFEN(fen); err != nil {
			return "", err
		}
	}

	boardID := uuid.New().String()
	if _, err := bs.sessionManager.CreateSession(boardID, board); err != nil {
		return "", fmt.Errorf("failed to create board: %w", err)
	}
	return boardID, nil
}

func (bs *BoardService) DeleteBoard(boardID string) error {
	return bs.sessionManager.DeleteSession(boardID)
}

func (bs *BoardService) GetBoardState(boardID string) (BoardView, error) {
	session, err := bs.sessionManager.GetSession(boardID)
	if err != nil {
		return BoardView{}, err
	}
	return view(boardID, session.GetState()), nil
}

// Moves previews the candidates of the piece at pos without selecting it.
func (bs *BoardService) Moves(boardID string, pos model.Position) ([]model.Candidate, error) {
	session, err := bs.sessionManager.GetSession(boardID)
	if err != nil {
		return nil, err
	}
	return session.Moves(pos)
}

func (bs *BoardService) Click(boardID string, pos model.Position) (BoardView, error) {
	return bs.update(boardID, func(s *model.Session) (model.SessionState, error) {
		return s.Click(pos)
	})
}

func (bs *BoardService) Select(boardID string, pos model.Position) (BoardView, error) {
	return bs.update(boardID, func(s *model.Session) (model.SessionState, error) {
		return s.Select(pos)
	})
}

func (bs *BoardService) RemovePiece(boardID string, pos model.Position) (BoardView, error) {
	return bs.update(boardID, func(s *model.Session) (model.SessionState, error) {
		return s.RemovePiece(pos)
	})
}

func (bs *BoardService) Reset(boardID string) (BoardView, error) {
	return bs.update(boardID, func(s *model.Session) (model.SessionState, error) {
		return s.Reset(), nil
	})
}

// LoadFEN replaces the board of an existing session.
func (bs *BoardService) LoadFEN(boardID string, fen string) (BoardView, error) {
	board, err := notation.ParseFEN(fen)
	if err != nil {
		return BoardView{}, err
	}
	return bs.update(boardID, func(s *model.Session) (model.SessionState, error) {
		return s.ReplaceBoard(board), nil
	})
}

func (bs *BoardService) RegisterConnection(boardID string, viewerID string, conn model.Conn) error {
	return bs.sessionManager.RegisterConnection(boardID, viewerID, conn)
}

func (bs *BoardService) UnregisterConnection(boardID string, viewerID string) {
	bs.sessionManager.UnregisterConnection(boardID, viewerID)
}

func (bs *BoardService) update(boardID string, apply func(*model.Session) (model.SessionState, error)) (BoardView, error) {
	session, err := bs.sessionManager.GetSession(boardID)
	if err != nil {
		return BoardView{}, err
	}
	state, err := apply(session)
	if err != nil {
		return BoardView{}, err
	}
	return view(boardID, state), nil
}

func view(boardID string, state model.SessionState) BoardView {
	return BoardView{
		ID:           boardID,
		SessionState: state,
		FEN:          notation.FormatFEN(state.Board),
	}
}

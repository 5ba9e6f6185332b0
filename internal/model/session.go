package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessviz-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

var ErrDuplicateConnection = errors.New("viewer already has a connection")

// MoveGenerator produces the candidate destinations of a piece on a board.
type MoveGenerator func(piece *Piece, board *Board) ([]Candidate, error)

// The connections watching a specific board
type SessionConnections struct {
	connections map[string]*SyncConn // viewerID -> connection
	mu          sync.RWMutex
}

// outbox holds the newest state waiting to be broadcast. At most one flush runs per
// session, so viewers receive states in commit order and never an older one last.
type outbox struct {
	mu       sync.Mutex
	pending  *SessionState
	flushing bool
}

// Session owns one authoritative board and the selection a viewer made on it.
type Session struct {
	ID          string
	mu          sync.Mutex
	state       SessionState
	generate    MoveGenerator
	connections *SessionConnections
	out         outbox
}

type SessionState struct {
	Sound      string       `json:"sound"`
	Board      *Board       `json:"boardState"`
	Selected   *Position    `json:"selectedSquare"`
	Candidates []Candidate  `json:"candidates"`
	Highlights Highlights   `json:"highlights"`
	LastMove   *AppliedMove `json:"lastMove"`
}

func NewSession(id string, board *Board, generate MoveGenerator) *Session {
	if board == nil {
		board = NewBoard()
	}
	return &Session{
		ID:          id,
		state:       newSessionState(board),
		generate:    generate,
		connections: NewSessionConnections(),
	}
}

func NewSessionConnections() *SessionConnections {
	return &SessionConnections{
		connections: make(map[string]*SyncConn),
	}
}

func newSessionState(board *Board) SessionState {
	return SessionState{
		Board:      board,
		Candidates: make([]Candidate, 0),
	}
}

// GetState returns a copy that shares nothing with the live session.
func (s *Session) GetState() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

func (s *Session) snapshot() SessionState {
	state := s.state
	state.Board = s.state.Board.Clone()
	state.Candidates = append(make([]Candidate, 0, len(s.state.Candidates)), s.state.Candidates...)
	if s.state.Selected != nil {
		selected := *s.state.Selected
		state.Selected = &selected
	}
	if s.state.LastMove != nil {
		lastMove := *s.state.LastMove
		state.LastMove = &lastMove
	}
	return state
}

// Moves previews the candidates of the piece at pos without touching the selection.
func (s *Session) Moves(pos Position) ([]Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	piece, err := s.occupant(pos)
	if err != nil {
		return nil, err
	}
	return s.generate(piece, s.state.Board)
}

// Click mirrors a click on the rendered board: a highlighted square completes the move of
// the selected piece, another piece becomes the selection, an empty square clears it.
func (s *Session) Click(pos Position) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !pos.InBounds() {
		return SessionState{}, fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}
	if s.state.Selected != nil {
		for _, c := range s.state.Candidates {
			if c.Position == pos {
				if err := s.applyMove(*s.state.Selected, pos); err != nil {
					return SessionState{}, err
				}
				return s.commit(), nil
			}
		}
	}
	if s.state.Board.OccupantAt(pos.X, pos.Y) != nil {
		if err := s.selectSquare(pos); err != nil {
			return SessionState{}, err
		}
		return s.commit(), nil
	}
	s.clearSelection()
	return s.commit(), nil
}

func (s *Session) Select(pos Position) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.selectSquare(pos); err != nil {
		return SessionState{}, err
	}
	return s.commit(), nil
}

func (s *Session) ClearSelection() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearSelection()
	return s.commit()
}

// RemovePiece takes the occupant of pos off the board.
func (s *Session) RemovePiece(pos Position) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.occupant(pos); err != nil {
		return SessionState{}, err
	}
	s.state.Board.Remove(pos.X, pos.Y)
	s.clearSelection()
	s.state.Sound = "remove"
	return s.commit(), nil
}

// Reset puts the standard starting position back.
func (s *Session) Reset() SessionState {
	return s.ReplaceBoard(NewBoard())
}

// ReplaceBoard swaps in a new board and forgets the selection and last move.
func (s *Session) ReplaceBoard(board *Board) SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = newSessionState(board)
	return s.commit()
}

func (s *Session) occupant(pos Position) (*Piece, error) {
	if !pos.InBounds() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}
	piece := s.state.Board.OccupantAt(pos.X, pos.Y)
	if piece == nil {
		return nil, fmt.Errorf("%w %s", ErrEmptySquare, pos.SquareName())
	}
	return piece, nil
}

func (s *Session) selectSquare(pos Position) error {
	piece, err := s.occupant(pos)
	if err != nil {
		return err
	}
	candidates, err := s.generate(piece, s.state.Board)
	if err != nil {
		return fmt.Errorf("generate moves for %s: %w", pos.SquareName(), err)
	}
	s.state.Selected = &pos
	s.state.Candidates = candidates
	s.state.Highlights = NewHighlights(&pos, candidates)
	s.state.Sound = ""
	log.Debugf("session %s: selected %s with %d candidates", s.ID, pos.SquareName(), len(candidates))
	return nil
}

func (s *Session) clearSelection() {
	s.state.Selected = nil
	s.state.Candidates = make([]Candidate, 0)
	s.state.Highlights = Highlights{}
}

func (s *Session) applyMove(from, to Position) error {
	piece := s.state.Board.OccupantAt(from.X, from.Y)
	if piece == nil {
		return fmt.Errorf("%w %s", ErrEmptySquare, from.SquareName())
	}
	notation := notationFor(piece, from, to, s.state.Board.OccupantAt(to.X, to.Y))
	captured, err := s.state.Board.MovePiece(from, to)
	if err != nil {
		return err
	}
	s.state.LastMove = &AppliedMove{
		Piece:         *piece,
		From:          from,
		To:            to,
		CapturedPiece: captured,
		Notation:      notation,
	}
	if captured != nil {
		s.state.Sound = "capture"
	} else {
		s.state.Sound = "move"
	}
	s.clearSelection()
	log.Debugf("session %s: applied %s", s.ID, notation)
	return nil
}

// commit snapshots the state for the caller and queues the same snapshot for every viewer.
// Callers hold s.mu, which keeps queueing in commit order.
func (s *Session) commit() SessionState {
	state := s.snapshot()
	s.publish(state)
	return state
}

func (s *Session) publish(state SessionState) {
	s.out.mu.Lock()
	s.out.pending = &state
	if s.out.flushing {
		s.out.mu.Unlock()
		return
	}
	s.out.flushing = true
	s.out.mu.Unlock()

	go s.flush()
}

func (s *Session) flush() {
	for {
		s.out.mu.Lock()
		state := s.out.pending
		s.out.pending = nil
		if state == nil {
			s.out.flushing = false
			s.out.mu.Unlock()
			return
		}
		s.out.mu.Unlock()

		s.broadcastState(*state)
	}
}

// RegisterConnection adds a viewer's connection and sends it the current state.
// Callers that also write to conn should wrap it with NewSyncConn and pass the wrapper.
func (s *Session) RegisterConnection(viewerID string, conn Conn) error {
	sc := NewSyncConn(conn)
	s.connections.mu.Lock()
	if _, exists := s.connections.connections[viewerID]; exists {
		// If we already have a healthy connection, keep it and reject the new one
		s.connections.mu.Unlock()
		sc.CloseWithReason("Connection already exists")
		return ErrDuplicateConnection
	}
	s.connections.connections[viewerID] = sc
	s.connections.mu.Unlock()
	log.Infof("session %s: registered connection for viewer %s", s.ID, viewerID)

	s.mu.Lock()
	s.publish(s.snapshot())
	s.mu.Unlock()
	return nil
}

// CloseConnections sends every viewer a close frame and forgets the connections.
func (s *Session) CloseConnections(reason string) {
	s.connections.mu.Lock()
	active := s.connections.connections
	s.connections.connections = make(map[string]*SyncConn)
	s.connections.mu.Unlock()

	for viewerID, conn := range active {
		log.Debugf("session %s: closing connection for viewer %s", s.ID, viewerID)
		conn.CloseWithReason(reason)
	}
}

func (s *Session) UnregisterConnection(viewerID string) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	if _, exists := s.connections.connections[viewerID]; exists {
		log.Infof("session %s: unregistering connection for viewer %s", s.ID, viewerID)
		delete(s.connections.connections, viewerID)
	}
}

func (s *Session) ConnectionCount() int {
	s.connections.mu.RLock()
	defer s.connections.mu.RUnlock()
	return len(s.connections.connections)
}

func (s *Session) broadcastState(state SessionState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Errorf("session %s: failed to marshal state: %v", s.ID, err)
		return
	}

	// Copy the connections so writes happen without holding the lock
	s.connections.mu.RLock()
	active := make(map[string]*SyncConn, len(s.connections.connections))
	for viewerID, conn := range s.connections.connections {
		active[viewerID] = conn
	}
	s.connections.mu.RUnlock()

	for viewerID, conn := range active {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeBoardState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Warnf("session %s: failed to send state to viewer %s: %v", s.ID, viewerID, err)
			s.connections.mu.Lock()
			if s.connections.connections[viewerID] == conn {
				delete(s.connections.connections, viewerID)
			}
			s.connections.mu.Unlock()
		}
	}
}

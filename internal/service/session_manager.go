// service/session_manager.go
package service

import (
	"errors"
	"sync"

	"github.com/benbeisheim/chessviz-backend/internal/model"
	"github.com/benbeisheim/chessviz-backend/internal/movegen"
	"github.com/gofiber/fiber/v2/log"
)

var (
	ErrSessionNotFound = errors.New("board not found")
	ErrSessionExists   = errors.New("board already exists")
)

type SessionManager struct {
	sessions map[string]*model.Session
	generate model.MoveGenerator
	mu       sync.RWMutex
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*model.Session),
		generate: movegen.GenerateMoves,
	}
}

func (sm *SessionManager) CreateSession(id string, board *model.Board) (*model.Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.sessions[id]; exists {
		return nil, ErrSessionExists
	}

	session := model.NewSession(id, board, sm.generate)
	sm.sessions[id] = session
	log.Infof("created board %s", id)
	return session, nil
}

func (sm *SessionManager) GetSession(id string) (*model.Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (sm *SessionManager) DeleteSession(id string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.sessions[id]
	if !exists {
		return ErrSessionNotFound
	}
	delete(sm.sessions, id)
	session.CloseConnections("Board deleted")
	log.Infof("deleted board %s", id)
	return nil
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

func (sm *SessionManager) RegisterConnection(id string, viewerID string, conn model.Conn) error {
	session, err := sm.GetSession(id)
	if err != nil {
		return err
	}
	return session.RegisterConnection(viewerID, conn)
}

func (sm *SessionManager) UnregisterConnection(id string, viewerID string) {
	session, err := sm.GetSession(id)
	if err != nil {
		return
	}
	session.UnregisterConnection(viewerID)
}

package badger

import (
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/interfaces"
	"github.com/ternarybob/copydesk/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// SessionStorage implements the SessionStorage interface for Badger
type SessionStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSessionStorage creates a new SessionStorage instance
func NewSessionStorage(db *BadgerDB, logger arbor.ILogger) interfaces.SessionStorage {
	return &SessionStorage{
		db:     db,
		logger: logger,
	}
}

func (s *SessionStorage) SaveSession(session *models.ChatSession) error {
	if session.ID == "" {
		session.ID = common.NewSessionID()
	}

	now := time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	if err := s.db.Store().Upsert(session.ID, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *SessionStorage) GetSession(id string) (*models.ChatSession, error) {
	var session models.ChatSession
	if err := s.db.Store().Get(id, &session); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("session not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

func (s *SessionStorage) ListSessions(limit int) ([]*models.ChatSession, error) {
	var sessions []models.ChatSession
	if err := s.db.Store().Find(&sessions, badgerhold.Where("ID").Ne("")); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	// Most recently active first
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}

	result := make([]*models.ChatSession, len(sessions))
	for i := range sessions {
		result[i] = &sessions[i]
	}
	return result, nil
}

func (s *SessionStorage) SaveMessage(message *models.ChatMessage) error {
	if message.ID == "" {
		message.ID = common.NewMessageID()
	}
	if message.SessionID == "" {
		return fmt.Errorf("message session ID is required")
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	if err := s.db.Store().Upsert(message.ID, message); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

// ListMessages returns the session's messages in conversation order
func (s *SessionStorage) ListMessages(sessionID string) ([]*models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := s.db.Store().Find(&messages, badgerhold.Where("SessionID").Eq(sessionID)); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	result := make([]*models.ChatMessage, len(messages))
	for i := range messages {
		result[i] = &messages[i]
	}
	return result, nil
}

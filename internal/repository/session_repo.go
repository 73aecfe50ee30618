package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/liliang-cn/askcontract/internal/domain"
)

// SessionRepository handles chat session persistence. The one-session-per-
// contract invariant lives here (unique index plus GetOrCreateByContract),
// not in caller discipline.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// GetOrCreateByContract returns the contract's session, creating it seeded
// with the welcome message when absent. Messages are always loaded.
func (r *SessionRepository) GetOrCreateByContract(contractID string, welcome *domain.Message) (*domain.Session, error) {
	session, err := r.GetByContract(contractID)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	now := time.Now()
	session = &domain.Session{
		ID:         uuid.New().String(),
		ContractID: contractID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO sessions (id, contract_id, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, session.ID, session.ContractID, session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if welcome != nil {
		welcome.ID = uuid.New().String()
		welcome.SessionID = session.ID
		if welcome.CreatedAt.IsZero() {
			welcome.CreatedAt = now
		}
		if err := insertMessageTx(tx, welcome); err != nil {
			return nil, err
		}
		session.Messages = []*domain.Message{welcome}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return session, nil
}

// GetByContract retrieves a contract's session with messages, nil if absent.
func (r *SessionRepository) GetByContract(contractID string) (*domain.Session, error) {
	session := &domain.Session{}
	err := r.db.QueryRow(`
		SELECT id, contract_id, created_at, updated_at
		FROM sessions WHERE contract_id = ?
	`, contractID).Scan(&session.ID, &session.ContractID, &session.CreatedAt, &session.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	session.Messages, err = r.GetMessages(session.ID)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// AppendMessage appends a message to a session and bumps its updated_at.
// Messages are never edited or removed individually.
func (r *SessionRepository) AppendMessage(message *domain.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertMessageTx(tx, message); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE sessions SET updated_at = ? WHERE id = ?`, message.CreatedAt, message.SessionID); err != nil {
		return err
	}
	return tx.Commit()
}

func insertMessageTx(tx *sql.Tx, message *domain.Message) error {
	citationsJSON, _ := json.Marshal(message.Citations)
	_, err := tx.Exec(`
		INSERT INTO messages (id, session_id, role, content, citations, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, message.ID, message.SessionID, message.Role, message.Content,
		string(citationsJSON), message.CreatedAt)
	return err
}

// GetMessages retrieves all messages for a session in chronological order.
func (r *SessionRepository) GetMessages(sessionID string) ([]*domain.Message, error) {
	rows, err := r.db.Query(`
		SELECT id, session_id, role, content, citations, created_at
		FROM messages WHERE session_id = ?
		ORDER BY created_at ASC, rowid ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		message := &domain.Message{}
		var citationsJSON sql.NullString

		if err := rows.Scan(&message.ID, &message.SessionID, &message.Role,
			&message.Content, &citationsJSON, &message.CreatedAt); err != nil {
			return nil, err
		}

		if citationsJSON.Valid && citationsJSON.String != "" {
			json.Unmarshal([]byte(citationsJSON.String), &message.Citations)
		}
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

// DeleteByContract removes a contract's session and its messages.
func (r *SessionRepository) DeleteByContract(contractID string) error {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE contract_id = ?`, contractID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

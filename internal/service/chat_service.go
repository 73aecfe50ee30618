package service

import (
	"context"
	"fmt"
	"time"

	"github.com/liliang-cn/askcontract/internal/domain"
	"github.com/liliang-cn/askcontract/internal/llm"
	"github.com/liliang-cn/askcontract/internal/parse"
	"github.com/liliang-cn/askcontract/internal/prompt"
	"github.com/liliang-cn/askcontract/internal/repository"
	"go.uber.org/zap"
)

// welcomeMessage seeds every new session and counts as history afterwards.
const welcomeMessage = "Xin chào! Tôi là trợ lý AI. Bạn có thể hỏi tôi bất kỳ câu hỏi nào về hợp đồng này."

// apologyTemplate is appended as the assistant turn when the model call
// fails. A user question is never left without a reply.
const apologyTemplate = "Xin lỗi, đã có lỗi xảy ra: %s"

// ChatService maintains per-contract chat sessions grounded in the contract
// text.
type ChatService struct {
	contractRepo *repository.ContractRepository
	sessionRepo  *repository.SessionRepository
	settingsRepo *repository.SettingsRepository
	gateway      llm.Gateway
	logger       *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(
	contractRepo *repository.ContractRepository,
	sessionRepo *repository.SessionRepository,
	settingsRepo *repository.SettingsRepository,
	gateway llm.Gateway,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		contractRepo: contractRepo,
		sessionRepo:  sessionRepo,
		settingsRepo: settingsRepo,
		gateway:      gateway,
		logger:       logger,
	}
}

// Ask appends the user's question to the contract's session, queries the
// model with the document text and rolling history, and appends the grounded
// answer. On a model failure the assistant turn is a fixed apology embedding
// the error, so the session always gains exactly two messages.
func (s *ChatService) Ask(ctx context.Context, contractID, question string) (*domain.Message, error) {
	contract, err := s.contractRepo.Get(contractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, domain.ErrNotFound
	}

	session, err := s.sessionRepo.GetOrCreateByContract(contractID, &domain.Message{
		Role:      domain.RoleAssistant,
		Content:   welcomeMessage,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	userMsg := &domain.Message{
		SessionID: session.ID,
		Role:      domain.RoleUser,
		Content:   question,
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.AppendMessage(userMsg); err != nil {
		return nil, err
	}

	history := renderHistory(append(session.Messages, userMsg))

	answer := s.complete(ctx, contract.Content, question, history)

	assistantMsg := &domain.Message{
		SessionID: session.ID,
		Role:      domain.RoleAssistant,
		Content:   answer.Answer,
		Citations: answer.Citations,
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.AppendMessage(assistantMsg); err != nil {
		return nil, err
	}

	return assistantMsg, nil
}

// complete runs the grounded chat model call. Failures collapse into an
// apology answer with no citations rather than an error.
func (s *ChatService) complete(ctx context.Context, contractText, question string, history []string) domain.ChatAnswer {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return domain.ChatAnswer{Answer: fmt.Sprintf(apologyTemplate, err.Error())}
	}
	cfg := llm.Config{Provider: settings.Provider, APIKey: settings.APIKey}
	if cfg.APIKey == "" {
		return domain.ChatAnswer{Answer: fmt.Sprintf(apologyTemplate, (&domain.MissingCredentialsError{}).Error())}
	}

	raw, err := s.gateway.Complete(ctx, prompt.Chat(contractText, question, history), cfg)
	if err != nil {
		s.logger.Warn("chat completion failed", zap.Error(err))
		return domain.ChatAnswer{Answer: fmt.Sprintf(apologyTemplate, err.Error())}
	}
	return parse.ChatAnswer(raw)
}

// renderHistory formats messages as alternating "User: ..." and
// "Assistant: ..." lines in chronological order.
func renderHistory(messages []*domain.Message) []string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		label := "Assistant"
		if m.Role == domain.RoleUser {
			label = "User"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, m.Content))
	}
	return lines
}

// GetSession returns the contract's session with all messages.
func (s *ChatService) GetSession(contractID string) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByContract(contractID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

// DeleteSession removes the contract's session. Individual messages are
// never deleted, only whole sessions.
func (s *ChatService) DeleteSession(contractID string) error {
	return s.sessionRepo.DeleteByContract(contractID)
}

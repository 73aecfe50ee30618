package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/liliang-cn/askcontract/internal/domain"
	"github.com/liliang-cn/askcontract/internal/extract"
	"github.com/liliang-cn/askcontract/internal/llm"
	"github.com/liliang-cn/askcontract/internal/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubGateway replays scripted completions and records every prompt it sees.
type stubGateway struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (s *stubGateway) Complete(ctx context.Context, prompt string, cfg llm.Config) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", nil
	}
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp, nil
}

func (s *stubGateway) Transcribe(ctx context.Context, instruction, imageB64, mimeType string, cfg llm.Config) (string, error) {
	return s.Complete(ctx, instruction, cfg)
}

type testEnv struct {
	db           *repository.DB
	contractRepo *repository.ContractRepository
	sessionRepo  *repository.SessionRepository
	settingsRepo *repository.SettingsRepository
	gateway      *stubGateway
	analysis     *AnalysisService
	chat         *ChatService
}

func newTestEnv(t *testing.T, apiKey string) *testEnv {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	contractRepo := repository.NewContractRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	require.NoError(t, settingsRepo.Save(&domain.Settings{
		Provider: "gemini",
		APIKey:   apiKey,
		Theme:    "light",
		Language: "vi",
	}))

	gateway := &stubGateway{}
	extractor := extract.NewExtractor(gateway)
	logger := zap.NewNop()

	return &testEnv{
		db:           db,
		contractRepo: contractRepo,
		sessionRepo:  sessionRepo,
		settingsRepo: settingsRepo,
		gateway:      gateway,
		analysis:     NewAnalysisService(contractRepo, settingsRepo, extractor, gateway, logger),
		chat:         NewChatService(contractRepo, sessionRepo, settingsRepo, gateway, logger),
	}
}

func txtUpload(name, content string) extract.Upload {
	return extract.Upload{Name: name, Data: []byte(content)}
}

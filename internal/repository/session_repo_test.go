package repository

import (
	"testing"
	"time"

	"github.com/liliang-cn/askcontract/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func welcome() *domain.Message {
	return &domain.Message{
		Role:      domain.RoleAssistant,
		Content:   "Xin chào!",
		CreatedAt: time.Now(),
	}
}

func TestSessionRepository_GetOrCreateSeedsWelcome(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, NewContractRepository(db).Create(testContract("c1")))
	repo := NewSessionRepository(db)

	session, err := repo.GetOrCreateByContract("c1", welcome())
	require.NoError(t, err)
	assert.Equal(t, "c1", session.ContractID)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, domain.RoleAssistant, session.Messages[0].Role)
	assert.Equal(t, "Xin chào!", session.Messages[0].Content)
}

func TestSessionRepository_GetOrCreateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, NewContractRepository(db).Create(testContract("c1")))
	repo := NewSessionRepository(db)

	first, err := repo.GetOrCreateByContract("c1", welcome())
	require.NoError(t, err)

	second, err := repo.GetOrCreateByContract("c1", welcome())
	require.NoError(t, err)

	// One session per contract; the welcome is not seeded twice
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, second.Messages, 1)
}

func TestSessionRepository_AppendOrdering(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, NewContractRepository(db).Create(testContract("c1")))
	repo := NewSessionRepository(db)

	session, err := repo.GetOrCreateByContract("c1", welcome())
	require.NoError(t, err)

	require.NoError(t, repo.AppendMessage(&domain.Message{
		SessionID: session.ID,
		Role:      domain.RoleUser,
		Content:   "Rủi ro này là gì?",
	}))
	require.NoError(t, repo.AppendMessage(&domain.Message{
		SessionID: session.ID,
		Role:      domain.RoleAssistant,
		Content:   "Phạt vi phạm 50% là quá cao.",
		Citations: []string{"Điều 5.1"},
	}))

	got, err := repo.GetByContract("c1")
	require.NoError(t, err)
	require.Len(t, got.Messages, 3)

	roles := []string{domain.RoleAssistant, domain.RoleUser, domain.RoleAssistant}
	for i, m := range got.Messages {
		assert.Equal(t, roles[i], m.Role)
	}
	for i := 1; i < len(got.Messages); i++ {
		assert.False(t, got.Messages[i].CreatedAt.Before(got.Messages[i-1].CreatedAt),
			"timestamps must be chronological")
	}
	assert.Equal(t, []string{"Điều 5.1"}, got.Messages[2].Citations)

	// Session updated_at moves with appends
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestSessionRepository_DeleteByContract(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, NewContractRepository(db).Create(testContract("c1")))
	repo := NewSessionRepository(db)

	session, err := repo.GetOrCreateByContract("c1", welcome())
	require.NoError(t, err)
	require.NoError(t, repo.AppendMessage(&domain.Message{SessionID: session.ID, Role: domain.RoleUser, Content: "x"}))

	require.NoError(t, repo.DeleteByContract("c1"))

	gone, err := repo.GetByContract("c1")
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, repo.DeleteByContract("c1"), domain.ErrNotFound)
}

func TestSettingsRepository_Roundtrip(t *testing.T) {
	repo := NewSettingsRepository(newTestDB(t))

	// Defaults before anything is saved
	settings, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, "gemini", settings.Provider)
	assert.Empty(t, settings.APIKey)

	require.NoError(t, repo.Save(&domain.Settings{Provider: "openai", APIKey: "sk-1", Theme: "dark", Language: "vi"}))

	settings, err = repo.Get()
	require.NoError(t, err)
	assert.Equal(t, "openai", settings.Provider)
	assert.Equal(t, "sk-1", settings.APIKey)

	// Save replaces previous values
	require.NoError(t, repo.Save(&domain.Settings{Provider: "gemini", APIKey: "g-2", Theme: "light", Language: "en"}))
	settings, err = repo.Get()
	require.NoError(t, err)
	assert.Equal(t, "g-2", settings.APIKey)
}

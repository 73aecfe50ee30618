package repository

import (
	"database/sql"

	"github.com/liliang-cn/askcontract/internal/domain"
)

// SettingsRepository persists the single settings row (provider, API key,
// theme, language).
type SettingsRepository struct {
	db *DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get retrieves the stored settings, or defaults when none were saved yet.
func (r *SettingsRepository) Get() (*domain.Settings, error) {
	settings := &domain.Settings{}
	err := r.db.QueryRow(`
		SELECT provider, api_key, theme, language FROM settings WHERE id = 1
	`).Scan(&settings.Provider, &settings.APIKey, &settings.Theme, &settings.Language)
	if err == sql.ErrNoRows {
		return &domain.Settings{Provider: "gemini", Theme: "light", Language: "vi"}, nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// Save stores the settings, replacing any previous values.
func (r *SettingsRepository) Save(settings *domain.Settings) error {
	_, err := r.db.Exec(`
		INSERT INTO settings (id, provider, api_key, theme, language)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			provider = excluded.provider,
			api_key = excluded.api_key,
			theme = excluded.theme,
			language = excluded.language
	`, settings.Provider, settings.APIKey, settings.Theme, settings.Language)
	return err
}

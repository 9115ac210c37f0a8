package service

import (
	"context"
	"fmt"

	"persona-tracker/internal/model"
	"persona-tracker/internal/repository"
)

// SettingsService owns user preferences.
type SettingsService struct {
	settings *repository.Collection[model.Settings]
}

// NewSettingsService creates a new SettingsService instance.
func NewSettingsService(settings *repository.Collection[model.Settings]) *SettingsService {
	return &SettingsService{settings: settings}
}

// Get returns the current settings.
func (s *SettingsService) Get(ctx context.Context) (model.Settings, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// SetDarkMode stores the dark mode preference.
func (s *SettingsService) SetDarkMode(ctx context.Context, on bool) (model.Settings, error) {
	return s.settings.Update(ctx, func(st model.Settings) (model.Settings, error) {
		st.DarkMode = on
		return st, nil
	})
}

package application

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eduplat/campus-cli/internal/domain"
	"github.com/eduplat/campus-cli/internal/ports"
)

// ProfileService reads and writes user settings, keeping a durable local
// copy so a failing settings endpoint degrades to the last known values
// instead of an error.
type ProfileService struct {
	gateway ports.ProfileGateway
	cache   ports.SettingsCache
	log     zerolog.Logger
}

func NewProfileService(gateway ports.ProfileGateway, cache ports.SettingsCache, log zerolog.Logger) *ProfileService {
	return &ProfileService{gateway: gateway, cache: cache, log: log}
}

// LoadSettings returns the server-side settings, falling back to the local
// cache when the endpoint fails. The bool reports whether the values came
// from the fallback.
func (s *ProfileService) LoadSettings(ctx context.Context, userID int64) (domain.UserSettings, bool, error) {
	settings, err := s.gateway.GetSettings(ctx, userID)
	if err == nil {
		if cacheErr := s.cache.Save(settings); cacheErr != nil {
			s.log.Warn().Err(cacheErr).Msg("could not refresh local settings cache")
		}
		return settings, false, nil
	}

	s.log.Warn().Err(err).Msg("settings endpoint failed, trying local cache")
	cached, cacheErr := s.cache.Load()
	if cacheErr != nil {
		return domain.UserSettings{}, false, fmt.Errorf("load settings: %w", err)
	}
	return cached, true, nil
}

// UpdateSettings writes through to the server and refreshes the local copy.
func (s *ProfileService) UpdateSettings(ctx context.Context, userID int64, settings domain.UserSettings) error {
	if err := s.gateway.UpdateSettings(ctx, userID, settings); err != nil {
		return err
	}
	if err := s.cache.Save(settings); err != nil {
		s.log.Warn().Err(err).Msg("could not refresh local settings cache")
	}
	return nil
}

package services

import (
	"context"

	"github.com/vytor/chessstats/internal/chesscom"
	"github.com/vytor/chessstats/internal/logger"
	"github.com/vytor/chessstats/internal/pacing"
)

// CountryService looks up the country of a player profile
type CountryService interface {
	Resolve(ctx context.Context, profileURL string) (string, error)
}

type countryService struct {
	client chesscom.ClientInterface
	pacer  pacing.Pacer
}

// NewCountryService creates a new CountryService. pacer runs after every lookup.
func NewCountryService(client chesscom.ClientInterface, pacer pacing.Pacer) CountryService {
	if pacer == nil {
		pacer = pacing.None{}
	}
	return &countryService{client: client, pacer: pacer}
}

// Resolve always returns a usable code: chesscom.UnknownCountry stands in when
// the profile cannot be fetched or has no country, and the fetch error, if
// any, is returned alongside it. Only a cancelled context is worth stopping for.
func (s *countryService) Resolve(ctx context.Context, profileURL string) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("country")

	if profileURL == "" {
		return chesscom.UnknownCountry, nil
	}

	code := chesscom.UnknownCountry
	profile, fetchErr := s.client.FetchProfile(ctx, profileURL)
	if fetchErr == nil {
		code = chesscom.CountryCode(profile.Country)
	} else {
		log.Debug("country lookup failed for %s: %v", profileURL, fetchErr)
	}

	if err := s.pacer.Pause(ctx); err != nil {
		return code, err
	}
	return code, fetchErr
}

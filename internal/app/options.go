package service

import (
	"github.com/okian/cambios/internal/adapters/repository"
	"github.com/okian/cambios/internal/domain/impact"
	"github.com/okian/cambios/internal/domain/scanner"
	"github.com/okian/cambios/internal/domain/teams"
	"github.com/okian/cambios/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore replaces the in-memory session store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCatalog replaces the built-in team catalog.
func WithCatalog(catalog []teams.Team) Option {
	return func(s *Service) {
		if len(catalog) > 0 {
			s.catalog = catalog
		}
	}
}

// WithExtraTeams merges teams into the catalog (see teams.WithTeams).
func WithExtraTeams(extra []teams.Team) Option {
	return func(s *Service) {
		s.extraTeams = append(s.extraTeams, extra...)
	}
}

// WithFocusTeam sets the side suggested as focus on every new analysis.
func WithFocusTeam(team string) Option {
	return func(s *Service) {
		if team != "" {
			s.focusLabel = team
		}
	}
}

// WithWindowMinutes sets the default windowed-delta length; invalid values are ignored.
func WithWindowMinutes(minutes int) Option {
	return func(s *Service) {
		if impact.ValidWindow(minutes) {
			s.window = minutes
		}
	}
}

// WithSubstitutionOrder fixes the substitution pair order. Without it every analysis is
// flagged as using an assumed order.
func WithSubstitutionOrder(o scanner.SubstitutionOrder) Option {
	return func(s *Service) {
		s.scannerOpts = append(s.scannerOpts, scanner.WithSubstitutionOrder(o))
	}
}

// WithRivalSubstitutions also evaluates the opponent's substitutions by default.
func WithRivalSubstitutions(enabled bool) Option {
	return func(s *Service) {
		s.rival = enabled
	}
}

// WithDefaultPage overrides the page scanned when a request names none.
func WithDefaultPage(page int) Option {
	return func(s *Service) {
		if page > 0 {
			s.defaultPage = page
		}
	}
}

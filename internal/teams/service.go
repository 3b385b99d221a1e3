package teams

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"stampcard/internal/shared/constants"
	"stampcard/pkg/cache"
	"stampcard/pkg/logger"
)

var (
	ErrEmptyTeamList = errors.New("team list must contain at least one team")
	ErrUnknownTeam   = errors.New("team is not in the team list")
)

type Service interface {
	List(ctx context.Context) ([]string, error)
	Contains(ctx context.Context, team string) (bool, error)
	// Replace parses newline-separated text and stores it as the new list
	Replace(ctx context.Context, text string) ([]string, error)
	// SeedDefaults stores defaults when no teams exist yet
	SeedDefaults(ctx context.Context, defaults []string) error
}

type service struct {
	repo  Repository
	cache cache.Service
	log   *logger.Logger
}

// NewService builds the team service. cacheSvc may be nil.
func NewService(repo Repository, cacheSvc cache.Service, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{repo: repo, cache: cacheSvc, log: log}
}

// ParseTeamList splits text into lines, trims them, drops empty lines and
// exact duplicates, and keeps first-seen order.
func ParseTeamList(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		name := strings.TrimSpace(line)
		if name == "" || slices.Contains(out, name) {
			continue
		}
		out = append(out, name)
	}
	return out
}

func (s *service) List(ctx context.Context) ([]string, error) {
	if s.cache == nil {
		return s.load(ctx)
	}

	var names []string
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_TEAMS_ALL, constants.TTL_TEAMS, func() (interface{}, error) {
		return s.load(ctx)
	}, &names)
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *service) load(ctx context.Context) ([]string, error) {
	teams, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	names := make([]string, 0, len(teams))
	for _, t := range teams {
		names = append(names, t.Name)
	}
	return names, nil
}

func (s *service) Contains(ctx context.Context, team string) (bool, error) {
	names, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(names, team), nil
}

func (s *service) Replace(ctx context.Context, text string) ([]string, error) {
	names := ParseTeamList(text)
	if len(names) == 0 {
		return nil, ErrEmptyTeamList
	}

	if err := s.repo.Replace(ctx, names); err != nil {
		return nil, fmt.Errorf("failed to save teams: %w", err)
	}
	s.invalidate(ctx)

	return names, nil
}

func (s *service) SeedDefaults(ctx context.Context, defaults []string) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count teams: %w", err)
	}
	if count > 0 {
		return nil
	}

	names := ParseTeamList(strings.Join(defaults, "\n"))
	if len(names) == 0 {
		return ErrEmptyTeamList
	}
	if err := s.repo.Replace(ctx, names); err != nil {
		return fmt.Errorf("failed to seed teams: %w", err)
	}
	s.invalidate(ctx)
	s.log.Info("Seeded default teams", "count", len(names))
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_TEAMS_ALL); err != nil {
		s.log.Warn("failed to invalidate team cache", "error", err.Error())
	}
}

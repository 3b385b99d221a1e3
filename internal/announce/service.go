package announce

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stampcard/pkg/logger"
)

// Generator produces announcement text for an ordered list of winners.
type Generator interface {
	Generate(ctx context.Context, winners []string) (string, error)
}

// Announcement is the text shown with a draw result.
type Announcement struct {
	Text      string `json:"text"`
	Generated bool   `json:"generated"`
}

// DefaultTimeout bounds a generation call when no positive timeout is given.
const DefaultTimeout = 15 * time.Second

// Service wraps a Generator and never fails: any generator error, timeout or
// missing generator yields FallbackText.
type Service struct {
	generator Generator
	timeout   time.Duration
	log       *logger.Logger
}

func NewService(generator Generator, timeout time.Duration, log *logger.Logger) *Service {
	if log == nil {
		log = logger.GetDefault()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		generator: generator,
		timeout:   timeout,
		log:       log,
	}
}

// FallbackText is the deterministic announcement used when generation fails.
func FallbackText(winners []string) string {
	return fmt.Sprintf("Congratulations to our winners: %s!", strings.Join(winners, ", "))
}

// Announce returns generated text or the fallback.
func (s *Service) Announce(ctx context.Context, winners []string) Announcement {
	if s.generator == nil {
		s.log.LogAnnouncementFallback(ctx, ErrMissingCredential)
		return Announcement{Text: FallbackText(winners)}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.Generate(ctx, winners)
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		s.log.LogAnnouncementFallback(ctx, err)
		return Announcement{Text: FallbackText(winners)}
	}

	return Announcement{Text: strings.TrimSpace(text), Generated: true}
}

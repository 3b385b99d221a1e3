package draws

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"stampcard/internal/announce"
	"stampcard/internal/notifications"
	"stampcard/internal/roster"
	"stampcard/internal/shared/constants"
	"stampcard/pkg/cache"
	"stampcard/pkg/logger"
)

var (
	ErrDrawInProgress  = errors.New("a draw is already running for this session")
	ErrSessionBusy     = errors.New("session is being updated, try again")
	ErrNothingToExport = errors.New("no eligible participant data to download")
	ErrNoRosterSource  = errors.New("card import is not available")
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// RosterSource supplies roster text built from registered cards
type RosterSource interface {
	EligibleRoster(ctx context.Context) (string, error)
}

// Announcer turns winners into announcement text. It never fails.
type Announcer interface {
	Announce(ctx context.Context, winners []string) announce.Announcement
}

type Options struct {
	MinStamps          int
	DefaultWinnerCount int
}

type Service interface {
	CreateSession(ctx context.Context) (*SessionResponse, error)
	GetSession(ctx context.Context, id string) (*SessionResponse, error)
	ReplaceRoster(ctx context.Context, id, text string) (*SessionResponse, error)
	ImportCards(ctx context.Context, id string) (*ImportResponse, error)
	Scan(ctx context.Context, id, token string) (*ScanResponse, error)
	ClearRoster(ctx context.Context, id string) (*SessionResponse, error)
	Draw(ctx context.Context, id string, winners *int) (*DrawResponse, error)
	ExportCSV(ctx context.Context, id string) (string, error)
	Reset(ctx context.Context, id string) (*SessionResponse, error)
	DeleteSession(ctx context.Context, id string) error
	History(ctx context.Context, limit int) (*DrawHistoryResponse, error)
}

type service struct {
	store     SessionStore
	repo      Repository
	drawer    *roster.Drawer
	announcer Announcer
	publisher notifications.Publisher
	source    RosterSource
	cache     cache.Service
	opts      Options
	log       *logger.Logger
	now       func() time.Time
}

// NewService builds the draw service. source and cacheSvc may be nil.
func NewService(
	store SessionStore,
	repo Repository,
	drawer *roster.Drawer,
	announcer Announcer,
	publisher notifications.Publisher,
	source RosterSource,
	cacheSvc cache.Service,
	opts Options,
	log *logger.Logger,
) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	if publisher == nil {
		publisher = notifications.NewLogPublisher(log)
	}
	return &service{
		store:     store,
		repo:      repo,
		drawer:    drawer,
		announcer: announcer,
		publisher: publisher,
		source:    source,
		cache:     cacheSvc,
		opts:      opts,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) CreateSession(ctx context.Context) (*SessionResponse, error) {
	session := NewSession(s.now())
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "Draw session created", "session_id", session.ID)
	return s.toResponse(session), nil
}

func (s *service) GetSession(ctx context.Context, id string) (*SessionResponse, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(session), nil
}

func (s *service) ReplaceRoster(ctx context.Context, id, text string) (*SessionResponse, error) {
	session, err := s.mutate(ctx, id, func(cur Session) (Session, error) {
		return cur.WithRoster(text, s.now()), nil
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(session), nil
}

func (s *service) ImportCards(ctx context.Context, id string) (*ImportResponse, error) {
	if s.source == nil {
		return nil, ErrNoRosterSource
	}

	text, err := s.source.EligibleRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load card roster: %w", err)
	}

	var added, duplicates int
	session, err := s.mutate(ctx, id, func(cur Session) (Session, error) {
		now := s.now()
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			next, status, err := cur.merge(line, now)
			if err != nil {
				continue
			}
			if status == ScanStatusDuplicate {
				duplicates++
				continue
			}
			added++
			cur = next
		}
		return cur, nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResponse{
		Added:      added,
		Duplicates: duplicates,
		Session:    *s.toResponse(session),
	}, nil
}

func (s *service) Scan(ctx context.Context, id, token string) (*ScanResponse, error) {
	var (
		status string
		rec    roster.Record
	)
	session, err := s.mutate(ctx, id, func(cur Session) (Session, error) {
		var (
			next Session
			err  error
		)
		next, status, rec, err = cur.Scan(token, s.opts.MinStamps, s.now())
		return next, err
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Added %s!", rec.Name)
	if status == ScanStatusDuplicate {
		message = fmt.Sprintf("%s is already in the roster", rec.Name)
	}
	return &ScanResponse{
		Status:  status,
		Message: message,
		Record:  rec,
		Session: *s.toResponse(session),
	}, nil
}

func (s *service) ClearRoster(ctx context.Context, id string) (*SessionResponse, error) {
	session, err := s.mutate(ctx, id, func(cur Session) (Session, error) {
		return cur.WithRoster("", s.now()), nil
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(session), nil
}

func (s *service) Reset(ctx context.Context, id string) (*SessionResponse, error) {
	session, err := s.mutate(ctx, id, func(cur Session) (Session, error) {
		return cur.Cleared(s.now()), nil
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(session), nil
}

func (s *service) DeleteSession(ctx context.Context, id string) error {
	release, err := s.lock(ctx, id, ErrSessionBusy)
	if err != nil {
		return err
	}
	defer release()

	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func (s *service) Draw(ctx context.Context, id string, winners *int) (*DrawResponse, error) {
	release, err := s.lock(ctx, id, ErrDrawInProgress)
	if err != nil {
		return nil, err
	}
	defer release()

	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	k := s.opts.DefaultWinnerCount
	if winners != nil {
		k = *winners
	}

	split := session.Split(s.opts.MinStamps)
	picked, err := s.drawer.Draw(split.Eligible, k)
	if err != nil {
		return nil, err
	}

	ann := s.announcer.Announce(ctx, picked)
	drawnAt := s.now()
	session = session.WithResult(picked, ann, drawnAt)
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	poolSize := roster.PoolSize(split.Eligible)
	result := &DrawResult{
		ID:             uuid.New(),
		SessionID:      session.ID,
		Winners:        picked,
		Announcement:   ann.Text,
		Generated:      ann.Generated,
		PoolSize:       poolSize,
		RequestedCount: k,
		DrawnAt:        drawnAt,
	}
	s.recordHistory(ctx, result)

	event := notifications.NewWinnersAnnounced(session.ID, result.ID, picked, ann.Text, ann.Generated, poolSize)
	if err := s.publisher.PublishDrawEvent(ctx, event); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to publish draw event", err, map[string]interface{}{
			"session_id": session.ID,
		})
	}

	s.log.LogDrawCompleted(ctx, session.ID, poolSize, picked, ann.Generated)

	return &DrawResponse{
		DrawID:       result.ID,
		SessionID:    session.ID,
		Winners:      picked,
		Announcement: ann,
		PoolSize:     poolSize,
		Excluded:     split.Ineligible,
		DrawnAt:      drawnAt,
	}, nil
}

func (s *service) ExportCSV(ctx context.Context, id string) (string, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}

	eligible := session.Split(s.opts.MinStamps).Eligible
	if len(eligible) == 0 {
		return "", ErrNothingToExport
	}
	return roster.ExportCSV(eligible), nil
}

func (s *service) History(ctx context.Context, limit int) (*DrawHistoryResponse, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	fetch := func() (interface{}, error) {
		return s.repo.List(ctx, limit)
	}

	var results []DrawResult
	if s.cache != nil {
		if err := s.cache.GetOrSet(ctx, constants.BuildDrawHistoryKey(limit), constants.TTL_HISTORY, fetch, &results); err != nil {
			return nil, fmt.Errorf("failed to load draw history: %w", err)
		}
	} else {
		list, err := s.repo.List(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to load draw history: %w", err)
		}
		results = list
	}

	if results == nil {
		results = []DrawResult{}
	}
	return &DrawHistoryResponse{Draws: results, Total: len(results)}, nil
}

// recordHistory persists the draw. The draw has already happened, so
// failures are logged and not returned.
func (s *service) recordHistory(ctx context.Context, result *DrawResult) {
	if err := s.repo.Create(ctx, result); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to persist draw result", err, map[string]interface{}{
			"session_id": result.SessionID,
		})
		return
	}
	if s.cache != nil {
		if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_DRAW_HISTORY); err != nil {
			s.log.Warn("Failed to invalidate draw history cache", "error", err)
		}
	}
}

// mutate applies fn to the stored session under the session lock and saves
// the result. The stored session is untouched when fn fails.
func (s *service) mutate(ctx context.Context, id string, fn func(Session) (Session, error)) (Session, error) {
	release, err := s.lock(ctx, id, ErrSessionBusy)
	if err != nil {
		return Session{}, err
	}
	defer release()

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}

	next, err := fn(current)
	if err != nil {
		return Session{}, err
	}

	if err := s.store.Save(ctx, next); err != nil {
		return Session{}, err
	}
	return next, nil
}

func (s *service) lock(ctx context.Context, id string, busy error) (func(), error) {
	release, err := s.store.Lock(ctx, id)
	if errors.Is(err, errLocked) {
		return nil, busy
	}
	return release, err
}

func (s *service) toResponse(session Session) *SessionResponse {
	split := session.Split(s.opts.MinStamps)
	return &SessionResponse{
		ID:              session.ID,
		RosterText:      session.RosterText,
		Eligible:        split.Eligible,
		Ineligible:      split.Ineligible,
		EligibleCount:   len(split.Eligible),
		IneligibleCount: len(split.Ineligible),
		PoolSize:        roster.PoolSize(split.Eligible),
		MinStamps:       s.opts.MinStamps,
		Winners:         session.Winners,
		Announcement:    session.Announcement,
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}
}

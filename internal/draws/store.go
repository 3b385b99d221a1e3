package draws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stampcard/internal/shared/constants"
	"stampcard/pkg/cache"
	"stampcard/pkg/logger"
)

var (
	ErrSessionNotFound = errors.New("draw session not found")
	errLocked          = errors.New("session locked")
)

// SessionStore keeps draw sessions in the key/value store
type SessionStore interface {
	Get(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, session Session) error
	Delete(ctx context.Context, id string) error
	// Lock takes the per-session lock. The returned func releases it.
	Lock(ctx context.Context, id string) (func(), error)
}

type sessionStore struct {
	cache   cache.Service
	ttl     time.Duration
	lockTTL time.Duration
	log     *logger.Logger
}

func NewSessionStore(cacheSvc cache.Service, ttl, lockTTL time.Duration, log *logger.Logger) SessionStore {
	if ttl <= 0 {
		ttl = constants.TTL_SESSION
	}
	if lockTTL <= 0 {
		lockTTL = constants.TTL_LOCK_DEFAULT
	}
	if log == nil {
		log = logger.GetDefault()
	}
	return &sessionStore{
		cache:   cacheSvc,
		ttl:     ttl,
		lockTTL: lockTTL,
		log:     log,
	}
}

func (st *sessionStore) Get(ctx context.Context, id string) (Session, error) {
	var session Session
	err := st.cache.Get(ctx, constants.BuildDrawSessionKey(id), &session)
	if errors.Is(err, cache.ErrCacheMiss) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}

func (st *sessionStore) Save(ctx context.Context, session Session) error {
	if err := st.cache.Set(ctx, constants.BuildDrawSessionKey(session.ID), session, st.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (st *sessionStore) Delete(ctx context.Context, id string) error {
	return st.cache.Delete(ctx, constants.BuildDrawSessionKey(id))
}

func (st *sessionStore) Lock(ctx context.Context, id string) (func(), error) {
	key := constants.BuildDrawLockKey(id)
	token := uuid.NewString()

	ok, err := st.cache.SetNX(ctx, key, token, st.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire session lock: %w", err)
	}
	if !ok {
		return nil, errLocked
	}

	release := func() {
		if err := st.cache.ReleaseIfOwner(context.WithoutCancel(ctx), key, token); err != nil {
			st.log.Warn("Failed to release session lock", "session_id", id, "error", err)
		}
	}
	return release, nil
}

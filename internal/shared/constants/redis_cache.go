package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// Pattern: stampcard:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_SEMI_STATIC   = 1 * time.Hour    // team list
	TTL_DYNAMIC_SHORT = 5 * time.Minute  // card views
	TTL_LOCK_DEFAULT  = 2 * time.Minute  // draw lock when no TTL is configured
	TTL_SESSION       = 24 * time.Hour   // draw session when no TTL is configured
	TTL_HISTORY       = 10 * time.Minute // draw history listing
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "stampcard"
)

// ================== TEAMS MODULE ==================

const (
	CACHE_KEY_TEAMS_ALL = CACHE_PREFIX + ":teams:all"
)

const (
	TTL_TEAMS = TTL_SEMI_STATIC
)

// ================== ATTENDEES MODULE ==================

const (
	CACHE_KEY_CARD_DETAIL = CACHE_PREFIX + ":cards:detail:uuid:" // + card-id
)

const (
	TTL_CARD_DETAIL = TTL_DYNAMIC_SHORT
)

// ================== DRAWS MODULE ==================

const (
	CACHE_KEY_DRAW_SESSION = CACHE_PREFIX + ":draws:session:uuid:" // + session-id
	CACHE_KEY_DRAW_LOCK    = CACHE_PREFIX + ":draws:lock:uuid:"    // + session-id
	CACHE_KEY_DRAW_HISTORY = CACHE_PREFIX + ":draws:history:limit:" // + limit
)

// ================== RATE LIMIT ==================

const (
	CACHE_KEY_RATE_LIMIT = CACHE_PREFIX + ":ratelimit:" // + ip:type
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_TEAMS_ALL    = CACHE_PREFIX + ":teams:*"
	PATTERN_INVALIDATE_DRAW_HISTORY = CACHE_PREFIX + ":draws:history:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildCardDetailKey(cardID string) string {
	return CACHE_KEY_CARD_DETAIL + cardID
}

func BuildDrawSessionKey(sessionID string) string {
	return CACHE_KEY_DRAW_SESSION + sessionID
}

func BuildDrawLockKey(sessionID string) string {
	return CACHE_KEY_DRAW_LOCK + sessionID
}

func BuildDrawHistoryKey(limit int) string {
	return fmt.Sprintf("%s%d", CACHE_KEY_DRAW_HISTORY, limit)
}

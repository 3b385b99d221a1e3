package draws

import (
	"time"

	"github.com/google/uuid"

	"stampcard/internal/announce"
	"stampcard/internal/roster"
)

type SessionResponse struct {
	ID              string                 `json:"id"`
	RosterText      string                 `json:"roster_text"`
	Eligible        []roster.Record        `json:"eligible"`
	Ineligible      []roster.Record        `json:"ineligible"`
	EligibleCount   int                    `json:"eligible_count"`
	IneligibleCount int                    `json:"ineligible_count"`
	PoolSize        int                    `json:"pool_size"`
	MinStamps       int                    `json:"min_stamps"`
	Winners         []string               `json:"winners,omitempty"`
	Announcement    *announce.Announcement `json:"announcement,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

type ScanResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Record  roster.Record   `json:"record"`
	Session SessionResponse `json:"session"`
}

type ImportResponse struct {
	Added      int             `json:"added"`
	Duplicates int             `json:"duplicates"`
	Session    SessionResponse `json:"session"`
}

type DrawResponse struct {
	DrawID       uuid.UUID             `json:"draw_id"`
	SessionID    string                `json:"session_id"`
	Winners      []string              `json:"winners"`
	Announcement announce.Announcement `json:"announcement"`
	PoolSize     int                   `json:"pool_size"`
	// Excluded lists roster entries below the stamp threshold
	Excluded []roster.Record `json:"excluded"`
	DrawnAt  time.Time       `json:"drawn_at"`
}

type DrawHistoryResponse struct {
	Draws []DrawResult `json:"draws"`
	Total int          `json:"total"`
}

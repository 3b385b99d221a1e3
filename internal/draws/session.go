package draws

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"stampcard/internal/announce"
	"stampcard/internal/roster"
)

const (
	ScanStatusAdded     = "added"
	ScanStatusDuplicate = "duplicate"
)

var ErrIneligibleEntry = errors.New("not eligible")

// Session is the admin's working state for one lucky draw. Methods never
// modify the receiver; they return the next state.
type Session struct {
	ID           string                 `json:"id"`
	RosterText   string                 `json:"roster_text"`
	Winners      []string               `json:"winners,omitempty"`
	Announcement *announce.Announcement `json:"announcement,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

func NewSession(now time.Time) Session {
	return Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Split parses the roster and partitions it at threshold
func (s Session) Split(threshold int) roster.Split {
	return roster.SplitByThreshold(roster.Parse(s.RosterText), threshold)
}

// WithRoster replaces the roster text wholesale. A previous result is kept
// until the next draw or reset.
func (s Session) WithRoster(text string, now time.Time) Session {
	s.RosterText = strings.TrimSpace(text)
	s.UpdatedAt = now
	return s
}

// Cleared empties the roster and drops any result
func (s Session) Cleared(now time.Time) Session {
	s.RosterText = ""
	s.Winners = nil
	s.Announcement = nil
	s.UpdatedAt = now
	return s
}

// Scan validates one scanned attendee token and merges it into the roster.
// Tokens below threshold are rejected. A name already on the roster leaves
// the session unchanged and reports ScanStatusDuplicate.
func (s Session) Scan(raw string, threshold int, now time.Time) (Session, string, roster.Record, error) {
	rec, ok := roster.DecodeRecord(strings.TrimSpace(raw))
	if !ok {
		return s, "", roster.Record{}, roster.ErrInvalidRecord
	}
	if !rec.Eligible(threshold) {
		return s, "", rec, fmt.Errorf("%s has only %d stamps: %w", rec.Name, rec.Stamps, ErrIneligibleEntry)
	}

	next, status, err := s.merge(raw, now)
	return next, status, rec, err
}

func (s Session) merge(raw string, now time.Time) (Session, string, error) {
	text, err := roster.Merge(s.RosterText, raw)
	if errors.Is(err, roster.ErrDuplicateName) {
		return s, ScanStatusDuplicate, nil
	}
	if err != nil {
		return s, "", err
	}
	s.RosterText = text
	s.UpdatedAt = now
	return s, ScanStatusAdded, nil
}

// WithResult records a finished draw
func (s Session) WithResult(winners []string, ann announce.Announcement, now time.Time) Session {
	s.Winners = append([]string(nil), winners...)
	s.Announcement = &ann
	s.UpdatedAt = now
	return s
}

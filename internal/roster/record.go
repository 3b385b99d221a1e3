package roster

import (
	"bytes"
	"errors"
	"math"

	json "github.com/goccy/go-json"
)

var (
	ErrInvalidRecord = errors.New("not a valid participant record")
	ErrDuplicateName = errors.New("participant already in roster")
)

// Record is one attendee entry as carried by the submission token.
type Record struct {
	Name   string `json:"name"`
	Team   string `json:"team"`
	Stamps int    `json:"stamps"`
}

// DecodeRecord performs the schema-checked decode of one token. The bool is
// false when the text is not an object carrying a string name, a string team
// and a whole, non-negative stamp count. Keys match exactly: "Name" or
// "STAMPS" do not count.
func DecodeRecord(raw string) (Record, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil || fields == nil {
		return Record{}, false
	}

	name, ok := stringField(fields["name"])
	if !ok {
		return Record{}, false
	}
	team, ok := stringField(fields["team"])
	if !ok {
		return Record{}, false
	}
	stamps, ok := stampsField(fields["stamps"])
	if !ok {
		return Record{}, false
	}

	return Record{Name: name, Team: team, Stamps: stamps}, true
}

// stringField decodes a JSON string value. Missing keys, null and other
// types are rejected.
func stringField(raw json.RawMessage) (string, bool) {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 || v[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}

// stampsField decodes a JSON number holding a whole, non-negative count.
func stampsField(raw json.RawMessage) (int, bool) {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 || (v[0] != '-' && (v[0] < '0' || v[0] > '9')) {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(v, &n); err != nil {
		return 0, false
	}
	if n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

// Token encodes the record in the attendee token format.
func (r Record) Token() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Eligible reports whether the record reaches the threshold.
func (r Record) Eligible(threshold int) bool {
	return r.Stamps >= threshold
}

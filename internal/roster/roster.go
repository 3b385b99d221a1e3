package roster

import "strings"

// Split is the eligibility partition of a parsed roster.
type Split struct {
	Eligible   []Record `json:"eligible"`
	Ineligible []Record `json:"ineligible"`
}

// Parse turns roster text into records. Lines that fail to decode are
// dropped without error.
func Parse(text string) []Record {
	records := make([]Record, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if rec, ok := DecodeRecord(line); ok {
			records = append(records, rec)
		}
	}
	return records
}

// SplitByThreshold partitions records into eligible and ineligible sets,
// keeping input order in both.
func SplitByThreshold(records []Record, threshold int) Split {
	split := Split{
		Eligible:   make([]Record, 0, len(records)),
		Ineligible: make([]Record, 0),
	}
	for _, rec := range records {
		if rec.Eligible(threshold) {
			split.Eligible = append(split.Eligible, rec)
		} else {
			split.Ineligible = append(split.Ineligible, rec)
		}
	}
	return split
}

// Contains reports whether any parsed record in text has exactly name.
func Contains(text, name string) bool {
	for _, rec := range Parse(text) {
		if rec.Name == name {
			return true
		}
	}
	return false
}

// Merge appends raw to existing unless it is not a valid record or a record
// with the same name is already present. On error existing is returned
// unchanged. Names compare case-sensitively with no normalization.
func Merge(existing, raw string) (string, error) {
	rec, ok := DecodeRecord(strings.TrimSpace(raw))
	if !ok {
		return existing, ErrInvalidRecord
	}
	if Contains(existing, rec.Name) {
		return existing, ErrDuplicateName
	}
	return strings.TrimSpace(strings.TrimSpace(existing) + "\n" + strings.TrimSpace(raw)), nil
}

// Names returns the record names in order.
func Names(records []Record) []string {
	names := make([]string, len(records))
	for i, rec := range records {
		names[i] = rec.Name
	}
	return names
}

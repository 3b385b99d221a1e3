package roster

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
)

var (
	ErrEmptyPool        = errors.New("please add at least one eligible participant")
	ErrInvalidCount     = errors.New("number of winners must be at least 1")
	ErrInsufficientPool = errors.New("number of winners cannot be more than the number of unique eligible participants")
)

// Drawer picks winners from an eligible pool. It is safe for concurrent use.
type Drawer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewDrawer returns a Drawer backed by a ChaCha8 generator seeded from
// crypto/rand.
func NewDrawer() (*Drawer, error) {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	return NewDrawerWithSource(rand.NewChaCha8(seed)), nil
}

// NewDrawerWithSource returns a Drawer over src. Tests use it with a fixed
// seed.
func NewDrawerWithSource(src rand.Source) *Drawer {
	return &Drawer{rng: rand.New(src)}
}

// Draw returns k distinct names chosen uniformly without replacement.
// Records sharing a name form a single entrant. The returned order is
// presentation order only.
func (d *Drawer) Draw(eligible []Record, k int) ([]string, error) {
	pool := uniqueNames(eligible)
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	if k <= 0 {
		return nil, ErrInvalidCount
	}
	if k > len(pool) {
		return nil, ErrInsufficientPool
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// Partial Fisher-Yates: after step i, pool[:i+1] is a uniform sample.
	for i := 0; i < k; i++ {
		j := i + d.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	winners := make([]string, k)
	copy(winners, pool[:k])
	return winners, nil
}

// PoolSize is the number of distinct entrants Draw would consider.
func PoolSize(eligible []Record) int {
	return len(uniqueNames(eligible))
}

func uniqueNames(records []Record) []string {
	seen := make(map[string]struct{}, len(records))
	names := make([]string, 0, len(records))
	for _, rec := range records {
		if _, ok := seen[rec.Name]; ok {
			continue
		}
		seen[rec.Name] = struct{}{}
		names = append(names, rec.Name)
	}
	return names
}

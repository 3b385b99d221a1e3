package roster

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDrawer() *Drawer {
	return NewDrawerWithSource(rand.NewPCG(7, 11))
}

func TestDrawExample(t *testing.T) {
	eligible := SplitByThreshold(Parse(sampleRoster), 6).Eligible
	d := newTestDrawer()

	winners, err := d.Draw(eligible, 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "C"}, winners)

	_, err = d.Draw(eligible, 3)
	assert.ErrorIs(t, err, ErrInsufficientPool)
}

func TestDrawErrors(t *testing.T) {
	eligible := []Record{{Name: "A", Stamps: 6}, {Name: "B", Stamps: 8}}

	tests := []struct {
		name     string
		eligible []Record
		k        int
		wantErr  error
	}{
		{name: "empty pool wins over bad count", eligible: nil, k: 0, wantErr: ErrEmptyPool},
		{name: "empty pool", eligible: []Record{}, k: 1, wantErr: ErrEmptyPool},
		{name: "zero", eligible: eligible, k: 0, wantErr: ErrInvalidCount},
		{name: "negative", eligible: eligible, k: -3, wantErr: ErrInvalidCount},
		{name: "too many", eligible: eligible, k: 3, wantErr: ErrInsufficientPool},
		{name: "repeated name is one entrant", eligible: []Record{{Name: "A", Stamps: 6}, {Name: "A", Stamps: 9}}, k: 2, wantErr: ErrInsufficientPool},
	}

	d := newTestDrawer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winners, err := d.Draw(tt.eligible, tt.k)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, winners)
		})
	}
}

func TestDrawDoesNotMutateInput(t *testing.T) {
	eligible := []Record{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}}
	before := append([]Record(nil), eligible...)

	_, err := newTestDrawer().Draw(eligible, 3)
	require.NoError(t, err)
	assert.Equal(t, before, eligible)
}

func TestDrawReturnsUniqueNames(t *testing.T) {
	eligible := []Record{{Name: "A"}, {Name: "B"}, {Name: "A"}, {Name: "C"}, {Name: "D"}, {Name: "E"}}
	assert.Equal(t, 5, PoolSize(eligible))

	d := newTestDrawer()
	for k := 1; k <= 5; k++ {
		for i := 0; i < 50; i++ {
			winners, err := d.Draw(eligible, k)
			require.NoError(t, err)
			assert.Len(t, winners, k)

			seen := map[string]bool{}
			for _, w := range winners {
				assert.False(t, seen[w], "duplicate winner %q", w)
				seen[w] = true
			}
		}
	}

	_, err := d.Draw(eligible, 6)
	assert.ErrorIs(t, err, ErrInsufficientPool)
}

func TestDrawIsUniform(t *testing.T) {
	eligible := []Record{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}}
	d := newTestDrawer()

	const rounds = 40000
	counts := map[string]int{}
	for i := 0; i < rounds; i++ {
		winners, err := d.Draw(eligible, 2)
		require.NoError(t, err)
		for _, w := range winners {
			counts[w]++
		}
	}

	// Each name is expected rounds*2/4 times.
	want := rounds / 2
	for _, rec := range eligible {
		assert.InDelta(t, want, counts[rec.Name], float64(want)*0.05, "name %s", rec.Name)
	}
}

func TestNewDrawer(t *testing.T) {
	d, err := NewDrawer()
	require.NoError(t, err)

	winners, err := d.Draw([]Record{{Name: "solo"}}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"solo"}, winners)
}

func TestInsufficientPoolMessageNamesUniqueEntrants(t *testing.T) {
	_, err := newTestDrawer().Draw([]Record{{Name: "A"}, {Name: "A"}}, 2)
	require.ErrorIs(t, err, ErrInsufficientPool)
	assert.Contains(t, err.Error(), "unique eligible participants")
}

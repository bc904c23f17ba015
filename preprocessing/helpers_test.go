package preprocessing

import (
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dishcision/prepkit/pkg/errors"
)

var nan = math.NaN()

// warningRecorder collects warnings emitted through errors.Warn during a test.
type warningRecorder struct {
	mu       sync.Mutex
	warnings []*errors.DegenerateWarning
}

func recordWarnings(t *testing.T) *warningRecorder {
	t.Helper()
	rec := &warningRecorder{}
	errors.SetWarningHandler(func(w error) {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		if dw, ok := w.(*errors.DegenerateWarning); ok {
			rec.warnings = append(rec.warnings, dw)
		}
	})
	t.Cleanup(func() { errors.SetWarningHandler(func(error) {}) })
	return rec
}

func (r *warningRecorder) columns() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.warnings))
	for i, w := range r.warnings {
		out[i] = w.Column
	}
	return out
}

func requireInvalidInput(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput), "expected invalid input, got %v", err)
}

func assertTableInDelta(t *testing.T, want, got Table, delta float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Len(t, got[i], len(want[i]), "row %d", i)
		for j := range want[i] {
			assert.InDelta(t, want[i][j], got[i][j], delta, "cell (%d, %d)", i, j)
		}
	}
}

func randomTable(rng *rand.Rand, rows, cols int) Table {
	t := newTable(rows, cols)
	for i := range t {
		for j := range t[i] {
			t[i][j] = rng.NormFloat64()*float64(j+1)*10 + float64(j)
		}
	}
	return t
}

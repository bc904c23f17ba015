package preprocessing

import (
	"math"
	"math/rand/v2"

	"github.com/dishcision/prepkit/pkg/errors"
)

// Shuffler is the random source used to permute samples before a split.
// *rand.Rand from math/rand/v2 satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewSeededShuffler returns a PCG-backed generator, so equal seeds give equal splits.
func NewSeededShuffler(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// DefaultTestSize is the test fraction used when none is configured.
const DefaultTestSize = 0.2

// Partition is a train/test split. Train and Test do not share backing memory.
type Partition[T any] struct {
	Train []T
	Test  []T
}

// TrainTestSplit shuffles a copy of samples with rng and cuts it at
// floor(n * (1 − testSize)): the head is Train, the tail is Test.
// testSize must lie strictly between 0 and 1.
func TrainTestSplit[T any](samples []T, testSize float64, rng Shuffler) (Partition[T], error) {
	if !(testSize > 0 && testSize < 1) {
		return Partition[T]{}, errors.NewValidationError("test_size", "must be in the open interval (0, 1)", testSize)
	}
	if rng == nil {
		return Partition[T]{}, errors.NewValidationError("rng", "a random source is required", nil)
	}

	n := len(samples)
	shuffled := make([]T, n)
	copy(shuffled, samples)
	rng.Shuffle(n, func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	split := splitIndex(n, testSize)
	return Partition[T]{
		Train: shuffled[:split:split],
		Test:  shuffled[split:],
	}, nil
}

// TrainTestSplitIndices splits the indices 0..n-1 the way TrainTestSplit
// splits samples. Use it to partition aligned feature rows and labels together.
func TrainTestSplitIndices(n int, testSize float64, rng Shuffler) (train, test []int, err error) {
	if n < 0 {
		return nil, nil, errors.NewValidationError("n", "must be non-negative", n)
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	p, err := TrainTestSplit(indices, testSize, rng)
	if err != nil {
		return nil, nil, err
	}
	return p.Train, p.Test, nil
}

func splitIndex(n int, testSize float64) int {
	return int(math.Floor(float64(n) * (1 - testSize)))
}

// Take returns the rows of t at the given indices.
func Take[T any](t []T, indices []int) []T {
	out := make([]T, len(indices))
	for i, idx := range indices {
		out[i] = t[idx]
	}
	return out
}

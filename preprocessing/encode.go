package preprocessing

// Categories returns the distinct labels in order of first appearance.
// Labels that are not equal to themselves, such as float NaN, collapse into
// a single category at the position of the first one.
func Categories[T comparable](labels []T) []T {
	seen := make(map[T]struct{}, len(labels))
	sawIrreflexive := false
	out := make([]T, 0)
	for _, l := range labels {
		if l != l {
			if sawIrreflexive {
				continue
			}
			sawIrreflexive = true
			out = append(out, l)
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// OneHotEncode returns one row per label with a single 1 at the position of
// the label's category. Categories are ordered by first appearance, so
// OneHotEncode([]string{"b", "a", "b"}) is [[1 0] [0 1] [1 0]].
func OneHotEncode[T comparable](labels []T) Table {
	cats := Categories(labels)
	index := newLabelIndex(cats)

	out := newTable(len(labels), len(cats))
	for i, l := range labels {
		k, _ := index.lookup(l)
		out[i][k] = 1
	}
	return out
}

// labelIndex maps a label to its category position.
type labelIndex[T comparable] struct {
	pos         map[T]int
	irreflexive int // -1 when no category is NaN-like
}

func newLabelIndex[T comparable](cats []T) labelIndex[T] {
	x := labelIndex[T]{pos: make(map[T]int, len(cats)), irreflexive: -1}
	for i, c := range cats {
		if c != c {
			x.irreflexive = i
			continue
		}
		x.pos[c] = i
	}
	return x
}

func (x labelIndex[T]) lookup(l T) (int, bool) {
	if l != l {
		return x.irreflexive, x.irreflexive >= 0
	}
	k, ok := x.pos[l]
	return k, ok
}

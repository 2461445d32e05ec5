package shape

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// ErrUnknownShape is returned when a strategy name cannot be parsed.
var ErrUnknownShape = errors.New("unknown shape strategy")

// Kind names an insertion-order strategy.
type Kind string

const (
	// Binary shuffles the values: an unpredictable, usually unbalanced BST.
	Binary Kind = "binary"
	// AVL emits the sorted values middle-first. This is an insertion order only;
	// no rotations are ever performed.
	AVL Kind = "avl"
	// Complete concatenates the sorted values in groups of 1, 2, 4, 8, ...
	// This does not guarantee a complete tree once inserted.
	Complete Kind = "complete"
	// Balanced emits the sorted values middle-first (same order as AVL).
	Balanced Kind = "balanced"
)

// Kinds lists the strategies in presentation order.
func Kinds() []Kind {
	return []Kind{Binary, AVL, Complete, Balanced}
}

// Parse resolves a strategy by name, case-insensitively.
func Parse(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	if slices.Contains(Kinds(), k) {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// Order removes duplicates from values and returns them in the insertion order
// produced by kind. rng is only consulted by Binary; nil uses a random seed.
func Order(kind Kind, values []int, rng *rand.Rand) ([]int, error) {
	unique := Dedupe(values)
	if len(unique) == 0 {
		return nil, domain.ErrEmptyInput
	}

	switch kind {
	case Binary:
		return Shuffle(unique, rng), nil
	case AVL, Balanced:
		return MiddleFirst(unique), nil
	case Complete:
		return LevelGrouped(unique), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownShape, kind)
}

// Dedupe keeps the first occurrence of every value.
func Dedupe(values []int) []int {
	seen := make(map[int]struct{}, len(values))
	out := make([]int, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Shuffle returns a Fisher-Yates permutation of values.
func Shuffle(values []int, rng *rand.Rand) []int {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	out := slices.Clone(values)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// MiddleFirst sorts values and emits the middle of every range before its
// left and right halves: the pre-order of the minimum-height BST.
func MiddleFirst(values []int) []int {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	out := make([]int, 0, len(sorted))
	var emit func(start, end int)
	emit = func(start, end int) {
		if start > end {
			return
		}
		mid := (start + end) / 2
		out = append(out, sorted[mid])
		emit(start, mid-1)
		emit(mid+1, end)
	}
	emit(0, len(sorted)-1)
	return out
}

// LevelGrouped sorts values and concatenates consecutive groups sized like
// the levels of a complete binary tree (1, 2, 4, ...). The last group may be short.
func LevelGrouped(values []int) []int {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	out := make([]int, 0, len(sorted))
	for start, size := 0, 1; start < len(sorted); size *= 2 {
		end := min(start+size, len(sorted))
		out = append(out, sorted[start:end]...)
		start = end
	}
	return out
}

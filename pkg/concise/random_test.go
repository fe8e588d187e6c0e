package concise

import (
	"math/rand/v2"
	"slices"
	"testing"
)

// denseModel is a plain boolean bitmap used as the reference implementation
// for randomized checks.
type denseModel []bool

func (m denseModel) toSlice() []int {
	var out []int
	for e, ok := range m {
		if ok {
			out = append(out, e)
		}
	}
	return out
}

func randomModel(rng *rand.Rand, universe int, density float64) denseModel {
	m := make(denseModel, universe)
	for e := range m {
		m[e] = rng.Float64() < density
	}
	return m
}

func fromModel(m denseModel, wah bool) *Set {
	s := New()
	if wah {
		s = NewWAH()
	}
	for e, ok := range m {
		if ok {
			s.Add(e)
		}
	}
	return s
}

// TestRandomizedAgainstModel drives every operation against a dense boolean
// model over a mix of densities, in both encoding modes.
func TestRandomizedAgainstModel(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 13))
	const universe = 2048

	for round := 0; round < 40; round++ {
		density := []float64{0.001, 0.02, 0.3, 0.9}[round%4]
		wah := round%2 == 1
		am := randomModel(rng, universe, density)
		bm := randomModel(rng, universe, density/2)
		a := fromModel(am, wah)
		b := fromModel(bm, wah)

		// round-trip
		if got := a.ToSlice(); !slices.Equal(got, am.toSlice()) {
			t.Fatalf("round %d: elements = %v, want %v", round, got, am.toSlice())
		}

		// algebra against the model
		union := make(denseModel, universe)
		inter := make(denseModel, universe)
		diff := make(denseModel, universe)
		sym := make(denseModel, universe)
		for e := 0; e < universe; e++ {
			union[e] = am[e] || bm[e]
			inter[e] = am[e] && bm[e]
			diff[e] = am[e] && !bm[e]
			sym[e] = am[e] != bm[e]
		}
		checks := []struct {
			name string
			got  *Set
			want denseModel
		}{
			{"union", a.Union(b), union},
			{"intersection", a.Intersection(b), inter},
			{"difference", a.Difference(b), diff},
			{"symmetric difference", a.SymmetricDifference(b), sym},
		}
		for _, c := range checks {
			if got := c.got.ToSlice(); !slices.Equal(got, c.want.toSlice()) {
				t.Fatalf("round %d (wah=%v): %s = %v, want %v",
					round, wah, c.name, got, c.want.toSlice())
			}
			assertCanonical(t, c.got)
		}
		if got, want := a.IntersectionSize(b), len(inter.toSlice()); got != want {
			t.Fatalf("round %d: IntersectionSize = %d, want %d", round, got, want)
		}

		// point mutations agree with the model
		for i := 0; i < 50; i++ {
			e := rng.IntN(universe)
			switch rng.IntN(3) {
			case 0:
				if a.Add(e) == am[e] {
					t.Fatalf("round %d: Add(%d) change report wrong", round, e)
				}
				am[e] = true
			case 1:
				if a.Remove(e) != am[e] {
					t.Fatalf("round %d: Remove(%d) change report wrong", round, e)
				}
				am[e] = false
			default:
				a.Flip(e)
				am[e] = !am[e]
			}
		}
		if got := a.ToSlice(); !slices.Equal(got, am.toSlice()) {
			t.Fatalf("round %d: after mutations = %v, want %v", round, got, am.toSlice())
		}
		assertCanonical(t, a)

		// positional identities
		elems := a.ToSlice()
		for i := 0; i < 20 && len(elems) > 0; i++ {
			k := rng.IntN(len(elems))
			if got := a.Get(k); got != elems[k] {
				t.Fatalf("round %d: Get(%d) = %d, want %d", round, k, got, elems[k])
			}
			if got := a.IndexOf(elems[k]); got != k {
				t.Fatalf("round %d: IndexOf(%d) = %d, want %d", round, elems[k], got, k)
			}
		}

		// skip-ahead lands on the least element >= target
		if len(elems) > 0 {
			target := rng.IntN(universe)
			it := a.Iterator()
			it.SkipAllBefore(target)
			i, _ := slices.BinarySearch(elems, target)
			if i == len(elems) {
				if it.HasNext() {
					t.Fatalf("round %d: SkipAllBefore(%d) should exhaust", round, target)
				}
			} else if got := it.Next(); got != elems[i] {
				t.Fatalf("round %d: SkipAllBefore(%d) then Next = %d, want %d",
					round, target, got, elems[i])
			}
		}
	}
}

// TestWAHEquivalence verifies both modes encode the same element sets, with
// no flip field ever set in WAH words.
func TestWAHEquivalence(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))
	for round := 0; round < 10; round++ {
		m := randomModel(rng, 1500, []float64{0.005, 0.4, 0.95}[round%3])
		c := fromModel(m, false)
		w := fromModel(m, true)
		if !slices.Equal(c.ToSlice(), w.ToSlice()) {
			t.Fatalf("round %d: modes disagree", round)
		}
		for _, word := range w.words {
			if !isLiteral(word) && flippedBit(word) >= 0 {
				t.Fatalf("round %d: WAH word %08X has a flip bit", round, word)
			}
		}
		if c.IsEmpty() {
			continue
		}
		u := c.Union(c.Complemented())
		if u.Size() != c.Last()+1 {
			t.Fatalf("round %d: set ∪ complement must cover [0, last]", round)
		}
	}
}

// assertCanonical checks the encoding invariants: no trailing zero words, no
// adjacent words that the append rules would have merged.
func assertCanonical(t *testing.T, s *Set) {
	t.Helper()
	if len(s.words) == 0 {
		return
	}
	lastWord := s.words[len(s.words)-1]
	if lastWord == allZerosLiteral || isZeroSequence(lastWord) {
		t.Fatalf("trailing word %08X carries no bit", lastWord)
	}
	if isLiteral(lastWord) && literalBits(lastWord) == 0 {
		t.Fatalf("trailing literal %08X is empty", lastWord)
	}
	blocks := 0
	for i, w := range s.words {
		if isLiteral(w) {
			blocks++
		} else {
			blocks += int(sequenceCount(w) + 1)
		}
		if i == 0 {
			continue
		}
		prev := s.words[i-1]
		// a run with a saturated counter legitimately abuts same-type words
		full := !isLiteral(prev) && sequenceCount(prev) == sequenceCountMask
		switch {
		case w == allZerosLiteral && (prev == allZerosLiteral || (isZeroSequence(prev) && !full)):
			t.Fatalf("words %d,%d: %08X %08X should have merged", i-1, i, prev, w)
		case w == allOnesLiteral && (prev == allOnesLiteral || (isOneSequence(prev) && !full)):
			t.Fatalf("words %d,%d: %08X %08X should have merged", i-1, i, prev, w)
		// a run whose first block carries a flip cannot extend the run
		// before it, so only flip-free runs must have merged
		case isZeroSequence(w) && isZeroSequence(prev) && flippedBit(w) < 0 && !full:
			t.Fatalf("words %d,%d: adjacent zero runs", i-1, i)
		case isOneSequence(w) && isOneSequence(prev) && flippedBit(w) < 0 && !full:
			t.Fatalf("words %d,%d: adjacent one runs", i-1, i)
		case !s.wah && w == allZerosLiteral && isLiteral(prev) && containsOnlyOneBit(literalBits(prev)):
			t.Fatalf("words %d,%d: one-bit literal should have promoted", i-1, i)
		case !s.wah && w == allOnesLiteral && isLiteral(prev) && containsOnlyOneBit(^prev):
			t.Fatalf("words %d,%d: missing-bit literal should have promoted", i-1, i)
		}
	}
	if want := s.last/maxLiteralLength + 1; blocks != want {
		t.Fatalf("decoded %d blocks, want %d for last=%d", blocks, want, s.last)
	}
}

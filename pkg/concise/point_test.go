package concise

import (
	"slices"
	"testing"
)

// TestContains walks membership across literal, zero-run and one-run words.
func TestContains(t *testing.T) {
	s := From(3, 5, 100, 101)
	s.FillRange(31, 92)

	tests := []struct {
		e    int
		want bool
	}{
		{3, true}, {5, true}, {4, false},
		{31, true}, {60, true}, {92, true}, {93, false},
		{100, true}, {101, true}, {102, false},
		{-1, false}, {0, false}, {1000, false},
	}
	for _, tc := range tests {
		if got := s.Contains(tc.e); got != tc.want {
			t.Errorf("Contains(%d) = %v, want %v", tc.e, got, tc.want)
		}
	}
}

// TestAddRemoveInPlace verifies point mutation through both the in-place and
// the general (operation-backed) paths.
func TestAddRemoveInPlace(t *testing.T) {
	s := From(10, 12, 14)
	if !s.Add(11) {
		t.Error("Add(11) must report a change")
	}
	if s.Add(11) {
		t.Error("second Add(11) must not report a change")
	}
	if !s.Remove(12) {
		t.Error("Remove(12) must report a change")
	}
	if s.Remove(12) {
		t.Error("second Remove(12) must not report a change")
	}
	if got := s.ToSlice(); !slices.Equal(got, []int{10, 11, 14}) {
		t.Fatalf("elements = %v", got)
	}

	// removal inside a one-run goes through the general path and splits
	// the run with a flip
	run := From(seq(0, 61)...)
	if !run.Remove(10) {
		t.Error("Remove(10) from a run must report a change")
	}
	if want := []uint32{0x56000001}; !slices.Equal(run.words, want) {
		t.Errorf("words = %08X, want %08X", run.words, want)
	}
	if run.Contains(10) {
		t.Error("10 must be gone")
	}
	if run.Size() != 61 || run.Last() != 61 {
		t.Errorf("size, last = %d, %d, want 61, 61", run.Size(), run.Last())
	}

	// removing the maximum element must refresh last
	top := From(1, 5, 9)
	top.Remove(9)
	if top.Last() != 5 {
		t.Errorf("last after removing maximum = %d, want 5", top.Last())
	}
}

// TestAddRemoveRange verifies the domain guard.
func TestAddRemoveRange(t *testing.T) {
	s := New()
	for _, e := range []int{-1, MaxAllowedInteger + 1} {
		func() {
			defer func() {
				if r := recover(); r != ErrOutOfRange {
					t.Errorf("Add(%d) panic = %v, want ErrOutOfRange", e, r)
				}
			}()
			s.Add(e)
		}()
	}
	if !s.Add(MaxAllowedInteger) || !s.Contains(MaxAllowedInteger) {
		t.Error("the maximum representable element must be storable")
	}
}

// TestFullDomainFill fills the entire legal domain, which spans one block
// more than a single sequence word can count: the encoding must end in a
// saturated one run plus a full literal, not a wrapped counter.
func TestFullDomainFill(t *testing.T) {
	s := New()
	s.FillRange(0, MaxAllowedInteger)
	want := []uint32{oneSequenceBit | sequenceCountMask, allOnesLiteral}
	if !slices.Equal(s.words, want) {
		t.Fatalf("words = %08X, want %08X", s.words, want)
	}
	assertCanonical(t, s)
	if got := s.Size(); got != MaxAllowedInteger+1 {
		t.Errorf("size = %d, want %d", got, MaxAllowedInteger+1)
	}
	if s.First() != 0 || s.Last() != MaxAllowedInteger {
		t.Errorf("first, last = %d, %d", s.First(), s.Last())
	}
	for _, e := range []int{0, 30, 31, MaxAllowedInteger - 1, MaxAllowedInteger} {
		if !s.Contains(e) {
			t.Errorf("Contains(%d) = false", e)
		}
		if got := s.IndexOf(e); got != e {
			t.Errorf("IndexOf(%d) = %d", e, got)
		}
	}

	// the symmetric difference with itself must cancel completely
	if d := s.SymmetricDifference(s); !d.IsEmpty() {
		t.Errorf("s Δ s = %v words, want empty", d.WordCount())
	}
	c := s.Clone()
	c.Complement()
	if !c.IsEmpty() {
		t.Error("complement of the full domain must be empty")
	}

	// shaving the maximum element must stay in place and refresh last
	if !s.Remove(MaxAllowedInteger) {
		t.Fatal("Remove(MaxAllowedInteger) must report a change")
	}
	if s.Last() != MaxAllowedInteger-1 || s.Size() != MaxAllowedInteger {
		t.Errorf("after removal: last, size = %d, %d", s.Last(), s.Size())
	}
}

// TestFlip verifies toggle semantics.
func TestFlip(t *testing.T) {
	s := From(2)
	s.Flip(2)
	s.Flip(7)
	if got := s.ToSlice(); !slices.Equal(got, []int{7}) {
		t.Errorf("elements = %v, want [7]", got)
	}
}

// TestPositional covers Get / IndexOf / First / Last.
func TestPositional(t *testing.T) {
	s := From(5, 10, 15, 20)
	if got := s.Get(0); got != 5 {
		t.Errorf("Get(0) = %d, want 5", got)
	}
	if got := s.Get(3); got != 20 {
		t.Errorf("Get(3) = %d, want 20", got)
	}
	if got := s.IndexOf(15); got != 2 {
		t.Errorf("IndexOf(15) = %d, want 2", got)
	}
	if got := s.IndexOf(7); got != -1 {
		t.Errorf("IndexOf(7) = %d, want -1", got)
	}
	if s.Size() != 4 || s.First() != 5 || s.Last() != 20 {
		t.Errorf("size, first, last = %d, %d, %d", s.Size(), s.First(), s.Last())
	}

	defer func() {
		if r := recover(); r != ErrOutOfRange {
			t.Errorf("Get(4) panic = %v, want ErrOutOfRange", r)
		}
	}()
	s.Get(4)
}

// TestPositionalAcrossSequences verifies rank math through flip-carrying
// runs.
func TestPositionalAcrossSequences(t *testing.T) {
	s := From(5, 100)
	s.FillRange(124, 200)
	s.Remove(150)

	elems := s.ToSlice()
	for i, e := range elems {
		if got := s.Get(i); got != e {
			t.Errorf("Get(%d) = %d, want %d", i, got, e)
		}
		if got := s.IndexOf(e); got != i {
			t.Errorf("IndexOf(%d) = %d, want %d", e, got, i)
		}
	}
	if got := s.IndexOf(150); got != -1 {
		t.Errorf("IndexOf(150) = %d, want -1", got)
	}
}

// TestFirstLastEmpty verifies the empty-set failures.
func TestFirstLastEmpty(t *testing.T) {
	for name, f := range map[string]func(*Set) int{
		"First": (*Set).First,
		"Last":  (*Set).Last,
	} {
		func() {
			defer func() {
				if r := recover(); r != ErrNoSuchElement {
					t.Errorf("%s on empty panic = %v, want ErrNoSuchElement", name, r)
				}
			}()
			f(New())
		}()
	}
}

// TestComplement covers the in-place complement including the asymmetric
// endpoint behavior: complement is always taken over [0, last].
func TestComplement(t *testing.T) {
	s := From(2, 5)
	s.Complement()
	if got := s.ToSlice(); !slices.Equal(got, []int{0, 1, 3, 4}) {
		t.Fatalf("first complement = %v, want [0 1 3 4]", got)
	}
	if s.Last() != 4 {
		t.Errorf("last = %d, want 4", s.Last())
	}
	// the second complement runs over the shrunk domain [0, 4]
	s.Complement()
	if got := s.ToSlice(); !slices.Equal(got, []int{2}) {
		t.Errorf("second complement = %v, want [2]", got)
	}

	tests := []struct {
		name string
		in   []int
		want []int
	}{
		{"empty", nil, nil},
		{"singleton zero", []int{0}, nil},
		{"full prefix", seq(0, 61), nil},
		{"run with holes", append(seq(0, 92), 100), seq(93, 99)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := From(tc.in...)
			s.Complement()
			got := s.ToSlice()
			if len(tc.want) == 0 {
				if !s.IsEmpty() {
					t.Errorf("complement = %v, want empty", got)
				}
				return
			}
			if !slices.Equal(got, tc.want) {
				t.Errorf("complement = %v, want %v", got, tc.want)
			}
		})
	}
}

// TestComplementInvolution: a double complement restores every element below
// the maximum. The first complement drops the maximum (100), so its last
// becomes 99 and the second complement runs over [0, 99].
func TestComplementInvolution(t *testing.T) {
	s := From(0, 4, 31, 62, 63, 100)
	twice := s.Complemented().Complemented()
	if want := From(0, 4, 31, 62, 63); !twice.Equal(want) {
		t.Errorf("double complement = %v, want %v", twice, want)
	}
}

// TestFillClearRange verifies range mutation built from complemented
// endpoint sets.
func TestFillClearRange(t *testing.T) {
	s := New()
	s.FillRange(10, 100)
	if got, want := s.ToSlice(), seq(10, 100); !slices.Equal(got, want) {
		t.Fatalf("FillRange(10,100) = %v", got)
	}
	s.ClearRange(20, 95)
	want := append(seq(10, 19), seq(96, 100)...)
	if got := s.ToSlice(); !slices.Equal(got, want) {
		t.Fatalf("after ClearRange(20,95) = %v, want %v", got, want)
	}
	s.FillRange(15, 15)
	if !s.Contains(15) {
		t.Error("degenerate FillRange must add its endpoint")
	}
	func() {
		defer func() {
			if r := recover(); r != ErrInvalidArgument {
				t.Errorf("FillRange(5,4) panic = %v, want ErrInvalidArgument", r)
			}
		}()
		s.FillRange(5, 4)
	}()
}

// TestToArray verifies the buffer contract.
func TestToArray(t *testing.T) {
	s := From(9, 3, 3, 7)
	buf := make([]int, 4)
	if got := s.ToArray(buf); !slices.Equal(got, []int{3, 7, 9}) {
		t.Errorf("ToArray = %v, want [3 7 9]", got)
	}
	defer func() {
		if r := recover(); r != ErrInvalidArgument {
			t.Errorf("short buffer panic = %v, want ErrInvalidArgument", r)
		}
	}()
	s.ToArray(make([]int, 2))
}

// TestCompressionRatios checks the introspection numbers for a dense and a
// sparse set.
func TestCompressionRatios(t *testing.T) {
	if got := New().BitmapCompressionRatio(); got != 0 {
		t.Errorf("empty bitmap ratio = %v, want 0", got)
	}
	dense := From(seq(0, 61)...) // one word vs two dense words
	if got := dense.BitmapCompressionRatio(); got != 0.5 {
		t.Errorf("dense bitmap ratio = %v, want 0.5", got)
	}
	if got := dense.CollectionCompressionRatio(); got != 1.0/62 {
		t.Errorf("dense collection ratio = %v, want %v", got, 1.0/62)
	}
}

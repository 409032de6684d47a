package revision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		subID string
		kind  Kind
	}{
		{"a", KindRoot},
		{"a-0", KindSequential},
		{"a-12", KindSequential},
		{"a-1-1", KindBranch},
		{"a-1-1-4", KindBranch},
		{"my-design-3", KindSequential},
		{"precise-x", KindNamed},
		{"balanced-1", KindNamed},
		{"creative-a-1", KindNamed},
	}

	for _, tt := range tests {
		t.Run(tt.subID, func(t *testing.T) {
			p := Parse(tt.subID)
			assert.Equal(t, tt.kind, p.Kind())
			assert.Equal(t, tt.subID, p.String())
		})
	}
}

func TestParse_Structure(t *testing.T) {
	p := Parse("a-1-2")
	require.Equal(t, KindBranch, p.Kind())
	assert.Equal(t, uint64(2), p.N())

	parent, ok := p.Parent()
	require.True(t, ok)
	assert.Equal(t, KindSequential, parent.Kind())
	assert.Equal(t, uint64(1), parent.N())

	root, ok := parent.Parent()
	require.True(t, ok)
	assert.Equal(t, Root("a"), root)

	_, ok = root.Parent()
	assert.False(t, ok)
}

func TestParse_UnparsableCounterDefaultsToZero(t *testing.T) {
	p := Parse("a-x")
	assert.Equal(t, "a-0", p.String())
	assert.Equal(t, "a-1", p.Next().String())
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name     string
		parent   string
		existing []string
		want     string
	}{
		{
			name:   "extends trunk when free",
			parent: "a-0",
			want:   "a-1",
		},
		{
			name:     "extends trunk past existing parent",
			parent:   "a-0",
			existing: []string{"a-0"},
			want:     "a-1",
		},
		{
			name:     "opens first branch when next generation is taken",
			parent:   "a-0",
			existing: []string{"a-0", "a-1"},
			want:     "a-1-1",
		},
		{
			name:     "opens next branch after existing branches",
			parent:   "a-0",
			existing: []string{"a-0", "a-1", "a-1-1"},
			want:     "a-1-2",
		},
		{
			name:     "branch numbering is numeric not lexicographic",
			parent:   "a-0",
			existing: []string{"a-0", "a-1", "a-1-1", "a-1-9", "a-1-10"},
			want:     "a-1-11",
		},
		{
			name:     "deepest greatest descendant is incremented",
			parent:   "a-0",
			existing: []string{"a-0", "a-1", "a-1-1", "a-1-1-7"},
			want:     "a-1-1-8",
		},
		{
			name:     "higher branch outranks a deeper lower one",
			parent:   "a-0",
			existing: []string{"a-0", "a-1", "a-1-1", "a-1-1-7", "a-1-2"},
			want:     "a-1-3",
		},
		{
			name:     "descendant segments compare numerically",
			parent:   "a-0",
			existing: []string{"a-0", "a-1", "a-1-1-9", "a-1-1-10"},
			want:     "a-1-1-11",
		},
		{
			name:     "non-numeric descendants are ignored",
			parent:   "a-0",
			existing: []string{"a-0", "a-1", "a-1-x"},
			want:     "a-1-1",
		},
		{
			name:     "counter that cannot be incremented counts as zero",
			parent:   "a-18446744073709551615",
			existing: []string{"a-18446744073709551615"},
			want:     "a-1",
		},
		{
			name:     "largest counter opens a branch",
			parent:   "a-18446744073709551614",
			existing: []string{"a-18446744073709551614"},
			want:     "a-18446744073709551614-1",
		},
		{
			name:     "extends a branch",
			parent:   "a-1-1",
			existing: []string{"a-0", "a-1", "a-1-1"},
			want:     "a-1-2",
		},
		{
			name:     "root starts its trunk at one",
			parent:   "a",
			existing: []string{"a"},
			want:     "a-1",
		},
		{
			name:     "unparsable counter counts as zero",
			parent:   "a-x",
			existing: []string{"a-x"},
			want:     "a-1",
		},
		{
			name:     "named anchor passes through",
			parent:   "precise-x",
			existing: []string{"precise-x", "precise-x-1"},
			want:     "precise-x",
		},
		{
			name:   "named anchor passes through with no siblings",
			parent: "creative-0",
			want:   "creative-0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextID(tt.parent, tt.existing))
		})
	}
}

func TestNext_NeverCollidesAcrossBranches(t *testing.T) {
	siblings := NewSiblingSet([]string{"a-0"})
	parents := []string{"a-0", "a-1", "a-1-1", "a-0", "a-1-1-1", "a-0", "a-1"}

	for round := 0; round < 5; round++ {
		for _, parent := range parents {
			next := NextID(parent, keys(siblings))
			require.False(t, siblings.Has(next), "allocated %s twice", next)
			siblings.Add(next)
		}
	}
}

func keys(s SiblingSet) []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}

func TestNext_NeverCollides(t *testing.T) {
	siblings := NewSiblingSet([]string{"a-0"})
	parent := Parse("a-0")

	for i := 0; i < 25; i++ {
		next := Next(parent, siblings)
		require.False(t, siblings.Has(next.String()), "allocated %s twice", next)
		siblings.Add(next.String())
	}
	assert.Len(t, siblings, 26)
}

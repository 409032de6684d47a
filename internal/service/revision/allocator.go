package revision

import (
	"cmp"
	"strconv"
	"strings"
)

// SiblingSet is the set of sub_ids already used within one UI
type SiblingSet map[string]struct{}

// NewSiblingSet builds a set from stored sub_ids
func NewSiblingSet(subIDs []string) SiblingSet {
	set := make(SiblingSet, len(subIDs))
	for _, id := range subIDs {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether the sub_id is taken
func (s SiblingSet) Has(subID string) bool {
	_, ok := s[subID]
	return ok
}

// Add marks a sub_id as taken
func (s SiblingSet) Add(subID string) {
	s[subID] = struct{}{}
}

// Next returns the path for a new revision created from parent.
//
// Named anchors are returned unchanged. Otherwise the next generation at the
// parent's depth is used when free. When it is taken, the greatest existing
// id under it (numeric segment order, any depth) is incremented in its last
// segment; with nothing under it a branch "<candidate>-1" is opened.
func Next(parent Path, siblings SiblingSet) Path {
	if parent.Kind() == KindNamed {
		return parent
	}

	candidate := parent.Next()
	if !siblings.Has(candidate.String()) {
		return candidate
	}

	greatest, found := greatestDescendant(candidate.String(), siblings)
	if !found {
		return Branch(candidate, 1)
	}

	p := candidate
	for _, n := range greatest {
		p = Branch(p, n)
	}
	return p.Next()
}

// NextID is Next applied to stored sub_id strings
func NextID(parentSubID string, existing []string) string {
	return Next(Parse(parentSubID), NewSiblingSet(existing)).String()
}

// greatestDescendant returns the counters below base of the greatest id
// "<base>-k1-k2-...". Ids are compared segment by segment as numbers, and a
// longer id beats its own prefix, so "a-1-10" ranks above "a-1-9" and
// "a-1-1-7" above "a-1-1". Ids with a non-numeric segment under base are
// ignored.
func greatestDescendant(base string, siblings SiblingSet) ([]uint64, bool) {
	prefix := base + "-"

	var greatest []uint64
	for id := range siblings {
		rest, ok := strings.CutPrefix(id, prefix)
		if !ok {
			continue
		}
		counters, ok := parseCounters(rest)
		if !ok {
			continue
		}
		if greatest == nil || compareCounters(counters, greatest) > 0 {
			greatest = counters
		}
	}
	return greatest, greatest != nil
}

func parseCounters(rest string) ([]uint64, bool) {
	segments := strings.Split(rest, "-")
	counters := make([]uint64, 0, len(segments))
	for _, seg := range segments {
		if !isCounter(seg) {
			return nil, false
		}
		n, _ := strconv.ParseUint(seg, 10, 64)
		counters = append(counters, n)
	}
	return counters, true
}

func compareCounters(a, b []uint64) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

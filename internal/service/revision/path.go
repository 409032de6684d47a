package revision

import (
	"math"
	"strconv"
	"strings"
)

// Kind tags the shape of a Path
type Kind int

const (
	// KindRoot is the trunk base tag (no generation counter), e.g. "a"
	KindRoot Kind = iota

	// KindSequential is a generation on the trunk, e.g. "a-3"
	KindSequential

	// KindBranch is a generation on a branch opened off another node, e.g. "a-1-2"
	KindBranch

	// KindNamed is a fixed mode anchor that is never incremented, e.g. "precise-x"
	KindNamed
)

// maxCounter is the largest generation counter a sub_id may carry; one
// more would not survive a round-trip through an unsigned 64-bit parse.
const maxCounter = math.MaxUint64 - 1

// NamedPrefixes are the mode prefixes that mark anchor nodes
var NamedPrefixes = []string{"precise-", "balanced-", "creative-"}

// Path is the structured form of a revision sub_id.
// The dash-joined string is produced only at the storage boundary via String().
type Path struct {
	kind   Kind
	parent *Path
	n      uint64
	tag    string
}

// Root returns a trunk base path
func Root(tag string) Path {
	return Path{kind: KindRoot, tag: tag}
}

// Named returns a mode anchor path
func Named(tag string) Path {
	return Path{kind: KindNamed, tag: tag}
}

// Sequential returns generation n on the trunk rooted at root
func Sequential(root Path, n uint64) Path {
	return Path{kind: KindSequential, parent: &root, n: n}
}

// Branch returns generation n of a branch whose base is parent
func Branch(parent Path, n uint64) Path {
	return Path{kind: KindBranch, parent: &parent, n: n}
}

// Kind returns the tag of the path
func (p Path) Kind() Kind { return p.kind }

// N returns the generation counter (zero for root and named paths)
func (p Path) N() uint64 { return p.n }

// Parent returns the base path of a sequential or branch path
func (p Path) Parent() (Path, bool) {
	if p.parent == nil {
		return Path{}, false
	}
	return *p.parent, true
}

// Next returns the following generation at the same depth.
// A root starts its trunk at 1; a named anchor is returned unchanged.
// A counter that is already at maxCounter opens a branch instead.
func (p Path) Next() Path {
	if (p.kind == KindSequential || p.kind == KindBranch) && p.n >= maxCounter {
		return Branch(p, 1)
	}

	switch p.kind {
	case KindRoot:
		return Sequential(p, 1)
	case KindSequential:
		return Sequential(*p.parent, p.n+1)
	case KindBranch:
		return Branch(*p.parent, p.n+1)
	default:
		return p
	}
}

// String serializes the path to its sub_id form
func (p Path) String() string {
	switch p.kind {
	case KindRoot, KindNamed:
		return p.tag
	default:
		return p.parent.String() + "-" + strconv.FormatUint(p.n, 10)
	}
}

// IsNamed reports whether subID starts with a mode prefix
func IsNamed(subID string) bool {
	for _, prefix := range NamedPrefixes {
		if strings.HasPrefix(subID, prefix) {
			return true
		}
	}
	return false
}

// Parse reads a sub_id. Well-formed ids (a tag followed by numeric
// segments) round-trip through String(). An id whose last segment is not
// numeric reads as generation 0 of the part before the last dash.
func Parse(subID string) Path {
	if IsNamed(subID) {
		return Named(subID)
	}

	segments := strings.Split(subID, "-")
	if len(segments) == 1 {
		return Root(subID)
	}

	// Start of the trailing run of numeric segments
	k := len(segments)
	for k > 0 && isCounter(segments[k-1]) {
		k--
	}

	if k == len(segments) {
		// trailing segment does not parse: counts as 0
		return Sequential(Root(strings.Join(segments[:len(segments)-1], "-")), 0)
	}
	if k == 0 {
		// all numeric: the first segment is the tag
		k = 1
	}

	p := Root(strings.Join(segments[:k], "-"))
	for i, seg := range segments[k:] {
		n, _ := strconv.ParseUint(seg, 10, 64)
		if i == 0 {
			p = Sequential(p, n)
		} else {
			p = Branch(p, n)
		}
	}
	return p
}

func isCounter(seg string) bool {
	if seg == "" {
		return false
	}
	n, err := strconv.ParseUint(seg, 10, 64)
	return err == nil && n <= maxCounter
}

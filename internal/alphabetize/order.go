package alphabetize

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// CaseSensitive selects exact byte-wise name comparison. It is fixed at build
// time; nothing reads it from flags or configuration.
const CaseSensitive = true

// SortKey returns the key children are ordered by.
func SortKey(name string, caseSensitive bool) string {
	if caseSensitive {
		return name
	}
	return cases.Fold().String(name)
}

func compareNames(a, b string, caseSensitive bool) int {
	return strings.Compare(SortKey(a, caseSensitive), SortKey(b, caseSensitive))
}

// TargetOrder returns a stably sorted copy of children. Children with equal
// keys keep their current relative order.
func TargetOrder(children []Child, caseSensitive bool) []Child {
	out := slices.Clone(children)
	slices.SortStableFunc(out, func(a, b Child) int {
		return compareNames(a.Name(), b.Name(), caseSensitive)
	})
	return out
}

// SortNames is TargetOrder for plain names.
func SortNames(names []string, caseSensitive bool) []string {
	out := slices.Clone(names)
	slices.SortStableFunc(out, func(a, b string) int {
		return compareNames(a, b, caseSensitive)
	})
	return out
}

// IsSorted reports whether names are non-decreasing under the comparator.
func IsSorted(names []string, caseSensitive bool) bool {
	for i := 1; i < len(names); i++ {
		if compareNames(names[i-1], names[i], caseSensitive) > 0 {
			return false
		}
	}
	return true
}

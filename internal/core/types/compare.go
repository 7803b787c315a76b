package types

import (
	"cmp"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collate.Collator is not safe for concurrent use.
var (
	collatorMu sync.Mutex
	collator   = collate.New(language.Und, collate.IgnoreCase)
)

func compareStrings(a, b Value) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a.str, b.str)
}

func compareNumbers(a, b Value) int {
	return cmp.Compare(a.num, b.num)
}

func comparePercents(a, b Value) int {
	return a.pct.Cmp(b.pct)
}

func compareBools(a, b Value) int {
	switch {
	case a.b == b.b:
		return 0
	case b.b:
		return -1
	}
	return 1
}

func compareDates(a, b Value) int {
	return a.t.Compare(b.t)
}

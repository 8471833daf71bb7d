package ast

import (
	"bytes"
	"sort"

	"github.com/biggeezerdevelopment/sajson-go/internal/arena"
)

// DefaultKeySortThreshold is the object size above which keys are
// sorted (length, then byte content) so lookups can binary search
// instead of scanning linearly. Matches the reference implementation's
// should_binary_search cutoff.
const DefaultKeySortThreshold = 100

// keyLess implements the "length first, then memcmp" comparator used
// both to sort an object's scratch-stack key triples and to binary
// search them. It is deliberately not lexicographic on the decoded
// Unicode text — shorter keys always sort before longer ones,
// regardless of byte content — which is the documented, preserved
// behavior.
func keyLess(data []byte, aStart, aEnd, bStart, bEnd arena.Word) bool {
	aLen, bLen := int(aEnd-aStart), int(bEnd-bStart)
	if aLen != bLen {
		return aLen < bLen
	}
	return bytes.Compare(data[aStart:aEnd], data[bStart:bEnd]) < 0
}

// sortObjectKeys sorts the [key_start, key_end, value] triples at
// scratch indices [base, top) in place when the key count exceeds
// threshold. Below threshold, ordering is left as parsed: lookups fall
// back to a linear scan there anyway, so there is nothing to gain by
// paying the sort.
func sortObjectKeys(a *arena.Arena, data []byte, base, top int, threshold int) {
	length := (top - base) / 3
	if threshold < 0 || length <= threshold {
		return
	}
	triples := a.ScratchSlice(base, top)
	sort.Sort(objectTripleSlice{triples: triples, data: data})
}

type objectTripleSlice struct {
	triples []arena.Word
	data    []byte
}

func (s objectTripleSlice) Len() int { return len(s.triples) / 3 }
func (s objectTripleSlice) Less(i, j int) bool {
	ik, jk := i*3, j*3
	return keyLess(s.data, s.triples[ik], s.triples[ik+1], s.triples[jk], s.triples[jk+1])
}
func (s objectTripleSlice) Swap(i, j int) {
	ik, jk := i*3, j*3
	s.triples[ik], s.triples[ik+1], s.triples[ik+2],
		s.triples[jk], s.triples[jk+1], s.triples[jk+2] =
		s.triples[jk], s.triples[jk+1], s.triples[jk+2],
		s.triples[ik], s.triples[ik+1], s.triples[ik+2]
}

// installArray finalizes an array's scratch frame [base, top) by
// copying it onto the AST stack with element offsets rewritten
// relative to the new record's base, in reverse order (the scratch
// frame was built bottom-to-top, the AST record is written top-down).
func installArray(a *arena.Arena, base, top int) (int, error) {
	length := top - base
	newBase, err := a.ReserveAST(length + 1)
	if err != nil {
		return 0, err
	}
	out := newBase + length + 1
	structureEnd := a.Len()

	for top > base {
		top--
		element := a.Scratch(top)
		elementType := arena.TagOf(element)
		elementValue := arena.ValueOf(element)
		elementPtr := structureEnd - int(elementValue)
		out--
		a.SetScratch(out, arena.Make(elementType, arena.Word(elementPtr-newBase)))
	}
	out--
	a.SetScratch(out, arena.Word(length))
	return newBase, nil
}

// installObject finalizes an object's scratch frame the same way
// installArray does, but over 3-word [key_start, key_end, value]
// triples, sorting them first when the finalizer's threshold says to.
func installObject(a *arena.Arena, data []byte, base, top int, threshold int) (int, error) {
	sortObjectKeys(a, data, base, top, threshold)

	lengthTimes3 := top - base
	length := lengthTimes3 / 3
	newBase, err := a.ReserveAST(lengthTimes3 + 1)
	if err != nil {
		return 0, err
	}
	out := newBase + lengthTimes3 + 1
	structureEnd := a.Len()

	for top > base {
		top--
		element := a.Scratch(top)
		elementType := arena.TagOf(element)
		elementValue := arena.ValueOf(element)
		elementPtr := structureEnd - int(elementValue)

		out--
		a.SetScratch(out, arena.Make(elementType, arena.Word(elementPtr-newBase)))
		top--
		keyEnd := a.Scratch(top)
		out--
		a.SetScratch(out, keyEnd)
		top--
		keyStart := a.Scratch(top)
		out--
		a.SetScratch(out, keyStart)
	}
	out--
	a.SetScratch(out, arena.Word(length))
	return newBase, nil
}

// FindObjectKey returns the index of the triple whose key byte-equals
// key, or length if no such key exists. When two keys compare equal
// under keyLess, which one wins is unspecified — matching the
// reference implementation's documented behavior.
func FindObjectKey(payload []arena.Word, data []byte, key []byte, threshold int) int {
	length := int(payload[0])
	triples := payload[1:]

	if threshold >= 0 && length > threshold {
		lo, hi := 0, length
		for lo < hi {
			mid := (lo + hi) / 2
			ks, ke := triples[mid*3], triples[mid*3+1]
			if lessThanKey(data, ks, ke, key) {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo < length {
			ks, ke := triples[lo*3], triples[lo*3+1]
			if sameKey(data, ks, ke, key) {
				return lo
			}
		}
		return length
	}

	for i := 0; i < length; i++ {
		ks, ke := triples[i*3], triples[i*3+1]
		if sameKey(data, ks, ke, key) {
			return i
		}
	}
	return length
}

func sameKey(data []byte, ks, ke arena.Word, key []byte) bool {
	return int(ke-ks) == len(key) && bytes.Equal(data[ks:ke], key)
}

// lessThanKey reports whether the stored key [ks,ke) sorts before key
// under the length-then-memcmp comparator.
func lessThanKey(data []byte, ks, ke arena.Word, key []byte) bool {
	storedLen, keyLen := int(ke-ks), len(key)
	if storedLen != keyLen {
		return storedLen < keyLen
	}
	return bytes.Compare(data[ks:ke], key) < 0
}

package dfamin

import (
	"github.com/bits-and-blooms/bitset"
)

// pairTable tracks marking of unordered state pairs over a fixed index
// 0..n-1. Pairs are canonicalized to i < j before addressing, so the
// table behaves as a set of unordered pairs backed by one bitset.
type pairTable struct {
	n    int
	bits *bitset.BitSet
}

func newPairTable(n int) *pairTable {
	return &pairTable{n: n, bits: bitset.New(uint(n * n))}
}

func (t *pairTable) offset(i, j int) uint {
	if i > j {
		i, j = j, i
	}
	return uint(i*t.n + j)
}

func (t *pairTable) mark(i, j int) {
	t.bits.Set(t.offset(i, j))
}

func (t *pairTable) marked(i, j int) bool {
	return t.bits.Test(t.offset(i, j))
}

func (t *pairTable) count() uint {
	return t.bits.Count()
}

package generator

import (
	"log"
	"math/rand/v2"

	"github.com/FlorianWoerz/concealSATgen/internal/cnf"
)

// fingerprintUniverse is the integer range the per-literal values are drawn
// from. Large enough that k-literal sums stay far from saturating a uint64.
const fingerprintUniverse = 1<<32 - 1

// FingerprintTable maps every literal over the variables 1..n to a distinct
// pseudo-random integer. A clause's fingerprint is the sum of its literals'
// values: equal literal sets always collide, distinct sets collide with small
// probability. The table is owned by one generation run; concurrent runs must
// each build their own.
type FingerprintTable struct {
	n      uint64
	values map[cnf.Literal]uint64
}

// NewFingerprintTable draws 2n distinct values without replacement from
// [0, 2^32-1). The stream is seeded with seed, independently of any sampling
// seed, so the table is reproducible on its own.
func NewFingerprintTable(n uint64, seed int64) *FingerprintTable {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))

	drawn := make(map[uint64]bool, 2*n)
	sample := make([]uint64, 0, 2*n)
	for uint64(len(sample)) < 2*n {
		value := rng.Uint64N(fingerprintUniverse)
		if drawn[value] {
			continue
		}
		drawn[value] = true
		sample = append(sample, value)
	}

	values := make(map[cnf.Literal]uint64, 2*n)
	for variable := uint64(1); variable <= n; variable++ {
		values[cnf.Literal{Polarity: true, Variable: variable}] = sample[2*(variable-1)]
		values[cnf.Literal{Polarity: false, Variable: variable}] = sample[2*(variable-1)+1]
	}

	return &FingerprintTable{n: n, values: values}
}

// Hash returns the duplicate-detection key of clause. A literal outside the
// table indicates a defect in the caller, not a user error.
func (table *FingerprintTable) Hash(clause cnf.Clause) uint64 {
	var sum uint64
	for _, literal := range clause {
		value, ok := table.values[literal]
		if !ok {
			log.Panicf("fingerprint table covers variables 1..%v, got literal %v", table.n, literal.Signed())
		}
		sum += value
	}
	return sum
}

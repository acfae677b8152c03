package generator

import (
	"errors"
	"math/rand/v2"

	"github.com/FlorianWoerz/concealSATgen/internal/cnf"
)

// ErrInsufficientClauses is returned once the sampler decides the remaining
// candidate space cannot yield another acceptable, non-duplicate clause.
var ErrInsufficientClauses = errors.New("there are fewer clauses available than the number requested")

// DefaultMaxUnproductiveDraws bounds how many candidates in a row may be
// rejected before the sampler gives up instead of spinning forever.
const DefaultMaxUnproductiveDraws = 1_000_000

// Sampler is the rejection-sampling engine. It reads the fingerprint table and
// advances a local stream; it shares no other state, so distinct Sampler
// values may run concurrently as long as they do not share a table.
type Sampler struct {
	table                *FingerprintTable
	maxUnproductiveDraws uint64
}

func NewSampler(table *FingerprintTable, maxUnproductiveDraws uint64) *Sampler {
	return &Sampler{
		table:                table,
		maxUnproductiveDraws: maxUnproductiveDraws,
	}
}

// Sample draws candidate clauses of width k over the variables 1..n until m
// have been accepted, seeding its stream once from seed. A candidate with i
// literals satisfied under hidden is rejected outright for i = 0 (it would
// falsify the planted solution) and otherwise accepted with probability
// p[i-1]. Accepted clauses whose fingerprint was already recorded are dropped
// silently. Returns the set of variables occurring in the accepted clauses and
// the accepted clauses in acceptance order.
func (sampler *Sampler) Sample(k, n, m uint64, hidden HiddenAssignment, seed int64, p []float64) (map[uint64]bool, []cnf.Clause, error) {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))

	clauses := make([]cnf.Clause, 0, m)
	touched := make(map[uint64]bool, n)
	fingerprints := make(map[uint64]bool, m)

	unproductive := uint64(0)
	for uint64(len(clauses)) < m {
		if sampler.maxUnproductiveDraws > 0 && unproductive >= sampler.maxUnproductiveDraws {
			return nil, nil, ErrInsufficientClauses
		}

		clause := drawClause(rng, k, n)

		satisfied := hidden.Satisfied(clause)
		if satisfied == 0 || rng.Float64() >= p[satisfied-1] {
			unproductive++
			continue
		}

		fingerprint := sampler.table.Hash(clause)
		if fingerprints[fingerprint] {
			unproductive++
			continue
		}
		fingerprints[fingerprint] = true

		for _, literal := range clause {
			touched[literal.Variable] = true
		}
		clauses = append(clauses, clause)
		unproductive = 0
	}

	return touched, clauses, nil
}

// drawClause picks k distinct variables uniformly from 1..n, then an
// independent polarity bit per variable.
func drawClause(rng *rand.Rand, k, n uint64) cnf.Clause {
	variables := make([]uint64, 0, k)
	seen := make(map[uint64]bool, k)
	for uint64(len(variables)) < k {
		variable := rng.Uint64N(n) + 1
		if seen[variable] {
			continue
		}
		seen[variable] = true
		variables = append(variables, variable)
	}

	clause := make(cnf.Clause, k)
	for i, variable := range variables {
		clause[i] = cnf.Literal{Polarity: rng.IntN(2) == 0, Variable: variable}
	}
	return clause
}

package generator

import (
	"errors"
	"fmt"
	"log"

	"github.com/FlorianWoerz/concealSATgen/internal/cnf"
	"github.com/samber/lo"
)

// ErrCoverageNotReached is returned when no sampling attempt within the budget
// produced a clause set touching every variable.
var ErrCoverageNotReached = errors.New("no sampled formula covered all variables within the attempt budget")

const (
	// DefaultMaxAttempts bounds the coverage-seeking retries.
	DefaultMaxAttempts = 10_000

	// fingerprintSeed seeds the fingerprint table's stream. It is fixed so the
	// table only depends on n, never on the sampling seed.
	fingerprintSeed = 42
)

// Params describe one generation run: m clauses of width k over n variables,
// accepted according to the p-vector, with every pseudo-random stream derived
// from Seed. Zero MaxAttempts and MaxUnproductiveDraws select the defaults.
type Params struct {
	N                    uint64
	M                    uint64
	K                    uint64
	P                    []float64
	Seed                 int64
	MaxAttempts          uint64
	MaxUnproductiveDraws uint64
}

// ValidateParams checks the caller-side contract: k positive and at most n,
// exactly k p-values, each in [0,1], at least one of them positive.
func ValidateParams(params Params) error {
	if params.K == 0 {
		return fmt.Errorf("parameter k must be positive")
	}
	if params.K > params.N {
		return fmt.Errorf("clauses cannot have more than %v literals", params.N)
	}
	if uint64(len(params.P)) != params.K {
		return fmt.Errorf("length of list of p-values does not match k")
	}
	if !lo.EveryBy(params.P, func(value float64) bool { return value >= 0.0 && value <= 1.0 }) {
		return fmt.Errorf("all p-values must lie in [0.0, 1.0]")
	}
	if !lo.SomeBy(params.P, func(value float64) bool { return value > 0.0 }) {
		return fmt.Errorf("some p-values must be > 0.0")
	}
	return nil
}

// Generate builds a random k-CNF formula with m clauses over n variables that
// is satisfied by the planted assignment, together with the assignment's
// positive variables. A nil hidden assignment is replaced by a random one
// derived from Seed. Attempt t samples with sub-seed Seed+t and is discarded
// unless its clauses touch every variable, so a fixed (Params, hidden) pair
// always reproduces the same formula.
func Generate(params Params, hidden HiddenAssignment) (*cnf.CNF, []uint64, error) {
	if err := ValidateParams(params); err != nil {
		return nil, nil, err
	}

	if hidden == nil {
		hidden = RandomHiddenAssignment(params.N, params.Seed)
	}

	maxAttempts := params.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = DefaultMaxAttempts
	}
	maxUnproductiveDraws := params.MaxUnproductiveDraws
	if maxUnproductiveDraws == 0 {
		maxUnproductiveDraws = DefaultMaxUnproductiveDraws
	}

	table := NewFingerprintTable(params.N, fingerprintSeed)
	sampler := NewSampler(table, maxUnproductiveDraws)

	for t := uint64(1); t <= maxAttempts; t++ {
		touched, clauses, err := sampler.Sample(params.K, params.N, params.M, hidden, params.Seed+int64(t), params.P)
		if err != nil {
			return nil, nil, err
		}
		if uint64(len(touched)) != params.N {
			continue
		}

		formula := cnf.NewWithCapacity(params.N, len(clauses))
		for _, clause := range clauses {
			if err := formula.AddClause(clause); err != nil {
				log.Panicf("sampler produced an invalid clause: %v", err)
			}
		}
		return formula, hidden.Positives(), nil
	}

	return nil, nil, ErrCoverageNotReached
}

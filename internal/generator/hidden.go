package generator

import (
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/FlorianWoerz/concealSATgen/internal/cnf"
	"github.com/samber/lo"
)

// HiddenAssignment is the planted solution: a total mapping from every
// variable 1..n to its truth value, fixed for one generation run.
type HiddenAssignment map[uint64]bool

// RandomHiddenAssignment draws a uniform truth value for every variable 1..n
// from a stream seeded with seed.
func RandomHiddenAssignment(n uint64, seed int64) HiddenAssignment {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	hidden := make(HiddenAssignment, n)
	for variable := uint64(1); variable <= n; variable++ {
		hidden[variable] = rng.IntN(2) == 0
	}
	return hidden
}

// HiddenAssignmentFromFile parses a whitespace-separated list of signed
// integers describing the wanted planted solution. The list must cover exactly
// the variables 1..n with no duplicate and no complementary entries.
func HiddenAssignmentFromFile(file string, n uint64) (HiddenAssignment, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("hidden solution file does not exist: %v", file)
		}
		return nil, fmt.Errorf("cannot read hidden solution file: %v", err)
	}

	fields := strings.Fields(string(content))
	literals := make([]int64, 0, len(fields))
	for _, field := range fields {
		literal, err := strconv.ParseInt(field, 10, 64)
		if err != nil || literal == 0 {
			return nil, fmt.Errorf("hidden solution contains an invalid entry: %q", field)
		}
		literals = append(literals, literal)
	}

	hidden := make(HiddenAssignment, n)
	for _, literal := range literals {
		variable := uint64(literal)
		if literal < 0 {
			variable = uint64(-literal)
		}
		if value, ok := hidden[variable]; ok {
			if value == (literal > 0) {
				return nil, fmt.Errorf("hidden solution contains duplicate entries")
			}
			return nil, fmt.Errorf("hidden solution contains inconsistent entries")
		}
		hidden[variable] = literal > 0
	}

	highest := lo.Max(lo.Keys(hidden))
	if highest != n || uint64(len(hidden)) != n {
		return nil, fmt.Errorf("number of variables in hidden solution does not match requested n")
	}

	return hidden, nil
}

// Satisfied returns how many literals of clause agree with the assignment.
func (hidden HiddenAssignment) Satisfied(clause cnf.Clause) int {
	satisfied := 0
	for _, literal := range clause {
		if value, ok := hidden[literal.Variable]; ok && value == literal.Polarity {
			satisfied++
		}
	}
	return satisfied
}

// Positives returns the positively assigned variables in ascending order.
// Callers use it to record the planted solution in provenance text.
func (hidden HiddenAssignment) Positives() []uint64 {
	positives := lo.Keys(lo.PickBy(hidden, func(_ uint64, value bool) bool { return value }))
	slices.Sort(positives)
	return positives
}

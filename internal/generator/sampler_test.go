package generator

import (
	"fmt"
	"slices"
	"testing"

	"github.com/FlorianWoerz/concealSATgen/internal/cnf"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

// literalSetKey gives a canonical representation of a clause's literal set.
func literalSetKey(clause cnf.Clause) string {
	signed := lo.Map(clause, func(literal cnf.Literal, _ int) int64 { return literal.Signed() })
	slices.Sort(signed)
	return fmt.Sprint(signed)
}

func TestSampleShapeAndPlantedness(t *testing.T) {
	// Arrange
	var n, m, k uint64 = 50, 150, 3
	hidden := RandomHiddenAssignment(n, 7)
	table := NewFingerprintTable(n, 42)
	sampler := NewSampler(table, DefaultMaxUnproductiveDraws)

	// Act
	touched, clauses, err := sampler.Sample(k, n, m, hidden, 7, []float64{1, 1, 1})

	// Assert
	assert.NoError(t, err)
	assert.Len(t, clauses, int(m))

	seen := make(map[string]bool, len(clauses))
	for _, clause := range clauses {
		assert.Len(t, clause, int(k))

		variables := make(map[uint64]bool, k)
		for _, literal := range clause {
			assert.GreaterOrEqual(t, literal.Variable, uint64(1))
			assert.LessOrEqual(t, literal.Variable, n)
			assert.False(t, variables[literal.Variable], "variables within a clause must be pairwise distinct")
			variables[literal.Variable] = true
			assert.True(t, touched[literal.Variable])
		}

		assert.Greater(t, hidden.Satisfied(clause), 0, "every accepted clause must be satisfied by the hidden solution")

		key := literalSetKey(clause)
		assert.False(t, seen[key], "no two clauses may share a literal set")
		seen[key] = true
	}
}

func TestSampleDeterministic(t *testing.T) {
	// Arrange
	var n, m, k uint64 = 40, 100, 3
	hidden := RandomHiddenAssignment(n, 5)
	table := NewFingerprintTable(n, 42)
	sampler := NewSampler(table, DefaultMaxUnproductiveDraws)

	// Act
	touchedFirst, first, err1 := sampler.Sample(k, n, m, hidden, 5, []float64{1, 1, 1})
	touchedSecond, second, err2 := sampler.Sample(k, n, m, hidden, 5, []float64{1, 1, 1})

	// Assert
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, first, second)
	assert.Equal(t, touchedFirst, touchedSecond)
}

func TestSampleClassSuppression(t *testing.T) {
	// Arrange: suppressing a class must leave no clause with that many
	// satisfied literals
	scenarios := []struct {
		p       []float64
		allowed []int
	}{
		{[]float64{0, 0, 1}, []int{3}},
		{[]float64{1, 0, 0}, []int{1}},
		{[]float64{0, 1, 1}, []int{2, 3}},
	}

	for _, scenario := range scenarios {
		var n, m, k uint64 = 30, 60, 3
		hidden := RandomHiddenAssignment(n, 11)
		table := NewFingerprintTable(n, 42)
		sampler := NewSampler(table, DefaultMaxUnproductiveDraws)

		// Act
		_, clauses, err := sampler.Sample(k, n, m, hidden, 11, scenario.p)

		// Assert
		assert.NoError(t, err)
		for _, clause := range clauses {
			assert.Contains(t, scenario.allowed, hidden.Satisfied(clause))
		}
	}
}

func TestSampleSignalsExhaustedClauseSpace(t *testing.T) {
	// Arrange: over 2 variables there are at most 3 valid 2-clauses, so
	// requesting 10 must fail instead of spinning forever
	var n, m, k uint64 = 2, 10, 2
	hidden := RandomHiddenAssignment(n, 3)
	table := NewFingerprintTable(n, 42)
	sampler := NewSampler(table, 500)

	// Act
	_, _, err := sampler.Sample(k, n, m, hidden, 3, []float64{1, 1})

	// Assert
	assert.ErrorIs(t, err, ErrInsufficientClauses)
}

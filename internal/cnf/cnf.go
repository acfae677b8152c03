package cnf

import (
	"fmt"
	"strings"
)

// Literal is a propositional variable together with its polarity. A positive
// polarity means the variable appears unnegated.
type Literal struct {
	Polarity bool
	Variable uint64
}

// Signed returns the literal in DIMACS convention: the variable for positive
// polarity, its negation otherwise.
func (l Literal) Signed() int64 {
	if l.Polarity {
		return int64(l.Variable)
	}
	return -int64(l.Variable)
}

type Clause []Literal

// CNF is a conjunctive-normal-form formula over the variables 1..Variables.
// Clauses hold signed DIMACS literals in insertion order.
type CNF struct {
	Variables uint64
	Clauses   [][]int64
	Header    string
}

func New(n uint64) *CNF {
	return &CNF{
		Variables: n,
		Clauses:   [][]int64{},
	}
}

// NewWithCapacity pre-sizes the clause container for callers that know the
// final clause count up front.
func NewWithCapacity(n uint64, m int) *CNF {
	return &CNF{
		Variables: n,
		Clauses:   make([][]int64, 0, m),
	}
}

func (f *CNF) Len() int {
	return len(f.Clauses)
}

// AddClause validates clause and appends it to the formula. A clause is
// rejected when it is empty, when any variable lies outside [1, Variables], or
// when two literals share a variable (this covers both repeated literals and
// complementary pairs, so no tautologies enter the formula). The formula is
// left untouched on rejection.
func (f *CNF) AddClause(clause Clause) error {
	if len(clause) == 0 {
		return fmt.Errorf("invalid clause: a clause must contain at least one literal")
	}

	seen := make(map[uint64]bool, len(clause))
	for _, literal := range clause {
		if literal.Variable == 0 || literal.Variable > f.Variables {
			return fmt.Errorf("invalid clause: variable %v is not in [1, %v]", literal.Variable, f.Variables)
		}
		if seen[literal.Variable] {
			return fmt.Errorf("invalid clause: variable %v appears more than once (repeated or tautological literal)", literal.Variable)
		}
		seen[literal.Variable] = true
	}

	signed := make([]int64, len(clause))
	for i, literal := range clause {
		signed[i] = literal.Signed()
	}
	f.Clauses = append(f.Clauses, signed)

	return nil
}

// ToDIMACS renders the formula in the DIMACS-CNF interchange format: one "c"
// comment line per header line, a "p cnf" specification line, then one line
// per clause terminated by 0.
func (f *CNF) ToDIMACS() string {
	var builder strings.Builder
	if f.Header != "" {
		for _, line := range strings.Split(f.Header, "\n") {
			fmt.Fprintf(&builder, "c %v\n", line)
		}
	}
	fmt.Fprintf(&builder, "p cnf %d %d\n", f.Variables, len(f.Clauses))
	for _, clause := range f.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

package core

import (
	"context"
)

// EOI is the codepoint passed as Query.First when a query is made at
// the end of the input.  An oracle that needs a real lookahead to
// decide (say for a possessive quantifier) sees SecondValid=false and
// acts accordingly.
const EOI rune = 0

// Query is one local transition question put to an Oracle.
//
// The JSON field names are the wire contract used by the remote
// oracle adapters; see the 'oracle' packages.
type Query struct {
	// State is the state being queried.
	State StateID `json:"state"`

	// First is the symbol at the current input position, or EOI.
	First rune `json:"first"`

	// Second is the lookahead symbol.  Meaningful only when
	// SecondValid.
	Second rune `json:"second"`

	// SecondValid reports whether a lookahead symbol exists.
	SecondValid bool `json:"secondValid"`
}

// TransitionResult is an Oracle's answer to one Query.
type TransitionResult struct {
	// Next is the primary successor.
	Next StateID `json:"next"`

	// Second is the secondary successor: an automaton node with
	// two outgoing edges, such as an alternation or closure
	// branch.  Meaningful only when Enabled.
	Second StateID `json:"second"`

	// Consumed reports whether this transition consumed
	// Query.First.  When false, the transition is an epsilon: the
	// successors live at the same input position.
	Consumed bool `json:"consumed"`

	// Enabled reports whether Second is present.
	Enabled bool `json:"enabled"`
}

// Oracle answers local transition queries for an automaton that the
// engine cannot otherwise inspect.
//
// An implementation must behave as a pure function of the Query: the
// engine queries the same state repeatedly with different lookahead,
// and it reuses one oracle handle across many match attempts, so no
// internal state may bleed from one call into the next.  Calls are
// sequential; an Oracle need not be safe for concurrent use.
//
// A query that cannot be answered should return an error, never a
// made-up rejection.  The engine reports such an error to its caller
// as an OracleFailure and abandons the whole attempt.
type Oracle interface {
	Query(ctx context.Context, q Query) (TransitionResult, error)
}

// OracleFunc adapts an ordinary function to the Oracle interface.
type OracleFunc func(ctx context.Context, q Query) (TransitionResult, error)

func (f OracleFunc) Query(ctx context.Context, q Query) (TransitionResult, error) {
	return f(ctx, q)
}

// Automaton is an Oracle together with the Roles that make its
// answers interpretable.
type Automaton struct {
	Oracle Oracle
	Roles  Roles
}

// Check verifies that the Automaton is usable at all.
func (a *Automaton) Check() error {
	if a == nil || a.Oracle == nil {
		return NoOracle
	}
	return a.Roles.Check()
}

// symbols returns the Query symbol fields for a position in the
// input.
func symbols(input []rune, pos int) (first rune, second rune, secondValid bool) {
	first = EOI
	if pos < len(input) {
		first = input[pos]
		if pos+1 < len(input) {
			second = input[pos+1]
			secondValid = true
		}
	}
	return
}

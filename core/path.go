package core

import (
	"context"
)

// PathMatcher is the depth-first strategy: an explicit stack of
// (state, position) pairs, exploring the most recently discovered
// path to exhaustion before backtracking.
//
// The LIFO order decides only which path gets to spend the budget
// first.  Wherever both strategies finish within budget, PathMatcher
// and FrontierMatcher return the same verdict.
type PathMatcher struct {
	Aut *Automaton

	// Control bounds each Match call.  Nil means DefaultControl.
	Control *Control

	// Trace asks for per-query diagnostics in Matched.Traces.
	Trace bool
}

// NewPathMatcher makes a PathMatcher.
func NewPathMatcher(aut *Automaton, c *Control) *PathMatcher {
	return &PathMatcher{
		Aut:     aut,
		Control: c,
	}
}

// pathEntry is one suspended exploration point.
type pathEntry struct {
	state StateID
	pos   int
}

// Match decides whether the automaton accepts exactly the given
// input.
func (m *PathMatcher) Match(ctx context.Context, input []rune) (*Matched, error) {
	if err := m.Aut.Check(); err != nil {
		return nil, err
	}

	c := m.Control
	if c == nil {
		c = DefaultControl
	}

	var (
		roles  = m.Aut.Roles
		b      = &budget{limit: c.Limit}
		traces *Traces
	)
	if m.Trace {
		traces = NewTraces()
	}

	done := func(matched bool, why StopReason, pos int) *Matched {
		return &Matched{
			Matched:        matched,
			StoppedBecause: why,
			Queries:        b.spent,
			Pos:            pos,
			Traces:         traces,
		}
	}

	stack := []pathEntry{{state: roles.Start, pos: 0}}
	pos := 0 // high-water mark, for diagnostics

	for 0 < len(stack) {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if pos < e.pos {
			pos = e.pos
		}

		if e.state == roles.Match && e.pos == len(input) {
			return done(true, Accepted, e.pos), nil
		}
		if e.state == roles.Reject {
			// Shouldn't be on the stack at all, but an
			// absorbing state costs nothing to drop again.
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !b.spend() {
			return done(false, Limited, pos), nil
		}

		first, second, secondValid := symbols(input, e.pos)
		q := Query{
			State:       e.state,
			First:       first,
			Second:      second,
			SecondValid: secondValid,
		}
		r, err := m.Aut.Oracle.Query(ctx, q)
		if err != nil {
			return nil, &OracleFailure{State: e.state, Pos: e.pos, Err: err}
		}

		traces.Add(map[string]interface{}{
			"pos":    e.pos,
			"query":  q,
			"result": r,
		})

		targets := []StateID{r.Next}
		if r.Enabled {
			targets = append(targets, r.Second)
		}

		npos := e.pos
		if r.Consumed {
			if len(input) <= e.pos {
				// Wanted a symbol; there isn't one.
				continue
			}
			npos = e.pos + 1
		}

		for _, t := range targets {
			if t == roles.Reject {
				continue
			}
			if !roles.Valid(t) {
				traces.Add(map[string]interface{}{
					"pos":       e.pos,
					"state":     e.state,
					"malformed": t,
				})
				continue
			}
			// Accept at discovery, not at pop: a sibling branch
			// must not burn the budget over a match already
			// found.
			if t == roles.Match && npos == len(input) {
				return done(true, Accepted, npos), nil
			}
			stack = append(stack, pathEntry{state: t, pos: npos})
		}
	}

	return done(false, Rejected, pos), nil
}

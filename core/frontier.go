package core

import (
	"context"
)

// FrontierMatcher is the breadth strategy: a frontier of
// simultaneously live states advances over the input one symbol at a
// time, with an epsilon closure computed at each position.
type FrontierMatcher struct {
	Aut *Automaton

	// Control bounds each Match call.  Nil means DefaultControl.
	Control *Control

	// Trace asks for per-query diagnostics in Matched.Traces.
	Trace bool
}

// NewFrontierMatcher makes a FrontierMatcher.
func NewFrontierMatcher(aut *Automaton, c *Control) *FrontierMatcher {
	return &FrontierMatcher{
		Aut:     aut,
		Control: c,
	}
}

// Match decides whether the automaton accepts exactly the given
// input.
func (m *FrontierMatcher) Match(ctx context.Context, input []rune) (*Matched, error) {
	return m.run(ctx, input, 0, true)
}

// Find scans for a match starting anywhere in the input, reporting
// the first (and, for a given start, the shortest) occurrence.  Nil
// means no occurrence.
//
// An attempt that runs out of budget at one starting position is
// treated as a non-match there, and the scan moves on.
func (m *FrontierMatcher) Find(ctx context.Context, input []rune) (*Span, error) {
	for start := 0; start <= len(input); start++ {
		got, err := m.run(ctx, input, start, false)
		if err != nil {
			return nil, err
		}
		if got.Matched {
			return &Span{Start: start, End: got.Pos}, nil
		}
	}
	return nil, nil
}

// Span reports where an unanchored Find matched: [Start, End) in
// codepoints.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// run is the whole breadth algorithm.  With anchorEnd, acceptance
// requires the match state to be live with the input fully consumed;
// without it (Find), the match state turning up anywhere accepts,
// and Pos reports where.
func (m *FrontierMatcher) run(ctx context.Context, input []rune, start int, anchorEnd bool) (*Matched, error) {
	if err := m.Aut.Check(); err != nil {
		return nil, err
	}

	c := m.Control
	if c == nil {
		c = DefaultControl
	}

	s := &stepper{
		aut:    m.Aut,
		budget: &budget{limit: c.Limit},
	}
	if m.Trace {
		s.traces = NewTraces()
	}

	done := func(matched bool, why StopReason, pos int) *Matched {
		return &Matched{
			Matched:        matched,
			StoppedBecause: why,
			Queries:        s.budget.spent,
			Pos:            pos,
			Traces:         s.traces,
		}
	}

	frontier := NewFrontier(m.Aut.Roles.Start)
	pos := start

	for {
		accepting := !anchorEnd || pos == len(input)

		out, err := s.advance(ctx, frontier, input, pos, accepting)
		if err != nil {
			return nil, err
		}

		if out.matched && accepting {
			return done(true, Accepted, pos), nil
		}
		if out.limited {
			return done(false, Limited, pos), nil
		}
		if pos == len(input) {
			// Final closure ran and the match state was
			// not in it.
			return done(false, Rejected, pos), nil
		}
		if out.next.Len() == 0 {
			// Nothing can consume the next symbol.
			return done(false, Rejected, pos), nil
		}

		frontier = out.next
		pos++
	}
}

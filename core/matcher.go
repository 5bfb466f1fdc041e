package core

import (
	"context"
)

var (
	// TracesInitialCap is the initial capacity for Traces buffers.
	TracesInitialCap = 16

	// DefaultControl is used by the matchers when the given
	// Control is nil.
	DefaultControl = &Control{
		Limit: 50,
	}
)

// StopReason represents why a match attempt ended.
type StopReason int

const (
	// Accepted means the match state was live with the whole input
	// consumed.
	Accepted StopReason = iota

	// Rejected means every path died: a proven non-match.
	Rejected

	// Limited means the query budget ran out first.  The verdict
	// is "no match" but the search was not exhaustive, which is
	// why this reason is reported separately from Rejected.
	Limited
)

func (r StopReason) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case Limited:
		return "limited"
	}
	return "unknown"
}

// Control bounds a match attempt.
type Control struct {
	// Limit is the maximum number of oracle queries that one
	// Match call may spend.  An automaton with an epsilon cycle
	// would otherwise keep the engine busy forever.
	Limit int
}

// budget counts oracle queries against a Control.Limit.  Each match
// attempt gets its own.
type budget struct {
	limit int
	spent int
}

// spend takes one query from the budget, reporting false when the
// budget is gone.
func (b *budget) spend() bool {
	if b.limit <= b.spent {
		return false
	}
	b.spent++
	return true
}

// Traces holds diagnostic messages from a match attempt.
//
// Traces never influence a verdict.
type Traces struct {
	Messages []interface{} `json:"messages,omitempty" yaml:",omitempty"`
}

// NewTraces creates an initialized Traces.
func NewTraces() *Traces {
	return &Traces{
		Messages: make([]interface{}, 0, TracesInitialCap),
	}
}

func (ts *Traces) Add(xs ...interface{}) {
	if ts == nil {
		return
	}
	ts.Messages = append(ts.Messages, xs...)
}

// Matched reports the outcome of one match attempt.
type Matched struct {
	// Matched is the verdict.
	Matched bool `json:"matched"`

	// StoppedBecause reports why the attempt ended.
	StoppedBecause StopReason `json:"stoppedBecause"`

	// Queries is the number of oracle queries spent.
	Queries int `json:"queries"`

	// Pos is the input position the attempt reached: the length
	// of the input for an anchored acceptance, or wherever the
	// accepting state turned up during an unanchored Find.
	Pos int `json:"pos"`

	// Traces gathers per-query diagnostics when the matcher was
	// asked to trace.
	Traces *Traces `json:"traces,omitempty"`
}

// Matcher decides whether an input is accepted by an automaton.
//
// A Matcher owns no per-attempt state: concurrent Match calls on the
// same Matcher are independent as long as the underlying Oracle
// tolerates them.
type Matcher interface {
	Match(ctx context.Context, input []rune) (*Matched, error)
}

// Match runs the breadth (frontier) strategy over the input.
//
// A convenience for NewFrontierMatcher(aut, c).Match(...).
func Match(ctx context.Context, aut *Automaton, input string, c *Control) (*Matched, error) {
	return NewFrontierMatcher(aut, c).Match(ctx, []rune(input))
}

// IsMatch reports only the boolean verdict.
//
// An attempt that ran out of budget counts as a non-match here; use
// Match when the caller needs to tell "proven no match" from "search
// exhausted the budget".
func IsMatch(ctx context.Context, aut *Automaton, input string, c *Control) (bool, error) {
	got, err := Match(ctx, aut, input, c)
	if err != nil {
		return false, err
	}
	return got.Matched, nil
}

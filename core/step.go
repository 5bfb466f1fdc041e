package core

import (
	"context"
)

// stepper runs oracle queries for a single match attempt.  It is the
// only thing that talks to the oracle, so the budget and the traces
// are both enforced here.
type stepper struct {
	aut    *Automaton
	budget *budget
	traces *Traces
}

// stepOut is what one position's worth of work produces.
type stepOut struct {
	// matched reports that the match state entered the closure at
	// this position.
	matched bool

	// closure is the epsilon closure of the incoming frontier at
	// this position.
	closure *Frontier

	// next is the frontier for the following position: every
	// non-reject successor of a consuming transition.
	next *Frontier

	// limited reports that the budget ran out mid-step.
	limited bool
}

// advance expands the frontier at pos to its epsilon closure and
// collects the consuming successors for pos+1.
//
// Each state in the closure is queried exactly once per position.
// Epsilon successors join the closure and are themselves queried
// until no new state appears.  Consuming successors go to the next
// frontier; at the end of the input a consuming transition cannot
// fire, so its path dies.  Reject is dropped on sight, as is any
// successor outside the range the Roles declare.
//
// With accepting, the match state turning up ends the step right
// there: the caller will accept, so no further query is owed.
// Otherwise the match state is queried like any other, and its
// answer decides whether that path continues.
func (s *stepper) advance(ctx context.Context, frontier *Frontier, input []rune, pos int, accepting bool) (*stepOut, error) {
	var (
		roles = s.aut.Roles
		out   = &stepOut{
			closure: frontier.Copy(),
			next:    NewFrontier(),
		}
	)

	first, second, secondValid := symbols(input, pos)

	// The queue starts as the frontier in increasing order, and
	// newly discovered epsilon successors are appended, so one run
	// always explores in the same order.
	queue := make([]StateID, frontier.Len())
	copy(queue, frontier.IDs())

	for 0 < len(queue) {
		id := queue[0]
		queue = queue[1:]

		if id == roles.Match {
			out.matched = true
			if accepting {
				break
			}
			// Not accepting here, so Match is queried
			// below like any other state.  A Thompson
			// construction gives it no outgoing edges and
			// the path ends, but that is the oracle's
			// call to make.
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !s.budget.spend() {
			out.limited = true
			break
		}

		q := Query{
			State:       id,
			First:       first,
			Second:      second,
			SecondValid: secondValid,
		}
		r, err := s.aut.Oracle.Query(ctx, q)
		if err != nil {
			return nil, &OracleFailure{State: id, Pos: pos, Err: err}
		}

		s.traces.Add(map[string]interface{}{
			"pos":    pos,
			"query":  q,
			"result": r,
		})

		targets := []StateID{r.Next}
		if r.Enabled {
			targets = append(targets, r.Second)
		}

		for _, t := range targets {
			if t == roles.Reject {
				continue
			}
			if !roles.Valid(t) {
				// A malformed answer kills this one
				// branch, not the whole attempt.
				s.traces.Add(map[string]interface{}{
					"pos":       pos,
					"state":     id,
					"malformed": t,
				})
				continue
			}
			if r.Consumed {
				if pos < len(input) {
					out.next.Add(t)
				}
			} else if out.closure.Add(t) {
				// Acceptance counts from the moment the
				// match state joins the closure; the queued
				// states behind it owe no further queries.
				if t == roles.Match {
					out.matched = true
					if accepting {
						return out, nil
					}
				}
				queue = append(queue, t)
			}
		}
	}

	return out, nil
}

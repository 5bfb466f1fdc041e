package core

import (
	"context"
	"errors"
	"strings"
)

// The fixture oracles below mimic realized Thompson automata: the
// reserved ids follow the circuit convention match=0, reject=1,
// start=2, but the engine only learns that through Roles.

// literalAutomaton accepts exactly the given word.
func literalAutomaton(word string) *Automaton {
	chars := []rune(word)
	roles := Roles{Start: 2, Match: 0, Reject: 1, Limit: len(chars) + 2}
	reject := TransitionResult{Next: roles.Reject}

	f := func(ctx context.Context, q Query) (TransitionResult, error) {
		i := int(q.State) - 2
		if i < 0 || len(chars) <= i {
			return reject, nil
		}
		if q.First != chars[i] {
			return reject, nil
		}
		next := StateID(3 + i)
		if i == len(chars)-1 {
			next = roles.Match
		}
		return TransitionResult{Next: next, Consumed: true}, nil
	}
	return &Automaton{Oracle: OracleFunc(f), Roles: roles}
}

// classAutomaton accepts one or more repetitions of a single
// character drawn from the class, using lookahead to decide when to
// leave the loop.
func classAutomaton(class string) *Automaton {
	roles := Roles{Start: 2, Match: 0, Reject: 1, Limit: 3}
	reject := TransitionResult{Next: roles.Reject}

	f := func(ctx context.Context, q Query) (TransitionResult, error) {
		if q.State != roles.Start {
			return reject, nil
		}
		if q.First == EOI || !strings.ContainsRune(class, q.First) {
			return reject, nil
		}
		if q.SecondValid && q.Second == q.First {
			return TransitionResult{Next: roles.Start, Consumed: true}, nil
		}
		return TransitionResult{Next: roles.Match, Consumed: true}, nil
	}
	return &Automaton{Oracle: OracleFunc(f), Roles: roles}
}

// possessiveAutomaton accepts ch++: one or more of ch, consumed
// possessively.  Once the loop has eaten a symbol, no later
// alternative gets it back, which is why "La" fails against L++.
func possessiveAutomaton(ch rune) *Automaton {
	roles := Roles{Start: 2, Match: 0, Reject: 1, Limit: 3}
	reject := TransitionResult{Next: roles.Reject}

	f := func(ctx context.Context, q Query) (TransitionResult, error) {
		if q.State != roles.Start || q.First != ch {
			return reject, nil
		}
		if q.SecondValid && q.Second == ch {
			return TransitionResult{Next: roles.Start, Consumed: true}, nil
		}
		return TransitionResult{Next: roles.Match, Consumed: true}, nil
	}
	return &Automaton{Oracle: OracleFunc(f), Roles: roles}
}

// forkAutomaton accepts "ab" or "cd" via a two-way split from the
// start state, exercising the Enabled/Second answer fields.
func forkAutomaton() *Automaton {
	roles := Roles{Start: 2, Match: 0, Reject: 1, Limit: 7}
	reject := TransitionResult{Next: roles.Reject}

	f := func(ctx context.Context, q Query) (TransitionResult, error) {
		switch q.State {
		case 2:
			return TransitionResult{Next: 3, Second: 5, Enabled: true}, nil
		case 3:
			if q.First == 'a' {
				return TransitionResult{Next: 4, Consumed: true}, nil
			}
		case 4:
			if q.First == 'b' {
				return TransitionResult{Next: roles.Match, Consumed: true}, nil
			}
		case 5:
			if q.First == 'c' {
				return TransitionResult{Next: 6, Consumed: true}, nil
			}
		case 6:
			if q.First == 'd' {
				return TransitionResult{Next: roles.Match, Consumed: true}, nil
			}
		}
		return reject, nil
	}
	return &Automaton{Oracle: OracleFunc(f), Roles: roles}
}

// epsilonLoopAutomaton answers every query with a non-consuming
// transition back to the queried state.
func epsilonLoopAutomaton() *Automaton {
	roles := Roles{Start: 2, Match: 0, Reject: 1, Limit: 3}
	f := func(ctx context.Context, q Query) (TransitionResult, error) {
		return TransitionResult{Next: q.State}, nil
	}
	return &Automaton{Oracle: OracleFunc(f), Roles: roles}
}

// epsilonChainAutomaton invents a fresh epsilon successor at every
// query, so not even a frontier's set semantics can reach a fixpoint.
func epsilonChainAutomaton() *Automaton {
	roles := Roles{Start: 2, Match: 0, Reject: 1}
	f := func(ctx context.Context, q Query) (TransitionResult, error) {
		return TransitionResult{Next: q.State + 1}, nil
	}
	return &Automaton{Oracle: OracleFunc(f), Roles: roles}
}

// matchAndLoopAutomaton epsilon-forks from the start state straight
// to the match state and to a state that epsilon-loops forever.  Only
// the empty input is accepted, and only if acceptance is recognized
// when the match state is discovered rather than after the loop
// branch gives up.
func matchAndLoopAutomaton() *Automaton {
	roles := Roles{Start: 2, Match: 0, Reject: 1, Limit: 6}
	f := func(ctx context.Context, q Query) (TransitionResult, error) {
		if q.State == roles.Start {
			return TransitionResult{Next: roles.Match, Second: 5, Enabled: true}, nil
		}
		return TransitionResult{Next: q.State}, nil
	}
	return &Automaton{Oracle: OracleFunc(f), Roles: roles}
}

// hopAndLoopAutomaton is matchAndLoopAutomaton with one epsilon hop
// before the match state, so the match state joins a closure one
// query after the fork.
func hopAndLoopAutomaton() *Automaton {
	roles := Roles{Start: 2, Match: 0, Reject: 1, Limit: 6}
	f := func(ctx context.Context, q Query) (TransitionResult, error) {
		switch q.State {
		case roles.Start:
			return TransitionResult{Next: 3, Second: 4, Enabled: true}, nil
		case 3:
			return TransitionResult{Next: roles.Match}, nil
		}
		return TransitionResult{Next: q.State}, nil
	}
	return &Automaton{Oracle: OracleFunc(f), Roles: roles}
}

// failingAutomaton errors on the nth query.
func failingAutomaton(n int) *Automaton {
	roles := Roles{Start: 2, Match: 0, Reject: 1}
	count := 0
	f := func(ctx context.Context, q Query) (TransitionResult, error) {
		count++
		if n <= count {
			return TransitionResult{}, errors.New("oracle unplugged")
		}
		return TransitionResult{Next: q.State + 1}, nil
	}
	return &Automaton{Oracle: OracleFunc(f), Roles: roles}
}

// matchers returns one of each strategy for the same automaton.
func matchers(aut *Automaton, c *Control) map[string]Matcher {
	return map[string]Matcher{
		"frontier": NewFrontierMatcher(aut, c),
		"path":     NewPathMatcher(aut, c),
	}
}

package core

import (
	"context"
	"testing"
)

func TestPathExploresLastPushedFirst(t *testing.T) {
	// The fork automaton answers the start query with
	// (next=3, second=5).  Successors are pushed in that order,
	// so the stack explores 5 first.  The tie-break shows up in
	// the traces; the verdict never depends on it.
	m := NewPathMatcher(forkAutomaton(), nil)
	m.Trace = true

	got, err := m.Match(context.Background(), []rune("ab"))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Matched {
		t.Fatal("no match")
	}

	var order []StateID
	for _, x := range got.Traces.Messages {
		msg, is := x.(map[string]interface{})
		if !is {
			continue
		}
		q, is := msg["query"].(Query)
		if !is {
			continue
		}
		order = append(order, q.State)
	}

	if len(order) < 2 || order[0] != 2 || order[1] != 5 {
		t.Fatalf("exploration order %v", order)
	}
}

func TestPathAcceptsDiscoveredMatch(t *testing.T) {
	// The start state forks to the match state and to an epsilon
	// loop.  The loop branch sits above the accepting entry on the
	// stack, so popping first would spend the whole budget on it;
	// acceptance has to count the moment the entry is discovered.
	aut := matchAndLoopAutomaton()
	ctx := context.Background()

	for name, m := range matchers(aut, nil) {
		t.Run(name, func(t *testing.T) {
			got, err := m.Match(ctx, []rune(""))
			if err != nil {
				t.Fatal(err)
			}
			if !got.Matched || got.StoppedBecause != Accepted {
				t.Fatalf("%v/%s after %d queries",
					got.Matched, got.StoppedBecause, got.Queries)
			}
			if got.Queries != 1 {
				t.Fatalf("%d queries to accept", got.Queries)
			}
		})
	}
}

func TestPathBacktracks(t *testing.T) {
	// The 5-branch is explored first, so "ab" only matches after
	// that branch dies and the stack falls back to the 3-branch.
	m := NewPathMatcher(forkAutomaton(), nil)
	ctx := context.Background()

	for _, input := range []string{"ab", "cd"} {
		got, err := m.Match(ctx, []rune(input))
		if err != nil {
			t.Fatal(err)
		}
		if !got.Matched {
			t.Fatalf("%q did not match", input)
		}
	}
}

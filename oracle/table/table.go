// Package table provides an oracle backed by an explicit transition
// table, typically loaded from a YAML document.
//
// A table is the cheap way to stand up an automaton for tests and
// tools: no compiler, no remote process, just a list of rules per
// state.  The first rule whose conditions hold answers a query; a
// state with no applicable rule answers with an epsilon transition to
// the reject state, which the engine prunes.
package table

import (
	"context"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/Comcast/litmus/core"

	"github.com/jsccast/yaml"
)

// Rule is one case in a state's transition table.
//
// All given conditions must hold for the rule to apply.  A Rule with
// no conditions always applies, which makes it the state's default.
type Rule struct {
	// First, when not empty, requires the current symbol to be
	// one of these characters.  A rule with First never applies
	// at the end of the input.
	First string `json:"first,omitempty" yaml:"first,omitempty"`

	// AtEnd requires the query to be at the end of the input.
	AtEnd bool `json:"atEnd,omitempty" yaml:"atEnd,omitempty"`

	// Second, when not empty, requires a lookahead symbol that is
	// one of these characters.
	Second string `json:"second,omitempty" yaml:"second,omitempty"`

	// NoSecond requires that no lookahead symbol exists.
	NoSecond bool `json:"noSecond,omitempty" yaml:"noSecond,omitempty"`

	// Next is the primary successor.
	Next core.StateID `json:"next" yaml:"next"`

	// Fork, when given, is the secondary successor.
	Fork *core.StateID `json:"fork,omitempty" yaml:"fork,omitempty"`

	// Consumed marks a consuming transition.  Otherwise the rule
	// is an epsilon.
	Consumed bool `json:"consumed,omitempty" yaml:"consumed,omitempty"`
}

// applies reports whether every condition of the rule holds for the
// query.
func (r *Rule) applies(q core.Query) bool {
	if r.AtEnd && q.First != core.EOI {
		return false
	}
	if r.First != "" {
		if q.First == core.EOI || !strings.ContainsRune(r.First, q.First) {
			return false
		}
	}
	if r.NoSecond && q.SecondValid {
		return false
	}
	if r.Second != "" {
		if !q.SecondValid || !strings.ContainsRune(r.Second, q.Second) {
			return false
		}
	}
	return true
}

// Table is a whole automaton: its roles and, per state, the ordered
// rules that answer queries.
type Table struct {
	// Name identifies the automaton in logs and rendered docs.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Doc is free-form documentation (Markdown as far as the
	// tools are concerned).
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// Roles names the reserved states.
	Roles core.Roles `json:"roles" yaml:"roles"`

	// States maps a state to its rules.  States absent here
	// reject every query, which is the natural encoding for the
	// match and reject states themselves.
	States map[core.StateID][]Rule `json:"states,omitempty" yaml:"states,omitempty"`
}

// Query implements core.Oracle.
func (t *Table) Query(ctx context.Context, q core.Query) (core.TransitionResult, error) {
	for i := range t.States[q.State] {
		r := &t.States[q.State][i]
		if !r.applies(q) {
			continue
		}
		res := core.TransitionResult{
			Next:     r.Next,
			Consumed: r.Consumed,
		}
		if r.Fork != nil {
			res.Second = *r.Fork
			res.Enabled = true
		}
		return res, nil
	}
	return core.TransitionResult{Next: t.Roles.Reject}, nil
}

// Automaton pairs the table with its roles for the engine.
func (t *Table) Automaton() *core.Automaton {
	return &core.Automaton{
		Oracle: t,
		Roles:  t.Roles,
	}
}

// Check verifies the table: usable roles and in-range successors.
func (t *Table) Check() error {
	if err := t.Roles.Check(); err != nil {
		return err
	}
	for id, rules := range t.States {
		if !t.Roles.Valid(id) {
			return fmt.Errorf("table %q: state %d out of range", t.Name, id)
		}
		for i, r := range rules {
			if !t.Roles.Valid(r.Next) {
				return fmt.Errorf("table %q: state %d rule %d: next %d out of range",
					t.Name, id, i, r.Next)
			}
			if r.Fork != nil && !t.Roles.Valid(*r.Fork) {
				return fmt.Errorf("table %q: state %d rule %d: fork %d out of range",
					t.Name, id, i, *r.Fork)
			}
			if r.AtEnd && r.Consumed {
				return fmt.Errorf("table %q: state %d rule %d: consuming at end of input",
					t.Name, id, i)
			}
		}
	}
	return nil
}

// Load parses a YAML table and checks it.
func Load(bs []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(bs, &t); err != nil {
		return nil, err
	}
	if err := t.Check(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadFile reads and parses a YAML table file.
func LoadFile(filename string) (*Table, error) {
	bs, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Load(bs)
}

package core

import (
	"fmt"
	"sort"
	"strings"
)

// StateID identifies one state of the automaton under test.
//
// The engine treats these values as opaque.  In particular, which
// integers play the start, match, and reject roles is a convention of
// the oracle being queried; see Roles.
type StateID int

// Roles names the reserved states of a particular oracle.
//
// Different oracles number their reserved states differently, so
// these ids are supplied alongside the oracle handle and are never
// assumed by the algorithms.
type Roles struct {
	// Start is the state every match attempt begins in.
	Start StateID `json:"start" yaml:"start"`

	// Match is the accepting state.  Reaching Match with the whole
	// input consumed is the sole acceptance condition.
	Match StateID `json:"match" yaml:"match"`

	// Reject is the absorbing dead state.  A transition into
	// Reject is pruned immediately and never queried.
	Reject StateID `json:"reject" yaml:"reject"`

	// Limit, when positive, is the number of states the automaton
	// has.  A reported successor outside [0,Limit) is then a
	// malformed answer, and the path that produced it dies.
	Limit int `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// Valid reports whether id could name a real state under these Roles.
func (r Roles) Valid(id StateID) bool {
	if id < 0 {
		return false
	}
	if 0 < r.Limit && r.Limit <= int(id) {
		return false
	}
	return true
}

// Check looks for configuration problems that would make any match
// attempt meaningless.
func (r Roles) Check() error {
	for role, id := range map[string]StateID{
		"start":  r.Start,
		"match":  r.Match,
		"reject": r.Reject,
	} {
		if !r.Valid(id) {
			return &BadRoles{Roles: r, Problem: fmt.Sprintf("%s state %d out of range", role, id)}
		}
	}
	if r.Start == r.Reject {
		return &BadRoles{Roles: r, Problem: "start state is the reject state"}
	}
	if r.Match == r.Reject {
		return &BadRoles{Roles: r, Problem: "match state is the reject state"}
	}
	return nil
}

// Frontier is the set of states simultaneously live at one input
// position.
//
// Membership is what matters; however, iteration is in increasing
// numeric order so that a run's diagnostics are reproducible.  The
// zero value is an empty frontier.
type Frontier struct {
	ids []StateID // sorted, no duplicates
}

// NewFrontier makes a Frontier containing the given states.
func NewFrontier(ids ...StateID) *Frontier {
	f := &Frontier{}
	for _, id := range ids {
		f.Add(id)
	}
	return f
}

// Add inserts a state, reporting whether it was new.
func (f *Frontier) Add(id StateID) bool {
	i := sort.Search(len(f.ids), func(i int) bool {
		return id <= f.ids[i]
	})
	if i < len(f.ids) && f.ids[i] == id {
		return false
	}
	f.ids = append(f.ids, 0)
	copy(f.ids[i+1:], f.ids[i:])
	f.ids[i] = id
	return true
}

// Has reports membership.
func (f *Frontier) Has(id StateID) bool {
	i := sort.Search(len(f.ids), func(i int) bool {
		return id <= f.ids[i]
	})
	return i < len(f.ids) && f.ids[i] == id
}

// Len returns the number of live states.
func (f *Frontier) Len() int {
	return len(f.ids)
}

// IDs returns the states in increasing order.  The slice is shared;
// don't write to it.
func (f *Frontier) IDs() []StateID {
	return f.ids
}

// Copy makes an independent Frontier with the same members.
func (f *Frontier) Copy() *Frontier {
	ids := make([]StateID, len(f.ids))
	copy(ids, f.ids)
	return &Frontier{ids: ids}
}

func (f *Frontier) String() string {
	if f == nil {
		return "{}"
	}
	acc := make([]string, len(f.ids))
	for i, id := range f.ids {
		acc[i] = fmt.Sprintf("%d", id)
	}
	return "{" + strings.Join(acc, ",") + "}"
}

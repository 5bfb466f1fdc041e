/* Copyright 2026 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package tools

// Utilities for looking at table automata: a match failure is a lot
// easier to chase with the state graph in front of you.

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Comcast/litmus/core"
	"github.com/Comcast/litmus/oracle/table"
)

// MermaidOpts influence Mermaid rendering.
type MermaidOpts struct {
	// ShowRules will result in edge labels describing the rule
	// conditions.
	ShowRules bool `json:"showRules"`

	// MatchFill is the fill color for the match state.
	MatchFill string `json:"matchFill,omitempty"`

	// RejectFill is the fill color for the reject state.
	RejectFill string `json:"rejectFill,omitempty"`
}

// Mermaid makes a Mermaid (https://mermaidjs.github.io/) input file
// for the given table automaton.
func Mermaid(t *table.Table, w io.Writer, opts *MermaidOpts) error {
	if opts == nil {
		opts = &MermaidOpts{
			ShowRules:  true,
			MatchFill:  "#bcf2db",
			RejectFill: "#f2bcbc",
		}
	}

	fmt.Fprintf(w, "graph TB\n")

	name := func(id core.StateID) string {
		switch id {
		case t.Roles.Start:
			return fmt.Sprintf("%d: start", id)
		case t.Roles.Match:
			return fmt.Sprintf("%d: match", id)
		case t.Roles.Reject:
			return fmt.Sprintf("%d: reject", id)
		}
		return fmt.Sprintf("%d", id)
	}

	seen := make(map[core.StateID]bool)
	node := func(id core.StateID) string {
		nid := fmt.Sprintf("s%d", id)
		if seen[id] {
			return nid
		}
		seen[id] = true
		fmt.Fprintf(w, "  %s[\"%s\"]\n", nid, name(id))
		switch {
		case id == t.Roles.Match && opts.MatchFill != "":
			fmt.Fprintf(w, "  style %s fill:%s\n", nid, opts.MatchFill)
		case id == t.Roles.Reject && opts.RejectFill != "":
			fmt.Fprintf(w, "  style %s fill:%s\n", nid, opts.RejectFill)
		}
		return nid
	}

	ids := make([]core.StateID, 0, len(t.States))
	for id := range t.States {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})

	for _, id := range ids {
		from := node(id)
		for i := range t.States[id] {
			r := &t.States[id][i]

			label := ""
			if opts.ShowRules {
				label = fmt.Sprintf("|\"%s\"|", ruleLabel(r))
			}

			fmt.Fprintf(w, "  %s -->%s %s\n", from, label, node(r.Next))
			if r.Fork != nil {
				fmt.Fprintf(w, "  %s -->%s %s\n", from, label, node(*r.Fork))
			}
		}
	}

	return nil
}

// ruleLabel summarizes a rule's conditions for an edge label.
func ruleLabel(r *table.Rule) string {
	var parts []string
	if r.First != "" {
		parts = append(parts, fmt.Sprintf("[%s]", r.First))
	}
	if r.AtEnd {
		parts = append(parts, "at end")
	}
	if r.Second != "" {
		parts = append(parts, fmt.Sprintf("then [%s]", r.Second))
	}
	if r.NoSecond {
		parts = append(parts, "no lookahead")
	}
	if r.Consumed {
		parts = append(parts, "consume")
	} else {
		parts = append(parts, "ε")
	}
	return strings.Join(parts, ", ")
}

package tools

import (
	"fmt"
	"io"
	"sort"

	"github.com/Comcast/litmus/core"
	"github.com/Comcast/litmus/oracle/table"

	md "github.com/russross/blackfriday/v2"
)

// RenderTableHTML writes an HTML description of a table automaton:
// its doc (treated as Markdown), its roles, and its per-state rules.
func RenderTableHTML(t *table.Table, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	if t.Name != "" {
		f(`<h1 class="tableName">%s</h1>`, t.Name)
	}
	if t.Doc != "" {
		f(`<div class="tableDoc doc">%s</div>`, md.Run([]byte(t.Doc)))
	}

	f(`<div class="roles"><table>`)
	f(`<tr><td>start</td><td><code>%d</code></td></tr>`, t.Roles.Start)
	f(`<tr><td>match</td><td><code>%d</code></td></tr>`, t.Roles.Match)
	f(`<tr><td>reject</td><td><code>%d</code></td></tr>`, t.Roles.Reject)
	if 0 < t.Roles.Limit {
		f(`<tr><td>states</td><td><code>%d</code></td></tr>`, t.Roles.Limit)
	}
	f(`</table></div>`)

	ids := make([]core.StateID, 0, len(t.States))
	for id := range t.States {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})

	f(`<div class="states"><table>`)
	for _, id := range ids {
		f(`<tr class="state"><td><span id="s%d" class="stateName">%d</span></td><td>`, id, id)
		f(`<table>`)
		for i := range t.States[id] {
			r := &t.States[id][i]
			f(`<tr><td><div class="ruleNum">%d</div></td>`, i)
			f(`<td><code>%s</code></td>`, ruleLabel(r))
			f(`<td><a href="#s%d"><code>%d</code></a>`, r.Next, r.Next)
			if r.Fork != nil {
				f(` <a href="#s%d"><code>%d</code></a>`, *r.Fork, *r.Fork)
			}
			f(`</td></tr>`)
		}
		f(`</table>`)
		f(`</td></tr>`)
	}
	f(`</div></table>`)

	return nil
}

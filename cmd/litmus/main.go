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

// Package main is a little command-line utility to run inputs
// against an automaton.
//
//	litmus -t automaton.yaml abc ab abcd
//	litmus -ws ws://localhost:8080/oracle -start 2 -match 0 -reject 1 abc
//
// Each input gets one line of JSON on stdout.  With -mermaid, -html,
// or -yaml the automaton is rendered instead of run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Comcast/litmus/core"
	"github.com/Comcast/litmus/oracle/mq"
	"github.com/Comcast/litmus/oracle/replay"
	"github.com/Comcast/litmus/oracle/table"
	"github.com/Comcast/litmus/oracle/ws"
	"github.com/Comcast/litmus/tools"
	"github.com/Comcast/litmus/util"
	. "github.com/Comcast/litmus/util/testutil"
)

func main() {
	var (
		tableFile = flag.String("t", "", "table automaton YAML filename")

		wsURL    = flag.String("ws", "", "remote oracle WebSocket URL")
		mqBroker = flag.String("mq", "", "remote oracle MQTT broker (e.g. tcp://localhost:1883)")
		mqTopic  = flag.String("topic", "litmus", "MQTT base topic")
		mqId     = flag.String("id", "litmus-cli", "MQTT client id")

		start  = flag.Int("start", 2, "start state id (remote oracles)")
		match  = flag.Int("match", 0, "match state id (remote oracles)")
		reject = flag.Int("reject", 1, "reject state id (remote oracles)")
		states = flag.Int("states", 0, "state count, 0 for unknown (remote oracles)")

		strategy = flag.String("strategy", "frontier", "frontier or path")
		limit    = flag.Int("limit", core.DefaultControl.Limit, "oracle query budget per input")
		find     = flag.Bool("find", false, "scan for a match anywhere in the input")
		trace    = flag.Bool("trace", false, "include per-query traces in the output")

		recordFile = flag.String("record", "", "record oracle answers to this bolt database")
		replayFile = flag.String("replay", "", "answer queries from this bolt database")

		mermaid  = flag.Bool("mermaid", false, "render the table automaton as Mermaid and exit")
		html     = flag.Bool("html", false, "render the table automaton as HTML and exit")
		yamlDump = flag.Bool("yaml", false, "render the table automaton as canonical YAML and exit")

		verbose = flag.Bool("v", false, "verbosity")
	)

	flag.Parse()
	util.Verbose = *verbose

	ctx := context.Background()

	var (
		aut *core.Automaton
		tab *table.Table
		err error
	)

	roles := core.Roles{
		Start:  core.StateID(*start),
		Match:  core.StateID(*match),
		Reject: core.StateID(*reject),
		Limit:  *states,
	}

	switch {
	case *tableFile != "":
		if tab, err = table.LoadFile(*tableFile); err != nil {
			log.Fatal(err)
		}
		aut = tab.Automaton()
	case *wsURL != "":
		o, err := ws.Dial(*wsURL, roles)
		if err != nil {
			log.Fatal(err)
		}
		defer o.Close()
		aut = o.Automaton()
	case *mqBroker != "":
		o, err := mq.Dial(*mqBroker, *mqId, *mqTopic, roles)
		if err != nil {
			log.Fatal(err)
		}
		defer o.Close()
		aut = o.Automaton()
	case *replayFile != "":
		// Handled below; the store is the oracle.
	default:
		log.Fatal("need one of -t, -ws, -mq, or -replay")
	}

	if *mermaid || *html || *yamlDump {
		if tab == nil {
			log.Fatal("rendering needs -t")
		}
		switch {
		case *mermaid:
			err = tools.Mermaid(tab, os.Stdout, nil)
		case *html:
			err = tools.RenderTableHTML(tab, os.Stdout)
		case *yamlDump:
			err = tools.WriteTableYAML(tab, os.Stdout)
		}
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	if *replayFile != "" {
		s, err := replay.Open(*replayFile)
		if err != nil {
			log.Fatal(err)
		}
		defer s.Close()
		aut = &core.Automaton{
			Oracle: s.Player(),
			Roles:  roles,
		}
	} else if *recordFile != "" {
		s, err := replay.Open(*recordFile)
		if err != nil {
			log.Fatal(err)
		}
		defer s.Close()
		aut = &core.Automaton{
			Oracle: s.Recorder(aut.Oracle),
			Roles:  aut.Roles,
		}
	}

	c := &core.Control{Limit: *limit}

	var m core.Matcher
	switch *strategy {
	case "frontier":
		fm := core.NewFrontierMatcher(aut, c)
		fm.Trace = *trace
		m = fm
	case "path":
		pm := core.NewPathMatcher(aut, c)
		pm.Trace = *trace
		m = pm
	default:
		log.Fatalf("unknown strategy %q", *strategy)
	}

	for _, input := range flag.Args() {
		if *find {
			fm, is := m.(*core.FrontierMatcher)
			if !is {
				log.Fatal("-find needs -strategy frontier")
			}
			span, err := fm.Find(ctx, []rune(input))
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("%s\n", JS(map[string]interface{}{
				"input": input,
				"found": span,
			}))
			continue
		}

		got, err := m.Match(ctx, []rune(input))
		if err != nil {
			log.Fatal(err)
		}
		out := map[string]interface{}{
			"input":   input,
			"matched": got.Matched,
			"stopped": got.StoppedBecause.String(),
			"queries": got.Queries,
		}
		if *trace {
			out["traces"] = got.Traces
		}
		fmt.Printf("%s\n", JS(out))
	}
}

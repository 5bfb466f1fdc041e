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

// Package core provides the gear for deciding whether an input is
// accepted by a nondeterministic automaton that the code cannot
// inspect directly.  The automaton's transition function lives behind
// an Oracle, which answers one local transition query at a time:
// given a state and up to two symbols of lookahead, the Oracle
// reports a successor (or two), and whether the current symbol was
// consumed.
//
// An Automaton pairs an Oracle with Roles, which name the oracle's
// start, match, and reject states.  Those ids vary from oracle to
// oracle, so they arrive as configuration rather than as literals in
// the algorithms.
//
// Two Matcher strategies are provided.  A FrontierMatcher advances a
// set of simultaneously live states over the input one symbol at a
// time, computing epsilon closures as it goes.  A PathMatcher
// explores one path at a time with an explicit backtracking stack.
// For any (oracle, input), wherever both terminate within budget,
// they agree on the verdict.
//
// Every match attempt is bounded by a Control, which caps the total
// number of oracle queries.  Hitting the cap is the Limited stop
// reason, which is a first-class outcome distinguishable from a
// genuine rejection.
package core

// Package litmus decides whether strings are accepted by automata
// that can only be observed through transition oracles.
//
// The engine is in package 'core', oracle adapters are under
// 'oracle', and some command-line tools are in 'cmd'.
//
// See https://github.com/Comcast/litmus/blob/master/README.md for more.
package litmus

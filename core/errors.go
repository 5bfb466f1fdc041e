package core

// These errors are reported to callers.  Problems local to a single
// path (a rejection, a malformed answer for one branch) are not
// errors at all: those paths are just pruned.

import (
	"errors"
	"fmt"
)

// NoOracle occurs when a Matcher is asked to run without an oracle.
var NoOracle = errors.New("no oracle")

// BadRoles occurs when an Automaton's Roles can't work: an id out of
// range, or one id playing two incompatible roles.
type BadRoles struct {
	Roles   Roles
	Problem string
}

func (e *BadRoles) Error() string {
	return "bad roles: " + e.Problem
}

// OracleFailure occurs when an oracle query returns an error.  A
// single failed query aborts the whole match attempt: the engine has
// no way to recover the answer, and it will not retry.
type OracleFailure struct {
	State StateID
	Pos   int
	Err   error
}

func (e *OracleFailure) Error() string {
	return fmt.Sprintf("oracle query failed at state %d, position %d: %s", e.State, e.Pos, e.Err)
}

func (e *OracleFailure) Unwrap() error {
	return e.Err
}

// Package ws speaks the oracle wire contract over a WebSocket.
//
// Each query is one JSON text message
//
//	{"state":N,"first":C,"second":C,"secondValid":B}
//
// answered by
//
//	{"next":N,"second":N,"consumed":B,"enabled":B}
//
// or by {"error":"..."} when the remote side can't answer.  The
// reserved state ids are configuration carried on the Go side
// (core.Roles); they never travel as assumptions.
//
// Handler exposes any core.Oracle this way, so the package is both
// halves of the conversation: litmusd serves an automaton, and Dial
// queries one.
package ws

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/Comcast/litmus/core"
	"github.com/Comcast/litmus/util"

	"github.com/gorilla/websocket"
)

// response is the wire answer: a TransitionResult or an error.
type response struct {
	core.TransitionResult
	Error string `json:"error,omitempty"`
}

// Oracle is a client for a remote oracle.
//
// The engine issues queries one at a time, and the protocol counts
// on that: one request in flight per connection.  An Oracle is safe
// for sequential reuse across many match attempts.
type Oracle struct {
	roles core.Roles
	conn  *websocket.Conn

	// The engine never queries concurrently, but two matchers
	// sharing one connection would otherwise interleave frames.
	mu sync.Mutex
}

// Dial connects to a remote oracle.
func Dial(url string, roles core.Roles) (*Oracle, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &Oracle{
		roles: roles,
		conn:  conn,
	}, nil
}

// Automaton pairs the remote oracle with its roles.
func (o *Oracle) Automaton() *core.Automaton {
	return &core.Automaton{
		Oracle: o,
		Roles:  o.roles,
	}
}

// Close shuts the connection down.  Subsequent queries fail.
func (o *Oracle) Close() error {
	return o.conn.Close()
}

// Query implements core.Oracle with one round trip.
func (o *Oracle) Query(ctx context.Context, q core.Query) (core.TransitionResult, error) {
	var zero core.TransitionResult

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	// A deadline set for one query must not linger into the next;
	// zero clears it.
	deadline, _ := ctx.Deadline()
	o.conn.SetReadDeadline(deadline)
	o.conn.SetWriteDeadline(deadline)

	if err := o.conn.WriteJSON(&q); err != nil {
		return zero, err
	}

	var r response
	if err := o.conn.ReadJSON(&r); err != nil {
		return zero, err
	}
	if r.Error != "" {
		return zero, &RemoteError{Message: r.Error}
	}

	return r.TransitionResult, nil
}

// RemoteError is an error reported by the remote oracle itself, as
// opposed to a transport problem.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return "remote oracle: " + e.Message
}

// Handler exposes an oracle as a WebSocket endpoint speaking the
// wire contract.  One goroutine per connection, queries answered in
// order.
func Handler(o core.Oracle) http.Handler {
	upgrader := websocket.Upgrader{}

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			log.Println("ws upgrade error", err)
			return
		}
		defer conn.Close()

		util.Debugf("ws oracle connection from %s", req.RemoteAddr)

		ctx := req.Context()

		for {
			var q core.Query
			if err := conn.ReadJSON(&q); err != nil {
				// Closed or garbled; either way this
				// conversation is over.
				return
			}
			util.Debugf("ws oracle query %+v", q)

			var r response
			got, err := o.Query(ctx, q)
			if err != nil {
				r.Error = err.Error()
			} else {
				r.TransitionResult = got
			}

			if err := conn.WriteJSON(&r); err != nil {
				log.Println("ws write error", err)
				return
			}
		}
	})
}

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

// Package mq speaks the oracle wire contract over MQTT.
//
// A query is published to TOPIC/queries with a correlation id and a
// reply topic; the remote oracle answers on that reply topic.  Serve
// is the other half: it subscribes to TOPIC/queries and answers for
// a local core.Oracle, which makes any automaton reachable through a
// broker.
//
// MQTT has no request/response of its own (this predates MQTT 5 in
// the field), so the correlation id does the matching, and answers
// that show up for some other query are dropped.
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Comcast/litmus/core"
	"github.com/Comcast/litmus/util"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

var (
	// DefaultTimeout bounds one query round trip when the
	// caller's context carries no deadline of its own.
	DefaultTimeout = 10 * time.Second

	// PubQoS and SubQoS are the MQTT QoS levels used for
	// queries and answers.
	PubQoS byte = 1
	SubQoS byte = 1
)

// request is the wire query plus correlation.
type request struct {
	Id    int64  `json:"id"`
	Reply string `json:"reply"`
	core.Query
}

// answer is the wire response plus correlation.
type answer struct {
	Id    int64  `json:"id"`
	Error string `json:"error,omitempty"`
	core.TransitionResult
}

// Oracle is a client for a remote oracle behind an MQTT broker.
//
// Queries are sequential (the engine guarantees that), so one
// pending id at a time is all the bookkeeping needed.
type Oracle struct {
	roles   core.Roles
	client  mqtt.Client
	topic   string
	reply   string
	timeout time.Duration

	mu      sync.Mutex
	nextId  int64
	answers chan answer
}

// Dial connects to the broker and subscribes to this client's reply
// topic.
//
// topic is the base: queries go to topic+"/queries", and answers
// come back on topic+"/answers/"+clientId.
func Dial(broker, clientId, topic string, roles core.Roles) (*Oracle, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientId)
	opts.SetKeepAlive(10 * time.Second)
	opts.SetPingTimeout(10 * time.Second)

	client := mqtt.NewClient(opts)
	if t := client.Connect(); t.Wait() && t.Error() != nil {
		return nil, t.Error()
	}

	o := &Oracle{
		roles:   roles,
		client:  client,
		topic:   topic + "/queries",
		reply:   topic + "/answers/" + clientId,
		timeout: DefaultTimeout,
		answers: make(chan answer, 8),
	}

	handler := func(c mqtt.Client, m mqtt.Message) {
		var a answer
		if err := json.Unmarshal(m.Payload(), &a); err != nil {
			// Not ours to report; the query will time out.
			return
		}
		select {
		case o.answers <- a:
		default:
		}
	}

	if t := client.Subscribe(o.reply, SubQoS, handler); t.Wait() && t.Error() != nil {
		client.Disconnect(100)
		return nil, t.Error()
	}

	return o, nil
}

// Automaton pairs the remote oracle with its roles.
func (o *Oracle) Automaton() *core.Automaton {
	return &core.Automaton{
		Oracle: o,
		Roles:  o.roles,
	}
}

// Close unsubscribes and disconnects.
func (o *Oracle) Close() error {
	if t := o.client.Unsubscribe(o.reply); t.Wait() && t.Error() != nil {
		return t.Error()
	}
	o.client.Disconnect(100)
	return nil
}

// Query implements core.Oracle with one publish and one correlated
// answer.
func (o *Oracle) Query(ctx context.Context, q core.Query) (core.TransitionResult, error) {
	var zero core.TransitionResult

	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextId++
	req := request{
		Id:    o.nextId,
		Reply: o.reply,
		Query: q,
	}

	js, err := json.Marshal(&req)
	if err != nil {
		return zero, err
	}

	if t := o.client.Publish(o.topic, PubQoS, false, js); t.Wait() && t.Error() != nil {
		return zero, t.Error()
	}

	if _, have := ctx.Deadline(); !have {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	for {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case a := <-o.answers:
			if a.Id != req.Id {
				// Stale; keep waiting.
				continue
			}
			if a.Error != "" {
				return zero, fmt.Errorf("remote oracle: %s", a.Error)
			}
			return a.TransitionResult, nil
		}
	}
}

// Serve subscribes to topic+"/queries" and answers them from the
// given oracle until the context is done.
func Serve(ctx context.Context, client mqtt.Client, topic string, o core.Oracle) error {
	queries := topic + "/queries"

	handler := func(c mqtt.Client, m mqtt.Message) {
		var req request
		if err := json.Unmarshal(m.Payload(), &req); err != nil {
			util.Debugf("mq oracle dropping unparsable query: %s", err)
			return
		}
		if req.Reply == "" {
			util.Debugf("mq oracle dropping query with no reply topic")
			return
		}

		a := answer{Id: req.Id}
		got, err := o.Query(ctx, req.Query)
		if err != nil {
			a.Error = err.Error()
		} else {
			a.TransitionResult = got
		}

		js, err := json.Marshal(&a)
		if err != nil {
			return
		}
		c.Publish(req.Reply, PubQoS, false, js)
	}

	if t := client.Subscribe(queries, SubQoS, handler); t.Wait() && t.Error() != nil {
		return t.Error()
	}

	<-ctx.Done()

	if t := client.Unsubscribe(queries); t.Wait() && t.Error() != nil {
		return t.Error()
	}
	return nil
}

// Package main serves a table automaton as a remote oracle.
//
//	litmusd -t automaton.yaml -addr :8080
//
// Clients dial ws://HOST/oracle and exchange one JSON query per
// message.  With -mq, the same automaton also answers queries over an
// MQTT broker.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Comcast/litmus/oracle/mq"
	"github.com/Comcast/litmus/oracle/table"
	"github.com/Comcast/litmus/oracle/ws"
	"github.com/Comcast/litmus/util"
)

func main() {
	var (
		tableFile = flag.String("t", "", "table automaton YAML filename")
		addr      = flag.String("addr", ":8080", "WebSocket listen address")
		path      = flag.String("path", "/oracle", "WebSocket endpoint path")

		mqBroker = flag.String("mq", "", "also serve via this MQTT broker")
		mqTopic  = flag.String("topic", "litmus", "MQTT base topic")
		mqId     = flag.String("id", "litmusd", "MQTT client id")

		verbose = flag.Bool("v", false, "verbosity")
	)

	flag.Parse()
	util.Verbose = *verbose

	if *tableFile == "" {
		log.Fatal("need -t")
	}

	tab, err := table.LoadFile(*tableFile)
	if err != nil {
		log.Fatal(err)
	}

	if *mqBroker != "" {
		opts := mqtt.NewClientOptions().AddBroker(*mqBroker).SetClientID(*mqId)
		client := mqtt.NewClient(opts)
		if t := client.Connect(); t.Wait() && t.Error() != nil {
			log.Fatal(t.Error())
		}
		go func() {
			if err := mq.Serve(context.Background(), client, *mqTopic, tab); err != nil {
				log.Fatal(err)
			}
		}()
		log.Printf("answering MQTT queries at %s on %s/queries", *mqBroker, *mqTopic)
	}

	http.Handle(*path, ws.Handler(tab))
	log.Printf("serving %s at ws://%s%s", tab.Name, *addr, *path)
	log.Fatal(http.ListenAndServe(*addr, nil))
}

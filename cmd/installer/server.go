//go:build linux
// +build linux

package main

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/Cloud-Foundations/metal-installer/installer/phases"
	"github.com/Cloud-Foundations/metal-installer/lib/format"
	"github.com/Cloud-Foundations/metal-installer/lib/log"
	proto "github.com/Cloud-Foundations/metal-installer/proto/installer"
)

type state struct {
	tracker *phases.Tracker
}

func startServer(portNum uint, tracker *phases.Tracker,
	logger log.Logger) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", portNum))
	if err != nil {
		return err
	}
	myState := state{tracker}
	http.HandleFunc("/", myState.statusHandler)
	go http.Serve(listener, nil)
	logger.Printf("serving status on port: %d\n", portNum)
	return nil
}

func (s state) statusHandler(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		http.NotFound(w, req)
		return
	}
	writer := bufio.NewWriter(w)
	defer writer.Flush()
	fmt.Fprintln(writer, "<title>installer status page</title>")
	fmt.Fprintln(writer, `<style>
                          table, th, td {
                          border-collapse: collapse;
                          }
                          </style>`)
	fmt.Fprintln(writer, "<body>")
	fmt.Fprintln(writer, "<center>")
	fmt.Fprintln(writer, "<h1>installer status page</h1>")
	fmt.Fprintln(writer, "</center>")
	fmt.Fprintln(writer, "<h3>")
	s.writeDashboard(writer)
	fmt.Fprintln(writer, "</h3>")
	fmt.Fprintln(writer, "<hr>")
	fmt.Fprintln(writer, `<a href="/metrics">Metrics</a>`)
	fmt.Fprintln(writer, "</body>")
}

func (s state) writeDashboard(writer io.Writer) {
	fmt.Fprintln(writer, `<table border="1">`)
	fmt.Fprintln(writer, "  <tr><th>Phase</th><th>State</th><th>Duration</th></tr>")
	for _, result := range s.tracker.Results() {
		var duration string
		if result.State == proto.PhaseStateSucceeded ||
			result.State == proto.PhaseStateFailed {
			duration = format.Duration(result.Duration)
		}
		fmt.Fprintf(writer,
			"  <tr><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			result.Phase, result.State, duration)
	}
	fmt.Fprintln(writer, "</table>")
}

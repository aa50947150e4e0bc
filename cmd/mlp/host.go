package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/drakos74/xmlp/internal/api"
	"github.com/drakos74/xmlp/internal/learner"
	"github.com/drakos74/xmlp/internal/mlp"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
)

// host is the message loop around a single object, it prints everything the object emits.
type host struct {
	mutex   *sync.Mutex
	out     io.Writer
	info    [][]string
	capture *api.Recorder
}

func newHost(out io.Writer) *host {
	return &host{
		mutex: new(sync.Mutex),
		out:   out,
	}
}

// Emit prints the output, info entries are collected and printed as a table once the message is done.
func (h *host) Emit(output api.Output) {
	if h.capture != nil {
		h.capture.Emit(output)
		return
	}
	switch output.Selector {
	case learner.Info:
		if len(output.Atoms) == 2 {
			h.info = append(h.info, []string{output.Atoms[0].String(), output.Atoms[1].String()})
			return
		}
	case learner.Attributes:
		for _, a := range output.Atoms {
			h.info = append(h.info, []string{a.String()})
		}
		return
	case mlp.History:
		series := output.Floats()
		if len(series) > 1 {
			fmt.Fprintln(h.out, asciigraph.Plot(series,
				asciigraph.Height(10),
				asciigraph.Width(60),
				asciigraph.Caption("training error per epoch")))
			return
		}
	}
	fmt.Fprintln(h.out, output.String())
}

func (h *host) flush(header ...string) {
	if len(h.info) == 0 {
		return
	}
	table := tablewriter.NewWriter(h.out)
	table.SetHeader(header)
	for _, row := range h.info {
		table.Append(row)
	}
	table.Render()
	h.info = nil
}

// run dispatches every line as a message, errors are printed and the loop goes on.
func (h *host) run(scanner *bufio.Scanner, object *mlp.MLP) error {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		msg, err := api.ParseMessage(line)
		if err != nil {
			fmt.Fprintf(h.out, "error: %s\n", err.Error())
			continue
		}
		h.mutex.Lock()
		err = object.Dispatch(msg)
		h.mutex.Unlock()
		switch msg.Selector {
		case learner.Info:
			h.flush("key", "value")
		case learner.Attributes:
			h.flush("attribute")
		}
		if err != nil {
			fmt.Fprintf(h.out, "error: %s\n", err.Error())
		}
	}
	return scanner.Err()
}

// remote dispatches messages coming from the http server, the outputs are returned instead of printed.
func (h *host) remote(object *mlp.MLP) func(msg api.Message) ([]api.Output, error) {
	return func(msg api.Message) ([]api.Output, error) {
		h.mutex.Lock()
		defer h.mutex.Unlock()
		h.capture = api.NewRecorder()
		defer func() {
			h.capture = nil
		}()
		err := object.Dispatch(msg)
		return h.capture.Outputs, err
	}
}
